package frame

// Decoder is the streaming counterpart to Encode: feed it bytes as they
// arrive off a net.Conn and repeatedly drain complete frames.
type Decoder struct {
	buf *DecodeBuffer
}

// NewDecoder returns a Decoder for the given preamble byte.
func NewDecoder(preamble byte) *Decoder {
	return &Decoder{buf: NewDecodeBuffer(preamble)}
}

// Feed appends newly read bytes.
func (d *Decoder) Feed(data []byte) {
	d.buf.Feed(data)
}

// Drain extracts every complete frame currently available, in arrival
// order. It stops and returns the error on the first malformed or
// oversized frame; frames before that point are still returned.
func (d *Decoder) Drain() ([]Frame, error) {
	var out []Frame
	for {
		fr, ok, err := d.buf.TryDecode()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, fr)
	}
}

// Buffered reports how many bytes are waiting for more data.
func (d *Decoder) Buffered() int {
	return d.buf.Len()
}
