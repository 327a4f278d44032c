package frame

// DecodeBuffer accumulates bytes read from the wire and extracts complete
// frames one at a time. It never returns a partial frame: if the buffer
// holds fewer bytes than a declared frame needs, TryDecode reports ok=false
// and waits for more data via Feed. A byte that does not match the expected
// preamble is silently dropped so the stream resynchronizes after a
// corrupted frame instead of wedging forever.
type DecodeBuffer struct {
	buf      []byte
	preamble byte
}

// NewDecodeBuffer returns an empty buffer expecting frames with the given
// preamble byte (PreamblePlain or PreambleEncrypted).
func NewDecodeBuffer(preamble byte) *DecodeBuffer {
	return &DecodeBuffer{preamble: preamble}
}

// Feed appends newly read bytes to the buffer.
func (d *DecodeBuffer) Feed(data []byte) {
	d.buf = append(d.buf, data...)
}

// Len reports the number of unconsumed bytes currently buffered.
func (d *DecodeBuffer) Len() int {
	return len(d.buf)
}

// TryDecode attempts to extract the next complete frame. ok is false when
// more bytes are needed; err is non-nil only for a hard protocol violation
// (oversized length, or a malformed length or type varint) that the caller
// should treat as fatal.
//
// For PreambleEncrypted, the message type travels inside the sealed
// ciphertext rather than in a cleartext field here — the returned Frame's
// Type is left zero and Payload holds the raw ciphertext; the caller
// (internal/connection) recovers the type after decrypting, so no
// application-level identifier ever touches the wire in cleartext once a
// Noise session is active.
func (d *DecodeBuffer) TryDecode() (fr Frame, ok bool, err error) {
	for {
		if len(d.buf) == 0 {
			return Frame{}, false, nil
		}
		if d.buf[0] != d.preamble {
			d.buf = d.buf[1:]
			continue
		}

		length, n, complete, verr := tryVarint(d.buf[1:])
		if verr != nil {
			return Frame{}, false, verr
		}
		if !complete {
			return Frame{}, false, nil
		}
		if length > MaxPayloadSize {
			return Frame{}, false, ErrMessageTooLarge
		}

		if d.preamble == PreambleEncrypted {
			payloadOff := 1 + n
			total := payloadOff + int(length)
			if len(d.buf) < total {
				return Frame{}, false, nil
			}
			payload := make([]byte, length)
			copy(payload, d.buf[payloadOff:total])
			d.buf = d.buf[total:]
			return Frame{Payload: payload}, true, nil
		}

		typeOff := 1 + n
		msgType, n2, complete2, verr2 := tryVarint(d.buf[typeOff:])
		if verr2 != nil {
			return Frame{}, false, verr2
		}
		if !complete2 {
			return Frame{}, false, nil
		}

		payloadOff := typeOff + n2
		total := payloadOff + int(length)
		if len(d.buf) < total {
			return Frame{}, false, nil
		}

		payload := make([]byte, length)
		copy(payload, d.buf[payloadOff:total])
		d.buf = d.buf[total:]
		return Frame{Type: uint32(msgType), Payload: payload}, true, nil
	}
}

// tryVarint reads a varint from the front of b. complete is false when b is
// a valid-so-far prefix that simply hasn't terminated yet; err is non-nil
// once 10 bytes have been consumed without a terminating byte.
func tryVarint(b []byte) (v uint64, n int, complete bool, err error) {
	var shift uint
	limit := len(b)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		c := b[i]
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1, true, nil
		}
		shift += 7
	}
	if len(b) >= 10 {
		return 0, 0, false, ErrMalformedVarint
	}
	return 0, 0, false, nil
}
