package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// HelloRequest is the first message a client sends, announcing the
// protocol versions it supports and a human-readable identifier.
type HelloRequest struct {
	ClientInfo      string
	APIVersionMajor uint32
	APIVersionMinor uint32
}

func (m *HelloRequest) TypeID() uint32 { return TypeHelloRequest }

func (m *HelloRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendStringField(b, 1, m.ClientInfo)
	b = wire.AppendUint32Field(b, 2, m.APIVersionMajor)
	b = wire.AppendUint32Field(b, 3, m.APIVersionMinor)
	return b
}

func decodeHelloRequest(b []byte) (Message, error) {
	m := &HelloRequest{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			m.ClientInfo, err = r.String()
		case 2:
			var v uint64
			v, err = r.Varint()
			m.APIVersionMajor = uint32(v)
		case 3:
			var v uint64
			v, err = r.Varint()
			m.APIVersionMinor = uint32(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// HelloResponse is the device's reply, carrying the protocol version it
// will speak and identifying itself.
type HelloResponse struct {
	APIVersionMajor uint32
	APIVersionMinor uint32
	ServerInfo      string
	Name            string
}

func (m *HelloResponse) TypeID() uint32 { return TypeHelloResponse }

func (m *HelloResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.APIVersionMajor)
	b = wire.AppendUint32Field(b, 2, m.APIVersionMinor)
	b = wire.AppendStringField(b, 3, m.ServerInfo)
	b = wire.AppendStringField(b, 4, m.Name)
	return b
}

func decodeHelloResponse(b []byte) (Message, error) {
	m := &HelloResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			var v uint64
			v, err = r.Varint()
			m.APIVersionMajor = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.APIVersionMinor = uint32(v)
		case 3:
			m.ServerInfo, err = r.String()
		case 4:
			m.Name, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
