package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// ConnectRequest carries the plaintext password. internal/handshake sends it
// on every connection, with an empty password when none is configured.
// There is no separate Authenticate
// message pair in this protocol; see SPEC_FULL.md Open Question (b).
type ConnectRequest struct {
	Password string
}

func (m *ConnectRequest) TypeID() uint32 { return TypeConnectRequest }

func (m *ConnectRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendStringField(b, 1, m.Password)
	return b
}

func decodeConnectRequest(b []byte) (Message, error) {
	m := &ConnectRequest{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch fn {
		case 1:
			m.Password, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ConnectResponse indicates whether the supplied password was accepted.
type ConnectResponse struct {
	InvalidPassword bool
}

func (m *ConnectResponse) TypeID() uint32 { return TypeConnectResponse }

func (m *ConnectResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendBoolField(b, 1, m.InvalidPassword)
	return b
}

func decodeConnectResponse(b []byte) (Message, error) {
	m := &ConnectResponse{}
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
			m.InvalidPassword = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
