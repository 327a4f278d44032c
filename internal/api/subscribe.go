package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// SubscribeLogsRequest asks the device to stream its log output. Level
// bounds verbosity (ESPHome's log-level enum); DumpConfig additionally
// requests a one-time dump of the device's effective configuration.
type SubscribeLogsRequest struct {
	Level      uint32
	DumpConfig bool
}

func (m *SubscribeLogsRequest) TypeID() uint32 { return TypeSubscribeLogsRequest }

func (m *SubscribeLogsRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Level)
	b = wire.AppendBoolField(b, 2, m.DumpConfig)
	return b
}

func decodeSubscribeLogsRequest(b []byte) (Message, error) {
	m := &SubscribeLogsRequest{}
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
			m.Level = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.DumpConfig = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SubscribeLogsResponse is one line of device log output.
type SubscribeLogsResponse struct {
	Level      uint32
	Message    []byte
	SendFailed bool
}

func (m *SubscribeLogsResponse) TypeID() uint32 { return TypeSubscribeLogsResponse }

func (m *SubscribeLogsResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Level)
	b = wire.AppendBytesField(b, 3, m.Message)
	b = wire.AppendBoolField(b, 4, m.SendFailed)
	return b
}

func decodeSubscribeLogsResponse(b []byte) (Message, error) {
	m := &SubscribeLogsResponse{}
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
			m.Level = uint32(v)
		case 3:
			var raw []byte
			raw, err = r.Bytes()
			m.Message = append([]byte(nil), raw...)
		case 4:
			var v uint64
			v, err = r.Varint()
			m.SendFailed = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
