package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// SubscribeStatesRequest asks the device to start streaming state updates
// for every entity in its catalog.
type SubscribeStatesRequest struct{}

func (m *SubscribeStatesRequest) TypeID() uint32  { return TypeSubscribeStatesRequest }
func (m *SubscribeStatesRequest) Marshal() []byte { return nil }
func decodeSubscribeStatesRequest([]byte) (Message, error) {
	return &SubscribeStatesRequest{}, nil
}

// BinarySensorStateResponse reports a binary_sensor's current state.
type BinarySensorStateResponse struct {
	Key     uint32
	State   bool
	Missing bool
}

func (m *BinarySensorStateResponse) TypeID() uint32 { return TypeBinarySensorStateResponse }

func (m *BinarySensorStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.State)
	b = wire.AppendBoolField(b, 3, m.Missing)
	return b
}

func decodeBinarySensorStateResponse(b []byte) (Message, error) {
	m := &BinarySensorStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		case 3:
			var v uint64
			v, err = r.Varint()
			m.Missing = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SwitchStateResponse reports a switch's current state.
type SwitchStateResponse struct {
	Key   uint32
	State bool
}

func (m *SwitchStateResponse) TypeID() uint32 { return TypeSwitchStateResponse }

func (m *SwitchStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.State)
	return b
}

func decodeSwitchStateResponse(b []byte) (Message, error) {
	m := &SwitchStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// LightStateResponse reports a light's current state.
type LightStateResponse struct {
	Key              uint32
	State            bool
	Brightness       float32
	ColorTemperature float32
	Red, Green, Blue float32
}

func (m *LightStateResponse) TypeID() uint32 { return TypeLightStateResponse }

func (m *LightStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.State)
	b = wire.AppendFixed32Field(b, 3, float32bits(m.Brightness))
	b = wire.AppendFixed32Field(b, 4, float32bits(m.Red))
	b = wire.AppendFixed32Field(b, 5, float32bits(m.Green))
	b = wire.AppendFixed32Field(b, 6, float32bits(m.Blue))
	b = wire.AppendFixed32Field(b, 7, float32bits(m.ColorTemperature))
	return b
}

func decodeLightStateResponse(b []byte) (Message, error) {
	m := &LightStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		case 3:
			var v uint32
			v, err = r.Fixed32()
			m.Brightness = float32frombits(v)
		case 4:
			var v uint32
			v, err = r.Fixed32()
			m.Red = float32frombits(v)
		case 5:
			var v uint32
			v, err = r.Fixed32()
			m.Green = float32frombits(v)
		case 6:
			var v uint32
			v, err = r.Fixed32()
			m.Blue = float32frombits(v)
		case 7:
			var v uint32
			v, err = r.Fixed32()
			m.ColorTemperature = float32frombits(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SensorStateResponse reports a sensor's current numeric reading.
type SensorStateResponse struct {
	Key     uint32
	State   float32
	Missing bool
}

func (m *SensorStateResponse) TypeID() uint32 { return TypeSensorStateResponse }

func (m *SensorStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendFixed32Field(b, 2, float32bits(m.State))
	b = wire.AppendBoolField(b, 3, m.Missing)
	return b
}

func decodeSensorStateResponse(b []byte) (Message, error) {
	m := &SensorStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint32
			v, err = r.Fixed32()
			m.State = float32frombits(v)
		case 3:
			var v uint64
			v, err = r.Varint()
			m.Missing = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// TextSensorStateResponse reports a text_sensor's current string value.
type TextSensorStateResponse struct {
	Key     uint32
	State   string
	Missing bool
}

func (m *TextSensorStateResponse) TypeID() uint32 { return TypeTextSensorStateResponse }

func (m *TextSensorStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendStringField(b, 2, m.State)
	b = wire.AppendBoolField(b, 3, m.Missing)
	return b
}

func decodeTextSensorStateResponse(b []byte) (Message, error) {
	m := &TextSensorStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			m.State, err = r.String()
		case 3:
			var v uint64
			v, err = r.Varint()
			m.Missing = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CoverStateResponse reports a cover's current position.
type CoverStateResponse struct {
	Key          uint32
	Position     float32
	Tilt         float32
	CurrentOperation uint32
}

func (m *CoverStateResponse) TypeID() uint32 { return TypeCoverStateResponse }

func (m *CoverStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendFixed32Field(b, 2, float32bits(m.Position))
	b = wire.AppendFixed32Field(b, 3, float32bits(m.Tilt))
	b = wire.AppendUint32Field(b, 4, m.CurrentOperation)
	return b
}

func decodeCoverStateResponse(b []byte) (Message, error) {
	m := &CoverStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint32
			v, err = r.Fixed32()
			m.Position = float32frombits(v)
		case 3:
			var v uint32
			v, err = r.Fixed32()
			m.Tilt = float32frombits(v)
		case 4:
			var v uint64
			v, err = r.Varint()
			m.CurrentOperation = uint32(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FanStateResponse reports a fan's current state.
type FanStateResponse struct {
	Key         uint32
	State       bool
	Oscillating bool
	Speed       uint32
	Direction   uint32
	SpeedLevel  uint32
}

func (m *FanStateResponse) TypeID() uint32 { return TypeFanStateResponse }

func (m *FanStateResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.State)
	b = wire.AppendBoolField(b, 3, m.Oscillating)
	b = wire.AppendUint32Field(b, 4, m.Speed)
	b = wire.AppendUint32Field(b, 5, m.Direction)
	b = wire.AppendUint32Field(b, 6, m.SpeedLevel)
	return b
}

func decodeFanStateResponse(b []byte) (Message, error) {
	m := &FanStateResponse{}
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
			m.Key = uint32(v)
		case 2:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		case 3:
			var v uint64
			v, err = r.Varint()
			m.Oscillating = v != 0
		case 4:
			var v uint64
			v, err = r.Varint()
			m.Speed = uint32(v)
		case 5:
			var v uint64
			v, err = r.Varint()
			m.Direction = uint32(v)
		case 6:
			var v uint64
			v, err = r.Varint()
			m.SpeedLevel = uint32(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
