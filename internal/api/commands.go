package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// SwitchCommandRequest sets a switch entity's on/off state.
type SwitchCommandRequest struct {
	Key   uint32
	State bool
}

func (m *SwitchCommandRequest) TypeID() uint32 { return TypeSwitchCommandRequest }

func (m *SwitchCommandRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.State)
	return b
}

func decodeSwitchCommandRequest(b []byte) (Message, error) {
	m := &SwitchCommandRequest{}
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

// LightCommandRequest sets a light entity's state. Has* flags mirror the
// real protocol's "optional field present" convention: only fields whose
// Has flag is set are applied by the device, so the Marshal below omits
// unset fields rather than sending zero values that would otherwise look
// like explicit "turn off brightness" commands.
type LightCommandRequest struct {
	Key uint32

	HasState bool
	State    bool

	HasBrightness bool
	Brightness    float32

	HasRGB       bool
	Red, Green, Blue float32

	HasColorTemperature bool
	ColorTemperature    float32

	HasTransitionLength bool
	TransitionLength    uint32
}

func (m *LightCommandRequest) TypeID() uint32 { return TypeLightCommandRequest }

func (m *LightCommandRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.HasState)
	b = wire.AppendBoolField(b, 3, m.State)
	b = wire.AppendBoolField(b, 4, m.HasBrightness)
	if m.HasBrightness {
		b = wire.AppendFixed32Field(b, 5, float32bits(m.Brightness))
	}
	b = wire.AppendBoolField(b, 6, m.HasRGB)
	if m.HasRGB {
		b = wire.AppendFixed32Field(b, 7, float32bits(m.Red))
		b = wire.AppendFixed32Field(b, 8, float32bits(m.Green))
		b = wire.AppendFixed32Field(b, 9, float32bits(m.Blue))
	}
	b = wire.AppendBoolField(b, 10, m.HasColorTemperature)
	if m.HasColorTemperature {
		b = wire.AppendFixed32Field(b, 11, float32bits(m.ColorTemperature))
	}
	b = wire.AppendBoolField(b, 12, m.HasTransitionLength)
	if m.HasTransitionLength {
		b = wire.AppendUint32Field(b, 13, m.TransitionLength)
	}
	return b
}

func decodeLightCommandRequest(b []byte) (Message, error) {
	m := &LightCommandRequest{}
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
			m.HasState = v != 0
		case 3:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		case 4:
			var v uint64
			v, err = r.Varint()
			m.HasBrightness = v != 0
		case 5:
			var v uint32
			v, err = r.Fixed32()
			m.Brightness = float32frombits(v)
		case 6:
			var v uint64
			v, err = r.Varint()
			m.HasRGB = v != 0
		case 7:
			var v uint32
			v, err = r.Fixed32()
			m.Red = float32frombits(v)
		case 8:
			var v uint32
			v, err = r.Fixed32()
			m.Green = float32frombits(v)
		case 9:
			var v uint32
			v, err = r.Fixed32()
			m.Blue = float32frombits(v)
		case 10:
			var v uint64
			v, err = r.Varint()
			m.HasColorTemperature = v != 0
		case 11:
			var v uint32
			v, err = r.Fixed32()
			m.ColorTemperature = float32frombits(v)
		case 12:
			var v uint64
			v, err = r.Varint()
			m.HasTransitionLength = v != 0
		case 13:
			var v uint64
			v, err = r.Varint()
			m.TransitionLength = uint32(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CoverCommandRequest commands a cover entity.
type CoverCommandRequest struct {
	Key uint32

	HasPosition bool
	Position    float32

	HasTilt bool
	Tilt    float32

	Stop bool
}

func (m *CoverCommandRequest) TypeID() uint32 { return TypeCoverCommandRequest }

func (m *CoverCommandRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.HasPosition)
	if m.HasPosition {
		b = wire.AppendFixed32Field(b, 3, float32bits(m.Position))
	}
	b = wire.AppendBoolField(b, 4, m.HasTilt)
	if m.HasTilt {
		b = wire.AppendFixed32Field(b, 5, float32bits(m.Tilt))
	}
	b = wire.AppendBoolField(b, 6, m.Stop)
	return b
}

func decodeCoverCommandRequest(b []byte) (Message, error) {
	m := &CoverCommandRequest{}
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
			m.HasPosition = v != 0
		case 3:
			var v uint32
			v, err = r.Fixed32()
			m.Position = float32frombits(v)
		case 4:
			var v uint64
			v, err = r.Varint()
			m.HasTilt = v != 0
		case 5:
			var v uint32
			v, err = r.Fixed32()
			m.Tilt = float32frombits(v)
		case 6:
			var v uint64
			v, err = r.Varint()
			m.Stop = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FanCommandRequest commands a fan entity.
type FanCommandRequest struct {
	Key uint32

	HasState bool
	State    bool

	HasSpeed bool
	Speed    uint32

	HasOscillating bool
	Oscillating    bool

	HasDirection bool
	Direction    uint32

	HasSpeedLevel bool
	SpeedLevel    uint32
}

func (m *FanCommandRequest) TypeID() uint32 { return TypeFanCommandRequest }

func (m *FanCommandRequest) Marshal() []byte {
	var b []byte
	b = wire.AppendUint32Field(b, 1, m.Key)
	b = wire.AppendBoolField(b, 2, m.HasState)
	if m.HasState {
		b = wire.AppendBoolField(b, 3, m.State)
	}
	b = wire.AppendBoolField(b, 4, m.HasSpeed)
	if m.HasSpeed {
		b = wire.AppendUint32Field(b, 5, m.Speed)
	}
	b = wire.AppendBoolField(b, 6, m.HasOscillating)
	if m.HasOscillating {
		b = wire.AppendBoolField(b, 7, m.Oscillating)
	}
	b = wire.AppendBoolField(b, 8, m.HasDirection)
	if m.HasDirection {
		b = wire.AppendUint32Field(b, 9, m.Direction)
	}
	b = wire.AppendBoolField(b, 10, m.HasSpeedLevel)
	if m.HasSpeedLevel {
		b = wire.AppendUint32Field(b, 11, m.SpeedLevel)
	}
	return b
}

func decodeFanCommandRequest(b []byte) (Message, error) {
	m := &FanCommandRequest{}
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
			m.HasState = v != 0
		case 3:
			var v uint64
			v, err = r.Varint()
			m.State = v != 0
		case 4:
			var v uint64
			v, err = r.Varint()
			m.HasSpeed = v != 0
		case 5:
			var v uint64
			v, err = r.Varint()
			m.Speed = uint32(v)
		case 6:
			var v uint64
			v, err = r.Varint()
			m.HasOscillating = v != 0
		case 7:
			var v uint64
			v, err = r.Varint()
			m.Oscillating = v != 0
		case 8:
			var v uint64
			v, err = r.Varint()
			m.HasDirection = v != 0
		case 9:
			var v uint64
			v, err = r.Varint()
			m.Direction = uint32(v)
		case 10:
			var v uint64
			v, err = r.Varint()
			m.HasSpeedLevel = v != 0
		case 11:
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
