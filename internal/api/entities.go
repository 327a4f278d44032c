package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// ListEntitiesRequest asks the device to enumerate its entity catalog. The
// device replies with one ListEntities*Response per entity, in no
// particular order, followed by exactly one ListEntitiesDoneResponse.
type ListEntitiesRequest struct{}

func (m *ListEntitiesRequest) TypeID() uint32  { return TypeListEntitiesRequest }
func (m *ListEntitiesRequest) Marshal() []byte { return nil }
func decodeListEntitiesRequest([]byte) (Message, error) {
	return &ListEntitiesRequest{}, nil
}

// ListEntitiesDoneResponse marks the end of the entity catalog stream.
type ListEntitiesDoneResponse struct{}

func (m *ListEntitiesDoneResponse) TypeID() uint32  { return TypeListEntitiesDoneResponse }
func (m *ListEntitiesDoneResponse) Marshal() []byte { return nil }
func decodeListEntitiesDoneResponse([]byte) (Message, error) {
	return &ListEntitiesDoneResponse{}, nil
}

// entityHeader is the set of fields every ListEntities*Response shares.
// It is not itself a Message; each kind embeds it and adds its own
// kind-specific fields starting at field number 10.
type entityHeader struct {
	ObjectID string
	Key      uint32
	Name     string
	UniqueID string
}

func (h *entityHeader) marshalInto(b []byte) []byte {
	b = wire.AppendStringField(b, 1, h.ObjectID)
	b = wire.AppendUint32Field(b, 2, h.Key)
	b = wire.AppendStringField(b, 3, h.Name)
	b = wire.AppendStringField(b, 4, h.UniqueID)
	return b
}

func (h *entityHeader) decodeField(r *wire.Reader, fn int, wt wire.WireType) (handled bool, err error) {
	switch fn {
	case 1:
		h.ObjectID, err = r.String()
	case 2:
		var v uint64
		v, err = r.Varint()
		h.Key = uint32(v)
	case 3:
		h.Name, err = r.String()
	case 4:
		h.UniqueID, err = r.String()
	default:
		return false, nil
	}
	return true, err
}

// ListEntitiesBinarySensorResponse describes one binary_sensor entity.
type ListEntitiesBinarySensorResponse struct {
	entityHeader
	DeviceClass string
	IsStatusDiagnostic bool
}

func (m *ListEntitiesBinarySensorResponse) TypeID() uint32 { return TypeListEntitiesBinarySensorResponse }

func (m *ListEntitiesBinarySensorResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendStringField(b, 10, m.DeviceClass)
	b = wire.AppendBoolField(b, 11, m.IsStatusDiagnostic)
	return b
}

func decodeListEntitiesBinarySensorResponse(b []byte) (Message, error) {
	m := &ListEntitiesBinarySensorResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			m.DeviceClass, err = r.String()
		case 11:
			var v uint64
			v, err = r.Varint()
			m.IsStatusDiagnostic = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesSwitchResponse describes one switch entity.
type ListEntitiesSwitchResponse struct {
	entityHeader
	Icon          string
	AssumedState  bool
	DeviceClass   string
}

func (m *ListEntitiesSwitchResponse) TypeID() uint32 { return TypeListEntitiesSwitchResponse }

func (m *ListEntitiesSwitchResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendStringField(b, 10, m.Icon)
	b = wire.AppendBoolField(b, 11, m.AssumedState)
	b = wire.AppendStringField(b, 12, m.DeviceClass)
	return b
}

func decodeListEntitiesSwitchResponse(b []byte) (Message, error) {
	m := &ListEntitiesSwitchResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			m.Icon, err = r.String()
		case 11:
			var v uint64
			v, err = r.Varint()
			m.AssumedState = v != 0
		case 12:
			m.DeviceClass, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesLightResponse describes one light entity.
type ListEntitiesLightResponse struct {
	entityHeader
	SupportsBrightness bool
	SupportsRGB        bool
	SupportsColorTemperature bool
	MinMireds float32
	MaxMireds float32
}

func (m *ListEntitiesLightResponse) TypeID() uint32 { return TypeListEntitiesLightResponse }

func (m *ListEntitiesLightResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendBoolField(b, 10, m.SupportsBrightness)
	b = wire.AppendBoolField(b, 11, m.SupportsRGB)
	b = wire.AppendBoolField(b, 12, m.SupportsColorTemperature)
	if m.MinMireds != 0 {
		b = wire.AppendFixed32Field(b, 13, float32bits(m.MinMireds))
	}
	if m.MaxMireds != 0 {
		b = wire.AppendFixed32Field(b, 14, float32bits(m.MaxMireds))
	}
	return b
}

func decodeListEntitiesLightResponse(b []byte) (Message, error) {
	m := &ListEntitiesLightResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			var v uint64
			v, err = r.Varint()
			m.SupportsBrightness = v != 0
		case 11:
			var v uint64
			v, err = r.Varint()
			m.SupportsRGB = v != 0
		case 12:
			var v uint64
			v, err = r.Varint()
			m.SupportsColorTemperature = v != 0
		case 13:
			var v uint32
			v, err = r.Fixed32()
			m.MinMireds = float32frombits(v)
		case 14:
			var v uint32
			v, err = r.Fixed32()
			m.MaxMireds = float32frombits(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesSensorResponse describes one sensor entity.
type ListEntitiesSensorResponse struct {
	entityHeader
	Icon              string
	UnitOfMeasurement string
	AccuracyDecimals  uint32
	DeviceClass       string
	StateClass        uint32
}

func (m *ListEntitiesSensorResponse) TypeID() uint32 { return TypeListEntitiesSensorResponse }

func (m *ListEntitiesSensorResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendStringField(b, 10, m.Icon)
	b = wire.AppendStringField(b, 11, m.UnitOfMeasurement)
	b = wire.AppendUint32Field(b, 12, m.AccuracyDecimals)
	b = wire.AppendStringField(b, 13, m.DeviceClass)
	b = wire.AppendUint32Field(b, 14, m.StateClass)
	return b
}

func decodeListEntitiesSensorResponse(b []byte) (Message, error) {
	m := &ListEntitiesSensorResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			m.Icon, err = r.String()
		case 11:
			m.UnitOfMeasurement, err = r.String()
		case 12:
			var v uint64
			v, err = r.Varint()
			m.AccuracyDecimals = uint32(v)
		case 13:
			m.DeviceClass, err = r.String()
		case 14:
			var v uint64
			v, err = r.Varint()
			m.StateClass = uint32(v)
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesCoverResponse describes one cover entity.
type ListEntitiesCoverResponse struct {
	entityHeader
	AssumedState   bool
	SupportsPosition bool
	SupportsTilt     bool
	DeviceClass      string
}

func (m *ListEntitiesCoverResponse) TypeID() uint32 { return TypeListEntitiesCoverResponse }

func (m *ListEntitiesCoverResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendBoolField(b, 10, m.AssumedState)
	b = wire.AppendBoolField(b, 11, m.SupportsPosition)
	b = wire.AppendBoolField(b, 12, m.SupportsTilt)
	b = wire.AppendStringField(b, 13, m.DeviceClass)
	return b
}

func decodeListEntitiesCoverResponse(b []byte) (Message, error) {
	m := &ListEntitiesCoverResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			var v uint64
			v, err = r.Varint()
			m.AssumedState = v != 0
		case 11:
			var v uint64
			v, err = r.Varint()
			m.SupportsPosition = v != 0
		case 12:
			var v uint64
			v, err = r.Varint()
			m.SupportsTilt = v != 0
		case 13:
			m.DeviceClass, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesFanResponse describes one fan entity.
type ListEntitiesFanResponse struct {
	entityHeader
	SupportsOscillation bool
	SupportsSpeed       bool
	SupportsDirection   bool
	SupportedSpeedCount uint32
	SupportsSpeedLevel  bool
}

func (m *ListEntitiesFanResponse) TypeID() uint32 { return TypeListEntitiesFanResponse }

func (m *ListEntitiesFanResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendBoolField(b, 10, m.SupportsOscillation)
	b = wire.AppendBoolField(b, 11, m.SupportsSpeed)
	b = wire.AppendBoolField(b, 12, m.SupportsDirection)
	b = wire.AppendUint32Field(b, 13, m.SupportedSpeedCount)
	b = wire.AppendBoolField(b, 14, m.SupportsSpeedLevel)
	return b
}

func decodeListEntitiesFanResponse(b []byte) (Message, error) {
	m := &ListEntitiesFanResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			var v uint64
			v, err = r.Varint()
			m.SupportsOscillation = v != 0
		case 11:
			var v uint64
			v, err = r.Varint()
			m.SupportsSpeed = v != 0
		case 12:
			var v uint64
			v, err = r.Varint()
			m.SupportsDirection = v != 0
		case 13:
			var v uint64
			v, err = r.Varint()
			m.SupportedSpeedCount = uint32(v)
		case 14:
			var v uint64
			v, err = r.Varint()
			m.SupportsSpeedLevel = v != 0
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListEntitiesTextSensorResponse describes one text_sensor entity.
type ListEntitiesTextSensorResponse struct {
	entityHeader
	Icon        string
	DeviceClass string
}

func (m *ListEntitiesTextSensorResponse) TypeID() uint32 { return TypeListEntitiesTextSensorResponse }

func (m *ListEntitiesTextSensorResponse) Marshal() []byte {
	b := m.entityHeader.marshalInto(nil)
	b = wire.AppendStringField(b, 10, m.Icon)
	b = wire.AppendStringField(b, 11, m.DeviceClass)
	return b
}

func decodeListEntitiesTextSensorResponse(b []byte) (Message, error) {
	m := &ListEntitiesTextSensorResponse{}
	r := wire.NewReader(b)
	for !r.Done() {
		fn, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if handled, err := m.entityHeader.decodeField(r, fn, wt); handled {
			if err != nil {
				return nil, err
			}
			continue
		}
		switch fn {
		case 10:
			m.Icon, err = r.String()
		case 11:
			m.DeviceClass, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
