package api

import "github.com/LRuesink-WebArray/esphome-native-api/internal/wire"

// DeviceInfoRequest asks the device to describe itself.
type DeviceInfoRequest struct{}

func (m *DeviceInfoRequest) TypeID() uint32  { return TypeDeviceInfoRequest }
func (m *DeviceInfoRequest) Marshal() []byte { return nil }
func decodeDeviceInfoRequest([]byte) (Message, error) {
	return &DeviceInfoRequest{}, nil
}

// DeviceInfoResponse is the full device descriptor, per SPEC_FULL.md §3's
// DeviceInfo expansion.
type DeviceInfoResponse struct {
	UsesPassword                bool
	Name                        string
	MacAddress                  string
	EsphomeVersion              string
	CompilationTime             string
	Model                       string
	HasDeepSleep                bool
	ProjectName                 string
	ProjectVersion              string
	WebserverPort               uint32
	LegacyBluetoothProxyVersion uint32
	BluetoothProxyFeatureFlags  uint32
	Manufacturer                string
	FriendlyName                string
	LegacyVoiceAssistantVersion uint32
	VoiceAssistantFeatureFlags  uint32
	SuggestedArea               string
}

func (m *DeviceInfoResponse) TypeID() uint32 { return TypeDeviceInfoResponse }

func (m *DeviceInfoResponse) Marshal() []byte {
	var b []byte
	b = wire.AppendBoolField(b, 1, m.UsesPassword)
	b = wire.AppendStringField(b, 2, m.Name)
	b = wire.AppendStringField(b, 3, m.MacAddress)
	b = wire.AppendStringField(b, 4, m.EsphomeVersion)
	b = wire.AppendStringField(b, 5, m.CompilationTime)
	b = wire.AppendStringField(b, 6, m.Model)
	b = wire.AppendBoolField(b, 7, m.HasDeepSleep)
	b = wire.AppendStringField(b, 8, m.ProjectName)
	b = wire.AppendStringField(b, 9, m.ProjectVersion)
	b = wire.AppendUint32Field(b, 10, m.WebserverPort)
	b = wire.AppendUint32Field(b, 11, m.LegacyBluetoothProxyVersion)
	b = wire.AppendUint32Field(b, 12, m.BluetoothProxyFeatureFlags)
	b = wire.AppendStringField(b, 13, m.Manufacturer)
	b = wire.AppendStringField(b, 14, m.FriendlyName)
	b = wire.AppendUint32Field(b, 15, m.LegacyVoiceAssistantVersion)
	b = wire.AppendUint32Field(b, 16, m.VoiceAssistantFeatureFlags)
	b = wire.AppendStringField(b, 17, m.SuggestedArea)
	return b
}

func decodeDeviceInfoResponse(b []byte) (Message, error) {
	m := &DeviceInfoResponse{}
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
			m.UsesPassword = v != 0
		case 2:
			m.Name, err = r.String()
		case 3:
			m.MacAddress, err = r.String()
		case 4:
			m.EsphomeVersion, err = r.String()
		case 5:
			m.CompilationTime, err = r.String()
		case 6:
			m.Model, err = r.String()
		case 7:
			var v uint64
			v, err = r.Varint()
			m.HasDeepSleep = v != 0
		case 8:
			m.ProjectName, err = r.String()
		case 9:
			m.ProjectVersion, err = r.String()
		case 10:
			var v uint64
			v, err = r.Varint()
			m.WebserverPort = uint32(v)
		case 11:
			var v uint64
			v, err = r.Varint()
			m.LegacyBluetoothProxyVersion = uint32(v)
		case 12:
			var v uint64
			v, err = r.Varint()
			m.BluetoothProxyFeatureFlags = uint32(v)
		case 13:
			m.Manufacturer, err = r.String()
		case 14:
			m.FriendlyName, err = r.String()
		case 15:
			var v uint64
			v, err = r.Varint()
			m.LegacyVoiceAssistantVersion = uint32(v)
		case 16:
			var v uint64
			v, err = r.Varint()
			m.VoiceAssistantFeatureFlags = uint32(v)
		case 17:
			m.SuggestedArea, err = r.String()
		default:
			err = r.SkipValue(wt)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
