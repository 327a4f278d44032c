// Package api defines the ESPHome Native API messages this client speaks,
// hand-marshaled against the api.proto field layout (see SPEC_FULL.md
// §WIRE) and indexed by a compile-time registry rather than a
// reflection-based type map, per the design note in spec.md §9.
package api

import "fmt"

// Message is any Native API message this module knows how to encode.
type Message interface {
	// TypeID returns this message's wire type identifier.
	TypeID() uint32
	// Marshal returns the wire-format-encoded payload (not including the
	// frame preamble/length/type header).
	Marshal() []byte
}

// Message type identifiers, matching the ESPHome Native API's api.proto
// enum values.
const (
	TypeHelloRequest      uint32 = 1
	TypeHelloResponse     uint32 = 2
	TypeConnectRequest    uint32 = 3
	TypeConnectResponse   uint32 = 4
	TypeDisconnectRequest uint32 = 5
	TypeDisconnectResponse uint32 = 6
	TypePingRequest       uint32 = 7
	TypePingResponse      uint32 = 8
	TypeDeviceInfoRequest uint32 = 9
	TypeDeviceInfoResponse uint32 = 10

	TypeListEntitiesRequest             uint32 = 11
	TypeListEntitiesBinarySensorResponse uint32 = 12
	TypeListEntitiesCoverResponse        uint32 = 13
	TypeListEntitiesFanResponse          uint32 = 14
	TypeListEntitiesLightResponse        uint32 = 15
	TypeListEntitiesSensorResponse       uint32 = 16
	TypeListEntitiesSwitchResponse       uint32 = 17
	TypeListEntitiesTextSensorResponse   uint32 = 18
	TypeListEntitiesDoneResponse         uint32 = 19

	TypeSubscribeStatesRequest uint32 = 20
	TypeBinarySensorStateResponse uint32 = 21
	TypeCoverStateResponse        uint32 = 22
	TypeFanStateResponse          uint32 = 23
	TypeLightStateResponse        uint32 = 24
	TypeSensorStateResponse       uint32 = 25
	TypeSwitchStateResponse       uint32 = 26
	TypeTextSensorStateResponse   uint32 = 27

	TypeSubscribeLogsRequest  uint32 = 28
	TypeSubscribeLogsResponse uint32 = 29

	TypeCoverCommandRequest  uint32 = 30
	TypeFanCommandRequest    uint32 = 31
	TypeLightCommandRequest  uint32 = 32
	TypeSwitchCommandRequest uint32 = 33
)

// decodeFunc unmarshals a message payload of a known type.
type decodeFunc func([]byte) (Message, error)

var registry = map[uint32]struct {
	name   string
	decode decodeFunc
}{
	TypeHelloRequest:      {"HelloRequest", decodeHelloRequest},
	TypeHelloResponse:     {"HelloResponse", decodeHelloResponse},
	TypeConnectRequest:    {"ConnectRequest", decodeConnectRequest},
	TypeConnectResponse:   {"ConnectResponse", decodeConnectResponse},
	TypeDisconnectRequest: {"DisconnectRequest", decodeDisconnectRequest},
	TypeDisconnectResponse: {"DisconnectResponse", decodeDisconnectResponse},
	TypePingRequest:       {"PingRequest", decodePingRequest},
	TypePingResponse:      {"PingResponse", decodePingResponse},
	TypeDeviceInfoRequest: {"DeviceInfoRequest", decodeDeviceInfoRequest},
	TypeDeviceInfoResponse: {"DeviceInfoResponse", decodeDeviceInfoResponse},

	TypeListEntitiesRequest:              {"ListEntitiesRequest", decodeListEntitiesRequest},
	TypeListEntitiesBinarySensorResponse: {"ListEntitiesBinarySensorResponse", decodeListEntitiesBinarySensorResponse},
	TypeListEntitiesCoverResponse:        {"ListEntitiesCoverResponse", decodeListEntitiesCoverResponse},
	TypeListEntitiesFanResponse:          {"ListEntitiesFanResponse", decodeListEntitiesFanResponse},
	TypeListEntitiesLightResponse:        {"ListEntitiesLightResponse", decodeListEntitiesLightResponse},
	TypeListEntitiesSensorResponse:       {"ListEntitiesSensorResponse", decodeListEntitiesSensorResponse},
	TypeListEntitiesSwitchResponse:       {"ListEntitiesSwitchResponse", decodeListEntitiesSwitchResponse},
	TypeListEntitiesTextSensorResponse:   {"ListEntitiesTextSensorResponse", decodeListEntitiesTextSensorResponse},
	TypeListEntitiesDoneResponse:         {"ListEntitiesDoneResponse", decodeListEntitiesDoneResponse},

	TypeSubscribeStatesRequest:    {"SubscribeStatesRequest", decodeSubscribeStatesRequest},
	TypeBinarySensorStateResponse: {"BinarySensorStateResponse", decodeBinarySensorStateResponse},
	TypeCoverStateResponse:        {"CoverStateResponse", decodeCoverStateResponse},
	TypeFanStateResponse:          {"FanStateResponse", decodeFanStateResponse},
	TypeLightStateResponse:        {"LightStateResponse", decodeLightStateResponse},
	TypeSensorStateResponse:       {"SensorStateResponse", decodeSensorStateResponse},
	TypeSwitchStateResponse:       {"SwitchStateResponse", decodeSwitchStateResponse},
	TypeTextSensorStateResponse:   {"TextSensorStateResponse", decodeTextSensorStateResponse},

	TypeSubscribeLogsRequest:  {"SubscribeLogsRequest", decodeSubscribeLogsRequest},
	TypeSubscribeLogsResponse: {"SubscribeLogsResponse", decodeSubscribeLogsResponse},

	TypeCoverCommandRequest:  {"CoverCommandRequest", decodeCoverCommandRequest},
	TypeFanCommandRequest:    {"FanCommandRequest", decodeFanCommandRequest},
	TypeLightCommandRequest:  {"LightCommandRequest", decodeLightCommandRequest},
	TypeSwitchCommandRequest: {"SwitchCommandRequest", decodeSwitchCommandRequest},
}

// Decode looks up msgType in the registry and unmarshals payload into the
// corresponding Message. An unrecognized type is not an error: the caller
// should skip it, since ESPHome devices may send message kinds this client
// does not model.
func Decode(msgType uint32, payload []byte) (Message, bool, error) {
	entry, ok := registry[msgType]
	if !ok {
		return nil, false, nil
	}
	msg, err := entry.decode(payload)
	if err != nil {
		return nil, true, fmt.Errorf("api: decode %s: %w", entry.name, err)
	}
	return msg, true, nil
}

// TypeName returns the human-readable name for a known message type, or
// "unknown" otherwise. Used for logging and error context.
func TypeName(msgType uint32) string {
	if entry, ok := registry[msgType]; ok {
		return entry.name
	}
	return "unknown"
}
