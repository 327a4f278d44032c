package api

import (
	"testing"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/wire"
)

func TestHelloRoundTrip(t *testing.T) {
	want := &HelloRequest{ClientInfo: "esphome-native-api", APIVersionMajor: 1, APIVersionMinor: 9}
	got, ok, err := Decode(TypeHelloRequest, want.Marshal())
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	hr, ok := got.(*HelloRequest)
	if !ok {
		t.Fatalf("got %T", got)
	}
	if *hr != *want {
		t.Fatalf("got %+v, want %+v", hr, want)
	}
}

func TestDeviceInfoRoundTrip(t *testing.T) {
	want := &DeviceInfoResponse{
		UsesPassword:   true,
		Name:           "kitchen",
		MacAddress:     "AA:BB:CC:DD:EE:FF",
		EsphomeVersion: "2024.6.0",
		HasDeepSleep:   true,
		SuggestedArea:  "Kitchen",
	}
	got, ok, err := Decode(TypeDeviceInfoResponse, want.Marshal())
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	dr := got.(*DeviceInfoResponse)
	if *dr != *want {
		t.Fatalf("got %+v, want %+v", dr, want)
	}
}

func TestLightStateRoundTrip(t *testing.T) {
	want := &LightStateResponse{Key: 42, State: true, Brightness: 0.75}
	got, ok, err := Decode(TypeLightStateResponse, want.Marshal())
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	lr := got.(*LightStateResponse)
	if *lr != *want {
		t.Fatalf("got %+v, want %+v", lr, want)
	}
}

func TestFanCommandSpeedLevelRoundTrip(t *testing.T) {
	want := &FanCommandRequest{Key: 7, HasSpeedLevel: true, SpeedLevel: 3}
	got, ok, err := Decode(TypeFanCommandRequest, want.Marshal())
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	fr := got.(*FanCommandRequest)
	if *fr != *want {
		t.Fatalf("got %+v, want %+v", fr, want)
	}
}

func TestFanStateSpeedLevelRoundTrip(t *testing.T) {
	want := &FanStateResponse{Key: 7, State: true, SpeedLevel: 3}
	got, ok, err := Decode(TypeFanStateResponse, want.Marshal())
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	fr := got.(*FanStateResponse)
	if *fr != *want {
		t.Fatalf("got %+v, want %+v", fr, want)
	}
}

func TestDecodeUnknownTypeIsNotAnError(t *testing.T) {
	_, ok, err := Decode(9999, []byte{0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for unregistered type")
	}
}

func TestSkipsUnknownFields(t *testing.T) {
	// field 99 (varint) followed by known field 1 (InvalidPassword); the
	// decoder must skip 99 without erroring.
	var b []byte
	b = wire.AppendTag(b, 99, wire.WireVarint)
	b = append(b, 0x05)
	b = wire.AppendTag(b, 1, wire.WireVarint)
	b = append(b, 0x01)
	got, ok, err := Decode(TypeConnectResponse, b)
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	cr := got.(*ConnectResponse)
	if !cr.InvalidPassword {
		t.Fatalf("got %+v", cr)
	}
}
