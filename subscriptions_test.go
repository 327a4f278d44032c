package esphome

import (
	"testing"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
)

// TestRouteStateEmitsBothGenericAndKindSpecificChannels covers spec.md
// §4.5's requirement that every inbound state message is delivered both on
// the generic state channel and on its kind-specific channel.
func TestRouteStateEmitsBothGenericAndKindSpecificChannels(t *testing.T) {
	c, err := New(ConnectionConfig{Host: "127.0.0.1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	var generic StateEvent
	var gotGeneric bool
	c.OnState(func(e StateEvent) { generic = e; gotGeneric = true })

	var kindSpecific *api.SwitchStateResponse
	c.OnSwitchState(func(m *api.SwitchStateResponse) { kindSpecific = m })

	msg := &api.SwitchStateResponse{Key: 7, State: true}
	if !c.routeState(api.TypeSwitchStateResponse, msg) {
		t.Fatal("routeState returned false for a known state kind")
	}

	if !gotGeneric {
		t.Fatal("OnState subscriber never fired")
	}
	if generic.Key != 7 || generic.Domain != "switch" {
		t.Fatalf("got %+v, want key=7 domain=switch", generic)
	}
	if kindSpecific == nil || kindSpecific.Key != 7 || !kindSpecific.State {
		t.Fatalf("OnSwitchState subscriber did not receive the message: %+v", kindSpecific)
	}
}

func TestKindSpecificChannelsAreIndependent(t *testing.T) {
	c, err := New(ConnectionConfig{Host: "127.0.0.1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	var sawSwitch, sawBinarySensor bool
	c.OnSwitchState(func(*api.SwitchStateResponse) { sawSwitch = true })
	c.OnBinarySensorState(func(*api.BinarySensorStateResponse) { sawBinarySensor = true })

	c.routeState(api.TypeBinarySensorStateResponse, &api.BinarySensorStateResponse{Key: 1, State: true})

	if sawSwitch {
		t.Fatal("OnSwitchState fired for a binary_sensor update")
	}
	if !sawBinarySensor {
		t.Fatal("OnBinarySensorState never fired")
	}
}
