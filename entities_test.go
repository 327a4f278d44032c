package esphome

import (
	"testing"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/wire"
)

func binarySensorHeaderPayload(objectID string, key uint32, name, uniqueID string) []byte {
	b := wire.AppendStringField(nil, 1, objectID)
	b = wire.AppendUint32Field(b, 2, key)
	b = wire.AppendStringField(b, 3, name)
	b = wire.AppendStringField(b, 4, uniqueID)
	return b
}

// TestRouteEntityEmitsEntityEvent covers spec.md §4.5's "for every entity
// observed, the Facade emits an entity event" rule, which had no OnEntity
// subscription anywhere in the tree.
func TestRouteEntityEmitsEntityEvent(t *testing.T) {
	c, err := New(ConnectionConfig{Host: "127.0.0.1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	var got *EntityInfo
	c.OnEntity(func(info *EntityInfo) { got = info })

	payload := binarySensorHeaderPayload("motion_1", 42, "Motion", "uid-motion-1")
	msg, ok, err := api.Decode(api.TypeListEntitiesBinarySensorResponse, payload)
	if err != nil || !ok {
		t.Fatalf("decode: ok=%v err=%v", ok, err)
	}
	if !c.routeEntity(api.TypeListEntitiesBinarySensorResponse, msg) {
		t.Fatal("routeEntity returned false for a known entity kind")
	}

	if got == nil {
		t.Fatal("OnEntity subscriber never fired")
	}
	if got.Key != 42 || got.Domain != "binary_sensor" || got.Name != "Motion" {
		t.Fatalf("got %+v, want key=42 domain=binary_sensor name=Motion", got)
	}

	if info, err := c.Entity(42); err != nil || info != got {
		t.Fatal("entity catalog was not also updated")
	}
}

// TestRouteEntityDoneDoesNotEmitEntityEvent confirms the terminal
// ListEntitiesDoneResponse is not itself treated as an observed entity.
func TestRouteEntityDoneDoesNotEmitEntityEvent(t *testing.T) {
	c, err := New(ConnectionConfig{Host: "127.0.0.1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	fired := false
	c.OnEntity(func(*EntityInfo) { fired = true })

	if !c.routeEntity(api.TypeListEntitiesDoneResponse, &api.ListEntitiesDoneResponse{}) {
		t.Fatal("routeEntity returned false for ListEntitiesDoneResponse")
	}
	if fired {
		t.Fatal("OnEntity must not fire for the done marker")
	}
}
