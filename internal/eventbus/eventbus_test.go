package eventbus

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New[int]()
	var a, c int
	b.Subscribe(func(v int) { a += v })
	b.Subscribe(func(v int) { c += v * 2 })

	b.Publish(3)

	if a != 3 || c != 6 {
		t.Fatalf("got a=%d c=%d", a, c)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New[string]()
	var got []string
	unsub := b.Subscribe(func(s string) { got = append(got, s) })

	b.Publish("one")
	unsub()
	b.Publish("two")

	if len(got) != 1 || got[0] != "one" {
		t.Fatalf("got %v", got)
	}
}

func TestOnceFiresOnlyOnce(t *testing.T) {
	b := New[int]()
	var got []int
	b.Once(func(v int) { got = append(got, v) })

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after firing, want 0", b.Len())
	}
}

func TestOnceUnsubscribeBeforeDelivery(t *testing.T) {
	b := New[int]()
	var got []int
	unsub := b.Once(func(v int) { got = append(got, v) })
	unsub()

	b.Publish(1)

	if len(got) != 0 {
		t.Fatalf("got %v, want none delivered", got)
	}
}

func TestLenTracksSubscriberCount(t *testing.T) {
	b := New[int]()
	if b.Len() != 0 {
		t.Fatalf("got %d, want 0", b.Len())
	}
	unsub := b.Subscribe(func(int) {})
	if b.Len() != 1 {
		t.Fatalf("got %d, want 1", b.Len())
	}
	unsub()
	if b.Len() != 0 {
		t.Fatalf("got %d, want 0 after unsubscribe", b.Len())
	}
}
