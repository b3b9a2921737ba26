package bus

import (
	"testing"

	"zonewatch/internal/platform/logger"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	b := New(*logger.Named("bus_test"))
	t.Cleanup(b.Close)
	return b
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		topic   string
		want    bool
	}{
		{name: "exact", pattern: "front/zone/porch/objects", topic: "front/zone/porch/objects", want: true},
		{name: "camera wildcard", pattern: "*/zone/porch/objects", topic: "front/zone/porch/objects", want: true},
		{name: "zone wildcard", pattern: "front/zone/*/objects", topic: "front/zone/driveway/objects", want: true},
		{name: "both wildcards", pattern: "*/zone/*/objects", topic: "back/zone/garden/objects", want: true},
		{name: "segment count mismatch", pattern: "*/zone/*", topic: "front/zone/porch/objects", want: false},
		{name: "literal mismatch", pattern: "front/zone/porch/objects", topic: "back/zone/porch/objects", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.topic); got != tt.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}

func TestPublishDeliversToMatchingSubscribers(t *testing.T) {
	b := newTestBus(t)

	all, cancelAll := b.Subscribe("*/zone/*/objects", 4)
	defer cancelAll()
	porch, cancelPorch := b.Subscribe("front/zone/porch/objects", 4)
	defer cancelPorch()

	b.Publish("front/zone/porch/objects", 1)
	b.Publish("back/zone/garden/objects", 2)

	if ev := <-all; ev.Topic != "front/zone/porch/objects" {
		t.Fatalf("wildcard sub first topic = %q", ev.Topic)
	}
	if ev := <-all; ev.Topic != "back/zone/garden/objects" {
		t.Fatalf("wildcard sub second topic = %q", ev.Topic)
	}
	if ev := <-porch; ev.Payload != 1 {
		t.Fatalf("exact sub payload = %v, want 1", ev.Payload)
	}
	select {
	case ev := <-porch:
		t.Fatalf("exact sub received extra event %v", ev)
	default:
	}
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := newTestBus(t)

	ch, cancel := b.Subscribe("a/b", 1)
	defer cancel()

	// second publish overflows the buffer and must drop, not block
	b.Publish("a/b", "first")
	b.Publish("a/b", "dropped")

	if ev := <-ch; ev.Payload != "first" {
		t.Fatalf("payload = %v, want first", ev.Payload)
	}
	select {
	case ev := <-ch:
		t.Fatalf("expected drop, got %v", ev)
	default:
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := newTestBus(t)

	ch, cancel := b.Subscribe("a/b", 1)
	cancel()

	// closed channel reads zero value immediately
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}
	// publishing after cancel must not panic
	b.Publish("a/b", nil)
}
