package service

import (
	"testing"
	"time"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/objectfilter"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/logger"
	camdomain "zonewatch/internal/services/cameras/domain"
	"zonewatch/internal/services/zones/domain"
)

func fullFrameZone(labels ...objectfilter.Config) (camdomain.Camera, camdomain.ZoneConfig) {
	cam := camdomain.Camera{Identifier: "front_door"}
	cam.Resolution.Width = 100
	cam.Resolution.Height = 100
	cfg := camdomain.ZoneConfig{
		Name:        "porch",
		Coordinates: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Labels:      labels,
	}
	return cam, cfg
}

func centered(label string) *detection.Object {
	// bottom-center lands on pixel (50,50) of a 100x100 frame
	return &detection.Object{Label: label, Confidence: 0.9, RelX1: 0.4, RelY1: 0.3, RelX2: 0.6, RelY2: 0.5}
}

func frame(id string) camdomain.SharedFrame {
	return camdomain.SharedFrame{CameraIdentifier: "front_door", FrameID: id, CapturedAt: time.Unix(1700000000, 0)}
}

func newBusAndEvents(t *testing.T) (*bus.Bus, <-chan bus.Event) {
	t.Helper()
	b := bus.New(*logger.Named("test"))
	t.Cleanup(b.Close)
	ch, cancel := b.Subscribe(domain.TopicPattern, 16)
	t.Cleanup(cancel)
	return b, ch
}

func drainEvents(ch <-chan bus.Event) []bus.Event {
	var out []bus.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestEvaluatePreservesInputOrder(t *testing.T) {
	b, _ := newBusAndEvents(t)
	cam, cfg := fullFrameZone(
		objectfilter.Config{Label: "person"},
		objectfilter.Config{Label: "car"},
	)
	z := NewZone(b, cam, cfg)

	first := centered("person")
	second := centered("car")
	third := centered("person")
	third.RelX1, third.RelX2 = 0.2, 0.4 // distinct value so all three survive

	got := z.Evaluate(frame("f1"), []*detection.Object{first, second, third})
	if len(got) != 3 {
		t.Fatalf("accepted = %d, want 3", len(got))
	}
	if got[0] != first || got[1] != second || got[2] != third {
		t.Fatalf("accepted objects re-ordered")
	}
}

func TestUnconfiguredLabelNeverAccepted(t *testing.T) {
	b, events := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person"})
	z := NewZone(b, cam, cfg)

	got := z.Evaluate(frame("f1"), []*detection.Object{centered("car")})
	if len(got) != 0 {
		t.Fatalf("unconfigured label accepted: %d", len(got))
	}
	// prior state is empty too, so no event may fire
	if evs := drainEvents(events); len(evs) != 0 {
		t.Fatalf("expected no events, got %d", len(evs))
	}
}

func TestOutsidePolygonExcludedAndUntouched(t *testing.T) {
	b, _ := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person"})
	// shrink the zone to the left quarter
	cfg.Coordinates = [][2]float64{{0, 0}, {0.25, 0}, {0.25, 1}, {0, 1}}
	z := NewZone(b, cam, cfg)

	outside := centered("person") // bottom-center (50,50), right of the zone
	got := z.Evaluate(frame("f1"), []*detection.Object{outside})
	if len(got) != 0 {
		t.Fatalf("object outside polygon accepted")
	}
	if outside.Relevant || outside.TriggerRecorder {
		t.Fatalf("rejected object flags must stay untouched")
	}
}

func TestAcceptedObjectFlagged(t *testing.T) {
	b, _ := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person"})
	z := NewZone(b, cam, cfg)

	obj := centered("person")
	got := z.Evaluate(frame("f1"), []*detection.Object{obj})
	if len(got) != 1 {
		t.Fatalf("accepted = %d, want 1", len(got))
	}
	if !obj.Relevant {
		t.Fatalf("accepted object must be marked relevant")
	}
	if obj.TriggerRecorder {
		t.Fatalf("filter without trigger_recorder must not set the flag")
	}
}

func TestTriggerRecorderFollowsFilter(t *testing.T) {
	b, _ := newBusAndEvents(t)
	cam, cfg := fullFrameZone(
		objectfilter.Config{Label: "person", TriggerRecorder: true},
		objectfilter.Config{Label: "car"},
	)
	z := NewZone(b, cam, cfg)

	person := centered("person")
	car := centered("car")
	z.Evaluate(frame("f1"), []*detection.Object{person, car})

	if !person.TriggerRecorder {
		t.Fatalf("person filter triggers the recorder, flag not set")
	}
	if car.TriggerRecorder {
		t.Fatalf("car filter does not trigger the recorder, flag set anyway")
	}
}

func TestMembershipChangePublishesOnce(t *testing.T) {
	b, events := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person"})
	z := NewZone(b, cam, cfg)

	batch := func() []*detection.Object { return []*detection.Object{centered("person")} }

	z.Evaluate(frame("f1"), batch())
	z.Evaluate(frame("f2"), batch()) // identical membership, must be a no-op

	evs := drainEvents(events)
	if len(evs) != 1 {
		t.Fatalf("events published = %d, want 1", len(evs))
	}

	ev, ok := evs[0].Payload.(domain.MembershipEvent)
	if !ok {
		t.Fatalf("payload type %T", evs[0].Payload)
	}
	if ev.CameraIdentifier != "front_door" || ev.Zone.Name != "porch" {
		t.Fatalf("unexpected event identity: %+v", ev)
	}
	if evs[0].Topic != "front_door/zone/porch/objects" {
		t.Fatalf("topic = %q", evs[0].Topic)
	}
	if len(ev.Objects) != 1 || ev.Objects[0].Label != "person" {
		t.Fatalf("event objects wrong: %+v", ev.Objects)
	}
	if ev.Frame.FrameID != "f1" {
		t.Fatalf("event frame = %q, want f1", ev.Frame.FrameID)
	}
}

func TestMembershipClearedPublishesAgain(t *testing.T) {
	b, events := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person"})
	z := NewZone(b, cam, cfg)

	z.Evaluate(frame("f1"), []*detection.Object{centered("person")})
	z.Evaluate(frame("f2"), nil) // person left the zone

	evs := drainEvents(events)
	if len(evs) != 2 {
		t.Fatalf("events published = %d, want 2", len(evs))
	}
	last, _ := evs[1].Payload.(domain.MembershipEvent)
	if len(last.Objects) != 0 {
		t.Fatalf("clear event should carry empty membership")
	}
	if len(z.ObjectsInZone()) != 0 {
		t.Fatalf("stored membership should be empty after clear")
	}
}

func TestFilterRejectionBeforeGeometry(t *testing.T) {
	b, _ := newBusAndEvents(t)
	cam, cfg := fullFrameZone(objectfilter.Config{Label: "person", Confidence: 0.95})
	z := NewZone(b, cam, cfg)

	weak := centered("person") // confidence 0.9, below the floor
	if got := z.Evaluate(frame("f1"), []*detection.Object{weak}); len(got) != 0 {
		t.Fatalf("low-confidence detection accepted")
	}
	if weak.Relevant {
		t.Fatalf("rejected detection marked relevant")
	}
}
