package objectfilter

import (
	"testing"

	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
)

var res = geometry.Resolution{Width: 100, Height: 100}

func person(conf, x1, y1, x2, y2 float64) *detection.Object {
	return &detection.Object{Label: "person", Confidence: conf, RelX1: x1, RelY1: y1, RelX2: x2, RelY2: y2}
}

func TestPassesConfidenceFloor(t *testing.T) {
	t.Parallel()

	f := New(res, Config{Label: "person", Confidence: 0.7}, nil)

	if f.Passes(person(0.7, 0.1, 0.1, 0.4, 0.9)) {
		t.Fatalf("confidence equal to the floor must not pass")
	}
	if !f.Passes(person(0.71, 0.1, 0.1, 0.4, 0.9)) {
		t.Fatalf("confidence above the floor should pass")
	}
}

func TestPassesBoxBounds(t *testing.T) {
	t.Parallel()

	f := New(res, Config{Label: "person", WidthMin: 0.1, WidthMax: 0.5, HeightMin: 0.1, HeightMax: 0.9}, nil)

	cases := []struct {
		name string
		obj  *detection.Object
		want bool
	}{
		{"inside bounds", person(0.9, 0.1, 0.1, 0.4, 0.8), true},
		{"too narrow", person(0.9, 0.1, 0.1, 0.15, 0.8), false},
		{"too wide", person(0.9, 0.1, 0.1, 0.8, 0.8), false},
		{"too short", person(0.9, 0.1, 0.1, 0.4, 0.15), false},
		{"too tall", person(0.9, 0.1, 0.0, 0.4, 1.0), false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := f.Passes(tc.obj); got != tc.want {
				t.Fatalf("Passes = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPassesMaskRejection(t *testing.T) {
	t.Parallel()

	// mask covers the left half of the frame
	mask := []geometry.Polygon{{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 100}, {X: 0, Y: 100}}}
	f := New(res, Config{Label: "person"}, mask)

	masked := person(0.9, 0.1, 0.1, 0.3, 0.8) // bottom-center (20,80)
	if f.Passes(masked) {
		t.Fatalf("detection inside a mask polygon must be rejected")
	}

	clear := person(0.9, 0.6, 0.1, 0.9, 0.8) // bottom-center (75,80)
	if !f.Passes(clear) {
		t.Fatalf("detection outside all mask polygons should pass")
	}
}

func TestDefaultedBounds(t *testing.T) {
	t.Parallel()

	// zero max bounds default to fully permissive
	f := New(res, Config{Label: "person"}, nil)
	if !f.Passes(person(0.5, 0.1, 0.1, 0.9, 0.9)) {
		t.Fatalf("defaulted filter should accept a large confident detection")
	}
}

func TestTriggersRecorder(t *testing.T) {
	t.Parallel()

	if New(res, Config{Label: "person"}, nil).TriggersRecorder() {
		t.Fatalf("TriggersRecorder default should be false")
	}
	if !New(res, Config{Label: "person", TriggerRecorder: true}, nil).TriggersRecorder() {
		t.Fatalf("TriggersRecorder should reflect config")
	}
}
