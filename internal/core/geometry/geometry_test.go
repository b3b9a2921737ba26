package geometry

import (
	"testing"

	"zonewatch/internal/core/detection"
)

func TestFromNormalized(t *testing.T) {
	t.Parallel()

	res := Resolution{Width: 1920, Height: 1080}
	poly := FromNormalized([][2]float64{{0, 0}, {0.5, 0}, {0.5, 1}, {0, 1}}, res)

	want := Polygon{{0, 0}, {960, 0}, {960, 1080}, {0, 1080}}
	if len(poly) != len(want) {
		t.Fatalf("vertex count = %d, want %d", len(poly), len(want))
	}
	for i := range want {
		if poly[i] != want[i] {
			t.Fatalf("vertex %d = %+v, want %+v", i, poly[i], want[i])
		}
	}
}

func TestPolygonContains(t *testing.T) {
	t.Parallel()

	square := Polygon{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	cases := []struct {
		name string
		poly Polygon
		pt   Point
		want bool
	}{
		{"center inside", square, Point{50, 50}, true},
		{"outside right", square, Point{150, 50}, false},
		{"outside below", square, Point{50, 150}, false},
		{"on edge", square, Point{100, 50}, true},
		{"on vertex", square, Point{0, 0}, true},
		{"bottom edge", square, Point{50, 100}, true},
		{"degenerate two points", Polygon{{0, 0}, {10, 10}}, Point{5, 5}, false},
		{"concave notch excluded", Polygon{{0, 0}, {100, 0}, {100, 100}, {50, 40}, {0, 100}}, Point{50, 80}, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.poly.Contains(tc.pt); got != tc.want {
				t.Fatalf("Contains(%+v) = %v, want %v", tc.pt, got, tc.want)
			}
		})
	}
}

func TestContainsObjectUsesBottomCenter(t *testing.T) {
	t.Parallel()

	res := Resolution{Width: 100, Height: 100}
	// lower half of the frame
	lower := Polygon{{0, 50}, {100, 50}, {100, 100}, {0, 100}}

	// box centered at (50,30) but its feet at y=40: outside the lower half
	head := &detection.Object{RelX1: 0.4, RelY1: 0.2, RelX2: 0.6, RelY2: 0.4}
	if ContainsObject(res, head, lower) {
		t.Fatalf("object with bottom-center above the polygon should be outside")
	}

	// same x extent but feet at y=80: inside
	feet := &detection.Object{RelX1: 0.4, RelY1: 0.6, RelX2: 0.6, RelY2: 0.8}
	if !ContainsObject(res, feet, lower) {
		t.Fatalf("object with bottom-center inside the polygon should be contained")
	}
}
