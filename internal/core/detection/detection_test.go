package detection

import "testing"

func obj(label string, conf float64) *Object {
	return &Object{Label: label, Confidence: conf, RelX1: 0.1, RelY1: 0.1, RelX2: 0.4, RelY2: 0.9}
}

func TestEqualIgnoresMutableFlags(t *testing.T) {
	t.Parallel()

	a := obj("person", 0.9)
	b := obj("person", 0.9)
	b.Relevant = true
	b.TriggerRecorder = true

	if !a.Equal(b) {
		t.Fatalf("flag differences must not break value equality")
	}

	c := obj("person", 0.8)
	if a.Equal(c) {
		t.Fatalf("confidence difference should break equality")
	}
}

func TestEqualObjects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b []*Object
		want bool
	}{
		{"both empty", nil, []*Object{}, true},
		{"same values", []*Object{obj("person", 0.9)}, []*Object{obj("person", 0.9)}, true},
		{"length differs", []*Object{obj("person", 0.9)}, nil, false},
		{"order sensitive", []*Object{obj("person", 0.9), obj("car", 0.8)}, []*Object{obj("car", 0.8), obj("person", 0.9)}, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := EqualObjects(tc.a, tc.b); got != tc.want {
				t.Fatalf("EqualObjects = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	if got := NormalizeLabel("  Person "); got != "person" {
		t.Fatalf("NormalizeLabel = %q, want person", got)
	}
	if got := NormalizeLabel("CAR"); got != "car" {
		t.Fatalf("NormalizeLabel = %q, want car", got)
	}
}
