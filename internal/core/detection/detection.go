// Package detection carries the detector output types shared across services
package detection

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Object is one detection reported by the upstream detector for a frame
// the bounding box is normalized to the frame (0..1 fractions)
// Relevant and TriggerRecorder are the only mutable fields; the membership
// evaluator is the sole writer of those two flags during a cycle
type Object struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`

	RelX1 float64 `json:"rel_x1"`
	RelY1 float64 `json:"rel_y1"`
	RelX2 float64 `json:"rel_x2"`
	RelY2 float64 `json:"rel_y2"`

	Relevant        bool `json:"relevant"`
	TriggerRecorder bool `json:"trigger_recorder"`
}

// RelWidth returns the normalized box width
func (o *Object) RelWidth() float64 { return o.RelX2 - o.RelX1 }

// RelHeight returns the normalized box height
func (o *Object) RelHeight() float64 { return o.RelY2 - o.RelY1 }

// Equal reports value equality between two detections
// the mutable flags are excluded so a detection compares stable across cycles
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.Label == other.Label &&
		o.Confidence == other.Confidence &&
		o.RelX1 == other.RelX1 &&
		o.RelY1 == other.RelY1 &&
		o.RelX2 == other.RelX2 &&
		o.RelY2 == other.RelY2
}

// EqualObjects reports element-wise, order-sensitive value equality
func EqualObjects(a, b []*Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Snapshot is one detector cycle: a frame reference plus its ordered batch
type Snapshot struct {
	FrameID    string    `json:"frame_id"`
	CapturedAt time.Time `json:"captured_at"`
	Objects    []*Object `json:"objects"`
}

var labelFolder = cases.Fold()

// NormalizeLabel lowercases and trims a detector label for registry lookups
func NormalizeLabel(label string) string {
	return labelFolder.String(strings.TrimSpace(label))
}
