// Package geometry provides pixel-space polygon primitives for zone containment
package geometry

import (
	"math"

	"zonewatch/internal/core/detection"
)

// Resolution is a camera's working frame size in pixels
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a pixel coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Polygon is an ordered, implicitly closed vertex sequence in pixel space
type Polygon []Point

// FromNormalized denormalizes fractional (0..1) coordinate pairs against a resolution
// done once at construction; the resulting polygon is never mutated
func FromNormalized(coords [][2]float64, res Resolution) Polygon {
	poly := make(Polygon, 0, len(coords))
	for _, c := range coords {
		poly = append(poly, Point{
			X: int(math.Round(c[0] * float64(res.Width))),
			Y: int(math.Round(c[1] * float64(res.Height))),
		})
	}
	return poly
}

// Contains reports whether pt lies inside the polygon, boundary inclusive
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[i], p[j]
		if onSegment(pt, a, b) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			cross := float64(b.X-a.X)*float64(pt.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(pt.X) < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ContainsObject tests the detection's bottom-center pixel against the polygon
// bottom-center tracks where the object touches the ground, which is what
// zone membership cares about for people and vehicles
func ContainsObject(res Resolution, obj *detection.Object, poly Polygon) bool {
	x := int(math.Round((obj.RelX1 + obj.RelX2) / 2 * float64(res.Width)))
	y := int(math.Round(obj.RelY2 * float64(res.Height)))
	return poly.Contains(Point{X: x, Y: y})
}

func onSegment(pt, a, b Point) bool {
	cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
	if cross != 0 {
		return false
	}
	return min(a.X, b.X) <= pt.X && pt.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= pt.Y && pt.Y <= max(a.Y, b.Y)
}
