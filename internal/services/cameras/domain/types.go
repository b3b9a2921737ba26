// Package domain holds camera identity, frame references and pipeline configuration
package domain

import (
	"time"

	"zonewatch/internal/core/geometry"
	"zonewatch/internal/core/objectfilter"
)

// SharedFrame identifies which video frame a detection batch belongs to
// it is an opaque reference; the pixel data never enters this process
type SharedFrame struct {
	CameraIdentifier string    `json:"camera_identifier"`
	FrameID          string    `json:"frame_id"`
	CapturedAt       time.Time `json:"captured_at"`
}

// MaskConfig is one detector mask polygon in normalized coordinates
type MaskConfig struct {
	Coordinates [][2]float64 `yaml:"coordinates" json:"coordinates" validate:"min=3"`
}

// DetectorConfig carries the detector-wide settings shared by all zones of a camera
type DetectorConfig struct {
	Mask []MaskConfig `yaml:"mask" json:"mask" validate:"dive"`
}

// ZoneConfig is one configured zone of a camera
type ZoneConfig struct {
	Name        string               `yaml:"name" json:"name" validate:"required"`
	Coordinates [][2]float64         `yaml:"coordinates" json:"coordinates" validate:"min=3"`
	Labels      []objectfilter.Config `yaml:"labels" json:"labels" validate:"min=1,dive"`
}

// Camera is one configured camera and its zones
type Camera struct {
	Identifier string              `yaml:"identifier" json:"identifier" validate:"required"`
	Name       string              `yaml:"name" json:"name"`
	Resolution geometry.Resolution `yaml:"resolution" json:"resolution" validate:"required"`
	Detector   DetectorConfig      `yaml:"detector" json:"detector"`
	Zones      []ZoneConfig        `yaml:"zones" json:"zones" validate:"dive"`
}

// MaskPolygons denormalizes the camera's detector mask once, at startup
func (c Camera) MaskPolygons() []geometry.Polygon {
	if len(c.Detector.Mask) == 0 {
		return nil
	}
	out := make([]geometry.Polygon, 0, len(c.Detector.Mask))
	for _, m := range c.Detector.Mask {
		out = append(out, geometry.FromNormalized(m.Coordinates, c.Resolution))
	}
	return out
}

// Config is the full camera pipeline configuration
type Config struct {
	Cameras []Camera `yaml:"cameras" json:"cameras" validate:"min=1,dive"`
}

// Camera returns the camera with the given identifier, or false
func (c Config) Camera(identifier string) (Camera, bool) {
	for _, cam := range c.Cameras {
		if cam.Identifier == identifier {
			return cam, true
		}
	}
	return Camera{}, false
}
