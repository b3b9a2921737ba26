// Package objectfilter decides whether a detection is significant for a zone
package objectfilter

import (
	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
)

// Config is one per-label filter entry from zone configuration
type Config struct {
	Label           string  `yaml:"label" json:"label" validate:"required"`
	Confidence      float64 `yaml:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	WidthMin        float64 `yaml:"width_min" json:"width_min" validate:"gte=0,lte=1"`
	WidthMax        float64 `yaml:"width_max" json:"width_max" validate:"gte=0,lte=1"`
	HeightMin       float64 `yaml:"height_min" json:"height_min" validate:"gte=0,lte=1"`
	HeightMax       float64 `yaml:"height_max" json:"height_max" validate:"gte=0,lte=1"`
	TriggerRecorder bool    `yaml:"trigger_recorder" json:"trigger_recorder"`
}

// Defaulted fills zero width/height bounds with the permissive defaults
func (c Config) Defaulted() Config {
	if c.WidthMax == 0 {
		c.WidthMax = 1
	}
	if c.HeightMax == 0 {
		c.HeightMax = 1
	}
	return c
}

// Filter is a single label's significance test, immutable after construction
type Filter struct {
	res  geometry.Resolution
	cfg  Config
	mask []geometry.Polygon
}

// New builds a Filter from the camera resolution, a label config and the
// detector-wide mask polygons
func New(res geometry.Resolution, cfg Config, mask []geometry.Polygon) *Filter {
	return &Filter{res: res, cfg: cfg.Defaulted(), mask: mask}
}

// Label returns the configured label
func (f *Filter) Label() string { return f.cfg.Label }

// TriggersRecorder reports whether an accepted detection should start the recorder
func (f *Filter) TriggersRecorder() bool { return f.cfg.TriggerRecorder }

// Passes runs the cheap significance checks in order: confidence first,
// then the box bounds, then the mask
func (f *Filter) Passes(obj *detection.Object) bool {
	return f.passesConfidence(obj) &&
		f.passesWidth(obj) &&
		f.passesHeight(obj) &&
		f.passesMask(obj)
}

func (f *Filter) passesConfidence(obj *detection.Object) bool {
	return obj.Confidence > f.cfg.Confidence
}

func (f *Filter) passesWidth(obj *detection.Object) bool {
	w := obj.RelWidth()
	return w > f.cfg.WidthMin && w < f.cfg.WidthMax
}

func (f *Filter) passesHeight(obj *detection.Object) bool {
	h := obj.RelHeight()
	return h > f.cfg.HeightMin && h < f.cfg.HeightMax
}

// passesMask rejects detections whose bottom-center falls inside any mask polygon
func (f *Filter) passesMask(obj *detection.Object) bool {
	for _, m := range f.mask {
		if geometry.ContainsObject(f.res, obj, m) {
			return false
		}
	}
	return true
}
