// Package config loads and validates the camera pipeline configuration
// zone evaluation assumes its inputs are valid; this loader is where that
// assumption is enforced
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"zonewatch/internal/core/detection"
	perr "zonewatch/internal/platform/errors"
	"zonewatch/internal/platform/net/http/bind"
	"zonewatch/internal/services/cameras/domain"
)

// Load reads, parses and validates the camera config file
func Load(path string) (domain.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read camera config %q", path)
	}
	return Parse(raw)
}

// Parse validates a raw YAML document into a domain.Config
func Parse(raw []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return domain.Config{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse camera config")
	}
	if err := bind.Struct(cfg); err != nil {
		return domain.Config{}, err
	}
	if err := checkSemantics(&cfg); err != nil {
		return domain.Config{}, err
	}
	normalizeLabels(&cfg)
	return cfg, nil
}

// checkSemantics covers the rules struct tags cannot express
func checkSemantics(cfg *domain.Config) error {
	seenCam := map[string]bool{}
	for _, cam := range cfg.Cameras {
		if seenCam[cam.Identifier] {
			return perr.InvalidArgf("duplicate camera identifier %q", cam.Identifier)
		}
		seenCam[cam.Identifier] = true

		if cam.Resolution.Width <= 0 || cam.Resolution.Height <= 0 {
			return perr.InvalidArgf("camera %q: resolution must be positive", cam.Identifier)
		}

		seenZone := map[string]bool{}
		for _, z := range cam.Zones {
			if seenZone[z.Name] {
				return perr.InvalidArgf("camera %q: duplicate zone name %q", cam.Identifier, z.Name)
			}
			seenZone[z.Name] = true

			seenLabel := map[string]bool{}
			for _, l := range z.Labels {
				key := detection.NormalizeLabel(l.Label)
				if seenLabel[key] {
					return perr.InvalidArgf("camera %q zone %q: duplicate label %q", cam.Identifier, z.Name, l.Label)
				}
				seenLabel[key] = true
				if l.WidthMax != 0 && l.WidthMin >= l.WidthMax {
					return perr.InvalidArgf("camera %q zone %q label %q: width bounds inverted", cam.Identifier, z.Name, l.Label)
				}
				if l.HeightMax != 0 && l.HeightMin >= l.HeightMax {
					return perr.InvalidArgf("camera %q zone %q label %q: height bounds inverted", cam.Identifier, z.Name, l.Label)
				}
			}
			for _, c := range z.Coordinates {
				if c[0] < 0 || c[0] > 1 || c[1] < 0 || c[1] > 1 {
					return perr.InvalidArgf("camera %q zone %q: coordinates must be normalized 0..1", cam.Identifier, z.Name)
				}
			}
		}
	}
	return nil
}

// normalizeLabels folds configured labels so lookups match detector output casing
func normalizeLabels(cfg *domain.Config) {
	for ci := range cfg.Cameras {
		for zi := range cfg.Cameras[ci].Zones {
			labels := cfg.Cameras[ci].Zones[zi].Labels
			for li := range labels {
				labels[li].Label = detection.NormalizeLabel(labels[li].Label)
			}
		}
	}
}
