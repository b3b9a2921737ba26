// Package replay feeds recorded detection snapshots into the pipeline
// each line of the log is one JSON snapshot, which makes detector captures
// trivially greppable and replayable
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"zonewatch/internal/core/detection"
	perr "zonewatch/internal/platform/errors"
	"zonewatch/internal/platform/logger"
	camdomain "zonewatch/internal/services/cameras/domain"
	nvrdomain "zonewatch/internal/services/nvr/domain"
)

// Options configures a replay source
type Options struct {
	// Path is the JSONL detection log
	Path string
	// Camera overrides the camera identifier on every snapshot when set
	Camera string
	// Rate throttles playback in snapshots per second; 0 plays back unthrottled
	Rate float64
}

// record is one line of the detection log
type record struct {
	CameraIdentifier string              `json:"camera_identifier"`
	FrameID          string              `json:"frame_id"`
	CapturedAt       time.Time           `json:"captured_at"`
	Objects          []*detection.Object `json:"objects"`
}

// Source implements the nvr source port over a detection log file
type Source struct {
	log *logger.Logger
	opt Options
}

// New constructs a replay source
func New(opt Options) *Source {
	return &Source{log: logger.Named("replay"), opt: opt}
}

// Snapshots implements nvr/domain.SourcePort
// the channel closes when the log is exhausted or ctx ends
func (s *Source) Snapshots(ctx context.Context) (<-chan nvrdomain.Snapshot, error) {
	f, err := os.Open(s.opt.Path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open detection log %q", s.opt.Path)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if s.opt.Rate > 0 {
		ticker = time.NewTicker(time.Duration(float64(time.Second) / s.opt.Rate))
		tick = ticker.C
	}

	out := make(chan nvrdomain.Snapshot)
	go func() {
		defer close(out)
		defer f.Close()
		if ticker != nil {
			defer ticker.Stop()
		}

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		line := 0
		for sc.Scan() {
			line++
			raw := strings.TrimSpace(sc.Text())
			if raw == "" || strings.HasPrefix(raw, "#") {
				continue
			}

			var rec record
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				s.log.Warn().Err(err).Int("line", line).Msg("skipping malformed snapshot")
				continue
			}
			if s.opt.Camera != "" {
				rec.CameraIdentifier = s.opt.Camera
			}

			if tick != nil {
				select {
				case <-ctx.Done():
					return
				case <-tick:
				}
			}

			snap := nvrdomain.Snapshot{
				Frame: camdomain.SharedFrame{
					CameraIdentifier: rec.CameraIdentifier,
					FrameID:          rec.FrameID,
					CapturedAt:       rec.CapturedAt,
				},
				Objects: rec.Objects,
			}
			select {
			case <-ctx.Done():
				return
			case out <- snap:
			}
		}
		if err := sc.Err(); err != nil {
			s.log.Error().Err(err).Msg("detection log read failed")
		}
	}()
	return out, nil
}
