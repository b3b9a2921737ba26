// Package domain holds the membership-history types and ports
package domain

import (
	"context"
	"time"

	"zonewatch/internal/core/detection"
)

// StoredEvent is one persisted membership change
type StoredEvent struct {
	ID               string              `json:"id"`
	CameraIdentifier string              `json:"camera_identifier"`
	ZoneName         string              `json:"zone_name"`
	FrameID          string              `json:"frame_id"`
	CapturedAt       time.Time           `json:"captured_at"`
	Objects          []*detection.Object `json:"objects"`
	CreatedAt        time.Time           `json:"created_at"`
}

// AfterKey is the keyset cursor for history pages
type AfterKey struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// Zero reports whether the cursor is unset (first page)
func (k AfterKey) Zero() bool { return k.ID == "" }

// Filters narrows a history listing
type Filters struct {
	CameraIdentifier string `json:"camera_identifier"`
	ZoneName         string `json:"zone_name"`
}

// QueryPort reads persisted membership history
type QueryPort interface {
	List(ctx context.Context, f Filters, after AfterKey, limit int) ([]StoredEvent, AfterKey, error)
}

// RecorderPort consumes the bus and persists membership changes until ctx ends
type RecorderPort interface {
	Run(ctx context.Context) error
}
