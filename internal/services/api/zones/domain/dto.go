// Package domain holds the API transport types for zones
package domain

import (
	"zonewatch/internal/core/detection"
	"zonewatch/internal/core/geometry"
	eventsdomain "zonewatch/internal/services/events/domain"
)

// LabelSummary is one configured label of a zone
type LabelSummary struct {
	Label           string `json:"label"`
	TriggerRecorder bool   `json:"trigger_recorder"`
}

// ZoneSummary describes one configured zone
type ZoneSummary struct {
	CameraIdentifier string           `json:"camera_identifier"`
	Name             string           `json:"name"`
	Polygon          geometry.Polygon `json:"polygon"`
	Labels           []LabelSummary   `json:"labels"`
}

// Membership is the current accepted-object set of one zone
type Membership struct {
	CameraIdentifier string              `json:"camera_identifier"`
	Zone             string              `json:"zone"`
	Objects          []*detection.Object `json:"objects"`
}

// HistoryQuery narrows and pages a history listing
type HistoryQuery struct {
	AfterID string `json:"after_id"`
	AfterTS string `json:"after_ts"`
	Limit   int    `json:"limit"`
}

// HistoryPage is one page of persisted membership changes
type HistoryPage struct {
	Items []eventsdomain.StoredEvent `json:"items"`
	After eventsdomain.AfterKey      `json:"after"`
}
