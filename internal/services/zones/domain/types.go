// Package domain holds zone membership types and ports
package domain

import (
	"zonewatch/internal/core/detection"
	camdomain "zonewatch/internal/services/cameras/domain"
)

// ZoneRef identifies a zone within its owning camera
type ZoneRef struct {
	CameraIdentifier string `json:"camera_identifier"`
	Name             string `json:"name"`
}

// MembershipEvent is published whenever a zone's accepted-object set changes
// Objects is the full new membership, replaced wholesale, in detector input order
type MembershipEvent struct {
	CameraIdentifier string                 `json:"camera_identifier"`
	Frame            camdomain.SharedFrame  `json:"shared_frame"`
	Zone             ZoneRef                `json:"zone"`
	Objects          []*detection.Object    `json:"objects"`
}

// Topic returns the per-camera-per-zone membership topic
func Topic(cameraIdentifier, zoneName string) string {
	return cameraIdentifier + "/zone/" + zoneName + "/objects"
}

// TopicPattern matches every zone membership topic on the bus
const TopicPattern = "*/zone/*/objects"
