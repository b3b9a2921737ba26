// Package metrics exposes the process-wide prometheus collectors for the
// evaluation pipeline
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FramesEvaluated counts detection snapshots run through zone evaluation
	FramesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zonewatch",
		Name:      "frames_evaluated_total",
		Help:      "Detection snapshots evaluated, per camera",
	}, []string{"camera"})

	// ObjectsAccepted counts detections that passed filter and containment
	ObjectsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zonewatch",
		Name:      "objects_accepted_total",
		Help:      "Detections accepted into a zone, per camera and zone",
	}, []string{"camera", "zone"})

	// MembershipEvents counts published zone membership changes
	MembershipEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zonewatch",
		Name:      "membership_events_total",
		Help:      "Zone membership change events published, per camera and zone",
	}, []string{"camera", "zone"})

	// EvalDuration observes wall time of a full per-frame zone pass
	EvalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zonewatch",
		Name:      "evaluation_seconds",
		Help:      "Duration of a per-frame evaluation across all zones of a camera",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"camera"})
)

// Handler returns the /metrics scrape handler
func Handler() http.Handler { return promhttp.Handler() }
