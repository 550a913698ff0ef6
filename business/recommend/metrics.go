package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendation responses by source and scoring mode.",
		},
		[]string{"source", "scoring_mode"},
	)

	FallbackActivationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fallback_total",
			Help: "Count of fallback activations by reason.",
		},
		[]string{"reason"},
	)

	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_feedback_events_total",
			Help: "Count of recorded recommendation feedback events by type.",
		},
		[]string{"feedback_type"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationsServedTotal,
		FallbackActivationsTotal,
		FeedbackEventsTotal,
	)
}
