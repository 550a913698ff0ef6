package domain

import (
	"math"
	"time"
)

// SignalKind names one raw relevance signal attached to a candidate.
type SignalKind string

const (
	SignalSimilarity SignalKind = "similarity"
	SignalPrediction SignalKind = "prediction"
	SignalPopularity SignalKind = "popularity"
)

// signalPriority is the fixed order in which the authoritative signal is
// picked when a candidate carries more than one.
var signalPriority = []SignalKind{SignalSimilarity, SignalPrediction, SignalPopularity}

// RawSignals holds the unbounded upstream scores present on a candidate.
// Any subset of kinds may be set.
type RawSignals map[SignalKind]float64

// Authoritative returns the highest-priority signal present, clamped to a
// finite non-negative value. Missing or malformed signals contribute 0.
func (s RawSignals) Authoritative() float64 {
	for _, kind := range signalPriority {
		if v, ok := s[kind]; ok {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return 0
			}
			return v
		}
	}
	return 0
}

// RecommendationKind tags where a candidate came from.
type RecommendationKind string

const (
	KindModelPersonalized RecommendationKind = "model_personalized"
	KindContentBased      RecommendationKind = "content_based"
	KindCollaborative     RecommendationKind = "collaborative"
	KindPopularityBased   RecommendationKind = "popularity_based"
	KindFallbackPopular   RecommendationKind = "fallback_popular"
	KindFallbackFiller    RecommendationKind = "fallback_filler"
	KindCatalogExisting   RecommendationKind = "catalog_existing"
)

// CandidateRecord is one recommendable meal attached to a request.
// DisplayScore is zero until the normalizer has run; every record returned
// to a caller has it set in [0,1].
type CandidateRecord struct {
	ItemID          string             `json:"meal_id"`
	DisplayName     string             `json:"meal_name"`
	Category        string             `json:"meal_type,omitempty"`
	PrepTimeMinutes int                `json:"prep_time,omitempty"`
	DifficultyTier  string             `json:"difficulty,omitempty"`
	UserRating      float64            `json:"rating,omitempty"`
	RawSignals      RawSignals         `json:"raw_signals,omitempty"`
	Kind            RecommendationKind `json:"recommendation_type"`
	DisplayScore    float64            `json:"display_score"`
}

// RecommendationContext describes how a response was produced.
type RecommendationContext struct {
	Fallback    bool     `json:"fallback"`
	Message     string   `json:"message,omitempty"`
	ModelsUsed  []string `json:"models_used"`
	ScoringMode string   `json:"scoring_mode"`
}

// RecommendationEnvelope is the uniform response returned to callers.
type RecommendationEnvelope struct {
	Recommendations []CandidateRecord     `json:"recommendations"`
	Context         RecommendationContext `json:"context"`
	Timestamp       time.Time             `json:"timestamp"`
}
