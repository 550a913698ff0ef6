package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// ErrUpstreamUnavailable marks the ML service as unreachable (connection
// refused, timeout, or an open circuit breaker). The orchestrator recovers
// from it via fallback; every other upstream error propagates.
var ErrUpstreamUnavailable = errors.New("recommendation service unavailable")

const (
	msgServiceUnavailable  = "service unavailable"
	msgNoMLRecommendations = "no ML recommendations"

	defaultLimit = 5
)

// Query is one recommendation request to the upstream ML service.
type Query struct {
	UserID       uint
	AnchorMealID string
	MealType     string
	Limit        int
	Context      map[string]any
}

// UpstreamClient talks to the external ML recommendation service.
type UpstreamClient interface {
	Recommend(ctx context.Context, q Query) ([]domain.CandidateRecord, error)
	SendFeedback(ctx context.Context, fb domain.RecommendationFeedback) error
	TriggerTraining(ctx context.Context, force bool) (map[string]any, error)
	Status(ctx context.Context) (map[string]any, error)
}

// FeedbackRepository persists feedback events locally for later
// retraining runs.
type FeedbackRepository interface {
	SaveFeedback(ctx context.Context, fb *domain.RecommendationFeedback) error
}

// Service is the request-level orchestrator: try the ML service, degrade
// to historical popularity, always normalize consistently.
type Service struct {
	upstream     UpstreamClient
	fallback     *FallbackRecommender
	modes        *ModeProvider
	feedbackRepo FeedbackRepository
}

func NewService(
	upstream UpstreamClient,
	fallback *FallbackRecommender,
	modes *ModeProvider,
	feedbackRepo FeedbackRepository,
) *Service {
	return &Service{
		upstream:     upstream,
		fallback:     fallback,
		modes:        modes,
		feedbackRepo: feedbackRepo,
	}
}

// temporalContext builds the standard request context sent upstream.
func temporalContext(now time.Time) map[string]any {
	return map[string]any{
		"hour":        now.Hour(),
		"day_of_week": strings.ToLower(now.Weekday().String()),
		"month":       int(now.Month()),
	}
}

// mergeContext merges multiple maps into a new one; later maps win.
func mergeContext(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Recommend returns a scored candidate list for a user. Upstream failures
// that mean "nothing personalized is available" (empty result, unreachable
// service) degrade to the fallback list; genuine request failures
// propagate to the caller.
func (s *Service) Recommend(
	ctx context.Context,
	userID uint,
	mealType string,
	anchorMealID string,
	limit int,
	reqCtx map[string]any,
) (domain.RecommendationEnvelope, error) {

	if err := ctx.Err(); err != nil {
		return domain.RecommendationEnvelope{}, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	fullCtx := mergeContext(temporalContext(time.Now()), reqCtx)

	candidates, err := s.upstream.Recommend(ctx, Query{
		UserID:       userID,
		AnchorMealID: anchorMealID,
		MealType:     mealType,
		Limit:        limit,
		Context:      fullCtx,
	})

	fallbackUsed := false
	message := ""

	switch {
	case err == nil && len(candidates) > 0:
		candidates = dedupeCandidates(candidates, limit)

	case err == nil:
		fallbackUsed = true
		message = msgNoMLRecommendations
		FallbackActivationsTotal.WithLabelValues("empty").Inc()

	case errors.Is(err, ErrUpstreamUnavailable):
		fallbackUsed = true
		message = msgServiceUnavailable
		FallbackActivationsTotal.WithLabelValues("unavailable").Inc()
		logger.Warn("ML service unavailable, serving fallback",
			"user_id", userID,
			"meal_type", mealType,
			"error", err,
		)

	default:
		return domain.RecommendationEnvelope{}, fmt.Errorf("recommendation request failed: %w", err)
	}

	if fallbackUsed {
		candidates, err = s.fallback.BuildFallback(ctx, mealType, limit)
		if err != nil {
			return domain.RecommendationEnvelope{}, err
		}
	}

	mode := s.modes.Current(ctx)
	scored := Normalize(candidates, mode)

	source := "model"
	if fallbackUsed {
		source = "fallback"
	}
	RecommendationsServedTotal.WithLabelValues(source, string(mode)).Inc()

	logger.Debug("recommendation_served",
		"user_id", userID,
		"meal_type", mealType,
		"limit", limit,
		"count", len(scored),
		"fallback", fallbackUsed,
		"scoring_mode", string(mode),
	)

	return domain.RecommendationEnvelope{
		Recommendations: scored,
		Context: domain.RecommendationContext{
			Fallback:    fallbackUsed,
			Message:     message,
			ModelsUsed:  modelsUsed(scored),
			ScoringMode: string(mode),
		},
		Timestamp: time.Now(),
	}, nil
}

// RecordFeedback persists a feedback event and forwards it upstream.
// The forward is fire-and-forget: its failure is logged, never surfaced.
func (s *Service) RecordFeedback(
	ctx context.Context,
	userID uint,
	mealID string,
	feedbackType string,
	rating float64,
	reqCtx map[string]any,
) error {

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	switch feedbackType {
	case domain.FeedbackLike, domain.FeedbackDislike, domain.FeedbackNeutral:
	default:
		return fmt.Errorf("unknown feedback type: %s", feedbackType)
	}

	fb := domain.RecommendationFeedback{
		UserID:       userID,
		MealID:       mealID,
		FeedbackType: feedbackType,
		Rating:       rating,
		Context:      datatypes.JSONMap(mergeContext(temporalContext(time.Now()), reqCtx)),
	}

	if err := s.feedbackRepo.SaveFeedback(ctx, &fb); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}

	if err := s.upstream.SendFeedback(ctx, fb); err != nil {
		logger.Warn("Failed to forward feedback to ML service",
			"user_id", userID,
			"meal_id", mealID,
			"error", err,
		)
	}

	FeedbackEventsTotal.WithLabelValues(feedbackType).Inc()

	return nil
}

// TriggerTraining asks the ML service to retrain. Administrative action
// with its own long timeout inside the client.
func (s *Service) TriggerTraining(ctx context.Context, force bool) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	result, err := s.upstream.TriggerTraining(ctx, force)
	if err != nil {
		return nil, fmt.Errorf("trigger training: %w", err)
	}
	return result, nil
}

// ServiceStatus proxies the ML service status endpoint.
func (s *Service) ServiceStatus(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	status, err := s.upstream.Status(ctx)
	if err != nil {
		if errors.Is(err, ErrUpstreamUnavailable) {
			return map[string]any{"status": "unreachable"}, nil
		}
		return nil, fmt.Errorf("service status: %w", err)
	}
	return status, nil
}

// dedupeCandidates drops repeated meal IDs, preserving order, and caps the
// list at limit.
func dedupeCandidates(candidates []domain.CandidateRecord, limit int) []domain.CandidateRecord {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.CandidateRecord, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.ItemID]; dup {
			continue
		}
		seen[c.ItemID] = struct{}{}
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// modelsUsed is the distinct set of candidate sources in served order.
func modelsUsed(candidates []domain.CandidateRecord) []string {
	seen := make(map[domain.RecommendationKind]struct{}, 4)
	out := make([]string, 0, 4)
	for _, c := range candidates {
		if _, ok := seen[c.Kind]; ok {
			continue
		}
		seen[c.Kind] = struct{}{}
		out = append(out, string(c.Kind))
	}
	return out
}
