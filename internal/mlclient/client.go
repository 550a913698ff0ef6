package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// ProtocolError is a well-formed but failed upstream response: non-2xx
// status, success=false, or an undecodable body. It is never recovered by
// fallback; the orchestrator surfaces it to the caller.
type ProtocolError struct {
	StatusCode int
	Msg        string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ml service protocol error (status %d): %s", e.StatusCode, e.Msg)
}

func IsProtocolError(err error) bool {
	var target *ProtocolError
	return errors.As(err, &target)
}

type Config struct {
	BaseURL         string
	ReadTimeout     time.Duration
	FeedbackTimeout time.Duration
	TrainTimeout    time.Duration
}

// Client talks HTTP to the external ML recommendation service. A circuit
// breaker guards the read path; an open breaker is reported as
// unavailable so requests degrade to fallback instead of queueing on a
// dead service.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	readTimeout     time.Duration
	feedbackTimeout time.Duration
	trainTimeout    time.Duration
	breaker         *gobreaker.CircuitBreaker[[]domain.CandidateRecord]
}

var _ recommend.UpstreamClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.FeedbackTimeout <= 0 {
		cfg.FeedbackTimeout = 5 * time.Second
	}
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = 5 * time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker[[]domain.CandidateRecord](gobreaker.Settings{
		Name:    "ml-recommendations",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("ML client breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Client{
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{},
		readTimeout:     cfg.ReadTimeout,
		feedbackTimeout: cfg.FeedbackTimeout,
		trainTimeout:    cfg.TrainTimeout,
		breaker:         breaker,
	}
}

// wire types of the upstream contract

type recommendRequest struct {
	UserID   string         `json:"user_id,omitempty"`
	MealID   string         `json:"meal_id,omitempty"`
	MealType string         `json:"meal_type,omitempty"`
	TopN     int            `json:"top_n"`
	Context  map[string]any `json:"context,omitempty"`
}

type rawCandidate struct {
	MealID             string   `json:"meal_id"`
	ItemID             string   `json:"item_id"`
	MealName           string   `json:"meal_name"`
	MealType           string   `json:"meal_type"`
	Category           string   `json:"category"`
	PrepTime           int      `json:"prep_time"`
	Difficulty         string   `json:"difficulty"`
	Rating             float64  `json:"rating"`
	RecommendationType string   `json:"recommendation_type"`
	SimilarityScore    *float64 `json:"similarity_score"`
	PredictionScore    *float64 `json:"prediction_score"`
	PopularityScore    *float64 `json:"popularity_score"`
}

type recommendResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Recommendations       []rawCandidate `json:"recommendations"`
		RecommendationContext map[string]any `json:"recommendation_context"`
	} `json:"data"`
	Error string `json:"error"`
}

// Recommend fetches personalized candidates from the ML service. The call
// is bounded by the read timeout; a late response is abandoned with the
// context, never merged.
func (c *Client) Recommend(ctx context.Context, q recommend.Query) ([]domain.CandidateRecord, error) {
	candidates, err := c.breaker.Execute(func() ([]domain.CandidateRecord, error) {
		return c.recommend(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: circuit open", recommend.ErrUpstreamUnavailable)
	}
	return candidates, err
}

func (c *Client) recommend(ctx context.Context, q recommend.Query) ([]domain.CandidateRecord, error) {
	body := recommendRequest{
		MealID:   q.AnchorMealID,
		MealType: q.MealType,
		TopN:     q.Limit,
		Context:  q.Context,
	}
	if q.UserID > 0 {
		body.UserID = strconv.FormatUint(uint64(q.UserID), 10)
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	var envelope recommendResponse
	if err := c.postJSON(ctx, "/recommendations", body, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, &ProtocolError{StatusCode: http.StatusOK, Msg: nonEmpty(envelope.Error, "success=false")}
	}

	candidates := make([]domain.CandidateRecord, 0, len(envelope.Data.Recommendations))
	for _, raw := range envelope.Data.Recommendations {
		candidates = append(candidates, toCandidate(raw))
	}
	return candidates, nil
}

func toCandidate(raw rawCandidate) domain.CandidateRecord {
	signals := domain.RawSignals{}
	if raw.SimilarityScore != nil {
		signals[domain.SignalSimilarity] = *raw.SimilarityScore
	}
	if raw.PredictionScore != nil {
		signals[domain.SignalPrediction] = *raw.PredictionScore
	}
	if raw.PopularityScore != nil {
		signals[domain.SignalPopularity] = *raw.PopularityScore
	}

	return domain.CandidateRecord{
		ItemID:          nonEmpty(raw.MealID, raw.ItemID),
		DisplayName:     raw.MealName,
		Category:        nonEmpty(raw.MealType, raw.Category),
		PrepTimeMinutes: raw.PrepTime,
		DifficultyTier:  raw.Difficulty,
		UserRating:      raw.Rating,
		RawSignals:      signals,
		Kind:            kindFromUpstream(raw.RecommendationType),
	}
}

// kindFromUpstream maps the ML service's recommendation_type values onto
// the provenance tags used across this application.
func kindFromUpstream(upstream string) domain.RecommendationKind {
	switch upstream {
	case "hybrid":
		return domain.KindModelPersonalized
	case "content_based":
		return domain.KindContentBased
	case "collaborative_filtering":
		return domain.KindCollaborative
	case "popular":
		return domain.KindPopularityBased
	default:
		return domain.KindCatalogExisting
	}
}

type feedbackRequest struct {
	UserID       string  `json:"user_id"`
	MealID       string  `json:"meal_id"`
	FeedbackType string  `json:"feedback_type"`
	Rating       float64 `json:"rating,omitempty"`
}

type statusResponse map[string]any

// SendFeedback forwards one feedback event. Short timeout, no retry; the
// caller treats failures as non-fatal.
func (c *Client) SendFeedback(ctx context.Context, fb domain.RecommendationFeedback) error {
	ctx, cancel := context.WithTimeout(ctx, c.feedbackTimeout)
	defer cancel()

	body := feedbackRequest{
		UserID:       strconv.FormatUint(uint64(fb.UserID), 10),
		MealID:       fb.MealID,
		FeedbackType: fb.FeedbackType,
		Rating:       fb.Rating,
	}

	var resp statusResponse
	return c.postJSON(ctx, "/feedback", body, &resp)
}

// TriggerTraining starts a retraining run. The only operation allowed a
// multi-minute timeout; it never runs inside a normal request.
func (c *Client) TriggerTraining(ctx context.Context, force bool) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.trainTimeout)
	defer cancel()

	var resp statusResponse
	if err := c.postJSON(ctx, "/train", map[string]any{"force": force}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Status reports the ML service's model inventory.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	var resp statusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// connection refused, DNS failure, or deadline exceeded
		return fmt.Errorf("%w: %v", recommend.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProtocolError{StatusCode: resp.StatusCode, Msg: string(excerpt)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{StatusCode: resp.StatusCode, Msg: fmt.Sprintf("undecodable body: %v", err)}
	}
	return nil
}

func nonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
