package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
	"myMealPlanner/pkg/metrics"
)

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
		timeout     time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, mealType, anchorMealID string, limit int, reqCtx map[string]any) (domain.RecommendationEnvelope, error)
		RecordFeedback(ctx context.Context, userID uint, mealID, feedbackType string, rating float64, reqCtx map[string]any) error
		TriggerTraining(ctx context.Context, force bool) (map[string]any, error)
		ServiceStatus(ctx context.Context) (map[string]any, error)
	}

	RecommendQuery struct {
		MealType string `query:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snack"`
		MealID   string `query:"meal_id"`
		N        int    `query:"n"`
	}

	RecoFeedbackRequest struct {
		MealID       string  `json:"meal_id" validate:"required"`
		FeedbackType string  `json:"feedback_type" validate:"required,oneof=like dislike neutral"`
		Rating       float64 `json:"rating" validate:"gte=0,lte=5"`
	}

	TrainRequest struct {
		Force bool `json:"force"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: svc,
		// leaves room for the fallback path after the upstream read times out
		timeout: 15 * time.Second,
	}
}

func (h *RecommendationHandler) Recommend(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()
	metrics.RecommendRequests.Inc()

	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	envelope, err := h.recoService.Recommend(ctx, userID, q.MealType, q.MealID, q.N, nil)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: "recommendation service error"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(envelope))
}

func (h *RecommendationHandler) Feedback(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecoFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.recoService.RecordFeedback(ctx, userID, req.MealID, req.FeedbackType, req.Rating, nil); err != nil {
		logger.Error("Failed to record feedback", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}

func (h *RecommendationHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.recoService.ServiceStatus(ctx)
	if err != nil {
		logger.Error("Failed to get ML service status", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(status))
}

func (h *RecommendationHandler) Train(c echo.Context) error {
	var req TrainRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	// training can take minutes, the client timeout governs the call
	result, err := h.recoService.TriggerTraining(c.Request().Context(), req.Force)
	if err != nil {
		logger.Error("Failed to trigger training", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: "training service error"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
