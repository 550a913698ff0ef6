package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

type MealPlanService interface {
	AddEntry(ctx context.Context, entry *domain.MealPlanEntry) (*domain.MealPlanEntry, error)
	GetEntry(ctx context.Context, id uint64) (*domain.MealPlanEntry, error)
	GetUserPlan(ctx context.Context, userID uint, from, to time.Time) ([]domain.MealPlanEntry, error)
	RemoveEntry(ctx context.Context, userID uint, id uint64) error
}

type MealPlanHandler struct {
	planService MealPlanService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewMealPlanHandler(planService MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{
		planService: planService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AddPlanEntryRequest struct {
	MealID   string `json:"meal_id" validate:"required"`
	MealType string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	PlanDate string `json:"plan_date" validate:"required"`
	Notes    string `json:"notes"`
}

func (h *MealPlanHandler) AddEntry(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddPlanEntryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate plan entry request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	planDate, err := time.Parse("2006-01-02", req.PlanDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "plan_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entry, err := h.planService.AddEntry(ctx, &domain.MealPlanEntry{
		UserID:   userID,
		MealID:   req.MealID,
		MealType: req.MealType,
		PlanDate: planDate,
		Notes:    req.Notes,
	})
	if err != nil {
		if err.Error() == "meal not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "meal plan entry created",
		"entry":   entry,
	})
}

func (h *MealPlanHandler) GetUserPlan(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	// default to the current week
	now := time.Now()
	from := now.AddDate(0, 0, -int(now.Weekday()))
	to := from.AddDate(0, 0, 7)

	if fromStr := c.QueryParam("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "from must be YYYY-MM-DD"})
		}
		from = parsed
	}
	if toStr := c.QueryParam("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "to must be YYYY-MM-DD"})
		}
		to = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entries, err := h.planService.GetUserPlan(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to get user meal plan", err)
		if err.Error() == "invalid date range" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get meal plan",
		"entries": entries,
	})
}

func (h *MealPlanHandler) GetEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid entry id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entry, err := h.planService.GetEntry(ctx, id)
	if err != nil {
		if err.Error() == "meal plan entry not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find meal plan entry",
		"entry":   entry,
	})
}

func (h *MealPlanHandler) RemoveEntry(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid entry id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.planService.RemoveEntry(ctx, userID, id); err != nil {
		if err.Error() == "meal plan entry not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal plan entry deleted",
	})
}
