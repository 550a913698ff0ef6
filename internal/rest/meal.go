package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

type MealService interface {
	GetAllMeals(ctx context.Context, mealType string) ([]domain.Meal, error)
	GetMealByID(ctx context.Context, mealID string) (*domain.Meal, error)
	CreateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error)
	UpdateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, mealID string) error
}

type MealHandler struct {
	mealService MealService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewMealHandler(mealService MealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateMealRequest struct {
	MealName        string  `json:"meal_name" validate:"required"`
	MealType        string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	PrepTime        int     `json:"prep_time" validate:"gte=0"`
	Difficulty      string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Rating          float64 `json:"rating" validate:"gte=0,lte=5"`
	IngredientCount int     `json:"ingredient_count" validate:"gte=0"`
}

type UpdateMealRequest struct {
	MealName        string  `json:"meal_name" validate:"required"`
	MealType        string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	PrepTime        int     `json:"prep_time" validate:"gte=0"`
	Difficulty      string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Rating          float64 `json:"rating" validate:"gte=0,lte=5"`
	IngredientCount int     `json:"ingredient_count" validate:"gte=0"`
	IsActive        *bool   `json:"is_active"`
}

func (h *MealHandler) GetAllMeals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	meals, err := h.mealService.GetAllMeals(ctx, c.QueryParam("meal_type"))
	if err != nil {
		logger.Error("Failed to find all meals", err)
		if err.Error() == "invalid meal type" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all meals",
		"meals":   meals,
	})
}

func (h *MealHandler) GetMealByID(c echo.Context) error {
	mealID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	meal, err := h.mealService.GetMealByID(ctx, mealID)
	if err != nil {
		if err.Error() == "meal not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find meal by id",
		"meal":    meal,
	})
}

func (h *MealHandler) CreateMeal(c echo.Context) error {
	var req CreateMealRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate meal request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	meal, err := h.mealService.CreateMeal(ctx, &domain.Meal{
		MealName:        req.MealName,
		MealType:        req.MealType,
		PrepTime:        req.PrepTime,
		Difficulty:      req.Difficulty,
		Rating:          req.Rating,
		IngredientCount: req.IngredientCount,
	})
	if err != nil {
		logger.Error("Failed to create meal", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "meal created successfully",
		"meal":    meal,
	})
}

func (h *MealHandler) UpdateMeal(c echo.Context) error {
	mealID := c.Param("id")

	var req UpdateMealRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate meal request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updateData := &domain.Meal{
		MealID:          mealID,
		MealName:        req.MealName,
		MealType:        req.MealType,
		PrepTime:        req.PrepTime,
		Difficulty:      req.Difficulty,
		Rating:          req.Rating,
		IngredientCount: req.IngredientCount,
	}
	if req.IsActive != nil {
		updateData.IsActive = *req.IsActive
	} else {
		updateData.IsActive = true
	}

	meal, err := h.mealService.UpdateMeal(ctx, updateData)
	if err != nil {
		if err.Error() == "meal not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal updated successfully",
		"meal":    meal,
	})
}

func (h *MealHandler) DeleteMeal(c echo.Context) error {
	mealID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.mealService.DeleteMeal(ctx, mealID); err != nil {
		if err.Error() == "meal not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "meal deleted successfully",
	})
}
