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

type StoreService interface {
	GetAllStores(ctx context.Context) ([]domain.Store, error)
	GetStoreByID(ctx context.Context, id uint64) (domain.Store, error)
	CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	UpdateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	DeleteStore(ctx context.Context, id uint64) error
}

type StoreHandler struct {
	storeService StoreService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewStoreHandler(storeService StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type StoreRequest struct {
	StoreName string `json:"store_name" validate:"required"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

func (h *StoreHandler) GetAllStores(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stores, err := h.storeService.GetAllStores(ctx)
	if err != nil {
		logger.Error("Failed to find all stores", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all stores",
		"stores":  stores,
	})
}

func (h *StoreHandler) GetStoreByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid store id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.GetStoreByID(ctx, id)
	if err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find store by id",
		"store":   store,
	})
}

func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req StoreRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate store request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.CreateStore(ctx, &domain.Store{
		StoreName: req.StoreName,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		logger.Error("Failed to create store", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "store created successfully",
		"store":   store,
	})
}

func (h *StoreHandler) UpdateStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid store id"})
	}

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate store request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.storeService.UpdateStore(ctx, &domain.Store{
		ID:        id,
		StoreName: req.StoreName,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "store updated successfully",
		"store":   store,
	})
}

func (h *StoreHandler) DeleteStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid store id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.storeService.DeleteStore(ctx, id); err != nil {
		if err.Error() == "store not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "store deleted successfully",
	})
}
