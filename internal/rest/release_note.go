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

type ReleaseNoteService interface {
	GetAllNotes(ctx context.Context) ([]domain.ReleaseNote, error)
	GetLatestNote(ctx context.Context) (domain.ReleaseNote, error)
	CreateNote(ctx context.Context, note *domain.ReleaseNote) (*domain.ReleaseNote, error)
	DeleteNote(ctx context.Context, id uint64) error
}

type ReleaseNoteHandler struct {
	noteService ReleaseNoteService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewReleaseNoteHandler(noteService ReleaseNoteService) *ReleaseNoteHandler {
	return &ReleaseNoteHandler{
		noteService: noteService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateReleaseNoteRequest struct {
	Version string `json:"version" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Body    string `json:"body"`
}

func (h *ReleaseNoteHandler) GetAllNotes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	notes, err := h.noteService.GetAllNotes(ctx)
	if err != nil {
		logger.Error("Failed to find all release notes", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all release notes",
		"notes":   notes,
	})
}

func (h *ReleaseNoteHandler) GetLatestNote(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	note, err := h.noteService.GetLatestNote(ctx)
	if err != nil {
		if err.Error() == "release note not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get latest release note",
		"note":    note,
	})
}

func (h *ReleaseNoteHandler) CreateNote(c echo.Context) error {
	var req CreateReleaseNoteRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate release note request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	note, err := h.noteService.CreateNote(ctx, &domain.ReleaseNote{
		Version: req.Version,
		Title:   req.Title,
		Body:    req.Body,
	})
	if err != nil {
		logger.Error("Failed to create release note", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "release note created successfully",
		"note":    note,
	})
}

func (h *ReleaseNoteHandler) DeleteNote(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid release note id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.noteService.DeleteNote(ctx, id); err != nil {
		if err.Error() == "release note not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "release note deleted successfully",
	})
}
