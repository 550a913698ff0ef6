package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myMealPlanner/business/recommend"
)

type ScoringAdminHandler struct {
	modes *recommend.ModeProvider
}

func NewScoringAdminHandler(modes *recommend.ModeProvider) *ScoringAdminHandler {
	return &ScoringAdminHandler{
		modes: modes,
	}
}

// GET /api/v1/admin/scoring-config
func (h *ScoringAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()

	return c.JSON(http.StatusOK, echo.Map{
		"scoring_mode": string(h.modes.Current(ctx)),
	})
}

// PUT /api/v1/admin/scoring-config
// body: {"scoring_mode": "percentile"}
func (h *ScoringAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body struct {
		ScoringMode string `json:"scoring_mode"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}

	mode, ok := recommend.ParseMode(body.ScoringMode)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "unknown scoring mode: " + body.ScoringMode,
		})
	}

	if err := h.modes.Set(ctx, mode); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"scoring_mode": string(mode),
	})
}
