package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myMealPlanner/pkg/logger"
	jsonres "myMealPlanner/pkg/response"
)

// ErrorHandler converts unhandled errors into a JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled error", "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
