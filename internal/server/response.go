package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talespring/backend/internal/ai"
	"github.com/talespring/backend/internal/core"
	"github.com/talespring/backend/internal/models"
)

func respondError(c *gin.Context, status int, kind, message string, details map[string]any) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Details: details,
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "validation_error", message, nil)
}

func notFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, "not_found", message, nil)
}

// respondCoreError maps orchestration-layer errors onto the shared envelope.
// Full detail goes to the server log only.
func respondCoreError(c *gin.Context, err error) {
	log.Printf("[Server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

	if errors.Is(err, core.ErrAudioNotFound) {
		notFound(c, "audio not found")
		return
	}

	var rateErr *ai.RateLimitError
	if errors.As(err, &rateErr) {
		respondError(c, http.StatusInternalServerError, "rate_limited", rateErr.Message, nil)
		return
	}
	var apiErr *ai.APICallError
	if errors.As(err, &apiErr) {
		respondError(c, http.StatusInternalServerError, "api_call_failed", apiErr.Message, nil)
		return
	}

	respondError(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
}
