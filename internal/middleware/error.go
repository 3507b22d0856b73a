package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperr "github.com/careops/careops-api/pkg/errors"
)

// ErrorResponse is the standardized error body. Missing carries the unmet
// onboarding gate names on activation failures.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// ErrorHandler converts errors attached to the gin context into the
// standardized response. Service-layer AppErrors carry their own status.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		traceID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("trace_id", traceID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		message := lastErr.Error()
		var missing []string

		if appErr, ok := lastErr.Err.(*apperr.AppError); ok {
			status = appErr.StatusCode()
			message = appErr.Message
			missing = appErr.Gates
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Message: message,
			Missing: missing,
			TraceID: traceID,
		})
	}
}
