package server

import (
	"net/http"
	"time"

	"geminirelay/internal/core"
	"geminirelay/internal/metrics"

	"github.com/gin-gonic/gin"
)

// respondWithError returns the error response shape clients rely on.
func respondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

// recordRequestResultWithMetrics records request result
func recordRequestResultWithMetrics(m *metrics.MetricsService, success bool, startTime time.Time, model string, status int) {
	if success {
		metrics.RecordSuccessWithMetrics(m, startTime, model, status)
	} else {
		metrics.RecordFailureWithMetrics(m, startTime, model, status)
	}
}

// withPanicRecoveryWithMetrics wraps handler with panic recovery
func withPanicRecoveryWithMetrics(c *gin.Context, m *metrics.MetricsService, startTime time.Time, model string, logger core.Logger) func() {
	return func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handler: %v", r)
			metrics.RecordFailureWithMetrics(m, startTime, model, http.StatusInternalServerError)
			respondWithError(c, http.StatusInternalServerError, "internal server error")
		}
	}
}
