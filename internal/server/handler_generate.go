package server

import (
	"net/http"
	"time"

	"geminirelay/internal/core"

	"github.com/gin-gonic/gin"
)

func (s *Server) generateContent(c *gin.Context) {
	startTime := time.Now()

	defer withPanicRecoveryWithMetrics(c, s.metricsService, startTime, s.modelName, s.config.Logger)()

	var request core.PromptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		recordRequestResultWithMetrics(s.metricsService, false, startTime, s.modelName, http.StatusBadRequest)
		respondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := s.relay.Generate(c.Request.Context(), request.Prompt)
	if err != nil {
		relayErr := core.AsRelayError(err)
		recordRequestResultWithMetrics(s.metricsService, false, startTime, s.modelName, relayErr.Status)
		respondWithError(c, relayErr.Status, relayErr.Message)
		return
	}

	recordRequestResultWithMetrics(s.metricsService, true, startTime, s.modelName, http.StatusOK)
	c.JSON(http.StatusOK, core.GenerationResult{Response: text})
}
