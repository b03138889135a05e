package server

import (
	"net/http"
	"os"

	"geminirelay/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) maxBodySizeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, core.MaxRequestBodySize)
		c.Next()
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	allowOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Max-Age", core.CORSMaxAge)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every request with an id so upstream failures
// can be matched to access log lines.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(core.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(core.HeaderXRequestID, requestID)
		c.Next()
	}
}
