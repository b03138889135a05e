package server

import (
	"io/fs"
	"net/http"

	"geminirelay/internal/metrics"

	"github.com/gin-gonic/gin"
)

func (s *Server) setupRoutes() {
	gin.SetMode(s.ginMode)
	s.router = gin.New()

	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.maxBodySizeMiddleware())
	s.router.Use(requestIDMiddleware())

	// Frontend
	s.router.GET("/", s.serveFrontend)
	if staticFS, err := fs.Sub(frontendAssets, "static"); err == nil {
		s.router.StaticFS("/static", http.FS(staticFS))
	}

	// Diagnostics
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/models", s.listModels)
	s.router.GET("/stats", metrics.ShowStatsPage)
	s.router.GET("/api/stats", s.getStatsData)

	// Generation
	s.router.POST("/api/generate", s.generateContent)
}
