package server

import (
	"embed"
	"net/http"

	"geminirelay/internal/core"

	"github.com/gin-gonic/gin"
)

// frontendAssets holds the embedded web frontend.
//
//go:embed static
var frontendAssets embed.FS

func (s *Server) serveFrontend(c *gin.Context) {
	data, err := frontendAssets.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load frontend")
		return
	}
	c.Data(http.StatusOK, core.ContentTypeHTML, data)
}
