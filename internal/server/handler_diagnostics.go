package server

import (
	"fmt"
	"net/http"

	"geminirelay/internal/core"
	"geminirelay/internal/relay"

	"github.com/gin-gonic/gin"
)

// healthCheck reports process health plus enough configuration detail to
// debug a misconfigured deployment from the response alone. Always 200;
// missing credentials show up in the body, not the status.
func (s *Server) healthCheck(c *gin.Context) {
	serviceAccount := core.DefaultServiceAccountLabel
	if s.credential != nil {
		serviceAccount = s.credential.ServiceAccount()
	}

	var projectID any
	if s.projectID != "" {
		projectID = s.projectID
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"credentials_available": s.credential != nil,
		"project_id":            projectID,
		"location":              s.location,
		"model":                 fmt.Sprintf("%s (%s)", s.modelName, s.modelID),
		"service_account":       serviceAccount,
		"available_models":      relay.CatalogKeys(),
		"note":                  core.HealthNote,
	})
}

func (s *Server) listModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"current_model":      s.modelID,
		"current_location":   s.location,
		"available_models":   core.GeminiModels,
		"recommended_models": core.RecommendedModels,
		"configuration":      core.ConfigurationHints,
	})
}
