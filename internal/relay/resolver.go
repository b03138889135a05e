package relay

import (
	"fmt"
	"sort"
	"strings"

	"geminirelay/internal/core"
)

// ResolveModelID maps a short model name to its Vertex AI identifier,
// falling back to the default identifier for unknown names. Resolution
// never fails.
func ResolveModelID(modelName string) string {
	if id, ok := core.GeminiModels[modelName]; ok {
		return id
	}
	return core.DefaultModelID
}

// BuildEndpointURL constructs the generateContent URL for the resolved
// model. Location "global" and every newest-generation model route to
// the global host; everything else uses the region-qualified host with
// the configured location segment.
func BuildEndpointURL(projectID, location, modelID string) string {
	if location == core.LocationGlobal || strings.HasPrefix(modelID, core.GlobalOnlyModelPrefix) {
		return fmt.Sprintf(
			"https://aiplatform.googleapis.com/v1/projects/%s/locations/global/publishers/google/models/%s:generateContent",
			projectID, modelID)
	}
	return fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		location, projectID, location, modelID)
}

// CatalogKeys returns the model catalog's short names, sorted.
func CatalogKeys() []string {
	keys := make([]string, 0, len(core.GeminiModels))
	for name := range core.GeminiModels {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
