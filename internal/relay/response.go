package relay

import (
	"fmt"
	"net/http"
	"strings"

	"geminirelay/internal/core"
	"geminirelay/internal/util"
)

// Remediation hint appended when the upstream reports the model missing.
const hintModelNotFound = "\n\nTry these solutions:" +
	"\n1. Use 'global' location: Set VERTEX_AI_LOCATION=global" +
	"\n2. Try a different model:" +
	"\n   - gemini-2.0-flash (recommended)" +
	"\n   - gemini-2.5-flash (if available in your project)" +
	"\n   - gemini-1.5-flash" +
	"\n3. Check if Vertex AI API is enabled" +
	"\n4. Verify your project has access to Gemini models"

// ExtractGeneratedText pulls the first candidate's first part text out
// of a generateContent response body. When that structural path is
// absent at any level, or the body does not decode at all, it returns
// the whole body as the result text with ok=false. A 200 upstream
// response never becomes an error.
func ExtractGeneratedText(body []byte) (text string, ok bool) {
	var parsed core.VertexGenerateResponse
	if err := util.UnmarshalJSON(body, &parsed); err != nil {
		return string(body), false
	}

	if len(parsed.Candidates) > 0 && len(parsed.Candidates[0].Content.Parts) > 0 {
		return parsed.Candidates[0].Content.Parts[0].Text, true
	}

	return string(body), false
}

// enrichUpstreamError turns a non-success upstream response into a
// RelayError that forwards the upstream status unchanged. JSON bodies
// get the upstream's error.message plus remediation hints for known
// failure patterns; anything else passes through raw, unenriched.
func enrichUpstreamError(status int, body []byte, modelID, projectID string) *core.RelayError {
	raw := string(body)

	var parsed map[string]any
	if err := util.UnmarshalJSON(body, &parsed); err != nil {
		return core.NewUpstreamError(status, raw)
	}

	message := raw
	if errObj, objOK := parsed["error"].(map[string]any); objOK {
		if m, msgOK := errObj["message"].(string); msgOK && m != "" {
			message = m
		}
	}

	switch {
	case status == http.StatusNotFound || strings.Contains(raw, "NOT_FOUND"):
		message += fmt.Sprintf("\n\nModel '%s' not found.", modelID)
		message += hintModelNotFound
	case status == http.StatusForbidden:
		message += "\n\nAuthentication/Permission Issue:"
		message += "\n1. Enable Vertex AI API: gcloud services enable aiplatform.googleapis.com"
		message += "\n2. Grant service account the correct role:"
		message += fmt.Sprintf("\n   gcloud projects add-iam-policy-binding %s \\", projectID)
		message += "\n     --member='serviceAccount:YOUR_SERVICE_ACCOUNT' \\"
		message += "\n     --role='roles/aiplatform.user'"
	}

	return core.NewUpstreamError(status, message)
}
