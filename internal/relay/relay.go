// Package relay translates inbound prompts into Vertex AI
// generateContent calls and translates the response or error back to
// the caller's schema.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"geminirelay/internal/core"
	"geminirelay/internal/util"
)

// Config carries the resolved runtime settings for the relay: model,
// location, project id and the live credential handle. It is built
// once at startup and handed in explicitly; there is no ambient
// process-global state.
type Config struct {
	ModelName  string
	ModelID    string
	Location   string
	ProjectID  string
	Credential core.CredentialSource
	HTTPClient *http.Client
	Logger     core.Logger

	// Endpoint overrides the derived upstream URL; tests point it at a
	// local fake. Empty means derive from project/location/model.
	Endpoint string
}

// Relay is the generation pipeline.
type Relay struct {
	modelName  string
	modelID    string
	location   string
	projectID  string
	credential core.CredentialSource
	httpClient *http.Client
	logger     core.Logger
	endpoint   string
}

// NewRelay creates a relay from resolved configuration. The endpoint
// is fixed here: model id and location deterministically select one
// upstream URL for the process lifetime.
func NewRelay(cfg Config) *Relay {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = BuildEndpointURL(cfg.ProjectID, cfg.Location, cfg.ModelID)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = &core.NopLogger{}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: core.GenerateRequestTimeout}
	}

	return &Relay{
		modelName:  cfg.ModelName,
		modelID:    cfg.ModelID,
		location:   cfg.Location,
		projectID:  cfg.ProjectID,
		credential: cfg.Credential,
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
	}
}

// Endpoint returns the upstream URL the relay sends to.
func (r *Relay) Endpoint() string {
	return r.endpoint
}

// Generate runs the pipeline for one prompt: validation, credential
// refresh, upstream call, result extraction. One attempt, no retry.
func (r *Relay) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", core.NewValidationError(core.MsgPromptEmpty)
	}
	if r.credential == nil {
		return "", core.NewConfigurationError(core.MsgCredentialsUnavailable)
	}
	if r.projectID == "" {
		return "", core.NewConfigurationError(core.MsgProjectIDMissing)
	}

	r.logger.Info("Received prompt: %s", util.TruncateForLog(prompt))

	r.logger.Debug("Refreshing credentials to obtain access token...")
	if err := r.credential.Refresh(ctx); err != nil {
		return "", err
	}
	token := r.credential.Token()
	r.logger.Info("Access token retrieved successfully (length=%d characters)", len(token))

	payloadBytes, err := buildGeneratePayload(prompt)
	if err != nil {
		return "", core.NewInternalError("failed to marshal request", err)
	}

	r.logger.Info("Using Vertex AI endpoint: %s", r.endpoint)

	ctx, cancel := context.WithTimeout(ctx, core.GenerateRequestTimeout)
	defer cancel()

	resp, err := r.sendUpstreamRequest(ctx, payloadBytes, token)
	if err != nil {
		if isTimeout(err) {
			return "", core.NewTimeoutError(
				fmt.Sprintf("request to Vertex AI timed out after %s", core.GenerateRequestTimeout), err)
		}
		return "", core.NewInternalError(err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, core.MaxResponseBodySize))
	if err != nil {
		if isTimeout(err) {
			return "", core.NewTimeoutError(
				fmt.Sprintf("request to Vertex AI timed out after %s", core.GenerateRequestTimeout), err)
		}
		return "", core.NewInternalError(err.Error(), err)
	}

	r.logger.Info("Response received with status code: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Vertex AI API error: %s", string(body))
		return "", enrichUpstreamError(resp.StatusCode, body, r.modelID, r.projectID)
	}

	text, ok := ExtractGeneratedText(body)
	if !ok {
		r.logger.Warn("Could not parse standard response format, returning raw response")
	}
	return text, nil
}

// buildGeneratePayload builds the single-turn generateContent payload
// with the fixed sampling parameters and safety thresholds.
func buildGeneratePayload(prompt string) ([]byte, error) {
	settings := make([]core.VertexSafetySetting, 0, len(core.SafetyCategories))
	for _, category := range core.SafetyCategories {
		settings = append(settings, core.VertexSafetySetting{
			Category:  category,
			Threshold: core.SafetyThresholdMediumAndAbove,
		})
	}

	payload := core.VertexGenerateRequest{
		Contents: []core.VertexContent{{
			Role:  "user",
			Parts: []core.VertexPart{{Text: prompt}},
		}},
		GenerationConfig: core.VertexGenerationConfig{
			Temperature:     core.GenTemperature,
			TopK:            core.GenTopK,
			TopP:            core.GenTopP,
			MaxOutputTokens: core.GenMaxOutputTokens,
			CandidateCount:  core.GenCandidateCount,
		},
		SafetySettings: settings,
	}

	return util.MarshalJSON(payload)
}

// sendUpstreamRequest issues the outbound call with the bearer token.
func (r *Relay) sendUpstreamRequest(ctx context.Context, payloadBytes []byte, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+token)
	req.Header.Set(core.HeaderContentType, core.ContentTypeJSON)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	r.logger.Debug("Vertex AI response status: %d", resp.StatusCode)
	return resp, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
