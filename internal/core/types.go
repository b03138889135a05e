package core

import "time"

// PromptRequest is the inbound body of POST /api/generate.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// GenerationResult is the outbound body of POST /api/generate.
type GenerationResult struct {
	Response string `json:"response"`
}

// VertexPart is a single content fragment in a Vertex AI message.
type VertexPart struct {
	Text string `json:"text"`
}

// VertexContent is one conversation turn in Vertex AI's schema.
type VertexContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []VertexPart `json:"parts"`
}

// VertexGenerationConfig carries the sampling parameters sent with
// every generateContent call.
type VertexGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	CandidateCount  int     `json:"candidateCount"`
}

// VertexSafetySetting sets the blocking threshold for one harm category.
type VertexSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// VertexGenerateRequest is the full generateContent request payload.
type VertexGenerateRequest struct {
	Contents         []VertexContent        `json:"contents"`
	GenerationConfig VertexGenerationConfig `json:"generationConfig"`
	SafetySettings   []VertexSafetySetting  `json:"safetySettings"`
}

// VertexCandidate is one generated response option.
type VertexCandidate struct {
	Content VertexContent `json:"content"`
}

// VertexGenerateResponse mirrors the subset of the generateContent
// response the relay reads. Everything else is ignored.
type VertexGenerateResponse struct {
	Candidates []VertexCandidate `json:"candidates"`
}

// RequestStats holds aggregated request statistics for monitoring.
type RequestStats struct {
	TotalRequests      int64           `json:"total_requests"`
	SuccessfulRequests int64           `json:"successful_requests"`
	FailedRequests     int64           `json:"failed_requests"`
	TotalResponseTime  int64           `json:"total_response_time"`
	LastRequestTime    time.Time       `json:"last_request_time"`
	RequestHistory     []RequestRecord `json:"request_history"`
}

// RequestRecord represents a single request's metadata for history tracking.
type RequestRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Success      bool      `json:"success"`
	ResponseTime int64     `json:"response_time"`
	Model        string    `json:"model"`
	Status       int       `json:"status"`
}

// PeriodStats holds computed statistics for a time period.
type PeriodStats struct {
	Requests        int64   `json:"requests"`
	SuccessRate     float64 `json:"successRate"`
	AvgResponseTime int64   `json:"avgResponseTime"`
	QPS             float64 `json:"qps"`
}
