package core

import "time"

// Model selection constants
const (
	DefaultModelName = "gemini-2.0-flash"
	DefaultModelID   = "gemini-2.0-flash-001"
	DefaultLocation  = "us-central1"

	// Newest-generation models are only guaranteed to be served behind
	// the global endpoint, regardless of the configured location.
	GlobalOnlyModelPrefix = "gemini-2.5"
	LocationGlobal        = "global"
)

// GeminiModels maps short model names accepted via GEMINI_MODEL to
// concrete Vertex AI model identifiers. Built once, never mutated.
var GeminiModels = map[string]string{
	// 2.5 series, served without a version suffix
	"gemini-2.5-flash":      "gemini-2.5-flash",
	"gemini-2.5-flash-lite": "gemini-2.5-flash-lite",

	// 2.0 series, needs the -001 suffix
	"gemini-2.0-flash":      "gemini-2.0-flash-001",
	"gemini-2.0-flash-lite": "gemini-2.0-flash-lite-001",

	// 1.5 series and legacy
	"gemini-1.5-flash": "gemini-1.5-flash-002",
	"gemini-1.5-pro":   "gemini-1.5-pro-002",
	"gemini-pro":       "gemini-pro",
}

// Generation parameter constants, applied to every upstream request
const (
	GenTemperature     = 0.7
	GenTopK            = 40
	GenTopP            = 0.95
	GenMaxOutputTokens = 8192
	GenCandidateCount  = 1
)

// SafetyThresholdMediumAndAbove is the blocking threshold applied to
// every safety category.
const SafetyThresholdMediumAndAbove = "BLOCK_MEDIUM_AND_ABOVE"

// SafetyCategories lists the harm categories blocked on every request.
var SafetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Credential constants
const (
	CloudPlatformScope         = "https://www.googleapis.com/auth/cloud-platform"
	DefaultServiceAccountLabel = "default"
)

// ProjectIDEnvVars are the environment fallbacks for the project id,
// checked in order after the credential-provided value.
var ProjectIDEnvVars = []string{"GCP_PROJECT", "GOOGLE_CLOUD_PROJECT"}

// Timeout constants
const (
	GenerateRequestTimeout = 60 * time.Second
	HTTPRequestTimeout     = GenerateRequestTimeout
)

// HTTP client config constants
const (
	HTTPMaxIdleConns          = 500
	HTTPMaxIdleConnsPerHost   = 100
	HTTPMaxConnsPerHost       = 200
	HTTPIdleConnTimeout       = 600 * time.Second
	HTTPTLSHandshakeTimeout   = 30 * time.Second
	HTTPResponseHeaderTimeout = GenerateRequestTimeout
	HTTPExpectContinueTimeout = 5 * time.Second
)

// Stats and monitoring constants
const (
	StatsFilePath        = "stats.json"
	MinSaveInterval      = 5 * time.Second
	HistoryBufferSize    = 1000
	HistoryBatchSize     = 100
	HistoryFlushInterval = 100 * time.Millisecond
)

// Server constants
const (
	DefaultPort    = "8000"
	DefaultGinMode = "release"
	CORSMaxAge     = "86400"
)

// TimeFormatDateTime is the human-readable timestamp format used in
// diagnostic payloads.
const TimeFormatDateTime = "2006-01-02 15:04:05"

// HTTP header constants
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	ContentTypeJSON     = "application/json"
	ContentTypeHTML     = "text/html; charset=utf-8"
	AuthBearerPrefix    = "Bearer "
)

// Response body size limits
const (
	MaxResponseBodySize = 10 * 1024 * 1024
	MaxRequestBodySize  = 1 << 20
)

// File handling constants
const (
	FilePermissionReadWrite = 0o644
	MaxDebugFilePathLength  = 4096
)

// Diagnostic message constants
const (
	MsgPromptEmpty = "Prompt cannot be empty"

	MsgCredentialsUnavailable = "Google Cloud credentials not available. Please check service account configuration."

	MsgProjectIDMissing = "Project ID not found. Please set GCP_PROJECT or GOOGLE_CLOUD_PROJECT environment variable."

	HealthNote = "If model not found, try setting VERTEX_AI_LOCATION=global"
)

// RecommendedModels is the curated shortlist reported by the catalog
// listing endpoint.
var RecommendedModels = []string{
	"gemini-2.0-flash (best for most use cases)",
	"gemini-2.5-flash (latest, may require global location)",
	"gemini-1.5-flash (stable, widely available)",
}

// ConfigurationHints describes the two model-selection environment
// variables for the catalog listing endpoint.
var ConfigurationHints = map[string]string{
	"GEMINI_MODEL":       "Set to change model (e.g., gemini-2.0-flash)",
	"VERTEX_AI_LOCATION": "Set to 'global' or 'us-central1'",
}
