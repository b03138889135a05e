package config

import (
	"net/http"
	"time"

	"geminirelay/internal/core"
	"geminirelay/internal/util"
)

// ServerConfig server configuration
type ServerConfig struct {
	Port     string
	GinMode  string
	Location string
	// ModelName is the short catalog name from GEMINI_MODEL; the concrete
	// Vertex AI identifier is resolved at server construction.
	ModelName string

	// Credential and ProjectID come from the startup bootstrap. Either may
	// be absent; the server still starts and reports the gap per request.
	Credential core.CredentialSource
	ProjectID  string

	HTTPClientSettings HTTPClientSettings
	Storage            core.StorageInterface
	Logger             core.Logger

	// HTTPClient overrides the tuned default transport when set.
	HTTPClient *http.Client
}

// HTTPClientSettings HTTP client configuration
type HTTPClientSettings struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	RequestTimeout      time.Duration
}

// DefaultHTTPClientSettings default HTTP client settings
func DefaultHTTPClientSettings() HTTPClientSettings {
	return HTTPClientSettings{
		MaxIdleConns:        core.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: core.HTTPMaxIdleConnsPerHost,
		MaxConnsPerHost:     core.HTTPMaxConnsPerHost,
		IdleConnTimeout:     core.HTTPIdleConnTimeout,
		TLSHandshakeTimeout: core.HTTPTLSHandshakeTimeout,
		RequestTimeout:      core.HTTPRequestTimeout,
	}
}

// LoadServerConfigFromEnv loads server config from environment variables
func LoadServerConfigFromEnv(logger core.Logger) (ServerConfig, error) {
	modelName := util.GetEnvWithDefault("GEMINI_MODEL", core.DefaultModelName)
	location := util.GetEnvWithDefault("VERTEX_AI_LOCATION", core.DefaultLocation)
	port := util.GetEnvWithDefault("PORT", core.DefaultPort)
	ginMode := util.GetEnvWithDefault("GIN_MODE", core.DefaultGinMode)

	if _, known := core.GeminiModels[modelName]; !known {
		logger.Warn("Unknown model '%s', falling back to %s", modelName, core.DefaultModelID)
	}

	config := ServerConfig{
		Port:               port,
		GinMode:            ginMode,
		Location:           location,
		ModelName:          modelName,
		HTTPClientSettings: DefaultHTTPClientSettings(),
	}

	return config, nil
}
