package util

import (
	"os"

	"github.com/bytedance/sonic"
)

// MarshalJSON wraps Sonic for performance
func MarshalJSON(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// UnmarshalJSON wraps Sonic for performance
func UnmarshalJSON(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// GetEnvWithDefault gets env var with default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FirstEnv returns the first non-empty value among the given env vars.
func FirstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// TruncateString truncates string and adds replacement text in the middle
func TruncateString(s string, prefixLen, suffixLen int, replacement string) string {
	if len(s) > prefixLen+suffixLen {
		return s[:prefixLen] + replacement + s[len(s)-suffixLen:]
	}
	return s
}

// TruncateForLog shortens a prompt for log output.
func TruncateForLog(s string) string {
	return TruncateString(s, 100, 0, "...")
}
