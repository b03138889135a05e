package core

import "context"

// Logger interface
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Fatal(format string, args ...any)
}

// CredentialSource provides bearer tokens for upstream calls. Refresh
// mutates the underlying token in place; when refreshes race, the last
// writer wins.
type CredentialSource interface {
	Refresh(ctx context.Context) error
	Token() string
	ServiceAccount() string
}

// StorageInterface storage interface
type StorageInterface interface {
	SaveStats(stats *RequestStats) error
	LoadStats() (*RequestStats, error)
	Close() error
}

// MetricsCollector interface
type MetricsCollector interface {
	RecordRequest(success bool, responseTime int64, model string, status int)
	GetQPS() float64
}

// NopLogger empty logger implementation
type NopLogger struct{}

func (*NopLogger) Debug(format string, args ...any) {}
func (*NopLogger) Info(format string, args ...any)  {}
func (*NopLogger) Warn(format string, args ...any)  {}
func (*NopLogger) Error(format string, args ...any) {}
func (*NopLogger) Fatal(format string, args ...any) {}

// NopMetrics empty metrics collector implementation
type NopMetrics struct{}

func (*NopMetrics) RecordRequest(success bool, responseTime int64, model string, status int) {}
func (*NopMetrics) GetQPS() float64                                                          { return 0 }

var (
	_ Logger           = (*NopLogger)(nil)
	_ MetricsCollector = (*NopMetrics)(nil)
)
