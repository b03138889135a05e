package log

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"geminirelay/internal/core"
)

// AppLogger is the application logger implementation.
type AppLogger struct {
	logger     *log.Logger
	debug      bool
	fileHandle *os.File
	mu         sync.Mutex
}

var _ core.Logger = (*AppLogger)(nil)

// NewAppLoggerWithConfig creates a logger instance with configuration.
func NewAppLoggerWithConfig(output io.Writer, debugMode bool) *AppLogger {
	return &AppLogger{
		logger: log.New(output, "", log.LstdFlags),
		debug:  debugMode,
	}
}

// Debug logs a message at DEBUG level.
func (l *AppLogger) Debug(format string, args ...any) {
	if l != nil && l.debug {
		l.logger.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs a message at INFO level.
func (l *AppLogger) Info(format string, args ...any) {
	if l != nil {
		l.logger.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a message at WARN level.
func (l *AppLogger) Warn(format string, args ...any) {
	if l != nil {
		l.logger.Printf("[WARN] "+format, args...)
	}
}

// Error logs a message at ERROR level.
func (l *AppLogger) Error(format string, args ...any) {
	if l != nil {
		l.logger.Printf("[ERROR] "+format, args...)
	}
}

// Fatal logs a message at FATAL level and terminates the process.
func (l *AppLogger) Fatal(format string, args ...any) {
	if l != nil {
		l.logger.Fatalf("[FATAL] "+format, args...)
	} else {
		log.Fatalf("[FATAL] "+format, args...)
	}
}

// Close safely closes the log file handle if one is open.
func (l *AppLogger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileHandle != nil {
		err := l.fileHandle.Close()
		l.fileHandle = nil
		return err
	}
	return nil
}

// containsPathTraversal reports whether path carries traversal segments.
func containsPathTraversal(path string) bool {
	for _, pattern := range []string{"..", "./", ".\\"} {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// createDebugFileOutput resolves the DEBUG_FILE target, falling back to
// stdout on any problem with the configured path.
func createDebugFileOutput() (io.Writer, *os.File) {
	debugFile := os.Getenv("DEBUG_FILE")
	if debugFile == "" {
		return os.Stdout, nil
	}

	if len(debugFile) > core.MaxDebugFilePathLength {
		log.Printf("[WARN] DEBUG_FILE path too long, falling back to stdout")
		return os.Stdout, nil
	}

	if containsPathTraversal(debugFile) {
		log.Printf("[WARN] DEBUG_FILE contains path traversal characters, falling back to stdout")
		return os.Stdout, nil
	}

	//nolint:gosec // G304: debugFile from env var, validated by containsPathTraversal
	file, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, core.FilePermissionReadWrite)
	if err != nil {
		log.Printf("[WARN] Failed to open DEBUG_FILE '%s': %v, falling back to stdout", debugFile, err)
		return os.Stdout, nil
	}

	return file, file
}

// IsDebug returns whether the app is running in debug mode.
func IsDebug() bool {
	return os.Getenv("GIN_MODE") == "debug"
}

// CreateLogger creates a logger instance (for dependency injection).
func CreateLogger() core.Logger {
	output, fileHandle := createDebugFileOutput()

	return &AppLogger{
		logger:     log.New(output, "", log.LstdFlags),
		debug:      IsDebug(),
		fileHandle: fileHandle,
	}
}
