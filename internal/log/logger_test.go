package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAppLoggerWithConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAppLoggerWithConfig(&buf, true)
	if logger == nil {
		t.Fatal("日志实例不应为nil")
	}
	if !logger.debug {
		t.Error("调试模式应为true")
	}
	if logger.fileHandle != nil {
		t.Error("外部输出时不应持有文件句柄")
	}
}

func TestAppLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		message   string
		expectLog bool
	}{
		{"调试模式下输出", true, "测试调试消息", true},
		{"非调试模式下不输出", false, "这条不应该出现", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewAppLoggerWithConfig(&buf, tt.debugMode)
			logger.Debug(tt.message)
			output := buf.String()
			hasLog := strings.Contains(output, tt.message)
			if hasLog != tt.expectLog {
				t.Errorf("期望有日志输出=%v，实际=%v", tt.expectLog, hasLog)
			}
			if tt.expectLog && !strings.Contains(output, "[DEBUG]") {
				t.Error("调试日志应包含 [DEBUG] 前缀")
			}
		})
	}
}

func TestAppLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		log    func(l *AppLogger)
		prefix string
		want   string
	}{
		{"Info", func(l *AppLogger) { l.Info("测试信息: %s", "参数值") }, "[INFO]", "测试信息: 参数值"},
		{"Warn", func(l *AppLogger) { l.Warn("测试警告: %d", 123) }, "[WARN]", "测试警告: 123"},
		{"Error", func(l *AppLogger) { l.Error("测试错误: %v", "详细信息") }, "[ERROR]", "测试错误: 详细信息"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewAppLoggerWithConfig(&buf, false)
			tt.log(logger)
			output := buf.String()
			if !strings.Contains(output, tt.prefix) {
				t.Errorf("日志应包含 %s 前缀，实际 %q", tt.prefix, output)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("日志应包含格式化后的消息 %q，实际 %q", tt.want, output)
			}
		})
	}
}

func TestAppLogger_NilSafety(t *testing.T) {
	var logger *AppLogger = nil
	logger.Debug("不应panic")
	logger.Info("不应panic")
	logger.Warn("不应panic")
	logger.Error("不应panic")
}

func TestAppLogger_Close(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*AppLogger, error)
	}{
		{"关闭无文件句柄的日志", func() (*AppLogger, error) {
			var buf bytes.Buffer
			logger := NewAppLoggerWithConfig(&buf, false)
			return logger, logger.Close()
		}},
		{"关闭nil日志", func() (*AppLogger, error) {
			var logger *AppLogger = nil
			return logger, logger.Close()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if err != nil {
				t.Errorf("关闭日志不应返回错误: %v", err)
			}
		})
	}
}

func TestContainsPathTraversal(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"正常路径", "/var/log/app.log", false},
		{"包含..", "/var/../etc/passwd", true},
		{"包含../", "../secret.txt", true},
		{"包含./", "./local.log", false},
		{"Windows上级目录", "..\\config.ini", true},
		{"空路径", "", false},
		{"文件名包含点", "/var/log/app.2024.log", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := containsPathTraversal(tt.path)
			if result != tt.expected {
				t.Errorf("containsPathTraversal(%q) = %v，期望 %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestCreateDebugFileOutput(t *testing.T) {
	t.Run("未设置时回退到stdout", func(t *testing.T) {
		t.Setenv("DEBUG_FILE", "")
		output, handle := createDebugFileOutput()
		if output != os.Stdout {
			t.Error("DEBUG_FILE 未设置时应使用 stdout")
		}
		if handle != nil {
			t.Error("stdout 输出不应持有文件句柄")
		}
	})

	t.Run("路径穿越回退到stdout", func(t *testing.T) {
		t.Setenv("DEBUG_FILE", "../escape.log")
		output, handle := createDebugFileOutput()
		if output != os.Stdout || handle != nil {
			t.Error("路径穿越时应回退到 stdout")
		}
	})

	t.Run("合法路径打开文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "debug.log")
		t.Setenv("DEBUG_FILE", path)
		output, handle := createDebugFileOutput()
		if handle == nil {
			t.Fatal("合法路径应返回文件句柄")
		}
		t.Cleanup(func() { _ = handle.Close() })
		if output != handle {
			t.Error("文件输出时 writer 应为文件本身")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("日志文件应已创建: %v", err)
		}
	})
}

func TestIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		ginMode  string
		expected bool
	}{
		{"debug模式", "debug", true},
		{"release模式", "release", false},
		{"test模式", "test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GIN_MODE", tt.ginMode)
			if result := IsDebug(); result != tt.expected {
				t.Errorf("IsDebug() = %v，期望 %v (GIN_MODE=%s)", result, tt.expected, tt.ginMode)
			}
		})
	}
}

func TestAppLogger_MultipleWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAppLoggerWithConfig(&buf, true)
	logger.Debug("第一条")
	logger.Info("第二条")
	logger.Warn("第三条")
	logger.Error("第四条")
	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Errorf("期望4行日志，实际 %d 行", len(lines))
	}
}
