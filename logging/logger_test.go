package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	config := DefaultConfig("test-service")

	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}

	logger.Info("test message")
	_ = logger.Sync()
}

func TestNewCLI(t *testing.T) {
	logger, err := NewCLI("test-cli")
	if err != nil {
		t.Fatalf("Failed to create CLI logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}

	logger.Info("CLI test message")
	_ = logger.Sync()
}

func TestWithFields(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, _ := New(config)

	contextLogger := logger.WithFields(map[string]any{
		"userId": "user123",
		"action": "test",
	})

	contextLogger.Info("test with fields")
	_ = logger.Sync()
}

func TestWithError(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, _ := New(config)

	errorLogger := logger.WithError(os.ErrNotExist)

	errorLogger.Error("test with error")
	_ = logger.Sync()
}

func TestWithComponent(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, _ := New(config)

	componentLogger := logger.WithComponent("verifier")
	componentLogger.Info("test with component")
	_ = logger.Sync()
}

func TestWithCorrelation(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, _ := New(config)

	tagged := logger.WithCorrelation("0191f000-0000-7000-8000-000000000000")
	tagged.Info("test with correlation id")
	_ = logger.Sync()
}

func TestSetLevel(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, _ := New(config)

	if logger.GetLevel() != INFO {
		t.Errorf("Expected INFO level, got %s", logger.GetLevel())
	}

	logger.SetLevel(DEBUG)
	if logger.GetLevel() != DEBUG {
		t.Errorf("Expected DEBUG level, got %s", logger.GetLevel())
	}

	logger.SetLevel(ERROR)
	if logger.GetLevel() != ERROR {
		t.Errorf("Expected ERROR level, got %s", logger.GetLevel())
	}
}

func TestFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	config := &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      "test-service",
		Sinks: []SinkConfig{
			{
				Type:   "file",
				Format: "json",
				File: &FileSinkConfig{
					Path:       logPath,
					MaxSize:    10,
					MaxBackups: 3,
					MaxAge:     7,
					Compress:   false,
				},
			},
		},
	}

	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger with file sink: %v", err)
	}

	logger.Info("test file output")
	_ = logger.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestMultipleSinks(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "multi.log")

	config := &LoggerConfig{
		DefaultLevel: "DEBUG",
		Service:      "test-service",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "json",
				Console: &ConsoleSinkConfig{
					Stream: "stderr",
				},
			},
			{
				Type:   "file",
				Format: "json",
				File: &FileSinkConfig{
					Path:    logPath,
					MaxSize: 10,
				},
			},
		},
	}

	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger with multiple sinks: %v", err)
	}

	logger.Info("multi-sink test")
	_ = logger.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created for multi-sink logger")
	}
}

func TestStaticFields(t *testing.T) {
	config := &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      "test-service",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "json",
				Console: &ConsoleSinkConfig{
					Stream: "stderr",
				},
			},
		},
		StaticFields: map[string]any{
			"version": "1.0.0",
			"region":  "us-east-1",
		},
	}

	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger with static fields: %v", err)
	}

	logger.Info("test static fields")
	_ = logger.Sync()
}

func TestLoggingMethods(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Trace("trace message")
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")

	_ = logger.Sync()
}

func TestNamed(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	namedLogger := logger.Named("subsystem")
	if namedLogger == nil {
		t.Fatal("Named() returned nil logger")
	}

	namedLogger.Info("message from named logger")
	_ = logger.Sync()
}

func TestWithContext(t *testing.T) {
	config := DefaultConfig("test-service")
	logger, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	contextLogger := logger.WithContext(context.Background())
	if contextLogger == nil {
		t.Fatal("WithContext() returned nil logger")
	}

	contextLogger.Info("message with context")
	_ = logger.Sync()
}

func TestConsoleSinkRejectsStdout(t *testing.T) {
	config := &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      "test-service",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "json",
				Console: &ConsoleSinkConfig{
					Stream: "stdout",
				},
			},
		},
	}

	if _, err := New(config); err == nil {
		t.Error("expected console sink writing to stdout to be rejected")
	}
}
