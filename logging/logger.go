package logging

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap with this module's sink/severity configuration.
type Logger struct {
	zap         *zap.Logger
	config      *LoggerConfig
	atomicLevel zap.AtomicLevel
}

// New creates a new logger from configuration.
func New(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	applyDefaults(config)
	if err := validateConsoleSinks(config.Sinks); err != nil {
		return nil, fmt.Errorf("sink validation failed: %w", err)
	}

	level := ParseSeverity(config.DefaultLevel).ToZapLevel()
	atomicLevel := zap.NewAtomicLevelAt(level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    severityEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	for _, sinkConfig := range config.Sinks {
		core, err := buildCore(sinkConfig, encoderConfig, atomicLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to build sink %s: %w", sinkConfig.Type, err)
		}
		cores = append(cores, core)
	}
	core := zapcore.NewTee(cores...)

	opts := []zap.Option{zap.AddCaller()}
	if config.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	if len(config.StaticFields) > 0 {
		fields := make([]zap.Field, 0, len(config.StaticFields))
		for k, v := range config.StaticFields {
			fields = append(fields, zap.Any(k, v))
		}
		opts = append(opts, zap.Fields(fields...))
	}
	opts = append(opts, zap.Fields(zap.String("service", config.Service)))
	if config.Environment != "" {
		opts = append(opts, zap.Fields(zap.String("environment", config.Environment)))
	}

	zapLogger := zap.New(core, opts...)

	return &Logger{
		zap:         zapLogger,
		config:      config,
		atomicLevel: atomicLevel,
	}, nil
}

// Nop returns a Logger that discards everything, for callers (tests,
// library use of transform) that don't want any output.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop(), config: &LoggerConfig{}, atomicLevel: zap.NewAtomicLevel()}
}

// NewCLI creates a logger configured for CLI applications (stderr only).
func NewCLI(serviceName string) (*Logger, error) {
	config := &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      serviceName,
		Environment:  "cli",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "console",
				Console: &ConsoleSinkConfig{
					Stream:   "stderr",
					Colorize: true,
				},
			},
		},
		EnableCaller:     false,
		EnableStacktrace: true,
	}
	return New(config)
}

func buildCore(sinkConfig SinkConfig, encoderConfig zapcore.EncoderConfig, defaultLevel zap.AtomicLevel) (zapcore.Core, error) {
	var encoder zapcore.Encoder
	switch sinkConfig.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "text":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var writer zapcore.WriteSyncer
	switch sinkConfig.Type {
	case "console":
		writer = zapcore.AddSync(os.Stderr)
	case "file":
		w, err := buildFileWriter(sinkConfig)
		if err != nil {
			return nil, err
		}
		writer = w
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", sinkConfig.Type)
	}

	level := defaultLevel
	if sinkConfig.Level != "" {
		level = zap.NewAtomicLevelAt(ParseSeverity(sinkConfig.Level).ToZapLevel())
	}

	return zapcore.NewCore(encoder, writer, level), nil
}

func buildFileWriter(sinkConfig SinkConfig) (zapcore.WriteSyncer, error) {
	if sinkConfig.File == nil {
		return nil, fmt.Errorf("file sink requires file configuration")
	}

	lumber := &lumberjack.Logger{
		Filename:   sinkConfig.File.Path,
		MaxSize:    sinkConfig.File.MaxSize,
		MaxAge:     sinkConfig.File.MaxAge,
		MaxBackups: sinkConfig.File.MaxBackups,
		Compress:   sinkConfig.File.Compress,
	}
	return zapcore.AddSync(lumber), nil
}

func severityEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var severity string
	switch l {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARN"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		severity = "FATAL"
	default:
		severity = "INFO"
	}
	enc.AppendString(severity)
}

// Trace logs at TRACE level (zap has no TRACE, so this logs at DEBUG).
func (l *Logger) Trace(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)   { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)   { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field)  { l.zap.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field)  { l.zap.Fatal(msg, fields...) }

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return &Logger{zap: l.zap.With(zapFields...), config: l.config, atomicLevel: l.atomicLevel}
}

// WithError returns a logger with error information.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zap: l.zap.With(zap.Error(err)), config: l.config, atomicLevel: l.atomicLevel}
}

// WithComponent returns a logger with a component field, e.g. "transform" or "verifier".
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zap: l.zap.With(zap.String("component", component)), config: l.config, atomicLevel: l.atomicLevel}
}

// WithCorrelation returns a logger tagging every line with a run's
// UUIDv7 correlation ID, per foundry.GenerateCorrelationID.
func (l *Logger) WithCorrelation(correlationID string) *Logger {
	return &Logger{zap: l.zap.With(zap.String("correlationId", correlationID)), config: l.config, atomicLevel: l.atomicLevel}
}

// WithContext extracts trace information from context. A placeholder
// until this module integrates distributed tracing.
func (l *Logger) WithContext(ctx context.Context) *Logger { return l }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.zap.Sync() }

// SetLevel dynamically changes the log level.
func (l *Logger) SetLevel(severity Severity) { l.atomicLevel.SetLevel(severity.ToZapLevel()) }

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Severity {
	switch l.atomicLevel.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.InfoLevel:
		return INFO
	case zapcore.WarnLevel:
		return WARN
	case zapcore.ErrorLevel:
		return ERROR
	case zapcore.FatalLevel:
		return FATAL
	default:
		return INFO
	}
}

// Named returns a logger with the specified name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name), config: l.config, atomicLevel: l.atomicLevel}
}
