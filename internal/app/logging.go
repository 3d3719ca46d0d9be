package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLogLevel parses a string into a LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug
	case "info", "INFO":
		return LogLevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn
	case "error", "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides structured logging for the application. Messages are
// printf-style; fields are attached with WithField. Loggers derived with
// WithField share their parent's level and enabled state.
type Logger struct {
	zl       *zap.Logger
	level    zap.AtomicLevel
	disabled *atomic.Bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix names the logger in every entry.
	Prefix string
	// Format is "console" (default) or "json".
	Format string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "mathfield",
		Format: "console",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(cfg.Output)), level)
	zl := zap.New(core)
	if cfg.Prefix != "" {
		zl = zl.Named(cfg.Prefix)
	}
	return &Logger{zl: zl, level: level, disabled: new(atomic.Bool)}
}

func (l *Logger) with(fields ...zap.Field) *Logger {
	return &Logger{zl: l.zl.With(fields...), level: l.level, disabled: l.disabled}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.with(zap.Any(key, value))
}

// WithFields returns a new logger with the given fields added, in key order.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	zf := make([]zap.Field, len(keys))
	for i, k := range keys {
		zf[i] = zap.Any(k, fields[k])
	}
	return l.with(zf...)
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

// Disable disables all logging.
func (l *Logger) Disable() {
	l.disabled.Store(true)
}

// Enable enables logging.
func (l *Logger) Enable() {
	l.disabled.Store(false)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(zapcore.DebugLevel, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(zapcore.InfoLevel, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(zapcore.WarnLevel, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(zapcore.ErrorLevel, msg, args...)
}

func (l *Logger) log(level zapcore.Level, msg string, args ...any) {
	if l.disabled.Load() {
		return
	}
	ce := l.zl.Check(level, "")
	if ce == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	ce.Message = msg
	ce.Write()
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{zl: zap.NewNop(), level: zap.NewAtomicLevel(), disabled: new(atomic.Bool)}

// appLogger is the application-wide logger instance.
var (
	appLoggerMu sync.Mutex
	appLogger   *Logger
)

// GetLogger returns the application logger, creating a default one on
// first use.
func GetLogger() *Logger {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	if appLogger == nil {
		appLogger = NewLogger(DefaultLoggerConfig())
	}
	return appLogger
}

// SetLogger sets the application-wide logger.
func SetLogger(l *Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}
