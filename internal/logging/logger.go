// Package logging provides leveled logging for trackrelay.
package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the available log levels. trackrelay needs two more
// severities than zap ships (Trace below Debug, Critical above Error) to
// satisfy the six-level logger contract every pipeline stage depends on.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelTrace, LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelCritical:
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
	// Name tags every line with the owning component, e.g. "stageA.receiver".
	Name string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger wraps a zap.SugaredLogger with the six pipeline severities.
type Logger struct {
	sugar *zap.SugaredLogger
	level LogLevel
	mu    sync.Mutex
}

// NewLogger creates a new logger from config, building a zap core over the
// given writer (or stderr) at the configured level.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), config.Level.zapLevel())
	logger := zap.New(core)
	if config.Name != "" {
		logger = logger.Named(config.Name)
	}

	return &Logger{
		sugar: logger.Sugar(),
		level: config.Level,
	}
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// Default returns the process-wide default logger, creating it if necessary.
func Default() *Logger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defer defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Sync flushes any buffered log entries. Callers should defer Sync at
// process shutdown; errors writing to stderr/stdout are expected and
// intentionally ignored.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

// Trace logs below Debug — per-record chatter not wanted outside deep
// diagnosis (e.g. per-datagram receive timestamps).
func (l *Logger) Trace(msg string, kv ...any) {
	if l.enabled(LevelTrace) {
		l.sugar.Debugw("[TRACE] "+msg, kv...)
	}
}

func (l *Logger) Debug(msg string, kv ...any) {
	if l.enabled(LevelDebug) {
		l.sugar.Debugw(msg, kv...)
	}
}

func (l *Logger) Info(msg string, kv ...any) {
	if l.enabled(LevelInfo) {
		l.sugar.Infow(msg, kv...)
	}
}

func (l *Logger) Warn(msg string, kv ...any) {
	if l.enabled(LevelWarn) {
		l.sugar.Warnw(msg, kv...)
	}
}

func (l *Logger) Error(msg string, kv ...any) {
	if l.enabled(LevelError) {
		l.sugar.Errorw(msg, kv...)
	}
}

// Critical logs a process-ending condition (e.g. startup bind/connect
// failure) without actually panicking — DPanic only panics in development
// builds, which is exactly the "log loudly, don't crash the logger" behavior
// a stage's own exit-code handling should drive instead.
func (l *Logger) Critical(msg string, kv ...any) {
	if l.enabled(LevelCritical) {
		l.sugar.DPanicw("[CRITICAL] "+msg, kv...)
	}
}

// Printf-style variants, for call sites that build up a formatted message
// rather than passing structured key-value pairs.
func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(LevelDebug) {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled(LevelWarn) {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled(LevelError) {
		l.sugar.Errorf(format, args...)
	}
}

// Named returns a child logger tagging every line with an additional
// component name, e.g. logger.Named("receiver").
func (l *Logger) Named(name string) *Logger {
	return &Logger{sugar: l.sugar.Named(name), level: l.level}
}
