package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	//nolint:gochecknoglobals // The process logger is shared by the CLI commands.
	globalLogger *zap.Logger

	//nolint:gochecknoglobals // The level is adjusted at runtime from configuration.
	globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	//nolint:gochecknoglobals // Guards globalLogger replacement.
	globalMu sync.RWMutex
)

//nolint:gochecknoinits // The logger must be usable before configuration is loaded.
func init() {
	globalLogger = New(globalLevel)
}

// New creates a console zap logger writing to stderr.
// A nil level falls back to the process-wide atomic level.
func New(level zapcore.LevelEnabler) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core)
}

// ParseLogLevel converts a level name into a zap level.
// The second return value reports whether the name was recognized;
// unknown names yield zapcore.InfoLevel.
func ParseLogLevel(name string) (zapcore.Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zapcore.InfoLevel, false
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, false
	}

	return level, true
}

// Level returns the current process-wide level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel changes the process-wide level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug entries are currently enabled.
func IsDebugLevel() bool {
	return globalLevel.Enabled(zapcore.DebugLevel)
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalLogger = l
}

// Named returns a child of the process-wide logger with the given name.
func Named(name string) *zap.Logger {
	return Logger().Named(name)
}

func sugar(_ context.Context) *zap.SugaredLogger {
	return Logger().WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, msg string) {
	sugar(ctx).Debug(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Debugf(format, args...)
}

// DebugKV logs a message with key-value pairs at debug level.
func DebugKV(ctx context.Context, msg string, kvs ...any) {
	sugar(ctx).Debugw(msg, kvs...)
}

// Info logs a message at info level.
func Info(ctx context.Context, msg string) {
	sugar(ctx).Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	sugar(ctx).Infof(format, args...)
}

// InfoKV logs a message with key-value pairs at info level.
func InfoKV(ctx context.Context, msg string, kvs ...any) {
	sugar(ctx).Infow(msg, kvs...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, msg string) {
	sugar(ctx).Warn(msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Warnf(format, args...)
}

// WarnKV logs a message with key-value pairs at warn level.
func WarnKV(ctx context.Context, msg string, kvs ...any) {
	sugar(ctx).Warnw(msg, kvs...)
}

// Error logs a message at error level.
func Error(ctx context.Context, msg string) {
	sugar(ctx).Error(msg)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Errorf(format, args...)
}

// ErrorKV logs a message with key-value pairs at error level.
func ErrorKV(ctx context.Context, msg string, kvs ...any) {
	sugar(ctx).Errorw(msg, kvs...)
}

// Fatal logs a message at fatal level and exits.
func Fatal(ctx context.Context, msg string) {
	sugar(ctx).Fatal(msg)
}

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(ctx context.Context, format string, args ...any) {
	sugar(ctx).Fatalf(format, args...)
}
