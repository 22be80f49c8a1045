package loogihttp

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Process-wide defaults read by NewBuilder.
var (
	//nolint:gochecknoglobals // Guards the defaults below.
	defaultsMu sync.RWMutex

	//nolint:gochecknoglobals // Initial logger of new builders.
	defaultLogger middleware.Logger

	//nolint:gochecknoglobals // Initial log level of new builders.
	defaultLogLevel = zapcore.InfoLevel

	//nolint:gochecknoglobals // Initial instrumenter of new builders.
	defaultInstrumenter middleware.Instrumenter
)

// SetLogger sets the logger of stacks built afterwards. Nil disables request logging.
func SetLogger(logger middleware.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultLogger = normalizeLogger(logger)
}

// DefaultLogger returns the process-wide logger, or nil.
func DefaultLogger() middleware.Logger {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()

	return defaultLogger
}

// SetLogLevel sets the request log level of stacks built afterwards.
func SetLogLevel(level zapcore.Level) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultLogLevel = level
}

// DefaultLogLevel returns the process-wide request log level.
func DefaultLogLevel() zapcore.Level {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()

	return defaultLogLevel
}

// SetInstrumenter sets the instrumenter of stacks built afterwards. Nil disables instrumentation.
func SetInstrumenter(instrumenter middleware.Instrumenter) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultInstrumenter = instrumenter
}

// DefaultInstrumenter returns the process-wide instrumenter, or nil.
func DefaultInstrumenter() middleware.Instrumenter {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()

	return defaultInstrumenter
}

// normalizeLogger turns a typed nil *zap.Logger into a nil interface.
func normalizeLogger(logger middleware.Logger) middleware.Logger {
	if l, ok := logger.(*zap.Logger); ok && l == nil {
		return nil
	}

	return logger
}
