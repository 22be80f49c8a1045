package middleware

//go:generate $MOCKGEN -source=types.go -destination=mocks/types_mock.go

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Middleware wraps an http.RoundTripper and returns a new one.
//
// The returned RoundTripper must be safe for concurrent use.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Logger is the part of *zap.Logger the logging middlewares write to.
// It is used both for request logging and as a per-request debug sink.
type Logger interface {
	// Log writes one entry at the given level.
	Log(lvl zapcore.Level, msg string, fields ...zap.Field)
}

// Instrumenter receives one Event for every request passing the instrumentation middleware.
type Instrumenter interface {
	// Instrument is called after the downstream round trip completed.
	Instrument(ctx context.Context, event Event)
}

// Event describes one instrumented round trip.
type Event struct {
	// ID uniquely identifies the round trip.
	ID string
	// Name is always EventName.
	Name string
	// Method is the request method.
	Method string
	// URL is the request URL.
	URL string
	// Status is the response status, or 0 when the round trip failed.
	Status int
	// Duration is the time spent downstream.
	Duration time.Duration
	// Err is the downstream error, if any.
	Err error
}
