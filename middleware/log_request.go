package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap/zapcore"
)

// RequestLogger is an http.RoundTripper that writes one summary line per request:
//
//	[<host>] <METHOD> <path> <status> (<seconds> s)
//
// The status is 500 when no response was obtained. When the downstream call
// fails, a second entry describes the error; the error itself is returned unchanged.
type RequestLogger struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// logger receives the log entries.
	logger Logger
	// level is the level of every entry.
	level zapcore.Level
}

// NewRequestLogger creates and returns a new instance of RequestLogger.
func NewRequestLogger(next http.RoundTripper, logger Logger, level zapcore.Level) http.RoundTripper {
	return &RequestLogger{
		next:   next,
		logger: logger,
		level:  level,
	}
}

// LogRequest returns a middleware installing RequestLogger.
func LogRequest(logger Logger, level zapcore.Level) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewRequestLogger(next, logger, level)
	}
}

// Level returns the level entries are written at.
func (t *RequestLogger) Level() zapcore.Level {
	return t.level
}

// RoundTrip executes a single HTTP transaction and logs its outcome.
func (t *RequestLogger) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	t.logger.Log(t.level, SummaryLine(req, resp, time.Since(startTime)))

	if err != nil {
		t.logger.Log(t.level, DescribeError(err))
	}

	return resp, err
}

// SummaryLine formats the request summary written by RequestLogger.
func SummaryLine(req *http.Request, resp *http.Response, duration time.Duration) string {
	status := http.StatusInternalServerError
	if resp != nil && resp.StatusCode != 0 {
		status = resp.StatusCode
	}

	return fmt.Sprintf("[%s] %s %s %d (%.3f s)",
		req.URL.Hostname(), requestMethod(req), req.URL.Path, status, duration.Seconds())
}
