package middleware

import "errors"

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
	// ErrUnknownMiddleware indicates that no middleware is registered under the requested name.
	ErrUnknownMiddleware = errors.New("unknown middleware")
	// ErrMissingLogger indicates that a logging middleware was requested without a logger.
	ErrMissingLogger = errors.New("logger is required")
	// ErrMissingInstrumenter indicates that instrumentation was requested without an instrumenter.
	ErrMissingInstrumenter = errors.New("instrumenter is required")
	// ErrUnencodedPayload indicates that a request payload reached the adapter without being encoded.
	ErrUnencodedPayload = errors.New("request payload was not encoded")
	// ErrEncoding indicates that a request payload could not be encoded as JSON.
	ErrEncoding = errors.New("failed to encode request body")
	// ErrParsing indicates that a response body could not be decoded as JSON.
	ErrParsing = errors.New("failed to parse response body")
	// ErrRedirectLimitReached indicates that a request was redirected more times than allowed.
	ErrRedirectLimitReached = errors.New("too many redirects")
	// ErrBodyNotReplayable indicates that a redirect required resending a body that cannot be read twice.
	ErrBodyNotReplayable = errors.New("request body cannot be replayed")
)
