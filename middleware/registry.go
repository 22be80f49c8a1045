package middleware

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap/zapcore"
)

// Registered middleware names.
const (
	NameAcceptJSON      = "accept-json"
	NameLogRequest      = "log-request"
	NameDebugHTTP       = "debug-http"
	NameJSON            = "json"
	NameJSONResponse    = "json-response"
	NameFollowRedirects = "follow-redirects"
	NameInstrumentation = "instrumentation"
	NameUserAgent       = "user-agent"
)

// settings collects the parameters accepted by registered middlewares.
type settings struct {
	logger       Logger
	level        zapcore.Level
	contentType  string
	limit        int
	maxLogLength uint64
	instrumenter Instrumenter
	userAgent    string
}

// Option configures a middleware built through the registry.
type Option func(*settings)

// Factory builds a registered middleware.
type Factory func(opts ...Option) (Middleware, error)

// WithLogger sets the logger of log-request.
func WithLogger(logger Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithLevel sets the level of log-request. Default is info.
func WithLevel(level zapcore.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithContentType sets the media type decoded by json-response. Default is application/json.
func WithContentType(contentType string) Option {
	return func(s *settings) { s.contentType = contentType }
}

// WithLimit sets the redirect limit of follow-redirects. Default is DefaultRedirectLimit.
func WithLimit(limit int) Option {
	return func(s *settings) { s.limit = limit }
}

// WithMaxLogLength sets the body limit of debug-http. Default is DefaultMaxLogLength.
func WithMaxLogLength(maxLogLength uint64) Option {
	return func(s *settings) { s.maxLogLength = maxLogLength }
}

// WithInstrumenter sets the instrumenter of instrumentation.
func WithInstrumenter(instrumenter Instrumenter) Option {
	return func(s *settings) { s.instrumenter = instrumenter }
}

// WithUserAgent sets the value injected by user-agent. Default is DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(s *settings) { s.userAgent = userAgent }
}

//nolint:gochecknoglobals // Static, read-only table of middleware constructors.
var registry = map[string]func(s settings) (Middleware, error){
	NameAcceptJSON: func(settings) (Middleware, error) {
		return AcceptJSON(), nil
	},
	NameLogRequest: func(s settings) (Middleware, error) {
		if s.logger == nil {
			return nil, fmt.Errorf("%s: %w", NameLogRequest, ErrMissingLogger)
		}

		return LogRequest(s.logger, s.level), nil
	},
	NameDebugHTTP: func(s settings) (Middleware, error) {
		return DebugHTTPWithLimit(s.maxLogLength), nil
	},
	NameJSON: func(settings) (Middleware, error) {
		return EncodeJSON(), nil
	},
	NameJSONResponse: func(s settings) (Middleware, error) {
		return DecodeJSON(s.contentType), nil
	},
	NameFollowRedirects: func(s settings) (Middleware, error) {
		return FollowRedirects(s.limit), nil
	},
	NameInstrumentation: func(s settings) (Middleware, error) {
		if s.instrumenter == nil {
			return nil, fmt.Errorf("%s: %w", NameInstrumentation, ErrMissingInstrumenter)
		}

		return Instrumentation(s.instrumenter), nil
	},
	NameUserAgent: func(s settings) (Middleware, error) {
		return UserAgent(s.userAgent), nil
	},
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}

	return func(opts ...Option) (Middleware, error) {
		s := settings{
			level:        zapcore.InfoLevel,
			contentType:  MIMEApplicationJSON,
			limit:        DefaultRedirectLimit,
			maxLogLength: DefaultMaxLogLength,
			userAgent:    DefaultUserAgent,
		}

		for _, opt := range opts {
			if opt != nil {
				opt(&s)
			}
		}

		return build(s)
	}, true
}

// New builds the middleware registered under name.
func New(name string, opts ...Option) (Middleware, error) {
	factory, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMiddleware, name)
	}

	return factory(opts...)
}

// Names returns the registered middleware names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
