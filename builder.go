package loogihttp

import (
	"context"
	"net/url"

	"go.uber.org/zap/zapcore"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Builder creates Connections.
type Builder struct {
	logger       middleware.Logger
	level        zapcore.Level
	instrumenter middleware.Instrumenter
}

// BuilderOption overrides a Builder setting.
type BuilderOption func(*Builder)

// WithLogger sets the logger of the request logger; nil disables request logging.
func WithLogger(logger middleware.Logger) BuilderOption {
	return func(b *Builder) { b.logger = normalizeLogger(logger) }
}

// WithLogLevel sets the level of the request log lines.
func WithLogLevel(level zapcore.Level) BuilderOption {
	return func(b *Builder) { b.level = level }
}

// WithInstrumenter sets the instrumenter; nil disables instrumentation.
func WithInstrumenter(instrumenter middleware.Instrumenter) BuilderOption {
	return func(b *Builder) { b.instrumenter = instrumenter }
}

// NewBuilder returns a Builder initialized from the process-wide defaults.
func NewBuilder(opts ...BuilderOption) *Builder {
	defaultsMu.RLock()
	b := &Builder{
		logger:       defaultLogger,
		level:        defaultLogLevel,
		instrumenter: defaultInstrumenter,
	}
	defaultsMu.RUnlock()

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// Build assembles a stack around fn and returns a Connection using it.
func (b *Builder) Build(fn func(*Configuration)) (*Connection, error) {
	cfg := newConfiguration(b.logger, b.level, b.instrumenter)

	client, err := cfg.configure(fn)
	if err != nil {
		return nil, err
	}

	return newConnection(client, cfg.baseURL, cfg.header.Clone()), nil
}

// JSON builds a Connection that sends and receives JSON.
func (b *Builder) JSON() (*Connection, error) {
	return b.Build((*Configuration).JSON)
}

// JSON builds a JSON Connection from the process-wide defaults.
func JSON() (*Connection, error) {
	return NewBuilder().JSON()
}

// JSONPost posts data as JSON on a fresh JSON Connection.
func JSONPost(ctx context.Context, rawURL string, params url.Values, data any, opts Options) (*Response, error) {
	conn, err := JSON()
	if err != nil {
		return nil, err
	}

	return conn.Post(ctx, rawURL, params, data, opts, nil)
}
