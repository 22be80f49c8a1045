package loogihttp

import (
	"maps"
	"time"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Options are per-call settings of Post and Put.
type Options struct {
	// Debug receives a trace of this call from the debug-http middleware.
	Debug middleware.Logger
	// Timeout bounds the whole call, including reading the response body.
	Timeout time.Duration
	// Context entries are added to the request context seen by the middlewares.
	Context middleware.RequestContext
}

// transportOptions are the options forwarded to the transport.
type transportOptions struct {
	timeout time.Duration
	context middleware.RequestContext
}

// partition splits off the debug sink; the rest is forwarded.
func (o Options) partition() (middleware.Logger, transportOptions) {
	return o.Debug, transportOptions{
		timeout: o.Timeout,
		context: maps.Clone(o.Context),
	}
}
