package loogihttp

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap/zapcore"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// handler is a named middleware directive.
type handler struct {
	name string
	mw   middleware.Middleware
}

// Configuration accumulates the directives of one stack.
// It is handed to the Build callback and discarded once the stack is bound.
type Configuration struct {
	baseURL       *url.URL
	header        http.Header
	logger        middleware.Logger
	level         zapcore.Level
	instrumenter  middleware.Instrumenter
	redirectLimit int
	maxLogLength  uint64
	handlers      []handler
	adapterName   string
	adapterArgs   []any
	customize     func(*http.Transport)
	err           error
}

func newConfiguration(logger middleware.Logger, level zapcore.Level, instrumenter middleware.Instrumenter) *Configuration {
	return &Configuration{
		header:        make(http.Header),
		logger:        logger,
		level:         level,
		instrumenter:  instrumenter,
		redirectLimit: middleware.DefaultRedirectLimit,
		maxLogLength:  middleware.DefaultMaxLogLength,
		adapterName:   AdapterNetHTTP,
	}
}

// Use appends mw under name.
func (c *Configuration) Use(name string, mw middleware.Middleware) {
	c.handlers = append(c.handlers, handler{name: name, mw: mw})
}

// UseNamed appends the registered middleware name. Lookup failures are returned by Build.
func (c *Configuration) UseNamed(name string, opts ...middleware.Option) {
	mw, err := middleware.New(name, opts...)
	if err != nil {
		c.fail(err)

		return
	}

	c.Use(name, mw)
}

// JSON installs the Accept-JSON setter, the JSON request encoder and the JSON response decoder.
func (c *Configuration) JSON() {
	c.Use(middleware.NameAcceptJSON, middleware.AcceptJSON())
	c.Use(middleware.NameJSON, middleware.EncodeJSON())
	c.Use(middleware.NameJSONResponse, middleware.DecodeJSON(middleware.MIMEApplicationJSON))
}

// Adapter selects the registered adapter that terminates the chain.
func (c *Configuration) Adapter(name string, args ...any) {
	c.adapterName = name
	c.adapterArgs = args
}

// CustomizeAdapter registers a callback applied to the bound *http.Transport.
func (c *Configuration) CustomizeAdapter(fn func(*http.Transport)) {
	c.customize = fn
}

// URL sets the base URL that request URLs are resolved against.
func (c *Configuration) URL(rawURL string) {
	base, err := url.Parse(rawURL)
	if err != nil {
		c.fail(fmt.Errorf("%w: base %q: %w", ErrInvalidURL, rawURL, err))

		return
	}

	c.baseURL = base
}

// Header sets a default header sent with every request.
func (c *Configuration) Header(key, value string) {
	c.header.Set(key, value)
}

// RedirectLimit sets how many redirects follow-redirects follows.
func (c *Configuration) RedirectLimit(limit int) {
	c.redirectLimit = limit
}

// MaxLogLength sets how many body bytes debug-http writes per body.
func (c *Configuration) MaxLogLength(maxLogLength uint64) {
	c.maxLogLength = maxLogLength
}

// Handlers returns the names of the assembled middlewares in chain order.
// The payload guard placed between debug-http and the adapter is not a
// registered middleware and is not listed.
func (c *Configuration) Handlers() []string {
	names := make([]string, 0, len(c.handlers))
	for _, h := range c.handlers {
		names = append(names, h.name)
	}

	return names
}

func (c *Configuration) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// configure assembles the chain around fn and binds the adapter.
func (c *Configuration) configure(fn func(*Configuration)) (*http.Client, error) {
	if c.instrumenter != nil {
		c.Use(middleware.NameInstrumentation, middleware.Instrumentation(c.instrumenter))
	}

	if c.logger != nil {
		c.Use(middleware.NameLogRequest, middleware.LogRequest(c.logger, c.level))
	}

	// The limit is read when the chain is bound so the callback can change it.
	c.Use(middleware.NameFollowRedirects, func(next http.RoundTripper) http.RoundTripper {
		return middleware.NewRedirectFollower(next, c.redirectLimit)
	})

	if fn != nil {
		fn(c)
	}

	c.Use(middleware.NameDebugHTTP, middleware.DebugHTTPWithLimit(c.maxLogLength))

	if c.err != nil {
		return nil, c.err
	}

	adapter, err := bindAdapter(c.adapterName, c.adapterArgs, c.customize)
	if err != nil {
		return nil, err
	}

	mws := make([]middleware.Middleware, 0, len(c.handlers))
	for _, h := range c.handlers {
		mws = append(mws, h.mw)
	}

	return &http.Client{
		Transport: middleware.Chain(middleware.NewPayloadGuard(adapter), mws...),
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}
