package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	loogihttp "github.com/JuulLabs-OSS/loogi-http"
	"github.com/JuulLabs-OSS/loogi-http/internal/config"
	"github.com/JuulLabs-OSS/loogi-http/internal/logger"
	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Request describes one request issued from the command line.
type Request struct {
	// Method is GET, POST or PUT.
	Method string
	// URL is absolute, or relative to the configured base URL.
	URL string
	// Params are merged into the URL query.
	Params url.Values
	// Headers are sent on top of the configured headers; the last value of a key wins.
	Headers http.Header
	// Data is a JSON document sent as the request body.
	Data string
	// Debug traces the request and the response to the log.
	Debug bool
	// Username and Password enable basic authentication when Username is set.
	Username string
	Password string
}

// Static error definitions for better error handling.
var (
	// ErrUnsupportedMethod indicates that the CLI cannot issue the requested method.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrInvalidData indicates that the request data is not valid JSON.
	ErrInvalidData = errors.New("request data is not valid JSON")
)

// NewConnection builds a JSON connection configured from cfg.
// The given headers are sent on top of the configured ones.
func NewConnection(ctx context.Context, cfg *config.Config, headers http.Header) (*loogihttp.Connection, error) {
	opts := []loogihttp.BuilderOption{
		loogihttp.WithLogLevel(cfg.ParsedRequestLogLevel),
	}

	if cfg.LogRequests {
		opts = append(opts, loogihttp.WithLogger(logger.Named("http")))
	}

	if logger.IsDebugLevel() {
		opts = append(opts, loogihttp.WithInstrumenter(middleware.InstrumenterFunc(logEvent)))
	}

	conn, err := loogihttp.NewBuilder(opts...).Build(func(c *loogihttp.Configuration) {
		if cfg.BaseURL != "" {
			c.URL(cfg.BaseURL)
		}

		for key, value := range cfg.Headers {
			c.Header(key, value)
		}

		for key, values := range headers {
			for _, value := range values {
				c.Header(key, value)
			}
		}

		c.RedirectLimit(cfg.RedirectLimit)
		c.MaxLogLength(cfg.ParsedMaxLogLength)
		c.UseNamed(middleware.NameUserAgent, middleware.WithUserAgent(cfg.UserAgent))
		c.JSON()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build connection: %w", err)
	}

	logger.Debugf(ctx, "Connection stack is ready, base URL: '%s'", cfg.BaseURL)

	return conn, nil
}

// RunRequest issues req and writes the rendered response to out.
func RunRequest(ctx context.Context, cfg *config.Config, req Request, out io.Writer) error {
	conn, err := NewConnection(ctx, cfg, req.Headers)
	if err != nil {
		return err
	}

	if req.Username != "" {
		conn.BasicAuth(req.Username, req.Password)
	}

	resp, err := send(ctx, conn, cfg, req)
	if err != nil {
		return describeFailure(err)
	}

	logger.Debugf(ctx, "Received status %d from %s", resp.Status(), req.URL)

	return RenderResponse(out, resp, cfg.OutputFormat)
}

// ExecuteRequestCommand runs req and terminates the process on failure.
func ExecuteRequestCommand(ctx context.Context, cfg *config.Config, req Request, out io.Writer) {
	if err := RunRequest(ctx, cfg, req, out); err != nil {
		logger.Fatalf(ctx, "Request failed: %v", err)
	}
}

func send(ctx context.Context, conn *loogihttp.Connection, cfg *config.Config, req Request) (*loogihttp.Response, error) {
	var debug middleware.Logger
	if req.Debug {
		debug = logger.Named("debug")
	}

	method := strings.ToUpper(req.Method)

	if method == http.MethodGet {
		if debug != nil {
			ctx = middleware.WithDebugSink(ctx, debug)
		}

		if cfg.ParsedTimeout > 0 {
			var cancel context.CancelFunc

			ctx, cancel = context.WithTimeout(ctx, cfg.ParsedTimeout)
			defer cancel()
		}

		return conn.Get(ctx, req.URL, req.Params)
	}

	data, err := requestData(req.Data)
	if err != nil {
		return nil, err
	}

	opts := loogihttp.Options{
		Debug:   debug,
		Timeout: cfg.ParsedTimeout,
	}

	switch method {
	case http.MethodPost:
		return conn.Post(ctx, req.URL, req.Params, data, opts, nil)
	case http.MethodPut:
		return conn.Put(ctx, req.URL, req.Params, data, opts, nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
}

// requestData decodes the JSON document given on the command line.
func requestData(data string) (any, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return payload, nil
}

func describeFailure(err error) error {
	switch loogihttp.KindOf(err) {
	case loogihttp.KindTimeout:
		return fmt.Errorf("request timed out: %w", err)
	case loogihttp.KindConnectionFailed:
		return fmt.Errorf("connection failed: %w", err)
	default:
		return err
	}
}

func logEvent(ctx context.Context, event middleware.Event) {
	logger.DebugKV(ctx, "Request instrumented",
		"id", event.ID,
		"method", event.Method,
		"url", event.URL,
		"status", event.Status,
		"duration", event.Duration,
		"error", event.Err,
	)
}
