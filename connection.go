package loogihttp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/machinebox/graphql"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

const headerAuthorization = "Authorization"

// Connection issues requests through an assembled stack.
// It is safe for concurrent use.
type Connection struct {
	client  *http.Client
	baseURL *url.URL

	mu     sync.RWMutex
	header http.Header
}

func newConnection(client *http.Client, baseURL *url.URL, header http.Header) *Connection {
	if header == nil {
		header = make(http.Header)
	}

	return &Connection{
		client:  client,
		baseURL: baseURL,
		header:  header,
	}
}

// Client returns the *http.Client wrapping the middleware chain.
func (c *Connection) Client() *http.Client {
	return c.client
}

// BasicAuth sets the Authorization header of all subsequent requests.
func (c *Connection) BasicAuth(username, password string) {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.header.Set(headerAuthorization, "Basic "+token)
}

// Get issues a GET request with params merged into the query.
func (c *Connection) Get(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, rawURL, params, nil, Options{}, nil)
}

// Post issues a POST request. See Put for the handling of data.
func (c *Connection) Post(
	ctx context.Context,
	rawURL string,
	params url.Values,
	data any,
	opts Options,
	headers http.Header,
) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, params, data, opts, headers)
}

// Put issues a PUT request.
//
// A nil data sends no body; a string, []byte or io.Reader is sent as is.
// Any other value must be encoded by a middleware such as the one installed
// by Configuration.JSON, otherwise the call fails with middleware.ErrUnencodedPayload.
func (c *Connection) Put(
	ctx context.Context,
	rawURL string,
	params url.Values,
	data any,
	opts Options,
	headers http.Header,
) (*Response, error) {
	return c.do(ctx, http.MethodPut, rawURL, params, data, opts, headers)
}

// GraphQL returns a GraphQL client that sends its requests through the stack.
// Timeouts and connection failures are translated like those of Get, Post and Put.
func (c *Connection) GraphQL(endpoint string) (*graphql.Client, error) {
	target, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = req.Clone(req.Context())
			c.applyHeaders(req.Header)

			resp, rtErr := c.client.Transport.RoundTrip(req)
			if rtErr != nil {
				return nil, translateError(rtErr)
			}

			return resp, nil
		}),
		CheckRedirect: c.client.CheckRedirect,
	}

	return graphql.NewClient(target.String(), graphql.WithHTTPClient(httpClient)), nil
}

func (c *Connection) do(
	ctx context.Context,
	method string,
	rawURL string,
	params url.Values,
	data any,
	opts Options,
	headers http.Header,
) (*Response, error) {
	req, cancel, err := c.newRequest(ctx, method, rawURL, params, data, opts, headers)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, translateError(unwrapClientError(err))
	}

	response, err := newResponse(resp)
	if err != nil {
		return nil, translateError(err)
	}

	return response, nil
}

func (c *Connection) newRequest(
	ctx context.Context,
	method string,
	rawURL string,
	params url.Values,
	data any,
	opts Options,
	headers http.Header,
) (*http.Request, context.CancelFunc, error) {
	target, err := c.resolve(rawURL)
	if err != nil {
		return nil, nil, err
	}

	if len(params) > 0 {
		query := target.Query()
		for key, values := range params {
			query[key] = slices.Clone(values)
		}

		target.RawQuery = query.Encode()
	}

	debug, forwarded := opts.partition()

	rc := forwarded.context
	if debug = normalizeLogger(debug); debug != nil {
		if rc == nil {
			rc = make(middleware.RequestContext, 1)
		}

		rc[middleware.DebugKey] = debug
	}

	if len(rc) > 0 {
		ctx = middleware.WithRequestContext(ctx, rc)
	}

	cancel := context.CancelFunc(func() {})
	if forwarded.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, forwarded.timeout)
	}

	body, payload := requestBody(data)
	if payload != nil {
		ctx = middleware.WithPayload(ctx, payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		cancel()

		return nil, nil, fmt.Errorf("create %s request: %w", method, err)
	}

	c.applyHeaders(req.Header)

	for key, values := range headers {
		req.Header.Del(key)

		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return req, cancel, nil
}

// resolve parses rawURL and resolves it against the base URL.
func (c *Connection) resolve(rawURL string) (*url.URL, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURL, rawURL, err)
	}

	if c.baseURL == nil {
		return ref, nil
	}

	return c.baseURL.ResolveReference(ref), nil
}

// applyHeaders copies the connection headers into header.
func (c *Connection) applyHeaders(header http.Header) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for key, values := range c.header {
		header[key] = slices.Clone(values)
	}
}

// requestBody returns the raw body for data, or data itself as a payload to encode.
func requestBody(data any) (io.Reader, any) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(v), nil
	case []byte:
		return bytes.NewReader(v), nil
	case io.Reader:
		return v, nil
	default:
		return nil, v
	}
}
