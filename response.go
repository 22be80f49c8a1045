package loogihttp

import (
	"fmt"
	"io"
	"net/http"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Response is a read-only view of a completed HTTP exchange.
type Response struct {
	status   int
	header   http.Header
	body     any
	raw      []byte
	finished bool
}

// newResponse reads and closes the body of resp.
func newResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	r := &Response{
		status:   resp.StatusCode,
		header:   resp.Header,
		finished: true,
	}

	if decoded, ok := resp.Body.(*middleware.DecodedBody); ok {
		r.raw = decoded.Raw()
		r.body = decoded.Value()

		return r, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	r.raw = raw
	r.body = string(raw)

	return r, nil
}

// Status returns the HTTP status code.
func (r *Response) Status() int {
	return r.status
}

// Header returns the response headers. Lookups through Get are case-insensitive.
func (r *Response) Header() http.Header {
	return r.header
}

// Body returns the decoded body when a response decoder ran, otherwise the raw body as a string.
func (r *Response) Body() any {
	return r.body
}

// RawBody returns the bytes received from the server.
func (r *Response) RawBody() []byte {
	return r.raw
}

// Finished reports whether the exchange completed.
func (r *Response) Finished() bool {
	return r.finished
}

// Success reports whether the status is 2xx.
func (r *Response) Success() bool {
	return r.status >= http.StatusOK && r.status < http.StatusMultipleChoices
}
