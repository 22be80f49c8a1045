package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var errTimeout = errors.New("execution expired")

// TestDebugTracer_NoSink tests that requests without a debug sink are forwarded untouched.
func TestDebugTracer_NoSink(t *testing.T) {
	t.Parallel()

	var seen *http.Request

	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = req

		return stubTransport(http.StatusOK, nil, "")(req)
	})

	req, err := http.NewRequest(http.MethodPost, "http://example.com/", strings.NewReader("x")) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := NewDebugTracer(next, 0).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Same(t, req, seen)
}

// TestDebugTracer_Response tests the trace of a POST request and its response.
func TestDebugTracer_Response(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()

	var sentBody string

	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		data, err := io.ReadAll(req.Body)
		require.NoError(t, err)

		sentBody = string(data)

		return stubTransport(http.StatusCreated, http.Header{"Content-Type": {"application/json"}}, `{"id":1}`)(req)
	})

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://example.com/items?x=1", strings.NewReader(`{"name":"test"}`))
	require.NoError(t, err)
	req.Header.Set("X-B", "2")
	req.Header.Add("X-A", "1")
	req.Header.Add("X-A", "3")

	resp, err := NewDebugTracer(next, 0).RoundTrip(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1}`, readBody(t, resp), "response body must be restored")
	assert.JSONEq(t, `{"name":"test"}`, sentBody, "request body must be restored")

	assert.Equal(t, []string{
		"POST /items",
		"Host: example.com",
		"X-A: 1, 3",
		"X-B: 2",
		bodyMarker,
		`{"name":"test"}`,
		bodyMarker,
		"",
		"Status: 201",
		"Content-Type: application/json",
		bodyMarker,
		`{"id":1}`,
		bodyMarker,
	}, messages(logs))

	for _, entry := range logs.All() {
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
	}
}

// TestDebugTracer_GetHasNoBodySection tests that GET requests are traced without a body section.
func TestDebugTracer_GetHasNoBodySection(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/test", nil)
	require.NoError(t, err)

	resp, err := NewDebugTracer(stubTransport(http.StatusOK, nil, "hello"), 0).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "hello", readBody(t, resp))

	assert.Equal(t, []string{
		"GET /test",
		"Host: example.com",
		"",
		"Status: 200",
		bodyMarker,
		"hello",
		bodyMarker,
	}, messages(logs))
}

// TestDebugTracer_Error tests the trace of a failed request.
func TestDebugTracer_Error(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/slow", nil)
	require.NoError(t, err)

	resp, err := NewDebugTracer(failingTransport(errTimeout), 0).RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, errTimeout)
	assert.Nil(t, resp)

	assert.Equal(t, []string{
		"GET /slow",
		"Host: example.com",
		"",
		"*errors.errorString execution expired",
	}, messages(logs))
}

// TestDebugTracer_Truncation tests that only the logged body is truncated.
func TestDebugTracer_Truncation(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()
	body := strings.Repeat("a", 2000)

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/big", nil)
	require.NoError(t, err)

	resp, err := NewDebugTracer(stubTransport(http.StatusOK, nil, body), 10).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, body, readBody(t, resp))

	assert.Contains(t, messages(logs), "aaaaaaaaaa... [truncated, 2.0 kB total]")
}

// TestDebugHTTP tests the middleware constructors.
func TestDebugHTTP(t *testing.T) {
	t.Parallel()

	rt := DebugHTTP()(http.DefaultTransport)

	require.IsType(t, &DebugTracer{}, rt)
	assert.Equal(t, uint64(DefaultMaxLogLength), rt.(*DebugTracer).maxLogLength)
	assert.Equal(t, uint64(42), DebugHTTPWithLimit(42)(http.DefaultTransport).(*DebugTracer).maxLogLength)
}

var errBodyRead = errors.New("read failed")

// failingReader fails every read with errBodyRead.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errBodyRead
}

// TestDebugTracer_BinaryResponse tests that binary response bodies are replaced by their size.
func TestDebugTracer_BinaryResponse(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()
	payload := strings.Repeat("\x00\x01", 1000)

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/cover.png", nil)
	require.NoError(t, err)

	next := stubTransport(http.StatusOK, http.Header{"Content-Type": {"image/png"}}, payload)

	resp, err := NewDebugTracer(next, 0).RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, payload, readBody(t, resp))

	assert.Equal(t, []string{
		"GET /cover.png",
		"Host: example.com",
		"",
		"Status: 200",
		"Content-Type: image/png",
		bodyMarker,
		"[binary, 2.0 kB]",
		bodyMarker,
	}, messages(logs))
}

// TestDebugTracer_RequestBodyError tests that a request body that cannot be read is traced as a failure.
func TestDebugTracer_RequestBodyError(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://example.com/items", failingReader{})
	require.NoError(t, err)

	called := false
	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true

		return stubTransport(http.StatusOK, nil, "")(req)
	})

	resp, err := NewDebugTracer(next, 0).RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, errBodyRead)
	assert.Nil(t, resp)
	assert.False(t, called)

	assert.Equal(t, []string{
		"POST /items",
		"Host: example.com",
		"",
		"*errors.errorString read failed",
	}, messages(logs))
}

// TestDebugTracer_ResponseBodyError tests that a response body that cannot be read is traced as a failure.
func TestDebugTracer_ResponseBodyError(t *testing.T) {
	t.Parallel()

	sink, logs := observedLogger()

	ctx := WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/broken", nil)
	require.NoError(t, err)

	next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(failingReader{}),
			Request:    req,
		}, nil
	})

	resp, err := NewDebugTracer(next, 0).RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, errBodyRead)
	assert.Nil(t, resp)

	assert.Equal(t, []string{
		"GET /broken",
		"Host: example.com",
		"",
		"Status: 200",
		"*errors.errorString read failed",
	}, messages(logs))
}
