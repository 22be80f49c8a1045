package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMiddleware appends name to calls when a request passes through it.
func recordingMiddleware(name string, calls *[]string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			*calls = append(*calls, name)

			return next.RoundTrip(req)
		})
	}
}

// TestChain_Order tests that the first middleware sees the request first.
func TestChain_Order(t *testing.T) {
	t.Parallel()

	var calls []string

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls = append(calls, "adapter")

		return stubTransport(http.StatusOK, nil, "")(req)
	})

	rt := Chain(base,
		recordingMiddleware("a", &calls),
		nil,
		recordingMiddleware("b", &calls),
		recordingMiddleware("c", &calls),
	)

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, []string{"a", "b", "c", "adapter"}, calls)
}

// TestChain_NilBase tests that a nil base is replaced by a transport clone.
func TestChain_NilBase(t *testing.T) {
	t.Parallel()

	rt := Chain(nil)

	transport, ok := rt.(*http.Transport)
	require.True(t, ok)
	assert.NotSame(t, http.DefaultTransport, transport)
}
