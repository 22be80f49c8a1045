package middleware

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stubTransport returns a RoundTripper answering every request with the given response.
func stubTransport(status int, header http.Header, body string) RoundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		if header == nil {
			header = make(http.Header)
		}

		return &http.Response{
			StatusCode: status,
			Header:     header.Clone(),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

// failingTransport returns a RoundTripper failing every request with err.
func failingTransport(err error) RoundTripperFunc {
	return func(*http.Request) (*http.Response, error) {
		return nil, err
	}
}

// observedLogger returns a logger recording every entry at debug level and above.
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return zap.New(core), logs
}

// messages returns the messages of the recorded entries.
func messages(logs *observer.ObservedLogs) []string {
	entries := logs.All()

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Message)
	}

	return result
}

// readBody reads and closes the response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(data)
}
