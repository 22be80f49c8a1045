package loogihttp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// newTestServer serves /test, /redirect and /json the way the scenarios expect.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/test", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"test"}`)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/test", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "api-token" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Query", r.URL.RawQuery)
		w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
		w.Header().Set("X-Authorization", r.Header.Get("Authorization"))
		w.Header().Set("X-Custom", r.Header.Get("X-Custom"))
		_, _ = w.Write(data)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// stubAdapter answers every request without touching the network.
func stubAdapter(status int, header http.Header, body string) http.RoundTripper {
	return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     header.Clone(),
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	})
}

// failingAdapter fails every request with err.
func failingAdapter(err error) http.RoundTripper {
	return middleware.RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, err
	})
}

// observedLogger returns a logger recording every entry at debug level and above.
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return zap.New(core), logs
}

func messages(logs *observer.ObservedLogs) []string {
	entries := logs.All()

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Message)
	}

	return result
}

func mustBuild(t *testing.T, b *Builder, fn func(*Configuration)) *Connection {
	t.Helper()

	conn, err := b.Build(fn)
	require.NoError(t, err)

	return conn
}
