package middleware_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
	mock_middleware "github.com/JuulLabs-OSS/loogi-http/middleware/mocks"
)

func okTransport() middleware.RoundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       http.NoBody,
			Request:    req,
		}, nil
	}
}

// TestRequestLogger_MockLogger tests that exactly one entry is written per successful request.
func TestRequestLogger_MockLogger(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mock_middleware.NewMockLogger(ctrl)
	mockLogger.EXPECT().
		Log(zapcore.InfoLevel, gomock.Cond(func(msg string) bool {
			return strings.HasPrefix(msg, "[example.com] GET /test 200 (")
		})).
		Times(3)

	rt := middleware.Chain(okTransport(), middleware.LogRequest(mockLogger, zapcore.InfoLevel))

	for range 3 {
		req, err := http.NewRequest(http.MethodGet, "http://example.com/test", nil) //nolint:noctx // Test code, context not needed.
		require.NoError(t, err)

		resp, err := rt.RoundTrip(req)
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.
	}
}

// TestDebugTracer_MockSink tests that a debug sink only receives info entries.
func TestDebugTracer_MockSink(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mock_middleware.NewMockLogger(ctrl)

	gomock.InOrder(
		sink.EXPECT().Log(zapcore.InfoLevel, "GET /test"),
		sink.EXPECT().Log(zapcore.InfoLevel, "Host: example.com"),
		sink.EXPECT().Log(zapcore.InfoLevel, ""),
		sink.EXPECT().Log(zapcore.InfoLevel, "Status: 200"),
		sink.EXPECT().Log(zapcore.InfoLevel, "BODY----------"),
		sink.EXPECT().Log(zapcore.InfoLevel, ""),
		sink.EXPECT().Log(zapcore.InfoLevel, "BODY----------"),
	)

	ctx := middleware.WithDebugSink(context.Background(), sink)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/test", nil)
	require.NoError(t, err)

	resp, err := middleware.DebugHTTP()(okTransport()).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestInstrumentation_MockInstrumenter tests that one event is emitted per request.
func TestInstrumentation_MockInstrumenter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	instrumenter := mock_middleware.NewMockInstrumenter(ctrl)
	instrumenter.EXPECT().
		Instrument(gomock.Any(), gomock.Cond(func(event middleware.Event) bool {
			return event.Name == middleware.EventName && event.Status == http.StatusOK && event.Method == http.MethodGet
		})).
		Times(1)

	mw, err := middleware.New(middleware.NameInstrumentation, middleware.WithInstrumenter(instrumenter))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := mw(okTransport()).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.
}
