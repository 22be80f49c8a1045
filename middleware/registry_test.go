package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestNames tests the registered names.
func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		NameAcceptJSON,
		NameDebugHTTP,
		NameFollowRedirects,
		NameInstrumentation,
		NameJSON,
		NameJSONResponse,
		NameLogRequest,
		NameUserAgent,
	}, Names())
}

// TestNew_Unknown tests that unknown names fail.
func TestNew_Unknown(t *testing.T) {
	t.Parallel()

	mw, err := New("nope")
	require.ErrorIs(t, err, ErrUnknownMiddleware)
	assert.Nil(t, mw)

	_, ok := Lookup("nope")
	assert.False(t, ok)
}

// TestNew_MissingDependencies tests the middlewares that need a collaborator.
func TestNew_MissingDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(NameLogRequest)
	require.ErrorIs(t, err, ErrMissingLogger)

	_, err = New(NameInstrumentation)
	require.ErrorIs(t, err, ErrMissingInstrumenter)
}

// TestNew_Options tests that options reach the constructed transports.
func TestNew_Options(t *testing.T) {
	t.Parallel()

	mw, err := New(NameLogRequest, WithLogger(zap.NewNop()), WithLevel(zapcore.WarnLevel))
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, mw(http.DefaultTransport).(*RequestLogger).Level())

	mw, err = New(NameFollowRedirects, WithLimit(7))
	require.NoError(t, err)
	assert.Equal(t, 7, mw(http.DefaultTransport).(*RedirectFollower).limit)

	mw, err = New(NameFollowRedirects)
	require.NoError(t, err)
	assert.Equal(t, DefaultRedirectLimit, mw(http.DefaultTransport).(*RedirectFollower).limit)

	mw, err = New(NameJSONResponse, WithContentType("application/vnd.api+json"))
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.api+json", mw(http.DefaultTransport).(*JSONDecoder).contentType)

	mw, err = New(NameDebugHTTP, WithMaxLogLength(64))
	require.NoError(t, err)
	assert.Equal(t, uint64(64), mw(http.DefaultTransport).(*DebugTracer).maxLogLength)

	mw, err = New(NameUserAgent, WithUserAgent("registry-test/2"))
	require.NoError(t, err)
	assert.Equal(t, "registry-test/2", mw(http.DefaultTransport).(*UserAgentInjector).userAgent)
}

// TestNew_AllNamesBuild tests that every stateless middleware builds with defaults.
func TestNew_AllNamesBuild(t *testing.T) {
	t.Parallel()

	for _, name := range []string{NameAcceptJSON, NameDebugHTTP, NameJSON, NameJSONResponse, NameFollowRedirects, NameUserAgent} {
		mw, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, mw(http.DefaultTransport), name)
	}
}
