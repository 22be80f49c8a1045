package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// InstrumentedTransport is an http.RoundTripper that reports every round trip to an Instrumenter.
type InstrumentedTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// instrumenter receives the events.
	instrumenter Instrumenter
}

// NewInstrumentedTransport creates and returns a new instance of InstrumentedTransport.
func NewInstrumentedTransport(next http.RoundTripper, instrumenter Instrumenter) http.RoundTripper {
	return &InstrumentedTransport{
		next:         next,
		instrumenter: instrumenter,
	}
}

// Instrumentation returns a middleware installing InstrumentedTransport.
func Instrumentation(instrumenter Instrumenter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewInstrumentedTransport(next, instrumenter)
	}
}

// RoundTrip forwards req and emits one Event describing the outcome.
func (t *InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	event := Event{
		ID:       uuid.NewString(),
		Name:     EventName,
		Method:   requestMethod(req),
		URL:      req.URL.String(),
		Duration: time.Since(startTime),
		Err:      err,
	}

	if resp != nil {
		event.Status = resp.StatusCode
	}

	t.instrumenter.Instrument(req.Context(), event)

	return resp, err
}

// InstrumenterFunc adapts a function to an Instrumenter.
type InstrumenterFunc func(ctx context.Context, event Event)

// Instrument implements Instrumenter.
func (f InstrumenterFunc) Instrument(ctx context.Context, event Event) {
	f(ctx, event)
}
