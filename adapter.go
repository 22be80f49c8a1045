package loogihttp

import (
	"fmt"
	"net/http"

	"github.com/JuulLabs-OSS/loogi-http/middleware"
)

// Registered adapter names.
const (
	// AdapterNetHTTP binds a clone of http.DefaultTransport, or of the *http.Transport given as argument.
	AdapterNetHTTP = "net_http"
	// AdapterRoundTripper binds the http.RoundTripper given as argument.
	AdapterRoundTripper = "round_tripper"
)

type adapterFactory func(args []any) (http.RoundTripper, error)

//nolint:gochecknoglobals // Static, read-only table of adapter constructors.
var adapters = map[string]adapterFactory{
	AdapterNetHTTP:      newNetHTTPAdapter,
	AdapterRoundTripper: newRoundTripperAdapter,
}

func newNetHTTPAdapter(args []any) (http.RoundTripper, error) {
	switch len(args) {
	case 0:
		return middleware.CloneDefaultTransport(), nil
	case 1:
		transport, ok := args[0].(*http.Transport)
		if !ok || transport == nil {
			return nil, fmt.Errorf("%w: %s expects *http.Transport, got %T",
				ErrInvalidAdapterArgs, AdapterNetHTTP, args[0])
		}

		return transport.Clone(), nil
	default:
		return nil, fmt.Errorf("%w: %s takes at most one argument, got %d",
			ErrInvalidAdapterArgs, AdapterNetHTTP, len(args))
	}
}

func newRoundTripperAdapter(args []any) (http.RoundTripper, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes exactly one argument, got %d",
			ErrInvalidAdapterArgs, AdapterRoundTripper, len(args))
	}

	rt, ok := args[0].(http.RoundTripper)
	if !ok || rt == nil {
		return nil, fmt.Errorf("%w: %s expects http.RoundTripper, got %T",
			ErrInvalidAdapterArgs, AdapterRoundTripper, args[0])
	}

	return rt, nil
}

// bindAdapter builds the adapter and applies the transport customization.
func bindAdapter(name string, args []any, customize func(*http.Transport)) (http.RoundTripper, error) {
	factory, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, name)
	}

	adapter, err := factory(args)
	if err != nil {
		return nil, err
	}

	if transport, isTransport := adapter.(*http.Transport); isTransport && customize != nil {
		customize(transport)
	}

	return adapter, nil
}
