package middleware

import "net/http"

// Chain applies middlewares to base and returns the wrapped RoundTripper.
//
// Chain(base, a, b, c) returns a(b(c(base))), so a sees the request first
// and the response last. Nil middlewares are skipped. A nil base is replaced
// by a clone of http.DefaultTransport.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = CloneDefaultTransport()
	}

	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}

		base = mws[i](base)
	}

	return base
}

// CloneDefaultTransport returns an independent copy of http.DefaultTransport.
func CloneDefaultTransport() http.RoundTripper {
	if t, ok := http.DefaultTransport.(*http.Transport); ok && t != nil {
		return t.Clone()
	}

	return http.DefaultTransport
}
