package middleware

import "net/http"

// UserAgentInjector is an http.RoundTripper that injects a User-Agent header into requests lacking one.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgent is the User-Agent string to inject.
	userAgent string
}

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
// An empty userAgent defaults to DefaultUserAgent.
func NewUserAgentInjector(next http.RoundTripper, userAgent string) http.RoundTripper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &UserAgentInjector{
		next:      next,
		userAgent: userAgent,
	}
}

// UserAgent returns a middleware installing UserAgentInjector.
func UserAgent(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewUserAgentInjector(next, userAgent)
	}
}

// RoundTrip injects the User-Agent header if it is missing and forwards the request.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header.Get(headerUserAgent) != "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}

	clone.Header.Set(headerUserAgent, t.userAgent)

	return t.next.RoundTrip(clone)
}
