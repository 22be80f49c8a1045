package middleware

import "net/http"

// AcceptJSONSetter is an http.RoundTripper that sets the Accept header to application/json.
// Any Accept value already present on the request is overwritten.
type AcceptJSONSetter struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
}

// NewAcceptJSONSetter creates and returns a new instance of AcceptJSONSetter.
func NewAcceptJSONSetter(next http.RoundTripper) http.RoundTripper {
	return &AcceptJSONSetter{next: next}
}

// AcceptJSON returns a middleware installing AcceptJSONSetter.
func AcceptJSON() Middleware {
	return NewAcceptJSONSetter
}

// RoundTrip forwards a clone of req whose Accept header is application/json.
func (t *AcceptJSONSetter) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	clone := req.Clone(req.Context())
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}

	clone.Header.Set(headerAccept, MIMEApplicationJSON)

	return t.next.RoundTrip(clone)
}
