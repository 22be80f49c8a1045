package middleware

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// RedirectFollower is an http.RoundTripper that follows redirect responses.
//
// 303 responses, and 301/302 responses to methods other than GET and HEAD,
// are followed with a body-less GET. 307 and 308 resend the original method
// and body. The Authorization header is dropped when the host changes.
type RedirectFollower struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// limit is the maximum number of redirects followed per request.
	limit int
}

// NewRedirectFollower creates and returns a new instance of RedirectFollower.
// If limit is negative, it defaults to DefaultRedirectLimit.
func NewRedirectFollower(next http.RoundTripper, limit int) http.RoundTripper {
	if limit < 0 {
		limit = DefaultRedirectLimit
	}

	return &RedirectFollower{
		next:  next,
		limit: limit,
	}
}

// FollowRedirects returns a middleware installing RedirectFollower.
func FollowRedirects(limit int) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewRedirectFollower(next, limit)
	}
}

// RoundTrip forwards req and keeps following redirects until a final response.
func (t *RedirectFollower) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	current := req

	for redirects := 0; ; redirects++ {
		resp, err := t.next.RoundTrip(current)
		if err != nil {
			return nil, err
		}

		location := resp.Header.Get(headerLocation)
		if !isRedirect(resp.StatusCode) || location == "" {
			return resp, nil
		}

		drainAndClose(resp.Body)

		if redirects >= t.limit {
			return nil, pkgerrors.WithStack(fmt.Errorf("%w: stopped after %d redirects at %s",
				ErrRedirectLimitReached, t.limit, current.URL))
		}

		current, err = redirectRequest(current, resp.StatusCode, location)
		if err != nil {
			return nil, err
		}
	}
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

func convertsToGet(method string, status int) bool {
	if method == http.MethodHead || method == http.MethodOptions {
		return false
	}

	switch status {
	case http.StatusSeeOther:
		return true
	case http.StatusMovedPermanently, http.StatusFound:
		return method != http.MethodGet
	default:
		return false
	}
}

func redirectRequest(prev *http.Request, status int, location string) (*http.Request, error) {
	target, err := prev.URL.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect location %q: %w", location, err)
	}

	method := requestMethod(prev)
	ctx := prev.Context()

	if convertsToGet(method, status) {
		ctx = WithoutPayload(ctx)
	}

	next := prev.Clone(ctx)
	next.URL = target
	next.Host = ""

	if target.Host != prev.URL.Host {
		next.Header.Del(headerAuthorization)
	}

	if convertsToGet(method, status) {
		next.Method = http.MethodGet
		next.Body = nil
		next.GetBody = nil
		next.ContentLength = 0
		next.Header.Del(headerContentType)
		next.Header.Del("Content-Length")

		return next, nil
	}

	if hasBody(prev.Body) {
		if prev.GetBody == nil {
			return nil, pkgerrors.WithStack(fmt.Errorf("%w: %s %s", ErrBodyNotReplayable, method, target))
		}

		body, err := prev.GetBody()
		if err != nil {
			return nil, err
		}

		next.Body = body
	}

	return next, nil
}
