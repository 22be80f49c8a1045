package middleware

const (
	// MIMEApplicationJSON is the JSON media type.
	MIMEApplicationJSON = "application/json"

	// DefaultMaxLogLength is the default maximum number of body bytes written by the debug tracer.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultRedirectLimit is the default number of redirects followed for one request.
	DefaultRedirectLimit = 3

	// DefaultUserAgent is the User-Agent injected when a request carries none.
	DefaultUserAgent = "loogi-http"

	// EventName is the name of the instrumentation event emitted per request.
	EventName = "request.loogi_http"
)

const (
	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerLocation      = "Location"
	headerUserAgent     = "User-Agent"
)
