// Package loogihttp is a convenience layer over net/http.
//
// A Builder assembles a stack: an *http.Client whose transport is an ordered
// middleware chain (instrumentation, request logging, redirect following, user
// middlewares, debug tracing) bound to an adapter. The resulting Connection
// offers GET, POST and PUT returning a read-only Response, and maps transport
// timeouts and connection failures to *ServerError.
//
// Quick start:
//
//	conn, err := loogihttp.JSON()
//	if err != nil {
//		return err
//	}
//
//	resp, err := conn.Post(ctx, "https://example.com/api", url.Values{"token": {"t"}},
//		map[string]string{"name": "test"}, loogihttp.Options{Debug: zapLogger}, nil)
//
// Passing Options.Debug traces that single call (request, response or error)
// to the given logger. Setting a process-wide logger with SetLogger makes
// every stack built afterwards log one summary line per request.
package loogihttp
