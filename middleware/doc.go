// Package middleware provides the http.RoundTripper middlewares a loogi-http stack is assembled from:
// Accept header enforcement, JSON request encoding and response decoding, request logging,
// per-request debug tracing, redirect following, instrumentation and User-Agent injection.
// Middlewares are also reachable by name through a static registry so callers can compose
// their own chains with Chain.
package middleware
