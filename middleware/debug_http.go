package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap/zapcore"
)

// bodyMarker frames request and response bodies in debug output.
const bodyMarker = "BODY----------"

// methodsWithBodies lists the methods whose request body is traced.
//
//nolint:gochecknoglobals // Immutable lookup table.
var methodsWithBodies = map[string]struct{}{
	http.MethodPost:  {},
	http.MethodPut:   {},
	http.MethodPatch: {},
}

// DebugTracer is an http.RoundTripper that writes the full request and the
// response (or error) to the debug sink carried by the request context.
// Requests without a debug sink are forwarded untouched.
type DebugTracer struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum number of body bytes written.
	maxLogLength uint64
}

// NewDebugTracer creates and returns a new instance of DebugTracer.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewDebugTracer(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &DebugTracer{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// DebugHTTP returns a middleware installing DebugTracer with the default body limit.
func DebugHTTP() Middleware {
	return DebugHTTPWithLimit(DefaultMaxLogLength)
}

// DebugHTTPWithLimit returns a middleware installing DebugTracer with the given body limit.
func DebugHTTPWithLimit(maxLogLength uint64) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewDebugTracer(next, maxLogLength)
	}
}

// RoundTrip executes a single HTTP transaction, tracing it when a debug sink is present.
func (t *DebugTracer) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	sink := DebugSinkFrom(req.Context())
	if sink == nil {
		return t.next.RoundTrip(req)
	}

	out := &debugOutput{sink: sink, maxLogLength: t.maxLogLength}

	req, err := out.request(req)
	if err != nil {
		return nil, out.fail(err)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, out.fail(err)
	}

	out.line("")

	if err = out.response(resp); err != nil {
		out.line(DescribeError(err))

		return nil, err
	}

	return resp, nil
}

type debugOutput struct {
	sink         Logger
	maxLogLength uint64
}

func (o *debugOutput) request(req *http.Request) (*http.Request, error) {
	method := requestMethod(req)

	o.line(method + " " + req.URL.Path)
	o.line("Host: " + req.URL.Hostname())
	o.headers(req.Header)

	if _, ok := methodsWithBodies[method]; !ok {
		return req, nil
	}

	req, body, err := bufferRequestBody(req)
	if err != nil {
		return nil, err
	}

	o.body(body)

	return req, nil
}

func (o *debugOutput) response(resp *http.Response) error {
	o.line("Status: " + strconv.Itoa(resp.StatusCode))
	o.headers(resp.Header)

	body, err := bufferResponseBody(resp)
	if err != nil {
		return err
	}

	if !isTextContentType(resp.Header.Get(headerContentType)) {
		o.line(bodyMarker)
		o.line("[binary, " + humanize.Bytes(uint64(len(body))) + "]")
		o.line(bodyMarker)

		return nil
	}

	o.body(body)

	return nil
}

// fail writes the exception lines for err and returns it.
func (o *debugOutput) fail(err error) error {
	o.line("")
	o.line(DescribeError(err))

	return err
}

func (o *debugOutput) headers(header http.Header) {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		o.line(key + ": " + strings.Join(header[key], ", "))
	}
}

func (o *debugOutput) body(body []byte) {
	o.line(bodyMarker)
	o.line(o.truncate(body))
	o.line(bodyMarker)
}

func (o *debugOutput) truncate(data []byte) string {
	if uint64(len(data)) > o.maxLogLength {
		return string(data[:o.maxLogLength]) +
			"... [truncated, " + humanize.Bytes(uint64(len(data))) + " total]"
	}

	return string(data)
}

func (o *debugOutput) line(msg string) {
	o.sink.Log(zapcore.InfoLevel, msg)
}
