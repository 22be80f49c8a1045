package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// textContentTypePatterns match the media types whose bodies are written as text.
//
//nolint:gochecknoglobals // Immutable, pre-compiled patterns.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile(`^application/(json|xml|javascript|x-www-form-urlencoded)$`),
	regexp.MustCompile(`^application/.+\+(json|xml)$`),
}

// stackTracer is implemented by errors created through github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// DescribeError renders err as "<type> <message>" followed, on the next
// lines, by the stack trace when the error chain carries one.
func DescribeError(err error) string {
	description := fmt.Sprintf("%T %s", err, err.Error())

	if trace := StackTrace(err); trace != "" {
		description += "\n" + trace
	}

	return description
}

// StackTrace returns the formatted stack captured by the first error in the
// chain that has one, or an empty string.
func StackTrace(err error) string {
	var tracer stackTracer
	if !errors.As(err, &tracer) {
		return ""
	}

	return strings.TrimPrefix(fmt.Sprintf("%+v", tracer.StackTrace()), "\n")
}

// requestMethod returns the request method, treating an empty method as GET.
func requestMethod(req *http.Request) string {
	if req.Method == "" {
		return http.MethodGet
	}

	return strings.ToUpper(req.Method)
}

// mediaType returns the lower-cased media type of a Content-Type value without parameters.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		parsed, _, _ = strings.Cut(contentType, ";")
	}

	return strings.ToLower(strings.TrimSpace(parsed))
}

// isTextContentType reports whether a body of the given content type can be logged as text.
// A missing content type counts as text; a charset other than utf-8 or us-ascii does not.
func isTextContentType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}

	parsed, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsed) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

func hasBody(body io.ReadCloser) bool {
	return body != nil && body != http.NoBody
}

// setRequestBody replaces the request body with data and makes it replayable.
func setRequestBody(req *http.Request, data []byte) {
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.ContentLength = int64(len(data))
}

// bufferRequestBody reads the request body without consuming it for the
// next hop. It returns the request to forward, which is a clone when the
// body had to be replaced.
func bufferRequestBody(req *http.Request) (*http.Request, []byte, error) {
	if !hasBody(req.Body) {
		return req, nil, nil
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, nil, err
		}

		defer body.Close() //nolint:errcheck // In-memory copy, error is not critical.

		data, err := io.ReadAll(body)
		if err != nil {
			return nil, nil, err
		}

		return req, data, nil
	}

	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()

	if err != nil {
		return nil, nil, err
	}

	clone := req.Clone(req.Context())
	setRequestBody(clone, data)

	return clone, data, nil
}

// bufferResponseBody reads the whole response body and replaces it with an
// in-memory copy so upstream readers still see it.
func bufferResponseBody(resp *http.Response) ([]byte, error) {
	if !hasBody(resp.Body) {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if err != nil {
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(data))

	return data, nil
}

// drainAndClose discards a bounded amount of body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(body, drainLimit))
	_ = body.Close()
}

const drainLimit = 8 << 10
