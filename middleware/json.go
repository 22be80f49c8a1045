package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// JSONEncoder is an http.RoundTripper that encodes pending request payloads as JSON.
//
// Requests with a body or payload and either no Content-Type or a JSON one
// get Content-Type application/json; a pending payload is marshaled into the body.
// Other requests are forwarded untouched.
type JSONEncoder struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
}

// NewJSONEncoder creates and returns a new instance of JSONEncoder.
func NewJSONEncoder(next http.RoundTripper) http.RoundTripper {
	return &JSONEncoder{next: next}
}

// EncodeJSON returns a middleware installing JSONEncoder.
func EncodeJSON() Middleware {
	return NewJSONEncoder
}

// RoundTrip encodes the request payload and forwards the request.
func (t *JSONEncoder) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx := req.Context()
	payload, pending := PendingPayload(ctx)

	if !pending && !hasBody(req.Body) {
		return t.next.RoundTrip(req)
	}

	contentType := mediaType(req.Header.Get(headerContentType))
	if contentType != "" && contentType != MIMEApplicationJSON {
		return t.next.RoundTrip(req)
	}

	if pending {
		ctx = WithoutPayload(ctx)
	}

	clone := req.Clone(ctx)
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}

	if contentType == "" {
		clone.Header.Set(headerContentType, MIMEApplicationJSON)
	}

	if pending {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrEncoding, err))
		}

		setRequestBody(clone, data)
	}

	return t.next.RoundTrip(clone)
}

// DecodedBody is a response body that has already been decoded.
// Reading it yields the raw bytes again.
type DecodedBody struct {
	*bytes.Reader

	raw   []byte
	value any
}

// NewDecodedBody creates a DecodedBody over raw holding value.
func NewDecodedBody(raw []byte, value any) *DecodedBody {
	return &DecodedBody{
		Reader: bytes.NewReader(raw),
		raw:    raw,
		value:  value,
	}
}

// Close implements io.Closer.
func (b *DecodedBody) Close() error {
	return nil
}

// Raw returns the body bytes as received.
func (b *DecodedBody) Raw() []byte {
	return b.raw
}

// Value returns the decoded body; nil for a blank body.
func (b *DecodedBody) Value() any {
	return b.value
}

// JSONDecoder is an http.RoundTripper that decodes JSON response bodies.
// Only responses whose media type equals contentType are decoded.
type JSONDecoder struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// contentType is the media type that triggers decoding.
	contentType string
}

// NewJSONDecoder creates and returns a new instance of JSONDecoder.
// An empty contentType defaults to application/json.
func NewJSONDecoder(next http.RoundTripper, contentType string) http.RoundTripper {
	if contentType == "" {
		contentType = MIMEApplicationJSON
	}

	return &JSONDecoder{
		next:        next,
		contentType: mediaType(contentType),
	}
}

// DecodeJSON returns a middleware installing JSONDecoder for contentType.
func DecodeJSON(contentType string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return NewJSONDecoder(next, contentType)
	}
}

// RoundTrip forwards the request and decodes a matching response body.
func (t *JSONDecoder) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if mediaType(resp.Header.Get(headerContentType)) != t.contentType {
		return resp, nil
	}

	var raw []byte

	if hasBody(resp.Body) {
		raw, err = io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if err != nil {
			return nil, err
		}
	}

	var value any

	if len(bytes.TrimSpace(raw)) > 0 {
		if err = json.Unmarshal(raw, &value); err != nil {
			return nil, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrParsing, err))
		}
	}

	resp.Body = NewDecodedBody(raw, value)

	return resp, nil
}

// PayloadGuard is an http.RoundTripper placed in front of the adapter.
// It rejects requests whose payload was never encoded.
type PayloadGuard struct {
	// next is the adapter.
	next http.RoundTripper
}

// NewPayloadGuard creates and returns a new instance of PayloadGuard.
func NewPayloadGuard(next http.RoundTripper) http.RoundTripper {
	return &PayloadGuard{next: next}
}

// RoundTrip fails with ErrUnencodedPayload when a payload is still pending.
func (t *PayloadGuard) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if payload, pending := PendingPayload(req.Context()); pending {
		return nil, pkgerrors.WithStack(fmt.Errorf("%w: %T", ErrUnencodedPayload, payload))
	}

	return t.next.RoundTrip(req)
}
