package middleware

import (
	"context"
	"maps"

	"go.uber.org/zap"
)

// DebugKey is the RequestContext key holding the per-request debug sink.
const DebugKey = "debug"

// RequestContext is ancillary per-request data carried through the chain.
type RequestContext map[string]any

type (
	requestContextKey struct{}
	payloadKey        struct{}
)

// WithRequestContext returns ctx carrying the entries of rc merged over any
// RequestContext already present. The stored map is a copy.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	merged := make(RequestContext, len(rc))
	if existing, ok := ctx.Value(requestContextKey{}).(RequestContext); ok {
		maps.Copy(merged, existing)
	}

	maps.Copy(merged, rc)

	return context.WithValue(ctx, requestContextKey{}, merged)
}

// RequestContextFrom returns the RequestContext carried by ctx, or nil.
// The returned map must not be modified.
func RequestContextFrom(ctx context.Context) RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(RequestContext)

	return rc
}

// WithDebugSink returns ctx with sink stored under DebugKey.
func WithDebugSink(ctx context.Context, sink Logger) context.Context {
	return WithRequestContext(ctx, RequestContext{DebugKey: sink})
}

// DebugSinkFrom returns the debug sink carried by ctx, or nil.
func DebugSinkFrom(ctx context.Context) Logger {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	if !ok {
		return nil
	}

	sink, _ := rc[DebugKey].(Logger)
	if l, isZap := sink.(*zap.Logger); isZap && l == nil {
		return nil
	}

	return sink
}

// WithPayload returns ctx carrying a request payload that still has to be
// encoded by a request encoder such as EncodeJSON.
func WithPayload(ctx context.Context, payload any) context.Context {
	return context.WithValue(ctx, payloadKey{}, &payload)
}

// WithoutPayload returns ctx with any pending payload cleared.
func WithoutPayload(ctx context.Context) context.Context {
	if _, ok := PendingPayload(ctx); !ok {
		return ctx
	}

	return context.WithValue(ctx, payloadKey{}, (*any)(nil))
}

// PendingPayload returns the payload waiting to be encoded, if any.
func PendingPayload(ctx context.Context) (any, bool) {
	p, _ := ctx.Value(payloadKey{}).(*any)
	if p == nil || *p == nil {
		return nil, false
	}

	return *p, true
}
