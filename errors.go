package loogihttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies errors returned by a Connection.
type Kind int

const (
	// KindGeneric is any failure that is neither a timeout nor a connection failure.
	KindGeneric Kind = iota
	// KindTimeout is a transport deadline being exceeded.
	KindTimeout
	// KindConnectionFailed is a connection that could not be established or completed.
	KindConnectionFailed
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "TimeoutError"
	case KindConnectionFailed:
		return "ConnectionFailed"
	default:
		return "Error"
	}
}

// Static error definitions for better error handling.
var (
	// ErrTimeout matches, with errors.Is, every *ServerError of kind KindTimeout.
	ErrTimeout = errors.New("timeout")
	// ErrConnectionFailed matches, with errors.Is, every *ServerError of kind KindConnectionFailed.
	ErrConnectionFailed = errors.New("connection failed")
	// ErrUnknownAdapter indicates that the configured adapter name is not registered.
	ErrUnknownAdapter = errors.New("unknown adapter")
	// ErrInvalidAdapterArgs indicates that the adapter arguments do not fit the adapter.
	ErrInvalidAdapterArgs = errors.New("invalid adapter arguments")
	// ErrInvalidURL indicates that a base or request URL could not be parsed.
	ErrInvalidURL = errors.New("invalid URL")
)

// ServerError wraps a transport failure caught at the Connection boundary.
// Its message is the message of the original failure.
type ServerError struct {
	kind  Kind
	err   error
	stack pkgerrors.StackTrace
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func newServerError(kind Kind, err error) *ServerError {
	var stack pkgerrors.StackTrace

	if tracer, ok := pkgerrors.WithStack(err).(stackTracer); ok {
		// Drop the frame of this constructor.
		stack = tracer.StackTrace()[1:]
	}

	return &ServerError{
		kind:  kind,
		err:   err,
		stack: stack,
	}
}

// NewTimeoutError wraps err as a timeout.
func NewTimeoutError(err error) *ServerError {
	return newServerError(KindTimeout, err)
}

// NewConnectionFailed wraps err as a connection failure.
func NewConnectionFailed(err error) *ServerError {
	return newServerError(KindConnectionFailed, err)
}

// Error returns the message of the wrapped failure.
func (e *ServerError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped failure.
func (e *ServerError) Unwrap() error {
	return e.err
}

// Kind returns the kind of the error.
func (e *ServerError) Kind() Kind {
	return e.kind
}

// StackTrace returns the stack captured when the failure was wrapped.
func (e *ServerError) StackTrace() pkgerrors.StackTrace {
	return e.stack
}

// Is reports whether target is the sentinel of the error's kind.
func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.kind == KindTimeout
	case ErrConnectionFailed:
		return e.kind == KindConnectionFailed
	default:
		return false
	}
}

// Format supports %+v, which appends the stack trace to the message.
func (e *ServerError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Error())
			e.stack.Format(s, verb)

			return
		}

		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// KindOf returns the kind of err; KindGeneric unless err wraps a *ServerError.
func KindOf(err error) Kind {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.kind
	}

	return KindGeneric
}

// IsTimeout reports whether err is a timeout returned by a Connection.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsConnectionFailed reports whether err is a connection failure returned by a Connection.
func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// translateError maps transport timeouts and connection failures to *ServerError.
// Every other error is returned unchanged.
func translateError(err error) error {
	switch classifyTransportError(err) {
	case KindTimeout:
		return NewTimeoutError(err)
	case KindConnectionFailed:
		return NewConnectionFailed(err)
	default:
		return err
	}
}

// unwrapClientError removes the *url.Error added by http.Client.Do,
// so the caller sees the failure raised by the stack.
func unwrapClientError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}

	return err
}

// classifyTransportError inspects the error chain; timeouts win over connection failures.
func classifyTransportError(err error) Kind {
	if err == nil {
		return KindGeneric
	}

	if isTimeout(err) {
		return KindTimeout
	}

	if isConnectionFailed(err) {
		return KindConnectionFailed
	}

	return KindGeneric
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

//nolint:gochecknoglobals // Immutable list of errno values meaning the connection failed.
var connectionErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
	syscall.EPIPE,
}

func isConnectionFailed(err error) bool {
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)

	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}

	for _, errno := range connectionErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
