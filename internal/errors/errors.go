package errors

import (
	"errors"
	"fmt"
)

// Common error types for the optimizer service
var (
	// Request errors
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidRedirectURI = errors.New("invalid redirect URI")
	ErrInvalidState       = errors.New("invalid state")

	// Identity provider errors
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrCodeAlreadyUsed     = fmt.Errorf("%w: authorization code already used", ErrTokenExchangeFailed)
	ErrProfileFetchFailed  = errors.New("profile fetch failed")
	ErrShareFailed         = errors.New("share failed")
	ErrNotAvailable        = errors.New("not available to third-party applications")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Kind classifies an error for propagation and HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstream
	KindPartialData
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindPartialData:
		return "partial_data"
	default:
		return "internal"
	}
}

// Error carries a Kind and, for upstream failures, the provider's status and body.
type Error struct {
	Kind    Kind
	Err     error  // sentinel, matched with errors.Is
	Message string // safe to return to clients
	Detail  string // provider detail, only exposed for upstream errors
	Status  int    // upstream HTTP status, 0 when the call never completed
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a KindValidation error wrapping sentinel.
func Validation(sentinel error, message string) *Error {
	return &Error{Kind: KindValidation, Err: sentinel, Message: message}
}

// Upstream returns a KindUpstream error carrying the provider response.
func Upstream(sentinel error, status int, detail string) *Error {
	return &Error{Kind: KindUpstream, Err: sentinel, Message: sentinel.Error(), Status: status, Detail: detail}
}

// Internal wraps an unexpected error. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: errors.Join(ErrInternal, err), Message: ErrInternal.Error()}
}

// KindOf reports the Kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need only this package.
func New(text string) error {
	return errors.New(text)
}
