package toolweave

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyInput is returned when a required input slice is empty.
var ErrEmptyInput = errors.New("empty input")

// ErrorCategory groups errors by the correct caller reaction: retry,
// give up, or fix the request.
type ErrorCategory string

const (
	// ErrorTransient means the failure is temporary and retrying may
	// succeed: rate limits, network blips, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent means no amount of retrying helps: bad API key,
	// missing permissions, unknown model.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput means the request itself is at fault and must be
	// corrected before resending.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is the error contract the retry layer keys off.
// Provider packages wrap SDK errors into this shape so retry decisions
// never inspect provider-specific types.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool           // shorthand for Category() == ErrorTransient
	StatusCode() int           // HTTP status when known, else 0
	RetryAfter() time.Duration // server-suggested delay when known, else 0
}

// Error is the standard CategorizedError implementation.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status, 0 when not applicable
	RetryDelay time.Duration // from a Retry-After header, 0 when absent
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Category returns the error's category.
func (e *Error) Category() ErrorCategory { return e.Cat }

// Retryable reports whether the error is transient.
func (e *Error) Retryable() bool { return e.Cat == ErrorTransient }

// StatusCode returns the HTTP status, or 0 when none applies.
func (e *Error) StatusCode() int { return e.Code }

// RetryAfter returns the server-suggested delay, or 0 when absent.
func (e *Error) RetryAfter() time.Duration { return e.RetryDelay }

// NewTransientError wraps a retryable failure.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewTransientErrorWithRetry wraps a retryable failure carrying the
// server's suggested retry delay.
func NewTransientErrorWithRetry(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, RetryDelay: retryAfter, Cause: cause}
}

// NewPermanentError wraps a failure that retrying cannot fix.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError wraps a failure caused by the request itself.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// IsTransient reports whether err, or any error it wraps, is categorized
// transient.
func IsTransient(err error) bool {
	var ce CategorizedError
	return errors.As(err, &ce) && ce.Category() == ErrorTransient
}

// IsPermanent reports whether err, or any error it wraps, is categorized
// permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	return errors.As(err, &ce) && ce.Category() == ErrorPermanent
}

// StatusCodeOf extracts the HTTP status from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf extracts the server-suggested retry delay from a
// categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}
