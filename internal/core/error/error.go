package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// StoreErrorMessage describes failures talking to the live data store.
	StoreErrorMessage = "store operation failed"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a cache key does not exist.
	RedisNotFoundMessage = "redis key not found"
	// CompletionErrorMessage describes failures of the completion service.
	CompletionErrorMessage = "completion service call failed"
	// MalformedMessage is used when a collaborator answered with something unusable.
	MalformedMessage = "malformed response"
)

// Kind classifies an error by how the assistant degrades around it.
type Kind string

const (
	// KindConfigurationAbsent is non-fatal and selects mock / unavailable behaviour.
	KindConfigurationAbsent Kind = "configuration_absent"
	// KindTransportFailure degrades to the next fallback tier or to mock semantics.
	KindTransportFailure Kind = "transport_failure"
	// KindMalformedResponse is handled exactly like a transport failure.
	KindMalformedResponse Kind = "malformed_response"
	// KindValidation rejects caller input before any collaborator is touched.
	KindValidation Kind = "validation"
	// KindInternal is everything else.
	KindInternal Kind = "internal"
)

// Error wraps an underlying error with a kind, an HTTP status and a safe message.
type Error struct {
	Err     error
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new internal Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Message: message,
	}
}

// Absent reports a missing piece of configuration.
func Absent(message string) *Error {
	return &Error{
		Kind:    KindConfigurationAbsent,
		Status:  http.StatusServiceUnavailable,
		Message: message,
	}
}

// Invalid reports caller input that failed validation.
func Invalid(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// Malformed reports a collaborator response that cannot be used.
func Malformed(err error) *Error {
	return &Error{
		Err:     err,
		Kind:    KindMalformedResponse,
		Status:  http.StatusBadGateway,
		Message: MalformedMessage,
	}
}

// WrapStore wraps a data store error with a consistent kind and message.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Err:     err,
		Kind:    KindTransportFailure,
		Status:  http.StatusBadGateway,
		Message: StoreErrorMessage,
	}
}

// WrapCompletion wraps a completion service error. Errors that are already
// classified keep their kind.
func WrapCompletion(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Err:     err,
		Kind:    KindTransportFailure,
		Status:  http.StatusBadGateway,
		Message: CompletionErrorMessage,
	}
}

// KindOf returns the kind of err, or KindInternal when it was never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Degradable reports whether err should make the caller fall back instead of fail.
func Degradable(err error) bool {
	switch KindOf(err) {
	case KindConfigurationAbsent, KindTransportFailure, KindMalformedResponse:
		return true
	default:
		return false
	}
}

// StatusOf maps err to the HTTP status the API should answer with.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}
