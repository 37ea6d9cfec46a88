package errors

import (
	"fmt"
	"net/http"
	"reflect"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Kind is the closed set of failure categories the API reports.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindConflict
	KindRateLimited
	KindInternal
)

// StatusCode maps a kind to its HTTP status. Unknown kinds are internal.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// KindFromStatus is the inverse of StatusCode for errors that only carry a
// status, such as those produced by fiber itself.
func KindFromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindInternal
	}
}

type AppError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Errors     []string

	// origin carries the call-site stack.
	origin error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return pkgerrors.Cause(e.origin)
}

// Stack renders the captured stack trace, cause first.
func (e *AppError) Stack() string {
	if e.origin == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.origin)
}

func NewAppError(kind Kind, message string, details ...string) *AppError {
	return &AppError{
		Kind:       kind,
		StatusCode: kind.StatusCode(),
		Message:    message,
		Errors:     details,
		origin:     pkgerrors.New(message),
	}
}

func NewBadRequestError(message string, details ...string) *AppError {
	return NewAppError(KindValidation, message, details...)
}

func NewUnauthorizedError(message ...string) *AppError {
	if len(message) > 0 {
		return NewAppError(KindUnauthenticated, message[0])
	}
	return NewAppError(KindUnauthenticated, "Unauthorized")
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(KindUnauthorized, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message)
}

func NewConflictError(message string) *AppError {
	return NewAppError(KindConflict, message)
}

func NewTooManyRequestsError(message string, limit int, reset int64) *AppError {
	return NewAppError(KindRateLimited, message, fmt.Sprintf("limit=%d", limit), fmt.Sprintf("reset=%d", reset))
}

func NewInternalServerError(originalError error, message string) *AppError {
	if originalError == nil {
		originalError = pkgerrors.New(message)
	}
	logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	return &AppError{
		Kind:       KindInternal,
		StatusCode: KindInternal.StatusCode(),
		Message:    message,
		origin:     pkgerrors.WithStack(originalError),
	}
}
