package apierror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies an error so the transport layer can pick a response code.
type Kind int

const (
	KindServerError Kind = iota
	KindBadRequest
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	default:
		return "server_error"
	}
}

type ErrorResponse interface {
	error
	Kind() Kind
}

type APIError struct {
	ErrKind Kind     `json:"-"`
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Kind() Kind {
	return e.ErrKind
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string, details ...string) *APIError {
	return &APIError{ErrKind: kind, Type: kind.String(), Message: message, Details: details}
}

func NewBadRequest(message string, details ...string) *APIError {
	return New(KindBadRequest, message, details...)
}

func NewNotFound(message string) *APIError {
	return New(KindNotFound, message)
}

func NewMissingParamError(param string) *APIError {
	return NewBadRequest(fmt.Sprintf("missing required parameter '%s'", param))
}

func NewInvalidParamTypeError(param, expected string) *APIError {
	return NewBadRequest(fmt.Sprintf("parameter '%s' must be of type %s", param, expected))
}

// FromStoreError wraps an infrastructure failure. The cause stays reachable
// through errors.Is/As while the client only sees a generic message.
func FromStoreError(err error) *APIError {
	e := New(KindServerError, "internal server error")
	e.cause = err
	return e
}

// FromValidationError turns go-playground validation failures into a single
// bad request listing every offending field.
func FromValidationError(err error) *APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeField(fe))
	}
	return NewBadRequest("request validation failed", details...)
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "iso8601":
		return field + " must be an RFC 3339 timestamp"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", field, fe.Tag())
	}
}

var MalformedBodyError = NewBadRequest("malformed request body")
