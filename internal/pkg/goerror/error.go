package goerror

import (
	"fmt"
	"net/http"
)

// Type buckets errors by origin so transports can decide how much to reveal.
type Type int

const (
	// TypeServer represents server-side failures.
	TypeServer Type = iota
	// TypeBusiness represents protocol or business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used to map errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeBadRequest indicates a request the protocol rejects (bad challenge,
	// bad OTP, missing credentials).
	CodeBadRequest
	// CodeInvalidInput indicates a structurally invalid request payload.
	CodeInvalidInput
	// CodeUnauthorized indicates authentication failure.
	CodeUnauthorized
	// CodeNotFound indicates a missing resource.
	CodeNotFound
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeBadRequest:
		return "ERROR_CODE_BAD_REQUEST"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is the structured error used across the application. It carries a
// user-facing message next to the wrapped cause, so transports never leak
// internals by accident.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	return "unknown error"
}

// String returns a verbose representation for logging.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns per-field validation messages, if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps an internal failure. The caller-facing message is generic.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness creates a business-type error with the given message and code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput wraps a validation failure.
func NewInvalidInput(err error) error {
	return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
}

// NewInvalidFormat flags a request body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeBadRequest}
}
