package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrValidation, ErrBadRequest, ErrEmptyUpdate, ErrUnsupportedMediaType:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrTokenExpired:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrValidation
	ErrEmptyUpdate
	ErrUnsupportedMediaType
	ErrPayloadTooLarge
	ErrTokenExpired
	ErrTooManyRequests
	ErrPersistence
)

func NotFound(message string, err error) *AppError {
	return &AppError{Code: ErrNotFound, Message: message, Err: err}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: ErrBadRequest, Message: message, Err: err}
}

// Validation carries every field-level problem found in one request.
func Validation(message string, fields map[string]string) *AppError {
	return &AppError{Code: ErrValidation, Message: message, Fields: fields}
}

func EmptyUpdate(message string) *AppError {
	return &AppError{Code: ErrEmptyUpdate, Message: message}
}

func UnsupportedMediaType(message string) *AppError {
	return &AppError{Code: ErrUnsupportedMediaType, Message: message}
}

func PayloadTooLarge(message string, err error) *AppError {
	return &AppError{Code: ErrPayloadTooLarge, Message: message, Err: err}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message, Err: err}
}

func TokenExpired(message string, err error) *AppError {
	return &AppError{Code: ErrTokenExpired, Message: message, Err: err}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{Code: ErrForbidden, Message: message, Err: err}
}

func TooManyRequests(message string) *AppError {
	return &AppError{Code: ErrTooManyRequests, Message: message}
}

// Persistence wraps a store failure; the message is safe to show clients.
func Persistence(err error) *AppError {
	return &AppError{Code: ErrPersistence, Message: "no se pudo guardar la información", Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}
