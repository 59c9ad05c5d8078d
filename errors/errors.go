package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
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

// E builds an AppError with an explicit status code.
func E(op string, err error, message string, code int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadRequest)
}

func NotFound(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusNotFound)
}

func Internal(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusInternalServerError)
}

func RateLimitExceeded(op string) *AppError {
	return E(op, nil, "Rate limit exceeded", http.StatusTooManyRequests)
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code returns the HTTP status carried by err, or 500 when err is not an AppError.
func Code(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == http.StatusNotFound
}

func IsInvalidInput(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == http.StatusBadRequest
}
