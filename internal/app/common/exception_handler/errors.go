package common

import (
	"errors"
	"fmt"
)

// CustomError represents a custom error with additional context
type CustomError struct {
	Code    string
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a new custom error
func NewCustomError(code, message string, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the outermost CustomError in err's chain, or ""
func CodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// Error codes
const (
	ErrConfigLoad     = "CONFIG_LOAD_ERROR"
	ErrCacheConnect   = "CACHE_CONNECT_ERROR"
	ErrFetch          = "FETCH_ERROR"
	ErrUpstreamStatus = "UPSTREAM_STATUS_ERROR"
	ErrDecode         = "DECODE_ERROR"
	ErrInvalidEntry   = "INVALID_ENTRY_ERROR"
	ErrRender         = "RENDER_ERROR"
	ErrLocale         = "LOCALE_ERROR"
	ErrMarshal        = "MARSHAL_ERROR"
	ErrUnmarshal      = "UNMARSHAL_ERROR"
)
