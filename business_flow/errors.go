// Package businessflow contains the core business logic and use cases for code generation workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Generation-related errors
	ErrInvalidCodeType      = errors.New("invalid code type")
	ErrGenerationExhausted  = errors.New("could not generate a unique code")
	ErrCodeGenerationFailed = errors.New("code generation failed")

	// Storage-related errors
	ErrStorageWriteFailed = errors.New("failed to write code store")
	ErrStorageResetFailed = errors.New("failed to reset code store")
)

// BusinessError represents a business logic error with context
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error with context
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions to check error types

func IsInvalidCodeType(err error) bool {
	return errors.Is(err, ErrInvalidCodeType)
}

func IsGenerationExhausted(err error) bool {
	return errors.Is(err, ErrGenerationExhausted)
}

func IsStorageWriteFailed(err error) bool {
	return errors.Is(err, ErrStorageWriteFailed)
}

func IsStorageResetFailed(err error) bool {
	return errors.Is(err, ErrStorageResetFailed)
}
