package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidTransition    = errors.New("invalid mail job transition")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
)

const (
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidCPR           = "INVALID_CPR"
	ErrCodeInvalidCVR           = "INVALID_CVR"
	ErrCodeMailJobNotFound      = "MAIL_JOB_NOT_FOUND"
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrMissingRequiredField,
	}
}

func NewInvalidTransitionError(from, to MailStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewMailJobNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMailJobNotFound,
		Message: fmt.Sprintf("mail job with ID %s not found", id),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
