package application

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/persistence/postgres"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	// Broker errors carry their own retry verdict.
	if brokerErr, ok := broker.IsBrokerError(err); ok {
		if brokerErr.Retryable {
			return CategoryTransient
		}
		switch brokerErr.Code {
		case broker.CodeConnection:
			// cancelled by the caller
			return CategoryTransient
		case broker.CodeInvalidArgument:
			return CategoryClientError
		case broker.CodeMalformedResponse:
			return CategoryInfrastructure
		default:
			return CategoryPermanent
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrInvalidTransition) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrInvalidIdentifier) ||
		errors.Is(err, domain.ErrMissingRequiredField) ||
		errors.Is(err, postgres.ErrMailJobNotFound) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeNotFound:
			return CategoryClientError
		case ErrCodeInternal:
			return CategoryInfrastructure
		case ErrCodeTimeout:
			return CategoryTransient
		}
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	if brokerErr, ok := broker.IsBrokerError(err); ok {
		switch brokerErr.Code {
		case broker.CodeConnection, broker.CodeTransientHTTP:
			if errors.Is(err, context.DeadlineExceeded) {
				return http.StatusGatewayTimeout
			}
			return http.StatusServiceUnavailable
		case broker.CodeApplicationFault:
			return http.StatusUnprocessableEntity
		case broker.CodeInvalidArgument:
			return http.StatusInternalServerError
		default:
			return http.StatusBadGateway
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier),
		errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, postgres.ErrMailJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	// Default to 500
	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if brokerErr, ok := broker.IsBrokerError(err); ok {
		return "BROKER_" + strings.ToUpper(string(brokerErr.Code))
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if errors.Is(err, postgres.ErrMailJobNotFound) {
		return domain.ErrCodeMailJobNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}
