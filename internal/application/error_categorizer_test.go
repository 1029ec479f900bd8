package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DanielPopoola/broker-gateway/internal/application"
	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/domain"
	"github.com/DanielPopoola/broker-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		category  application.ErrorCategory
		retryable bool
	}{
		{"nil", nil, "", false},
		{"exhausted transient broker error", &broker.BrokerError{Code: broker.CodeTransientHTTP, Retryable: true, Attempts: 3}, application.CategoryTransient, true},
		{"cancelled broker call", &broker.BrokerError{Code: broker.CodeConnection, Err: context.Canceled}, application.CategoryTransient, true},
		{"broker fault", &broker.BrokerError{Code: broker.CodeApplicationFault}, application.CategoryPermanent, false},
		{"broker rejected request", &broker.BrokerError{Code: broker.CodePermanentHTTP, StatusCode: 500}, application.CategoryPermanent, false},
		{"broker misconfigured", &broker.BrokerError{Code: broker.CodeInvalidArgument}, application.CategoryClientError, false},
		{"garbled broker response", &broker.BrokerError{Code: broker.CodeMalformedResponse}, application.CategoryInfrastructure, true},
		{"wrapped broker error", fmt.Errorf("dispatch: %w", &broker.BrokerError{Code: broker.CodeApplicationFault}), application.CategoryPermanent, false},
		{"invalid transition", domain.NewInvalidTransitionError(domain.MailSent, domain.MailFailed), application.CategoryBusinessRule, false},
		{"bad cpr", domain.CPR("1").Validate(), application.CategoryClientError, false},
		{"missing job", postgres.ErrMailJobNotFound, application.CategoryClientError, false},
		{"internal", application.NewInternalError(errors.New("boom")), application.CategoryInfrastructure, true},
		{"unknown", errors.New("who knows"), application.CategoryTransient, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.category, application.CategorizeError(tc.err))
			if tc.err != nil {
				assert.Equal(t, tc.retryable, application.IsRetryable(tc.err))
			}
		})
	}
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"broker unavailable", &broker.BrokerError{Code: broker.CodeTransientHTTP, Retryable: true}, http.StatusServiceUnavailable, "BROKER_TRANSIENT_HTTP_ERROR"},
		{"broker timed out", &broker.BrokerError{Code: broker.CodeConnection, Retryable: true, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, "BROKER_CONNECTION_ERROR"},
		{"broker fault", &broker.BrokerError{Code: broker.CodeApplicationFault}, http.StatusUnprocessableEntity, "BROKER_APPLICATION_FAULT"},
		{"broker malformed", &broker.BrokerError{Code: broker.CodeMalformedResponse}, http.StatusBadGateway, "BROKER_MALFORMED_RESPONSE"},
		{"broker misconfigured", &broker.BrokerError{Code: broker.CodeInvalidArgument}, http.StatusInternalServerError, "BROKER_INVALID_ARGUMENT"},
		{"service not found", application.NewNotFoundError("person"), http.StatusNotFound, application.ErrCodeNotFound},
		{"domain validation", domain.CVR("x").Validate(), http.StatusBadRequest, domain.ErrCodeInvalidCVR},
		{"missing job", postgres.ErrMailJobNotFound, http.StatusNotFound, domain.ErrCodeMailJobNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, application.ToHTTPStatus(tc.err))
			assert.Equal(t, tc.code, application.ToErrorCode(tc.err))
		})
	}
}
