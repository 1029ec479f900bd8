package broker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a BrokerError.
type ErrorCode string

const (
	CodeConnection        ErrorCode = "connection_error"
	CodeTransientHTTP     ErrorCode = "transient_http_error"
	CodePermanentHTTP     ErrorCode = "permanent_http_error"
	CodeApplicationFault  ErrorCode = "application_fault"
	CodeMalformedResponse ErrorCode = "malformed_response"
	CodeInvalidArgument   ErrorCode = "invalid_argument"
)

// Sentinels for errors.Is. A BrokerError matches the sentinel with the same code.
var (
	ErrConnection        = &BrokerError{Code: CodeConnection}
	ErrTransientHTTP     = &BrokerError{Code: CodeTransientHTTP}
	ErrPermanentHTTP     = &BrokerError{Code: CodePermanentHTTP}
	ErrApplicationFault  = &BrokerError{Code: CodeApplicationFault}
	ErrMalformedResponse = &BrokerError{Code: CodeMalformedResponse}
	ErrInvalidArgument   = &BrokerError{Code: CodeInvalidArgument}
)

// BrokerError is the only error type returned by Client.Request.
type BrokerError struct {
	Code       ErrorCode
	Message    string
	Service    ServiceID
	Operation  string
	Retryable  bool
	StatusCode int // HTTP status, 0 when no response was received
	Attempts   int
	Err        error
}

func (e *BrokerError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "broker error [%s]", e.Code)
	if e.Service != "" {
		fmt.Fprintf(&b, " %s", e.Service)
		if e.Operation != "" {
			fmt.Fprintf(&b, "/%s", e.Operation)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status: %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *BrokerError) Unwrap() error {
	return e.Err
}

// Is matches sentinels by code so callers can write errors.Is(err, broker.ErrInvalidArgument).
func (e *BrokerError) Is(target error) bool {
	t, ok := target.(*BrokerError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Code == e.Code
}

// Exhausted reports whether the call failed with a retryable error after the
// retry budget ran out, as opposed to failing on a permanent error.
func (e *BrokerError) Exhausted() bool {
	return e.Retryable && e.Attempts > 0
}

func (e *BrokerError) with(service ServiceID, operation string) *BrokerError {
	cp := *e
	if cp.Service == "" {
		cp.Service = service
	}
	if cp.Operation == "" {
		cp.Operation = operation
	}
	return &cp
}

// IsBrokerError unwraps err into a *BrokerError.
func IsBrokerError(err error) (*BrokerError, bool) {
	var brokerErr *BrokerError
	ok := errors.As(err, &brokerErr)
	return brokerErr, ok
}

func invalidArgument(format string, args ...any) *BrokerError {
	return &BrokerError{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func malformedResponse(message string, err error) *BrokerError {
	return &BrokerError{Code: CodeMalformedResponse, Message: message, Err: err}
}
