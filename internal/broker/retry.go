package broker

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// RetryPolicy decides whether a failed attempt is tried again and how long to
// wait before doing so.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// ShouldRetry reports whether attempt (1-based) may be followed by another one.
func (p RetryPolicy) ShouldRetry(err *BrokerError, attempt int) bool {
	if err == nil || !err.Retryable {
		return false
	}
	return attempt < p.MaxAttempts
}

// Backoff returns the delay after the given 1-based attempt: BaseDelay * 2^(attempt-1).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.BaseDelay * time.Duration(1<<(attempt-1))
}

// isTransientStatus lists the HTTP statuses worth another attempt.
func isTransientStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classifyTransportError converts an error returned by the transport into a
// BrokerError. Network-level failures are retryable; a cancelled caller context
// is not.
func classifyTransportError(ctx context.Context, err error) *BrokerError {
	if ctx.Err() != nil {
		return &BrokerError{
			Code:    CodeConnection,
			Message: "request cancelled",
			Err:     err,
		}
	}

	brokerErr := &BrokerError{
		Code:      CodeConnection,
		Message:   "connection failed",
		Retryable: true,
		Err:       err,
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		brokerErr.Message = "request timed out"
	case errors.As(err, &dnsErr):
		brokerErr.Message = "dns lookup failed"
	case errors.Is(err, syscall.ECONNREFUSED):
		brokerErr.Message = "connection refused"
	case errors.As(err, &netErr) && netErr.Timeout():
		brokerErr.Message = "request timed out"
	}
	return brokerErr
}

// sleepWithContext blocks for d or until ctx is done.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
