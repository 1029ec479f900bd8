// Package broker is the client for the government integration Broker: it
// builds and parses the SOAP envelopes of the person lookup, company lookup and
// digital mail services, caches lookups, and retries transient failures.
//
// Request blocks the caller for the whole attempt loop, including up to
// 2s+4s of backoff with the default policy. Code serving interactive requests
// should call it from a worker rather than on the request path.
package broker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const DefaultCacheTTL = 900 * time.Second

// SOAP operations issued by the convenience methods.
const (
	OperationPersonLookup  = "PersonLookup"
	OperationCompanyLookup = "CompanyLookup"
	OperationSendMessage   = "SendMessage"
)

// RequestOptions tunes a single call. The zero value reads and writes the
// cache with DefaultCacheTTL.
type RequestOptions struct {
	BypassCache bool
	CacheTTL    time.Duration
}

type Client struct {
	credentials    CredentialProvider
	endpoints      EndpointProvider
	cache          Cache
	transport      Transport
	logger         *slog.Logger
	policy         RetryPolicy
	attemptTimeout time.Duration
	cacheKeySecret []byte
	observer       Observer
	sleep          func(ctx context.Context, d time.Duration) error
	now            func() time.Time
}

type Option func(*Client)

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) { c.policy = policy }
}

// WithAttemptTimeout bounds each individual attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) { c.attemptTimeout = d }
}

func WithCacheKeySecret(secret []byte) Option {
	return func(c *Client) { c.cacheKeySecret = secret }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithSleep replaces the backoff sleep.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a Client. cache may be nil, in which case every call goes to the Broker.
func New(
	credentials CredentialProvider,
	endpoints EndpointProvider,
	cache Cache,
	transport Transport,
	logger *slog.Logger,
	opts ...Option,
) *Client {
	c := &Client{
		credentials:    credentials,
		endpoints:      endpoints,
		cache:          cache,
		transport:      transport,
		logger:         logger,
		policy:         DefaultRetryPolicy(),
		attemptTimeout: DefaultTotalTimeout,
		observer:       nopObserver{},
		sleep:          sleepWithContext,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Request performs one logical Broker call. The returned error, if any, is
// always a *BrokerError.
func (c *Client) Request(
	ctx context.Context,
	service ServiceID,
	operation string,
	params Parameters,
	opts RequestOptions,
) (Result, error) {
	logger := c.logger.With(
		"request_id", uuid.NewString(),
		"service", service,
		"operation", operation,
	)

	if !service.Valid() {
		err := invalidArgument("unknown service %q", service).with(service, operation)
		logger.Error("broker request rejected", "code", err.Code, "error", err)
		return Result{}, err
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	var key string
	if !opts.BypassCache && c.cache != nil {
		key = CacheKey(c.cacheKeySecret, service, operation, params)
		if result, ok := c.lookupCache(ctx, logger, key, service); ok {
			return result, nil
		}
	}

	result, brokerErr := c.dispatch(ctx, logger, service, operation, params)
	if brokerErr != nil {
		c.observer.ObserveResult(service, brokerErr.Code)
		logger.Error("broker request failed",
			"code", brokerErr.Code,
			"retryable", brokerErr.Retryable,
			"attempts", brokerErr.Attempts,
			"status", brokerErr.StatusCode,
			"error", brokerErr,
		)
		return Result{}, brokerErr
	}
	c.observer.ObserveResult(service, "")

	if key != "" {
		if err := c.cache.Set(ctx, key, result, ttl); err != nil {
			logger.Warn("failed to store broker response in cache", "error", err)
		}
	}

	return result, nil
}

func (c *Client) lookupCache(ctx context.Context, logger *slog.Logger, key string, service ServiceID) (Result, bool) {
	entry, found, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed, calling broker", "error", err)
		c.observer.ObserveCache(service, false)
		return Result{}, false
	}
	if !found || entry.Expired(c.now()) {
		c.observer.ObserveCache(service, false)
		return Result{}, false
	}
	if entry.Result.Service != service || !entry.Result.Valid() {
		logger.Warn("ignoring cached entry with unexpected shape", "cached_service", entry.Result.Service)
		c.observer.ObserveCache(service, false)
		return Result{}, false
	}

	c.observer.ObserveCache(service, true)
	logger.Info("broker cache hit", "stored_at", entry.StoredAt)
	return entry.Result, true
}

// dispatch runs the attempt loop.
func (c *Client) dispatch(
	ctx context.Context,
	logger *slog.Logger,
	service ServiceID,
	operation string,
	params Parameters,
) (Result, *BrokerError) {
	endpoint, err := c.endpoints.GetEndpoint(service)
	if err != nil {
		return Result{}, &BrokerError{
			Code:      CodeInvalidArgument,
			Message:   "no endpoint configured",
			Service:   service,
			Operation: operation,
			Err:       err,
		}
	}

	creds, err := c.credentials.GetCredentials(ctx)
	if err != nil {
		return Result{}, &BrokerError{
			Code:      CodeInvalidArgument,
			Message:   "no credentials available",
			Service:   service,
			Operation: operation,
			Err:       err,
		}
	}

	envelope, err := Encode(service, operation, params, creds)
	if err != nil {
		brokerErr, _ := IsBrokerError(err)
		return Result{}, brokerErr
	}

	for attempt := 1; ; attempt++ {
		result, brokerErr := c.attempt(ctx, service, operation, endpoint, envelope)
		if brokerErr == nil {
			return result.withLookupKey(params), nil
		}

		brokerErr = brokerErr.with(service, operation)
		brokerErr.Attempts = attempt

		if !c.policy.ShouldRetry(brokerErr, attempt) {
			return Result{}, brokerErr
		}

		delay := c.policy.Backoff(attempt)
		logger.Warn("broker attempt failed, retrying",
			"attempt", attempt,
			"delay", delay,
			"code", brokerErr.Code,
			"error", brokerErr,
		)

		if err := c.sleep(ctx, delay); err != nil {
			return Result{}, &BrokerError{
				Code:      CodeConnection,
				Message:   "request cancelled during backoff",
				Service:   service,
				Operation: operation,
				Attempts:  attempt,
				Err:       err,
			}
		}
	}
}

func (c *Client) attempt(
	ctx context.Context,
	service ServiceID,
	operation, endpoint string,
	envelope []byte,
) (Result, *BrokerError) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	start := c.now()
	resp, err := c.transport.Post(attemptCtx, endpoint, operation, envelope)
	if err != nil {
		brokerErr := classifyTransportError(ctx, err)
		c.observer.ObserveAttempt(service, string(brokerErr.Code), c.now().Sub(start))
		return Result{}, brokerErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		brokerErr := classifyStatus(service, resp)
		c.observer.ObserveAttempt(service, string(brokerErr.Code), c.now().Sub(start))
		return Result{}, brokerErr
	}

	result, err := Decode(service, resp.Body)
	if err != nil {
		brokerErr, ok := IsBrokerError(err)
		if !ok {
			brokerErr = malformedResponse("could not decode response", err)
		}
		brokerErr.StatusCode = resp.StatusCode
		c.observer.ObserveAttempt(service, string(brokerErr.Code), c.now().Sub(start))
		return Result{}, brokerErr
	}

	c.observer.ObserveAttempt(service, "success", c.now().Sub(start))
	return result, nil
}

// classifyStatus turns a non-2xx response into a BrokerError. 408/503/504 are
// retried whatever the body says; other statuses are permanent, reported as an
// application fault when the body carries one.
func classifyStatus(service ServiceID, resp *Response) *BrokerError {
	if isTransientStatus(resp.StatusCode) {
		return &BrokerError{
			Code:       CodeTransientHTTP,
			Message:    "broker temporarily unavailable",
			Retryable:  true,
			StatusCode: resp.StatusCode,
		}
	}

	if _, err := Decode(service, resp.Body); err != nil {
		if brokerErr, ok := IsBrokerError(err); ok && brokerErr.Code == CodeApplicationFault {
			brokerErr.StatusCode = resp.StatusCode
			return brokerErr
		}
	}

	return &BrokerError{
		Code:       CodePermanentHTTP,
		Message:    "broker rejected the request",
		StatusCode: resp.StatusCode,
	}
}
