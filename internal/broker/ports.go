package broker

import (
	"context"
	"time"
)

// Credentials is the username/password pair sent in the security header.
type Credentials struct {
	Username string
	Password string
}

// CredentialProvider supplies the current tenant's Broker credentials.
type CredentialProvider interface {
	GetCredentials(ctx context.Context) (Credentials, error)
}

// EndpointProvider resolves the Broker URL for a service.
type EndpointProvider interface {
	GetEndpoint(service ServiceID) (string, error)
}

// CachedEntry is a previously decoded result together with its lifetime.
type CachedEntry struct {
	Result   Result        `json:"result"`
	StoredAt time.Time     `json:"stored_at"`
	TTL      time.Duration `json:"ttl"`
}

// Expired reports whether the entry is past StoredAt+TTL at now.
func (e CachedEntry) Expired(now time.Time) bool {
	return now.After(e.StoredAt.Add(e.TTL))
}

// Cache is the response cache backend. Implementations must be safe for
// concurrent use. Errors are treated as misses by the client.
type Cache interface {
	Get(ctx context.Context, key string) (CachedEntry, bool, error)
	Set(ctx context.Context, key string, result Result, ttl time.Duration) error
}

// Response is what the transport got back from the Broker.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport posts an envelope to the Broker. A non-nil error means no HTTP
// response was received.
type Transport interface {
	Post(ctx context.Context, url, soapAction string, body []byte) (*Response, error)
}

// Observer receives call outcomes, typically for metrics.
type Observer interface {
	ObserveAttempt(service ServiceID, outcome string, duration time.Duration)
	ObserveCache(service ServiceID, hit bool)
	ObserveResult(service ServiceID, code ErrorCode)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(ServiceID, string, time.Duration) {}
func (nopObserver) ObserveCache(ServiceID, bool)                    {}
func (nopObserver) ObserveResult(ServiceID, ErrorCode)              {}
