package config

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
)

// StaticProvider serves the Broker account and endpoints straight from configuration.
type StaticProvider struct {
	creds     broker.Credentials
	endpoints map[broker.ServiceID]string
}

func NewStaticProvider(cfg BrokerConfig) *StaticProvider {
	return &StaticProvider{
		creds: broker.Credentials{
			Username: cfg.Username,
			Password: cfg.Password,
		},
		endpoints: map[broker.ServiceID]string{
			broker.PersonLookup:  cfg.PersonLookupURL,
			broker.CompanyLookup: cfg.CompanyLookupURL,
			broker.DigitalMail:   cfg.DigitalMailURL,
		},
	}
}

func (p *StaticProvider) GetCredentials(ctx context.Context) (broker.Credentials, error) {
	if p.creds.Username == "" {
		return broker.Credentials{}, fmt.Errorf("broker username is not configured")
	}
	return p.creds, nil
}

func (p *StaticProvider) GetEndpoint(service broker.ServiceID) (string, error) {
	endpoint, ok := p.endpoints[service]
	if !ok || endpoint == "" {
		return "", fmt.Errorf("no endpoint configured for %s", service)
	}
	return endpoint, nil
}

// TransportConfig maps the broker section onto the HTTP transport settings.
func (c BrokerConfig) TransportConfig() broker.HTTPTransportConfig {
	return broker.HTTPTransportConfig{
		ConnectTimeout: c.ConnectTimeout,
		TotalTimeout:   c.TotalTimeout,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	}
}

func (c RetryConfig) Policy() broker.RetryPolicy {
	return broker.RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		BaseDelay:   c.BaseDelay,
	}
}

// AttemptTimeout is the per-attempt deadline handed to the client.
func (c BrokerConfig) AttemptTimeout() time.Duration {
	return c.TotalTimeout
}
