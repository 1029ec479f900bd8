package broker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultTotalTimeout   = 30 * time.Second

	contentTypeSOAP = "application/soap+xml; charset=utf-8"
	maxResponseSize = 4 << 20
)

// HTTPTransportConfig configures HTTPTransport. Zero values fall back to defaults;
// a zero RateLimit disables throttling.
type HTTPTransportConfig struct {
	ConnectTimeout time.Duration
	TotalTimeout   time.Duration
	RateLimit      float64
	RateBurst      int
}

// HTTPTransport posts SOAP envelopes over HTTP(S), throttled so a shared
// government endpoint is not flooded.
type HTTPTransport struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.TotalTimeout <= 0 {
		cfg.TotalTimeout = DefaultTotalTimeout
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout

	t := &HTTPTransport{
		httpClient: &http.Client{
			Timeout:   cfg.TotalTimeout,
			Transport: transport,
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return t
}

func (t *HTTPTransport) Post(ctx context.Context, url, soapAction string, body []byte) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeSOAP)
	req.Header.Set("SOAPAction", soapAction)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
