package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/stretchr/testify/require"
)

// FakeBroker answers the three SOAP services the gateway calls.
type FakeBroker struct {
	mu          sync.Mutex
	calls       map[string]int
	mailOutages int
	mailStatus  string
	mailCode    string
}

func NewFakeBroker() *FakeBroker {
	return &FakeBroker{
		calls:      make(map[string]int),
		mailStatus: "OK",
		mailCode:   "200",
	}
}

// FailMail makes the next n SendMessage calls answer 503.
func (b *FakeBroker) FailMail(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mailOutages = n
}

func (b *FakeBroker) RejectMail(status, code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mailStatus, b.mailCode = status, code
}

func (b *FakeBroker) Calls(action string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[action]
}

func (b *FakeBroker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	action := r.Header.Get("SOAPAction")

	b.mu.Lock()
	b.calls[action]++
	outage := action == broker.OperationSendMessage && b.mailOutages > 0
	if outage {
		b.mailOutages--
	}
	status, code := b.mailStatus, b.mailCode
	b.mu.Unlock()

	if outage {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
	switch action {
	case broker.OperationPersonLookup:
		if strings.Contains(string(body), "0000000000") {
			_, _ = w.Write(envelope(fmt.Sprintf(`<p:PersonLookupResponse xmlns:p="%s"/>`, broker.NamespacePersonLookup)))
			return
		}
		_, _ = w.Write(envelope(fmt.Sprintf(`<p:PersonLookupResponse xmlns:p="%s">
  <p:Person>
    <p:FirstName>Mette</p:FirstName>
    <p:LastName>Jensen</p:LastName>
    <p:Address>Banegårdspladsen 1</p:Address>
    <p:PostalCode>8000</p:PostalCode>
    <p:City>Aarhus C</p:City>
  </p:Person>
</p:PersonLookupResponse>`, broker.NamespacePersonLookup)))
	case broker.OperationCompanyLookup:
		_, _ = w.Write(envelope(fmt.Sprintf(`<c:CompanyLookupResponse xmlns:c="%s">
  <c:CompanyName>Eksempel ApS</c:CompanyName>
  <c:Status>ACTIVE</c:Status>
</c:CompanyLookupResponse>`, broker.NamespaceCompanyLookup)))
	case broker.OperationSendMessage:
		_, _ = w.Write(envelope(fmt.Sprintf(`<m:SendMessageResponse xmlns:m="%s">
  <m:MessageID>msg_%d</m:MessageID>
  <m:Status>%s</m:Status>
  <m:StatusCode>%s</m:StatusCode>
</m:SendMessageResponse>`, broker.NamespaceDigitalMail, time.Now().UnixNano(), status, code)))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func envelope(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"><soap:Body>` + body + `</soap:Body></soap:Envelope>`)
}

// TestClient wraps HTTP calls to the gateway
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Response struct {
	Status  int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *TestClient) Get(t *testing.T, path string) Response {
	t.Helper()
	resp, err := c.httpClient.Get(c.baseURL + path)
	require.NoError(t, err)
	return decode(t, resp)
}

func (c *TestClient) Post(t *testing.T, path string, payload any) Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	return decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) Response {
	t.Helper()
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	out.Status = resp.StatusCode
	return out
}
