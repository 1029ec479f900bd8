package broker_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/DanielPopoola/broker-gateway/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://broker.test/service"

type staticProvider struct {
	endpoint string
	err      error
}

func (p staticProvider) GetCredentials(context.Context) (broker.Credentials, error) {
	return testCreds, nil
}

func (p staticProvider) GetEndpoint(broker.ServiceID) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.endpoint, nil
}

// sleepRecorder replaces the backoff sleep and remembers each requested delay.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, cache broker.Cache, transport broker.Transport, sleeper *sleepRecorder) *broker.Client {
	t.Helper()
	return broker.New(
		staticProvider{endpoint: testEndpoint},
		staticProvider{endpoint: testEndpoint},
		cache,
		transport,
		testLogger(),
		broker.WithSleep(sleeper.sleep),
	)
}

func connectionRefused() error {
	return fmt.Errorf("error making request: %w", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED})
}

func TestClient_Request_CacheHitSkipsNetwork(t *testing.T) {
	cache := mocks.NewMockCache(t)
	transport := mocks.NewMockTransport(t)
	sleeper := &sleepRecorder{}
	client := newTestClient(t, cache, transport, sleeper)

	cached := broker.Result{Service: broker.PersonLookup, Person: &broker.PersonResult{CPR: "0101701234", FirstName: "Jane"}}
	params := broker.NewParameters("cpr", "0101701234")
	key := broker.CacheKey(nil, broker.PersonLookup, broker.OperationPersonLookup, params)

	cache.EXPECT().
		Get(mock.Anything, key).
		Return(broker.CachedEntry{Result: cached, StoredAt: time.Now(), TTL: time.Hour}, true, nil).
		Once()

	result, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup, params, broker.RequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, cached, result)
	transport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClient_Request_BypassCacheNeverReadsOrWrites(t *testing.T) {
	cache := mocks.NewMockCache(t)
	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, cache, transport, &sleepRecorder{})

	transport.EXPECT().
		Post(mock.Anything, testEndpoint, broker.OperationPersonLookup, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("Jane", "Doe")}, nil).
		Once()

	result, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{BypassCache: true})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.Person.FullName)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClient_Request_MissStoresWithRequestedTTL(t *testing.T) {
	cache := mocks.NewMockCache(t)
	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, cache, transport, &sleepRecorder{})

	params := broker.NewParameters("cvr", "12345678")
	key := broker.CacheKey(nil, broker.CompanyLookup, broker.OperationCompanyLookup, params)

	cache.EXPECT().Get(mock.Anything, key).Return(broker.CachedEntry{}, false, nil).Once()
	transport.EXPECT().
		Post(mock.Anything, testEndpoint, broker.OperationCompanyLookup, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: companyResponse()}, nil).
		Once()
	cache.EXPECT().
		Set(mock.Anything, key, mock.MatchedBy(func(r broker.Result) bool {
			return r.Company != nil && r.Company.CVR == "12345678"
		}), 5*time.Minute).
		Return(nil).
		Once()

	result, err := client.Request(context.Background(), broker.CompanyLookup, broker.OperationCompanyLookup, params,
		broker.RequestOptions{CacheTTL: 5 * time.Minute})

	require.NoError(t, err)
	assert.Equal(t, "Aarhus Kommune", result.Company.Name)
}

func TestClient_Request_DefaultTTL(t *testing.T) {
	cache := mocks.NewMockCache(t)
	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, cache, transport, &sleepRecorder{})

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(broker.CachedEntry{}, false, nil).Once()
	transport.EXPECT().
		Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("Jane", "Doe")}, nil).
		Once()
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, 900*time.Second).Return(nil).Once()

	_, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	require.NoError(t, err)
}

func TestClient_Request_CacheFailuresFallBackToBroker(t *testing.T) {
	tests := []struct {
		name  string
		entry broker.CachedEntry
		found bool
		err   error
	}{
		{name: "backend error", err: errors.New("redis: connection refused")},
		{
			name:  "wrong payload shape",
			entry: broker.CachedEntry{Result: broker.Result{Service: broker.PersonLookup, Company: &broker.CompanyResult{Name: "x"}}, StoredAt: time.Now(), TTL: time.Hour},
			found: true,
		},
		{
			name:  "entry for another service",
			entry: broker.CachedEntry{Result: broker.Result{Service: broker.CompanyLookup, Company: &broker.CompanyResult{Name: "x"}}, StoredAt: time.Now(), TTL: time.Hour},
			found: true,
		},
		{
			name:  "logically expired",
			entry: broker.CachedEntry{Result: broker.Result{Service: broker.PersonLookup, Person: &broker.PersonResult{FirstName: "Old"}}, StoredAt: time.Now().Add(-2 * time.Hour), TTL: time.Hour},
			found: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cache := mocks.NewMockCache(t)
			transport := mocks.NewMockTransport(t)
			client := newTestClient(t, cache, transport, &sleepRecorder{})

			cache.EXPECT().Get(mock.Anything, mock.Anything).Return(tc.entry, tc.found, tc.err).Once()
			transport.EXPECT().
				Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("Jane", "Doe")}, nil).
				Once()
			cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()

			result, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
				broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

			require.NoError(t, err)
			assert.Equal(t, "Jane", result.Person.FirstName)
		})
	}
}

func TestClient_Request_RetriesConnectionFailureOnce(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	sleeper := &sleepRecorder{}
	client := newTestClient(t, nil, transport, sleeper)

	transport.EXPECT().
		Post(mock.Anything, testEndpoint, broker.OperationPersonLookup, mock.Anything).
		Return(nil, connectionRefused()).
		Once()
	transport.EXPECT().
		Post(mock.Anything, testEndpoint, broker.OperationPersonLookup, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("Jane", "Doe")}, nil).
		Once()

	result, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Jane", result.Person.FirstName)
	assert.Equal(t, []time.Duration{2 * time.Second}, sleeper.delays)
	transport.AssertNumberOfCalls(t, "Post", 2)
}

func TestClient_Request_FaultOn500IsNotRetried(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	sleeper := &sleepRecorder{}
	client := newTestClient(t, nil, transport, sleeper)

	transport.EXPECT().
		Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusInternalServerError, Body: faultResponse("Ugyldigt CPR")}, nil).
		Once()

	_, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{BypassCache: true})

	require.Error(t, err)
	brokerErr, ok := broker.IsBrokerError(err)
	require.True(t, ok)
	assert.False(t, brokerErr.Retryable)
	assert.Equal(t, broker.CodeApplicationFault, brokerErr.Code)
	assert.Equal(t, http.StatusInternalServerError, brokerErr.StatusCode)
	assert.Equal(t, "Ugyldigt CPR", brokerErr.Message)
	assert.Equal(t, broker.PersonLookup, brokerErr.Service)
	assert.Equal(t, broker.OperationPersonLookup, brokerErr.Operation)
	assert.Equal(t, 1, brokerErr.Attempts)
	assert.False(t, brokerErr.Exhausted())
	assert.Empty(t, sleeper.delays)
	transport.AssertNumberOfCalls(t, "Post", 1)
}

func TestClient_Request_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		body      []byte
		code      broker.ErrorCode
		retryable bool
		calls     int
	}{
		{http.StatusRequestTimeout, nil, broker.CodeTransientHTTP, true, 3},
		{http.StatusServiceUnavailable, faultResponse("maintenance"), broker.CodeTransientHTTP, true, 3},
		{http.StatusGatewayTimeout, []byte("<html>gateway timeout</html>"), broker.CodeTransientHTTP, true, 3},
		{http.StatusBadGateway, []byte("bad gateway"), broker.CodePermanentHTTP, false, 1},
		{http.StatusNotFound, nil, broker.CodePermanentHTTP, false, 1},
		{http.StatusUnauthorized, faultResponse("access denied"), broker.CodeApplicationFault, false, 1},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			transport := mocks.NewMockTransport(t)
			sleeper := &sleepRecorder{}
			client := newTestClient(t, nil, transport, sleeper)

			transport.EXPECT().
				Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(&broker.Response{StatusCode: tc.status, Body: tc.body}, nil).
				Times(tc.calls)

			_, err := client.Request(context.Background(), broker.CompanyLookup, broker.OperationCompanyLookup,
				broker.NewParameters("cvr", "12345678"), broker.RequestOptions{})

			brokerErr, ok := broker.IsBrokerError(err)
			require.True(t, ok)
			assert.Equal(t, tc.code, brokerErr.Code)
			assert.Equal(t, tc.retryable, brokerErr.Retryable)
			assert.Equal(t, tc.status, brokerErr.StatusCode)
			assert.Equal(t, tc.calls, brokerErr.Attempts)
			assert.Equal(t, tc.retryable, brokerErr.Exhausted())
			if tc.retryable {
				assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeper.delays)
			}
		})
	}
}

func TestClient_Request_MalformedSuccessBodyIsNotRetried(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, nil, transport, &sleepRecorder{})

	transport.EXPECT().
		Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: []byte("<Envelope><Header/></Envelope>")}, nil).
		Once()

	_, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	assert.ErrorIs(t, err, broker.ErrMalformedResponse)
}

func TestClient_Request_InvalidArgumentsFailFast(t *testing.T) {
	t.Run("unknown service", func(t *testing.T) {
		transport := mocks.NewMockTransport(t)
		client := newTestClient(t, nil, transport, &sleepRecorder{})

		_, err := client.Request(context.Background(), broker.ServiceID("Unknown"), "op", broker.NewParameters(), broker.RequestOptions{})

		assert.ErrorIs(t, err, broker.ErrInvalidArgument)
	})

	t.Run("bad parameter name", func(t *testing.T) {
		transport := mocks.NewMockTransport(t)
		client := newTestClient(t, nil, transport, &sleepRecorder{})

		_, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
			broker.NewParameters("<cpr>", "1"), broker.RequestOptions{BypassCache: true})

		assert.ErrorIs(t, err, broker.ErrInvalidArgument)
	})

	t.Run("endpoint not resolvable", func(t *testing.T) {
		transport := mocks.NewMockTransport(t)
		client := broker.New(
			staticProvider{}, staticProvider{err: errors.New("no endpoint for tenant")},
			nil, transport, testLogger(),
		)

		_, err := client.Request(context.Background(), broker.DigitalMail, broker.OperationSendMessage,
			broker.NewParameters("RecipientCPR", "0101701234"), broker.RequestOptions{})

		assert.ErrorIs(t, err, broker.ErrInvalidArgument)
		assert.ErrorContains(t, err, "no endpoint for tenant")
	})
}

func TestClient_Request_CancelledDuringBackoff(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	ctx, cancel := context.WithCancel(context.Background())

	client := broker.New(
		staticProvider{endpoint: testEndpoint}, staticProvider{endpoint: testEndpoint},
		nil, transport, testLogger(),
		broker.WithSleep(func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}),
	)

	transport.EXPECT().
		Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, connectionRefused()).
		Once()

	_, err := client.Request(ctx, broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	brokerErr, _ := broker.IsBrokerError(err)
	assert.False(t, brokerErr.Retryable)
}

func TestClient_Request_PersonEndToEnd(t *testing.T) {
	var gotHeaders http.Header
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/soap+xml")
		_, _ = w.Write(personResponse("Jane", "Doe"))
	}))
	defer server.Close()

	client := broker.New(
		staticProvider{endpoint: server.URL}, staticProvider{endpoint: server.URL},
		nil, broker.NewHTTPTransport(broker.HTTPTransportConfig{}), testLogger(),
	)

	result, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, broker.PersonResult{
		CPR:        "0101701234",
		FirstName:  "Jane",
		LastName:   "Doe",
		FullName:   "Jane Doe",
		Address:    "Viborgvej 2",
		PostalCode: "8000",
		City:       "Aarhus C",
	}, *result.Person)

	assert.Equal(t, "application/soap+xml; charset=utf-8", gotHeaders.Get("Content-Type"))
	assert.Equal(t, broker.OperationPersonLookup, gotHeaders.Get("SOAPAction"))
	assert.Equal(t, "0101701234", elementTexts(t, gotBody, "PersonLookupRequest")["cpr"])
}

func TestClient_LookupCompany_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(companyResponse())
	}))
	defer server.Close()

	client := broker.New(
		staticProvider{endpoint: server.URL}, staticProvider{endpoint: server.URL},
		nil, broker.NewHTTPTransport(broker.HTTPTransportConfig{RateLimit: 100, RateBurst: 10}), testLogger(),
	)

	company, err := client.LookupCompany(context.Background(), "12345678", broker.RequestOptions{})

	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "12345678", company.CVR)
	assert.Equal(t, "Aarhus Kommune", company.Name)
	assert.Equal(t, "ACTIVE", company.Status)
}

func TestClient_LookupPerson_NoRecord(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, nil, transport, &sleepRecorder{})

	transport.EXPECT().
		Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("", "")}, nil).
		Once()

	person, err := client.LookupPerson(context.Background(), "0101701234", broker.RequestOptions{})

	require.NoError(t, err)
	assert.Nil(t, person)
}

func TestClient_SendMessage_EndToEnd(t *testing.T) {
	tests := []struct {
		name   string
		status string
		code   string
		sent   bool
	}{
		{"accepted", "OK", "200", true},
		{"rejected", "REJECTED", "400", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var action string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				action = r.Header.Get("SOAPAction")
				_, _ = w.Write(mailResponse("msg_123456", tc.status, tc.code))
			}))
			defer server.Close()

			cache := mocks.NewMockCache(t)
			client := broker.New(
				staticProvider{endpoint: server.URL}, staticProvider{endpoint: server.URL},
				cache, broker.NewHTTPTransport(broker.HTTPTransportConfig{}), testLogger(),
			)

			res, err := client.SendMessage(context.Background(), broker.MailMessage{
				RecipientCPR: "0101701234",
				Subject:      "Afgørelse",
				Body:         "Se vedhæftede",
			})

			require.NoError(t, err)
			assert.Equal(t, "msg_123456", res.MessageID)
			assert.Equal(t, tc.sent, res.Sent)
			assert.Equal(t, broker.OperationSendMessage, action)
		})
	}
}

type countingObserver struct {
	mu       sync.Mutex
	attempts []string
	hits     int
	misses   int
	results  []broker.ErrorCode
}

func (o *countingObserver) ObserveAttempt(_ broker.ServiceID, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts = append(o.attempts, outcome)
}

func (o *countingObserver) ObserveCache(_ broker.ServiceID, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func (o *countingObserver) ObserveResult(_ broker.ServiceID, code broker.ErrorCode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, code)
}

func TestClient_Request_ReportsToObserver(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cache := mocks.NewMockCache(t)
	observer := &countingObserver{}
	client := broker.New(
		staticProvider{endpoint: testEndpoint}, staticProvider{endpoint: testEndpoint},
		cache, transport, testLogger(),
		broker.WithSleep((&sleepRecorder{}).sleep),
		broker.WithObserver(observer),
		broker.WithCacheKeySecret([]byte("k")),
	)

	cache.EXPECT().Get(mock.Anything, mock.Anything).Return(broker.CachedEntry{}, false, nil).Once()
	cache.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	transport.EXPECT().Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusServiceUnavailable}, nil).Once()
	transport.EXPECT().Post(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: personResponse("Jane", "Doe")}, nil).Once()

	_, err := client.Request(context.Background(), broker.PersonLookup, broker.OperationPersonLookup,
		broker.NewParameters("cpr", "0101701234"), broker.RequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"transient_http_error", "success"}, observer.attempts)
	assert.Equal(t, 1, observer.misses)
	assert.Equal(t, []broker.ErrorCode{""}, observer.results)
}

// mapCache is a minimal in-process cache that keeps what it is given.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]broker.CachedEntry
}

func (c *mapCache) Get(_ context.Context, key string) (broker.CachedEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, result broker.Result, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = broker.CachedEntry{Result: result, StoredAt: time.Now(), TTL: ttl}
	return nil
}

func TestClient_LookupPerson_ForeignResponseIsCachedAsNoRecord(t *testing.T) {
	cache := &mapCache{entries: map[string]broker.CachedEntry{}}
	transport := mocks.NewMockTransport(t)
	observer := &countingObserver{}
	client := broker.New(
		staticProvider{endpoint: testEndpoint}, staticProvider{endpoint: testEndpoint},
		cache, transport, testLogger(), broker.WithObserver(observer),
	)

	transport.EXPECT().
		Post(mock.Anything, testEndpoint, broker.OperationPersonLookup, mock.Anything).
		Return(&broker.Response{StatusCode: http.StatusOK, Body: companyResponse()}, nil).
		Once()

	for i := 0; i < 2; i++ {
		person, err := client.LookupPerson(context.Background(), "0101701234", broker.RequestOptions{})
		require.NoError(t, err)
		assert.Nil(t, person)
	}

	require.Len(t, cache.entries, 1)
	for _, e := range cache.entries {
		assert.Equal(t, broker.PersonLookup, e.Result.Service)
		assert.Nil(t, e.Result.Company)
	}
	assert.Equal(t, 1, observer.hits)
	assert.Equal(t, 1, observer.misses)
}
