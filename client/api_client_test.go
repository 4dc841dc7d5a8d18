package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
)

type staticToken string

func (s staticToken) Token() string {
	return string(s)
}

func newTestClient(t *testing.T, baseURL string, token string, breaker bool) *APIClient {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAPIClient(
		Options{BaseURL: baseURL, BreakerEnabled: breaker},
		staticToken(token),
		trace.NewNoopTracerProvider().Tracer("test"),
		logger,
	)
}

func TestAPIClient_AttachesBearerToken(t *testing.T) {
	var authorization, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		requestID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := newTestClient(t, server.URL, "abc", false).Get(context.Background(), "/profile", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "Bearer abc", authorization)
	assert.NotEmpty(t, requestID)
}

func TestAPIClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	var authorization []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, "", false).Get(context.Background(), "/rental-posts", nil)

	require.NoError(t, err)
	assert.Empty(t, authorization)
}

func TestAPIClient_SendsQueryAndBody(t *testing.T) {
	var query url.Values
	var method string
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		method = r.Method
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&payload)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	apiClient := newTestClient(t, server.URL, "", false)

	_, err := apiClient.Get(context.Background(), "/rental-posts", domain.Filters{"status": "", "min_price": "100"}.Values())
	require.NoError(t, err)
	assert.Equal(t, "100", query.Get("min_price"))
	_, hasStatus := query["status"]
	assert.False(t, hasStatus)

	_, err = apiClient.Put(context.Background(), "/rental-posts/approve", map[string]string{"post_id": "p1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "p1", payload["post_id"])
}

func TestAPIClient_ServerErrorCarriesMessageAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email already exists"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, "", false).Post(context.Background(), "/auth/tenant/register", map[string]string{})

	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, "Email already exists", MessageOf(err, "fallback"))
}

func TestAPIClient_ServerErrorWithoutMessageUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, "", false).Delete(context.Background(), "/contracts/1")

	require.Error(t, err)
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestAPIClient_TransportFailureIsNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(t, baseURL, "", false).Get(context.Background(), "/profile", nil)

	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, "Failed to fetch profile", MessageOf(err, "Failed to fetch profile"))
}

func TestAPIClient_BreakerOpensAfterConsecutiveServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	apiClient := newTestClient(t, server.URL, "", true)

	for i := 0; i < 3; i++ {
		_, err := apiClient.Get(context.Background(), "/profile", nil)
		require.Error(t, err)
	}
	_, err := apiClient.Get(context.Background(), "/profile", nil)

	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestAPIClient_BreakerIgnoresClientErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	apiClient := newTestClient(t, server.URL, "", true)

	for i := 0; i < 5; i++ {
		_, err := apiClient.Get(context.Background(), "/rental-posts/missing", nil)
		require.Error(t, err)
		assert.Equal(t, KindServer, KindOf(err))
	}

	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}

func TestKindOf_Validation(t *testing.T) {
	err := &domain.ValidationError{Message: "Invalid email format"}

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Invalid email format", MessageOf(err, "fallback"))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
