package gateways_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleaning/internal/adapters/out/gateways"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHTTPEmailGateway_Send(t *testing.T) {
	var received map[string]string
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	gateway, err := gateways.NewHTTPEmailGateway(server.URL, "key-123", "noreply@example.com", false, discardLogger())
	require.NoError(t, err)

	err = gateway.Send(t.Context(), "client@example.com", "Cleaning started", "<p>hello</p>")

	require.NoError(t, err)
	assert.Equal(t, "Bearer key-123", authHeader)
	assert.Equal(t, "client@example.com", received["to"])
	assert.Equal(t, "noreply@example.com", received["from"])
	assert.Equal(t, "Cleaning started", received["subject"])
}

func TestHTTPEmailGateway_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	gateway, err := gateways.NewHTTPEmailGateway(server.URL, "key-123", "noreply@example.com", false, discardLogger())
	require.NoError(t, err)

	err = gateway.Send(t.Context(), "client@example.com", "subject", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHTTPEmailGateway_MissingEndpoint(t *testing.T) {
	_, err := gateways.NewHTTPEmailGateway("", "key", "from", false, discardLogger())
	require.ErrorIs(t, err, gateways.ErrMissingEmailEndpoint)
}

func TestHTTPEmailGateway_MockModeSkipsProvider(t *testing.T) {
	gateway, err := gateways.NewHTTPEmailGateway("", "", "", true, discardLogger())
	require.NoError(t, err)

	require.NoError(t, gateway.Send(t.Context(), "client@example.com", "subject", "body"))
}

func TestHTTPSMSGateway_Send(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway, err := gateways.NewHTTPSMSGateway(server.URL, "key-123", "CleanCo", false, discardLogger())
	require.NoError(t, err)

	phone, err := kernel.NewPhoneNumber("+79261234567")
	require.NoError(t, err)

	err = gateway.Send(t.Context(), phone, "Your cleaner is on the way")

	require.NoError(t, err)
	assert.Equal(t, "+79261234567", received["to"])
	assert.Equal(t, "CleanCo", received["from"])
	assert.Equal(t, "Your cleaner is on the way", received["text"])
}

func TestHTTPSMSGateway_InvalidNumberNeverReachesProvider(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway, err := gateways.NewHTTPSMSGateway(server.URL, "key-123", "CleanCo", false, discardLogger())
	require.NoError(t, err)

	err = gateway.Send(t.Context(), kernel.PhoneNumber{}, "text")

	require.Error(t, err)
	assert.False(t, called)
}

func TestHTTPPushGateway_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway, err := gateways.NewHTTPPushGateway(server.URL, "key-123", false, discardLogger())
	require.NoError(t, err)

	err = gateway.Send(t.Context(), []string{"tok-1", "tok-2"}, "Cleaning started", "body", map[string]string{"jobId": "abc"})

	require.NoError(t, err)
	assert.Len(t, received["tokens"], 2)
	assert.Equal(t, "Cleaning started", received["title"])
}

func TestHTTPPushGateway_NoTokens(t *testing.T) {
	gateway, err := gateways.NewHTTPPushGateway("http://localhost:1", "key", false, discardLogger())
	require.NoError(t, err)

	err = gateway.Send(t.Context(), nil, "title", "body", nil)

	require.ErrorIs(t, err, gateways.ErrNoDeviceTokens)
}
