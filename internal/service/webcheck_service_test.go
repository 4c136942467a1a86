package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebCheckTest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "unit", r.Header.Get("X-Test"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	svc := NewWebCheckService()
	result, err := svc.Test(context.Background(), URLTestRequest{
		URL:        server.URL,
		Method:     "post",
		Headers:    map[string]string{"X-Test": "unit"},
		Parameters: map[string]string{"page": "1"},
		Body:       `{"payload":1}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, result.Method)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, `{"ok":true}`, result.Body)
	assert.GreaterOrEqual(t, result.ResponseTimeMs, int64(0))
}

func TestWebCheckTestDefaultsToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
	}))
	defer server.Close()

	svc := NewWebCheckService()
	result, err := svc.Test(context.Background(), URLTestRequest{URL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, result.Method)
}

func TestWebCheckTestCapsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 128<<10)))
	}))
	defer server.Close()

	svc := NewWebCheckService()
	result, err := svc.Test(context.Background(), URLTestRequest{URL: server.URL})
	require.NoError(t, err)
	assert.Len(t, result.Body, 64<<10)
}

func TestCheckSecurityMissingHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Server", "unit/1.0")
	}))
	defer server.Close()

	svc := NewWebCheckService()
	result := svc.CheckSecurity(context.Background(), server.URL)

	// http URL (-20), four missing headers (-40), Server header (-5).
	assert.False(t, result.HTTPS)
	assert.Equal(t, 35, result.SecurityScore)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.NotEmpty(t, result.Recommendations)
}

func TestCheckSecurityWithHardenedHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", "max-age=63072000")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'self'")
	}))
	defer server.Close()

	svc := NewWebCheckService()
	result := svc.CheckSecurity(context.Background(), server.URL)

	// Only the missing https deduction applies.
	assert.Equal(t, 80, result.SecurityScore)
}

func TestCheckSecurityUnreachable(t *testing.T) {
	svc := NewWebCheckService()
	result := svc.CheckSecurity(context.Background(), "http://127.0.0.1:1/unreachable")

	assert.Equal(t, 0, result.SecurityScore)
	assert.NotEmpty(t, result.Recommendations)
}

func TestAppendParameters(t *testing.T) {
	assert.Equal(t, "http://x.test", appendParameters("http://x.test", nil))
	assert.Equal(t, "http://x.test?a=1", appendParameters("http://x.test", map[string]string{"a": "1"}))
	assert.Equal(t, "http://x.test?a=1&b=2", appendParameters("http://x.test?a=1", map[string]string{"b": "2"}))
}
