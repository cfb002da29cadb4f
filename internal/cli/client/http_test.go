package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIClient_EnvOverridesDefault(t *testing.T) {
	t.Setenv(envAPIURL, "http://example.test:9999")
	c := NewAPIClient(nil)
	assert.Equal(t, "http://example.test:9999", c.baseURL)
}

func TestNewAPIClient_DefaultURL(t *testing.T) {
	t.Setenv(envAPIURL, "")
	c := NewAPIClient(nil)
	assert.Equal(t, defaultAPIURL, c.baseURL)
}

func TestPost_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"answer":  "hi there",
		})
	}))
	defer srv.Close()

	t.Setenv(envAPIURL, srv.URL)
	c := NewAPIClient(nil)

	var resp chatResponse
	require.NoError(t, c.Post("/api/chat", chatRequest{Message: "hello"}, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "hi there", resp.Answer)
}

func TestPost_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "message cannot be empty"})
	}))
	defer srv.Close()

	t.Setenv(envAPIURL, srv.URL)
	c := NewAPIClient(nil)

	err := c.Post("/api/chat", chatRequest{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "message cannot be empty")
}

func TestGet_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	t.Setenv(envAPIURL, srv.URL)
	c := NewAPIClient(nil)

	err := c.Get("/api/status", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.StatusCode)
}

func TestGet_ConnectionFailure(t *testing.T) {
	t.Setenv(envAPIURL, "http://127.0.0.1:1")
	c := NewAPIClient(nil)

	err := c.Get("/health", nil)
	assert.Error(t, err)
}
