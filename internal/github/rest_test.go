package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/v3/user" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer server.Close()

	httpClient := NewHTTPClient(context.Background(), ClientOptions{Token: "test-token"})
	login, err := VerifyToken(context.Background(), httpClient, server.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
	assert.Equal(t, "Bearer test-token", auth)
}

func TestVerifyTokenUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	httpClient := NewHTTPClient(context.Background(), ClientOptions{Token: "bad"})
	_, err := VerifyToken(context.Background(), httpClient, server.URL+"/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestRESTEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.github.com/", RESTEndpoint(""))
	assert.Equal(t, "https://github.example.com/api/v3/", RESTEndpoint("github.example.com"))
}
