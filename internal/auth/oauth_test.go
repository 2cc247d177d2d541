package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProviderFixture(t *testing.T, userinfo map[string]string) *HTTPIdentityProvider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "at-123"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(userinfo)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewHTTPIdentityProvider(srv.URL+"/token", srv.URL+"/userinfo", "client-1", "secret", "http://localhost/cb")
}

func TestExchangeReturnsIdentity(t *testing.T) {
	provider := newProviderFixture(t, map[string]string{
		"sub":   "ext-1",
		"email": "ada@example.com",
		"name":  "Ada",
	})

	identity, err := provider.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", identity.Subject)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada", identity.Name)
}

func TestExchangeRejectsBadCode(t *testing.T) {
	provider := newProviderFixture(t, map[string]string{"email": "ada@example.com"})

	identity, err := provider.Exchange(context.Background(), "bad-code")
	assert.Nil(t, identity)
	assert.Error(t, err)
}

func TestExchangeRequiresEmail(t *testing.T) {
	provider := newProviderFixture(t, map[string]string{"sub": "ext-1"})

	identity, err := provider.Exchange(context.Background(), "good-code")
	assert.Nil(t, identity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}
