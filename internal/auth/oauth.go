package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ExternalIdentity is the profile the identity provider returns for an
// exchanged authorization code.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityProvider abstracts the external OAuth provider.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// HTTPIdentityProvider talks to a standard OAuth authorization-code
// provider: it trades the code at the token endpoint, then loads the
// profile from the userinfo endpoint.
type HTTPIdentityProvider struct {
	tokenURL     string
	userinfoURL  string
	clientID     string
	clientSecret string
	redirectURL  string
	client       *http.Client
}

// NewHTTPIdentityProvider builds the provider.
func NewHTTPIdentityProvider(tokenURL, userinfoURL, clientID, clientSecret, redirectURL string) *HTTPIdentityProvider {
	return &HTTPIdentityProvider{
		tokenURL:     tokenURL,
		userinfoURL:  userinfoURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Exchange trades an authorization code for the external profile.
func (p *HTTPIdentityProvider) Exchange(ctx context.Context, code string) (*ExternalIdentity, error) {
	accessToken, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return p.fetchUserinfo(ctx, accessToken)
}

func (p *HTTPIdentityProvider) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("redirect_uri", p.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", errors.New("token endpoint returned no access token")
	}
	return payload.AccessToken, nil
}

func (p *HTTPIdentityProvider) fetchUserinfo(ctx context.Context, accessToken string) (*ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, errors.New("userinfo response missing email")
	}
	return &ExternalIdentity{Subject: payload.Subject, Email: payload.Email, Name: payload.Name}, nil
}
