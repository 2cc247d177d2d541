package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/dto"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/config"
	"github.com/spec-kit/care-portal-service/internal/service"
)

// SessionsHandler covers the OAuth session flow and token introspection.
type SessionsHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieCodec
	oauth   config.OAuthConfig
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(authService *service.AuthService, cookies *auth.CookieCodec, oauthCfg config.OAuthConfig) *SessionsHandler {
	return &SessionsHandler{auth: authService, cookies: cookies, oauth: oauthCfg}
}

// OAuthLogin handles GET /auth/oauth/login by redirecting to the
// external identity provider.
func (h *SessionsHandler) OAuthLogin(c *fiber.Ctx) error {
	if h.oauth.AuthorizeURL == "" {
		return fiber.NewError(http.StatusNotImplemented, "oauth login not configured")
	}

	query := url.Values{}
	query.Set("client_id", h.oauth.ClientID)
	query.Set("redirect_uri", h.oauth.RedirectURL)
	query.Set("response_type", "code")
	return c.Redirect(h.oauth.AuthorizeURL+"?"+query.Encode(), http.StatusFound)
}

// OAuthCallback handles GET /auth/oauth/callback. On success a
// server-side session is created and the signed session cookie set.
func (h *SessionsHandler) OAuthCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(http.StatusBadRequest, "code query parameter required")
	}

	patient, session, err := h.auth.OAuthCallback(c.UserContext(), code)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "oauth login failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    h.cookies.Encode(session.ID),
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"patient": fiber.Map{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
			},
			"session": fiber.Map{
				"expires_at": session.ExpiresAt,
			},
		},
	})
}

// Logout handles POST /auth/logout. Destroys the session behind the
// cookie, if any, and clears the cookie. Idempotent.
func (h *SessionsHandler) Logout(c *fiber.Ctx) error {
	if cookie := c.Cookies(auth.SessionCookieName); cookie != "" {
		if sessionID, ok := h.cookies.Decode(cookie); ok {
			if err := h.auth.Logout(c.UserContext(), sessionID); err != nil {
				return err
			}
		}
	}

	c.ClearCookie(auth.SessionCookieName)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Introspect handles GET /auth/token. It runs behind the claims-only
// pipeline stage: any valid token is accepted without an account lookup.
func (h *SessionsHandler) Introspect(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Invalid or expired token")
	}

	return c.JSON(fiber.Map{
		"data": dto.TokenIntrospection{
			SubjectID: claims.SubjectID,
			Role:      string(claims.Role),
			ExpiresAt: claims.ExpiresAt.Time,
		},
	})
}
