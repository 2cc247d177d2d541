package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/care-portal-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	claimsKey    = "auth_claims"
)

// AuthMiddleware runs the per-request authentication pipeline:
// credential extraction, token verification (or session lookup),
// identity resolution, principal attachment. Stages run strictly in
// order; a failed stage terminates the request.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver *IdentityResolver
	sessions *SessionStore
	cookies  *CookieCodec
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver *IdentityResolver, sessions *SessionStore, cookies *CookieCodec) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver, sessions: sessions, cookies: cookies}
}

// Handle enforces authentication for protected routes. A request with
// no credential is rejected before any store access.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	claims, err := m.extractClaims(c)
	if err != nil {
		return err
	}

	principal, err := m.resolver.Resolve(c.UserContext(), claims)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingClaims), errors.Is(err, ErrAccountNotFound):
			return apperrors.NewAccessDenied("Access denied")
		default:
			return apperrors.NewStoreUnavailable(err)
		}
	}

	c.Locals(claimsKey, claims)
	c.Locals(principalKey, principal)
	return c.Next()
}

// HandleClaims verifies the bearer token but skips identity resolution.
// For routes that accept any valid token without touching the account
// store.
func (m *AuthMiddleware) HandleClaims(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return apperrors.NewTokenMissing()
	}
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewTokenInvalid()
	}
	c.Locals(claimsKey, claims)
	return c.Next()
}

// extractClaims pulls claims out of the bearer token or, failing that,
// the session cookie.
func (m *AuthMiddleware) extractClaims(c *fiber.Ctx) (*Claims, error) {
	if token, ok := bearerToken(c); ok {
		claims, err := m.tokens.Verify(token)
		if err != nil {
			return nil, apperrors.NewTokenInvalid()
		}
		return claims, nil
	}

	if cookie := c.Cookies(SessionCookieName); cookie != "" && m.sessions != nil && m.cookies != nil {
		sessionID, ok := m.cookies.Decode(cookie)
		if !ok {
			return nil, apperrors.NewTokenMissing()
		}
		session, err := m.sessions.Get(c.UserContext(), sessionID)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return nil, apperrors.NewTokenMissing()
			}
			return nil, apperrors.NewStoreUnavailable(err)
		}
		return &Claims{SubjectID: session.AccountID, Role: session.Role}, nil
	}

	return nil, apperrors.NewTokenMissing()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}

// ClaimsFromContext retrieves verified claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
