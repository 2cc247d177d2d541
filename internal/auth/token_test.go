package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.Issue("u123", domain.RolePatient)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.SubjectID)
	assert.Equal(t, domain.RolePatient, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.Issue("u123", domain.RoleDoctor)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// Sign an already-expired token with the manager's secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SubjectID: "u123",
		Role:      domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := tm.Verify(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, token := range []string{"", "not-a-token", "a.b"} {
		claims, err := tm.Verify(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenRequiresExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// Correctly signed but carries no exp claim.
	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SubjectID: "u123",
		Role:      domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "u123",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	tokenStr, err := eternal.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := tm.Verify(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRejectsUnexpectedSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		SubjectID: "u123",
		Role:      domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := tm.Verify(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
