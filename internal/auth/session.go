package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "cp_session"

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-held record behind an OAuth-originated login.
// The browser only ever sees the signed session id.
type Session struct {
	ID        string      `json:"id"`
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SessionStore keeps session records in Redis with a TTL matching the
// session expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds the store.
func NewSessionStore(client *redis.Client, ttlMinutes int) *SessionStore {
	if ttlMinutes <= 0 {
		ttlMinutes = 720
	}
	return &SessionStore{client: client, ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Create persists a new session record for the account.
func (s *SessionStore) Create(ctx context.Context, accountID string, role domain.Role) (*Session, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by id. Expired sessions vanish via the Redis TTL;
// a stale record that outlived its expiry is treated as not found.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// CookieCodec signs session ids so the cookie cannot be forged or
// swapped for another session id without the session secret.
type CookieCodec struct {
	secret []byte
}

// NewCookieCodec builds a codec keyed by the process-wide session secret.
func NewCookieCodec(secret string) *CookieCodec {
	return &CookieCodec{secret: []byte(secret)}
}

// Encode returns the cookie value for a session id.
func (c *CookieCodec) Encode(sessionID string) string {
	return sessionID + "." + c.sign(sessionID)
}

// Decode validates a cookie value and returns the embedded session id.
func (c *CookieCodec) Decode(value string) (string, bool) {
	idx := strings.LastIndex(value, ".")
	if idx <= 0 {
		return "", false
	}
	sessionID, signature := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(signature), []byte(c.sign(sessionID))) {
		return "", false
	}
	return sessionID, true
}

func (c *CookieCodec) sign(sessionID string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
