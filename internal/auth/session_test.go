package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

func newTestStore(t *testing.T, ttlMinutes int) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, ttlMinutes), mr
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, 60)
	ctx := context.Background()

	created, err := store.Create(ctx, "p1", domain.RolePatient)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "p1", created.AccountID)
	assert.Equal(t, domain.RolePatient, created.Role)
	assert.True(t, created.ExpiresAt.After(created.CreatedAt))

	loaded, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.AccountID, loaded.AccountID)
	assert.Equal(t, created.Role, loaded.Role)
}

func TestSessionUnknownID(t *testing.T) {
	store, _ := newTestStore(t, 60)

	session, err := store.Get(context.Background(), "nope")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpiresViaTTL(t *testing.T) {
	store, mr := newTestStore(t, 1)
	ctx := context.Background()

	created, err := store.Create(ctx, "p1", domain.RolePatient)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	session, err := store.Get(ctx, created.ID)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t, 60)
	ctx := context.Background()

	created, err := store.Create(ctx, "d1", domain.RoleDoctor)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))
	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("session-secret")

	value := codec.Encode("abc-123")
	sessionID, ok := codec.Decode(value)
	assert.True(t, ok)
	assert.Equal(t, "abc-123", sessionID)
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec("session-secret")
	other := NewCookieCodec("other-secret")

	value := codec.Encode("abc-123")

	_, ok := codec.Decode("def-456" + value[len("abc-123"):])
	assert.False(t, ok, "swapped session id must not verify")

	_, ok = codec.Decode(other.Encode("abc-123"))
	assert.False(t, ok, "foreign signature must not verify")

	_, ok = codec.Decode("no-signature")
	assert.False(t, ok)

	_, ok = codec.Decode("")
	assert.False(t, ok)
}
