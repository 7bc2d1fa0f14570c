package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	sessions := NewSessionService(db)

	user, err := users.CreateUser("alice", "secret")
	require.NoError(t, err)

	token, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(token), 64, "token must be long enough to be unguessable")

	resolved, err := sessions.ResolveSession(token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	require.NoError(t, sessions.RevokeSession(token))

	resolved, err = sessions.ResolveSession(token)
	require.NoError(t, err)
	assert.Nil(t, resolved, "revoked token must resolve to no user")
}

func TestSessionTokensAreUnique(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	sessions := NewSessionService(db)

	user, err := users.CreateUser("alice", "secret")
	require.NoError(t, err)

	a, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)
	b, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestResolveSessionUnknownToken(t *testing.T) {
	sessions := NewSessionService(newTestDB(t))

	user, err := sessions.ResolveSession("no-such-token")
	require.NoError(t, err, "an unknown token is not a fault")
	assert.Nil(t, user)
}

func TestRevokeSessionIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	sessions := NewSessionService(db)

	user, err := users.CreateUser("alice", "secret")
	require.NoError(t, err)
	token, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)

	require.NoError(t, sessions.RevokeSession(token))
	require.NoError(t, sessions.RevokeSession(token), "double revoke is a no-op")
	require.NoError(t, sessions.RevokeSession("never-existed"))
}

func TestDeleteSessionsBefore(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	sessions := NewSessionService(db)

	user, err := users.CreateUser("alice", "secret")
	require.NoError(t, err)
	token, err := sessions.CreateSession(user.ID)
	require.NoError(t, err)

	// A cutoff in the past must not touch a fresh session.
	deleted, err := sessions.DeleteSessionsBefore(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = sessions.DeleteSessionsBefore(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	resolved, err := sessions.ResolveSession(token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
