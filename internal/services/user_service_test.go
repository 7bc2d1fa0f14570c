package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.CreateUser("alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("alice", "secret")
	require.NoError(t, err)

	_, err = svc.CreateUser("alice", "other")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestCreateUserEmptyPassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("alice", "")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthenticateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	created, err := svc.CreateUser("alice", "secret")
	require.NoError(t, err)

	user, err := svc.AuthenticateUser("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticateUserUniformFailure(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("alice", "secret")
	require.NoError(t, err)

	// Wrong password and unknown username must be indistinguishable.
	_, wrongPassword := svc.AuthenticateUser("alice", "nope")
	_, unknownUser := svc.AuthenticateUser("bob", "secret")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
