package services

import "errors"

var (
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidPassword is returned when a password fails validation.
	ErrInvalidPassword = errors.New("password cannot be empty")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTimerNotFound covers a timer that does not exist, is owned by a
	// different user, or is already stopped. The three cases are deliberately
	// indistinguishable so that ownership is never leaked.
	ErrTimerNotFound = errors.New("timer not found")
)
