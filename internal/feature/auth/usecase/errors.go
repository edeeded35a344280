// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when attempting to create a user with a username that already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when the username/password pair does not match.
	// The same value is returned for unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidUsername is returned when the username fails the minimum-shape check.
	ErrInvalidUsername = errors.New("username must be at least 3 characters")

	// ErrWeakPassword is returned when the password does not satisfy the complexity policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters and include uppercase, lowercase, and a number")
)
