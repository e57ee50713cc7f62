package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError reports a malformed or missing input field.
// Always client-recoverable.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account. PasswordHash never leaves the
// repository/usecase layers; handlers serialize their own response types.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	Favorites   []string
	LastWatched []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
