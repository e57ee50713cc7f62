package repository

import (
	"context"

	"github.com/altynbekov/streamflix/internal/domain"
)

// CreateUserInput carries an already-hashed password. Plaintext never
// reaches the repository layer.
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	// Create persists a new user and returns the stored record.
	// Returns domain.ErrDuplicateEmail if the email is already taken;
	// the unique index is the authoritative guard, not the caller's
	// pre-check.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// FindByEmail does a case-sensitive exact match on the unique email.
	// Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateFavorites replaces the user's favorites list. Never touches
	// password_hash.
	UpdateFavorites(ctx context.Context, userID string, favorites []string) (*domain.User, error)

	// UpdateLastWatched replaces the user's last-watched list.
	UpdateLastWatched(ctx context.Context, userID string, lastWatched []string) (*domain.User, error)
}
