package usecase

import (
	"context"
	"fmt"

	"github.com/altynbekov/streamflix/internal/domain"
	"github.com/altynbekov/streamflix/internal/repository"
)

const maxListEntries = 500

type ProfileUsecase struct {
	users repository.UserRepository
}

func NewProfileUsecase(users repository.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users}
}

// UpdateFavorites replaces the user's favorites list. The password hash is
// untouched by profile updates.
func (u *ProfileUsecase) UpdateFavorites(ctx context.Context, userID string, favorites []string) (*domain.User, error) {
	if len(favorites) > maxListEntries {
		return nil, &domain.ValidationError{Field: "favorites", Msg: "too many entries"}
	}
	if favorites == nil {
		favorites = []string{}
	}

	user, err := u.users.UpdateFavorites(ctx, userID, favorites)
	if err != nil {
		return nil, fmt.Errorf("update favorites: %w", err)
	}
	return user, nil
}

// UpdateLastWatched replaces the user's last-watched list.
func (u *ProfileUsecase) UpdateLastWatched(ctx context.Context, userID string, lastWatched []string) (*domain.User, error) {
	if len(lastWatched) > maxListEntries {
		return nil, &domain.ValidationError{Field: "lastWatched", Msg: "too many entries"}
	}
	if lastWatched == nil {
		lastWatched = []string{}
	}

	user, err := u.users.UpdateLastWatched(ctx, userID, lastWatched)
	if err != nil {
		return nil, fmt.Errorf("update last watched: %w", err)
	}
	return user, nil
}
