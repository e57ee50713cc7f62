package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/altynbekov/streamflix/internal/domain"
	"github.com/altynbekov/streamflix/internal/email"
	"github.com/altynbekov/streamflix/internal/password"
	"github.com/altynbekov/streamflix/internal/repository"
	"github.com/altynbekov/streamflix/internal/token"
)

const maxNameLength = 70

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher *password.Hasher, codec *token.Codec, sender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		codec:  codec,
		email:  sender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and mints a session token for it. The
// email-existence pre-check gives a friendly error on the common path; the
// unique index in the store is what actually guards the race.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, "", err
	}

	_, err := u.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	signed, err := u.codec.Mint(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}

	u.sendWelcomeEmail(user)

	return user, signed, nil
}

// Login verifies credentials and mints a session token. An unknown email
// and a wrong password surface as distinct errors; the handlers map both
// to 400 but keep the messages apart.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plaintext string) (*domain.User, string, error) {
	if emailAddr == "" || plaintext == "" {
		return nil, "", &domain.ValidationError{Field: "credentials", Msg: "email and password are required"}
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.codec.Mint(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token: %w", err)
	}
	return user, signed, nil
}

// sendWelcomeEmail fires and forgets; a mail failure must never fail a
// registration that already committed.
func (u *AuthUsecase) sendWelcomeEmail(user *domain.User) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		subject := "Welcome to Streamflix"
		body := fmt.Sprintf("<p>Hi %s, your account is ready. Happy browsing!</p>", user.Name)
		if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
			u.logger.Error("send welcome email", "user_id", user.ID, "error", err)
		}
	}()
}

func validateRegisterInput(input RegisterInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return &domain.ValidationError{Field: "name", Msg: "a name is required"}
	}
	if len(name) > maxNameLength {
		return &domain.ValidationError{Field: "name", Msg: "name cannot be longer than 70 characters"}
	}
	if !emailPattern.MatchString(input.Email) {
		return &domain.ValidationError{Field: "email", Msg: "a valid email is required"}
	}
	if input.Password == "" {
		return &domain.ValidationError{Field: "password", Msg: "a password is required"}
	}
	return nil
}
