// Package identity carries the authenticated user through a request's
// context as a typed value, the same way internal/requestid carries the
// request ID.
package identity

import (
	"context"

	"github.com/altynbekov/streamflix/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx with the authenticated user attached.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext extracts the authenticated user from ctx. Returns nil if the
// request never passed the auth middleware.
func FromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKey{}).(*domain.User)
	return u
}
