package api

import (
	"context"

	"taskboard-api/domain"
)

type principalKey struct{}

// WithPrincipal returns a context carrying the authenticated user for the
// remainder of one request.
func WithPrincipal(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFrom returns the authenticated user attached to ctx, if any.
func PrincipalFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(principalKey{}).(domain.User)
	return user, ok
}
