package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "role"
)

// WithUser stores the authenticated identity (called by middleware).
func WithUser(ctx context.Context, id uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return ctx
}

// UserIDFrom retrieves the authenticated user id. There is no fallback id.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
