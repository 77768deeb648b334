package auth

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type userKey struct{}

func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the authenticated caller, or an invalid NullUUID for anonymous requests.
func UserID(ctx context.Context) uuid.NullUUID {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	if !ok {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id, Valid: true}
}
