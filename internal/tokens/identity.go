package tokens

import (
	"context"
	"time"
)

// Identity is the caller reconstructed from a verified token.
type Identity struct {
	SubjectID uint
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type ctxKey struct{}

func IntoContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
