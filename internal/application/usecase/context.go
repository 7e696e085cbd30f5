// internal/application/usecase/context.go
package usecase

import (
	"context"
	"strings"
	"time"
)

// usecase 層で使う context key
type ctxKey string

const ctxKeyUID ctxKey = "uid"

// DefaultCallTimeout bounds a single remote call when no timeout is configured.
const DefaultCallTimeout = 10 * time.Second

// WithUID stores the authenticated user's uid (set by the auth middleware).
func WithUID(ctx context.Context, uid string) context.Context {
	u := strings.TrimSpace(uid)
	if u == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyUID, u)
}

// UIDFromContext returns the authenticated uid or "".
func UIDFromContext(ctx context.Context) string {
	v := ctx.Value(ctxKeyUID)
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// withCallTimeout derives the context for one remote call.
func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, d)
}
