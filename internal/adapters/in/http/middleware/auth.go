// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/infra/logging"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// UserAuthMiddleware verifies "Authorization: Bearer <ID_TOKEN>" and stores
// the uid in the request context.
type UserAuthMiddleware struct {
	Verifier TokenVerifier
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "user auth middleware not initialized")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			logging.LoggerFromContext(r.Context()).Debug().Err(err).Msg("[user_auth] token rejected")
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			writeJSONError(w, http.StatusUnauthorized, "invalid uid in token")
			return
		}

		next.ServeHTTP(w, r.WithContext(usecase.WithUID(r.Context(), uid)))
	})
}

// CurrentUserUID returns the uid stored by UserAuthMiddleware.
func CurrentUserUID(r *http.Request) (string, bool) {
	uid := usecase.UIDFromContext(r.Context())
	return uid, uid != ""
}
