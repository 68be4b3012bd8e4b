package transport

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type kioskKey struct{}

// KioskResolver resolves a kiosk identity from a bearer token.
type KioskResolver interface {
	ResolveKiosk(ctx context.Context, token string) (string, error)
}

// StaticToken accepts a single shared kiosk token.
type StaticToken string

// ResolveKiosk implements KioskResolver.
func (t StaticToken) ResolveKiosk(_ context.Context, token string) (string, error) {
	if t == "" || subtle.ConstantTimeCompare([]byte(t), []byte(token)) != 1 {
		return "", ErrUnauthorized
	}
	return "kiosk", nil
}

// KioskFromContext returns the authenticated kiosk identity, if present.
func KioskFromContext(ctx context.Context) (string, bool) {
	kiosk, ok := ctx.Value(kioskKey{}).(string)
	return kiosk, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver KioskResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
				return
			}

			kiosk, err := resolver.ResolveKiosk(r.Context(), token)
			if err != nil || kiosk == "" {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), kioskKey{}, kiosk)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
