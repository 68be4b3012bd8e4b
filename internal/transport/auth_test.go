package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type testResolver struct {
	tokenToKiosk map[string]string
	err          error
}

func (r *testResolver) ResolveKiosk(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	kiosk, ok := r.tokenToKiosk[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return kiosk, nil
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &testResolver{tokenToKiosk: map[string]string{"token": "lobby-1"}}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kiosk, ok := KioskFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "lobby-1", kiosk)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	resolver := &testResolver{err: errors.New("invalid")}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), CodeUnauthorized)
}

func TestAuthMiddleware_Missing(t *testing.T) {
	handler := AuthMiddleware(StaticToken("secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaticToken(t *testing.T) {
	ctx := context.Background()

	kiosk, err := StaticToken("secret").ResolveKiosk(ctx, "secret")
	require.NoError(t, err)
	require.Equal(t, "kiosk", kiosk)

	_, err = StaticToken("secret").ResolveKiosk(ctx, "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = StaticToken("").ResolveKiosk(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
}
