package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"todo-app/internal/api"
	"todo-app/internal/auth"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Middleware struct {
	Tokens TokenVerifier
}

func NewMiddleware(tokens TokenVerifier) *Middleware {
	return &Middleware{Tokens: tokens}
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified claims in the request context.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.Tokens.Verify(bearerToken(r))
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		ctx := auth.WithClaims(r.Context(), claims)
		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", claims.UserID)
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
// A header without a second field counts as missing; a different scheme is
// passed through so that verification rejects it.
func bearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) < 2 {
		return ""
	}
	if !strings.EqualFold(fields[0], "Bearer") {
		return "invalid"
	}
	return fields[1]
}
