package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/models"
	"github.com/dkotenko/timekit-be/internal/services"
)

type contextKey string

const (
	userContextKey  = contextKey("sessionUser")
	tokenContextKey = contextKey("sessionToken")
)

// TokenFromRequest extracts the session token from the Authorization header
// (bearer style) or, failing that, from the sessionId query parameter. An
// empty string means the request is anonymous.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, "Bearer ")
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return r.URL.Query().Get("sessionId")
}

// SessionMiddleware resolves the request's session token, if any.
//
// A request with no token passes through anonymously and downstream handlers
// decide whether that is acceptable. A request that supplies a token which
// does not resolve fails with 401 right here. The asymmetry is deliberate:
// not identifying yourself is fine, lying about who you are is not.
func SessionMiddleware(sessions services.SessionServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.ResolveSession(token)
			if err != nil {
				log.Error().Err(err).Msg("Failed to resolve session")
				http.Error(w, "Server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "Not authorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil for an anonymous
// request.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// TokenFromContext returns the resolved session token for an authenticated
// request, or "" for an anonymous one.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
