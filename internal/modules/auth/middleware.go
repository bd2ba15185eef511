package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/api"
	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

type contextKey struct{}

var userIDKey = contextKey{}

// UserIDFromContext returns the authenticated user id set by
// RequireAuth, or false when the request was not authenticated.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequireAuth verifies the Bearer token and puts the account id into
// the request context. Requests without a valid token get a 401.
func RequireAuth(tokens *TokenIssuer, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				api.Error(w, r, log, apperrors.Unauthorized("missing bearer token"))
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debug().Err(err).Msg("Token verification failed")
				api.Error(w, r, log, apperrors.Unauthorized("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
