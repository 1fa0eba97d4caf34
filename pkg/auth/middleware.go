package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/givehaven/givehaven/pkg/utils"
)

type ContextKey string

const DonorIDKey ContextKey = "donorID"

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		jwtService := &JWTService{}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), DonorIDKey, claims.DonorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches the donor id when a valid token is
// present and lets the request through either way. Donations may be
// anonymous, so the donation endpoints must not demand a session.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			jwtService := &JWTService{}
			if claims, err := jwtService.ValidateToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), DonorIDKey, claims.DonorID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// DonorIDFromContext returns the authenticated donor id, if any.
func DonorIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(DonorIDKey).(int)
	return id, ok
}
