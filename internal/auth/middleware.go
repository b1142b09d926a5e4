package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type ctxKey string

const claimKey ctxKey = "auth_claim"

// ClaimFromContext returns the claim injected by RequireAuth.
func ClaimFromContext(ctx context.Context) (Claim, bool) {
	c, ok := ctx.Value(claimKey).(Claim)
	return c, ok
}

// RequireAuth gates a route behind a valid bearer token. The token is taken
// from the second whitespace-separated field of the Authorization header; a
// header without a scheme prefix yields an empty token, which fails
// verification like any other bad token.
func RequireAuth(jwtSvc *JWT, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				reject(w, log, http.StatusUnauthorized, "Authorization denied! No token is provided")
				return
			}

			var token string
			if parts := strings.Fields(h); len(parts) > 1 {
				token = parts[1]
			}

			claim, err := jwtSvc.Verify(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					reject(w, log, http.StatusUnauthorized, "JWT Expired: Login to proceed")
					return
				}
				reject(w, log, http.StatusUnauthorized, "Token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, log *slog.Logger, code int, msg string) {
	if log != nil {
		log.Warn("auth rejected", "msg", msg)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
