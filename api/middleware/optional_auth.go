package middleware

import (
	"net/http"
	"strings"

	pkgauth "github.com/nutrimart/nutrimart-backend/pkg/auth"
	"github.com/nutrimart/nutrimart-backend/pkg/auth/session"
	"github.com/nutrimart/nutrimart-backend/pkg/config"
	"github.com/nutrimart/nutrimart-backend/pkg/logger"
)

// OptionalAuth seeds the context with claims when a valid bearer token is
// presented and lets the request through anonymously otherwise. Public pages
// that render differently for signed-in users sit behind this.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil || claims.ID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil || !ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithUsername(ctx, claims.Username)
			ctx = withAccessID(ctx, claims.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
