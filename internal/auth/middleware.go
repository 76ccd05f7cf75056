package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nikolayk812/codemarket/internal/domain"
)

// CookieName is the session cookie set by the identity provider.
const CookieName = "session"

type ctxKey struct{}

func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the zero User for anonymous requests.
func UserFromContext(ctx context.Context) domain.User {
	u, _ := ctx.Value(ctxKey{}).(domain.User)
	return u
}

// Middleware resolves the caller identity. Requests without a valid token
// continue anonymously; handlers decide whether identity is required.
func Middleware(v *Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := v.Verify(token)
			if err != nil {
				log.Debug("session token rejected",
					"method", "auth.Middleware",
					"error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}

	return ""
}
