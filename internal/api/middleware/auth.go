// Package middleware holds the cross-cutting HTTP middleware: bearer-token
// authentication, request metrics and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/evcsm/EVCS-BookingService/internal/api/handlers"
	"github.com/evcsm/EVCS-BookingService/internal/auth"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

type principalKey struct{}

// Principal is the authenticated caller extracted from the bearer token.
type Principal struct {
	UserID string
	Role   domain.UserRole
	Nic    string // set for EV owner tokens only
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// WithPrincipal stores a principal in the context the way Middleware does.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// Logger is the logging interface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TokenVerifier parses and validates bearer tokens.
type TokenVerifier interface {
	Parse(tokenStr string) (*auth.Claims, error)
}

// Auth authenticates requests and stores the principal in the context.
type Auth struct {
	verifier TokenVerifier
	logger   Logger
}

// NewAuth creates the authentication middleware.
func NewAuth(verifier TokenVerifier, logger Logger) *Auth {
	return &Auth{verifier: verifier, logger: logger}
}

// Middleware rejects requests without a valid bearer token.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := a.verifier.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.logger.Warn("auth: rejected token for %s %s: %v", r.Method, r.URL.Path, err)
			handlers.RespondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal := &Principal{
			UserID: claims.Subject,
			Role:   claims.UserRole(),
			Nic:    claims.Nic,
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireRole gates a route to the given roles. Must run after Middleware.
func RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				handlers.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, "insufficient role")
		})
	}
}
