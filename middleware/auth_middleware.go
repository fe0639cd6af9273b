package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/jobly/internal/auth"
	"github.com/upb/jobly/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating bearer tokens
type TokenValidator interface {
	// ValidateToken validates a token and returns the identity it carries
	ValidateToken(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// Authenticate stores the identity of a valid bearer token in the request
// context. A missing or invalid token is not an error here: the request
// continues anonymously and the Require* gates decide.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Debug("ignoring invalid token",
				zap.String("request_id", GetRequestIDFromContext(ctx)),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
	})
}

// RequireLoggedIn rejects anonymous requests
func (m *AuthMiddleware) RequireLoggedIn(next http.Handler) http.Handler {
	return m.Require(CheckLoggedIn)(next)
}

// RequireAdmin rejects requests not made by an admin
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Require(CheckAdmin)(next)
}

// RequireSelfOrAdmin rejects requests unless made by an admin or by the user
// named in the route parameter param
func (m *AuthMiddleware) RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return m.Require(CheckSelfOrAdmin(param))
}

// Require turns a gate into middleware. A failing gate answers 401.
func (m *AuthMiddleware) Require(gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentityFromContext(r.Context())
			if err := gate(r, id); err != nil {
				fields := []zap.Field{
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
					zap.String("path", r.URL.Path),
				}
				if id != nil {
					fields = append(fields, zap.String("username", id.Username))
				}
				m.logger.Debug("access denied", fields...)
				_ = utils.WriteUnauthorized(w, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	// any run of spaces or tabs may separate the scheme from the token
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}
