package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/jwt"
	"go-hospital-scheduling/pkg/response"
)

type contextKey string

const (
	StaffEmailKey contextKey = "staff_email"
	RoleKey       contextKey = "role"
	TokenIDKey    contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	enabled    bool
}

// NewAuthMiddleware returns a middleware that checks bearer tokens. With
// enabled false every request is let through with the admin role.
func NewAuthMiddleware(jwtService *jwt.JWTService, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		enabled:    enabled,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			ctx := context.WithValue(r.Context(), RoleKey, entity.RoleAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), StaffEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
		ctx = service.WithActor(ctx, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffEmailFromContext extracts the token subject from context
func GetStaffEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(StaffEmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts the role from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
