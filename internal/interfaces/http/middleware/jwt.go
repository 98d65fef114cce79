package middleware

import (
	"errors"
	"strings"

	"github.com/distributor/backend/internal/domain/identity"
	"github.com/distributor/backend/internal/infrastructure/auth"
	"github.com/distributor/backend/internal/infrastructure/logger"
	"github.com/distributor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenValidator validates bearer tokens; *auth.JWTService satisfies it
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig skips the health check and login endpoints
func DefaultJWTConfig(validator TokenValidator, log *zap.Logger) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator: validator,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
		},
		Logger: log,
	}
}

// JWTAuth validates the bearer token and stores the claims on the gin
// context and the request logger
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			authFailed(c, cfg.Logger, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || token == "" {
			authFailed(c, cfg.Logger, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(token)
		if err != nil {
			authFailed(c, cfg.Logger, err, "Token validation failed")
			return
		}
		if !identity.Role(claims.Role).IsValid() {
			authFailed(c, cfg.Logger, auth.ErrInvalidClaims, "Unknown role in token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Set(JWTRoleKey, claims.Role)

		ctx := c.Request.Context()
		ctx, log := logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		ctx, _ = logger.WithTenantID(ctx, log, claims.TenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func authFailed(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", GetRequestID(c)),
	)

	switch {
	case c.GetHeader(AuthHeaderKey) == "":
		abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
	case errors.Is(err, auth.ErrExpiredToken):
		abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
	default:
		abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid token")
	}
}

// Authorize lets the request through only when the token role is one of roles
func Authorize(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(c.GetString(JWTRoleKey))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abortWithError(c, dto.ErrCodeForbidden, "Your role does not allow this operation")
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTTenantID retrieves the tenant ID from JWT claims in context
func GetJWTTenantID(c *gin.Context) string {
	return c.GetString(JWTTenantIDKey)
}

// Principal returns the tenant and actor of an authenticated request
func Principal(c *gin.Context) (uuid.UUID, identity.Actor, error) {
	claims := GetJWTClaims(c)
	if claims == nil {
		return uuid.Nil, identity.Actor{}, auth.ErrInvalidToken
	}
	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return uuid.Nil, identity.Actor{}, auth.ErrMissingTenantID
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, identity.Actor{}, auth.ErrMissingUserID
	}
	return tenantID, identity.NewActor(userID, identity.Role(claims.Role)), nil
}
