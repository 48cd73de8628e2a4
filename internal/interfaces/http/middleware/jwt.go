package middleware

import (
	"net/http"
	"strings"

	"github.com/aptos/backend/internal/infrastructure/auth"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys populated by the JWT middleware
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the JWT auth middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths bypass authentication entirely
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig returns a config that leaves health probes open
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
		},
	}
}

// JWTAuth creates JWT authentication middleware with default config
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig creates JWT authentication middleware. Validated claims
// are stored on the gin context for handlers to read the acting user.
func JWTAuthWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token rejected",
					zap.String("path", path),
					zap.Error(err))
			}
			abortUnauthorized(c, authErrorMessage(err))
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user carries one of
// the given roles. Must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUsernameRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.CodeForbidden,
				"Insufficient permissions", GetRequestID(c)))
	}
}

// GetActingUser returns the authenticated username, or "system" when the
// request was not authenticated (auth disabled)
func GetActingUser(c *gin.Context) string {
	if username, exists := c.Get(JWTUsernameKey); exists {
		if str, ok := username.(string); ok && str != "" {
			return str
		}
	}
	return "system"
}

// GetUsernameRole returns the authenticated user's role, if any
func GetUsernameRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if str, ok := role.(string); ok {
			return str
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.CodeUnauthorized, message, GetRequestID(c)))
}

func authErrorMessage(err error) string {
	switch err {
	case auth.ErrExpiredToken:
		return "Token has expired"
	case auth.ErrTokenNotYetValid:
		return "Token is not valid yet"
	default:
		return "Invalid token"
	}
}
