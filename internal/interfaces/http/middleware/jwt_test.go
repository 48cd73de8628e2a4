package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aptos/backend/internal/infrastructure/auth"
	"github.com/aptos/backend/internal/infrastructure/config"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, expiration time.Duration) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: expiration,
		Issuer:                "aptos-test",
	})
}

func setupAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), JWTAuth(jwtService))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": GetActingUser(c)})
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService(t, time.Hour)
	router := setupAuthRouter(jwtService)

	t.Run("rejects missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.CodeUnauthorized, resp.Error.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token and exposes the actor", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "manager",
			Role:     "admin",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "manager")
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestJWTService(t, -time.Minute)
		token, err := expired.GenerateAccessToken(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "manager",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})

	t.Run("skips health probes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService(t, time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), JWTAuth(jwtService))
	admin := router.Group("/admin", RequireRole("admin"))
	admin.GET("/sweep", func(c *gin.Context) { c.Status(http.StatusOK) })

	issue := func(t *testing.T, role string) string {
		t.Helper()
		token, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "user",
			Role:     role,
		})
		require.NoError(t, err)
		return token.Token
	}

	t.Run("allows the admin role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/sweep", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, "admin"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/sweep", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, "viewer"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
