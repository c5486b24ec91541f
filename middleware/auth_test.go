package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/societyhub/society-portal-go/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "507f1f77bcf86cd799439011",
		"email":   "someone@example.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := testRouter(AuthMiddleware(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadSignature(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := testRouter(AuthMiddleware(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", "admin"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := testRouter(AuthMiddleware(cfg))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "member"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"member"`)
}

func TestRequireRoleForbidsOthers(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := testRouter(AuthMiddleware(cfg), RequireRole("admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "member"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestRequireRoleAdmitsMatch(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := testRouter(AuthMiddleware(cfg), RequireRole("admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
