package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key"

// Хелпер для выпуска тестового сессионного токена
func issueToken(t *testing.T, email, name string) string {
	claims := SessionClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func newTestAuthMiddleware() *AuthMiddleware {
	return NewAuthMiddleware(testSecret, NewAllowlistChecker([]string{"moderator@hw3.com", "admin@hw3.com"}))
}

func TestAuthenticate_Success(t *testing.T) {
	middleware := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		email, _ := c.Get("user_email")
		assert.Equal(t, "user@x.com", email)
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "user@x.com", "User"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_NoHeader(t *testing.T) {
	middleware := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_BadToken(t *testing.T) {
	middleware := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	middleware := newTestAuthMiddleware()

	claims := SessionClaims{Email: "user@x.com"}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireModerator_Allowed(t *testing.T) {
	middleware := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/mod", middleware.Authenticate(), middleware.RequireModerator(), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/mod", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "moderator@hw3.com", "Mod"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireModerator_Forbidden(t *testing.T) {
	middleware := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/mod", middleware.Authenticate(), middleware.RequireModerator(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/mod", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "user@x.com", "User"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalAuthenticate_WithoutToken(t *testing.T) {
	middleware := newTestAuthMiddleware()
	authHandler := NewAuthHandler()

	router := gin.New()
	router.GET("/auth/status", middleware.OptionalAuthenticate(), authHandler.AuthStatus)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
}

func TestOptionalAuthenticate_WithToken(t *testing.T) {
	middleware := newTestAuthMiddleware()
	authHandler := NewAuthHandler()

	router := gin.New()
	router.GET("/auth/status", middleware.OptionalAuthenticate(), authHandler.AuthStatus)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "admin@hw3.com", "Admin"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@hw3.com", user["email"])
	assert.Equal(t, true, user["is_moderator"])
}

func TestNewAllowlistChecker_CaseInsensitive(t *testing.T) {
	checker := NewAllowlistChecker([]string{" Moderator@HW3.com ", "admin@hw3.com"})

	assert.True(t, checker("moderator@hw3.com"))
	assert.True(t, checker("ADMIN@hw3.com"))
	assert.False(t, checker("user@x.com"))
	assert.False(t, checker(""))
}
