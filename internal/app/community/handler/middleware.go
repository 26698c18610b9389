package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims структура claims для сессионного JWT токена
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// ModeratorChecker проверяет, является ли пользователь модератором
type ModeratorChecker func(email string) bool

// NewAllowlistChecker создает предикат модератора по списку email-адресов
func NewAllowlistChecker(emails []string) ModeratorChecker {
	allowed := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return func(email string) bool {
		_, ok := allowed[strings.ToLower(email)]
		return ok
	}
}

// AuthMiddleware проверяет сессионный JWT токен в запросах для Gin
type AuthMiddleware struct {
	jwtSecret   string
	isModerator ModeratorChecker
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtSecret string, isModerator ModeratorChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret:   jwtSecret,
		isModerator: isModerator,
	}
}

// parseToken извлекает и валидирует токен из заголовка Authorization
func (m *AuthMiddleware) parseToken(c *gin.Context) (*SessionClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Проверяем формат "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.ParseWithClaims(parts[1], &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Email == "" {
		return nil, false
	}

	return claims, true
}

// Authenticate требует валидный токен и добавляет данные пользователя в контекст Gin
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("is_moderator", m.isModerator(claims.Email))

		c.Next()
	}
}

// OptionalAuthenticate добавляет данные пользователя в контекст, если токен
// присутствует и валиден, но пропускает запрос и без него
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.parseToken(c); ok {
			c.Set("user_email", claims.Email)
			c.Set("user_name", claims.Name)
			c.Set("is_moderator", m.isModerator(claims.Email))
		}
		c.Next()
	}
}

// RequireModerator пропускает только аутентифицированных модераторов
// Должен стоять после Authenticate
func (m *AuthMiddleware) RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		isModerator, exists := c.Get("is_moderator")
		if !exists || isModerator != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "Moderator access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser извлекает данные пользователя из контекста Gin
func currentUser(c *gin.Context) (email, name string, ok bool) {
	rawEmail, exists := c.Get("user_email")
	if !exists {
		return "", "", false
	}
	email, ok = rawEmail.(string)
	if !ok || email == "" {
		return "", "", false
	}
	if rawName, exists := c.Get("user_name"); exists {
		name, _ = rawName.(string)
	}
	return email, name, true
}
