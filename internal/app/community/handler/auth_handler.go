package handler

import (
	"net/http"

	"septemberplums/internal/app/community/entity"

	"github.com/gin-gonic/gin"
)

// AuthHandler отдает статус аутентификации текущего запроса
// Сессии выпускает внешний сервис; здесь токен только читается
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// AuthStatus монтируется за OptionalAuthenticate: без валидного токена
// возвращает authenticated=false вместо 401
func (h *AuthHandler) AuthStatus(c *gin.Context) {
	email, name, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, entity.AuthStatusResponse{Authenticated: false})
		return
	}

	isModerator, _ := c.Get("is_moderator")
	moderator, _ := isModerator.(bool)

	c.JSON(http.StatusOK, entity.AuthStatusResponse{
		Authenticated: true,
		User: &entity.AuthUser{
			Email:       email,
			Name:        name,
			IsModerator: moderator,
		},
	})
}
