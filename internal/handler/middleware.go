package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// AuthMiddleware проверяет Bearer JWT и кладет ID пользователя в контекст.
// Только разбор и валидация подписи/срока; выдача и отзыв токенов - забота
// внешнего сервиса аутентификации.
func (h *StoryHandler) AuthMiddleware() gin.HandlerFunc {
	secret := []byte(h.cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing")
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format")
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.UserID == uuid.Nil {
			zap.L().Warn("Access token verification failed", zap.Error(err))
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		c.Set(string(models.UserContextKey), claims.UserID)
		c.Next()
	}
}

// userIDFromContext достает ID пользователя, положенный AuthMiddleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(string(models.UserContextKey))
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
