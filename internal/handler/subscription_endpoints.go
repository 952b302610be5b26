package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storybook-server/internal/models"
)

// GetSubscription обрабатывает GET /api/subscription - свежий снимок
// подписки пользователя (с синхронизацией у платежного провайдера).
func (h *StoryHandler) GetSubscription(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	sub, err := h.service.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
