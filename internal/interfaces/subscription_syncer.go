package interfaces

import (
	"context"

	"storybook-server/internal/models"
)

// SubscriptionSyncer получает актуальное состояние подписки у платежного
// провайдера. Гейт квот обязан работать только со свежесинхронизированным
// снимком, а не с тем, что лежало в базе на момент запроса.
type SubscriptionSyncer interface {
	// Sync возвращает текущее состояние подписки пользователя.
	// Для пользователя без customer id у провайдера возвращает пустую
	// подписку (tier none) без ошибки.
	Sync(ctx context.Context, user *models.User) (models.Subscription, error)
}
