package interfaces

import (
	"context"

	"github.com/google/uuid"

	"storybook-server/internal/models"
)

// UserRepository defines the interface for account data persistence.
type UserRepository interface {
	// GetUserByID retrieves a user by their ID.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpdateSubscription сохраняет свежесинхронизированное состояние подписки.
	// Вызывается перед проверкой квоты, чтобы гейт видел актуальный тариф.
	UpdateSubscription(ctx context.Context, userID uuid.UUID, sub models.Subscription) error

	// UpdatePaymentMethod обновляет сводку способа оплаты пользователя.
	UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, pm models.PaymentMethod) error
}
