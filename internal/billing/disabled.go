package billing

import (
	"context"

	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
)

var _ interfaces.SubscriptionSyncer = (*disabledSyncer)(nil)

// disabledSyncer используется, когда Stripe не сконфигурирован: возвращает
// сохраненное в базе состояние подписки без обращения к провайдеру.
// Гейт квот при этом работает по последнему известному снимку.
type disabledSyncer struct {
	logger *zap.Logger
}

// NewDisabledSyncer создает заглушку синхронизации подписок.
func NewDisabledSyncer(logger *zap.Logger) interfaces.SubscriptionSyncer {
	return &disabledSyncer{logger: logger.Named("DisabledSyncer")}
}

func (s *disabledSyncer) Sync(_ context.Context, user *models.User) (models.Subscription, error) {
	s.logger.Debug("Subscription sync disabled, using stored snapshot",
		zap.String("user_id", user.ID.String()),
	)
	return user.Subscription, nil
}
