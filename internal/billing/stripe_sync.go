package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
)

// Compile-time check to ensure stripeSyncer implements SubscriptionSyncer
var _ interfaces.SubscriptionSyncer = (*stripeSyncer)(nil)

// stripeSyncer читает актуальное состояние подписки напрямую из Stripe.
// Только чтение: создание/отмена подписок и вебхуки живут вне этого сервиса.
type stripeSyncer struct {
	sc     *client.API
	logger *zap.Logger
}

// NewStripeSyncer создает syncer поверх Stripe API.
func NewStripeSyncer(secretKey string, logger *zap.Logger) interfaces.SubscriptionSyncer {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &stripeSyncer{
		sc:     sc,
		logger: logger.Named("StripeSyncer"),
	}
}

// Sync возвращает свежий снимок подписки пользователя. Пользователь без
// customer id или без подписок получает пустую подписку (tier none).
func (s *stripeSyncer) Sync(ctx context.Context, user *models.User) (models.Subscription, error) {
	if user.StripeCustomerID == "" {
		return models.Subscription{Tier: models.TierNone}, nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(user.StripeCustomerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := s.sc.Subscriptions.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return models.Subscription{}, fmt.Errorf("failed to list stripe subscriptions: %w", err)
		}
		// Подписок нет - аккаунт на бесплатном уровне.
		return models.Subscription{Tier: models.TierNone}, nil
	}
	sub := iter.Subscription()

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	snapshot := models.Subscription{
		Status:           string(sub.Status),
		Tier:             tierFromMetadata(sub.Metadata),
		CurrentPeriodEnd: &periodEnd,
	}
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		snapshot.PlanID = sub.Items.Data[0].Price.ID
	}

	if snapshot.Tier == models.TierNone {
		s.logger.Warn("Stripe subscription has no recognizable plan type metadata",
			zap.String("subscription_id", sub.ID),
			zap.String("customer_id", user.StripeCustomerID),
		)
	}

	return snapshot, nil
}

// tierFromMetadata достает тариф из metadata подписки (ключ planType
// проставляется при оформлении подписки).
func tierFromMetadata(metadata map[string]string) models.SubscriptionTier {
	switch models.SubscriptionTier(metadata["planType"]) {
	case models.TierPlus:
		return models.TierPlus
	case models.TierPro:
		return models.TierPro
	case models.TierPremium:
		return models.TierPremium
	default:
		return models.TierNone
	}
}
