package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier - уровень подписки пользователя.
type SubscriptionTier string

const (
	TierNone    SubscriptionTier = "none"
	TierPlus    SubscriptionTier = "plus"
	TierPro     SubscriptionTier = "pro"
	TierPremium SubscriptionTier = "premium"
)

// Статусы подписки (соответствуют статусам Stripe).
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusUnpaid   = "unpaid"
)

// Subscription - снимок состояния подписки, хранимый на пользователе.
// Обновляется синхронизацией с платежным провайдером перед проверкой квоты.
type Subscription struct {
	Status           string           `db:"subscription_status" json:"status"`
	Tier             SubscriptionTier `db:"subscription_tier" json:"tier"`
	PlanID           string           `db:"subscription_plan_id" json:"planId"`
	CurrentPeriodEnd *time.Time       `db:"subscription_period_end" json:"currentPeriodEnd,omitempty"`
}

// IsActive сообщает, дает ли подписка доступ к платным лимитам.
// Trialing считается активной, как и у Stripe.
func (s Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}

// PaymentMethod - сводка способа оплаты (без чувствительных данных).
type PaymentMethod struct {
	ID       string `db:"payment_method_id" json:"id"`
	Brand    string `db:"payment_method_brand" json:"brand"`
	Last4    string `db:"payment_method_last4" json:"last4"`
	ExpMonth int    `db:"payment_method_exp_month" json:"expMonth"`
	ExpYear  int    `db:"payment_method_exp_year" json:"expYear"`
}

// User represents an account in the system.
type User struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	Email            string        `db:"email" json:"email"`
	Name             string        `db:"name" json:"name"`
	PasswordHash     string        `db:"password_hash" json:"-"` // Не отдаем хеш пароля
	ProfilePicture   string        `db:"profile_picture" json:"profilePicture,omitempty"`
	StripeCustomerID string        `db:"stripe_customer_id" json:"-"`
	Subscription     Subscription  `json:"subscription"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`
}

// EffectiveTier возвращает уровень, по которому считается квота.
// Неактивная или отсутствующая подписка всегда дает бесплатный уровень,
// даже если в базе остался устаревший tier.
func (u *User) EffectiveTier() SubscriptionTier {
	if !u.Subscription.IsActive() || u.Subscription.Tier == "" {
		return TierNone
	}
	return u.Subscription.Tier
}
