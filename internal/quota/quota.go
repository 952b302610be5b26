package quota

import "storybook-server/internal/models"

// Limits - потолки количества историй по тарифам.
type Limits struct {
	Free    int
	Plus    int
	Pro     int
	Premium int
}

// Decision - результат проверки квоты. Отказ - ожидаемый исход, а не
// ошибка; Limit заполняется всегда, чтобы клиент видел свой потолок.
type Decision struct {
	Allowed bool
	Limit   int
	Tier    models.SubscriptionTier
}

// Gate решает, можно ли аккаунту создать еще одну историю.
// Чистая функция без состояния: смена тарифа между вызовами сразу
// применяет потолок нового тарифа.
type Gate struct {
	limits Limits
}

// NewGate создает гейт с заданными потолками.
func NewGate(limits Limits) *Gate {
	return &Gate{limits: limits}
}

// ceiling возвращает потолок для эффективного тарифа.
func (g *Gate) ceiling(tier models.SubscriptionTier) int {
	switch tier {
	case models.TierPlus:
		return g.limits.Plus
	case models.TierPro:
		return g.limits.Pro
	case models.TierPremium:
		return g.limits.Premium
	default:
		return g.limits.Free
	}
}

// Check проверяет единственный потолок текущего эффективного тарифа
// аккаунта (без каскада по всем тарифам). Вызывающий обязан передать
// свежесинхронизированное состояние подписки.
func (g *Gate) Check(tier models.SubscriptionTier, active bool, storyCount int64) Decision {
	effective := tier
	if !active || effective == "" {
		effective = models.TierNone
	}
	limit := g.ceiling(effective)
	return Decision{
		Allowed: storyCount < int64(limit),
		Limit:   limit,
		Tier:    effective,
	}
}
