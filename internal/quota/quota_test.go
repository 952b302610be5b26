package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storybook-server/internal/models"
)

func testLimits() Limits {
	return Limits{Free: 2, Plus: 10, Pro: 50, Premium: 200}
}

func TestGateCheck(t *testing.T) {
	gate := NewGate(testLimits())

	tests := []struct {
		name        string
		tier        models.SubscriptionTier
		active      bool
		count       int64
		wantAllowed bool
		wantLimit   int
		wantTier    models.SubscriptionTier
	}{
		{"free tier under limit", models.TierNone, false, 1, true, 2, models.TierNone},
		{"free tier at limit", models.TierNone, false, 2, false, 2, models.TierNone},
		{"plus tier under limit", models.TierPlus, true, 9, true, 10, models.TierPlus},
		{"plus tier at limit", models.TierPlus, true, 10, false, 10, models.TierPlus},
		{"pro tier over limit", models.TierPro, true, 51, false, 50, models.TierPro},
		{"premium tier under limit", models.TierPremium, true, 199, true, 200, models.TierPremium},
		// Неактивная подписка всегда дает бесплатный потолок, даже с платным tier в базе.
		{"inactive pro falls back to free ceiling", models.TierPro, false, 2, false, 2, models.TierNone},
		{"inactive pro under free ceiling", models.TierPro, false, 1, true, 2, models.TierNone},
		{"empty tier treated as free", "", true, 0, true, 2, models.TierNone},
		{"zero stories always allowed", models.TierNone, false, 0, true, 2, models.TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := gate.Check(tt.tier, tt.active, tt.count)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantLimit, d.Limit, "Limit должен заполняться и при отказе, и при разрешении")
			assert.Equal(t, tt.wantTier, d.Tier)
		})
	}
}

// Гейт без состояния: смена тарифа между вызовами сразу меняет потолок.
func TestGateCheck_TierChangeBetweenCalls(t *testing.T) {
	gate := NewGate(testLimits())

	// 5 историй: для plus это в пределах потолка...
	d := gate.Check(models.TierPlus, true, 5)
	assert.True(t, d.Allowed)

	// ...а после даунгрейда на free тот же счетчик превышает потолок.
	d = gate.Check(models.TierNone, false, 5)
	assert.False(t, d.Allowed)
	assert.Equal(t, 2, d.Limit)
}
