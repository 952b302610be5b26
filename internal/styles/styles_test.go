package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storybook-server/internal/models"
)

func TestRegistry_KnownStyles(t *testing.T) {
	r := NewRegistry()

	for _, style := range []models.IllustrationStyle{models.StyleGhibli, models.StylePixar, models.StyleDisney} {
		tpl, err := r.Get(style)
		require.NoError(t, err, "стиль %q должен быть в реестре", style)
		assert.NotEmpty(t, tpl.Persona)
		assert.NotEmpty(t, tpl.StyleGuide)
	}

	assert.ElementsMatch(t,
		[]models.IllustrationStyle{models.StyleGhibli, models.StylePixar, models.StyleDisney},
		r.Known(),
	)
}

func TestRegistry_UnknownStyle(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("watercolor")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownStyle)
}
