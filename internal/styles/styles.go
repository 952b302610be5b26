package styles

import (
	"fmt"

	"storybook-server/internal/models"
)

// Template - пара инструкций для одного художественного стиля:
// системная персона для описательных/промптовых вызовов и style guide,
// дописываемый к финальному промпту генерации изображения.
type Template struct {
	Persona    string
	StyleGuide string
}

// Registry - неизменяемый реестр шаблонов стилей. Строится один раз при
// старте процесса и дальше только читается.
type Registry struct {
	templates map[models.IllustrationStyle]Template
}

// NewRegistry создает реестр с фиксированным набором стилей.
func NewRegistry() *Registry {
	return &Registry{
		templates: map[models.IllustrationStyle]Template{
			models.StyleGhibli: {
				Persona: "You are an art director for a Studio Ghibli film. " +
					"Describe scenes in lush, painterly detail: soft natural light, " +
					"hand-painted backgrounds, gentle expressions, a sense of quiet wonder.",
				StyleGuide: "Render in the style of Studio Ghibli: watercolor textures, " +
					"warm pastoral palettes, expressive eyes, whimsical natural scenery.",
			},
			models.StylePixar: {
				Persona: "You are an art director at Pixar. " +
					"Describe scenes with vivid 3D detail: rounded friendly shapes, " +
					"cinematic lighting, rich saturated color and playful energy.",
				StyleGuide: "Render as a Pixar-style 3D animation still: soft global " +
					"illumination, expressive oversized eyes, polished subsurface skin, " +
					"vibrant saturated colors.",
			},
			models.StyleDisney: {
				Persona: "You are an art director for classic Disney animation. " +
					"Describe scenes in the manner of hand-drawn fairy tales: elegant " +
					"linework, storybook backgrounds, graceful movement and sparkle.",
				StyleGuide: "Render in classic Disney hand-drawn animation style: clean " +
					"ink outlines, fairy-tale color palette, magical glow and storybook charm.",
			},
		},
	}
}

// Get возвращает шаблон стиля. Неизвестный стиль - ошибка конфигурации:
// вызывающий обязан провалидировать стиль до запуска пайплайна.
func (r *Registry) Get(style models.IllustrationStyle) (Template, error) {
	tpl, ok := r.templates[style]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", models.ErrUnknownStyle, style)
	}
	return tpl, nil
}

// Known возвращает список поддерживаемых стилей (для валидации и ответов API).
func (r *Registry) Known() []models.IllustrationStyle {
	known := make([]models.IllustrationStyle, 0, len(r.templates))
	for s := range r.templates {
		known = append(known, s)
	}
	return known
}
