package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// IllustrationStyle - художественный стиль иллюстраций.
type IllustrationStyle string

const (
	StyleGhibli IllustrationStyle = "ghibli"
	StylePixar  IllustrationStyle = "pixar"
	StyleDisney IllustrationStyle = "disney"
)

// ParseStyle валидирует строку стиля из запроса. Пустая строка
// трактуется как стиль по умолчанию (ghibli).
func ParseStyle(s string) (IllustrationStyle, error) {
	switch IllustrationStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return StyleGhibli, nil
	case StyleGhibli:
		return StyleGhibli, nil
	case StylePixar:
		return StylePixar, nil
	case StyleDisney:
		return StyleDisney, nil
	}
	return "", ErrUnknownStyle
}

// IllustrationAsset - загруженная на хостинг иллюстрация одного абзаца.
// Неизменяем после создания.
type IllustrationAsset struct {
	SecureURL string            `json:"secureUrl"`
	URL       string            `json:"url"`
	PublicID  string            `json:"publicId"`
	Prompt    string            `json:"prompt,omitempty"`
	Style     IllustrationStyle `json:"style,omitempty"`
}

// Story - сохраненная история пользователя.
// Инвариант: len(Content) == len(Images), Images[i] иллюстрирует Content[i].
type Story struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	UserID    uuid.UUID           `db:"user_id" json:"userId"`
	Title     string              `db:"title" json:"title"`
	Content   []string            `db:"content" json:"content"`
	Images    []IllustrationAsset `db:"images" json:"images"`
	HeroImage string              `db:"hero_image" json:"heroImage"` // data URI исходного фото
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
}

// StorySummary - краткая запись для списка историй пользователя.
type StorySummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	HeroImage string    `db:"hero_image" json:"heroImage"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// GenerationOptions - необязательные параметры генерации иллюстраций.
type GenerationOptions struct {
	Quality      string // standard | hd
	Size         string // например "1024x1024"
	ForceRefresh bool   // игнорировать кэш иллюстраций
}

// StoryRequest - эфемерный запрос на генерацию одной истории.
// Живет в рамках одного HTTP-вызова и не сохраняется.
type StoryRequest struct {
	UserID        uuid.UUID
	ImageData     []byte // уже уменьшенное JPEG-изображение
	CharacterName string
	Style         IllustrationStyle
	Options       GenerationOptions
}

// SplitParagraphs разбивает сгенерированный текст на абзацы по пустым строкам.
// Пустые после обрезки абзацы отбрасываются; порядок сохраняется.
func SplitParagraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
