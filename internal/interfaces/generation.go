package interfaces

import (
	"context"

	"storybook-server/internal/models"
)

// GenerationClient - провайдер генерации текста и изображений
// (OpenAI-совместимый). Все методы возвращают ошибку только при
// транспортном/API сбое; политику пустого контента решает вызывающий.
type GenerationClient interface {
	// GenerateStoryText генерирует текст истории по фото и имени персонажа.
	GenerateStoryText(ctx context.Context, imageDataURI, characterName string) (string, error)

	// DescribeImage описывает исходное фото под стилевой персоной.
	DescribeImage(ctx context.Context, persona, imageDataURI string) (string, error)

	// AnalyzeParagraph извлекает эмоциональные и визуальные элементы абзаца.
	AnalyzeParagraph(ctx context.Context, paragraph string) (string, error)

	// SynthesizePrompt сводит описание, анализ и абзац в промпт иллюстрации.
	SynthesizePrompt(ctx context.Context, persona, description, analysis, paragraph string) (string, error)

	// GenerateImage генерирует изображение и возвращает его URL у провайдера.
	GenerateImage(ctx context.Context, prompt, quality, size string) (string, error)
}

// AssetUploader загружает сгенерированное изображение на постоянный хостинг.
type AssetUploader interface {
	// Upload скачивает изображение по sourceURL на стороне хостинга и
	// возвращает постоянные адреса. Пустой результат - ошибка.
	Upload(ctx context.Context, sourceURL, caption string) (models.IllustrationAsset, error)
}
