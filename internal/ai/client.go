package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
)

var _ interfaces.GenerationClient = (*Client)(nil)

// Фиксированные инструкции генерации. Персона рассказчика не зависит от
// художественного стиля; стилевые персоны приходят из реестра стилей.
const (
	storyWriterPersona = "You are a children's story writer who creates magical and " +
		"engaging stories for kids aged 5-10. Create a story with 3-4 paragraphs " +
		"featuring the child in the image as the main character."

	describeInstruction = "Describe this image in detail for an illustrator to recreate " +
		"as a stylized illustration. Focus on the child's appearance, pose and surroundings."

	analyzeInstruction = "Extract the emotional tone and the key visual elements of this " +
		"story paragraph for an illustrator. Answer with a short, dense description:\n\n%s"

	synthesizeInstruction = "Using the following image description and story paragraph, " +
		"create a single detailed and emotionally rich prompt for generating an illustration.\n\n" +
		"Image description: %s\n\nEmotional and visual elements: %s\n\nStory context: %s"

	storyMaxTokens = 1000
)

// Config содержит конфигурацию для клиента генерации.
type Config struct {
	APIKey     string
	BaseURL    string // пусто - стандартный endpoint OpenAI
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// Client - адаптер OpenAI-совместимого провайдера генерации текста и
// изображений. Ошибку возвращает только при транспортном/API сбое;
// пустой контент отдается как есть - политику пустого ответа решает
// вызывающий слой.
type Client struct {
	client     *openai.Client
	textModel  string
	imageModel string
	logger     *zap.Logger
}

// New создает новый экземпляр клиента генерации.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not configured")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = openai.GPT4o
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = openai.CreateImageModelDallE3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client:     openai.NewClientWithConfig(clientCfg),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		logger:     logger.Named("AIClient"),
	}, nil
}

// GenerateStoryText генерирует текст истории по фото ребенка и имени
// персонажа одним vision-вызовом с фиксированной персоной рассказчика.
func (c *Client) GenerateStoryText(ctx context.Context, imageDataURI, characterName string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.textModel,
		MaxTokens: storyMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: storyWriterPersona,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: fmt.Sprintf("Create a magical story for this child named %s", characterName),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageDataURI,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("story text generation failed: %w", err)
	}
	return firstChoiceContent(resp), nil
}

// DescribeImage возвращает подробное описание исходного фото под диктовку
// стилевой персоны (шаг 2a пайплайна иллюстраций).
func (c *Client) DescribeImage(ctx context.Context, persona, imageDataURI string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: persona,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: describeInstruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageDataURI,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("image description failed: %w", err)
	}
	return firstChoiceContent(resp), nil
}

// AnalyzeParagraph извлекает эмоциональные и визуальные элементы абзаца
// (шаг 2b пайплайна иллюстраций).
func (c *Client) AnalyzeParagraph(ctx context.Context, paragraph string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(analyzeInstruction, paragraph),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("paragraph analysis failed: %w", err)
	}
	return firstChoiceContent(resp), nil
}

// SynthesizePrompt сводит описание изображения, анализ абзаца и сам абзац
// в один промпт для генерации иллюстрации (шаг 3 пайплайна).
func (c *Client) SynthesizePrompt(ctx context.Context, persona, description, analysis, paragraph string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: persona,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(synthesizeInstruction, description, analysis, paragraph),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("prompt synthesis failed: %w", err)
	}
	return firstChoiceContent(resp), nil
}

// GenerateImage выполняет один вызов генерации изображения и возвращает
// URL результата у провайдера.
func (c *Client) GenerateImage(ctx context.Context, prompt, quality, size string) (string, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           size,
		Quality:        quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	return resp.Data[0].URL, nil
}

// firstChoiceContent достает контент первого choice; пустой ответ - "".
func firstChoiceContent(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
