package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storybook-server/internal/cache"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
	"storybook-server/internal/retry"
	"storybook-server/internal/styles"
)

const (
	defaultQuality = "standard"
	defaultSize    = "1024x1024"

	// Запасные строки для пустых ответов провайдера на шаге описания/анализа.
	// Пустой контент здесь не фатален: промпт все равно можно собрать.
	fallbackDescription = "A cheerful child protagonist in a bright, friendly storybook scene."
	fallbackAnalysis    = "A warm, adventurous moment full of childlike wonder."

	captionMaxLength = 80
)

// PipelineConfig - настройки пайплайна иллюстраций.
type PipelineConfig struct {
	UploadPolicy    retry.Policy
	PromptMaxLength int // потолок длины промпта в рунах
}

// IllustrationPipeline создает одну иллюстрацию на абзац: описание фото и
// анализ абзаца параллельно, синтез промпта, генерация изображения и
// загрузка на хостинг с ретраями. Результаты кэшируются по содержимому входов.
type IllustrationPipeline struct {
	gen      interfaces.GenerationClient
	uploader interfaces.AssetUploader
	styles   *styles.Registry
	cache    *cache.AssetCache
	cfg      PipelineConfig
	logger   *zap.Logger
}

// NewIllustrationPipeline создает пайплайн иллюстраций.
func NewIllustrationPipeline(
	gen interfaces.GenerationClient,
	uploader interfaces.AssetUploader,
	registry *styles.Registry,
	assetCache *cache.AssetCache,
	cfg PipelineConfig,
	logger *zap.Logger,
) *IllustrationPipeline {
	return &IllustrationPipeline{
		gen:      gen,
		uploader: uploader,
		styles:   registry,
		cache:    assetCache,
		cfg:      cfg,
		logger:   logger.Named("IllustrationPipeline"),
	}
}

// Illustrate выполняет полный пайплайн для одного абзаца.
// Попадание в кэш возвращает готовую иллюстрацию без единого вызова
// провайдера. Ошибка любого обязательного шага фатальна для вызова.
func (p *IllustrationPipeline) Illustrate(ctx context.Context, req *models.StoryRequest, imageDataURI, paragraph string) (models.IllustrationAsset, error) {
	quality, size := normalizeOptions(req.Options)

	key := cache.Key(req.ImageData, req.CharacterName, paragraph, req.Style, quality, size)
	if !req.Options.ForceRefresh {
		if asset, ok := p.cache.Get(key); ok {
			illustrationCacheHitsTotal.Inc()
			p.logger.Debug("Illustration cache hit", zap.String("key", key))
			return asset, nil
		}
	}
	illustrationCacheMissesTotal.Inc()

	tpl, err := p.styles.Get(req.Style)
	if err != nil {
		return models.IllustrationAsset{}, err
	}

	// Шаг 2: описание фото и анализ абзаца параллельно. Точка соединения -
	// g.Wait(): оба результата нужны синтезу целиком.
	var description, analysis string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := p.gen.DescribeImage(gctx, tpl.Persona, imageDataURI)
		if err != nil {
			return fmt.Errorf("source image description: %w", err)
		}
		if d == "" {
			d = fallbackDescription
		}
		description = d
		return nil
	})
	g.Go(func() error {
		a, err := p.gen.AnalyzeParagraph(gctx, paragraph)
		if err != nil {
			return fmt.Errorf("paragraph analysis: %w", err)
		}
		if a == "" {
			a = fallbackAnalysis
		}
		analysis = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.IllustrationAsset{}, err
	}

	// Шаг 3: синтез промпта. Пустой ответ не фатален - собираем шаблонный.
	prompt, err := p.gen.SynthesizePrompt(ctx, tpl.Persona, description, analysis, paragraph)
	if err != nil {
		return models.IllustrationAsset{}, fmt.Errorf("prompt synthesis: %w", err)
	}
	if prompt == "" {
		p.logger.Warn("Empty synthesized prompt, using templated fallback",
			zap.String("style", string(req.Style)))
		prompt = fmt.Sprintf("A detailed illustration of a child named %s in a scene from a children's story: %s",
			req.CharacterName, paragraph)
	}

	// Шаг 4: дописываем style guide и имя персонажа, режем до потолка.
	prompt = fmt.Sprintf("%s\n\n%s The main character is a child named %s.",
		prompt, tpl.StyleGuide, req.CharacterName)
	prompt = truncateRunes(prompt, p.cfg.PromptMaxLength)

	// Шаг 5: единственный вызов генерации изображения. Ошибка фатальна.
	imageURL, err := p.gen.GenerateImage(ctx, prompt, quality, size)
	if err != nil {
		return models.IllustrationAsset{}, fmt.Errorf("illustration generation: %w", err)
	}
	if imageURL == "" {
		return models.IllustrationAsset{}, fmt.Errorf("illustration generation: %w", models.ErrEmptyGeneration)
	}

	// Шаг 6: загрузка на хостинг с ограниченным числом попыток.
	caption := truncateRunes(paragraph, captionMaxLength)
	var asset models.IllustrationAsset
	err = retry.Do(ctx, p.cfg.UploadPolicy, func(attempt int) error {
		uploaded, upErr := p.uploader.Upload(ctx, imageURL, caption)
		if upErr != nil {
			uploadRetriesTotal.Inc()
			p.logger.Warn("Illustration upload attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", p.cfg.UploadPolicy.MaxAttempts),
				zap.Error(upErr),
			)
			return upErr
		}
		asset = uploaded
		return nil
	})
	if err != nil {
		return models.IllustrationAsset{}, fmt.Errorf("%w after %d attempts: %v",
			models.ErrUploadFailed, p.cfg.UploadPolicy.MaxAttempts, err)
	}

	asset.Prompt = prompt
	asset.Style = req.Style
	p.cache.Set(key, asset)

	return asset, nil
}

// normalizeOptions подставляет значения по умолчанию для качества и размера.
func normalizeOptions(opts models.GenerationOptions) (quality, size string) {
	quality, size = opts.Quality, opts.Size
	if quality == "" {
		quality = defaultQuality
	}
	if size == "" {
		size = defaultSize
	}
	return quality, size
}

// truncateRunes обрезает строку до max рун. Граница в рунах, не в байтах:
// лимит провайдера считается в символах, а промпт - естественный язык.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
