package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storybook-server/internal/imaging"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
	"storybook-server/internal/quota"
)

// Фиксированный заголовок истории, как в клиентском контракте.
const storyTitle = "A Magical Adventure"

// LimitError - отказ гейта квот. Несет потолок тарифа, чтобы хендлер мог
// вернуть его клиенту. Разворачивается в models.ErrStoryLimitReached.
type LimitError struct {
	Decision quota.Decision
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("story limit reached: %d stories on tier %q", e.Decision.Limit, e.Decision.Tier)
}

func (e *LimitError) Unwrap() error {
	return models.ErrStoryLimitReached
}

// StoryService - оркестратор генерации историй: синхронизация подписки,
// гейт квот, генерация текста, веер иллюстраций по абзацам и атомарное
// сохранение готовой истории.
type StoryService struct {
	users    interfaces.UserRepository
	stories  interfaces.StoryRepository
	syncer   interfaces.SubscriptionSyncer
	gen      interfaces.GenerationClient
	pipeline *IllustrationPipeline
	gate     *quota.Gate
	logger   *zap.Logger
}

// NewStoryService создает сервис историй.
func NewStoryService(
	users interfaces.UserRepository,
	stories interfaces.StoryRepository,
	syncer interfaces.SubscriptionSyncer,
	gen interfaces.GenerationClient,
	pipeline *IllustrationPipeline,
	gate *quota.Gate,
	logger *zap.Logger,
) *StoryService {
	return &StoryService{
		users:    users,
		stories:  stories,
		syncer:   syncer,
		gen:      gen,
		pipeline: pipeline,
		gate:     gate,
		logger:   logger.Named("StoryService"),
	}
}

// GenerateStory выполняет полный цикл создания истории.
// История сохраняется один раз и целиком; ошибка любого этапа означает,
// что в базе не появляется ничего.
func (s *StoryService) GenerateStory(ctx context.Context, req *models.StoryRequest) (*models.Story, error) {
	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Гейт обязан видеть свежее состояние подписки, а не снимок из базы:
	// сначала синхронизация с провайдером, потом проверка квоты.
	sub, err := s.syncer.Sync(ctx, user)
	if err != nil {
		generationFailuresTotal.WithLabelValues("subscription_sync").Inc()
		return nil, fmt.Errorf("subscription sync failed: %w", err)
	}
	if err := s.users.UpdateSubscription(ctx, user.ID, sub); err != nil {
		return nil, err
	}
	user.Subscription = sub

	count, err := s.stories.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	decision := s.gate.Check(user.EffectiveTier(), user.Subscription.IsActive(), count)
	if !decision.Allowed {
		quotaDenialsTotal.WithLabelValues(string(decision.Tier)).Inc()
		s.logger.Info("Story generation denied by quota",
			zap.String("userID", user.ID.String()),
			zap.String("tier", string(decision.Tier)),
			zap.Int("limit", decision.Limit),
			zap.Int64("count", count),
		)
		return nil, &LimitError{Decision: decision}
	}

	heroDataURI := imaging.ToDataURI(req.ImageData)

	text, err := s.gen.GenerateStoryText(ctx, heroDataURI, req.CharacterName)
	if err != nil {
		generationFailuresTotal.WithLabelValues("story_text").Inc()
		return nil, fmt.Errorf("story text generation: %w", err)
	}
	paragraphs := models.SplitParagraphs(text)
	if len(paragraphs) == 0 {
		generationFailuresTotal.WithLabelValues("story_text").Inc()
		return nil, fmt.Errorf("story text generation: %w", models.ErrEmptyGeneration)
	}

	// Веер иллюстраций: по одной на абзац, все параллельно, fail-fast.
	// images[i] соответствует paragraphs[i].
	images := make([]models.IllustrationAsset, len(paragraphs))
	g, gctx := errgroup.WithContext(ctx)
	for i, paragraph := range paragraphs {
		g.Go(func() error {
			asset, err := s.pipeline.Illustrate(gctx, req, heroDataURI, paragraph)
			if err != nil {
				return fmt.Errorf("illustration for paragraph %d: %w", i+1, err)
			}
			images[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		generationFailuresTotal.WithLabelValues("illustration").Inc()
		return nil, err
	}

	story := &models.Story{
		UserID:    user.ID,
		Title:     storyTitle,
		Content:   paragraphs,
		Images:    images,
		HeroImage: heroDataURI,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		generationFailuresTotal.WithLabelValues("persistence").Inc()
		return nil, err
	}

	storiesGeneratedTotal.Inc()
	s.logger.Info("Story generated",
		zap.String("storyID", story.ID.String()),
		zap.String("userID", user.ID.String()),
		zap.Int("paragraphs", len(paragraphs)),
		zap.String("style", string(req.Style)),
	)
	return story, nil
}

// GetStory возвращает историю пользователя. Чужая история неотличима от
// несуществующей.
func (s *StoryService) GetStory(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, models.ErrStoryNotFound
	}
	return story, nil
}

// ListStories возвращает краткий список историй пользователя (сначала новые).
func (s *StoryService) ListStories(ctx context.Context, userID uuid.UUID) ([]models.StorySummary, error) {
	return s.stories.ListByUser(ctx, userID)
}

// GetSubscription синхронизирует и возвращает текущее состояние подписки.
func (s *StoryService) GetSubscription(ctx context.Context, userID uuid.UUID) (models.Subscription, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.Subscription{}, err
	}
	sub, err := s.syncer.Sync(ctx, user)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("subscription sync failed: %w", err)
	}
	if err := s.users.UpdateSubscription(ctx, user.ID, sub); err != nil {
		return models.Subscription{}, err
	}
	return sub, nil
}
