package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
)

const (
	createStoryQuery = `
		INSERT INTO stories (user_id, title, content, images, hero_image)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5)
		RETURNING id, created_at;
	`
	getStoryByIDQuery = `
		SELECT id, user_id, title, content, images, hero_image, created_at
		FROM stories
		WHERE id = $1;
	`
	listStoriesByUserQuery = `
		SELECT id, title, hero_image, created_at
		FROM stories
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	countStoriesByUserQuery = `SELECT COUNT(*) FROM stories WHERE user_id = $1;`
)

// Убедимся, что pgStoryRepository реализует интерфейс
var _ interfaces.StoryRepository = (*pgStoryRepository)(nil)

type pgStoryRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewStoryRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("story_repo"),
	}
}

// Create атомарно сохраняет готовую историю одной вставкой.
// Абзацы и иллюстрации пишутся как jsonb-массивы; выравнивание
// len(content) == len(images) дополнительно охраняет CHECK-констрейнт.
func (r *pgStoryRepository) Create(ctx context.Context, story *models.Story) error {
	if len(story.Content) != len(story.Images) {
		return fmt.Errorf("%w: абзацев %d, иллюстраций %d",
			models.ErrInvalidInput, len(story.Content), len(story.Images))
	}

	contentJSON, err := json.Marshal(story.Content)
	if err != nil {
		return fmt.Errorf("ошибка сериализации абзацев: %w", err)
	}
	imagesJSON, err := json.Marshal(story.Images)
	if err != nil {
		return fmt.Errorf("ошибка сериализации иллюстраций: %w", err)
	}

	err = r.db.QueryRow(ctx, createStoryQuery,
		story.UserID, story.Title, string(contentJSON), string(imagesJSON), story.HeroImage,
	).Scan(&story.ID, &story.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert story",
			zap.String("userID", story.UserID.String()),
			zap.String("title", story.Title),
			zap.Error(err),
		)
		return fmt.Errorf("db error inserting story: %w", err)
	}

	r.logger.Info("Story persisted",
		zap.String("storyID", story.ID.String()),
		zap.String("userID", story.UserID.String()),
		zap.Int("paragraphs", len(story.Content)),
	)
	return nil
}

// GetByID возвращает историю по идентификатору.
func (r *pgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	var (
		story       models.Story
		contentJSON []byte
		imagesJSON  []byte
	)
	err := r.db.QueryRow(ctx, getStoryByIDQuery, id).Scan(
		&story.ID, &story.UserID, &story.Title, &contentJSON, &imagesJSON,
		&story.HeroImage, &story.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrStoryNotFound
		}
		r.logger.Error("Failed to get story by ID", zap.String("storyID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("db error getting story: %w", err)
	}

	if err := json.Unmarshal(contentJSON, &story.Content); err != nil {
		return nil, fmt.Errorf("ошибка десериализации абзацев: %w", err)
	}
	if err := json.Unmarshal(imagesJSON, &story.Images); err != nil {
		return nil, fmt.Errorf("ошибка десериализации иллюстраций: %w", err)
	}
	return &story, nil
}

// ListByUser возвращает краткие записи историй пользователя (сначала новые).
func (r *pgStoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StorySummary, error) {
	summaries := make([]models.StorySummary, 0)
	if err := pgxscan.Select(ctx, r.db, &summaries, listStoriesByUserQuery, userID); err != nil {
		r.logger.Error("Failed to list stories", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("db error listing stories: %w", err)
	}
	return summaries, nil
}

// CountByUser возвращает количество историй пользователя.
func (r *pgStoryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countStoriesByUserQuery, userID).Scan(&count); err != nil {
		r.logger.Error("Failed to count stories", zap.String("userID", userID.String()), zap.Error(err))
		return 0, fmt.Errorf("db error counting stories: %w", err)
	}
	return count, nil
}
