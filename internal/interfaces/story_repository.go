package interfaces

import (
	"context"

	"github.com/google/uuid"

	"storybook-server/internal/models"
)

// StoryRepository defines the interface for story persistence.
type StoryRepository interface {
	// Create атомарно сохраняет готовую историю. Вызывается один раз,
	// только после того как все иллюстрации успешно созданы.
	Create(ctx context.Context, story *models.Story) error

	// GetByID возвращает историю по идентификатору.
	// Returns models.ErrStoryNotFound if the story does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)

	// ListByUser возвращает краткие записи историй пользователя,
	// отсортированные по дате создания (сначала новые).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StorySummary, error)

	// CountByUser возвращает количество историй пользователя (вход гейта квот).
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
