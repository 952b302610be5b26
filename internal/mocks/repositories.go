package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storybook-server/internal/models"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) UpdateSubscription(ctx context.Context, userID uuid.UUID, sub models.Subscription) error {
	args := m.Called(ctx, userID, sub)
	return args.Error(0)
}
func (m *UserRepository) UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, pm models.PaymentMethod) error {
	args := m.Called(ctx, userID, pm)
	return args.Error(0)
}

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}
func (m *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StorySummary, error) {
	args := m.Called(ctx, userID)
	summaries, _ := args.Get(0).([]models.StorySummary)
	return summaries, args.Error(1)
}
func (m *StoryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
