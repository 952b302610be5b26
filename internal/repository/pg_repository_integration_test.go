package repository_test // Используем _test пакет для изоляции

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"storybook-server/internal/database"
	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
	"storybook-server/internal/repository"
)

// RepositoryTestSuite прогоняет репозитории против настоящего PostgreSQL
// в контейнере.
type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	users       interfaces.UserRepository
	stories     interfaces.StoryRepository
	logger      *zap.Logger
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем встроенные миграции
	require.NoError(s.T(), database.ApplyMigrations(s.pgPool), "Failed to run migrations")

	s.users = repository.NewUserRepository(s.pgPool, s.logger)
	s.stories = repository.NewStoryRepository(s.pgPool, s.logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

// Перед каждым тестом очищаем таблицы.
func (s *RepositoryTestSuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE stories, users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate tables")
}

// insertUser создает тестового пользователя напрямую.
func (s *RepositoryTestSuite) insertUser(email string) uuid.UUID {
	var id uuid.UUID
	err := s.pgPool.QueryRow(s.ctx,
		"INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id",
		email, "Test Parent").Scan(&id)
	require.NoError(s.T(), err)
	return id
}

func (s *RepositoryTestSuite) testStory(userID uuid.UUID) *models.Story {
	return &models.Story{
		UserID:  userID,
		Title:   "A Magical Adventure",
		Content: []string{"Para one.", "Para two."},
		Images: []models.IllustrationAsset{
			{SecureURL: "https://cdn/1.jpg", PublicID: "storybook/1", Style: models.StyleGhibli},
			{SecureURL: "https://cdn/2.jpg", PublicID: "storybook/2", Style: models.StyleGhibli},
		},
		HeroImage: "data:image/jpeg;base64,AAAA",
	}
}

func (s *RepositoryTestSuite) TestCreateAndGetStory() {
	userID := s.insertUser("a@example.com")
	story := s.testStory(userID)

	err := s.stories.Create(s.ctx, story)
	s.Require().NoError(err)
	s.Require().NotEqual(uuid.Nil, story.ID, "Create должен заполнить ID")
	s.Require().False(story.CreatedAt.IsZero(), "Create должен заполнить CreatedAt")

	got, err := s.stories.GetByID(s.ctx, story.ID)
	s.Require().NoError(err)
	s.Equal(story.UserID, got.UserID)
	s.Equal(story.Title, got.Title)
	s.Equal(story.Content, got.Content)
	s.Equal(story.Images, got.Images)
	s.Equal(story.HeroImage, got.HeroImage)
}

func (s *RepositoryTestSuite) TestGetStoryNotFound() {
	_, err := s.stories.GetByID(s.ctx, uuid.New())
	s.Require().ErrorIs(err, models.ErrStoryNotFound)
}

// Выравнивание абзацев и иллюстраций охраняется и на уровне репозитория,
// и CHECK-констрейнтом в базе.
func (s *RepositoryTestSuite) TestCreateRejectsMisalignedStory() {
	userID := s.insertUser("b@example.com")
	story := s.testStory(userID)
	story.Images = story.Images[:1]

	err := s.stories.Create(s.ctx, story)
	s.Require().Error(err)
	s.Require().ErrorIs(err, models.ErrInvalidInput)
}

func (s *RepositoryTestSuite) TestListByUserNewestFirst() {
	userID := s.insertUser("c@example.com")
	otherID := s.insertUser("d@example.com")

	first := s.testStory(userID)
	s.Require().NoError(s.stories.Create(s.ctx, first))
	// Вторая история создается позже первой.
	_, err := s.pgPool.Exec(s.ctx,
		"UPDATE stories SET created_at = created_at - interval '1 hour' WHERE id = $1", first.ID)
	s.Require().NoError(err)

	second := s.testStory(userID)
	s.Require().NoError(s.stories.Create(s.ctx, second))

	foreign := s.testStory(otherID)
	s.Require().NoError(s.stories.Create(s.ctx, foreign))

	list, err := s.stories.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(list, 2, "чужие истории не должны попадать в список")
	s.Equal(second.ID, list[0].ID, "сначала новые")
	s.Equal(first.ID, list[1].ID)
	s.Equal("A Magical Adventure", list[0].Title)
	s.NotEmpty(list[0].HeroImage)
}

func (s *RepositoryTestSuite) TestCountByUser() {
	userID := s.insertUser("e@example.com")

	count, err := s.stories.CountByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.EqualValues(0, count)

	s.Require().NoError(s.stories.Create(s.ctx, s.testStory(userID)))
	s.Require().NoError(s.stories.Create(s.ctx, s.testStory(userID)))

	count, err = s.stories.CountByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.EqualValues(2, count)
}

func (s *RepositoryTestSuite) TestGetUserAndUpdateSubscription() {
	userID := s.insertUser("f@example.com")

	user, err := s.users.GetUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("f@example.com", user.Email)
	s.Equal(models.TierNone, user.Subscription.Tier)
	s.False(user.Subscription.IsActive())

	periodEnd := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	sub := models.Subscription{
		Status:           models.SubscriptionStatusActive,
		Tier:             models.TierPro,
		PlanID:           "price_pro_monthly",
		CurrentPeriodEnd: &periodEnd,
	}
	s.Require().NoError(s.users.UpdateSubscription(s.ctx, userID, sub))

	user, err = s.users.GetUserByID(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(models.TierPro, user.Subscription.Tier)
	s.True(user.Subscription.IsActive())
	s.Require().NotNil(user.Subscription.CurrentPeriodEnd)
	s.WithinDuration(periodEnd, *user.Subscription.CurrentPeriodEnd, time.Second)
}

func (s *RepositoryTestSuite) TestGetUserNotFound() {
	_, err := s.users.GetUserByID(s.ctx, uuid.New())
	s.Require().ErrorIs(err, models.ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestUpdateSubscriptionMissingUser() {
	err := s.users.UpdateSubscription(s.ctx, uuid.New(), models.Subscription{Tier: models.TierPlus})
	s.Require().ErrorIs(err, models.ErrUserNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}
