package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storybook-server/internal/models"
)

// Mock GenerationClient
type GenerationClient struct {
	mock.Mock
}

func (m *GenerationClient) GenerateStoryText(ctx context.Context, imageDataURI, characterName string) (string, error) {
	args := m.Called(ctx, imageDataURI, characterName)
	return args.String(0), args.Error(1)
}
func (m *GenerationClient) DescribeImage(ctx context.Context, persona, imageDataURI string) (string, error) {
	args := m.Called(ctx, persona, imageDataURI)
	return args.String(0), args.Error(1)
}
func (m *GenerationClient) AnalyzeParagraph(ctx context.Context, paragraph string) (string, error) {
	args := m.Called(ctx, paragraph)
	return args.String(0), args.Error(1)
}
func (m *GenerationClient) SynthesizePrompt(ctx context.Context, persona, description, analysis, paragraph string) (string, error) {
	args := m.Called(ctx, persona, description, analysis, paragraph)
	return args.String(0), args.Error(1)
}
func (m *GenerationClient) GenerateImage(ctx context.Context, prompt, quality, size string) (string, error) {
	args := m.Called(ctx, prompt, quality, size)
	return args.String(0), args.Error(1)
}

// Mock AssetUploader
type AssetUploader struct {
	mock.Mock
}

func (m *AssetUploader) Upload(ctx context.Context, sourceURL, caption string) (models.IllustrationAsset, error) {
	args := m.Called(ctx, sourceURL, caption)
	asset, _ := args.Get(0).(models.IllustrationAsset)
	return asset, args.Error(1)
}

// Mock SubscriptionSyncer
type SubscriptionSyncer struct {
	mock.Mock
}

func (m *SubscriptionSyncer) Sync(ctx context.Context, user *models.User) (models.Subscription, error) {
	args := m.Called(ctx, user)
	sub, _ := args.Get(0).(models.Subscription)
	return sub, args.Error(1)
}
