package hosting

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
)

var _ interfaces.AssetUploader = (*Client)(nil)

// Config содержит параметры подключения к Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Client загружает сгенерированные изображения на Cloudinary по их URL
// у провайдера генерации.
type Client struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// New создает клиент хостинга изображений.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Client{
		cld:    cld,
		folder: cfg.Folder,
		logger: logger.Named("CloudinaryClient"),
	}, nil
}

// Upload загружает изображение по исходному URL, прикрепляя подпись как
// context-метаданные. Пустой результат считается ошибкой - вызывающий
// решает, повторять ли попытку.
func (c *Client) Upload(ctx context.Context, sourceURL, caption string) (models.IllustrationAsset, error) {
	res, err := c.cld.Upload.Upload(ctx, sourceURL, uploader.UploadParams{
		Folder:         c.folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(false),
		Context:        api.CldAPIMap{"caption": caption},
	})
	if err != nil {
		return models.IllustrationAsset{}, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	// Cloudinary кладет часть ошибок API в тело ответа при nil err.
	if res.Error.Message != "" {
		return models.IllustrationAsset{}, fmt.Errorf("cloudinary upload rejected: %s", res.Error.Message)
	}
	if res.SecureURL == "" && res.URL == "" {
		return models.IllustrationAsset{}, fmt.Errorf("%w: empty upload result", models.ErrUploadFailed)
	}

	c.logger.Debug("Image uploaded to Cloudinary",
		zap.String("public_id", res.PublicID),
		zap.String("secure_url", res.SecureURL),
	)

	return models.IllustrationAsset{
		SecureURL: res.SecureURL,
		URL:       res.URL,
		PublicID:  res.PublicID,
	}, nil
}
