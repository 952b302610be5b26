package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storybook-server/internal/config"
	"storybook-server/internal/service"
	"storybook-server/internal/styles"
)

// Ограничение размера загружаемого фото (multipart), в байтах.
const maxUploadSize = 10 << 20 // 10 MiB

// StoryHandler обрабатывает HTTP-запросы генерации и чтения историй.
type StoryHandler struct {
	service *service.StoryService
	styles  *styles.Registry
	cfg     *config.Config
	logger  *zap.Logger
}

// NewStoryHandler создает обработчик историй.
func NewStoryHandler(svc *service.StoryService, registry *styles.Registry, cfg *config.Config, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		service: svc,
		styles:  registry,
		cfg:     cfg,
		logger:  logger.Named("StoryHandler"),
	}
}

// RegisterRoutes регистрирует маршруты API. rateLimiter применяется только
// к маршруту генерации - остальные чтения дешевые.
func (h *StoryHandler) RegisterRoutes(router *gin.Engine, rateLimiter gin.HandlerFunc) {
	api := router.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		stories := api.Group("/stories")
		{
			if rateLimiter != nil {
				stories.POST("/generate", rateLimiter, h.GenerateStory)
			} else {
				stories.POST("/generate", h.GenerateStory)
			}
			stories.GET("", h.ListStories)
			stories.GET("/:id", h.GetStory)
		}
		api.GET("/subscription", h.GetSubscription)
		api.GET("/styles", h.ListStyles)
	}
}
