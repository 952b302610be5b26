package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/imaging"
	"storybook-server/internal/models"
)

// Имя персонажа по умолчанию, если клиент его не прислал.
const defaultCharacterName = "Maya"

var (
	validQualities = map[string]bool{"": true, "standard": true, "hd": true}
	validSizes     = map[string]bool{"": true, "1024x1024": true, "1024x1792": true, "1792x1024": true}
)

// GenerateStory обрабатывает POST /api/stories/generate.
// Multipart: image (файл, обязателен), name, style, quality, size, forceRefresh.
func (h *StoryHandler) GenerateStory(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: image file is required", models.ErrInvalidInput))
		return
	}
	if fileHeader.Size > maxUploadSize {
		handleServiceError(c, fmt.Errorf("%w: image exceeds %d bytes", models.ErrInvalidInput, maxUploadSize))
		return
	}

	style, err := models.ParseStyle(c.PostForm("style"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	quality := c.PostForm("quality")
	if !validQualities[quality] {
		handleServiceError(c, fmt.Errorf("%w: unsupported quality %q", models.ErrInvalidInput, quality))
		return
	}
	size := c.PostForm("size")
	if !validSizes[size] {
		handleServiceError(c, fmt.Errorf("%w: unsupported size %q", models.ErrInvalidInput, size))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = defaultCharacterName
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: cannot read image file", models.ErrInvalidInput))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: cannot read image file", models.ErrInvalidInput))
		return
	}

	// Уменьшаем фото до размера, пригодного для vision-вызовов и хранения.
	resized, err := imaging.FitJPEG(raw)
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: unsupported or corrupt image", models.ErrInvalidInput))
		return
	}

	req := &models.StoryRequest{
		UserID:        userID,
		ImageData:     resized,
		CharacterName: name,
		Style:         style,
		Options: models.GenerationOptions{
			Quality:      quality,
			Size:         size,
			ForceRefresh: c.PostForm("forceRefresh") == "true",
		},
	}

	story, err := h.service.GenerateStory(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.logger.Info("Story generated via API",
		zap.String("storyID", story.ID.String()),
		zap.String("userID", userID.String()),
	)
	c.JSON(http.StatusCreated, story)
}

// GetStory обрабатывает GET /api/stories/:id.
func (h *StoryHandler) GetStory(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: invalid story id", models.ErrInvalidInput))
		return
	}

	story, err := h.service.GetStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

// ListStories обрабатывает GET /api/stories.
func (h *StoryHandler) ListStories(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	summaries, err := h.service.ListStories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// ListStyles обрабатывает GET /api/styles - список поддерживаемых стилей.
func (h *StoryHandler) ListStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": h.styles.Known()})
}
