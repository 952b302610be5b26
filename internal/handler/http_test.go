package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-server/internal/cache"
	"storybook-server/internal/config"
	"storybook-server/internal/mocks"
	"storybook-server/internal/models"
	"storybook-server/internal/quota"
	"storybook-server/internal/retry"
	"storybook-server/internal/service"
	"storybook-server/internal/styles"
)

const testJWTSecret = "test-jwt-secret"

type handlerMocks struct {
	users    *mocks.UserRepository
	stories  *mocks.StoryRepository
	syncer   *mocks.SubscriptionSyncer
	gen      *mocks.GenerationClient
	uploader *mocks.AssetUploader
}

func newTestRouter(t *testing.T) (*gin.Engine, *handlerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := &handlerMocks{
		users:    new(mocks.UserRepository),
		stories:  new(mocks.StoryRepository),
		syncer:   new(mocks.SubscriptionSyncer),
		gen:      new(mocks.GenerationClient),
		uploader: new(mocks.AssetUploader),
	}

	registry := styles.NewRegistry()
	pipeline := service.NewIllustrationPipeline(m.gen, m.uploader, registry, cache.New(time.Minute, time.Minute), service.PipelineConfig{
		UploadPolicy:    retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond},
		PromptMaxLength: 3800,
	}, zap.NewNop())
	gate := quota.NewGate(quota.Limits{Free: 2, Plus: 10, Pro: 50, Premium: 200})
	svc := service.NewStoryService(m.users, m.stories, m.syncer, m.gen, pipeline, gate, zap.NewNop())

	cfg := &config.Config{JWTSecret: testJWTSecret}
	h := NewStoryHandler(svc, registry, cfg, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router, nil)
	return router, m
}

func signToken(t *testing.T, userID uuid.UUID, expiresIn time.Duration) string {
	t.Helper()
	claims := models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	w := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.ErrCodeUnauthorized, decodeError(t, w).Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), -time.Hour))
	w := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Authorization", "Token abc")
	w := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListStories_OK(t *testing.T) {
	router, m := newTestRouter(t)
	userID := uuid.New()

	summaries := []models.StorySummary{
		{ID: uuid.New(), Title: "A Magical Adventure", HeroImage: "data:image/jpeg;base64,AAAA"},
	}
	m.stories.On("ListByUser", mock.Anything, userID).Return(summaries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, time.Hour))
	w := doRequest(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.StorySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, summaries[0].ID, got[0].ID)
}

func TestGetStory_InvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), time.Hour))
	w := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeBadRequest, decodeError(t, w).Code)
}

func TestGetStory_NotFound(t *testing.T) {
	router, m := newTestRouter(t)
	userID := uuid.New()
	storyID := uuid.New()

	m.stories.On("GetByID", mock.Anything, storyID).Return(nil, models.ErrStoryNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/stories/"+storyID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, time.Hour))
	w := doRequest(router, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCodeNotFound, decodeError(t, w).Code)
}

func TestGenerateStory_MissingImage(t *testing.T) {
	router, _ := newTestRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Maya"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/stories/generate", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), time.Hour))
	w := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateStory_UnknownStyle(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartWithImage(t, map[string]string{"style": "anime"})
	req := httptest.NewRequest(http.MethodPost, "/api/stories/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), time.Hour))
	w := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)
}

// Отказ гейта транслируется в 403 с потолком тарифа в теле ответа.
func TestGenerateStory_QuotaDenied(t *testing.T) {
	router, m := newTestRouter(t)
	userID := uuid.New()

	user := &models.User{ID: userID, Subscription: models.Subscription{}}
	m.users.On("GetUserByID", mock.Anything, userID).Return(user, nil).Once()
	m.syncer.On("Sync", mock.Anything, user).Return(models.Subscription{}, nil).Once()
	m.users.On("UpdateSubscription", mock.Anything, userID, models.Subscription{}).Return(nil).Once()
	m.stories.On("CountByUser", mock.Anything, userID).Return(int64(2), nil).Once()

	body, contentType := multipartWithImage(t, map[string]string{"name": "Maya"})
	req := httptest.NewRequest(http.MethodPost, "/api/stories/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, time.Hour))
	w := doRequest(router, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, models.ErrCodeStoryLimit, resp.Code)
	assert.Equal(t, 2, resp.Limit, "ответ должен нести потолок бесплатного тарифа")
}

func TestListStyles_OK(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/styles", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), time.Hour))
	w := doRequest(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Styles []models.IllustrationStyle `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t,
		[]models.IllustrationStyle{models.StyleGhibli, models.StylePixar, models.StyleDisney},
		resp.Styles,
	)
}

// multipartWithImage собирает multipart-форму с маленьким валидным PNG.
func multipartWithImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", "kid.png")
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}
