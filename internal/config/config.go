package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"storybook-server/internal/utils"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Database (PostgreSQL)
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" required:"true"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Redis (rate limiter)
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Секретное поле БЕЗ envconfig тега
	RedisPassword string

	// JWT - Секретное поле БЕЗ envconfig тега
	JWTSecret string

	// Генерация (OpenAI-совместимый провайдер)
	AITextModel  string        `envconfig:"AI_TEXT_MODEL" default:"gpt-4o"`
	AIImageModel string        `envconfig:"AI_IMAGE_MODEL" default:"dall-e-3"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:""`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Хостинг изображений (Cloudinary)
	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME" required:"true"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY" required:"true"`
	CloudinaryFolder    string `envconfig:"CLOUDINARY_FOLDER" default:"storybook"`
	// Секретное поле БЕЗ envconfig тега
	CloudinaryAPISecret string

	// Платежный провайдер (Stripe). Необязательный: без ключа синхронизация
	// подписок отключается и квота считается по сохраненному состоянию.
	StripeSecretKey string

	// Квоты историй по тарифам
	QuotaFree    int `envconfig:"QUOTA_FREE" default:"2"`
	QuotaPlus    int `envconfig:"QUOTA_PLUS" default:"10"`
	QuotaPro     int `envconfig:"QUOTA_PRO" default:"50"`
	QuotaPremium int `envconfig:"QUOTA_PREMIUM" default:"200"`

	// Кэш иллюстраций
	CacheTTL           time.Duration `envconfig:"ILLUSTRATION_CACHE_TTL" default:"1h"`
	CacheSweepInterval time.Duration `envconfig:"ILLUSTRATION_CACHE_SWEEP" default:"10m"`

	// Ретраи загрузки на хостинг
	UploadMaxAttempts int           `envconfig:"UPLOAD_MAX_ATTEMPTS" default:"3"`
	UploadBaseDelay   time.Duration `envconfig:"UPLOAD_BASE_DELAY" default:"500ms"`

	// Потолок длины промпта для генерации изображений (в рунах).
	// Держим с запасом ниже жесткого лимита DALL-E в 4000 символов.
	PromptMaxLength int `envconfig:"PROMPT_MAX_LENGTH" default:"3800"`

	// Rate limiting (запросов на генерацию в минуту с одного IP)
	GenerateRateLimit int `envconfig:"GENERATE_RATE_LIMIT" default:"5"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	// Загружаем НЕсекретные переменные из окружения
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Загружаем ОБЯЗАТЕЛЬНЫЕ секреты из файлов
	var loadErr error
	cfg.DBPassword, loadErr = utils.ReadSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = utils.ReadSecret("jwt_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.AIAPIKey, loadErr = utils.ReadSecret("ai_api_key")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.CloudinaryAPISecret, loadErr = utils.ReadSecret("cloudinary_api_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	// Загружаем НЕОБЯЗАТЕЛЬНЫЕ секреты
	if redisPass, err := utils.ReadSecret("redis_password"); err == nil {
		cfg.RedisPassword = redisPass
		log.Println("Redis password loaded from secret.")
	} else {
		log.Printf("Optional secret 'redis_password' not found: %v. Assuming no password.", err)
	}

	if stripeKey, err := utils.ReadSecret("stripe_secret_key"); err == nil {
		cfg.StripeSecretKey = stripeKey
		log.Println("Stripe secret key loaded from secret.")
	} else {
		log.Printf("Optional secret 'stripe_secret_key' not found: %v. Subscription sync disabled.", err)
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}
