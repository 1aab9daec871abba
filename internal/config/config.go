package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Image stores.
const (
	ImageStoreEmbedded = "embedded"
	ImageStoreLocal    = "local"
	ImageStoreMinio    = "minio"
	ImageStoreFirebase = "firebase"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Listing and logistics persistence
	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	SeedDemoData  bool   `mapstructure:"SEED_DEMO_DATA"`
	ListingsTable string `mapstructure:"LISTINGS_TABLE"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"`

	// Favorites
	FavoritesBackend string `mapstructure:"FAVORITES_BACKEND"`
	FavoritesKey     string `mapstructure:"FAVORITES_KEY"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int    `mapstructure:"REDIS_DB"`

	// Images
	ImageStore         string `mapstructure:"IMAGE_STORE"`
	ImageStoragePath   string `mapstructure:"IMAGE_STORAGE_PATH"`
	ImagePublicBaseURL string `mapstructure:"IMAGE_PUBLIC_BASE_URL"`
	MaxImageSizeMB     int    `mapstructure:"MAX_IMAGE_SIZE_MB"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket         string `mapstructure:"FIREBASE_STORAGE_BUCKET"`

	// Elasticsearch Configuration, empty disables search indexing
	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	// NATS, empty disables event publishing
	NatsURL string `mapstructure:"NATS_URL"`

	// Purchase sessions
	PurchaseSessionTTL             time.Duration `mapstructure:"-"`
	PurchaseSessionJanitorSchedule string        `mapstructure:"PURCHASE_SESSION_JANITOR_SCHEDULE"`

	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are configured as plain integers and converted here.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.PurchaseSessionTTL = time.Duration(v.GetInt("PURCHASE_SESSION_TTL_MINUTES")) * time.Minute

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("LISTINGS_TABLE", "announcements")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "material_market_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("FAVORITES_BACKEND", BackendMemory)
	v.SetDefault("FAVORITES_KEY", "material_market:favorites")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("IMAGE_STORE", ImageStoreEmbedded)
	v.SetDefault("IMAGE_STORAGE_PATH", "./images")
	v.SetDefault("IMAGE_PUBLIC_BASE_URL", "/images")
	v.SetDefault("MAX_IMAGE_SIZE_MB", 10)

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "announcement-images")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")

	v.SetDefault("ELASTICSEARCH_URL", "")
	v.SetDefault("NATS_URL", "")

	v.SetDefault("PURCHASE_SESSION_TTL_MINUTES", 60)
	v.SetDefault("PURCHASE_SESSION_JANITOR_SCHEDULE", "@every 10m")

	v.SetDefault("METRICS_NAMESPACE", "material_market")
}

// DSN returns the GORM postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

// MaxImageBytes is the upload limit derived from MAX_IMAGE_SIZE_MB.
func (c *Config) MaxImageBytes() int64 {
	return int64(c.MaxImageSizeMB) << 20
}

// Validate checks backend selections and the settings they depend on.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendMemory, BackendPostgres)
	}

	switch c.FavoritesBackend {
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required when FAVORITES_BACKEND=%s", BackendRedis)
		}
	default:
		return fmt.Errorf("unsupported FAVORITES_BACKEND %q (want %s or %s)", c.FavoritesBackend, BackendMemory, BackendRedis)
	}

	switch c.ImageStore {
	case ImageStoreEmbedded, ImageStoreLocal:
	case ImageStoreMinio:
		if c.MinioEndpoint == "" || c.MinioBucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required when IMAGE_STORE=%s", ImageStoreMinio)
		}
	case ImageStoreFirebase:
		if strings.TrimSpace(c.FirebaseServiceAccountKeyPath) == "" || c.FirebaseStorageBucket == "" {
			return fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_KEY_PATH and FIREBASE_STORAGE_BUCKET are required when IMAGE_STORE=%s", ImageStoreFirebase)
		}
		if _, err := os.Stat(c.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("firebase service account key file %s not found", c.FirebaseServiceAccountKeyPath)
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.ImageStore)
	}

	if c.MaxImageSizeMB <= 0 {
		return fmt.Errorf("MAX_IMAGE_SIZE_MB must be positive")
	}
	return nil
}
