package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Dataset
		Images
		Wikipedia
		Log
		Tasks
		ImagePrefetch
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path            string
		CatalogCacheTTL time.Duration // In-memory breed catalog cache, 0 disables expiry
	}
	Dataset struct {
		Path string // Empty means the dataset embedded in the binary
	}
	Images struct {
		CacheDir         string
		ThumbnailMaxSize int // Longest side of generated thumbnails, in pixels
	}
	Wikipedia struct {
		APIURL    string
		Timeout   time.Duration
		RateLimit float64 // Requests per second
	}
	Log struct {
		Level  string
		Format string // text or json
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	ImagePrefetch struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// LoadEnvFile copies variables from a dotenv file into the process
// environment without overriding existing ones. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("catalog_cache_ttl", "10m")
	v.SetDefault("dataset_path", "")
	v.SetDefault("image_cache_dir", DefaultImageCacheDir)
	v.SetDefault("thumbnail_max_size", 320)

	// Wikipedia defaults
	v.SetDefault("wikipedia_api_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia_timeout", "10s")
	v.SetDefault("wikipedia_rate_limit", 2)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("image_prefetch_enabled", false)
	v.SetDefault("image_prefetch_schedule", "0 3 * * *") // Daily at 03:00

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:            v.GetString("DATABASE_PATH"),
			CatalogCacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Dataset: Dataset{
			Path: v.GetString("DATASET_PATH"),
		},
		Images: Images{
			CacheDir:         v.GetString("IMAGE_CACHE_DIR"),
			ThumbnailMaxSize: v.GetInt("THUMBNAIL_MAX_SIZE"),
		},
		Wikipedia: Wikipedia{
			APIURL:    v.GetString("WIKIPEDIA_API_URL"),
			Timeout:   v.GetDuration("WIKIPEDIA_TIMEOUT"),
			RateLimit: v.GetFloat64("WIKIPEDIA_RATE_LIMIT"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		ImagePrefetch: ImagePrefetch{
			Enabled:  v.GetBool("IMAGE_PREFETCH_ENABLED"),
			Schedule: v.GetString("IMAGE_PREFETCH_SCHEDULE"),
		},
	}
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
