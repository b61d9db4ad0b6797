package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Label Studio connection
	LabelStudioURL    string
	LabelStudioAPIKey string

	// Gemini extraction
	GeminiAPIKey string
	GeminiModel  string

	// Worker pool
	WorkerCount     int
	MaxQueueSize    int
	MaxConcurrentAI int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Storage
	DownloadsDir string

	// Section catalogue override (YAML file); empty uses the built-in.
	CatalogueFile string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("RESUMIND_API_KEY"),

		LabelStudioURL:    envOr("LABEL_STUDIO_URL", "http://localhost:8080"),
		LabelStudioAPIKey: os.Getenv("LABEL_STUDIO_API_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash-preview-05-20"),

		WorkerCount:     envInt("WORKER_COUNT", 4),
		MaxQueueSize:    envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentAI: envInt("MAX_CONCURRENT_AI", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		DownloadsDir: envOr("DOWNLOADS_DIR", "downloads"),

		CatalogueFile: os.Getenv("CATALOGUE_FILE"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentAI <= 0 {
		cfg.MaxConcurrentAI = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.DownloadsDir == "" {
		cfg.DownloadsDir = "downloads"
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RESUMIND_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
