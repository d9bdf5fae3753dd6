package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Vector index backends. Ignored when the store is postgres.
const (
	VectorQdrant = "qdrant"
	VectorSQLite = "sqlite"
)

// Model providers.
const (
	ProviderLlamaCpp  = "llamacpp"
	ProviderOpenAI    = "openai"
	ProviderLangChain = "langchain"
)

type modelDefaults struct {
	baseURL          string
	apiKey           string
	textModel        string
	embeddingBaseURL string
	embeddingModel   string
}

// localModelDefaults point at llama.cpp servers on localhost.
// granite-embedding-278m-multilingual has a hard 512 token context.
var localModelDefaults = modelDefaults{
	baseURL:          "http://localhost:8080",
	apiKey:           "dummy-key",
	textModel:        "Llama-3.1-8B-Instruct",
	embeddingBaseURL: "http://localhost:8081",
	embeddingModel:   "granite-embedding-278m-multilingual",
}

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	ModelProvider      string
	LLMBaseURL         string
	LLMAPIKey          string
	LLMModelName       string
	VisionModelName    string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingDimension int
	EmbeddingMaxTokens int
	ModelTimeout       time.Duration
	ModelRetryDelay    time.Duration
	PreloadModels      bool

	StoreBackend  string
	DBPath        string
	DatabaseURL   string
	VectorBackend string

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	LinkMaxResults int
	LinkThreshold  float64

	BlobDir        string
	PublicBaseURL  string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	provider := strings.ToLower(getEnv("MODEL_PROVIDER", ProviderLlamaCpp))
	defaults := localModelDefaults
	if provider == ProviderOpenAI {
		// Empty values defer to the SDK's endpoint and the client's default models.
		defaults = modelDefaults{}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		ModelProvider:      provider,
		LLMBaseURL:         getEnv("LLM_BASE_URL", defaults.baseURL),
		LLMAPIKey:          getEnv("LLM_API_KEY", defaults.apiKey),
		LLMModelName:       getEnv("LLM_MODEL", defaults.textModel),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", defaults.embeddingBaseURL),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", defaults.embeddingModel),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),
		DBPath:        getEnv("DB_PATH", "./data/notegraph.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		VectorBackend: strings.ToLower(getEnv("VECTOR_BACKEND", VectorQdrant)),

		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "notes"),

		BlobDir:       getEnv("BLOB_DIR", "./data/blobs"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
	}
	// The vision model defaults to the text model; multimodal servers serve both.
	cfg.VisionModelName = getEnv("VISION_MODEL", cfg.LLMModelName)

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// EMBEDDING_DIMENSION must match the output size of the embeddings model.
	// Changing it requires recreating the vector collection or table.
	dimStr := getEnv("EMBEDDING_DIMENSION", "")
	if dimStr == "" {
		return nil, fmt.Errorf("EMBEDDING_DIMENSION is required")
	}
	if cfg.EmbeddingDimension, err = strconv.Atoi(dimStr); err != nil {
		return nil, fmt.Errorf("EMBEDDING_DIMENSION must be a valid integer: %w", err)
	}
	if cfg.EmbeddingDimension <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSION must be greater than 0")
	}

	if cfg.EmbeddingMaxTokens, err = getInt("EMBEDDING_MAX_TOKENS", 512); err != nil {
		return nil, err
	}
	if cfg.ModelTimeout, err = getDuration("MODEL_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ModelRetryDelay, err = getDuration("MODEL_RETRY_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.PreloadModels, err = getBool("PRELOAD_MODELS", false); err != nil {
		return nil, err
	}
	if cfg.LinkMaxResults, err = getInt("LINK_MAX_RESULTS", 5); err != nil {
		return nil, err
	}
	if cfg.LinkMaxResults <= 0 {
		return nil, fmt.Errorf("LINK_MAX_RESULTS must be greater than 0")
	}
	if cfg.LinkThreshold, err = getFloat("LINK_THRESHOLD", 0.7); err != nil {
		return nil, err
	}
	if cfg.LinkThreshold < -1 || cfg.LinkThreshold > 1 {
		return nil, fmt.Errorf("LINK_THRESHOLD must be within [-1, 1]")
	}
	maxUpload, err := getInt("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be greater than 0")
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	switch cfg.ModelProvider {
	case ProviderLlamaCpp, ProviderLangChain:
	case ProviderOpenAI:
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required for MODEL_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("MODEL_PROVIDER must be llamacpp, openai or langchain, got %q", cfg.ModelProvider)
	}

	switch cfg.StoreBackend {
	case StoreSQLite:
		switch cfg.VectorBackend {
		case VectorQdrant, VectorSQLite:
		default:
			return nil, fmt.Errorf("VECTOR_BACKEND must be qdrant or sqlite, got %q", cfg.VectorBackend)
		}
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be sqlite or postgres, got %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// loadDotEnv loads the first .env found walking up from the working directory.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
	}
	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
