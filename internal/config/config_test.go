package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"MODEL_PROVIDER", "LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL", "VISION_MODEL",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_DIMENSION", "EMBEDDING_MAX_TOKENS",
	"MODEL_TIMEOUT", "MODEL_RETRY_DELAY", "PRELOAD_MODELS",
	"STORE_BACKEND", "DB_PATH", "DATABASE_URL", "VECTOR_BACKEND",
	"QDRANT_URL", "QDRANT_API_KEY", "QDRANT_COLLECTION",
	"LINK_MAX_RESULTS", "LINK_THRESHOLD",
	"BLOB_DIR", "PUBLIC_BASE_URL", "MAX_UPLOAD_BYTES",
}

// clearEnv blanks every variable Load reads; an empty value counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "notegraph.db"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"EMBEDDING_DIMENSION": "768"},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.EmbeddingDimension != 768 {
					t.Errorf("EmbeddingDimension = %d", cfg.EmbeddingDimension)
				}
				if cfg.StoreBackend != StoreSQLite || cfg.VectorBackend != VectorQdrant || cfg.ModelProvider != ProviderLlamaCpp {
					t.Errorf("backends = %s/%s/%s", cfg.StoreBackend, cfg.VectorBackend, cfg.ModelProvider)
				}
				if cfg.LinkMaxResults != 5 || cfg.LinkThreshold != 0.7 {
					t.Errorf("link settings = %d/%v", cfg.LinkMaxResults, cfg.LinkThreshold)
				}
				if cfg.VisionModelName != cfg.LLMModelName {
					t.Errorf("VisionModelName = %q, want text model %q", cfg.VisionModelName, cfg.LLMModelName)
				}
				if cfg.ModelTimeout != 60*time.Second || cfg.ModelRetryDelay != 500*time.Millisecond {
					t.Errorf("timeouts = %v/%v", cfg.ModelTimeout, cfg.ModelRetryDelay)
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("logging = %v/%s", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.MaxUploadBytes != 10<<20 {
					t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"EMBEDDING_DIMENSION": "1024",
				"LOG_LEVEL":           "debug",
				"LOG_FORMAT":          "JSON",
				"VISION_MODEL":        "llava",
				"VECTOR_BACKEND":      "sqlite",
				"LINK_MAX_RESULTS":    "3",
				"LINK_THRESHOLD":      "0.5",
				"MODEL_TIMEOUT":       "5s",
				"PRELOAD_MODELS":      "true",
				"MAX_UPLOAD_BYTES":    "1024",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("logging = %v/%s", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.VisionModelName != "llava" || cfg.VectorBackend != VectorSQLite {
					t.Errorf("vision/vector = %s/%s", cfg.VisionModelName, cfg.VectorBackend)
				}
				if cfg.LinkMaxResults != 3 || cfg.LinkThreshold != 0.5 {
					t.Errorf("link settings = %d/%v", cfg.LinkMaxResults, cfg.LinkThreshold)
				}
				if cfg.ModelTimeout != 5*time.Second || !cfg.PreloadModels || cfg.MaxUploadBytes != 1024 {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "postgres backend",
			env: map[string]string{
				"EMBEDDING_DIMENSION": "768",
				"STORE_BACKEND":       "postgres",
				"DATABASE_URL":        "postgres://localhost/notegraph",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.StoreBackend != StorePostgres || cfg.DatabaseURL == "" {
					t.Errorf("store = %s %q", cfg.StoreBackend, cfg.DatabaseURL)
				}
			},
		},
		{name: "missing EMBEDDING_DIMENSION", env: map[string]string{}, wantErr: true},
		{name: "invalid EMBEDDING_DIMENSION", env: map[string]string{"EMBEDDING_DIMENSION": "abc"}, wantErr: true},
		{name: "zero EMBEDDING_DIMENSION", env: map[string]string{"EMBEDDING_DIMENSION": "0"}, wantErr: true},
		{name: "invalid LOG_LEVEL", env: map[string]string{"EMBEDDING_DIMENSION": "8", "LOG_LEVEL": "loud"}, wantErr: true},
		{name: "invalid LOG_FORMAT", env: map[string]string{"EMBEDDING_DIMENSION": "8", "LOG_FORMAT": "xml"}, wantErr: true},
		{name: "threshold out of range", env: map[string]string{"EMBEDDING_DIMENSION": "8", "LINK_THRESHOLD": "1.5"}, wantErr: true},
		{name: "invalid MODEL_TIMEOUT", env: map[string]string{"EMBEDDING_DIMENSION": "8", "MODEL_TIMEOUT": "soon"}, wantErr: true},
		{name: "unknown store", env: map[string]string{"EMBEDDING_DIMENSION": "8", "STORE_BACKEND": "mongo"}, wantErr: true},
		{name: "unknown vector backend", env: map[string]string{"EMBEDDING_DIMENSION": "8", "VECTOR_BACKEND": "faiss"}, wantErr: true},
		{name: "postgres without url", env: map[string]string{"EMBEDDING_DIMENSION": "8", "STORE_BACKEND": "postgres"}, wantErr: true},
		{name: "unknown provider", env: map[string]string{"EMBEDDING_DIMENSION": "8", "MODEL_PROVIDER": "gemini"}, wantErr: true},
		{name: "openai without key", env: map[string]string{"EMBEDDING_DIMENSION": "8", "MODEL_PROVIDER": "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("EMBEDDING_DIMENSION", "768")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("NOTEGRAPH_TEST_VAR", "set")
	if got := getEnv("NOTEGRAPH_TEST_VAR", "default"); got != "set" {
		t.Errorf("getEnv() = %q, want set", got)
	}
	t.Setenv("NOTEGRAPH_TEST_VAR", "")
	if got := getEnv("NOTEGRAPH_TEST_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want default", got)
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected json record, got %s", out)
	}
}
