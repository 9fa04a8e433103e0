package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	DBPath              string
	DatasetPath         string
	VectorStoreKind     string
	ChromemPath         string
	QdrantURL           string
	Collection          string
	APIPort             string
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config
// struct. It applies defaults for optional fields and validates required
// fields. If a .env file exists in the current directory or project root, it
// is loaded automatically; environment variables already set take precedence
// over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to the project root.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-004"),
		DBPath:             getEnv("DB_PATH", "./data/nutrichat.db"),
		DatasetPath:        getEnv("DATASET_PATH", "./data/nutrition.csv"),
		VectorStoreKind:    getEnv("VECTOR_STORE", "chromem"),
		ChromemPath:        getEnv("CHROMEM_PATH", "./data/vectors"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		Collection:         getEnv("COLLECTION", "nutrition"),
		APIPort:            getEnv("API_PORT", "9000"),
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error")
	}
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))

	switch cfg.VectorStoreKind {
	case "chromem", "qdrant":
	default:
		return nil, fmt.Errorf("VECTOR_STORE must be chromem or qdrant, got %q", cfg.VectorStoreKind)
	}

	// Must match the output vector size of the embeddings model. If the size
	// changes, the vector collection must be rebuilt.
	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "768")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	// Create ./data directory if it doesn't exist (for the DB file).
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
