package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
		"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_VECTOR_SIZE",
		"DB_PATH", "DATASET_PATH", "VECTOR_STORE", "CHROMEM_PATH",
		"QDRANT_URL", "COLLECTION", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config applies defaults",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "nutrichat.db"))
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMAPIKey == "test-key" &&
					cfg.VectorStoreKind == "chromem" &&
					cfg.Collection == "nutrition" &&
					cfg.EmbeddingVectorSize == 768 &&
					cfg.APIPort == "9000"
			},
		},
		{
			name:     "missing API key",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "invalid vector store kind",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("VECTOR_STORE", "pinecone")
			},
			wantErr: true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("EMBEDDING_VECTOR_SIZE", "not-a-number")
			},
			wantErr: true,
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("EMBEDDING_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "qdrant store accepted",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "test-key")
				setEnv("VECTOR_STORE", "qdrant")
				setEnv("QDRANT_URL", "http://qdrant:6333")
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "nutrichat.db"))
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.VectorStoreKind == "qdrant" &&
					cfg.QdrantURL == "http://qdrant:6333"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config = %+v", cfg)
			}
		})
	}
}
