package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"nutrichat/internal/config"
	"nutrichat/internal/generate"
	"nutrichat/internal/http"
	"nutrichat/internal/indexer"
	"nutrichat/internal/llm"
	"nutrichat/internal/rag"
	"nutrichat/internal/service"
	"nutrichat/internal/storage"
	"nutrichat/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	nutritionRepo := storage.NewNutritionRepo(db)

	// Initialize vector store
	ctx := context.Background()

	var vectorStore vectorstore.VectorStore
	switch cfg.VectorStoreKind {
	case "qdrant":
		vectorStore, err = vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.EmbeddingVectorSize)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		slog.Info("Qdrant vector store ready", "url", cfg.QdrantURL, "collection", cfg.Collection)
	default:
		vectorStore, err = vectorstore.NewChromemStore(cfg.ChromemPath)
		if err != nil {
			log.Fatalf("Failed to open chromem store: %v", err)
		}
		slog.Info("Embedded vector store ready", "path", cfg.ChromemPath, "collection", cfg.Collection)
	}

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.EmbeddingVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.EmbeddingVectorSize)

	// Create indexing pipeline
	pipeline := indexer.NewPipeline(
		cfg.DatasetPath,
		nutritionRepo,
		embedder,
		vectorStore,
		cfg.Collection,
	)

	// Create LLM client and generation layer
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	generator := generate.NewGenerator(llmClient)

	// Create RAG engine; the retriever shares the pipeline's embedder so
	// query and document vectors come from the same model.
	retriever := rag.NewRetriever(embedder, vectorStore, cfg.Collection)
	ragEngine := rag.NewEngine(retriever, generator, rag.DefaultTopN)
	slog.Info("RAG engine initialized")

	assistant := service.NewAssistant(generator)

	// Create router with dependencies
	deps := &http.Deps{
		RAGEngine:     ragEngine,
		Assistant:     assistant,
		NutritionRepo: nutritionRepo,
		Pipeline:      pipeline,
		VectorStore:   vectorStore,
		Collection:    cfg.Collection,
	}
	router := http.NewRouter(deps)

	// Index the dataset in the background after the router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing of nutrition dataset", "path", cfg.DatasetPath)
		count, err := pipeline.Reindex(indexCtx)
		if err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully", "documents", count)
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
