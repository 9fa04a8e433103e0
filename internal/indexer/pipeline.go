package indexer

import (
	"context"
	"fmt"
	"sync"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/dataset"
	"nutrichat/internal/storage"
	"nutrichat/internal/vectorstore"
)

// IndexError reports a failed reindex. The vector collection is left either
// fully rebuilt or absent, never partially written.
type IndexError struct {
	Stage string // "embed" or "store"
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("reindex failed during %s: %v", e.Stage, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Embedder generates embeddings for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates dataset loading into SQLite and the vector store.
type Pipeline struct {
	datasetPath   string
	nutritionRepo storage.NutritionStore
	embedder      Embedder
	vectorStore   vectorstore.VectorStore
	collection    string

	// Serializes reindex runs; queries are served from the previous
	// collection until the swap completes.
	mu sync.Mutex
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	datasetPath string,
	nutritionRepo storage.NutritionStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		datasetPath:   datasetPath,
		nutritionRepo: nutritionRepo,
		embedder:      embedder,
		vectorStore:   vectorStore,
		collection:    collection,
	}
}

// Reindex loads the dataset, replaces the nutrition table, and rebuilds the
// vector collection. Embeddings for the whole batch are computed before the
// store is touched, so an embedding failure leaves the old index in place.
// Returns the number of indexed documents.
func (p *Pipeline) Reindex(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)

	table, err := dataset.Load(p.datasetPath)
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "dataset loaded", "path", p.datasetPath, "records", len(table.Records))

	if err := p.nutritionRepo.ReplaceAll(ctx, table); err != nil {
		return 0, fmt.Errorf("failed to replace nutrition table: %w", err)
	}

	docs, err := p.buildDocuments(ctx, table)
	if err != nil {
		return 0, err
	}

	if err := p.vectorStore.Replace(ctx, p.collection, docs); err != nil {
		return 0, &IndexError{Stage: "store", Err: err}
	}

	logger.InfoContext(ctx, "reindex completed", "collection", p.collection, "documents", len(docs))
	return len(docs), nil
}

// buildDocuments embeds every description and pairs it with its metadata.
// Ids are doc_<row_index>; they are reassigned from 0 on every reindex.
func (p *Pipeline) buildDocuments(ctx context.Context, table *dataset.Table) ([]vectorstore.Document, error) {
	if len(table.Records) == 0 {
		return []vectorstore.Document{}, nil
	}

	texts := make([]string, len(table.Records))
	for i, rec := range table.Records {
		texts[i] = rec.Description
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, &IndexError{Stage: "embed", Err: err}
	}
	if len(embeddings) != len(texts) {
		return nil, &IndexError{Stage: "embed", Err: fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings))}
	}

	docs := make([]vectorstore.Document, len(table.Records))
	for i, rec := range table.Records {
		docs[i] = vectorstore.Document{
			ID:        fmt.Sprintf("doc_%d", i),
			Content:   rec.Description,
			Embedding: embeddings[i],
			Metadata:  recordMetadata(rec),
		}
	}
	return docs, nil
}

// recordMetadata maps every column except description into string metadata.
// Numbers use the same formatter as the synthesized descriptions.
func recordMetadata(rec dataset.Record) map[string]string {
	meta := map[string]string{
		"name":         rec.Name,
		"calories":     dataset.FormatNumber(rec.Calories),
		"proteins":     dataset.FormatNumber(rec.Proteins),
		"fat":          dataset.FormatNumber(rec.Fat),
		"carbohydrate": dataset.FormatNumber(rec.Carbohydrate),
	}
	for k, v := range rec.Extra {
		meta[k] = v
	}
	return meta
}
