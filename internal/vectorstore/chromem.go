package vectorstore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"nutrichat/internal/contextutil"
)

// ChromemStore implements VectorStore using the embedded chromem-go database.
// Documents carry precomputed embeddings, so no embedding function is wired
// into the collections themselves.
type ChromemStore struct {
	db *chromem.DB
}

// NewChromemStore creates a chromem-backed store. An empty path selects an
// in-memory database; otherwise the store persists under path.
func NewChromemStore(path string) (*ChromemStore, error) {
	if path == "" {
		return &ChromemStore{db: chromem.NewDB()}, nil
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem database: %w", err)
	}
	return &ChromemStore{db: db}, nil
}

// Replace rebuilds the collection from docs.
func (s *ChromemStore) Replace(ctx context.Context, collection string, docs []Document) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.DeleteCollection(ctx, collection); err != nil {
		return err
	}

	col, err := s.db.GetOrCreateCollection(collection, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if len(docs) == 0 {
		logger.InfoContext(ctx, "collection replaced with empty document set", "collection", collection)
		return nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Content,
			Embedding: doc.Embedding,
			Metadata:  doc.Metadata,
		}
	}

	if err := col.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		// Remove the half-written collection so it is never queryable.
		_ = s.db.DeleteCollection(collection)
		return fmt.Errorf("failed to add documents: %w", err)
	}

	logger.InfoContext(ctx, "collection replaced", "collection", collection, "count", len(docs))
	return nil
}

// Query returns up to n nearest documents by cosine similarity.
func (s *ChromemStore) Query(ctx context.Context, collection string, embedding []float32, n int) ([]Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0")
	}

	col := s.db.GetCollection(collection, nil)
	if col == nil {
		return []Result{}, nil
	}

	count := col.Count()
	if count == 0 {
		return []Result{}, nil
	}
	if n > count {
		n = count
	}

	matches, err := col.QueryEmbedding(ctx, embedding, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			ID:         m.ID,
			Content:    m.Content,
			Metadata:   m.Metadata,
			Similarity: m.Similarity,
		}
	}
	return results, nil
}

// DeleteCollection removes the collection if it exists.
func (s *ChromemStore) DeleteCollection(ctx context.Context, collection string) error {
	if s.db.GetCollection(collection, nil) == nil {
		return nil
	}
	if err := s.db.DeleteCollection(collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// Count returns the number of documents in the collection, 0 if absent.
func (s *ChromemStore) Count(ctx context.Context, collection string) (int, error) {
	col := s.db.GetCollection(collection, nil)
	if col == nil {
		return 0, nil
	}
	return col.Count(), nil
}
