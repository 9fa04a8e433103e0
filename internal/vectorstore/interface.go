package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks nutrichat/internal/vectorstore VectorStore

import "context"

// Document is an indexed document with a precomputed embedding.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  map[string]string
}

// Result is a nearest-neighbor match, most similar first.
type Result struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// VectorStore defines the interface for vector collection operations.
// Collections are replaced wholesale; there is no incremental update.
type VectorStore interface {
	// Replace rebuilds the collection from the given documents. The previous
	// collection is removed first; if the write fails partway, the collection
	// is removed again so a half-written index is never queryable.
	Replace(ctx context.Context, collection string, docs []Document) error

	// Query returns up to n nearest documents by similarity, descending.
	// A missing or empty collection yields an empty result, not an error.
	Query(ctx context.Context, collection string, embedding []float32, n int) ([]Result, error)

	// DeleteCollection removes the collection. Absence is not an error.
	DeleteCollection(ctx context.Context, collection string) error

	// Count returns the number of documents in the collection, 0 if absent.
	Count(ctx context.Context, collection string) (int, error)
}
