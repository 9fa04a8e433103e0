package rag

import (
	"context"
	"fmt"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/vectorstore"
)

// DefaultTopN is the number of documents retrieved when the caller does not
// ask for a specific count.
const DefaultTopN = 3

// RetrievalError reports a failed retrieval. A missing or empty collection
// is not an error; only a failing embedder or an unreachable store is.
type RetrievalError struct {
	Stage string // "embed" or "search"
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed during %s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Embedder generates embeddings for a batch of texts. The retriever must use
// the same embedder as the indexing pipeline so query and document vectors
// share an embedding space.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Result is a single retrieved document with its similarity score.
type Result struct {
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Score    float32           `json:"score"`
}

// Retriever embeds a query and finds the nearest documents in the vector
// store.
type Retriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *Retriever {
	return &Retriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// Retrieve returns up to n documents most similar to the query, ordered by
// descending similarity. n <= 0 falls back to DefaultTopN. If the collection
// does not exist or holds no documents the result is empty with a nil error.
func (r *Retriever) Retrieve(ctx context.Context, query string, n int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		n = DefaultTopN
	}

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, &RetrievalError{Stage: "embed", Err: err}
	}
	if len(embeddings) == 0 {
		return nil, &RetrievalError{Stage: "embed", Err: fmt.Errorf("no embedding returned")}
	}

	hits, err := r.vectorStore.Query(ctx, r.collection, embeddings[0], n)
	if err != nil {
		return nil, &RetrievalError{Stage: "search", Err: err}
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		results[i] = Result{
			Document: hit.Content,
			Metadata: hit.Metadata,
			Score:    hit.Similarity,
		}
	}

	logger.DebugContext(ctx, "retrieval completed", "collection", r.collection, "requested", n, "returned", len(results))
	return results, nil
}
