package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"nutrichat/internal/contextutil"
)

// payload keys reserved for the document itself; everything else is metadata.
const (
	payloadDocID    = "doc_id"
	payloadDocument = "document"
)

// QdrantStore implements VectorStore using a remote Qdrant instance.
type QdrantStore struct {
	client     *qdrant.Client
	vectorSize int
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantStore(urlStr string, vectorSize int) (*QdrantStore, error) {
	host, port, err := grpcHostPort(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client, vectorSize: vectorSize}, nil
}

// grpcHostPort derives the gRPC host and port from an HTTP URL. The gRPC
// port is typically the HTTP port + 1.
func grpcHostPort(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}

	return host, port, nil
}

// pointID maps a document id to a deterministic UUID, since Qdrant only
// accepts UUID or integer point ids. The original id stays in the payload.
func pointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(docID)).String()
}

// Replace rebuilds the collection from docs.
func (s *QdrantStore) Replace(ctx context.Context, collection string, docs []Document) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.DeleteCollection(ctx, collection); err != nil {
		return err
	}

	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if len(docs) == 0 {
		logger.InfoContext(ctx, "collection replaced with empty document set", "collection", collection)
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		payload := map[string]any{
			payloadDocID:    doc.ID,
			payloadDocument: doc.Content,
		}
		for k, v := range doc.Metadata {
			payload[k] = v
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(doc.ID)),
			Vectors: qdrant.NewVectors(doc.Embedding...),
			Payload: qdrant.NewValueMap(payload),
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	}); err != nil {
		// Remove the half-written collection so it is never queryable.
		_ = s.client.DeleteCollection(ctx, collection)
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(docs), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "collection replaced", "collection", collection, "count", len(docs))
	return nil
}

// Query returns up to n nearest documents by similarity.
func (s *QdrantStore) Query(ctx context.Context, collection string, embedding []float32, n int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0")
	}

	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return []Result{}, nil
	}

	limit := uint64(n)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]Result, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		results = append(results, resultFromPayload(point.Score, point.Payload))
	}

	return results, nil
}

// resultFromPayload rebuilds a Result from a scored point's payload,
// splitting the reserved doc_id/document keys from the metadata.
func resultFromPayload(score float32, payload map[string]*qdrant.Value) Result {
	res := Result{
		Similarity: score,
		Metadata:   make(map[string]string),
	}
	for k, v := range payload {
		if v == nil {
			continue
		}
		switch k {
		case payloadDocID:
			res.ID = v.GetStringValue()
		case payloadDocument:
			res.Content = v.GetStringValue()
		default:
			res.Metadata[k] = v.GetStringValue()
		}
	}
	return res
}

// DeleteCollection removes the collection if it exists.
func (s *QdrantStore) DeleteCollection(ctx context.Context, collection string) error {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return nil
	}
	if err := s.client.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// Count returns the number of points in the collection, 0 if absent.
func (s *QdrantStore) Count(ctx context.Context, collection string) (int, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !exists {
		return 0, nil
	}

	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection info: %w", err)
	}
	if info.PointsCount == nil {
		return 0, nil
	}
	return int(*info.PointsCount), nil
}
