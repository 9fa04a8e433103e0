package llm

import (
	"context"
	"fmt"
	"net/http"
)

// EmbeddingsClient is a client for an OpenAI-compatible embeddings API.
//
// Embedding-space consistency matters: the same client instance must be used
// for indexing and for query embedding, otherwise retrieval silently degrades.
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // expected vector size, validated on every response
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client. Every vector returned
// by EmbedTexts is validated against expectedSize.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// EmbeddingsRequest represents the request payload for the embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedTexts generates one embedding per input text, in input order.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	payload := EmbeddingsRequest{
		Model: c.Model,
		Input: texts,
	}

	// Reuse the chat client's transport helper; same auth and error handling.
	helper := &Client{BaseURL: c.BaseURL, APIKey: c.APIKey, client: c.client}

	var embResp EmbeddingsResponse
	if err := helper.postJSON(ctx, "/v1/embeddings", payload, &embResp); err != nil {
		return nil, err
	}

	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Data))
	}

	result := make([][]float32, len(embResp.Data))
	for i, data := range embResp.Data {
		if len(data.Embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.ExpectedSize)
		}
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}
