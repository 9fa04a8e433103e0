package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"nutrichat/internal/indexer"
	storage_mocks "nutrichat/internal/storage/mocks"
	vectorstore_mocks "nutrichat/internal/vectorstore/mocks"
)

type stubEmbedder struct{ err error }

func (s *stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{1, 0, 0}
	}
	return vecs, nil
}

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrition.csv")
	content := "name,calories,proteins,fat,carbohydrate\nNasi Goreng,250,8,10,35\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestIndexHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storage_mocks.NewMockNutritionStore(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Replace(gomock.Any(), "nutrition", gomock.Len(1)).Return(nil)

	pipeline := indexer.NewPipeline(writeTestDataset(t), repo, &stubEmbedder{}, store, "nutrition")
	handler := NewIndexHandler(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp IndexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Indexed != 1 {
		t.Errorf("indexed = %d, want 1", resp.Indexed)
	}
}

func TestIndexHandler_EmbedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storage_mocks.NewMockNutritionStore(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)
	// No Replace expectation: the vector store must not be touched.

	pipeline := indexer.NewPipeline(writeTestDataset(t), repo, &stubEmbedder{err: errors.New("quota exceeded")}, store, "nutrition")
	handler := NewIndexHandler(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestIndexHandler_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storage_mocks.NewMockNutritionStore(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Replace(gomock.Any(), "nutrition", gomock.Any()).Return(errors.New("connection refused"))

	pipeline := indexer.NewPipeline(writeTestDataset(t), repo, &stubEmbedder{}, store, "nutrition")
	handler := NewIndexHandler(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestIndexHandler_MissingDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := storage_mocks.NewMockNutritionStore(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	pipeline := indexer.NewPipeline(filepath.Join(t.TempDir(), "missing.csv"), repo, &stubEmbedder{}, store, "nutrition")
	handler := NewIndexHandler(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
