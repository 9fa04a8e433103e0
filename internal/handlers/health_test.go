package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	vectorstore_mocks "nutrichat/internal/vectorstore/mocks"
)

func TestHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Count(gomock.Any(), "nutrition").Return(42, nil)

	handler := NewHealthHandler(store, "nutrition")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["vector_store"] != "ok" {
		t.Errorf("vector_store check = %q, want ok", resp.Checks["vector_store"])
	}
}

func TestHealthHandler_VectorStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Count(gomock.Any(), "nutrition").Return(0, errors.New("connection refused"))

	handler := NewHealthHandler(store, "nutrition")
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
}
