package handlers

import (
	"errors"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/dataset"
	"nutrichat/internal/indexer"
)

// IndexHandler handles HTTP requests for triggering a dataset reindex.
type IndexHandler struct {
	pipeline *indexer.Pipeline
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(pipeline *indexer.Pipeline) *IndexHandler {
	return &IndexHandler{pipeline: pipeline}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
}

// ServeHTTP reloads the dataset and rebuilds the SQLite table and vector
// collection. The reindex runs synchronously; concurrent calls are
// serialized by the pipeline.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger.InfoContext(ctx, "reindex triggered via API")

	count, err := h.pipeline.Reindex(ctx)
	if err != nil {
		h.handleIndexError(w, r, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, IndexResponse{
		Status:  "ok",
		Indexed: count,
	})
}

// handleIndexError maps reindex failures to HTTP status codes.
func (h *IndexHandler) handleIndexError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "reindex failed", "error", err)

	if errors.Is(err, dataset.ErrSourceNotFound) {
		writeError(w, http.StatusInternalServerError, "Dataset file not found")
		return
	}

	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		writeError(w, http.StatusInternalServerError, "Dataset is malformed: "+schemaErr.Error())
		return
	}

	var indexErr *indexer.IndexError
	if errors.As(err, &indexErr) {
		switch indexErr.Stage {
		case "embed":
			writeError(w, http.StatusBadGateway, "Embedding service error")
		default:
			writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		}
		return
	}

	writeError(w, http.StatusInternalServerError, "Failed to reindex dataset")
}
