package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/generate"
	"nutrichat/internal/rag"
	"nutrichat/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps pipeline errors to HTTP status codes: rejected
// input to 400, LLM and embedding failures to 502, an unreachable vector
// store to 503, anything else to 500.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "request failed", "error", err)

	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		writeError(w, http.StatusBadRequest, valErr.Error())
		return
	}

	var genErr *generate.GenerationError
	if errors.As(err, &genErr) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	var retrievalErr *rag.RetrievalError
	if errors.As(err, &retrievalErr) {
		if retrievalErr.Stage == "embed" {
			writeError(w, http.StatusBadGateway, "External service error")
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}
