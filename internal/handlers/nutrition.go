package handlers

import (
	"net/http"
	"strings"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/storage"
)

// NutritionHandler handles HTTP requests for nutrition fact lookups.
type NutritionHandler struct {
	nutritionRepo storage.NutritionStore
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionRepo storage.NutritionStore) *NutritionHandler {
	return &NutritionHandler{nutritionRepo: nutritionRepo}
}

// NutritionResponse represents the HTTP response payload for fact lookups.
type NutritionResponse struct {
	Results []storage.NutritionFact `json:"results"`
}

// ServeHTTP looks up nutrition facts by food name substring.
func (h *NutritionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}

	facts, err := h.nutritionRepo.SearchByName(ctx, name)
	if err != nil {
		logger.ErrorContext(ctx, "nutrition lookup failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to look up nutrition facts")
		return
	}
	if facts == nil {
		facts = []storage.NutritionFact{}
	}

	writeJSON(ctx, w, http.StatusOK, NutritionResponse{Results: facts})
}
