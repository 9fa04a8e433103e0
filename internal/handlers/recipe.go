package handlers

import (
	"encoding/json"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/service"
)

// RecipeHandler handles HTTP requests for recipe suggestions.
type RecipeHandler struct {
	assistant *service.Assistant
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(assistant *service.Assistant) *RecipeHandler {
	return &RecipeHandler{assistant: assistant}
}

// RecipeRequest represents the HTTP request payload for recipe suggestions.
type RecipeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// RecipeResponse represents the HTTP response payload for recipe suggestions.
type RecipeResponse struct {
	Recipe string `json:"recipe"`
}

// ServeHTTP generates a recipe idea from the submitted ingredients.
func (h *RecipeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipe, err := h.assistant.SuggestRecipe(ctx, req.Ingredients)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate recipe")
		return
	}

	if wantsHTML(r) {
		writeRendered(w, r, recipe)
		return
	}

	writeJSON(ctx, w, http.StatusOK, RecipeResponse{Recipe: recipe})
}
