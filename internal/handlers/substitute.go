package handlers

import (
	"encoding/json"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/service"
)

// SubstituteHandler handles HTTP requests for ingredient substitutions.
type SubstituteHandler struct {
	assistant *service.Assistant
}

// NewSubstituteHandler creates a new SubstituteHandler.
func NewSubstituteHandler(assistant *service.Assistant) *SubstituteHandler {
	return &SubstituteHandler{assistant: assistant}
}

// SubstituteRequest represents the HTTP request payload for substitutions.
type SubstituteRequest struct {
	Ingredient string `json:"ingredient"`
}

// SubstituteResponse represents the HTTP response payload for substitutions.
type SubstituteResponse struct {
	Substitutes string `json:"substitutes"`
}

// ServeHTTP suggests healthy alternatives for the submitted ingredient.
func (h *SubstituteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SubstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	substitutes, err := h.assistant.FindSubstitute(ctx, req.Ingredient)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to find substitutes")
		return
	}

	if wantsHTML(r) {
		writeRendered(w, r, substitutes)
		return
	}

	writeJSON(ctx, w, http.StatusOK, SubstituteResponse{Substitutes: substitutes})
}
