package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/rag"
)

// AskHandler handles HTTP requests for nutrition questions.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest represents the HTTP request payload for nutrition questions.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse represents the HTTP response payload for nutrition questions.
type AskResponse struct {
	// The generated answer, grounded on the retrieved nutrition facts.
	Answer string `json:"answer"`

	// The nutrition descriptions the answer was grounded on, best match
	// first. Empty when nothing relevant was found.
	Sources []rag.Result `json:"sources,omitempty"`
}

// ServeHTTP answers a free-form nutrition question. With ?format=html the
// answer is returned as rendered HTML instead of JSON.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	answer, err := h.ragEngine.Ask(ctx, req.Question)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	if wantsHTML(r) {
		writeRendered(w, r, answer.Answer)
		return
	}

	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:  answer.Answer,
		Sources: answer.Sources,
	})
}
