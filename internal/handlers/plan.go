package handlers

import (
	"encoding/json"
	"net/http"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/service"
)

// PlanHandler handles HTTP requests for weekly meal plans.
type PlanHandler struct {
	assistant *service.Assistant
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(assistant *service.Assistant) *PlanHandler {
	return &PlanHandler{assistant: assistant}
}

// PlanRequest represents the HTTP request payload for weekly meal plans.
type PlanRequest struct {
	// Calories is the daily calorie target, between 1000 and 5000.
	Calories int `json:"calories"`
}

// PlanResponse represents the HTTP response payload for weekly meal plans.
type PlanResponse struct {
	Plan string `json:"plan"`
}

// ServeHTTP generates a 7-day meal plan for the requested calorie target.
func (h *PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := h.assistant.WeeklyPlan(ctx, req.Calories)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate meal plan")
		return
	}

	if wantsHTML(r) {
		writeRendered(w, r, plan)
		return
	}

	writeJSON(ctx, w, http.StatusOK, PlanResponse{Plan: plan})
}
