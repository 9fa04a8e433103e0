package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"nutrichat/internal/service"
)

func TestSubstituteHandler(t *testing.T) {
	gen := &fakeGenerator{answer: "Try olive oil or mashed avocado instead of butter."}
	handler := NewSubstituteHandler(service.NewAssistant(gen))

	rec := postJSON(t, handler, "/api/v1/substitute", SubstituteRequest{Ingredient: "butter"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp SubstituteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Substitutes == "" {
		t.Error("substitutes is empty")
	}
}

func TestSubstituteHandler_EmptyIngredient(t *testing.T) {
	gen := &fakeGenerator{answer: "unused"}
	handler := NewSubstituteHandler(service.NewAssistant(gen))

	rec := postJSON(t, handler, "/api/v1/substitute", SubstituteRequest{Ingredient: "  "})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for rejected input, want 0", gen.calls)
	}
}
