package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"nutrichat/internal/generate"
	"nutrichat/internal/service"
)

// fakeGenerator lets handler tests drive the assistant without a model.
type fakeGenerator struct {
	answer string
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, req generate.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestPlanHandler(t *testing.T) {
	gen := &fakeGenerator{answer: "Monday: oatmeal, grilled chicken salad..."}
	handler := NewPlanHandler(service.NewAssistant(gen))

	rec := postJSON(t, handler, "/api/v1/plan", PlanRequest{Calories: 2000})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Plan == "" {
		t.Error("plan is empty")
	}
}

func TestPlanHandler_CalorieTargetOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		calories int
	}{
		{"below minimum", 500},
		{"above maximum", 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answer: "unused"}
			handler := NewPlanHandler(service.NewAssistant(gen))

			rec := postJSON(t, handler, "/api/v1/plan", PlanRequest{Calories: tt.calories})

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if gen.calls != 0 {
				t.Errorf("generator called %d times for rejected target, want 0", gen.calls)
			}
		})
	}
}

func TestPlanHandler_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: &generate.GenerationError{Err: context.DeadlineExceeded}}
	handler := NewPlanHandler(service.NewAssistant(gen))

	rec := postJSON(t, handler, "/api/v1/plan", PlanRequest{Calories: 2000})

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
