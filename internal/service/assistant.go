package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/generate"
)

// Daily calorie targets accepted by the weekly planner, inclusive.
const (
	MinDailyCalories = 1000
	MaxDailyCalories = 5000
)

// ValidationError reports rejected input. Validation happens before any
// model call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Generator produces an answer for a prepared generation request.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (string, error)
}

// Assistant validates user input and drives recipe, meal-plan, and
// substitution generations.
type Assistant struct {
	generator Generator
}

// NewAssistant creates a new Assistant.
func NewAssistant(generator Generator) *Assistant {
	return &Assistant{generator: generator}
}

// SuggestRecipe generates a recipe idea from the given ingredients. Blank
// entries are dropped; at least one non-blank ingredient is required.
func (a *Assistant) SuggestRecipe(ctx context.Context, ingredients []string) (string, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return "", &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "generating recipe", "ingredients", len(cleaned))

	return a.generator.Generate(ctx, generate.Request{
		Mode:  generate.ModeRecipe,
		Query: strings.Join(cleaned, ", "),
	})
}

// WeeklyPlan generates a 7-day meal plan targeting the given daily calories.
// Targets outside [1000, 5000] are rejected without a model call.
func (a *Assistant) WeeklyPlan(ctx context.Context, calories int) (string, error) {
	if calories < MinDailyCalories || calories > MaxDailyCalories {
		return "", &ValidationError{
			Field:   "calories",
			Message: fmt.Sprintf("daily target must be between %d and %d", MinDailyCalories, MaxDailyCalories),
		}
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "generating weekly plan", "calories", calories)

	return a.generator.Generate(ctx, generate.Request{
		Mode:  generate.ModeWeeklyPlan,
		Query: strconv.Itoa(calories),
	})
}

// FindSubstitute suggests healthy alternatives for the given ingredient.
func (a *Assistant) FindSubstitute(ctx context.Context, ingredient string) (string, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return "", &ValidationError{Field: "ingredient", Message: "ingredient is required"}
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "finding substitute", "ingredient", ingredient)

	return a.generator.Generate(ctx, generate.Request{
		Mode:  generate.ModeSubstitute,
		Query: ingredient,
	})
}
