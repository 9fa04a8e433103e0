package generate

import (
	"context"
	"fmt"
	"strings"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/llm"
)

// Mode selects the prompt template and sampling parameters for a generation.
type Mode string

const (
	ModeRAG        Mode = "rag"
	ModeRecipe     Mode = "recipe"
	ModeWeeklyPlan Mode = "weekly_plan"
	ModeSubstitute Mode = "substitute"
)

// modeParams holds the fixed sampling parameters per mode.
var modeParams = map[Mode]llm.ChatParams{
	ModeRAG:        {Temperature: 0.2, MaxTokens: 512},
	ModeRecipe:     {Temperature: 0.3, MaxTokens: 512},
	ModeWeeklyPlan: {Temperature: 0.2, MaxTokens: 2048},
	ModeSubstitute: {Temperature: 0.5, MaxTokens: 256},
}

// GenerationError reports a failed chat completion call. No retry is
// performed; the caller sees the underlying cause.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ChatClient is the capability the generator needs from the LLM layer.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Request describes a single generation.
type Request struct {
	Mode Mode
	// Query is the user question (RAG), ingredient list (recipe/substitute),
	// or daily calorie target (weekly plan), already rendered as a string.
	Query string
	// Context holds retrieved documents for RAG mode; ignored by other modes.
	Context []string
}

// Generator builds mode-specific prompts and invokes the chat model.
type Generator struct {
	client ChatClient
}

// NewGenerator creates a new Generator.
func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

// BuildPrompt assembles the prompt for a request. Exported so the exact
// prompt text is observable without a model call.
func BuildPrompt(req Request) string {
	switch req.Mode {
	case ModeRecipe:
		return fmt.Sprintf(recipeTemplate, req.Query)
	case ModeWeeklyPlan:
		return fmt.Sprintf(weeklyPlanTemplate, req.Query)
	case ModeSubstitute:
		return fmt.Sprintf(substituteTemplate, req.Query)
	default:
		if len(req.Context) == 0 {
			return fmt.Sprintf(ragFallbackTemplate, req.Query)
		}
		var bullets strings.Builder
		for _, doc := range req.Context {
			bullets.WriteString("- ")
			bullets.WriteString(doc)
			bullets.WriteString("\n")
		}
		return fmt.Sprintf(ragContextTemplate, bullets.String(), req.Query)
	}
}

// Generate builds the prompt for the request and invokes the chat model with
// the mode's fixed sampling parameters, returning the raw generated text.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	params, ok := modeParams[req.Mode]
	if !ok {
		return "", fmt.Errorf("unknown generation mode %q", req.Mode)
	}

	prompt := BuildPrompt(req)
	logger.DebugContext(ctx, "prompt built",
		"mode", req.Mode,
		"context_docs", len(req.Context),
		"prompt_length", len(prompt),
	)

	answer, err := g.client.ChatWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, params)
	if err != nil {
		logger.ErrorContext(ctx, "chat completion failed", "mode", req.Mode, "error", err)
		return "", &GenerationError{Err: err}
	}

	logger.InfoContext(ctx, "generation completed", "mode", req.Mode, "answer_length", len(answer))
	return answer, nil
}
