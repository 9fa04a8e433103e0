package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nutrichat/internal/llm"
)

type fakeChatClient struct {
	answer string
	err    error

	calls        int
	lastMessages []llm.Message
	lastParams   llm.ChatParams
}

func (f *fakeChatClient) ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
	f.calls++
	f.lastMessages = messages
	f.lastParams = params
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestBuildPrompt_RAGWithContext(t *testing.T) {
	prompt := BuildPrompt(Request{
		Mode:    ModeRAG,
		Query:   "How many calories are in fried rice?",
		Context: []string{"Nasi Goreng has 250 calories, 8g protein, 10g fat, and 35g carbohydrate."},
	})

	if !strings.Contains(prompt, "- Nasi Goreng has 250 calories") {
		t.Errorf("prompt missing bulleted context:\n%s", prompt)
	}
	if !strings.Contains(prompt, "How many calories are in fried rice?") {
		t.Errorf("prompt missing user question:\n%s", prompt)
	}
	if strings.Contains(prompt, "could not find relevant information") {
		t.Errorf("prompt used fallback template despite context:\n%s", prompt)
	}
}

func TestBuildPrompt_RAGEmptyContextUsesFallback(t *testing.T) {
	prompt := BuildPrompt(Request{Mode: ModeRAG, Query: "What is tempeh?"})

	if !strings.Contains(prompt, "could not find relevant information") {
		t.Errorf("expected fallback template, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: What is tempeh?") {
		t.Errorf("fallback prompt missing question:\n%s", prompt)
	}
	if strings.Contains(prompt, "Nutrition context") {
		t.Errorf("fallback prompt must not claim context was used:\n%s", prompt)
	}
}

func TestBuildPrompt_OtherModes(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "recipe embeds ingredients",
			req:  Request{Mode: ModeRecipe, Query: "chicken, broccoli, rice"},
			want: "using the following ingredients: chicken, broccoli, rice",
		},
		{
			name: "weekly plan embeds calorie target",
			req:  Request{Mode: ModeWeeklyPlan, Query: "2000"},
			want: "average of 2000 calories per day",
		},
		{
			name: "substitute embeds ingredient",
			req:  Request{Mode: ModeSubstitute, Query: "butter"},
			want: "alternatives to the ingredient 'butter'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(tt.req)
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("BuildPrompt() = %q, want substring %q", prompt, tt.want)
			}
		})
	}
}

func TestGenerator_Generate_SamplingParams(t *testing.T) {
	tests := []struct {
		mode            Mode
		wantTemperature float32
		wantMaxTokens   int
	}{
		{ModeRAG, 0.2, 512},
		{ModeRecipe, 0.3, 512},
		{ModeWeeklyPlan, 0.2, 2048},
		{ModeSubstitute, 0.5, 256},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			client := &fakeChatClient{answer: "ok"}
			gen := NewGenerator(client)

			answer, err := gen.Generate(context.Background(), Request{Mode: tt.mode, Query: "test"})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if answer != "ok" {
				t.Errorf("Generate() = %q, want ok", answer)
			}
			if client.lastParams.Temperature != tt.wantTemperature {
				t.Errorf("temperature = %v, want %v", client.lastParams.Temperature, tt.wantTemperature)
			}
			if client.lastParams.MaxTokens != tt.wantMaxTokens {
				t.Errorf("max tokens = %d, want %d", client.lastParams.MaxTokens, tt.wantMaxTokens)
			}
			if len(client.lastMessages) != 1 || client.lastMessages[0].Role != "user" {
				t.Errorf("messages = %+v, want single user message", client.lastMessages)
			}
		})
	}
}

func TestGenerator_Generate_ClientFailure(t *testing.T) {
	cause := errors.New("bad status 429: rate limited")
	client := &fakeChatClient{err: cause}
	gen := NewGenerator(client)

	_, err := gen.Generate(context.Background(), Request{Mode: ModeRAG, Query: "test"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *GenerationError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("GenerationError does not wrap cause: %v", err)
	}
}

func TestGenerator_Generate_UnknownMode(t *testing.T) {
	client := &fakeChatClient{answer: "ok"}
	gen := NewGenerator(client)

	_, err := gen.Generate(context.Background(), Request{Mode: Mode("haiku"), Query: "test"})
	if err == nil {
		t.Fatal("Generate() expected error for unknown mode")
	}
	if client.calls != 0 {
		t.Errorf("client called %d times for unknown mode, want 0", client.calls)
	}
}
