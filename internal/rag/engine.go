package rag

import (
	"context"

	"nutrichat/internal/contextutil"
	"nutrichat/internal/generate"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks nutrichat/internal/rag Engine

// Engine answers free-form nutrition questions grounded on retrieved context.
type Engine interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}

// Answer is a generated answer plus the retrieval that grounded it.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Result `json:"sources,omitempty"`
}

// Generator produces an answer for a prepared generation request.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (string, error)
}

type engine struct {
	retriever *Retriever
	generator Generator
	topN      int
}

// NewEngine wires a retriever and a generator into a question-answering
// engine retrieving topN documents per question.
func NewEngine(retriever *Retriever, generator Generator, topN int) Engine {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &engine{retriever: retriever, generator: generator, topN: topN}
}

// Ask retrieves context for the question and generates an answer from it.
// When retrieval finds nothing the generator falls back to a prompt that
// states no relevant information was found.
func (e *engine) Ask(ctx context.Context, question string) (*Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	sources, err := e.retriever.Retrieve(ctx, question, e.topN)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		logger.InfoContext(ctx, "no context retrieved, answering with fallback prompt")
	}

	docs := make([]string, len(sources))
	for i, src := range sources {
		docs[i] = src.Document
	}

	answer, err := e.generator.Generate(ctx, generate.Request{
		Mode:    generate.ModeRAG,
		Query:   question,
		Context: docs,
	})
	if err != nil {
		return nil, err
	}

	return &Answer{Answer: answer, Sources: sources}, nil
}
