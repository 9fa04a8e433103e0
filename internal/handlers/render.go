package handlers

import (
	"bytes"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"nutrichat/internal/contextutil"
)

// markdown renders generated answers to HTML when ?format=html is requested.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		ghhtml.WithHardWraps(),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// wantsHTML reports whether the client asked for a rendered HTML answer.
func wantsHTML(r *http.Request) bool {
	return r.URL.Query().Get("format") == "html"
}

// writeRendered writes the answer as rendered HTML, falling back to plain
// text if conversion fails.
func writeRendered(w http.ResponseWriter, r *http.Request, answer string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(answer), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(answer))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
