package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/llm"
	"github.com/sant0-9/legalgen/internal/prompts"
)

var (
	// ErrNoProvider means the writer was built without a provider.
	ErrNoProvider = errors.New("no LLM provider configured")

	// ErrNoTemplate means the request was not built against a template.
	ErrNoTemplate = errors.New("request has no template")
)

// Writer turns document requests into generated documents with a single
// completion call per request. It holds no per-call state.
type Writer struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// NewWriter creates a new writer
func NewWriter(provider llm.Provider, model string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Write builds the prompt for req and generates the document. It never
// returns an error; failures are carried in the Result.
func (w *Writer) Write(ctx context.Context, req *document.Request) Result {
	if req == nil || req.Template == nil {
		return Failure(ErrNoTemplate)
	}

	prompt, err := prompts.Build(req)
	if err != nil {
		w.logger.Error("writer.prompt_failed",
			"document_type", req.DocumentType,
			"error", err,
		)
		return Failure(err)
	}

	return w.Generate(ctx, prompt)
}

// Generate sends prompt as the user message under the fixed system prompt
// and returns the trimmed completion.
func (w *Writer) Generate(ctx context.Context, prompt string) Result {
	rid := uuid.New().String()
	start := time.Now()

	if w.provider == nil {
		res := Failure(ErrNoProvider)
		res.RequestID = rid
		return res
	}

	w.logger.Info("writer.generate.start",
		"req_id", rid,
		"provider", w.provider.Name(),
		"model", w.model,
		"prompt_len", len(prompt),
	)

	resp, err := w.provider.Complete(ctx, llm.NewRequest(w.model, prompts.System, prompt))
	if err != nil {
		res := Failure(err)
		res.RequestID = rid
		w.logger.Error("writer.generate.failed",
			"req_id", rid,
			"kind", res.Kind.String(),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return res
	}

	res := Success(strings.TrimSpace(resp.Content))
	res.RequestID = rid
	res.Usage = resp.Usage
	if !res.OK() {
		w.logger.Warn("writer.generate.empty",
			"req_id", rid,
			"finish_reason", resp.FinishReason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return res
	}

	w.logger.Info("writer.generate.ok",
		"req_id", rid,
		"chars", len(res.Text),
		"total_tokens", resp.Usage.TotalTokens,
		"finish_reason", resp.FinishReason,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// Describe renders a failure for a single-line notice.
func Describe(r Result) string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", FailureNotice, r.Reason())
}
