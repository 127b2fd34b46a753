package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/document"
	"github.com/sant0-9/legalgen/internal/writer"
)

// Batch exit codes.
const (
	exitOK         = 0
	exitFailed     = 1
	exitBadRequest = 2
)

// runBatch generates the document described by the request file at path.
// The document goes to stdout; notices and errors go to stderr.
func runBatch(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, path string, logger *slog.Logger, stdout, stderr io.Writer) int {
	req, err := document.LoadRequestFile(cat, path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitBadRequest
	}

	w, err := newWriter(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}

	res := w.Write(ctx, req)
	if !res.OK() {
		fmt.Fprintln(stderr, writer.Describe(res))
		return exitFailed
	}

	fmt.Fprintln(stderr, writer.SuccessNotice)
	fmt.Fprintln(stdout, res.Text)
	return exitOK
}
