package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/legalgen/internal/catalog"
	"github.com/sant0-9/legalgen/internal/config"
	"github.com/sant0-9/legalgen/internal/llm"
	"github.com/sant0-9/legalgen/internal/tui"
	"github.com/sant0-9/legalgen/internal/writer"
)

var version = "dev"

func main() {
	requestFile := flag.String("request", "", "generate the document described by a YAML request file and print it")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("legalgen", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *requestFile != "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		code := runBatch(ctx, cfg, loadCatalog(logger), *requestFile, logger, os.Stdout, os.Stderr)
		stop()
		os.Exit(code)
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	w, err := newWriter(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("app.start", "version", version, "provider", cfg.Provider, "model", cfg.Model)

	app := tui.NewApp(cfg, loadCatalog(logger), w, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newWriter(cfg *config.Config, logger *slog.Logger) (*writer.Writer, error) {
	provider, err := llm.NewProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	return writer.NewWriter(provider, cfg.Model, logger), nil
}

// loadCatalog merges user templates over the built-in ones. Broken user
// files are logged and skipped.
func loadCatalog(logger *slog.Logger) *catalog.Catalog {
	cat := catalog.Default()

	dir, err := config.TemplatesDir()
	if err != nil {
		return cat
	}
	extra, err := catalog.LoadDir(dir)
	if err != nil {
		logger.Warn("catalog.user_templates_skipped", "dir", dir, "error", err)
	}
	if len(extra) == 0 {
		return cat
	}

	merged, err := cat.Merge(extra)
	if err != nil {
		logger.Warn("catalog.merge_failed", "dir", dir, "error", err)
		return cat
	}
	logger.Info("catalog.loaded", "templates", len(merged.Templates), "user_templates", len(extra))
	return merged
}

// tuiLogger sends logs to LEGALGEN_LOG when set. The terminal belongs to the
// TUI, so logs are dropped otherwise.
func tuiLogger() (*slog.Logger, func(), error) {
	path := os.Getenv("LEGALGEN_LOG")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := tea.LogToFile(path, "legalgen")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
