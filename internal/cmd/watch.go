package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jxy/goos/internal/codegen/generator"
	"github.com/jxy/goos/internal/codegen/watch"
)

type Watch struct {
	InputDir  string           `arg:"" optional:"" name:"input-dir" help:"Directory with <table>.querySchema.js and <table>.dataSchema.js files" default:"../src/schema"`
	OutputDir string           `arg:"" optional:"" name:"output-dir" help:"Directory the Java sources are written to" default:"output"`
	Java      generator.Config `embed:"" prefix:"java."`
	Debounce  time.Duration    `help:"Quiet period before a changed schema is regenerated" default:"300ms" env:"GOOS_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Start(ctx, logger)
}

// Start generates everything once, then regenerates changed schemas until
// ctx is cancelled.
func (w *Watch) Start(ctx context.Context, logger *slog.Logger) error {
	gen, err := newGenerator(logger, w.InputDir, w.OutputDir, w.Java)
	if err != nil {
		return err
	}
	if _, err := gen.GenAll(); err != nil {
		return err
	}

	watcher, err := watch.New(w.inputDir(), gen, watch.Options{Debounce: w.Debounce}, logger)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

func (w *Watch) inputDir() string {
	if w.InputDir == "" {
		return defaultInputDir
	}
	return w.InputDir
}
