// Package watch regenerates Java sources when schema files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jxy/goos/internal/codegen/generator"
	"github.com/jxy/goos/internal/codegen/scanner"
)

const DefaultDebounce = 300 * time.Millisecond

// FileGenerator regenerates the output of one schema file.
type FileGenerator interface {
	GenerateFile(file scanner.SchemaFile) *generator.Report
}

type Options struct {
	// Debounce is how long a file must stay quiet before it is regenerated.
	// Editors often write a file several times per save.
	Debounce time.Duration
	// OnRegenerate, when set, is called after every regeneration.
	OnRegenerate func(file scanner.SchemaFile, rep *generator.Report)
}

// Watcher watches a schema directory and feeds changed files to a FileGenerator.
type Watcher struct {
	dir     string
	gen     FileGenerator
	opts    Options
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	pending map[string]time.Time // path -> last event
}

func New(dir string, gen FileGenerator, opts Options, logger *slog.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:     dir,
		gen:     gen,
		opts:    opts,
		logger:  logger,
		watcher: fw,
		pending: make(map[string]time.Time),
	}, nil
}

// Run processes file events until ctx is cancelled. The underlying watcher
// is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	tick := w.opts.Debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	w.logger.Info("Watching schema directory", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching", "dir", w.dir)
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, time.Now())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, now time.Time) {
	if _, _, ok := scanner.MatchSchemaFile(filepath.Base(event.Name)); !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.logger.Debug("Schema changed", "file", event.Name, "op", event.Op.String())
		w.pending[event.Name] = now
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// generated files are left in place
		w.logger.Info("Schema removed", "file", event.Name)
		delete(w.pending, event.Name)
	}
}

// flush regenerates every pending file that has been quiet long enough.
func (w *Watcher) flush(now time.Time) {
	for path, last := range w.pending {
		if now.Sub(last) < w.opts.Debounce {
			continue
		}
		delete(w.pending, path)

		if _, err := os.Stat(path); err != nil {
			w.logger.Debug("Schema vanished before regeneration", "file", path)
			continue
		}
		table, kind, _ := scanner.MatchSchemaFile(filepath.Base(path))
		file := scanner.SchemaFile{Path: path, Table: table, Kind: kind}

		rep := w.gen.GenerateFile(file)
		if rep.Failed() {
			w.logger.Warn("Regenerated with errors", "file", path, "fieldErrors", len(rep.FieldErrs), "fileErrors", len(rep.FileErrs))
		} else {
			w.logger.Info("Regenerated", "file", path, "written", len(rep.Written))
		}
		if w.opts.OnRegenerate != nil {
			w.opts.OnRegenerate(file, rep)
		}
	}
}
