// Package watcher ingests documents dropped into a directory. External
// extraction pipelines write .txt or .md files; the watcher keeps the
// document store in sync with the directory contents.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
	"github.com/talenta-labs/matcha-cli/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet after a write
// before it is ingested. Editors and extraction pipelines produce
// bursts of write events for a single logical save.
const DefaultDebounce = 500 * time.Millisecond

// Config tunes the watcher.
type Config struct {
	// Debounce is the quiet period after a write before ingesting.
	// Zero means DefaultDebounce.
	Debounce time.Duration
}

// Watcher mirrors a drop directory into the document store.
type Watcher struct {
	dir      string
	ingest   driving.IngestService
	debounce time.Duration
	fs       *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given directory.
func New(dir string, ingest driving.IngestService, cfg Config) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch target %s is not a directory", dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		ingest:   ingest,
		debounce: debounce,
		fs:       fs,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run synchronises existing files, then processes events until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.syncExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops the watcher and cancels pending ingests.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}

// syncExisting ingests eligible files already present in the directory.
func (w *Watcher) syncExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !eligible(path) {
			continue
		}
		w.ingestFile(ctx, path)
	}
	return nil
}

// handleEvent routes a single filesystem event. Writes are debounced;
// removals take effect immediately.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	path := event.Name
	if !eligible(path) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		w.schedule(ctx, path)

	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.cancelPending(path)
		if err := w.ingest.Remove(ctx, docID(path)); err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("removing %s: %v", path, err)
		}
	}
}

// schedule (re)arms the debounce timer for a path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

// ingestFile reads and ingests a single file. Failures are logged, not
// fatal: one unreadable file must not stop the watch loop.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("reading %s: %v", path, err)
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		logger.Debug("skipping empty file %s", path)
		return
	}

	metadata := map[string]any{
		"filename": filepath.Base(path),
		"source":   "watch",
	}

	id, err := w.ingest.Ingest(ctx, docID(path), string(data), metadata)
	if err != nil {
		logger.Warn("ingesting %s: %v", path, err)
		return
	}
	logger.Info("ingested %s as %s", filepath.Base(path), id)
}

// docID derives a stable document ID from the filename so rewrites
// replace the document and deletions can find it.
func docID(path string) string {
	return "file:" + filepath.Base(path)
}

// eligible reports whether a path is a candidate for ingestion:
// a visible .txt or .md file.
func eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".txt", ".md":
		return true
	}
	return false
}
