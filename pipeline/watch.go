package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/viant/i18nkeys/inspector/jsx"
	"github.com/viant/i18nkeys/inspector/repository"
)

// Watch runs the pipeline once, then again whenever a matching source changes, until ctx is done.
// Changes are debounced by cfg.Debounce; writes that leave a source content unchanged are ignored.
// Every run starts with fresh module caches.
func Watch(ctx context.Context, cfg *Config, onResult func(*Result, error), opts ...Option) error {
	o := newOptions(opts)
	root, err := projectRoot(cfg, o.source)
	if err != nil {
		return err
	}
	scanner, err := repository.NewScanner(o.source, cfg.Input, cfg.Ignore)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	w := newWatch(root, scanner, watcher, o.logger)
	if err = w.addRecursive(root); err != nil {
		return err
	}

	var mux sync.Mutex
	run := func() {
		mux.Lock()
		defer mux.Unlock()
		if ctx.Err() != nil {
			return
		}
		result, err := Run(ctx, cfg, opts...)
		if err == nil {
			w.remember(result.Files)
		}
		onResult(result, err)
	}
	run()

	var timer *time.Timer
	var scheduled sync.WaitGroup
	defer func() {
		if timer != nil && timer.Stop() {
			scheduled.Done()
		}
		scheduled.Wait()
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			o.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			if timer != nil && timer.Stop() {
				scheduled.Done()
			}
			scheduled.Add(1)
			timer = time.AfterFunc(cfg.Debounce, func() {
				defer scheduled.Done()
				run()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.logger.Error("watcher error", "error", err)
		}
	}
}

type watch struct {
	root         string
	scanner      *repository.Scanner
	watcher      *fsnotify.Watcher
	logger       *slog.Logger
	mux          sync.Mutex
	fingerprints map[string]uint64
}

func newWatch(root string, scanner *repository.Scanner, watcher *fsnotify.Watcher, logger *slog.Logger) *watch {
	return &watch{
		root:         root,
		scanner:      scanner,
		watcher:      watcher,
		logger:       logger,
		fingerprints: make(map[string]uint64),
	}
}

func (w *watch) relative(location string) string {
	relative, err := filepath.Rel(w.root, location)
	if err != nil {
		return location
	}
	return relative
}

func (w *watch) addRecursive(dir string) error {
	return filepath.Walk(dir, func(location string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.scanner.IgnoresDir(w.relative(location)) {
			return filepath.SkipDir
		}
		return w.watcher.Add(location)
	})
}

// remember replaces the known source fingerprints with the ones of files
func (w *watch) remember(files []string) {
	fingerprints := make(map[string]uint64, len(files))
	for _, location := range files {
		if fingerprint, ok := fingerprintOf(location); ok {
			fingerprints[location] = fingerprint
		}
	}
	w.mux.Lock()
	w.fingerprints = fingerprints
	w.mux.Unlock()
}

// changed returns true unless location still holds the content it had when last seen
func (w *watch) changed(location string) bool {
	fingerprint, ok := fingerprintOf(location)
	w.mux.Lock()
	defer w.mux.Unlock()
	if !ok {
		delete(w.fingerprints, location)
		return true
	}
	if previous, found := w.fingerprints[location]; found && previous == fingerprint {
		return false
	}
	w.fingerprints[location] = fingerprint
	return true
}

func fingerprintOf(location string) (uint64, bool) {
	data, err := os.ReadFile(location)
	if err != nil {
		return 0, false
	}
	fingerprint, err := jsx.Fingerprint(data)
	return fingerprint, err == nil
}

// relevant returns true for content changes of matching sources; new folders are watched as they appear
func (w *watch) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.scanner.IgnoresDir(w.relative(event.Name)) {
				return false
			}
			if err = w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch folder", "path", event.Name, "error", err)
			}
			return true
		}
	}
	if !w.scanner.Match(w.relative(event.Name)) {
		return false
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.mux.Lock()
		delete(w.fingerprints, event.Name)
		w.mux.Unlock()
		return true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return w.changed(event.Name)
	}
	return false
}
