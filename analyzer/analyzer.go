package analyzer

import (
	"log/slog"
	"runtime"

	"github.com/spf13/afero"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Analyzer extracts translation keys from source modules
type Analyzer struct {
	fs      afero.Fs
	store   *jsx.Store
	mode    Mode
	logger  *slog.Logger
	workers int
}

// ExtractFile returns every key occurrence of the file at path.
// A file that cannot be read or parsed yields no occurrences.
func (a *Analyzer) ExtractFile(path string) []Occurrence {
	module, ok := a.store.Parse(path)
	if !ok {
		a.logger.Debug("skipping unparsable file", "path", path)
		return nil
	}
	return a.ExtractModule(module)
}

// ExtractModule traverses a parsed module once and returns its key occurrences in discovery order
func (a *Analyzer) ExtractModule(module *jsx.Module) []Occurrence {
	if module == nil || module.Root == nil {
		return nil
	}
	w := newWalker(a.store, module, a.mode)
	w.visit(module.Root)
	a.logger.Debug("extracted keys", "path", module.Path, "mode", a.mode.String(), "count", len(w.occurrences))
	return w.occurrences
}

// New creates an analyzer reading sources from fs, or from the OS file system when fs is nil
func New(fs afero.Fs, opts ...Option) *Analyzer {
	ret := &Analyzer{
		mode:    Dynamic,
		logger:  slog.Default(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.workers < 1 {
		ret.workers = 1
	}
	ret.store = jsx.NewStore(fs, jsx.WithLogger(ret.logger))
	ret.fs = ret.store.Fs()
	return ret
}

// fork creates an analyzer sharing the configuration but owning a separate store
func (a *Analyzer) fork() *Analyzer {
	return &Analyzer{
		fs:      a.fs,
		store:   jsx.NewStore(a.fs, jsx.WithLogger(a.logger)),
		mode:    a.mode,
		logger:  a.logger,
		workers: 1,
	}
}
