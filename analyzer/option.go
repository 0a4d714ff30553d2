package analyzer

import (
	"log/slog"
)

// Mode selects how much of the resolver is enabled
type Mode int

const (
	// Dynamic resolves bindings, imports, property access, templates and iteration
	Dynamic Mode = iota
	// Literal only accepts literal strings, as a base extraction pass does
	Literal
)

func (m Mode) String() string {
	if m == Literal {
		return "literal"
	}
	return "dynamic"
}

type Option func(*Analyzer)

// WithMode sets the resolution mode
func WithMode(mode Mode) Option {
	return func(a *Analyzer) {
		a.mode = mode
	}
}

// WithLogger sets the logger used by the analyzer and the stores it creates
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWorkers sets the number of files analyzed in parallel by ExtractKeys
func WithWorkers(workers int) Option {
	return func(a *Analyzer) {
		a.workers = workers
	}
}
