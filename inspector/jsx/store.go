package jsx

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/afero"
)

// Store parses and memoizes modules, their export tables and top-level environments for one run.
// Entries are never invalidated; a new run starts with a new store.
type Store struct {
	fs           afero.Fs
	logger       *slog.Logger
	mux          sync.Mutex
	modules      map[string]*Module
	exports      map[string]Exports
	environments map[string]Exports
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store reading sources from fs, the OS file system when fs is nil
func NewStore(fs afero.Fs, options ...StoreOption) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	ret := &Store{
		fs:           fs,
		logger:       slog.Default(),
		modules:      make(map[string]*Module),
		exports:      make(map[string]Exports),
		environments: make(map[string]Exports),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Fs returns the file system the store reads from
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Parse returns the module for path, parsing it on first use.
// Missing, non-regular, unsupported or unreadable files report false.
func (s *Store) Parse(path string) (*Module, bool) {
	location, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	s.mux.Lock()
	module, ok := s.modules[location]
	s.mux.Unlock()
	if ok {
		return module, module != nil
	}

	module = s.load(location)
	s.mux.Lock()
	defer s.mux.Unlock()
	if existing, ok := s.modules[location]; ok {
		return existing, existing != nil
	}
	s.modules[location] = module
	return module, module != nil
}

func (s *Store) load(location string) *Module {
	dialect := DialectOf(location)
	if dialect == DialectUnknown || !s.isFile(location) {
		return nil
	}
	src, err := afero.ReadFile(s.fs, location)
	if err != nil {
		s.logger.Debug("failed to read module", "path", location, "error", err)
		return nil
	}
	parser := sitter.NewParser()
	parser.SetLanguage(dialect.Language())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		s.logger.Debug("failed to parse module", "path", location, "error", err)
		return nil
	}
	root := tree.RootNode()
	if root.HasError() {
		s.logger.Debug("module contains syntax errors", "path", location)
	}
	return &Module{
		Path:    location,
		Dialect: dialect,
		Source:  src,
		Tree:    tree,
		Root:    root,
	}
}

func (s *Store) isFile(location string) bool {
	info, err := s.fs.Stat(location)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ResolveImport resolves a relative module specifier against the importing file.
// Bare specifiers are left unresolved.
func (s *Store) ResolveImport(fromPath, specifier string) (string, bool) {
	if !strings.HasPrefix(specifier, ".") {
		return "", false
	}
	from, err := filepath.Abs(fromPath)
	if err != nil {
		return "", false
	}
	base := filepath.Join(filepath.Dir(from), filepath.FromSlash(specifier))
	candidates := make([]string, 0, 1+2*len(Extensions))
	candidates = append(candidates, base)
	for _, ext := range Extensions {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range Extensions {
		candidates = append(candidates, filepath.Join(base, "index"+ext))
	}
	for _, candidate := range candidates {
		if s.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Exports returns the exported const initializers of a module
func (s *Store) Exports(module *Module) Exports {
	if module == nil {
		return nil
	}
	s.mux.Lock()
	exports, ok := s.exports[module.Path]
	s.mux.Unlock()
	if ok {
		return exports
	}

	exports = computeExports(module)
	s.mux.Lock()
	defer s.mux.Unlock()
	if existing, ok := s.exports[module.Path]; ok {
		return existing
	}
	s.exports[module.Path] = exports
	return exports
}

// Environment returns the top-level bindings of a module: its own const declarations,
// exported or not, and the exported constants it imports by name from relative modules.
// Identifiers inside expressions imported from a module are resolved against it.
func (s *Store) Environment(module *Module) Exports {
	if module == nil {
		return nil
	}
	s.mux.Lock()
	env, ok := s.environments[module.Path]
	s.mux.Unlock()
	if ok {
		return env
	}

	env = Exports{}
	for _, stmt := range module.Statements() {
		switch stmt.Type() {
		case "lexical_declaration":
			constBindings(env, module, stmt)
		case "export_statement":
			constBindings(env, module, ExportedDeclaration(stmt))
		case "import_statement":
			for name, expr := range s.ImportedConstants(module, stmt) {
				env[name] = expr
			}
		}
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	if existing, ok := s.environments[module.Path]; ok {
		return existing
	}
	s.environments[module.Path] = env
	return env
}

// ImportedConstants maps the local names of a relative named import to the exported expressions
func (s *Store) ImportedConstants(module *Module, importNode *sitter.Node) Exports {
	imports := ParseImports(importNode, module.Source)
	if len(imports) == 0 {
		return nil
	}
	target, ok := s.ResolveImport(module.Path, imports[0].Source)
	if !ok {
		return nil
	}
	source, ok := s.Parse(target)
	if !ok {
		return nil
	}
	exports := s.Exports(source)
	result := Exports{}
	for _, imp := range imports {
		if !imp.IsNamed() {
			continue
		}
		if expr, ok := exports[imp.Imported]; ok {
			result[imp.Local] = expr
		}
	}
	return result
}
