package jsx

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect identifies the grammar a source file is parsed with
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectJavaScript
	DialectTypeScript
	DialectTSX
)

// Extensions lists source extensions in import resolution order
var Extensions = []string{".ts", ".tsx", ".js", ".jsx"}

// DialectOf infers the dialect from the file extension
func DialectOf(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return DialectJavaScript
	}
	return DialectUnknown
}

// IsSource returns true if path has a recognized source extension
func IsSource(path string) bool {
	return DialectOf(path) != DialectUnknown
}

// Language returns the tree-sitter grammar for the dialect
func (d Dialect) Language() *sitter.Language {
	switch d {
	case DialectTypeScript:
		return typescript.GetLanguage()
	case DialectTSX:
		return tsx.GetLanguage()
	case DialectJavaScript:
		return javascript.GetLanguage()
	}
	return nil
}

func (d Dialect) String() string {
	switch d {
	case DialectJavaScript:
		return "javascript"
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	}
	return "unknown"
}
