package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"
)

const (
	// DefaultImport is the imported name of `import x from '...'`
	DefaultImport = "default"
	// NamespaceImport is the imported name of `import * as x from '...'`
	NamespaceImport = "*"
)

// Import represents one local binding introduced by an import statement
type Import struct {
	Local    string // Local binding name
	Imported string // Exported name in the source module
	Source   string // Module specifier
}

// IsNamed returns true for `{ name }` and `{ name as alias }` imports
func (i Import) IsNamed() bool {
	return i.Imported != DefaultImport && i.Imported != NamespaceImport
}

// ParseImports extracts the bindings of an import_statement node
func ParseImports(importNode *sitter.Node, src []byte) []Import {
	if importNode == nil || importNode.Type() != "import_statement" {
		return nil
	}
	source := importSource(importNode, src)
	if source == "" {
		return nil
	}

	var imports []Import
	for _, child := range NamedChildren(importNode) {
		if child.Type() != "import_clause" {
			continue
		}
		for _, clause := range NamedChildren(child) {
			switch clause.Type() {
			case "identifier":
				imports = append(imports, Import{Local: clause.Content(src), Imported: DefaultImport, Source: source})
			case "namespace_import":
				for _, name := range NamedChildren(clause) {
					if name.Type() == "identifier" {
						imports = append(imports, Import{Local: name.Content(src), Imported: NamespaceImport, Source: source})
					}
				}
			case "named_imports":
				for _, specifier := range NamedChildren(clause) {
					if specifier.Type() != "import_specifier" {
						continue
					}
					if spec, ok := parseSpecifier(specifier, src); ok {
						spec.Source = source
						imports = append(imports, spec)
					}
				}
			}
		}
	}
	return imports
}

func parseSpecifier(specifier *sitter.Node, src []byte) (Import, bool) {
	nameNode := specifier.ChildByFieldName("name")
	if nameNode == nil {
		return Import{}, false
	}
	imported := nameNode.Content(src)
	if value, ok := StringValue(nameNode, src); ok {
		imported = value
	}
	local := imported
	if alias := specifier.ChildByFieldName("alias"); alias != nil {
		local = alias.Content(src)
	}
	return Import{Local: local, Imported: imported}, true
}

func importSource(importNode *sitter.Node, src []byte) string {
	sourceNode := importNode.ChildByFieldName("source")
	if sourceNode == nil {
		for _, child := range NamedChildren(importNode) {
			if child.Type() == "string" {
				sourceNode = child
				break
			}
		}
	}
	value, _ := StringValue(sourceNode, src)
	return value
}
