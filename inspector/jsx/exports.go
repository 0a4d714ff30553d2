package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Exports maps a binding name to its initializer expression
type Exports map[string]Expr

// IsConst returns true for a `const` lexical_declaration
func IsConst(decl *sitter.Node) bool {
	if decl == nil || decl.Type() != "lexical_declaration" || decl.ChildCount() == 0 {
		return false
	}
	return decl.Child(0).Type() == "const"
}

// Declarators returns the variable_declarator children of a declaration
func Declarators(decl *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for _, child := range NamedChildren(decl) {
		if child.Type() == "variable_declarator" {
			result = append(result, child)
		}
	}
	return result
}

// constBindings adds identifier-named, initialized declarators of a const declaration
func constBindings(target Exports, module *Module, decl *sitter.Node) {
	if !IsConst(decl) {
		return
	}
	for _, declarator := range Declarators(decl) {
		name := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if name == nil || value == nil || name.Type() != "identifier" {
			continue
		}
		target[module.Text(name)] = Expr{Node: value, Module: module}
	}
}

func computeExports(module *Module) Exports {
	exports := Exports{}
	for _, stmt := range module.Statements() {
		if stmt.Type() != "export_statement" {
			continue
		}
		constBindings(exports, module, ExportedDeclaration(stmt))
	}
	return exports
}

// ExportedDeclaration returns the declaration wrapped by an export_statement
func ExportedDeclaration(stmt *sitter.Node) *sitter.Node {
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		return decl
	}
	for _, child := range NamedChildren(stmt) {
		if child.Type() == "lexical_declaration" {
			return child
		}
	}
	return nil
}
