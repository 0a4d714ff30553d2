package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Module is a parsed source file, immutable once stored
type Module struct {
	Path    string
	Dialect Dialect
	Source  []byte
	Tree    *sitter.Tree
	Root    *sitter.Node
}

// Text returns the source text of a node of this module
func (m *Module) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(m.Source)
}

// Statements returns the top-level statements, comments excluded
func (m *Module) Statements() []*sitter.Node {
	return NamedChildren(m.Root)
}

// Expr is a syntax node paired with the module it was parsed from
type Expr struct {
	Node   *sitter.Node
	Module *Module
}

// IsZero returns true if the expression holds no node
func (e Expr) IsZero() bool {
	return e.Node == nil || e.Module == nil
}

// Type returns the node type, or an empty string for a zero expression
func (e Expr) Type() string {
	if e.Node == nil {
		return ""
	}
	return e.Node.Type()
}

// Text returns the expression source text
func (e Expr) Text() string {
	if e.IsZero() {
		return ""
	}
	return e.Module.Text(e.Node)
}

// Field returns the named field child as an expression of the same module
func (e Expr) Field(name string) Expr {
	if e.Node == nil {
		return Expr{}
	}
	return e.With(e.Node.ChildByFieldName(name))
}

// With returns node as an expression of the same module
func (e Expr) With(node *sitter.Node) Expr {
	if node == nil {
		return Expr{}
	}
	return Expr{Node: node, Module: e.Module}
}

// Line returns the 1-based line of the expression start
func (e Expr) Line() int {
	if e.Node == nil {
		return 0
	}
	return int(e.Node.StartPoint().Row) + 1
}

// NamedChildren returns the named children of a node, comments excluded
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	result := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		result = append(result, child)
	}
	return result
}
