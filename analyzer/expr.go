package analyzer

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Kind enumerates the expression shapes the resolver understands
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindTemplate
	KindWrapper
	KindIdentifier
	KindMember
	KindObject
	KindArray
	KindConcat
	KindConditional
)

// KindOf classifies a syntax node; unmatched shapes are KindUnknown
func KindOf(node *sitter.Node) Kind {
	if node == nil {
		return KindUnknown
	}
	switch node.Type() {
	case "string":
		return KindString
	case "template_string":
		return KindTemplate
	case "parenthesized_expression", "as_expression", "satisfies_expression", "type_assertion", "non_null_expression":
		return KindWrapper
	case "identifier", "shorthand_property_identifier":
		return KindIdentifier
	case "member_expression":
		return KindMember
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "binary_expression":
		if operator := node.ChildByFieldName("operator"); operator != nil && operator.Type() == "+" {
			return KindConcat
		}
	case "ternary_expression":
		return KindConditional
	}
	return KindUnknown
}

// unwrap returns the expression inside a parenthesized or type-decorated wrapper
func unwrap(expr jsx.Expr) jsx.Expr {
	children := jsx.NamedChildren(expr.Node)
	if len(children) == 0 {
		return jsx.Expr{}
	}
	if expr.Type() == "type_assertion" {
		// <Type>expr
		return expr.With(children[len(children)-1])
	}
	return expr.With(children[0])
}

// Values is a set of resolved strings; empty means statically unknown
type Values map[string]struct{}

// NewValues creates a set of the given strings
func NewValues(items ...string) Values {
	ret := make(Values, len(items))
	for _, item := range items {
		ret[item] = struct{}{}
	}
	return ret
}

// Merge inserts all values of other
func (v Values) Merge(other Values) {
	for item := range other {
		v[item] = struct{}{}
	}
}

// Has returns true if item is in the set
func (v Values) Has(item string) bool {
	_, ok := v[item]
	return ok
}

// Sorted returns the values in ascending order
func (v Values) Sorted() []string {
	ret := make([]string, 0, len(v))
	for item := range v {
		ret = append(ret, item)
	}
	sort.Strings(ret)
	return ret
}

// product concatenates one value of every part, in order, for every combination
func product(parts []Values) Values {
	acc := NewValues("")
	for _, part := range parts {
		next := make(Values, len(acc)*len(part))
		for base := range acc {
			for suffix := range part {
				next[base+suffix] = struct{}{}
			}
		}
		acc = next
	}
	return acc
}

// Seen holds the identifiers being resolved on the current call path
type Seen map[string]struct{}

// Has returns true if key is being resolved
func (s Seen) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// With returns a copy of s including key
func (s Seen) With(key string) Seen {
	ret := make(Seen, len(s)+1)
	for k := range s {
		ret[k] = struct{}{}
	}
	ret[key] = struct{}{}
	return ret
}

func seenKey(module *jsx.Module, name string) string {
	return module.Path + "#" + name
}
