package analyzer

import (
	"github.com/viant/i18nkeys/analyzer/scope"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Resolver evaluates expressions to the set of literal strings they can statically take.
// Identifiers of the traversed module resolve through the live scope stack, identifiers of
// other modules through their top-level environment.
type Resolver struct {
	store   *jsx.Store
	module  *jsx.Module
	stack   *scope.Stack
	literal bool
}

// NewResolver creates a resolver for the module being traversed with stack
func NewResolver(store *jsx.Store, module *jsx.Module, stack *scope.Stack, mode Mode) *Resolver {
	return &Resolver{store: store, module: module, stack: stack, literal: mode == Literal}
}

// Resolve returns the possible string values of expr
func (r *Resolver) Resolve(expr jsx.Expr, seen Seen) Values {
	if expr.IsZero() {
		return Values{}
	}
	switch KindOf(expr.Node) {
	case KindString, KindTemplate:
		return r.literalOrTemplate(expr, seen)
	case KindConditional:
		return r.conditional(expr)
	case KindConcat:
		if r.literal {
			return Values{}
		}
		return r.concat(expr, seen)
	case KindWrapper:
		return r.Resolve(unwrap(expr), seen)
	case KindIdentifier, KindMember:
		if r.literal {
			return Values{}
		}
		result := Values{}
		r.follow(expr, seen, func(target jsx.Expr, seen Seen) {
			switch KindOf(target.Node) {
			case KindString, KindTemplate, KindConcat, KindConditional:
				result.Merge(r.Resolve(target, seen))
			}
		})
		return result
	}
	return Values{}
}

// Elements returns the element expressions of the array literal(s) expr refers to
func (r *Resolver) Elements(expr jsx.Expr, seen Seen) []jsx.Expr {
	var result []jsx.Expr
	r.follow(expr, seen, func(target jsx.Expr, _ Seen) {
		if KindOf(target.Node) != KindArray {
			return
		}
		for _, element := range jsx.NamedChildren(target.Node) {
			if element.Type() == "spread_element" {
				continue
			}
			result = append(result, target.With(element))
		}
	})
	return result
}

// follow walks wrappers, identifier bindings and property projections from expr and calls
// visit with every other expression reached, together with the seen set in effect there.
func (r *Resolver) follow(expr jsx.Expr, seen Seen, visit func(jsx.Expr, Seen)) {
	if expr.IsZero() {
		return
	}
	switch KindOf(expr.Node) {
	case KindWrapper:
		r.follow(unwrap(expr), seen, visit)
	case KindIdentifier:
		name := expr.Text()
		key := seenKey(expr.Module, name)
		if seen.Has(key) {
			return
		}
		binding, ok := r.lookup(expr.Module, name)
		if !ok || binding.IsOpaque() {
			return
		}
		next := seen.With(key)
		for _, candidate := range binding.Candidates {
			r.follow(candidate, next, visit)
		}
	case KindMember:
		property := expr.Field("property")
		if property.IsZero() {
			return
		}
		name := property.Text()
		r.follow(expr.Field("object"), seen, func(object jsx.Expr, seen Seen) {
			if KindOf(object.Node) != KindObject {
				return
			}
			if value, ok := propertyValue(object, name); ok {
				r.follow(value, seen, visit)
			}
		})
	default:
		visit(expr, seen)
	}
}

func (r *Resolver) lookup(module *jsx.Module, name string) (*scope.Binding, bool) {
	if module == r.module {
		return r.stack.Lookup(name)
	}
	expr, ok := r.store.Environment(module)[name]
	if !ok {
		return nil, false
	}
	return &scope.Binding{Name: name, Candidates: []jsx.Expr{expr}}, true
}

func (r *Resolver) literalOrTemplate(expr jsx.Expr, seen Seen) Values {
	if value, ok := jsx.StringValue(expr.Node, expr.Module.Source); ok {
		return NewValues(value)
	}
	if r.literal || expr.Type() != "template_string" {
		return Values{}
	}
	head, spans := jsx.TemplateSpans(expr.Node, expr.Module.Source)
	parts := make([]Values, 0, 1+2*len(spans))
	parts = append(parts, NewValues(head))
	for _, span := range spans {
		values := r.Resolve(expr.With(span.Expr), seen)
		if len(values) == 0 {
			return Values{}
		}
		parts = append(parts, values, NewValues(span.Tail))
	}
	return product(parts)
}

func (r *Resolver) concat(expr jsx.Expr, seen Seen) Values {
	left := r.Resolve(expr.Field("left"), seen)
	if len(left) == 0 {
		return Values{}
	}
	right := r.Resolve(expr.Field("right"), seen)
	if len(right) == 0 {
		return Values{}
	}
	return product([]Values{left, right})
}

// conditional yields both arms only when both are literal strings
func (r *Resolver) conditional(expr jsx.Expr) Values {
	consequence, ok := literalValue(expr.Field("consequence"))
	if !ok {
		return Values{}
	}
	alternative, ok := literalValue(expr.Field("alternative"))
	if !ok {
		return Values{}
	}
	return NewValues(consequence, alternative)
}

func literalValue(expr jsx.Expr) (string, bool) {
	for KindOf(expr.Node) == KindWrapper {
		expr = unwrap(expr)
	}
	if expr.IsZero() {
		return "", false
	}
	return jsx.StringValue(expr.Node, expr.Module.Source)
}

// propertyValue finds the value of a named property of an object literal
func propertyValue(object jsx.Expr, name string) (jsx.Expr, bool) {
	for _, property := range jsx.NamedChildren(object.Node) {
		switch property.Type() {
		case "pair":
			key := property.ChildByFieldName("key")
			if key == nil {
				continue
			}
			keyName := object.Module.Text(key)
			switch key.Type() {
			case "string":
				keyName, _ = jsx.StringValue(key, object.Module.Source)
			case "property_identifier", "identifier":
			default:
				continue
			}
			if keyName == name {
				return object.With(property.ChildByFieldName("value")), true
			}
		case "shorthand_property_identifier":
			if object.Module.Text(property) == name {
				return object.With(property), true
			}
		}
	}
	return jsx.Expr{}, false
}
