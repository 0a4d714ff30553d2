package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/i18nkeys/analyzer/scope"
	"github.com/viant/i18nkeys/inspector/jsx"
)

const (
	// TranslatorFunction is the conventional name of the translation function
	TranslatorFunction = "t"
	// TranslatorObject is the conventional name of the object exposing the translation method
	TranslatorObject = "i18n"
	// KeyAttribute is the markup attribute carrying a translation key
	KeyAttribute = "i18nKey"
)

// scopeNodes lists the node types that open a lexical frame
var scopeNodes = map[string]bool{
	"program":                        true,
	"statement_block":                true,
	"for_statement":                  true,
	"for_in_statement":               true,
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"arrow_function":                 true,
	"method_definition":              true,
	"catch_clause":                   true,
	"switch_body":                    true,
	"class_static_block":             true,
}

// declarationNodes lists the named declarations that shadow outer bindings
var declarationNodes = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"class_declaration":              true,
	"abstract_class_declaration":     true,
}

var iterationMethods = map[string]bool{
	"map":     true,
	"flatMap": true,
	"forEach": true,
}

var callbackNodes = map[string]bool{
	"arrow_function":      true,
	"function_expression": true,
	"function":            true,
}

// Occurrence is a key discovered at a line of the analyzed file
type Occurrence struct {
	Key  string
	Line int
}

// walker performs the single top-down traversal of one module
type walker struct {
	module      *jsx.Module
	store       *jsx.Store
	stack       *scope.Stack
	resolver    *Resolver
	literal     bool
	occurrences []Occurrence
	reported    map[Occurrence]bool
}

func newWalker(store *jsx.Store, module *jsx.Module, mode Mode) *walker {
	stack := scope.NewStack()
	return &walker{
		module:   module,
		store:    store,
		stack:    stack,
		resolver: NewResolver(store, module, stack, mode),
		literal:  mode == Literal,
		reported: make(map[Occurrence]bool),
	}
}

func (w *walker) expr(node *sitter.Node) jsx.Expr {
	if node == nil {
		return jsx.Expr{}
	}
	return jsx.Expr{Node: node, Module: w.module}
}

func (w *walker) text(node *sitter.Node) string {
	return w.module.Text(node)
}

func (w *walker) visit(node *sitter.Node) {
	if node == nil {
		return
	}
	if declarationNodes[node.Type()] {
		// the declared name belongs to the enclosing frame
		if name := node.ChildByFieldName("name"); name != nil && (name.Type() == "identifier" || name.Type() == "type_identifier") {
			w.stack.Shadow(w.text(name))
		}
	}
	if scopeNodes[node.Type()] {
		frame := w.stack.Push(node.Type())
		defer w.stack.Pop(frame)
		w.declareParameters(node)
	}

	switch node.Type() {
	case "lexical_declaration", "variable_declaration":
		w.declare(node)
	case "import_statement":
		w.importBindings(node)
	case "for_in_statement":
		w.bindLoopVariable(node)
	case "jsx_attribute":
		w.keyAttribute(node)
	case "call_expression":
		w.translationCall(node)
		if callback := w.iterate(node); callback != nil {
			w.visitExcept(node, callback)
			return
		}
	}
	w.visitChildren(node)
}

func (w *walker) visitChildren(node *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.visit(node.NamedChild(i))
	}
}

// visitExcept walks a call expression without descending into an already traversed callback
func (w *walker) visitExcept(call, callback *sitter.Node) {
	w.visit(call.ChildByFieldName("function"))
	for _, arg := range jsx.NamedChildren(call.ChildByFieldName("arguments")) {
		if arg.StartByte() == callback.StartByte() && arg.EndByte() == callback.EndByte() {
			continue
		}
		w.visit(arg)
	}
}

// declare binds const declarators and shadows every other declared name
func (w *walker) declare(decl *sitter.Node) {
	isConst := jsx.IsConst(decl)
	for _, declarator := range jsx.Declarators(decl) {
		name := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if isConst && name != nil && value != nil && name.Type() == "identifier" {
			w.stack.Bind(w.text(name), w.expr(value))
			continue
		}
		for _, declared := range w.patternNames(name) {
			w.stack.Shadow(declared)
		}
	}
}

func (w *walker) declareParameters(node *sitter.Node) {
	switch node.Type() {
	case "catch_clause":
		for _, name := range w.patternNames(node.ChildByFieldName("parameter")) {
			w.stack.Shadow(name)
		}
	default:
		if !isFunction(node.Type()) {
			return
		}
		for _, name := range w.parameterNames(node) {
			w.stack.Shadow(name)
		}
	}
}

func isFunction(nodeType string) bool {
	switch nodeType {
	case "function_declaration", "function_expression", "function", "generator_function",
		"generator_function_declaration", "arrow_function", "method_definition":
		return true
	}
	return false
}

func (w *walker) parameterNames(fn *sitter.Node) []string {
	if param := fn.ChildByFieldName("parameter"); param != nil {
		return w.patternNames(param)
	}
	return w.patternNames(fn.ChildByFieldName("parameters"))
}

// patternNames collects the identifiers a binding pattern declares
func (w *walker) patternNames(node *sitter.Node) []string {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{w.text(node)}
	case "required_parameter", "optional_parameter":
		return w.patternNames(node.ChildByFieldName("pattern"))
	case "assignment_pattern", "object_assignment_pattern":
		return w.patternNames(node.ChildByFieldName("left"))
	case "pair_pattern":
		return w.patternNames(node.ChildByFieldName("value"))
	case "formal_parameters", "object_pattern", "array_pattern", "rest_pattern":
		var names []string
		for _, child := range jsx.NamedChildren(node) {
			names = append(names, w.patternNames(child)...)
		}
		return names
	}
	return nil
}

func (w *walker) importBindings(node *sitter.Node) {
	imports := jsx.ParseImports(node, w.module.Source)
	var constants jsx.Exports
	if !w.literal {
		constants = w.store.ImportedConstants(w.module, node)
	}
	for _, imp := range imports {
		if expr, ok := constants[imp.Local]; ok {
			w.stack.Bind(imp.Local, expr)
			continue
		}
		w.stack.Shadow(imp.Local)
	}
}

// bindLoopVariable binds `for (const x of [...])` to the union of the array elements
func (w *walker) bindLoopVariable(loop *sitter.Node) {
	left := loop.ChildByFieldName("left")
	names := w.patternNames(left)
	for _, name := range names {
		w.stack.Shadow(name)
	}
	if w.literal || left == nil || left.Type() != "identifier" {
		return
	}
	if !hasToken(loop, "const") || !hasToken(loop, "of") {
		return
	}
	if elements := w.resolver.Elements(w.expr(loop.ChildByFieldName("right")), Seen{}); len(elements) > 0 {
		w.stack.BindMany(w.text(left), elements)
	}
}

// hasToken returns true if an anonymous child token of node has the given type
func hasToken(node *sitter.Node, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

func (w *walker) translationCall(call *sitter.Node) {
	if !w.isTranslator(call.ChildByFieldName("function")) {
		return
	}
	arguments := call.ChildByFieldName("arguments")
	if arguments == nil || arguments.Type() != "arguments" {
		return
	}
	args := jsx.NamedChildren(arguments)
	if len(args) == 0 {
		return
	}
	key := w.expr(args[0])
	w.report(w.keys(key), key)
}

func (w *walker) isTranslator(callee *sitter.Node) bool {
	if callee == nil {
		return false
	}
	switch callee.Type() {
	case "identifier":
		return w.text(callee) == TranslatorFunction
	case "member_expression":
		object := callee.ChildByFieldName("object")
		property := callee.ChildByFieldName("property")
		return object != nil && property != nil && object.Type() == "identifier" &&
			w.text(object) == TranslatorObject && w.text(property) == TranslatorFunction
	}
	return false
}

// keys resolves a key argument; an array lists fallback keys resolved one by one
func (w *walker) keys(arg jsx.Expr) Values {
	for KindOf(arg.Node) == KindWrapper {
		arg = unwrap(arg)
	}
	if KindOf(arg.Node) != KindArray {
		return w.resolver.Resolve(arg, Seen{})
	}
	result := Values{}
	for _, element := range jsx.NamedChildren(arg.Node) {
		result.Merge(w.resolver.Resolve(arg.With(element), Seen{}))
	}
	return result
}

func (w *walker) keyAttribute(attribute *sitter.Node) {
	children := jsx.NamedChildren(attribute)
	if len(children) < 2 || w.text(children[0]) != KeyAttribute {
		return
	}
	value := children[1]
	switch value.Type() {
	case "string", "jsx_string":
		if key, ok := jsx.RawString(value, w.module.Source); ok {
			w.report(NewValues(key), w.expr(value))
		}
	case "jsx_expression":
		inner := jsx.NamedChildren(value)
		if len(inner) == 0 {
			return
		}
		w.report(w.keys(w.expr(inner[0])), w.expr(value))
	}
}

// iterate handles `<array>.map(item => ...)`: the callback body is traversed with item bound
// to every element of the array. It returns the traversed callback, or nil when not applicable.
func (w *walker) iterate(call *sitter.Node) *sitter.Node {
	if w.literal {
		return nil
	}
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return nil
	}
	if !iterationMethods[w.text(callee.ChildByFieldName("property"))] {
		return nil
	}
	args := jsx.NamedChildren(call.ChildByFieldName("arguments"))
	if len(args) == 0 || !callbackNodes[args[0].Type()] {
		return nil
	}
	callback := args[0]
	params := w.parameterNames(callback)
	if len(params) == 0 || !w.isSimpleFirstParameter(callback) {
		return nil
	}
	elements := w.resolver.Elements(w.expr(callee.ChildByFieldName("object")), Seen{})
	if len(elements) == 0 {
		return nil
	}

	frame := w.stack.Push("iteration")
	defer w.stack.Pop(frame)
	for _, name := range params[1:] {
		w.stack.Shadow(name)
	}
	w.stack.BindMany(params[0], elements)
	body := callback.ChildByFieldName("body")
	if body != nil && body.Type() == "statement_block" {
		for _, stmt := range jsx.NamedChildren(body) {
			w.visit(stmt)
		}
	} else {
		w.visit(body)
	}
	return callback
}

// isSimpleFirstParameter returns true if the first callback parameter is a plain identifier
func (w *walker) isSimpleFirstParameter(callback *sitter.Node) bool {
	if param := callback.ChildByFieldName("parameter"); param != nil {
		return param.Type() == "identifier"
	}
	params := jsx.NamedChildren(callback.ChildByFieldName("parameters"))
	if len(params) == 0 {
		return false
	}
	first := params[0]
	if first.Type() == "required_parameter" {
		first = first.ChildByFieldName("pattern")
	}
	return first != nil && first.Type() == "identifier"
}

func (w *walker) report(values Values, at jsx.Expr) {
	line := at.Line()
	for _, key := range values.Sorted() {
		if key == "" {
			continue
		}
		occurrence := Occurrence{Key: key, Line: line}
		if w.reported[occurrence] {
			continue
		}
		w.reported[occurrence] = true
		w.occurrences = append(w.occurrences, occurrence)
	}
}
