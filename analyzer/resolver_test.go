package analyzer

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/i18nkeys/analyzer/scope"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// resolveTopLevel resolves the initializer of a top-level const of source.
// The resolver is not bound to the parsed module, so identifiers resolve through its environment.
func resolveTopLevel(t *testing.T, source, name string, mode Mode) Values {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/module.ts", []byte(source), 0644))
	store := jsx.NewStore(fs)
	module, ok := store.Parse("/src/module.ts")
	require.True(t, ok)
	expr, ok := store.Environment(module)[name]
	require.True(t, ok, name)
	resolver := NewResolver(store, nil, scope.NewStack(), mode)
	return resolver.Resolve(expr, Seen{})
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		target   string
		mode     Mode
		expected []string
	}{
		{
			name:     "string literal",
			source:   `const a = 'auth.login';`,
			target:   "a",
			expected: []string{"auth.login"},
		},
		{
			name:     "escapes are decoded",
			source:   `const a = "line.break\x21";`,
			target:   "a",
			expected: []string{"line.break!"},
		},
		{
			name:     "identifier chain",
			source:   "const a = 'x.y';\nconst b = a;\nconst c = (b);",
			target:   "c",
			expected: []string{"x.y"},
		},
		{
			name:     "cycle terminates empty",
			source:   "const a = b;\nconst b = a;",
			target:   "a",
			expected: []string{},
		},
		{
			name:     "self reference terminates empty",
			source:   "const a = `x.${a}`;",
			target:   "a",
			expected: []string{},
		},
		{
			name:     "template with unresolved span is empty",
			source:   "const a = 'known';\nconst k = `${a}.${unknown}`;",
			target:   "k",
			expected: []string{},
		},
		{
			name:     "cartesian expansion",
			source:   "const a = x ? 'a1' : 'a2';\nconst b = y ? 'b1' : 'b2';\nconst k = `p.${a}.${b}!`;",
			target:   "k",
			expected: []string{"p.a1.b1!", "p.a1.b2!", "p.a2.b1!", "p.a2.b2!"},
		},
		{
			name:     "same alternative twice collapses",
			source:   "const a = x ? 'same' : 'same';",
			target:   "a",
			expected: []string{"same"},
		},
		{
			name:     "conditional with non literal arm is empty",
			source:   "const b = 'b';\nconst a = x ? 'a' : b;",
			target:   "a",
			expected: []string{},
		},
		{
			name:     "concatenation chain",
			source:   "const p = 'menu';\nconst k = p + '.' + 'open';",
			target:   "k",
			expected: []string{"menu.open"},
		},
		{
			name:     "numeric operand is not a string",
			source:   "const k = 'item.' + 1;",
			target:   "k",
			expected: []string{},
		},
		{
			name:     "property projection",
			source:   "const obj = { title: 'profile.title' };\nconst k = obj.title;",
			target:   "k",
			expected: []string{"profile.title"},
		},
		{
			name:     "missing property",
			source:   "const obj = { title: 'profile.title' };\nconst k = obj.missing;",
			target:   "k",
			expected: []string{},
		},
		{
			name:     "shorthand property",
			source:   "const title = 'short.title';\nconst obj = { title };\nconst k = obj.title;",
			target:   "k",
			expected: []string{"short.title"},
		},
		{
			name:     "typed object",
			source:   "const obj = { a: { b: 'deep.key' } } as const;\nconst k = obj.a.b;",
			target:   "k",
			expected: []string{"deep.key"},
		},
		{
			name:     "call is unknown",
			source:   "const k = build('x');",
			target:   "k",
			expected: []string{},
		},
		{
			name:     "literal mode accepts literals",
			source:   "const k = flag ? 'on' : 'off';",
			target:   "k",
			mode:     Literal,
			expected: []string{"off", "on"},
		},
		{
			name:     "literal mode ignores identifiers",
			source:   "const a = 'x';\nconst k = a;",
			target:   "k",
			mode:     Literal,
			expected: []string{},
		},
		{
			name:     "literal mode ignores interpolation",
			source:   "const a = 'x';\nconst k = `p.${a}`;",
			target:   "k",
			mode:     Literal,
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := resolveTopLevel(t, tc.source, tc.target, tc.mode)
			assert.EqualValues(t, tc.expected, actual.Sorted())
		})
	}
}

func TestResolver_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/module.ts", []byte("const a = x ? 'a' : 'b';\nconst k = `${a}.${a}`;"), 0644))
	store := jsx.NewStore(fs)
	module, ok := store.Parse("/src/module.ts")
	require.True(t, ok)
	resolver := NewResolver(store, nil, scope.NewStack(), Dynamic)
	expr := store.Environment(module)["k"]

	first := resolver.Resolve(expr, Seen{})
	second := resolver.Resolve(expr, Seen{})
	assert.Equal(t, first, second)
	assert.EqualValues(t, []string{"a.a", "a.b", "b.a", "b.b"}, first.Sorted())
}

func TestResolver_Elements(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/module.ts", []byte("const extra = ['d'];\nconst list = ['a', 'b', ...extra, 'c'];\nconst alias = list;\nconst none = build();"), 0644))
	store := jsx.NewStore(fs)
	module, ok := store.Parse("/src/module.ts")
	require.True(t, ok)
	resolver := NewResolver(store, nil, scope.NewStack(), Dynamic)
	env := store.Environment(module)

	elements := resolver.Elements(env["alias"], Seen{})
	var texts []string
	for _, element := range elements {
		texts = append(texts, element.Text())
	}
	assert.Equal(t, []string{"'a'", "'b'", "'c'"}, texts)
	assert.Empty(t, resolver.Elements(env["none"], Seen{}))
}

func TestValues_Product(t *testing.T) {
	actual := product([]Values{NewValues("a", "b"), NewValues("."), NewValues("x", "y")})
	assert.EqualValues(t, []string{"a.x", "a.y", "b.x", "b.y"}, actual.Sorted())
	assert.EqualValues(t, []string{""}, product(nil).Sorted())
}

func TestSeen_With(t *testing.T) {
	seen := Seen{}
	next := seen.With("a#x")
	assert.False(t, seen.Has("a#x"))
	assert.True(t, next.Has("a#x"))
}
