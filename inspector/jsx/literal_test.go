package jsx

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	var testCases = []struct {
		description string
		raw         string
		expected    string
	}{
		{description: "plain", raw: "auth.login", expected: "auth.login"},
		{description: "simple escapes", raw: `a\nb\tc\\d\'e\"f`, expected: "a\nb\tc\\d'e\"f"},
		{description: "hex", raw: `\x41\x42`, expected: "AB"},
		{description: "invalid hex", raw: `\xZZ`, expected: "xZZ"},
		{description: "unicode", raw: `caf\u00e9`, expected: "caf\u00e9"},
		{description: "code point", raw: `\u{1F600}`, expected: "\U0001F600"},
		{description: "surrogate pair", raw: `\uD83D\uDE00`, expected: "\U0001F600"},
		{description: "line continuation", raw: "a\\\nb", expected: "ab"},
		{description: "trailing backslash", raw: `a\`, expected: `a\`},
		{description: "unknown escape", raw: `\q`, expected: "q"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, Unescape(testCase.raw), testCase.description)
	}
}

// firstOfType returns the first node of nodeType in a depth-first walk
func firstOfType(node *sitter.Node, nodeType string) *sitter.Node {
	if node.Type() == nodeType {
		return node
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if found := firstOfType(node.NamedChild(i), nodeType); found != nil {
			return found
		}
	}
	return nil
}

func TestTemplateSpans(t *testing.T) {
	store := newMemStore(t, map[string]string{
		"/src/a.ts": "const a = `head.${first}.mid\\n${second.prop}tail`;\nconst b = `plain\\t${''}`;\nconst c = `no.spans`;",
	})
	module, ok := store.Parse("/src/a.ts")
	require.True(t, ok)
	statements := module.Statements()
	require.Len(t, statements, 3)

	template := firstOfType(statements[0], "template_string")
	require.NotNil(t, template)
	_, ok = StringValue(template, module.Source)
	assert.False(t, ok)
	head, spans := TemplateSpans(template, module.Source)
	assert.Equal(t, "head.", head)
	require.Len(t, spans, 2)
	assert.Equal(t, "first", module.Text(spans[0].Expr))
	assert.Equal(t, ".mid\n", spans[0].Tail)
	assert.Equal(t, "second.prop", module.Text(spans[1].Expr))
	assert.Equal(t, "tail", spans[1].Tail)

	head, spans = TemplateSpans(firstOfType(statements[1], "template_string"), module.Source)
	assert.Equal(t, "plain\t", head)
	require.Len(t, spans, 1)
	assert.Equal(t, "", spans[0].Tail)

	value, ok := StringValue(firstOfType(statements[2], "template_string"), module.Source)
	assert.True(t, ok)
	assert.Equal(t, "no.spans", value)
}

func TestRawString(t *testing.T) {
	store := newMemStore(t, map[string]string{
		"/src/a.jsx": `const a = <Trans i18nKey="raw\n.key" />;`,
	})
	module, ok := store.Parse("/src/a.jsx")
	require.True(t, ok)
	attribute := firstOfType(module.Root, "jsx_attribute")
	require.NotNil(t, attribute)
	children := NamedChildren(attribute)
	require.Len(t, children, 2)
	value, ok := RawString(children[1], module.Source)
	assert.True(t, ok)
	assert.Equal(t, `raw\n.key`, value)
}

func TestDialectOf(t *testing.T) {
	assert.Equal(t, DialectTypeScript, DialectOf("a/b.ts"))
	assert.Equal(t, DialectTypeScript, DialectOf("a/b.MTS"))
	assert.Equal(t, DialectTSX, DialectOf("a/b.tsx"))
	assert.Equal(t, DialectJavaScript, DialectOf("a/b.jsx"))
	assert.Equal(t, DialectJavaScript, DialectOf("a/b.cjs"))
	assert.Equal(t, DialectUnknown, DialectOf("a/b.json"))
	assert.False(t, IsSource("a/b.d"))
	assert.Equal(t, "tsx", DialectTSX.String())
	assert.Nil(t, DialectUnknown.Language())
}
