package jsx

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Span is one interpolation of a template literal followed by the literal text after it
type Span struct {
	Expr *sitter.Node
	Tail string
}

// StringValue returns the cooked text of a string literal or of a template literal without substitutions
func StringValue(node *sitter.Node, src []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case "string":
		return Unescape(unquote(node.Content(src))), true
	case "template_string":
		if len(substitutions(node)) > 0 {
			return "", false
		}
		return Unescape(unquote(node.Content(src))), true
	}
	return "", false
}

// RawString returns the text between the quotes of a string node, without escape processing.
// JSX attribute values use it since markup strings carry no escapes.
func RawString(node *sitter.Node, src []byte) (string, bool) {
	if node == nil || (node.Type() != "string" && node.Type() != "jsx_string") {
		return "", false
	}
	return unquote(node.Content(src)), true
}

// TemplateSpans splits a template literal into its head text and interpolation spans
func TemplateSpans(node *sitter.Node, src []byte) (string, []Span) {
	subs := substitutions(node)
	start := node.StartByte() + 1
	end := node.EndByte() - 1
	if len(subs) == 0 {
		return Unescape(string(src[start:end])), nil
	}
	head := Unescape(string(src[start:subs[0].StartByte()]))
	spans := make([]Span, 0, len(subs))
	for i, sub := range subs {
		tailEnd := end
		if i+1 < len(subs) {
			tailEnd = subs[i+1].StartByte()
		}
		spans = append(spans, Span{
			Expr: firstNamed(sub),
			Tail: Unescape(string(src[sub.EndByte():tailEnd])),
		})
	}
	return head, spans
}

func substitutions(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "template_substitution" {
			result = append(result, child)
		}
	}
	return result
}

func firstNamed(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	return text[1 : len(text)-1]
}

// Unescape decodes JavaScript escape sequences
func Unescape(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var builder strings.Builder
	builder.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			builder.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			builder.WriteByte('\n')
		case 't':
			builder.WriteByte('\t')
		case 'r':
			builder.WriteByte('\r')
		case 'b':
			builder.WriteByte('\b')
		case 'f':
			builder.WriteByte('\f')
		case 'v':
			builder.WriteByte('\v')
		case '0':
			builder.WriteByte(0)
		case '\n':
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(raw, i+1, i+3); ok {
				builder.WriteRune(r)
				i += 2
				continue
			}
			builder.WriteByte('x')
		case 'u':
			r, next, ok := parseUnicode(raw, i+1)
			if !ok {
				builder.WriteByte('u')
				continue
			}
			i = next - 1
			if utf16.IsSurrogate(r) && strings.HasPrefix(raw[next:], `\u`) {
				if low, after, ok := parseUnicode(raw, next+2); ok {
					if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
						r = combined
						i = after - 1
					}
				}
			}
			builder.WriteRune(r)
		default:
			builder.WriteByte(raw[i])
		}
	}
	return builder.String()
}

// parseUnicode decodes XXXX or {X...} starting at offset and returns the index after it
func parseUnicode(raw string, offset int) (rune, int, bool) {
	if offset < len(raw) && raw[offset] == '{' {
		closing := strings.IndexByte(raw[offset:], '}')
		if closing < 2 {
			return 0, 0, false
		}
		r, ok := parseHex(raw, offset+1, offset+closing)
		return r, offset + closing + 1, ok
	}
	r, ok := parseHex(raw, offset, offset+4)
	return r, offset + 4, ok
}

func parseHex(raw string, from, to int) (rune, bool) {
	if to > len(raw) || from >= to {
		return 0, false
	}
	value, err := strconv.ParseUint(raw[from:to], 16, 32)
	if err != nil || value > utf8.MaxRune {
		return 0, false
	}
	return rune(value), true
}
