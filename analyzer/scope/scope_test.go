package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/i18nkeys/inspector/jsx"
)

func TestStack_Lookup(t *testing.T) {
	module := &jsx.Module{Path: "/src/a.ts"}
	outer := jsx.Expr{Module: module}
	inner := jsx.Expr{Module: &jsx.Module{Path: "/src/b.ts"}}

	stack := NewStack()
	root := stack.Push("program")
	stack.Bind("key", outer)

	block := stack.Push("statement_block")
	stack.Bind("key", inner)
	binding, ok := stack.Lookup("key")
	assert.True(t, ok)
	assert.Equal(t, []jsx.Expr{inner}, binding.Candidates)

	stack.Pop(block)
	binding, ok = stack.Lookup("key")
	assert.True(t, ok)
	assert.Equal(t, []jsx.Expr{outer}, binding.Candidates)

	_, ok = stack.Lookup("missing")
	assert.False(t, ok)

	stack.Pop(root)
	assert.Equal(t, 0, stack.Depth())
}

func TestStack_Pop(t *testing.T) {
	stack := NewStack()
	root := stack.Push("program")
	stack.Push("function_declaration")
	stack.Push("statement_block")
	assert.Equal(t, 3, stack.Depth())

	// popping an outer frame discards anything left above it
	stack.Pop(root)
	assert.Equal(t, 0, stack.Depth())
	assert.Nil(t, stack.Current())
}

func TestStack_BindOverwrites(t *testing.T) {
	first := jsx.Expr{Module: &jsx.Module{Path: "first"}}
	second := jsx.Expr{Module: &jsx.Module{Path: "second"}}
	stack := NewStack()
	stack.Push("program")
	stack.Bind("a", first)
	stack.Bind("a", second)

	binding, ok := stack.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, []jsx.Expr{second}, binding.Candidates)
	assert.Equal(t, 1, stack.Current().Len())
}

func TestStack_BindManyAndShadow(t *testing.T) {
	elements := []jsx.Expr{
		{Module: &jsx.Module{Path: "1"}},
		{Module: &jsx.Module{Path: "2"}},
		{Module: &jsx.Module{Path: "3"}},
	}
	stack := NewStack()
	stack.Push("program")
	stack.Bind("item", jsx.Expr{Module: &jsx.Module{Path: "outer"}})

	iteration := stack.Push("iteration")
	stack.BindMany("item", elements)
	binding, _ := stack.Lookup("item")
	assert.Len(t, binding.Candidates, 3)
	assert.False(t, binding.IsOpaque())
	stack.Pop(iteration)

	fn := stack.Push("arrow_function")
	stack.Shadow("item")
	binding, ok := stack.Lookup("item")
	assert.True(t, ok)
	assert.True(t, binding.IsOpaque())
	stack.Pop(fn)
}
