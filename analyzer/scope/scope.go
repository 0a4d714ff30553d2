package scope

import (
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Binding associates a name with the expressions it may evaluate to.
// A const has one candidate, an iteration parameter one per element, and
// an opaque binding (parameter, let, destructured name) none.
type Binding struct {
	Name       string
	Candidates []jsx.Expr
}

// IsOpaque returns true if the binding shadows without a known value
func (b *Binding) IsOpaque() bool {
	return len(b.Candidates) == 0
}

// Frame is one level of lexical visibility
type Frame struct {
	Kind     string // e.g. "program", "statement_block", "arrow_function", "iteration"
	bindings map[string]*Binding
}

// Lookup returns the binding declared in this frame
func (f *Frame) Lookup(name string) (*Binding, bool) {
	binding, ok := f.bindings[name]
	return binding, ok
}

// Len returns the number of bindings declared in this frame
func (f *Frame) Len() int {
	return len(f.bindings)
}

// Stack is an explicit stack of frames mirroring the nesting of the traversed tree
type Stack struct {
	frames []*Frame
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Push opens a new innermost frame; pair it with Pop, typically deferred
func (s *Stack) Push(kind string) *Frame {
	frame := &Frame{Kind: kind, bindings: make(map[string]*Binding)}
	s.frames = append(s.frames, frame)
	return frame
}

// Pop removes frame together with any frame left above it
func (s *Stack) Pop(frame *Frame) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i] == frame {
			for j := i; j < len(s.frames); j++ {
				s.frames[j] = nil
			}
			s.frames = s.frames[:i]
			return
		}
	}
}

// Depth returns the number of open frames
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Current returns the innermost frame
func (s *Stack) Current() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Bind declares a single-candidate binding in the innermost frame, replacing a previous one
func (s *Stack) Bind(name string, expr jsx.Expr) {
	s.BindMany(name, []jsx.Expr{expr})
}

// BindMany declares a multi-candidate binding in the innermost frame
func (s *Stack) BindMany(name string, exprs []jsx.Expr) {
	frame := s.Current()
	if frame == nil {
		frame = s.Push("program")
	}
	frame.bindings[name] = &Binding{Name: name, Candidates: exprs}
}

// Shadow declares an opaque binding in the innermost frame
func (s *Stack) Shadow(name string) {
	s.BindMany(name, nil)
}

// Lookup resolves name from the innermost frame outwards
func (s *Stack) Lookup(name string) (*Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if binding, ok := s.frames[i].bindings[name]; ok {
			return binding, true
		}
	}
	return nil, false
}
