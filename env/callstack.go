package env

import (
	"fmt"

	"github.com/sassgo/sass/source"
)

// CallKind tags why a call-stack frame was pushed, used to render its
// name in a stack trace (`path line:col mixin/function-name`).
type CallKind int

const (
	CallMixin CallKind = iota
	CallFunction
	CallImport
	CallContent
	CallRoot
)

func (k CallKind) String() string {
	switch k {
	case CallMixin:
		return "mixin"
	case CallFunction:
		return "function"
	case CallImport:
		return "import"
	case CallContent:
		return "content block"
	default:
		return "root stylesheet"
	}
}

// CallFrame is one entry in the active call stack during evaluation.
type CallFrame struct {
	Kind CallKind
	Name string
	Span source.Span
}

// CallStack is the chain of active mixin/function/@content/@import frames,
// carried so errors and warnings can render a full trace. It is a plain
// slice wrapped for push/pop symmetry and depth-limit enforcement.
type CallStack struct {
	frames []CallFrame
	limit  int
}

// DefaultDepthLimit matches the configurable bounded call-depth the
// evaluator enforces against runaway recursion.
const DefaultDepthLimit = 1024

func NewCallStack(limit int) *CallStack {
	if limit <= 0 {
		limit = DefaultDepthLimit
	}
	return &CallStack{limit: limit}
}

// ErrStackDepth is returned by Push once the configured depth limit is
// exceeded.
type ErrStackDepth struct{ Limit int }

func (e *ErrStackDepth) Error() string {
	return fmt.Sprintf("stack depth exceeded (%d)", e.Limit)
}

func (s *CallStack) Push(f CallFrame) error {
	if len(s.frames) >= s.limit {
		return &ErrStackDepth{Limit: s.limit}
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *CallStack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *CallStack) Depth() int { return len(s.frames) }

// Frames returns the active frames, innermost last.
func (s *CallStack) Frames() []CallFrame { return s.frames }

// Trace renders one line per frame, innermost first, in the
// `path line:col name` shape the logger prints beneath an error.
func (s *CallStack) Trace(reg *source.Registry) []string {
	lines := make([]string, 0, len(s.frames))
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		path := f.Span.Path(reg)
		lines = append(lines, fmt.Sprintf("%s %d:%d %s", path, f.Span.StartLine(), f.Span.StartColumn(), f.Name))
	}
	return lines
}
