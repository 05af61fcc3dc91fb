package ast

import "github.com/sassgo/sass/value"

func (NumberLit) expr()          {}
func (ColorLit) expr()           {}
func (StringLit) expr()          {}
func (BoolLit) expr()            {}
func (NullLit) expr()            {}
func (ListLit) expr()            {}
func (MapLit) expr()             {}
func (VarRef) expr()             {}
func (BinaryOp) expr()           {}
func (UnaryOp) expr()            {}
func (Paren) expr()              {}
func (FuncCall) expr()           {}
func (IfExpr) expr()             {}
func (InterpolatedIdent) expr()  {}
func (InterpolatedString) expr() {}
func (ParentRef) expr()          {}
func (ArgListExpr) expr()        {}

// NumberLit is a literal number with an optional unit, e.g. `10px`.
type NumberLit struct {
	Node
	Val  float64
	Unit string
}

// ColorLit is a literal hex color, e.g. `#abc`.
type ColorLit struct {
	Node
	Color value.Color
}

// StringLit is a non-interpolated quoted or unquoted string.
type StringLit struct {
	Node
	Text   string
	Quoted bool
}

type BoolLit struct {
	Node
	Val bool
}

type NullLit struct{ Node }

// ListLit is a list literal as written: `1, 2, 3` or `1 2 3` or `[a, b]`.
type ListLit struct {
	Node
	Items     []Expression
	Comma     bool // true if comma-separated, false if space-separated
	Bracketed bool
}

// MapLit is `(key: value, ...)`.
type MapLit struct {
	Node
	Keys   []Expression
	Values []Expression
}

// VarRef is a `$name` reference, resolved at parse time to a (frame, slot)
// pair when the declaring scope is known statically; Slot stays -1 for
// names that require lexical lookup at evaluation time (outer-scope or
// global names referenced before the hoisting pass can prove locality).
type VarRef struct {
	Node
	Name   string
	Frame  int
	Slot   int
	Global bool
}

// BinaryOp covers the eleven value operators (`==`,`!=`,`<`,`<=`,`>`,`>=`,
// `+`,`-`,`*`,`/`,`%`) plus the boolean `and`/`or` and the legacy MS `=`.
type BinaryOp struct {
	Node
	Op    string
	Left  Expression
	Right Expression
	// PossiblySlash marks a `Number / Number` expression: the evaluator
	// preserves the slash form if both operands remain literal numbers
	// and the result isn't consumed by an arithmetic context.
	PossiblySlash bool
}

// UnaryOp covers `+`, `-`, `not`, and the CSS-passthrough unary `/`.
type UnaryOp struct {
	Node
	Op      string
	Operand Expression
}

type Paren struct {
	Node
	Inner Expression
}

// FuncCall is a function or mixin invocation's argument expression form:
// `name(arg, $kw: val, ...$rest)`. Namespace is non-empty only for `@use`
// syntax, which this core does not evaluate (reserved, never populated by
// the parser; kept for forward shape compatibility).
type FuncCall struct {
	Node
	Namespace    string
	Name         *Interpolation
	Positional   []Expression
	Keyword      map[string]Expression
	KeywordOrder []string
	Rest         Expression // the `...`-spliced argument, or nil
	// ResolvedFrame/ResolvedSlot point at a hoisted local function slot
	// when the call's target could be proven local at parse time;
	// ResolvedFrame is -1 otherwise, deferring to a name-based lookup at
	// evaluation time.
	ResolvedFrame int
	ResolvedSlot  int
}

// IfExpr is the `if(cond, a, b)` macro -- lazily evaluated, unlike a normal
// function call, so only one of a/b is ever evaluated.
type IfExpr struct {
	Node
	Cond, Then, Else Expression
}

// InterpolatedIdent is an identifier-shaped expression containing `#{}`
// holes, e.g. a custom property name or an otherwise-bare keyword that
// turns out to need interpolation.
type InterpolatedIdent struct {
	Node
	Parts *Interpolation
}

// InterpolatedString is a quoted string containing `#{}` holes.
type InterpolatedString struct {
	Node
	Parts  *Interpolation
	Quoted bool
}

// ParentRef is the bare `&` token.
type ParentRef struct{ Node }

// ArgListExpr is `...` splicing an existing list/arglist at a call site.
type ArgListExpr struct {
	Node
	Value Expression
}
