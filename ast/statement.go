package ast

func (StyleRule) stmt()         {}
func (Declaration) stmt()       {}
func (VarDecl) stmt()           {}
func (IfStatement) stmt()       {}
func (ForStatement) stmt()      {}
func (EachStatement) stmt()     {}
func (WhileStatement) stmt()    {}
func (MixinDecl) stmt()         {}
func (FunctionDecl) stmt()      {}
func (IncludeStatement) stmt()  {}
func (ContentStatement) stmt()  {}
func (ReturnStatement) stmt()   {}
func (ImportStatement) stmt()   {}
func (ExtendStatement) stmt()   {}
func (WarnStatement) stmt()     {}
func (ErrorStatement) stmt()    {}
func (DebugStatement) stmt()    {}
func (Comment) stmt()           {}
func (AtRootStatement) stmt()   {}
func (MediaStatement) stmt()    {}
func (SupportsStatement) stmt() {}
func (AtRule) stmt()            {}

// StyleRule is a selector plus its nested body: `.a, .b { ... }`. Frame is
// the scope hoisted for the body, instantiated when the rule is evaluated.
type StyleRule struct {
	Node
	Selector *Interpolation
	Body     []Statement
	Frame    int
}

// Declaration is `property: value` with optional nested children (the
// shorthand nested-property form, `font: { size: 1em; }`).
type Declaration struct {
	Node
	Property *Interpolation
	Value    Expression // nil if only nested children are present
	Body     []Statement
	Frame    int
}

// VarDecl is `$name: value [!default] [!global]`.
type VarDecl struct {
	Node
	Name    string
	Value   Expression
	Default bool
	Global  bool
	Frame   int
	Slot    int
}

// IfClause is one arm of a chained `@if`/`@else if`/`@else`; Cond is nil on
// the trailing `@else` (must be last).
type IfClause struct {
	Cond  Expression
	Body  []Statement
	Frame int
}

type IfStatement struct {
	Node
	Clauses []IfClause
}

// ForStatement is `@for $v from A (to|through) B`.
type ForStatement struct {
	Node
	Var       string
	Frame     int
	Slot      int
	From, To  Expression
	Inclusive bool // true for "through", false for "to"
	Body      []Statement
}

// EachStatement is `@each $v1, $v2, ... in <expr>`.
type EachStatement struct {
	Node
	Vars  []string
	Frame int
	Slots []int
	List  Expression
	Body  []Statement
}

type WhileStatement struct {
	Node
	Cond  Expression
	Body  []Statement
	Frame int
}

// Param is one formal argument of a mixin/function/content-block
// declaration: `$name: default` or `$name...` (rest).
type Param struct {
	Name    string
	Default Expression // nil if required
	Rest    bool
	Frame   int
	Slot    int
}

// ContentBlock captures the `using (...)` clause and body of an
// `@include ... { ... }` call site.
type ContentBlock struct {
	Params []Param
	Body   []Statement
	Frame  int // the frame instantiated for this block's own params
}

type MixinDecl struct {
	Node
	Name   string
	Params []Param
	Body   []Statement
	Frame  int // the scope frame hoisted for this mixin's locals
	Slot   int
}

type FunctionDecl struct {
	Node
	Name   string
	Params []Param
	Body   []Statement
	Frame  int
	Slot   int
}

// IncludeStatement is `@include name(args) [using (...)] { ... }`.
type IncludeStatement struct {
	Node
	Namespace     string
	Name          string
	Args          *FuncCall // reuses FuncCall's argument-list shape
	Content       *ContentBlock
	ResolvedFrame int
	ResolvedSlot  int
}

// ContentStatement is a bare `@content(args);` inside a mixin body.
type ContentStatement struct {
	Node
	Args *FuncCall
}

// ReturnStatement is `@return expr;`, valid only inside a function body.
type ReturnStatement struct {
	Node
	Value Expression
}

// ImportStatement is `@import url1, url2, ...;`. Each entry is classified
// static-vs-dynamic by the evaluator per the §4.6.6 rule; the parser just
// records the raw text plus any trailing media/supports clause.
type ImportEntry struct {
	URL   *Interpolation
	Media *Interpolation // optional trailing media-query/supports tail
}

type ImportStatement struct {
	Node
	Entries []ImportEntry
}

// ExtendStatement is `@extend <selector> [!optional];`, only legal inside a
// style rule body (enforced by the evaluator, not the parser, since the
// grammar shape is identical either way).
type ExtendStatement struct {
	Node
	Target   *Interpolation
	Optional bool
}

type WarnStatement struct {
	Node
	Value Expression
}

type ErrorStatement struct {
	Node
	Value Expression
}

type DebugStatement struct {
	Node
	Value Expression
}

// Comment is either a loud `/* */` comment (preserved in output) or a
// silent `//` one (dropped, except in the indented/sass dialect's debug
// tooling).
type Comment struct {
	Node
	Text string
	Loud bool
}

// AtRootQuery names which enclosing rule kinds `@at-root (with: ...)` /
// `(without: ...)` should keep or exclude.
type AtRootQuery struct {
	Names   []string // "rule", "media", "supports", "all", or an at-rule name
	Exclude bool     // true for (without: ...); false (and default) for (with: ...)
}

type AtRootStatement struct {
	Node
	Query *AtRootQuery
	Body  []Statement
	Frame int
}

// MediaStatement is `@media <query-list> { ... }`; Query is re-parsed from
// interpolated text at evaluation time, per the two-stage interpolation
// model.
type MediaStatement struct {
	Node
	Query *Interpolation
	Body  []Statement
	Frame int
}

type SupportsStatement struct {
	Node
	Condition *Interpolation
	Body      []Statement
	Frame     int
}

// AtRule is the catch-all for any at-rule the parser doesn't special-case
// (`@font-face`, `@keyframes`, `@page`, an unrecognized `@foo`, ...): its
// body, if any, is preserved verbatim as nested statements, and its
// prelude as an interpolation.
type AtRule struct {
	Node
	Name    *Interpolation
	Prelude *Interpolation // nil if the at-rule takes no prelude
	Body    []Statement    // nil if the at-rule ends in `;`
	HasBody bool
	Frame   int
}
