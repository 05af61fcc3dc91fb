// Package eval walks the AST and builds the flat CSS tree: it resolves
// variables through environment instantiations, dispatches mixins and
// functions, flattens nested style rules, merges media queries, applies
// `@at-root`, processes imports, and registers `@extend` pairs that a final
// pass unifies across the whole output. Evaluation is strictly
// left-to-right, top-to-bottom; one Evaluator serves one compile and is
// never shared.
package eval

import (
	"fmt"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/importer"
	"github.com/sassgo/sass/logger"
	"github.com/sassgo/sass/selector"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// RuntimeError is a fatal evaluation failure: it unwinds to the top-level
// compile carrying the offending span and a snapshot of the call stack.
type RuntimeError struct {
	Message string
	Span    source.Span
	Trace   []string
}

func (e *RuntimeError) Error() string { return e.Message }

// Config wires one Evaluator. Registry and Frames must be the ones the root
// source was parsed with, since resolved (frame, slot) indices in the AST
// index into them.
type Config struct {
	Registry  *source.Registry
	Frames    *env.Table
	Logger    *logger.Logger
	Importers *importer.Chain
	Resolver  *importer.FSResolver
	Functions []Custom
	// DepthLimit bounds mixin/function/content recursion; zero means the
	// default of 1024 frames.
	DepthLimit int
}

// Custom is an externally provided function: a signature string the core
// parses into formals, and a callback receiving the bound argument values
// in declaration order.
type Custom struct {
	Signature string
	Fn        func(args []value.Value) (value.Value, error)
}

// contentClosure captures an `@include ... { ... }` block together with the
// environment and flags active at the include site, so `@content` can run
// it in its definition context rather than the mixin's.
type contentClosure struct {
	block *ast.ContentBlock
	env   *env.Instantiation
	flags env.Flags
	prev  *contentClosure
}

// Evaluator is the tree walker. All fields describe "where evaluation
// currently stands"; statement handlers save and restore them around child
// evaluations.
type Evaluator struct {
	reg    *source.Registry
	frames *env.Table
	log    *logger.Logger
	stack  *env.CallStack

	root *env.Instantiation
	cur  *env.Instantiation

	tree      *cssom.Tree
	parent    cssom.NodeId
	styleRule cssom.NodeId
	selStack  []selector.List
	media     []Query
	flags     env.Flags
	content   *contentClosure

	exts      *selector.Extensions
	importers *importer.Chain
	resolver  *importer.FSResolver
	custom    map[string]*Callable
	importing map[string]bool
}

// New builds an evaluator from cfg, parsing custom-function signatures up
// front so malformed signatures fail before any evaluation starts.
func New(cfg Config) (*Evaluator, error) {
	e := &Evaluator{
		reg:       cfg.Registry,
		frames:    cfg.Frames,
		log:       cfg.Logger,
		stack:     env.NewCallStack(cfg.DepthLimit),
		tree:      cssom.NewTree(),
		parent:    cssom.RootID,
		styleRule: cssom.NoNode,
		exts:      selector.NewExtensions(),
		importers: cfg.Importers,
		resolver:  cfg.Resolver,
		custom:    make(map[string]*Callable),
		importing: make(map[string]bool),
	}
	if e.log == nil {
		e.log = logger.New()
	}
	if e.importers == nil {
		e.importers = importer.NewChain()
	}
	for _, c := range cfg.Functions {
		callable, err := ParseCustom(cfg.Registry, cfg.Frames, c)
		if err != nil {
			return nil, err
		}
		e.custom[callable.Name] = callable
	}
	return e, nil
}

// Run evaluates a parsed stylesheet and returns the finished CSS tree, with
// extensions applied and placeholder-only rules stripped.
func (e *Evaluator) Run(sheet *ast.Stylesheet) (*cssom.Tree, error) {
	e.root = env.New(e.frames, env.Root, nil)
	e.cur = e.root
	if ret, err := e.execStatements(sheet.Body); err != nil {
		return nil, err
	} else if ret != nil {
		return nil, e.errorf(sheet.Span, "@return may only be used within a function.")
	}
	if err := e.finalizeExtends(sheet.Span); err != nil {
		return nil, err
	}
	return e.tree, nil
}

// Tree exposes the CSS tree mid-build, for tests that inspect structure.
func (e *Evaluator) Tree() *cssom.Tree { return e.tree }

// errorf raises a RuntimeError at sp with the current call-stack snapshot.
func (e *Evaluator) errorf(sp source.Span, format string, args ...interface{}) error {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Span:    sp,
		Trace:   e.stack.Trace(e.reg),
	}
}

// wrap converts a plain error (from the value layer or the selector engine)
// into a RuntimeError anchored at sp; an error that already carries a span
// passes through untouched.
func (e *Evaluator) wrap(sp source.Span, err error) error {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	return &RuntimeError{Message: err.Error(), Span: sp, Trace: e.stack.Trace(e.reg)}
}

// withScope evaluates fn with a fresh instantiation of frame chained onto
// the current environment, restoring the previous environment after.
func (e *Evaluator) withScope(frame int, fn func() (value.Value, error)) (value.Value, error) {
	prev := e.cur
	e.cur = env.New(e.frames, frame, prev)
	defer func() { e.cur = prev }()
	return fn()
}

// hoistTarget walks up from the current parent to the nearest node a flat
// rule may attach to: the first ancestor (or the current parent itself)
// that is neither a style rule nor an import trace. Import traces are
// transparent to this walk, as they are to emission.
func (e *Evaluator) hoistTarget() cssom.NodeId {
	id := e.parent
	for id != cssom.RootID {
		if k := e.tree.Get(id).Kind; k != cssom.KindStyleRule && k != cssom.KindImportTrace {
			return id
		}
		id = e.tree.Get(id).Parent
	}
	return cssom.RootID
}

// hoistTargetOutsideMedia additionally skips media rules, so nested @media
// blocks flatten into a single merged rule instead of nesting.
func (e *Evaluator) hoistTargetOutsideMedia() cssom.NodeId {
	id := e.parent
	for id != cssom.RootID {
		k := e.tree.Get(id).Kind
		if k != cssom.KindStyleRule && k != cssom.KindMediaRule && k != cssom.KindImportTrace {
			return id
		}
		id = e.tree.Get(id).Parent
	}
	return cssom.RootID
}

// currentSelector returns the resolved selector list of the innermost style
// rule, or nil when evaluation is at top level.
func (e *Evaluator) currentSelector() *selector.List {
	if len(e.selStack) == 0 {
		return nil
	}
	return &e.selStack[len(e.selStack)-1]
}

// mediaContext renders the active merged media stack to its canonical
// string; extension registration and application both key on it.
func (e *Evaluator) mediaContext() string {
	return RenderQueries(e.media)
}
