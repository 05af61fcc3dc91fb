package eval

import (
	"fmt"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/internal/strings"
	"github.com/sassgo/sass/selector"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// execStatements runs stmts in order. A non-nil value result is an early
// `@return` propagating out of the enclosing function body.
func (e *Evaluator) execStatements(stmts []ast.Statement) (value.Value, error) {
	for _, s := range stmts {
		ret, err := e.execStatement(s)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (e *Evaluator) execStatement(s ast.Statement) (value.Value, error) {
	switch st := s.(type) {
	case *ast.StyleRule:
		return nil, e.evalStyleRule(st)
	case *ast.Declaration:
		return nil, e.evalDeclaration(st, "")
	case *ast.VarDecl:
		return nil, e.evalVarDecl(st)
	case *ast.IfStatement:
		return e.evalIf(st)
	case *ast.ForStatement:
		return e.evalFor(st)
	case *ast.EachStatement:
		return e.evalEach(st)
	case *ast.WhileStatement:
		return e.evalWhile(st)
	case *ast.MixinDecl:
		return nil, e.evalMixinDecl(st)
	case *ast.FunctionDecl:
		return nil, e.evalFunctionDecl(st)
	case *ast.IncludeStatement:
		return nil, e.evalInclude(st)
	case *ast.ContentStatement:
		return nil, e.evalContent(st)
	case *ast.ReturnStatement:
		if !e.flags.InFunction {
			return nil, e.errorf(st.Span, "@return may only be used within a function.")
		}
		return e.evalExpr(st.Value)
	case *ast.ImportStatement:
		return nil, e.evalImport(st)
	case *ast.ExtendStatement:
		return nil, e.evalExtend(st)
	case *ast.WarnStatement:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return nil, err
		}
		e.log.Warn(displayText(v), st.Span, e.stack.Trace(e.reg))
		return nil, nil
	case *ast.ErrorStatement:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return nil, err
		}
		return nil, e.errorf(st.Span, "%s", displayText(v))
	case *ast.DebugStatement:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return nil, err
		}
		e.log.Debug(v.Inspect(), st.Span, e.stack.Trace(e.reg))
		return nil, nil
	case *ast.Comment:
		if st.Loud && !e.flags.InFunction {
			e.tree.Add(e.parent, cssom.Node{Kind: cssom.KindComment, CommentText: st.Text, Span: st.Span})
		}
		return nil, nil
	case *ast.AtRootStatement:
		return nil, e.evalAtRoot(st)
	case *ast.MediaStatement:
		return nil, e.evalMedia(st)
	case *ast.SupportsStatement:
		return nil, e.evalSupports(st)
	case *ast.AtRule:
		return nil, e.evalAtRule(st)
	default:
		return nil, e.errorf(s.SourceSpan(), "unhandled statement %T", s)
	}
}

func (e *Evaluator) evalStyleRule(st *ast.StyleRule) error {
	text, err := e.evalInterpolation(st.Selector)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)

	if e.flags.InKeyframes {
		node := e.tree.Add(e.parent, cssom.Node{Kind: cssom.KindStyleRule, RawSelector: text, Span: st.Span})
		return e.evalRuleBody(st.Frame, st.Body, node, node)
	}

	list, err := selector.Parse(text)
	if err != nil {
		if !st.Selector.Plain() {
			// The selector text came from interpolation: report against a
			// synthetic source that reconstructs the effective line, so the
			// message still points into the user's document.
			syn := e.reg.AddSynthetic(e.reg.Get(st.Span.SourceID), st.Selector.Span.Start, text)
			return e.wrap(source.Span{SourceID: syn.ID, Start: st.Selector.Span.Start, End: st.Selector.Span.End}, err)
		}
		return e.wrap(st.Selector.Span, err)
	}
	if len(e.selStack) == 0 && selector.HasExplicitParentRef(list) {
		return e.errorf(st.Selector.Span, "Top-level selectors may not contain the parent selector.")
	}
	resolved := list
	if cur := e.currentSelector(); cur != nil {
		resolved = selector.ResolveParent(list, *cur)
	}
	node := e.tree.Add(e.hoistTarget(), cssom.Node{Kind: cssom.KindStyleRule, Selector: resolved, Span: st.Span})
	e.selStack = append(e.selStack, resolved)
	defer func() { e.selStack = e.selStack[:len(e.selStack)-1] }()
	return e.evalRuleBody(st.Frame, st.Body, node, node)
}

// evalRuleBody evaluates body with the CSS parent and current style rule
// redirected at the given nodes, in a fresh instantiation of frame.
func (e *Evaluator) evalRuleBody(frame int, body []ast.Statement, parent, rule cssom.NodeId) error {
	prevParent, prevRule := e.parent, e.styleRule
	e.parent, e.styleRule = parent, rule
	defer func() { e.parent, e.styleRule = prevParent, prevRule }()
	_, err := e.withScope(frame, func() (value.Value, error) {
		return e.execStatements(body)
	})
	return err
}

func (e *Evaluator) evalDeclaration(st *ast.Declaration, prefix string) error {
	name, err := e.evalInterpolation(st.Property)
	if err != nil {
		return err
	}
	name = prefix + strings.TrimSpace(name)

	if e.styleRule == cssom.NoNode && !e.flags.InUnknownAtRule && !e.flags.InKeyframes {
		return e.errorf(st.Span, "Declarations may only be used within style rules.")
	}

	if st.Value != nil {
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return err
		}
		if !droppedValue(v) {
			text, err := CSSText(v)
			if err != nil {
				return e.wrap(st.Span, err)
			}
			e.tree.Add(e.parent, cssom.Node{
				Kind: cssom.KindDeclaration, Property: name, Value: text, Span: st.Span,
			})
		}
	}

	if len(st.Body) > 0 {
		_, err := e.withScope(st.Frame, func() (value.Value, error) {
			for _, child := range st.Body {
				if d, ok := child.(*ast.Declaration); ok {
					if err := e.evalDeclaration(d, name+"-"); err != nil {
						return nil, err
					}
					continue
				}
				if _, err := e.execStatement(child); err != nil {
					return nil, err
				}
			}
			return nil, nil
		})
		return err
	}
	return nil
}

// droppedValue reports whether a declaration value is elided from output
// entirely: null, and the empty unquoted string, produce no declaration.
func droppedValue(v value.Value) bool {
	if v.Kind() == value.KindNull {
		return true
	}
	if s, ok := v.(value.String); ok && !s.Quoted && s.Text == "" {
		return true
	}
	return false
}

func (e *Evaluator) evalVarDecl(st *ast.VarDecl) error {
	if st.Default {
		if existing, ok := e.cur.Get(st.Frame, st.Slot); ok && existing.Kind() != value.KindNull {
			return nil
		}
	}
	v, err := e.evalExpr(st.Value)
	if err != nil {
		return err
	}
	if !e.cur.Set(st.Frame, st.Slot, v) {
		return e.errorf(st.Span, "Undefined variable: $%s.", st.Name)
	}
	return nil
}

func (e *Evaluator) evalIf(st *ast.IfStatement) (value.Value, error) {
	for _, cl := range st.Clauses {
		if cl.Cond != nil {
			cond, err := e.evalExpr(cl.Cond)
			if err != nil {
				return nil, err
			}
			if !cond.Truthy() {
				continue
			}
		}
		return e.inControl(func() (value.Value, error) {
			return e.withScope(cl.Frame, func() (value.Value, error) {
				return e.execStatements(cl.Body)
			})
		})
	}
	return nil, nil
}

// inControl runs fn with the in-control-directive flag raised.
func (e *Evaluator) inControl(fn func() (value.Value, error)) (value.Value, error) {
	prev := e.flags.InControlDirective
	e.flags.InControlDirective = true
	defer func() { e.flags.InControlDirective = prev }()
	return fn()
}

func (e *Evaluator) evalFor(st *ast.ForStatement) (value.Value, error) {
	fromV, err := e.evalNumber(st.From, "@for")
	if err != nil {
		return nil, err
	}
	toV, err := e.evalNumber(st.To, "@for")
	if err != nil {
		return nil, err
	}
	if !fromV.Comparable(toV) {
		return nil, e.errorf(st.Span, "Incompatible units: %q and %q.", fromV.UnitString(), toV.UnitString())
	}
	from, to := int(fromV.Val), int(toV.Val)
	step := 1
	if from > to {
		step = -1
	}
	end := to
	if st.Inclusive {
		end += step
	}
	return e.inControl(func() (value.Value, error) {
		for i := from; i != end; i += step {
			n := value.Number{Val: float64(i), Numerators: fromV.Numerators, Denominators: fromV.Denominators}
			ret, err := e.withScope(st.Frame, func() (value.Value, error) {
				e.cur.Set(st.Frame, st.Slot, n)
				return e.execStatements(st.Body)
			})
			if err != nil || ret != nil {
				return ret, err
			}
		}
		return nil, nil
	})
}

func (e *Evaluator) evalNumber(expr ast.Expression, what string) (value.Number, error) {
	v, err := e.evalExpr(expr)
	if err != nil {
		return value.Number{}, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, e.errorf(expr.SourceSpan(), "%s: %s is not a number.", what, v.Inspect())
	}
	return n, nil
}

func (e *Evaluator) evalEach(st *ast.EachStatement) (value.Value, error) {
	list, err := e.evalExpr(st.List)
	if err != nil {
		return nil, err
	}

	var elements []value.Value
	switch lv := list.(type) {
	case value.Map:
		elements = lv.AsList().Items
	case value.List:
		elements = lv.Items
	case value.ArgumentList:
		elements = lv.Items
	default:
		elements = []value.Value{list}
	}

	return e.inControl(func() (value.Value, error) {
		for _, elem := range elements {
			ret, err := e.withScope(st.Frame, func() (value.Value, error) {
				e.bindEachVars(st, elem)
				return e.execStatements(st.Body)
			})
			if err != nil || ret != nil {
				return ret, err
			}
		}
		return nil, nil
	})
}

// bindEachVars implements the destructuring rule: a single variable binds
// the whole element; multiple variables destructure a list element
// positionally, extras binding to null; a scalar element with multiple
// variables binds the first and nulls the rest.
func (e *Evaluator) bindEachVars(st *ast.EachStatement, elem value.Value) {
	if len(st.Vars) == 1 {
		e.cur.Set(st.Frame, st.Slots[0], elem)
		return
	}
	var parts []value.Value
	if l, ok := elem.(value.List); ok {
		parts = l.Items
	} else {
		parts = []value.Value{elem}
	}
	for i := range st.Vars {
		if i < len(parts) {
			e.cur.Set(st.Frame, st.Slots[i], parts[i])
		} else {
			e.cur.Set(st.Frame, st.Slots[i], value.TheNull)
		}
	}
}

func (e *Evaluator) evalWhile(st *ast.WhileStatement) (value.Value, error) {
	return e.inControl(func() (value.Value, error) {
		for {
			cond, err := e.evalExpr(st.Cond)
			if err != nil {
				return nil, err
			}
			if !cond.Truthy() {
				return nil, nil
			}
			ret, err := e.withScope(st.Frame, func() (value.Value, error) {
				return e.execStatements(st.Body)
			})
			if err != nil || ret != nil {
				return ret, err
			}
		}
	})
}

func (e *Evaluator) evalMixinDecl(st *ast.MixinDecl) error {
	c := &Callable{
		Kind:    CallableMixin,
		Name:    st.Name,
		Params:  st.Params,
		Body:    st.Body,
		Frame:   st.Frame,
		Closure: e.cur,
	}
	declFrame := e.frames.ParentOf(st.Frame)
	if !e.cur.Set(declFrame, st.Slot, value.FunctionRef{Name: st.Name, Callable: c}) {
		return e.errorf(st.Span, "cannot declare mixin %q here", st.Name)
	}
	return nil
}

func (e *Evaluator) evalFunctionDecl(st *ast.FunctionDecl) error {
	c := &Callable{
		Kind:    CallableFunction,
		Name:    st.Name,
		Params:  st.Params,
		Body:    st.Body,
		Frame:   st.Frame,
		Closure: e.cur,
	}
	declFrame := e.frames.ParentOf(st.Frame)
	if !e.cur.Set(declFrame, st.Slot, value.FunctionRef{Name: st.Name, Callable: c}) {
		return e.errorf(st.Span, "cannot declare function %q here", st.Name)
	}
	return nil
}

func (e *Evaluator) evalInclude(st *ast.IncludeStatement) error {
	c, err := e.resolveMixin(st)
	if err != nil {
		return err
	}
	args, err := e.evalArgs(st.Args)
	if err != nil {
		return err
	}
	if err := e.stack.Push(env.CallFrame{Kind: env.CallMixin, Name: st.Name, Span: st.Span}); err != nil {
		return e.wrap(st.Span, err)
	}
	defer e.stack.Pop()

	var closure *contentClosure
	if st.Content != nil {
		closure = &contentClosure{block: st.Content, env: e.cur, flags: e.flags, prev: e.content}
	}

	inst := env.New(e.frames, c.Frame, c.Closure)
	if err := e.bindArguments(c, args, inst, st.Span); err != nil {
		return err
	}

	prevCur, prevContent, prevFlags := e.cur, e.content, e.flags
	e.cur, e.content = inst, closure
	e.flags.InMixin = true
	_, err = e.execStatements(c.Body)
	e.cur, e.content, e.flags = prevCur, prevContent, prevFlags
	return err
}

// resolveMixin looks the included name up: the parse-time resolved slot if
// one was found, a runtime lexical lookup otherwise.
func (e *Evaluator) resolveMixin(st *ast.IncludeStatement) (*Callable, error) {
	frame, slot := st.ResolvedFrame, st.ResolvedSlot
	if frame < 0 {
		f, s, found := e.frames.Lookup(e.cur.Frame, env.MixinKey(st.Name))
		if !found {
			return nil, e.errorf(st.Span, "Undefined mixin %q.", st.Name)
		}
		frame, slot = f, s
	}
	v, ok := e.cur.Get(frame, slot)
	if !ok {
		return nil, e.errorf(st.Span, "Undefined mixin %q.", st.Name)
	}
	ref, ok := v.(value.FunctionRef)
	if !ok {
		return nil, e.errorf(st.Span, "Undefined mixin %q.", st.Name)
	}
	c, ok := ref.Callable.(*Callable)
	if !ok || c.Kind != CallableMixin {
		return nil, e.errorf(st.Span, "Undefined mixin %q.", st.Name)
	}
	return c, nil
}

func (e *Evaluator) evalContent(st *ast.ContentStatement) error {
	if e.content == nil {
		if !e.flags.InMixin && !e.flags.InContentBlock {
			return e.errorf(st.Span, "@content is only allowed within mixin definitions.")
		}
		return nil
	}
	cl := e.content
	args, err := e.evalArgs(st.Args)
	if err != nil {
		return err
	}
	if err := e.stack.Push(env.CallFrame{Kind: env.CallContent, Name: "@content", Span: st.Span}); err != nil {
		return e.wrap(st.Span, err)
	}
	defer e.stack.Pop()

	inst := env.New(e.frames, cl.block.Frame, cl.env)
	blockCallable := &Callable{Kind: CallableMixin, Name: "@content", Params: cl.block.Params, Frame: cl.block.Frame}
	if err := e.bindArguments(blockCallable, args, inst, st.Span); err != nil {
		return err
	}

	prevCur, prevContent, prevFlags := e.cur, e.content, e.flags
	e.cur, e.content = inst, cl.prev
	e.flags = cl.flags
	e.flags.InContentBlock = true
	_, err = e.execStatements(cl.block.Body)
	e.cur, e.content, e.flags = prevCur, prevContent, prevFlags
	return err
}

func (e *Evaluator) evalExtend(st *ast.ExtendStatement) error {
	if e.styleRule == cssom.NoNode {
		return e.errorf(st.Span, "@extend may only be used within style rules.")
	}
	text, err := e.evalInterpolation(st.Target)
	if err != nil {
		return err
	}
	list, err := selector.Parse(strings.TrimSpace(text))
	if err != nil {
		return e.wrap(st.Target.Span, err)
	}
	extender := e.tree.Get(e.styleRule).Selector
	for _, cx := range list.Complex {
		if len(cx.Compounds) != 1 {
			return e.errorf(st.Span, "complex selectors may not be extended.")
		}
		cp := cx.Compounds[0]
		if len(cp.Simples) > 1 {
			e.log.Deprecation(
				fmt.Sprintf("extending the compound selector %q is deprecated and will fail; extend each simple selector instead", cp.String()),
				st.Span, e.stack.Trace(e.reg))
		}
		for _, s := range cp.Simples {
			key := s.Raw
			if key == "" {
				key = s.String()
			}
			e.exts.Register(key, extender, st.Optional, e.mediaContext())
		}
	}
	return nil
}

// displayText is how @warn/@error render a value: strings print their text
// without quotes, everything else its inspect form.
func displayText(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Text
	}
	return v.Inspect()
}
