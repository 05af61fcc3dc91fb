package eval

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/value"
)

func (e *Evaluator) evalExpr(expr ast.Expression) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.NumberLit:
		return value.NewNumber(ex.Val, ex.Unit), nil
	case *ast.ColorLit:
		return ex.Color, nil
	case *ast.StringLit:
		if ex.Quoted {
			return value.NewQuoted(ex.Text), nil
		}
		if c, ok := value.LookupNamedColor(ex.Text); ok {
			return c, nil
		}
		return value.NewUnquoted(ex.Text), nil
	case *ast.BoolLit:
		return value.FromBool(ex.Val), nil
	case *ast.NullLit:
		return value.TheNull, nil
	case *ast.ListLit:
		return e.evalList(ex)
	case *ast.MapLit:
		return e.evalMap(ex)
	case *ast.VarRef:
		return e.evalVarRef(ex)
	case *ast.BinaryOp:
		return e.evalBinary(ex)
	case *ast.UnaryOp:
		return e.evalUnary(ex)
	case *ast.Paren:
		v, err := e.evalExpr(ex.Inner)
		if err != nil {
			return nil, err
		}
		// Parentheses are an arithmetic context: a possibly-slash number
		// loses its literal form and stays divided.
		if n, ok := v.(value.Number); ok && n.SlashPossible {
			n.SlashPossible, n.SlashLeft, n.SlashRight = false, nil, nil
			return n, nil
		}
		return v, nil
	case *ast.FuncCall:
		return e.callFunction(ex)
	case *ast.IfExpr:
		cond, err := e.evalExpr(ex.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return e.evalExpr(ex.Then)
		}
		return e.evalExpr(ex.Else)
	case *ast.InterpolatedIdent:
		text, err := e.evalInterpolation(ex.Parts)
		if err != nil {
			return nil, err
		}
		return value.NewUnquoted(text), nil
	case *ast.InterpolatedString:
		text, err := e.evalInterpolation(ex.Parts)
		if err != nil {
			return nil, err
		}
		if ex.Quoted {
			return value.NewQuoted(text), nil
		}
		return value.NewUnquoted(text), nil
	case *ast.ParentRef:
		return e.parentSelectorValue(), nil
	case *ast.ArgListExpr:
		return e.evalExpr(ex.Value)
	default:
		return nil, e.errorf(expr.SourceSpan(), "unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalList(ex *ast.ListLit) (value.Value, error) {
	items := make([]value.Value, 0, len(ex.Items))
	for _, it := range ex.Items {
		v, err := e.evalExpr(it)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	sep := value.SepSpace
	if ex.Comma {
		sep = value.SepComma
	}
	l := value.NewList(items, sep)
	l.Bracketed = ex.Bracketed
	return l, nil
}

func (e *Evaluator) evalMap(ex *ast.MapLit) (value.Value, error) {
	keys := make([]value.Value, 0, len(ex.Keys))
	vals := make([]value.Value, 0, len(ex.Values))
	for i := range ex.Keys {
		k, err := e.evalExpr(ex.Keys[i])
		if err != nil {
			return nil, err
		}
		v, err := e.evalExpr(ex.Values[i])
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	m, err := value.NewMap(keys, vals)
	if err != nil {
		return nil, e.wrap(ex.Span, err)
	}
	return m, nil
}

func (e *Evaluator) evalVarRef(ex *ast.VarRef) (value.Value, error) {
	if ex.Slot >= 0 {
		if v, ok := e.cur.Get(ex.Frame, ex.Slot); ok {
			return v, nil
		}
	}
	// Lexical fallback: the parser could not prove locality (use before
	// declaration, or a cross-file reference through @import).
	if f, s, found := e.frames.Lookup(e.cur.Frame, ex.Name); found {
		if v, ok := e.cur.Get(f, s); ok {
			return v, nil
		}
	}
	if f, s, found := e.frames.Lookup(0, ex.Name); found {
		if v, ok := e.root.Get(f, s); ok {
			return v, nil
		}
	}
	return nil, e.errorf(ex.Span, "Undefined variable: $%s.", ex.Name)
}

func (e *Evaluator) evalBinary(ex *ast.BinaryOp) (value.Value, error) {
	switch ex.Op {
	case "and":
		l, err := e.evalExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		if !l.Truthy() {
			return l, nil
		}
		return e.evalExpr(ex.Right)
	case "or":
		l, err := e.evalExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		if l.Truthy() {
			return l, nil
		}
		return e.evalExpr(ex.Right)
	}

	l, err := e.evalExpr(ex.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Op {
	case "==":
		return value.FromBool(value.Equal(l, r)), nil
	case "!=":
		return value.FromBool(!value.Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		v, err := value.Compare(l, r, ex.Op)
		return v, e.wrap(ex.Span, err)
	case "+":
		v, err := value.Add(l, r)
		return v, e.wrap(ex.Span, err)
	case "-":
		v, err := value.Sub(l, r)
		return v, e.wrap(ex.Span, err)
	case "*":
		v, err := value.Mul(l, r)
		return v, e.wrap(ex.Span, err)
	case "%":
		v, err := value.Mod(l, r)
		return v, e.wrap(ex.Span, err)
	case "/":
		return e.evalDivision(ex, l, r)
	case "=":
		// MS-legacy filter syntax: renders textually.
		return value.NewUnquoted(interpText(l) + "=" + interpText(r)), nil
	default:
		return nil, e.errorf(ex.Span, "unknown operator %q", ex.Op)
	}
}

// evalDivision performs `/`, keeping the literal slash form alive when both
// operands were literal numbers: the quotient is computed eagerly (so a
// zero divisor always raises) but the operands ride along for the emitter
// to print as `a/b` unless an arithmetic context strips them.
func (e *Evaluator) evalDivision(ex *ast.BinaryOp, l, r value.Value) (value.Value, error) {
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if lok && rok {
		q, err := ln.Div(rn)
		if err != nil {
			return nil, e.wrap(ex.Span, err)
		}
		if ex.PossiblySlash {
			q.SlashPossible = true
			q.SlashLeft, q.SlashRight = &ln, &rn
		}
		return q, nil
	}
	v, err := value.Div(l, r)
	return v, e.wrap(ex.Span, err)
}

func (e *Evaluator) evalUnary(ex *ast.UnaryOp) (value.Value, error) {
	v, err := e.evalExpr(ex.Operand)
	if err != nil {
		return nil, err
	}
	switch ex.Op {
	case "not":
		return value.Not(v), nil
	case "-":
		r, err := value.Neg(v)
		return r, e.wrap(ex.Span, err)
	case "+":
		if n, ok := v.(value.Number); ok {
			return n, nil
		}
		return value.NewUnquoted("+" + interpText(v)), nil
	case "/":
		return value.NewUnquoted("/" + interpText(v)), nil
	default:
		return nil, e.errorf(ex.Span, "unknown unary operator %q", ex.Op)
	}
}

// evalInterpolation resolves an interpolation to flat text: literal runs
// pass through, each `#{...}` hole renders with interpolation semantics
// (quoted strings lose their quotes).
func (e *Evaluator) evalInterpolation(i *ast.Interpolation) (string, error) {
	if i == nil {
		return "", nil
	}
	if i.Plain() {
		return i.Text(), nil
	}
	var b strings.Builder
	for idx, frag := range i.Fragments {
		b.WriteString(frag)
		if idx < len(i.Holes) {
			v, err := e.evalExpr(i.Holes[idx])
			if err != nil {
				return "", err
			}
			b.WriteString(interpText(v))
		}
	}
	return b.String(), nil
}

// parentSelectorValue renders `&` as a value: a comma list of space lists,
// or null at top level.
func (e *Evaluator) parentSelectorValue() value.Value {
	cur := e.currentSelector()
	if cur == nil {
		return value.TheNull
	}
	items := make([]value.Value, 0, len(cur.Complex))
	for _, cx := range cur.Complex {
		var parts []value.Value
		for i, cp := range cx.Compounds {
			if i > 0 && cx.Combinators[i-1] != 0 {
				parts = append(parts, value.NewUnquoted(string(byte(cx.Combinators[i-1]))))
			}
			parts = append(parts, value.NewUnquoted(cp.String()))
		}
		items = append(items, value.NewList(parts, value.SepSpace))
	}
	return value.NewList(items, value.SepComma)
}
