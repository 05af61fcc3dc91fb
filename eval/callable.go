package eval

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/parser"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// CallableKind tags the three dispatch surfaces callables share.
type CallableKind int

const (
	CallableMixin CallableKind = iota
	CallableFunction
	CallableExternal
)

// Callable is anything invocable through `@include` or a function call:
// user-defined mixins/functions captured with their home environment, and
// externally registered functions with a parsed signature.
type Callable struct {
	Kind    CallableKind
	Name    string
	Params  []ast.Param
	Body    []ast.Statement
	Frame   int // the frame instantiated per call (params + locals)
	Closure *env.Instantiation

	// Kind == CallableExternal
	External func(args []value.Value) (value.Value, error)
}

// ParseCustom parses a custom function's signature string into a Callable.
func ParseCustom(reg *source.Registry, frames *env.Table, c Custom) (*Callable, error) {
	name, params, frame, err := parser.ParseSignature(reg, frames, c.Signature)
	if err != nil {
		return nil, err
	}
	return &Callable{
		Kind:     CallableExternal,
		Name:     name,
		Params:   params,
		Frame:    frame,
		External: c.Fn,
	}, nil
}

// evaledArgs is the ArgumentResults of one call site: positional and named
// argument values after evaluation and rest-splicing.
type evaledArgs struct {
	positional []value.Value
	named      map[string]value.Value
	namedOrder []string
}

// evalArgs evaluates a call's argument expressions and expands its `...`
// rest argument: a list splices into positional, an argument list also
// splices its keyword tail, a map contributes keywords by string key.
func (e *Evaluator) evalArgs(call *ast.FuncCall) (*evaledArgs, error) {
	args := &evaledArgs{named: make(map[string]value.Value)}
	if call == nil {
		return args, nil
	}
	for _, p := range call.Positional {
		v, err := e.evalExpr(p)
		if err != nil {
			return nil, err
		}
		args.positional = append(args.positional, v)
	}
	for _, name := range call.KeywordOrder {
		v, err := e.evalExpr(call.Keyword[name])
		if err != nil {
			return nil, err
		}
		args.named[name] = v
		args.namedOrder = append(args.namedOrder, name)
	}
	if call.Rest != nil {
		rest, err := e.evalExpr(call.Rest)
		if err != nil {
			return nil, err
		}
		switch rv := rest.(type) {
		case value.ArgumentList:
			args.positional = append(args.positional, rv.Items...)
			for _, k := range rv.KeywordOrder {
				if _, dup := args.named[k]; !dup {
					args.named[k] = rv.Keywords[k]
					args.namedOrder = append(args.namedOrder, k)
				}
			}
		case value.List:
			args.positional = append(args.positional, rv.Items...)
		case value.Map:
			for i, k := range rv.Keys() {
				ks, ok := k.(value.String)
				if !ok {
					return nil, e.errorf(call.Rest.SourceSpan(), "Variable keyword argument map must have string keys, got %s.", k.Inspect())
				}
				args.named[ks.Text] = rv.Values()[i]
				args.namedOrder = append(args.namedOrder, ks.Text)
			}
		default:
			args.positional = append(args.positional, rest)
		}
	}
	return args, nil
}

// bindArguments verifies arity and binds each formal into its slot in inst,
// implementing the binding contract: positional first, then named, then
// defaults evaluated in the callee's own scope, then the rest-formal
// wrapping any leftovers.
func (e *Evaluator) bindArguments(c *Callable, args *evaledArgs, inst *env.Instantiation, sp source.Span) error {
	used := make(map[string]bool, len(args.named))
	var restParam *ast.Param
	for i := range c.Params {
		p := &c.Params[i]
		if p.Rest {
			restParam = p
			break
		}
		var v value.Value
		switch {
		case i < len(args.positional):
			if _, dup := args.named[p.Name]; dup {
				return e.errorf(sp, "Argument $%s was passed both by position and by name.", p.Name)
			}
			v = args.positional[i]
		case args.named[p.Name] != nil:
			v = args.named[p.Name]
			used[p.Name] = true
		case p.Default != nil:
			prev := e.cur
			e.cur = inst
			dv, err := e.evalExpr(p.Default)
			e.cur = prev
			if err != nil {
				return err
			}
			v = dv
		default:
			return e.errorf(sp, "Missing argument $%s.", p.Name)
		}
		inst.Set(p.Frame, p.Slot, v)
	}

	nonRest := len(c.Params)
	if restParam != nil {
		nonRest = len(c.Params) - 1
		var leftovers []value.Value
		if len(args.positional) > nonRest {
			leftovers = args.positional[nonRest:]
		}
		rest := value.ArgumentList{
			List:     value.List{Items: leftovers, Sep: value.SepComma},
			Keywords: make(map[string]value.Value),
		}
		for _, k := range args.namedOrder {
			if used[k] {
				continue
			}
			if _, dup := rest.Keywords[k]; dup {
				continue
			}
			rest.Keywords[k] = args.named[k]
			rest.KeywordOrder = append(rest.KeywordOrder, k)
			used[k] = true
		}
		inst.Set(restParam.Frame, restParam.Slot, rest)
	} else if len(args.positional) > nonRest {
		return e.errorf(sp, "wrong number of arguments (%d for %d) for %q", len(args.positional), nonRest, c.Name)
	}

	for _, k := range args.namedOrder {
		if !used[k] && !paramNamed(c.Params, k) {
			return e.errorf(sp, "No argument named $%s.", k)
		}
	}
	return nil
}

func paramNamed(params []ast.Param, name string) bool {
	for i := range params {
		if params[i].Name == name {
			return true
		}
	}
	return false
}

// callFunction dispatches a function-call expression through the shared
// callable surface: user-defined functions first, then externally
// registered ones, then builtins, and finally the plain-CSS fallback that
// renders unknown functions verbatim.
func (e *Evaluator) callFunction(call *ast.FuncCall) (value.Value, error) {
	if !call.Name.Plain() {
		text, err := e.evalInterpolation(call.Name)
		if err != nil {
			return nil, err
		}
		return e.plainCSSCall(call, text)
	}
	name := call.Name.Text()

	if c, ok := e.lookupUserFunction(call, name); ok {
		args, err := e.evalArgs(call)
		if err != nil {
			return nil, err
		}
		return e.invokeFunction(c, args, call.Span)
	}
	if c, ok := e.custom[name]; ok {
		args, err := e.evalArgs(call)
		if err != nil {
			return nil, err
		}
		return e.invokeExternal(c, args, call.Span)
	}
	if overloads, ok := builtins[name]; ok {
		args, err := e.evalArgs(call)
		if err != nil {
			return nil, err
		}
		return e.invokeBuiltin(name, overloads, args, call.Span)
	}
	return e.plainCSSCall(call, name)
}

func (e *Evaluator) lookupUserFunction(call *ast.FuncCall, name string) (*Callable, bool) {
	frame, slot := call.ResolvedFrame, call.ResolvedSlot
	if frame < 0 {
		f, s, found := e.frames.Lookup(e.cur.Frame, env.FnKey(name))
		if !found {
			return nil, false
		}
		frame, slot = f, s
	}
	v, ok := e.cur.Get(frame, slot)
	if !ok {
		return nil, false
	}
	ref, ok := v.(value.FunctionRef)
	if !ok {
		return nil, false
	}
	c, ok := ref.Callable.(*Callable)
	if !ok || c.Kind != CallableFunction {
		return nil, false
	}
	return c, true
}

// invokeFunction runs a user-defined function body; a body that falls off
// the end without `@return` is an error.
func (e *Evaluator) invokeFunction(c *Callable, args *evaledArgs, sp source.Span) (value.Value, error) {
	if err := e.stack.Push(env.CallFrame{Kind: env.CallFunction, Name: c.Name, Span: sp}); err != nil {
		return nil, e.wrap(sp, err)
	}
	defer e.stack.Pop()

	inst := env.New(e.frames, c.Frame, c.Closure)
	if err := e.bindArguments(c, args, inst, sp); err != nil {
		return nil, err
	}

	prevCur, prevFlags := e.cur, e.flags
	e.cur = inst
	e.flags.InFunction = true
	ret, err := e.execStatements(c.Body)
	e.cur, e.flags = prevCur, prevFlags
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, e.errorf(sp, "Function %q finished without @return.", c.Name)
	}
	return ret, nil
}

// invokeExternal binds arguments against the parsed signature, then hands
// the bound values to the callback in declaration order.
func (e *Evaluator) invokeExternal(c *Callable, args *evaledArgs, sp source.Span) (value.Value, error) {
	if err := e.stack.Push(env.CallFrame{Kind: env.CallFunction, Name: c.Name, Span: sp}); err != nil {
		return nil, e.wrap(sp, err)
	}
	defer e.stack.Pop()

	inst := env.New(e.frames, c.Frame, c.Closure)
	if err := e.bindArguments(c, args, inst, sp); err != nil {
		return nil, err
	}
	bound := make([]value.Value, len(c.Params))
	for i := range c.Params {
		v, ok := inst.Get(c.Params[i].Frame, c.Params[i].Slot)
		if !ok {
			v = value.TheNull
		}
		bound[i] = v
	}
	result, err := c.External(bound)
	if err != nil {
		return nil, e.wrap(sp, err)
	}
	if result == nil {
		result = value.TheNull
	}
	return result, nil
}

// plainCSSCall renders an unknown function verbatim with its evaluated
// arguments, the way `var(--x)` or vendor-prefixed functions pass through.
func (e *Evaluator) plainCSSCall(call *ast.FuncCall, name string) (value.Value, error) {
	if len(call.KeywordOrder) > 0 {
		return nil, e.errorf(call.Span, "Plain CSS functions don't support keyword arguments.")
	}
	parts := make([]string, 0, len(call.Positional))
	for _, p := range call.Positional {
		v, err := e.evalExpr(p)
		if err != nil {
			return nil, err
		}
		s, err := CSSText(v)
		if err != nil {
			return nil, e.wrap(call.Span, err)
		}
		parts = append(parts, s)
	}
	return value.NewUnquoted(name + "(" + strings.Join(parts, ", ") + ")"), nil
}
