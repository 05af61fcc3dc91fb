package eval

import (
	"fmt"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("type-of", []bparam{req("value")}, fnTypeOf)
	register("inspect", []bparam{req("value")}, fnInspect)
	register("variable-exists", []bparam{req("name")}, fnVariableExists)
	register("global-variable-exists", []bparam{req("name")}, fnGlobalVariableExists)
	register("function-exists", []bparam{req("name")}, fnFunctionExists)
	register("mixin-exists", []bparam{req("name")}, fnMixinExists)
	register("feature-exists", []bparam{req("feature")}, fnFeatureExists)
	register("get-function", []bparam{req("name"), opt("css", value.False)}, fnGetFunction)
	register("call", []bparam{req("function"), rest("args")}, fnCall)
}

func fnTypeOf(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	return value.NewUnquoted(value.TypeName(args[0])), nil
}

func fnInspect(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	return value.NewUnquoted(args[0].Inspect()), nil
}

func nameArg(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("$name: %s is not a string", v.Inspect())
	}
	return s.Text, nil
}

func fnVariableExists(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	if f, s, found := e.frames.Lookup(e.cur.Frame, name); found {
		if _, ok := e.cur.Get(f, s); ok {
			return value.True, nil
		}
	}
	return value.False, nil
}

func fnGlobalVariableExists(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	if f, s, found := e.frames.Lookup(env.Root, name); found {
		if _, ok := e.root.Get(f, s); ok {
			return value.True, nil
		}
	}
	return value.False, nil
}

func fnFunctionExists(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	if _, ok := e.lookupUserFunction(&ast.FuncCall{ResolvedFrame: -1}, name); ok {
		return value.True, nil
	}
	if _, ok := e.custom[name]; ok {
		return value.True, nil
	}
	_, ok := builtins[name]
	return value.FromBool(ok), nil
}

func fnMixinExists(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	if f, s, found := e.frames.Lookup(e.cur.Frame, env.MixinKey(name)); found {
		if _, ok := e.cur.Get(f, s); ok {
			return value.True, nil
		}
	}
	return value.False, nil
}

// supportedFeatures answers feature-exists() for the language features this
// implementation carries.
var supportedFeatures = map[string]bool{
	"global-variable-shadowing":   true,
	"at-error":                    true,
	"units-level-3":               true,
	"extend-selector-pseudoclass": false,
	"custom-property":             false,
}

func fnFeatureExists(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	return value.FromBool(supportedFeatures[name]), nil
}

func fnGetFunction(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	name, err := nameArg(args[0])
	if err != nil {
		return nil, err
	}
	if !args[1].Truthy() {
		if c, ok := e.lookupUserFunction(&ast.FuncCall{ResolvedFrame: -1}, name); ok {
			return value.FunctionRef{Name: name, Callable: c}, nil
		}
		if c, ok := e.custom[name]; ok {
			return value.FunctionRef{Name: name, Callable: c}, nil
		}
		if _, ok := builtins[name]; ok {
			return value.FunctionRef{Name: name}, nil
		}
		return nil, fmt.Errorf("function %q does not exist", name)
	}
	// $css: true wraps the name as a plain CSS function reference.
	return value.FunctionRef{Name: name}, nil
}

func fnCall(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	rest, _ := args[1].(value.ArgumentList)
	callArgs := &evaledArgs{named: rest.Keywords, namedOrder: rest.KeywordOrder, positional: rest.Items}
	if callArgs.named == nil {
		callArgs.named = map[string]value.Value{}
	}

	switch fv := args[0].(type) {
	case value.FunctionRef:
		if c, ok := fv.Callable.(*Callable); ok {
			switch c.Kind {
			case CallableFunction:
				return e.invokeFunction(c, callArgs, sp)
			case CallableExternal:
				return e.invokeExternal(c, callArgs, sp)
			}
		}
		if overloads, ok := builtins[fv.Name]; ok {
			return e.invokeBuiltin(fv.Name, overloads, callArgs, sp)
		}
		return nil, fmt.Errorf("function %q does not exist", fv.Name)
	case value.String:
		e.log.Deprecation(
			"passing a string to call() is deprecated and will be illegal; use call(get-function("+fv.Inspect()+"), ...) instead",
			sp, e.stack.Trace(e.reg))
		if c, ok := e.lookupUserFunction(&ast.FuncCall{ResolvedFrame: -1}, fv.Text); ok {
			return e.invokeFunction(c, callArgs, sp)
		}
		if c, ok := e.custom[fv.Text]; ok {
			return e.invokeExternal(c, callArgs, sp)
		}
		if overloads, ok := builtins[fv.Text]; ok {
			return e.invokeBuiltin(fv.Text, overloads, callArgs, sp)
		}
		return nil, fmt.Errorf("function %q does not exist", fv.Text)
	default:
		return nil, fmt.Errorf("$function: %s is not a function reference", args[0].Inspect())
	}
}
