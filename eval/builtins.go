package eval

import (
	"fmt"

	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// builtinFunc is one native implementation: it receives the bound argument
// values aligned with its declared parameters (a rest parameter arrives as
// a trailing ArgumentList).
type builtinFunc func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error)

// bparam is one formal of a builtin signature; def is the default value or
// nil for required.
type bparam struct {
	name string
	def  value.Value
	rest bool
}

// overload pairs a parameter shape with its implementation; dispatch picks
// the first overload whose binding succeeds.
type overload struct {
	params []bparam
	fn     builtinFunc
}

var builtins = map[string][]overload{}

func register(name string, params []bparam, fn builtinFunc) {
	builtins[name] = append(builtins[name], overload{params: params, fn: fn})
}

func req(name string) bparam                { return bparam{name: name} }
func opt(name string, d value.Value) bparam { return bparam{name: name, def: d} }
func rest(name string) bparam               { return bparam{name: name, rest: true} }

// invokeBuiltin binds args against each overload in registration order and
// runs the first that fits; when none fit, the first overload's binding
// error surfaces.
func (e *Evaluator) invokeBuiltin(name string, overloads []overload, args *evaledArgs, sp source.Span) (value.Value, error) {
	var firstErr error
	for _, o := range overloads {
		bound, err := bindBuiltin(o.params, args)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		v, err := o.fn(e, bound, sp)
		if err != nil {
			return nil, e.wrap(sp, fmt.Errorf("%s: %w", name, err))
		}
		return v, nil
	}
	return nil, e.wrap(sp, fmt.Errorf("%s: %v", name, firstErr))
}

func bindBuiltin(params []bparam, args *evaledArgs) ([]value.Value, error) {
	out := make([]value.Value, len(params))
	used := make(map[string]bool, len(args.named))
	for i, p := range params {
		if p.rest {
			al := value.ArgumentList{
				List:     value.List{Sep: value.SepComma},
				Keywords: make(map[string]value.Value),
			}
			if len(args.positional) > i {
				al.Items = append(al.Items, args.positional[i:]...)
			}
			for _, k := range args.namedOrder {
				if used[k] {
					continue
				}
				al.Keywords[k] = args.named[k]
				al.KeywordOrder = append(al.KeywordOrder, k)
				used[k] = true
			}
			out[i] = al
			return out, nil
		}
		switch {
		case i < len(args.positional):
			if _, dup := args.named[p.name]; dup {
				return nil, fmt.Errorf("argument $%s was passed both by position and by name", p.name)
			}
			out[i] = args.positional[i]
		case args.named[p.name] != nil:
			out[i] = args.named[p.name]
			used[p.name] = true
		case p.def != nil:
			out[i] = p.def
		default:
			return nil, fmt.Errorf("missing argument $%s", p.name)
		}
	}
	if len(args.positional) > len(params) {
		return nil, fmt.Errorf("wrong number of arguments (%d for %d)", len(args.positional), len(params))
	}
	for _, k := range args.namedOrder {
		if !used[k] && !bparamNamed(params, k) {
			return nil, fmt.Errorf("no argument named $%s", k)
		}
	}
	return out, nil
}

func bparamNamed(params []bparam, name string) bool {
	for _, p := range params {
		if p.name == name {
			return true
		}
	}
	return false
}

// Argument coercion helpers shared by the builtin implementations.

func wantNumber(v value.Value, arg string) (value.Number, error) {
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, fmt.Errorf("$%s: %s is not a number", arg, v.Inspect())
	}
	return n, nil
}

func wantColor(v value.Value, arg string) (value.Color, error) {
	c, ok := v.(value.Color)
	if !ok {
		return value.Color{}, fmt.Errorf("$%s: %s is not a color", arg, v.Inspect())
	}
	return c, nil
}

func wantString(v value.Value, arg string) (value.String, error) {
	s, ok := v.(value.String)
	if !ok {
		return value.String{}, fmt.Errorf("$%s: %s is not a string", arg, v.Inspect())
	}
	return s, nil
}

func wantMap(v value.Value, arg string) (value.Map, error) {
	switch m := v.(type) {
	case value.Map:
		return m, nil
	case value.List:
		if len(m.Items) == 0 {
			empty, _ := value.NewMap(nil, nil)
			return empty, nil
		}
	}
	return value.Map{}, fmt.Errorf("$%s: %s is not a map", arg, v.Inspect())
}

// asList treats any value as a list the way Sass list functions do: lists
// pass through, an argument list contributes its positional part, anything
// else is a single-element list.
func asList(v value.Value) value.List {
	switch l := v.(type) {
	case value.List:
		return l
	case value.ArgumentList:
		return l.List
	case value.Map:
		return l.AsList()
	default:
		return value.List{Items: []value.Value{v}}
	}
}

// wantInt requires a unitless whole number.
func wantInt(v value.Value, arg string) (int, error) {
	n, err := wantNumber(v, arg)
	if err != nil {
		return 0, err
	}
	i := int(n.Val)
	if float64(i) != n.Val {
		return 0, fmt.Errorf("$%s: %s is not an integer", arg, n.Inspect())
	}
	return i, nil
}

// percentOrRatio reads an amount that may be written `50%` or `0.5`,
// returning it scaled to 0..bound.
func percentOrRatio(n value.Number, bound float64) float64 {
	for _, u := range n.Numerators {
		if u == "%" {
			return n.Val * bound / 100
		}
	}
	if n.Unitless() && n.Val <= 1 {
		return n.Val * bound
	}
	return n.Val
}
