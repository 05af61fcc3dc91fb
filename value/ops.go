package value

import "fmt"

// Equal implements the deep structural equality the spec's equality table
// defines: quoted/unquoted strings with the same text are equal; 1 == 1px
// is false; 1 == 1.0 is true; maps compare key-sets; lists compare
// elementwise including separator and bracket flags.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Equal(bv)
	case Color:
		bv, ok := b.(Color)
		return ok && av.Equal(bv)
	case String:
		bv, ok := b.(String)
		return ok && av.Equal(bv)
	case List:
		return listEqual(av, b)
	case ArgumentList:
		return listEqual(av.List, b)
	case Map:
		bv, ok := b.(Map)
		return ok && av.Equal(bv)
	case FunctionRef:
		bv, ok := b.(FunctionRef)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

func listEqual(a List, b Value) bool {
	var bl List
	switch bv := b.(type) {
	case List:
		bl = bv
	case ArgumentList:
		bl = bv.List
	default:
		return false
	}
	if len(a.Items) != len(bl.Items) || a.Bracketed != bl.Bracketed {
		return false
	}
	if len(a.Items) > 1 && a.Sep != bl.Sep {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], bl.Items[i]) {
			return false
		}
	}
	return true
}

// Add implements the `+` operator's type dispatch.
func Add(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			r, err := an.Add(bn)
			return r, err
		}
	}
	if ac, ok := a.(Color); ok {
		if bc, ok := b.(Color); ok {
			r, err := ac.Add(bc)
			return r, err
		}
		if bn, ok := b.(Number); ok {
			return ac.AddNumber(bn.Val), nil
		}
	}
	// anything + string concatenates, coercing to string form.
	if _, ok := a.(String); ok {
		return concatString(a, b), nil
	}
	if _, ok := b.(String); ok {
		return concatString(a, b), nil
	}
	return nil, fmt.Errorf("undefined operation %q + %q", a.Inspect(), b.Inspect())
}

func concatString(a, b Value) Value {
	as, aQuoted := stringForm(a)
	bs, _ := stringForm(b)
	quoted := aQuoted
	return String{Text: as + bs, Quoted: quoted}
}

func stringForm(v Value) (string, bool) {
	if s, ok := v.(String); ok {
		return s.Text, s.Quoted
	}
	return v.Inspect(), false
}

// Sub implements the `-` operator.
func Sub(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return an.Sub(bn)
		}
	}
	if ac, ok := a.(Color); ok {
		if bc, ok := b.(Color); ok {
			return ac.Sub(bc)
		}
		if bn, ok := b.(Number); ok {
			return ac.AddNumber(-bn.Val), nil
		}
	}
	return String{Text: a.Inspect() + "-" + b.Inspect()}, nil
}

// Mul implements the `*` operator.
func Mul(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return an.Mul(bn), nil
		}
		if bc, ok := b.(Color); ok {
			return bc.MulNumber(an.Val), nil
		}
	}
	if ac, ok := a.(Color); ok {
		if bn, ok := b.(Number); ok {
			return ac.MulNumber(bn.Val), nil
		}
		if bc, ok := b.(Color); ok {
			return ac.Mul(bc)
		}
	}
	return nil, fmt.Errorf("undefined operation %q * %q", a.Inspect(), b.Inspect())
}

// Div implements the `/` operator (division proper; the parser's
// slash-form preservation is handled above this layer in the evaluator).
func Div(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			return an.Div(bn)
		}
	}
	return String{Text: a.Inspect() + "/" + b.Inspect()}, nil
}

// Mod implements the `%` operator.
func Mod(a, b Value) (Value, error) {
	an, ok := a.(Number)
	if !ok {
		return nil, fmt.Errorf("%%: left operand must be a number, got %s", TypeName(a))
	}
	bn, ok := b.(Number)
	if !ok {
		return nil, fmt.Errorf("%%: right operand must be a number, got %s", TypeName(b))
	}
	return an.Mod(bn)
}

// Compare implements `<`, `<=`, `>`, `>=`, defined only on comparable
// numbers.
func Compare(a, b Value, op string) (Value, error) {
	an, ok := a.(Number)
	if !ok {
		return nil, fmt.Errorf("%s: left operand must be a number, got %s", op, TypeName(a))
	}
	bn, ok := b.(Number)
	if !ok {
		return nil, fmt.Errorf("%s: right operand must be a number, got %s", op, TypeName(b))
	}
	c, err := an.Compare(bn)
	if err != nil {
		return nil, err
	}
	switch op {
	case "<":
		return FromBool(c < 0), nil
	case "<=":
		return FromBool(c <= 0), nil
	case ">":
		return FromBool(c > 0), nil
	case ">=":
		return FromBool(c >= 0), nil
	}
	return nil, fmt.Errorf("unknown comparison operator %q", op)
}

// Neg implements unary `-`.
func Neg(a Value) (Value, error) {
	if n, ok := a.(Number); ok {
		return n.Neg(), nil
	}
	return String{Text: "-" + a.Inspect()}, nil
}

// Not implements unary truth negation.
func Not(a Value) Value { return FromBool(!a.Truthy()) }
