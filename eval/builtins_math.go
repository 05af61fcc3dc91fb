package eval

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("percentage", []bparam{req("number")}, fnPercentage)
	register("round", []bparam{req("number")}, roundFn(math.Round))
	register("ceil", []bparam{req("number")}, roundFn(math.Ceil))
	register("floor", []bparam{req("number")}, roundFn(math.Floor))
	register("abs", []bparam{req("number")}, roundFn(math.Abs))
	register("min", []bparam{rest("numbers")}, extremeFn(-1))
	register("max", []bparam{rest("numbers")}, extremeFn(1))
	register("random", []bparam{opt("limit", value.TheNull)}, fnRandom)
	register("unit", []bparam{req("number")}, fnUnit)
	register("unitless", []bparam{req("number")}, fnUnitless)
	register("comparable", []bparam{req("number1"), req("number2")}, fnComparable)
}

func fnPercentage(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	n, err := wantNumber(args[0], "number")
	if err != nil {
		return nil, err
	}
	if !n.Unitless() {
		return nil, fmt.Errorf("$number: expected %s to have no units", n.Inspect())
	}
	return value.NewNumber(n.Val*100, "%"), nil
}

func roundFn(f func(float64) float64) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		n, err := wantNumber(args[0], "number")
		if err != nil {
			return nil, err
		}
		return value.Number{Val: f(n.Val), Numerators: n.Numerators, Denominators: n.Denominators}, nil
	}
}

func extremeFn(sign int) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		items := asList(args[0]).Items
		if len(items) == 0 {
			return nil, fmt.Errorf("at least one argument must be passed")
		}
		best, err := wantNumber(items[0], "numbers")
		if err != nil {
			return nil, err
		}
		for _, it := range items[1:] {
			n, err := wantNumber(it, "numbers")
			if err != nil {
				return nil, err
			}
			cmp, err := n.Compare(best)
			if err != nil {
				return nil, err
			}
			if cmp*sign > 0 {
				best = n
			}
		}
		return best, nil
	}
}

func fnRandom(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if args[0].Kind() == value.KindNull {
		return value.NewUnitless(rand.Float64()), nil
	}
	limit, err := wantInt(args[0], "limit")
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, fmt.Errorf("$limit: must be greater than 0")
	}
	return value.NewUnitless(float64(rand.Intn(limit) + 1)), nil
}

func fnUnit(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	n, err := wantNumber(args[0], "number")
	if err != nil {
		return nil, err
	}
	return value.NewQuoted(n.UnitString()), nil
}

func fnUnitless(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	n, err := wantNumber(args[0], "number")
	if err != nil {
		return nil, err
	}
	return value.FromBool(n.Unitless()), nil
}

func fnComparable(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	a, err := wantNumber(args[0], "number1")
	if err != nil {
		return nil, err
	}
	b, err := wantNumber(args[1], "number2")
	if err != nil {
		return nil, err
	}
	return value.FromBool(a.Comparable(b)), nil
}
