package eval

import (
	"fmt"

	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("length", []bparam{req("list")}, fnLength)
	register("nth", []bparam{req("list"), req("n")}, fnNth)
	register("set-nth", []bparam{req("list"), req("n"), req("value")}, fnSetNth)
	register("join", []bparam{req("list1"), req("list2"), opt("separator", value.NewUnquoted("auto"))}, fnJoin)
	register("append", []bparam{req("list"), req("val"), opt("separator", value.NewUnquoted("auto"))}, fnAppend)
	register("zip", []bparam{rest("lists")}, fnZip)
	register("index", []bparam{req("list"), req("value")}, fnIndex)
	register("list-separator", []bparam{req("list")}, fnListSeparator)
	register("is-bracketed", []bparam{req("list")}, fnIsBracketed)
}

func fnLength(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if m, ok := args[0].(value.Map); ok {
		return value.NewUnitless(float64(m.Len())), nil
	}
	return value.NewUnitless(float64(len(asList(args[0]).Items))), nil
}

// listIndex converts a 1-based (possibly negative-from-end) index.
func listIndex(n int, length int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("list index may not be 0")
	}
	if n < 0 {
		n = length + n + 1
	}
	if n < 1 || n > length {
		return 0, fmt.Errorf("invalid index %d for a list with %d elements", n, length)
	}
	return n - 1, nil
}

func fnNth(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	l := asList(args[0])
	n, err := wantInt(args[1], "n")
	if err != nil {
		return nil, err
	}
	i, err := listIndex(n, len(l.Items))
	if err != nil {
		return nil, err
	}
	return l.Items[i], nil
}

func fnSetNth(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	l := asList(args[0])
	n, err := wantInt(args[1], "n")
	if err != nil {
		return nil, err
	}
	i, err := listIndex(n, len(l.Items))
	if err != nil {
		return nil, err
	}
	items := append([]value.Value{}, l.Items...)
	items[i] = args[2]
	return value.List{Items: items, Sep: l.Sep, Bracketed: l.Bracketed}, nil
}

func separatorArg(v value.Value, fallback value.Separator) (value.Separator, error) {
	s, ok := v.(value.String)
	if !ok {
		return 0, fmt.Errorf("$separator: %s is not a string", v.Inspect())
	}
	switch s.Text {
	case "auto":
		return fallback, nil
	case "comma":
		return value.SepComma, nil
	case "space":
		return value.SepSpace, nil
	case "slash":
		return value.SepSlash, nil
	default:
		return 0, fmt.Errorf("$separator: must be \"space\", \"comma\", \"slash\", or \"auto\"")
	}
}

func fnJoin(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	l1, l2 := asList(args[0]), asList(args[1])
	fallback := l1.Sep
	if fallback == value.SepUndecided {
		fallback = l2.Sep
	}
	if fallback == value.SepUndecided {
		fallback = value.SepSpace
	}
	sep, err := separatorArg(args[2], fallback)
	if err != nil {
		return nil, err
	}
	return value.List{
		Items:     append(append([]value.Value{}, l1.Items...), l2.Items...),
		Sep:       sep,
		Bracketed: l1.Bracketed,
	}, nil
}

func fnAppend(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	l := asList(args[0])
	fallback := l.Sep
	if fallback == value.SepUndecided {
		fallback = value.SepSpace
	}
	sep, err := separatorArg(args[2], fallback)
	if err != nil {
		return nil, err
	}
	return value.List{
		Items:     append(append([]value.Value{}, l.Items...), args[1]),
		Sep:       sep,
		Bracketed: l.Bracketed,
	}, nil
}

func fnZip(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	lists := asList(args[0]).Items
	if len(lists) == 0 {
		return value.List{Sep: value.SepComma}, nil
	}
	shortest := -1
	cols := make([]value.List, len(lists))
	for i, lv := range lists {
		cols[i] = asList(lv)
		if shortest < 0 || len(cols[i].Items) < shortest {
			shortest = len(cols[i].Items)
		}
	}
	var items []value.Value
	for row := 0; row < shortest; row++ {
		tuple := make([]value.Value, len(cols))
		for i := range cols {
			tuple[i] = cols[i].Items[row]
		}
		items = append(items, value.List{Items: tuple, Sep: value.SepSpace})
	}
	return value.List{Items: items, Sep: value.SepComma}, nil
}

func fnIndex(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	l := asList(args[0])
	for i, it := range l.Items {
		if value.Equal(it, args[1]) {
			return value.NewUnitless(float64(i + 1)), nil
		}
	}
	return value.TheNull, nil
}

func fnListSeparator(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	switch asList(args[0]).Sep {
	case value.SepComma:
		return value.NewUnquoted("comma"), nil
	case value.SepSlash:
		return value.NewUnquoted("slash"), nil
	default:
		return value.NewUnquoted("space"), nil
	}
}

func fnIsBracketed(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	return value.FromBool(asList(args[0]).Bracketed), nil
}
