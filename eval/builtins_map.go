package eval

import (
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("map-get", []bparam{req("map"), req("key")}, fnMapGet)
	register("map-merge", []bparam{req("map1"), req("map2")}, fnMapMerge)
	register("map-remove", []bparam{req("map"), rest("keys")}, fnMapRemove)
	register("map-keys", []bparam{req("map")}, fnMapKeys)
	register("map-values", []bparam{req("map")}, fnMapValues)
	register("map-has-key", []bparam{req("map"), req("key")}, fnMapHasKey)
	register("keywords", []bparam{req("args")}, fnKeywords)
}

func fnMapGet(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m, err := wantMap(args[0], "map")
	if err != nil {
		return nil, err
	}
	if v, ok := m.Get(args[1]); ok {
		return v, nil
	}
	return value.TheNull, nil
}

func fnMapMerge(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m1, err := wantMap(args[0], "map1")
	if err != nil {
		return nil, err
	}
	m2, err := wantMap(args[1], "map2")
	if err != nil {
		return nil, err
	}
	out := m1
	for i, k := range m2.Keys() {
		out = out.Set(k, m2.Values()[i])
	}
	return out, nil
}

func fnMapRemove(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m, err := wantMap(args[0], "map")
	if err != nil {
		return nil, err
	}
	drop := asList(args[1]).Items
	var keys, vals []value.Value
	for i, k := range m.Keys() {
		skip := false
		for _, d := range drop {
			if value.Equal(k, d) {
				skip = true
				break
			}
		}
		if !skip {
			keys = append(keys, k)
			vals = append(vals, m.Values()[i])
		}
	}
	out, err := value.NewMap(keys, vals)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func fnMapKeys(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m, err := wantMap(args[0], "map")
	if err != nil {
		return nil, err
	}
	return value.List{Items: append([]value.Value{}, m.Keys()...), Sep: value.SepComma}, nil
}

func fnMapValues(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m, err := wantMap(args[0], "map")
	if err != nil {
		return nil, err
	}
	return value.List{Items: append([]value.Value{}, m.Values()...), Sep: value.SepComma}, nil
}

func fnMapHasKey(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	m, err := wantMap(args[0], "map")
	if err != nil {
		return nil, err
	}
	_, ok := m.Get(args[1])
	return value.FromBool(ok), nil
}

// fnKeywords exposes the keyword tail of an argument list captured by a
// rest parameter, as a map from argument name (without `$`) to value.
func fnKeywords(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	al, ok := args[0].(value.ArgumentList)
	if !ok {
		empty, _ := value.NewMap(nil, nil)
		return empty, nil
	}
	var keys, vals []value.Value
	for _, k := range al.KeywordOrder {
		keys = append(keys, value.NewQuoted(k))
		vals = append(vals, al.Keywords[k])
	}
	m, err := value.NewMap(keys, vals)
	if err != nil {
		return nil, err
	}
	return m, nil
}
