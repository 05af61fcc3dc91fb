package value

import (
	"fmt"
	"strings"
)

// Map is an insertion-ordered key/value store with Value keys compared by
// deep equality. Construction rejects duplicate keys.
type Map struct {
	keys   []Value
	values []Value
}

// NewMap builds a Map from parallel key/value slices, returning an error if
// two keys are deeply equal.
func NewMap(keys, values []Value) (Map, error) {
	m := Map{}
	for i, k := range keys {
		if m.indexOf(k) >= 0 {
			return Map{}, fmt.Errorf("duplicate key %q in map", k.Inspect())
		}
		m.keys = append(m.keys, k)
		m.values = append(m.values, values[i])
	}
	return m, nil
}

func (m Map) Kind() Kind   { return KindMap }
func (m Map) Truthy() bool { return true }

func (m Map) Len() int { return len(m.keys) }

func (m Map) indexOf(k Value) int {
	for i, existing := range m.keys {
		if Equal(existing, k) {
			return i
		}
	}
	return -1
}

// Get returns the value for k and whether it was present.
func (m Map) Get(k Value) (Value, bool) {
	i := m.indexOf(k)
	if i < 0 {
		return nil, false
	}
	return m.values[i], true
}

// Set returns a new Map with k bound to v, preserving insertion order
// (updating in place if k already exists).
func (m Map) Set(k, v Value) Map {
	i := m.indexOf(k)
	if i >= 0 {
		keys := append([]Value(nil), m.keys...)
		values := append([]Value(nil), m.values...)
		values[i] = v
		return Map{keys: keys, values: values}
	}
	return Map{keys: append(append([]Value(nil), m.keys...), k), values: append(append([]Value(nil), m.values...), v)}
}

// Keys and Values return the ordered slices; callers must not mutate them.
func (m Map) Keys() []Value   { return m.keys }
func (m Map) Values() []Value { return m.values }

// Equal compares two maps by key-set regardless of insertion order.
func (m Map) Equal(o Map) bool {
	if len(m.keys) != len(o.keys) {
		return false
	}
	for i, k := range m.keys {
		ov, ok := o.Get(k)
		if !ok || !Equal(m.values[i], ov) {
			return false
		}
	}
	return true
}

func (m Map) Inspect() string {
	if len(m.keys) == 0 {
		return "()"
	}
	parts := make([]string, len(m.keys))
	for i, k := range m.keys {
		parts[i] = k.Inspect() + ": " + m.values[i].Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// AsList flattens the map into a list of (key value) 2-element lists, the
// form `@each` iterates and `map.to-list()` returns.
func (m Map) AsList() List {
	items := make([]Value, len(m.keys))
	for i, k := range m.keys {
		items[i] = List{Items: []Value{k, m.values[i]}, Sep: SepSpace}
	}
	return List{Items: items, Sep: SepComma}
}
