package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualityIsEquivalenceRelation(t *testing.T) {
	vals := []Value{
		TheNull,
		True,
		NewUnitless(1),
		NewNumber(1, "px"),
		NewQuoted("a"),
		NewUnquoted("a"),
		NewRGBA(255, 0, 0, 1),
		List{Items: []Value{NewUnitless(1), NewUnitless(2)}, Sep: SepComma},
	}

	// Reflexive.
	for _, v := range vals {
		require.True(t, Equal(v, v), "%s == %s", v.Inspect(), v.Inspect())
	}
	// Symmetric.
	for _, a := range vals {
		for _, b := range vals {
			require.Equal(t, Equal(a, b), Equal(b, a))
		}
	}
	// Transitive over the string pair: quoted "a" == unquoted a.
	require.True(t, Equal(NewQuoted("a"), NewUnquoted("a")))
}

func TestStringEquality(t *testing.T) {
	require.True(t, Equal(NewQuoted("x"), NewUnquoted("x")))
	require.False(t, Equal(NewQuoted("x"), NewQuoted("y")))
}

func TestStringQuoteChoice(t *testing.T) {
	require.Equal(t, `"abc"`, NewQuoted("abc").Inspect())
	// Prefers double quotes; switches to single only when the content has a
	// double quote and no single quote.
	require.Equal(t, `'a"b'`, NewQuoted(`a"b`).Inspect())
	require.Equal(t, `"a'b"`, NewQuoted("a'b").Inspect())
	require.Equal(t, `"a'\"b"`, NewQuoted(`a'"b`).Inspect())
	require.Equal(t, "abc", NewUnquoted("abc").Inspect())
}

func TestMapRejectsDuplicateKeys(t *testing.T) {
	_, err := NewMap(
		[]Value{NewQuoted("a"), NewUnquoted("a")},
		[]Value{NewUnitless(1), NewUnitless(2)},
	)
	require.Error(t, err)
}

func TestMapOrderIndependentEquality(t *testing.T) {
	m1, err := NewMap([]Value{NewQuoted("a"), NewQuoted("b")}, []Value{NewUnitless(1), NewUnitless(2)})
	require.NoError(t, err)
	m2, err := NewMap([]Value{NewQuoted("b"), NewQuoted("a")}, []Value{NewUnitless(2), NewUnitless(1)})
	require.NoError(t, err)
	require.True(t, m1.Equal(m2))

	m3 := m1.Set(NewQuoted("a"), NewUnitless(3))
	require.False(t, m1.Equal(m3))
	// Set preserves insertion order.
	require.Equal(t, "a", m3.Keys()[0].(String).Text)
}

func TestListSeparatorDefaults(t *testing.T) {
	// 0 or 1 element: undecided unless explicitly set.
	require.Equal(t, SepUndecided, NewList(nil, SepComma).Sep)
	require.Equal(t, SepUndecided, NewList([]Value{True}, SepComma).Sep)
	require.Equal(t, SepComma, NewList([]Value{True, False}, SepComma).Sep)
}

func TestColorEquality(t *testing.T) {
	red, ok := LookupNamedColor("red")
	require.True(t, ok)
	hex, err := ParseHex("#ff0000")
	require.NoError(t, err)
	require.True(t, Equal(red, hex))
}

func TestColorArithmeticClamps(t *testing.T) {
	a := NewRGBA(200, 200, 200, 1)
	b := NewRGBA(100, 100, 100, 1)
	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, uint8(255), sum.R)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	require.Equal(t, uint8(0), diff.R)
}

func TestColorAlphaMismatch(t *testing.T) {
	a := NewRGBA(1, 2, 3, 1)
	b := NewRGBA(1, 2, 3, 0.5)
	_, err := a.Add(b)
	require.Error(t, err)
}

func TestColorHSLRoundTrip(t *testing.T) {
	c := NewHSLA(120, 50, 50, 1)
	h, s, l := c.HSL()
	require.InDelta(t, 120, h, 0.5)
	require.InDelta(t, 50, s, 0.5)
	require.InDelta(t, 50, l, 0.5)
}

func TestValueInspectRoundTrip(t *testing.T) {
	// Re-inspecting an inspect form is stable for representative values.
	cases := []Value{
		NewUnitless(1.5),
		NewNumber(10, "px"),
		NewQuoted("hello"),
		NewUnquoted("solid"),
		TheNull,
		True,
		List{Items: []Value{NewUnitless(1), NewUnitless(2)}, Sep: SepComma},
	}
	for _, v := range cases {
		first := v.Inspect()
		require.Equal(t, first, v.Inspect())
	}
}

func TestTruthiness(t *testing.T) {
	require.False(t, TheNull.Truthy())
	require.False(t, False.Truthy())
	require.True(t, True.Truthy())
	require.True(t, NewUnitless(0).Truthy())
	require.True(t, NewUnquoted("").Truthy())
	require.True(t, List{}.Truthy())
}

func TestShortenColorNames(t *testing.T) {
	require.Equal(t, "red", ShortenColorNames("#ff0000"))
	// #fff is shorter than "white".
	require.Equal(t, "#fff", ShortenColorNames("white"))
	// Never rewrites inside longer words.
	require.Equal(t, "important", ShortenColorNames("important"))
}
