package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberComparable(t *testing.T) {
	cases := []struct {
		a, b Number
		want bool
	}{
		{NewNumber(1, "px"), NewNumber(2, "px"), true},
		{NewNumber(1, "px"), NewNumber(1, "in"), true},
		{NewNumber(1, "px"), NewNumber(1, "s"), false},
		{NewUnitless(1), NewNumber(1, "px"), true},
		{NewNumber(1, "deg"), NewNumber(1, "rad"), true},
		{NewNumber(1, "Hz"), NewNumber(1, "kHz"), true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.a.Comparable(tc.b), "%s vs %s", tc.a.Inspect(), tc.b.Inspect())
	}
}

func TestNumberEquality(t *testing.T) {
	// 1 == 1.0 is true; 1 == 1px is false.
	require.True(t, NewUnitless(1).Equal(NewUnitless(1.0)))
	require.False(t, Equal(NewUnitless(1), NewNumber(1, "px")))

	// Unit conversion: 1in == 96px; q is a quarter-millimeter.
	require.True(t, NewNumber(1, "in").Equal(NewNumber(96, "px")))
	require.True(t, NewNumber(1, "s").Equal(NewNumber(1000, "ms")))
	require.True(t, NewNumber(1, "cm").Equal(NewNumber(40, "q")))
	require.True(t, NewNumber(1, "q").Equal(NewNumber(0.25, "mm")))
}

func TestNumberUnitAlgebra(t *testing.T) {
	n := NewNumber(10, "px")

	// n * 1 (unitless) = n
	prod := n.Mul(NewUnitless(1))
	require.True(t, prod.Equal(n))

	// n / n = 1 unitless
	q, err := n.Div(n)
	require.NoError(t, err)
	require.True(t, q.Unitless())
	require.InDelta(t, 1, q.Val, Epsilon())

	// (a+b)+c == a+(b+c) within epsilon
	a, b, c := NewNumber(0.1, "px"), NewNumber(0.2, "px"), NewNumber(0.3, "px")
	ab, err := a.Add(b)
	require.NoError(t, err)
	abc1, err := ab.Add(c)
	require.NoError(t, err)
	bc, err := b.Add(c)
	require.NoError(t, err)
	abc2, err := a.Add(bc)
	require.NoError(t, err)
	require.True(t, abc1.Equal(abc2))
}

func TestNumberUnitComposition(t *testing.T) {
	// 10px / 2px cancels to unitless 5.
	q, err := NewNumber(10, "px").Div(NewNumber(2, "px"))
	require.NoError(t, err)
	require.True(t, q.Unitless())
	require.Equal(t, "5", q.Inspect())

	// 10px / 2s keeps px/s.
	q, err = NewNumber(10, "px").Div(NewNumber(2, "s"))
	require.NoError(t, err)
	require.Equal(t, "5px/s", q.Inspect())

	// px/s * s cancels back to px.
	p := q.Mul(NewNumber(3, "s"))
	require.Equal(t, "15px", p.Inspect())
}

func TestNumberDivideByZero(t *testing.T) {
	_, err := NewUnitless(1).Div(NewUnitless(0))
	require.EqualError(t, err, "divided by 0")

	_, err = NewUnitless(1).Mod(NewUnitless(0))
	require.EqualError(t, err, "divided by 0")
}

func TestNumberIncompatibleUnits(t *testing.T) {
	_, err := NewNumber(1, "px").Add(NewNumber(1, "s"))
	require.Error(t, err)
	_, err = NewNumber(1, "px").Compare(NewNumber(1, "deg"))
	require.Error(t, err)
}

func TestNumberPrecisionPrinting(t *testing.T) {
	// At most Precision fractional digits, trailing zeros trimmed.
	require.Equal(t, "0.3333333333", NewUnitless(1.0/3.0).Inspect())
	require.Equal(t, "1.5", NewUnitless(1.5).Inspect())
	require.Equal(t, "2", NewUnitless(2.0).Inspect())
	require.Equal(t, "0", NewUnitless(-0.0).Inspect())
	require.Equal(t, "10px", NewNumber(10, "px").Inspect())
}

func TestNumberCompare(t *testing.T) {
	c, err := NewNumber(1, "in").Compare(NewNumber(97, "px"))
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = NewNumber(1, "in").Compare(NewNumber(96, "px"))
	require.NoError(t, err)
	require.Equal(t, 0, c)

	c, err = NewNumber(2, "cm").Compare(NewNumber(1, "cm"))
	require.NoError(t, err)
	require.Equal(t, 1, c)
}
