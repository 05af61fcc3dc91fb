package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAssignsStableIDs(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add("a.scss", "a", "x", DialectSCSS)
	b := reg.Add("b.scss", "b", "y", DialectAuto)

	require.Equal(t, ID(0), a.ID)
	require.Equal(t, ID(1), b.ID)
	require.Equal(t, 2, reg.Len())
	require.Same(t, a, reg.Get(a.ID))
	// DialectAuto resolves from the extension at registration.
	require.Equal(t, DialectSCSS, b.Dialect)
}

func TestDialectFromPath(t *testing.T) {
	require.Equal(t, DialectSass, DialectFromPath("x.sass"))
	require.Equal(t, DialectCSS, DialectFromPath("x.css"))
	require.Equal(t, DialectSCSS, DialectFromPath("x.scss"))
	require.Equal(t, DialectSCSS, DialectFromPath("x"))
}

func TestSourceLine(t *testing.T) {
	reg := NewRegistry()
	src := reg.Add("a.scss", "a", "first\nsecond\nthird", DialectSCSS)
	require.Equal(t, "first", src.Line(0))
	require.Equal(t, "second", src.Line(1))
	require.Equal(t, "", src.Line(9))
}

// A synthetic source reconstructs its effective line by substituting the
// inserted text into the wrapped source's line at the insertion point.
func TestSyntheticSourceLineReconstruction(t *testing.T) {
	reg := NewRegistry()
	outer := reg.Add("a.scss", "a", ".#{$name} {\n  x: 1;\n}\n", DialectSCSS)
	syn := reg.AddSynthetic(outer, Offset{Line: 0, Column: 1}, "widget")

	require.Equal(t, outer, syn.Wrapping)
	require.Equal(t, ".widget", syn.Line(0))
	// Lines away from the insertion pass through the wrapped source.
	require.Equal(t, "  x: 1;", syn.Line(1))
}

func TestSpanCoversAndUnion(t *testing.T) {
	a := NewSpan(0, Offset{Line: 0, Column: 2}, Offset{Line: 0, Column: 5})
	b := NewSpan(0, Offset{Line: 1, Column: 0}, Offset{Line: 1, Column: 3})

	require.True(t, a.Covers())
	require.False(t, NewSpan(0, Offset{Column: 5}, Offset{Column: 2}).Covers())

	u := Union(a, b)
	require.Equal(t, a.Start, u.Start)
	require.Equal(t, b.End, u.End)
}
