package eval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueries(t *testing.T) {
	qs := ParseQueries("screen and (min-width: 100px), print")
	require.Len(t, qs, 2)
	require.Equal(t, "screen", qs[0].Type)
	require.Equal(t, []string{"(min-width: 100px)"}, qs[0].Features)
	require.Equal(t, "print", qs[1].Type)
}

func TestParseQueryModifier(t *testing.T) {
	qs := ParseQueries("not screen and (color)")
	require.Len(t, qs, 1)
	require.Equal(t, "not", qs[0].Modifier)
	require.Equal(t, "screen", qs[0].Type)
}

func TestMergeFeatureIntersection(t *testing.T) {
	parent := ParseQueries("screen and (min-width: 100px)")
	child := ParseQueries("(max-width: 200px)")
	merged := MergeQueries(parent, child)
	require.Len(t, merged, 1)
	require.Equal(t, "screen and (min-width: 100px) and (max-width: 200px)", RenderQueries(merged))
}

func TestMergeConflictingTypesDrops(t *testing.T) {
	merged := MergeQueries(ParseQueries("screen"), ParseQueries("print"))
	require.Empty(t, merged)
}

func TestMergeAllType(t *testing.T) {
	merged := MergeQueries(ParseQueries("all and (color)"), ParseQueries("screen"))
	require.Equal(t, "screen and (color)", RenderQueries(merged))
}

func TestMergeCrossProduct(t *testing.T) {
	merged := MergeQueries(ParseQueries("screen, print"), ParseQueries("(color)"))
	require.Equal(t, "screen and (color), print and (color)", RenderQueries(merged))
}

func TestSplitAndIgnoresWordsContainingAnd(t *testing.T) {
	qs := ParseQueries("(orientation: landscape)")
	require.Len(t, qs, 1)
	require.Empty(t, qs[0].Type)
	require.Equal(t, []string{"(orientation: landscape)"}, qs[0].Features)
}
