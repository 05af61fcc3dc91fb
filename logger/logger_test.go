package logger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/source"
)

func TestEntriesKeepEvaluationOrder(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("a.scss", "a.scss", "$x: 1;\n@warn \"w\";\n", source.DialectSCSS)
	sp := source.NewSpan(src.ID, source.Offset{Line: 1}, source.Offset{Line: 1, Column: 5})

	l := New()
	l.Warn("first", sp, nil)
	l.Debug("second", sp, nil)
	l.Deprecation("third", sp, nil)

	entries := l.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, KindWarning, entries[0].Kind)
	require.Equal(t, KindDebug, entries[1].Kind)
	require.Equal(t, KindDeprecation, entries[2].Kind)
}

func TestRenderIncludesSnippetAndTrace(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("a.scss", "a.scss", "line zero\nline one\n", source.DialectSCSS)
	sp := source.NewSpan(src.ID, source.Offset{Line: 1, Column: 5}, source.Offset{Line: 1, Column: 8})

	l := New()
	l.Warn("watch out", sp, []string{"a.scss 1:5 mixin m"})
	out := l.Render(reg)

	require.Contains(t, out, "WARNING: watch out")
	require.Contains(t, out, "line one")
	require.Contains(t, out, "^")
	require.Contains(t, out, "a.scss 1:5 mixin m")
}

func TestDebugRendersCompactly(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("a.scss", "a.scss", "x\n", source.DialectSCSS)
	sp := source.NewSpan(src.ID, source.Offset{}, source.Offset{})

	out := RenderEntry(reg, Entry{Kind: KindDebug, Message: "value is 2", Span: sp})
	require.Equal(t, "a.scss:1 DEBUG: value is 2\n", out)
}

func TestSnippetCaretColumn(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("a.scss", "a.scss", "abcdef\n", source.DialectSCSS)
	sp := source.NewSpan(src.ID, source.Offset{Column: 3}, source.Offset{Column: 4})

	out := Snippet(reg, sp)
	// Caret sits under column 3 of the quoted line.
	require.Equal(t, "  1 | abcdef\n         ^\n", out)
}
