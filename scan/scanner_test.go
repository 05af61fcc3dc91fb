package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/source"
)

func newScanner(t *testing.T, content string) *Scanner {
	t.Helper()
	reg := source.NewRegistry()
	src := reg.Add("test.scss", "test.scss", content, source.DialectSCSS)
	s, err := New(src)
	require.NoError(t, err)
	return s
}

func TestPeekAndRead(t *testing.T) {
	s := newScanner(t, "abc")

	b, ok := s.Peek(0)
	require.True(t, ok)
	require.Equal(t, byte('a'), b)

	b, ok = s.Peek(2)
	require.True(t, ok)
	require.Equal(t, byte('c'), b)

	_, ok = s.Peek(3)
	require.False(t, ok)

	b, ok = s.Read()
	require.True(t, ok)
	require.Equal(t, byte('a'), b)
	require.False(t, s.AtEnd())

	s.Read()
	s.Read()
	require.True(t, s.AtEnd())
}

func TestLineColumnTracking(t *testing.T) {
	s := newScanner(t, "ab\ncd")
	s.Read()
	s.Read()
	require.Equal(t, 0, s.Offset().Line)
	require.Equal(t, 2, s.Offset().Column)

	s.Read() // newline
	require.Equal(t, 1, s.Offset().Line)
	require.Equal(t, 0, s.Offset().Column)
}

func TestUTF8ColumnCounting(t *testing.T) {
	// Continuation bytes must not advance the column counter.
	s := newScanner(t, "é!")
	s.Read()
	s.Read()
	require.Equal(t, 1, s.Offset().Column)
	s.Read()
	require.Equal(t, 2, s.Offset().Column)
}

func TestInvalidUTF8Raises(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("bad.scss", "bad.scss", "a\xffb", source.DialectSCSS)
	_, err := New(src)
	require.Error(t, err)
}

func TestScanAndExpect(t *testing.T) {
	s := newScanner(t, "hello world")
	require.True(t, s.Scan("hello"))
	require.False(t, s.Scan("nope"))
	require.True(t, s.ScanChar(' '))
	require.NoError(t, s.Expect("world"))
	require.Error(t, s.Expect("more"))
}

func TestStateBacktracking(t *testing.T) {
	s := newScanner(t, "abcdef")
	s.Read()
	save := s.State()
	s.Read()
	s.Read()
	s.ResetState(save)
	b, _ := s.Peek(0)
	require.Equal(t, byte('b'), b)
}

func TestPStateSpansEndAtLastRelevantByte(t *testing.T) {
	s := newScanner(t, "abc   ")
	start := s.State()
	for !s.AtEnd() {
		s.Read()
	}
	sp := s.PState(start)
	require.Equal(t, 0, sp.Start.Column)
	// Trailing whitespace is not part of the span.
	require.Equal(t, 3, sp.End.Column)
	require.True(t, sp.Covers())
}
