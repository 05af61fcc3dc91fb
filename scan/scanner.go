// Package scan implements the forward-reading cursor the parser drives
// directly over source text. There is no separate tokenizer: the parser
// calls Scanner methods to look ahead, consume, and backtrack over raw
// characters, the same style lessgo's hand-rolled lexer used, just without
// materializing a token stream first.
package scan

import (
	"fmt"
	"unicode/utf8"

	"github.com/sassgo/sass/source"
)

// Error is a scan/parse failure anchored at a span.
type Error struct {
	Message string
	Span    source.Span
}

func (e *Error) Error() string { return e.Message }

// State is a saved cursor position, the only backtracking mechanism the
// parser is allowed to use.
type State struct {
	pos       int
	line      int
	col       int
	lastNonWS int
	lastLine  int
	lastCol   int
}

// Scanner is a UTF-8-aware cursor over one source's content.
type Scanner struct {
	Src  *source.Source
	data string

	pos int // byte offset
	line,
	col int // 0-based code-point line/column of pos

	// position of the last relevant (non-whitespace, non-comment) rune,
	// so spans end at the last meaningful byte rather than trailing
	// whitespace.
	lastNonWSByte int
	lastNonWSLine int
	lastNonWSCol  int
}

// New validates src's content is well-formed UTF-8 and returns a cursor over
// it positioned at the start.
func New(src *source.Source) (*Scanner, error) {
	if !utf8.ValidString(src.Content) {
		return nil, &Error{Message: "invalid UTF-8 in source", Span: source.Span{SourceID: src.ID}}
	}
	return &Scanner{Src: src, data: src.Content}, nil
}

// Offset returns the cursor's current position.
func (s *Scanner) Offset() source.Offset {
	return source.Offset{Line: s.line, Column: s.col, Byte: s.pos}
}

// AtEnd reports whether the cursor is at or past the end of input.
func (s *Scanner) AtEnd() bool { return s.pos >= len(s.data) }

// Peek returns the byte n positions ahead of the cursor without consuming,
// or 0 if out of range. n=0 is the next unconsumed byte.
func (s *Scanner) Peek(n int) (byte, bool) {
	i := s.pos + n
	if i < 0 || i >= len(s.data) {
		return 0, false
	}
	return s.data[i], true
}

// PeekRune decodes the rune starting at the cursor without consuming it.
func (s *Scanner) PeekRune() (rune, int) {
	if s.AtEnd() {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(s.data[s.pos:])
	return r, size
}

// Read consumes and returns the next byte, advancing line/column tracking.
// UTF-8 continuation bytes do not advance the column counter.
func (s *Scanner) Read() (byte, bool) {
	if s.AtEnd() {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.col = 0
	} else if !isContinuationByte(b) {
		s.col++
	}
	if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
		s.lastNonWSByte = s.pos
		s.lastNonWSLine = s.line
		s.lastNonWSCol = s.col
	}
	return b, true
}

func isContinuationByte(b byte) bool { return b&0xC0 == 0x80 }

// Scan consumes the literal string s if it matches at the cursor, returning
// whether it advanced.
func (s *Scanner) Scan(str string) bool {
	if s.pos+len(str) > len(s.data) {
		return false
	}
	if s.data[s.pos:s.pos+len(str)] != str {
		return false
	}
	for i := 0; i < len(str); i++ {
		s.Read()
	}
	return true
}

// ScanChar consumes the single byte c if it matches at the cursor.
func (s *Scanner) ScanChar(c byte) bool {
	b, ok := s.Peek(0)
	if !ok || b != c {
		return false
	}
	s.Read()
	return true
}

// Expect consumes str or raises a parse error with a precise span.
func (s *Scanner) Expect(str string) error {
	if s.Scan(str) {
		return nil
	}
	return s.errorf("Expected %q.", str)
}

// ExpectChar consumes c or raises a parse error.
func (s *Scanner) ExpectChar(c byte) error {
	if s.ScanChar(c) {
		return nil
	}
	return s.errorf("Expected %q.", string(c))
}

// State saves the cursor for backtracking.
func (s *Scanner) State() State {
	return State{pos: s.pos, line: s.line, col: s.col, lastNonWS: s.lastNonWSByte, lastLine: s.lastNonWSLine, lastCol: s.lastNonWSCol}
}

// ResetState restores a previously saved cursor.
func (s *Scanner) ResetState(st State) {
	s.pos, s.line, s.col = st.pos, st.line, st.col
	s.lastNonWSByte, s.lastNonWSLine, s.lastNonWSCol = st.lastNonWS, st.lastLine, st.lastCol
}

// PState returns a span from a saved position to the current cursor.
func (s *Scanner) PState(from State) source.Span {
	return source.Span{
		SourceID: s.Src.ID,
		Start:    source.Offset{Line: from.line, Column: from.col, Byte: from.pos},
		End:      source.Offset{Line: s.lastNonWSLine, Column: s.lastNonWSCol, Byte: s.lastNonWSByte},
	}
}

// SpanTo is PState but anchored to the raw current cursor rather than the
// last non-whitespace rune; used by callers that want the literal end (e.g.
// selector/at-rule text capture where trailing space is meaningful).
func (s *Scanner) SpanTo(from State) source.Span {
	return source.Span{
		SourceID: s.Src.ID,
		Start:    source.Offset{Line: from.line, Column: from.col, Byte: from.pos},
		End:      s.Offset(),
	}
}

func (s *Scanner) errorf(format string, args ...interface{}) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Span:    source.Span{SourceID: s.Src.ID, Start: s.Offset(), End: s.Offset()},
	}
}

// Errorf raises a parse error at the current position with a custom
// message, for grammar productions with bespoke diagnostics (dangling
// !important, unclosed brackets, and so on).
func (s *Scanner) Errorf(format string, args ...interface{}) error {
	return s.errorf(format, args...)
}

// ErrorAt raises a parse error anchored at a previously saved position.
func (s *Scanner) ErrorAt(at State, format string, args ...interface{}) error {
	sp := source.Span{SourceID: s.Src.ID, Start: source.Offset{Line: at.line, Column: at.col, Byte: at.pos}, End: s.Offset()}
	return &Error{Message: fmt.Sprintf(format, args...), Span: sp}
}
