// Package source holds the input buffers a compile reads from and assigns
// each one a stable numeric id so that AST and CSS-tree nodes can reference
// their origin without holding a pointer into the registry.
package source

import "strings"

// ID identifies a Source within one Registry. IDs are assigned from 0 in
// registration order, so the first source added has ID 0.
type ID int

// Dialect is the concrete syntax a Source is parsed with.
type Dialect int

const (
	// DialectAuto defers to extension-based detection (see Registry.Add).
	DialectAuto Dialect = iota
	DialectSCSS
	DialectSass
	DialectCSS
)

// Source is an immutable input buffer: an absolute path, the path it was
// imported under, and its content. Synthetic sources (produced by
// re-parsing an interpolated string) additionally carry a Wrapping pointer
// back to the source they were extracted from.
type Source struct {
	ID         ID
	Path       string // absolute or synthetic path, for diagnostics
	ImportPath string // the path as written in the @import/include-path lookup
	Content    string
	Dialect    Dialect

	// Wrapping, when non-nil, means this source's content was produced by
	// evaluating interpolation inside Wrapping at InsertPos, and errors
	// reported against this source should be remapped through it.
	Wrapping  *Source
	InsertPos Offset // position in Wrapping.Content where the dynamic text begins
}

// Offset is a zero-based (line, column, byte) position. Column is counted in
// Unicode code points, not bytes.
type Offset struct {
	Line   int // 0-based
	Column int // 0-based, in code points
	Byte   int // 0-based byte offset into Content
}

// DialectFromPath infers a dialect from a file extension, defaulting to SCSS.
func DialectFromPath(path string) Dialect {
	switch {
	case strings.HasSuffix(path, ".sass"):
		return DialectSass
	case strings.HasSuffix(path, ".css"):
		return DialectCSS
	case strings.HasSuffix(path, ".scss"):
		return DialectSCSS
	default:
		return DialectSCSS
	}
}

// Line returns the 0-based line of text at n, or "" if out of range. Used to
// render error snippets.
func (s *Source) Line(n int) string {
	if s.Wrapping != nil {
		return s.reconstructLine(n)
	}
	lines := strings.Split(s.Content, "\n")
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

// reconstructLine implements the synthetic-source line lookup described in
// the source model: on the insertion line it returns the wrapped line's
// text before the insertion column followed by the first line of this
// source's content; every other line comes from the wrapped source
// unchanged. Text after the insertion point on that line is not shown, and
// later lines of multi-line content are not substituted.
func (s *Source) reconstructLine(n int) string {
	wrapped := s.Wrapping
	insertLine := s.InsertPos.Line

	if n != insertLine {
		return wrapped.Line(n)
	}

	base := wrapped.Line(insertLine)
	col := s.InsertPos.Column
	if col > len(base) {
		col = len(base)
	}
	prefix := base[:col]

	inner := s.Content
	if idx := strings.IndexByte(inner, '\n'); idx >= 0 {
		inner = inner[:idx]
	}

	// The remainder of the wrapped line after the inserted text's own
	// column span is unknown in the one-line case, so we just show the
	// prefix plus the first line of substituted text; multi-line and
	// partial-replacement callers should use InsertPos precisely via span
	// adjustment instead of raw line reconstruction.
	return prefix + inner
}
