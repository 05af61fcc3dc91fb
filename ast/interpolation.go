package ast

import "github.com/sassgo/sass/source"

// Interpolation is an ordered sequence of alternating literal-string
// fragments and `#{...}` expression holes. The parser emits one for every
// context that may contain interpolation: selectors, property names,
// at-rule names, media queries, and plain-CSS-flagged declaration values.
//
// Plain string fragments that contain no holes at all are common (most
// selectors/property names have none), so Plain reports that fast path.
type Interpolation struct {
	Node
	// Fragments holds len(Holes)+1 literal runs; Fragments[i] precedes
	// Holes[i], and the final Fragments entry follows the last hole.
	Fragments []string
	Holes     []Expression
}

// Plain reports whether the interpolation contains no expression holes, in
// which case Fragments[0] is the entire literal text.
func (i *Interpolation) Plain() bool { return len(i.Holes) == 0 }

// Text returns the sole literal fragment; only valid when Plain().
func (i *Interpolation) Text() string {
	if len(i.Fragments) == 0 {
		return ""
	}
	return i.Fragments[0]
}

// NewPlain builds a hole-free interpolation from a literal string.
func NewPlain(sp source.Span, text string) *Interpolation {
	return &Interpolation{Node: Node{Span: sp}, Fragments: []string{text}}
}
