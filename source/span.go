package source

// Span is the sole debug metadata attached to every AST/CSS node: a source
// id plus a start/end position within it. Spans are cheap to copy.
type Span struct {
	SourceID ID
	Start    Offset
	End      Offset
}

// NewSpan builds a span within src from start to end.
func NewSpan(src ID, start, end Offset) Span {
	return Span{SourceID: src, Start: start, End: end}
}

func (sp Span) StartLine() int   { return sp.Start.Line }
func (sp Span) StartColumn() int { return sp.Start.Column }
func (sp Span) EndLine() int     { return sp.End.Line }
func (sp Span) EndColumn() int   { return sp.End.Column }

// Path resolves the originating source's path through the registry.
func (sp Span) Path(reg *Registry) string {
	return reg.Get(sp.SourceID).Path
}

// Covers reports whether start <= end, the invariant every parser-produced
// span must satisfy.
func (sp Span) Covers() bool {
	if sp.Start.Line != sp.End.Line {
		return sp.Start.Line < sp.End.Line
	}
	return sp.Start.Column <= sp.End.Column
}

// Union returns the smallest span covering both a and b. Both must share a
// source id; callers that splice spans across sources should use Adjust
// instead.
func Union(a, b Span) Span {
	start, end := a.Start, a.End
	if less(b.Start, start) {
		start = b.Start
	}
	if less(end, b.End) {
		end = b.End
	}
	return Span{SourceID: a.SourceID, Start: start, End: end}
}

func less(a, b Offset) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Adjust maps a span produced by re-parsing interpolated text back into the
// enclosing document by returning the span of the expression hole it came
// from; the position within the re-parsed text is not kept, so the result
// always covers the whole hole. innerInSynthetic is the span as reported by the
// parser that ran over the synthetic (wrapping) source; hole is the span of
// the #{...} expression in the original document.
func Adjust(innerInSynthetic, hole Span) Span {
	// The inner parser already reports positions against the synthetic
	// source produced by Registry.AddSynthetic, which records where the
	// dynamic text begins in the original document (InsertPos). Since the
	// synthetic source's own offsets are zero-based from that insertion
	// point, a caller holding the wrapping source can resolve true
	// document coordinates via Source.Line without further translation;
	// Adjust exists to let callers fold a hole's span in when the
	// synthetic text replaced the hole outright (selectors, media
	// queries), producing one span that covers the hole in the original.
	return Span{SourceID: hole.SourceID, Start: hole.Start, End: hole.End}
}
