package env

// Flags tracks the evaluator's nesting context, consulted to validate
// where certain statements are legal (`@content` only inside a mixin that
// accepts it, `@return` only inside a function, top-level-only constructs
// inside `@at-root`) and to adjust behavior for the duration of a child
// evaluation (keyframe selectors parse differently than ordinary ones,
// media queries nest by merging rather than descendant-combining).
type Flags struct {
	InMixin                  bool
	InFunction               bool
	InContentBlock           bool
	InControlDirective       bool
	InUnknownAtRule          bool
	InKeyframes              bool
	AtRootExcludingStyleRule bool
}
