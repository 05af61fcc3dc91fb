package selector

// ResolveParent weaves a nested selector list against its enclosing
// (already-resolved) parent list, implementing the `&` substitution rule:
// a compound containing `&` is expanded by splicing the parent's compound
// in its place; a complex selector containing no `&` at all is implicitly
// prefixed with the parent via a descendant combinator. The result is the
// cross product of child complex selectors against parent complex
// selectors, matching how nested rules flatten in the component design.
func ResolveParent(child, parent List) List {
	if len(parent.Complex) == 0 {
		return child
	}
	var out List
	for _, c := range child.Complex {
		for _, p := range parent.Complex {
			out.Complex = append(out.Complex, weave(c, p))
		}
	}
	return out
}

func weave(child, parent Complex) Complex {
	if !complexHasParentRef(child) {
		return prefixCombinator(child, parent)
	}
	var result Complex
	for i, cp := range child.Compounds {
		if !cp.HasParentRef() {
			result.Compounds = append(result.Compounds, cp)
			if i > 0 {
				result.Combinators = append(result.Combinators, child.Combinators[i-1])
			}
			continue
		}
		expanded := substituteParent(cp, parent)
		if i > 0 {
			result.Combinators = append(result.Combinators, child.Combinators[i-1])
		}
		result.Compounds = append(result.Compounds, expanded.Compounds...)
		result.Combinators = append(result.Combinators, expanded.Combinators...)
	}
	return result
}

func complexHasParentRef(c Complex) bool {
	for _, cp := range c.Compounds {
		if cp.HasParentRef() {
			return true
		}
	}
	return false
}

// substituteParent replaces the `&` atom inside a single compound with the
// full parent complex selector, merging any sibling simple selectors onto
// the parent's last compound (e.g. `&.active` against parent `.btn` yields
// `.btn.active`).
func substituteParent(cp Compound, parent Complex) Complex {
	var out Complex
	out.Compounds = append(out.Compounds, parent.Compounds...)
	out.Combinators = append(out.Combinators, parent.Combinators...)
	var extra []Simple
	for _, s := range cp.Simples {
		if s.Kind != KindParent {
			extra = append(extra, s)
		}
	}
	if len(extra) > 0 && len(out.Compounds) > 0 {
		last := &out.Compounds[len(out.Compounds)-1]
		last.Simples = append(append([]Simple{}, last.Simples...), extra...)
	}
	return out
}

// prefixCombinator joins parent and child the way implicit nesting does: a
// descendant combinator by default, or the child's own leading combinator
// (`> .x` nests as `parent > .x`) when one was written.
func prefixCombinator(child, parent Complex) Complex {
	var out Complex
	out.Compounds = append(out.Compounds, parent.Compounds...)
	out.Combinators = append(out.Combinators, parent.Combinators...)
	if len(out.Compounds) > 0 {
		comb := Descendant
		if child.HasLeading {
			comb = child.Leading
		}
		out.Combinators = append(out.Combinators, comb)
	}
	out.Compounds = append(out.Compounds, child.Compounds...)
	out.Combinators = append(out.Combinators, child.Combinators...)
	return out
}

// HasExplicitParentRef reports whether any complex selector in the list
// contains `&`, which callers use to decide whether a nested rule's
// selector may legally appear where CSS forbids bare nesting without one
// (e.g. at top level outside any enclosing rule).
func HasExplicitParentRef(l List) bool {
	for _, c := range l.Complex {
		if complexHasParentRef(c) {
			return true
		}
	}
	return false
}
