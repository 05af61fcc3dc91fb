package selector

import "fmt"

// Extension records one `@extend <target> [!optional]` registered while
// evaluating a style rule's body: Extender is the full resolved selector of
// that rule, and the target key identifies the single simple selector being
// extended (a class, id, type, or %placeholder). MediaContext captures the
// merged media query stack active at registration, since extending across
// incompatible media contexts is an error.
type Extension struct {
	Extender     List
	Optional     bool
	MediaContext string
}

// Extensions accumulates every registered @extend, keyed by the target
// simple selector's text, the way the evaluator collects them while walking
// the stylesheet before the final flattening pass resolves them all at once.
type Extensions struct {
	byTarget map[string][]Extension
	order    []string
	matched  map[string]bool
}

func NewExtensions() *Extensions {
	return &Extensions{byTarget: make(map[string][]Extension), matched: make(map[string]bool)}
}

// Register adds one extension rule. target is matched verbatim against a
// simple selector's Raw text (".btn", "#id", "%placeholder", "a").
func (e *Extensions) Register(target string, extender List, optional bool, mediaContext string) {
	if _, seen := e.byTarget[target]; !seen {
		e.order = append(e.order, target)
	}
	e.byTarget[target] = append(e.byTarget[target], Extension{Extender: extender, Optional: optional, MediaContext: mediaContext})
}

// Empty reports whether no extensions were registered at all, letting the
// evaluator skip the whole-tree rewrite pass.
func (e *Extensions) Empty() bool { return len(e.byTarget) == 0 }

// UnmatchedRequired returns the targets of non-optional extends that never
// matched any selector once Apply has run across the whole stylesheet, in
// registration order.
func (e *Extensions) UnmatchedRequired() []string {
	var out []string
	for _, target := range e.order {
		if e.matched[target] {
			continue
		}
		for _, ext := range e.byTarget[target] {
			if !ext.Optional {
				out = append(out, target)
				break
			}
		}
	}
	return out
}

// Apply unifies every registered extension against sel, a selector list
// living in the given media context, and returns the combined list (sel's
// own complex selectors plus one per matching extension) with duplicates
// removed. Extensions are chased to a fixpoint so transitive extends
// (`.a {@extend .b} .b {@extend .c}`) resolve fully; the seen-set makes a
// second Apply over its own output a no-op. An extension registered under
// a different media context than the matched rule is an error unless the
// extend was marked !optional.
func (e *Extensions) Apply(sel List, mediaContext string) (List, error) {
	if len(e.byTarget) == 0 {
		return sel, nil
	}
	out := List{Complex: append([]Complex{}, sel.Complex...)}
	seen := make(map[string]bool, len(out.Complex))
	for _, c := range out.Complex {
		seen[c.String()] = true
	}
	changed := true
	for changed {
		changed = false
		for _, c := range append([]Complex{}, out.Complex...) {
			for ci, cp := range c.Compounds {
				for _, s := range cp.Simples {
					key := s.Raw
					if key == "" {
						key = s.String()
					}
					exts, ok := e.byTarget[key]
					if !ok {
						continue
					}
					e.matched[key] = true
					for _, ext := range exts {
						if ext.MediaContext != mediaContext {
							if ext.Optional {
								continue
							}
							return List{}, fmt.Errorf("@extend %q may not be used across different media queries", key)
						}
						for _, ec := range ext.Extender.Complex {
							unified, ok := unify(c, ci, cp, s, ec)
							if !ok {
								continue
							}
							k := unified.String()
							if !seen[k] {
								seen[k] = true
								out.Complex = append(out.Complex, unified)
								changed = true
							}
						}
					}
				}
			}
		}
	}
	return out, nil
}

// unify splices extenderComplex's compounds in place of the compound at
// index idx (minus the matched simple selector itself) within base,
// merging the surviving simple selectors of the original compound onto
// the extender's final compound the way `.x { @extend .c }` against
// `.c.d { ... }` produces `.x.d`. The second result is false when the
// merged compound holds simples that can never match one element (two
// different type selectors, say), in which case the variant is dropped.
func unify(base Complex, idx int, origCompound Compound, matched Simple, extenderComplex Complex) (Complex, bool) {
	var survivors []Simple
	for _, s := range origCompound.Simples {
		if !sameSimple(s, matched) {
			survivors = append(survivors, s)
		}
	}

	extCompounds := append([]Compound{}, extenderComplex.Compounds...)
	if len(extCompounds) == 0 {
		extCompounds = []Compound{{}}
	}
	last := len(extCompounds) - 1
	merged := Compound{Simples: subsumeUniversal(mergeSimples(extCompounds[last].Simples, survivors))}
	if compoundConflicts(merged) {
		return Complex{}, false
	}
	extCompounds[last] = merged

	var full []Compound
	var fullComb []Combinator
	full = append(full, base.Compounds[:idx]...)
	// Combinators[:idx] already covers the joint preceding the replaced
	// compound; the extender's compounds splice straight in.
	fullComb = append(fullComb, base.Combinators[:idx]...)
	full = append(full, extCompounds...)
	fullComb = append(fullComb, extenderComplex.Combinators...)
	if idx+1 < len(base.Compounds) {
		fullComb = append(fullComb, base.Combinators[idx])
		full = append(full, base.Compounds[idx+1:]...)
		fullComb = append(fullComb, base.Combinators[idx+1:]...)
	}
	return Complex{Compounds: full, Combinators: fullComb}, true
}

// mergeSimples appends extras onto base, skipping exact duplicates so a
// simple shared by extender and extendee appears once in the result.
func mergeSimples(base, extras []Simple) []Simple {
	out := append([]Simple{}, base...)
	for _, s := range extras {
		dup := false
		for _, existing := range out {
			if sameSimple(existing, s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// subsumeUniversal drops `*` from a compound that also names a type
// selector; the type subsumes it, so `*` never blocks unification.
func subsumeUniversal(simples []Simple) []Simple {
	hasType := false
	for _, s := range simples {
		if s.Kind == KindType {
			hasType = true
			break
		}
	}
	if !hasType {
		return simples
	}
	out := simples[:0:0]
	for _, s := range simples {
		if s.Kind != KindUniversal {
			out = append(out, s)
		}
	}
	return out
}

// compoundConflicts reports whether a compound holds two simple selectors
// that can never match the same element: two distinct type selectors or
// two distinct id selectors.
func compoundConflicts(c Compound) bool {
	for i := 0; i < len(c.Simples); i++ {
		for j := i + 1; j < len(c.Simples); j++ {
			a, b := c.Simples[i], c.Simples[j]
			if a.Kind != b.Kind {
				continue
			}
			switch a.Kind {
			case KindType, KindID:
				if a.Name != b.Name {
					return true
				}
			}
		}
	}
	return false
}

// sameSimple compares two simple selectors by their identifying fields,
// ignoring Args (a nested List is not comparable with ==).
func sameSimple(a, b Simple) bool {
	return a.Kind == b.Kind && a.Name == b.Name && a.Raw == b.Raw
}

// HasPlaceholder reports whether a complex selector contains a
// `%placeholder` simple anywhere; rules whose selectors all keep a
// placeholder after extension are dropped from the output.
func HasPlaceholder(c Complex) bool {
	for _, cp := range c.Compounds {
		for _, s := range cp.Simples {
			if s.Kind == KindPlaceholder {
				return true
			}
		}
	}
	return false
}

// StripPlaceholders removes every complex selector still carrying a
// placeholder; an empty result means the whole rule is elided.
func StripPlaceholders(l List) List {
	var out List
	for _, c := range l.Complex {
		if !HasPlaceholder(c) {
			out.Complex = append(out.Complex, c)
		}
	}
	return out
}
