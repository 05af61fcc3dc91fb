// Package selector implements the selector algebra: parsing a resolved
// (post-interpolation) selector string into a structured list, weaving `&`
// parent references against an enclosing selector, and unifying selectors
// for `@extend`. It has no dependency on package ast or eval: by the time a
// selector reaches this package it is flat text, produced by re-scanning an
// Interpolation's resolved fragments the way the component design's
// two-stage interpolation model calls for.
package selector

import "strings"

// Combinator is the relation between two compound selectors in a complex
// selector: descendant (implicit space), child (>), sibling (~), or
// next-sibling (+).
type Combinator byte

const (
	Descendant  Combinator = 0
	Child       Combinator = '>'
	Sibling     Combinator = '~'
	NextSibling Combinator = '+'
)

// SimpleKind tags one atom of a compound selector.
type SimpleKind int

const (
	KindType SimpleKind = iota
	KindUniversal
	KindClass
	KindID
	KindAttribute
	KindPseudoClass
	KindPseudoElement
	KindPlaceholder
	KindParent // the literal `&`
)

// Simple is one atom within a compound selector, e.g. `.foo`, `#bar`,
// `[href]`, `:hover`, `::before`, `%placeholder`, or `&`.
type Simple struct {
	Kind SimpleKind
	// Name holds the tag/class/id/pseudo/placeholder name; Raw holds the
	// full literal text as written (used for attribute selectors and for
	// rendering pseudo-class arguments verbatim).
	Name string
	Raw  string
	// Args holds the parsed argument list of a functional pseudo-class such
	// as `:nth-child(2n+1)` or `:not(.a, .b)`; nil for non-functional ones.
	Args []List
}

// Compound is a run of simple selectors with no combinator between them,
// e.g. `a.btn.active`.
type Compound struct {
	Simples []Simple
}

// HasParentRef reports whether any simple selector in this compound is `&`.
func (c Compound) HasParentRef() bool {
	for _, s := range c.Simples {
		if s.Kind == KindParent {
			return true
		}
	}
	return false
}

// Complex is a sequence of compound selectors joined by combinators:
// `a.btn > .icon ~ span`. Combinators[i] precedes Compounds[i+1];
// len(Combinators) == len(Compounds)-1. A selector written with a leading
// combinator (`> .icon`, legal only inside a nested rule) records it in
// Leading with HasLeading set; parent resolution consumes it.
type Complex struct {
	Compounds   []Compound
	Combinators []Combinator
	Leading     Combinator
	HasLeading  bool
}

// List is a comma-separated selector list: `a, b.c, d > e`.
type List struct {
	Complex []Complex
}

func (l List) String() string {
	parts := make([]string, len(l.Complex))
	for i, c := range l.Complex {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func (c Complex) String() string {
	var b strings.Builder
	if c.HasLeading {
		b.WriteByte(byte(c.Leading))
		b.WriteByte(' ')
	}
	for i, cp := range c.Compounds {
		if i > 0 {
			comb := c.Combinators[i-1]
			if comb == Descendant {
				b.WriteByte(' ')
			} else {
				b.WriteByte(' ')
				b.WriteByte(byte(comb))
				b.WriteByte(' ')
			}
		}
		b.WriteString(cp.String())
	}
	return b.String()
}

func (c Compound) String() string {
	var b strings.Builder
	for _, s := range c.Simples {
		b.WriteString(s.String())
	}
	return b.String()
}

func (s Simple) String() string {
	switch s.Kind {
	case KindParent:
		return "&"
	case KindUniversal:
		return "*"
	case KindPseudoElement:
		return "::" + s.Name
	default:
		if s.Raw != "" {
			return s.Raw
		}
		return s.Name
	}
}
