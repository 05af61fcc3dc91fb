package value

import "strings"

// Separator is the delimiter between a list's elements. Lists with 0 or 1
// element default to Undecided unless a separator was explicitly set (e.g.
// a parenthesized singleton list `(1,)`).
type Separator int

const (
	SepUndecided Separator = iota
	SepComma
	SepSpace
	SepSlash
)

func (s Separator) Text() string {
	switch s {
	case SepComma:
		return ", "
	case SepSlash:
		return "/"
	default:
		return " "
	}
}

// List is an ordered sequence of values.
type List struct {
	Items     []Value
	Sep       Separator
	Bracketed bool
}

func NewList(items []Value, sep Separator) List {
	if len(items) <= 1 {
		sep = SepUndecided
	}
	return List{Items: items, Sep: sep}
}

func (l List) Kind() Kind   { return KindList }
func (l List) Truthy() bool { return true }

func (l List) Inspect() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.Inspect()
		if isBareList(it) && l.Sep != SepComma {
			// Nested bare lists inside a space list need parens to
			// round-trip; comma nesting never does since commas bind looser.
			parts[i] = "(" + parts[i] + ")"
		}
	}
	sep := l.Sep
	if sep == SepUndecided {
		sep = SepSpace
	}
	body := strings.Join(parts, sep.Text())
	if l.Bracketed {
		return "[" + body + "]"
	}
	if len(l.Items) == 0 && !l.Bracketed {
		return "()"
	}
	return body
}

func isBareList(v Value) bool {
	l, ok := v.(List)
	return ok && !l.Bracketed && len(l.Items) > 1
}

// ArgumentList is a List plus the keyword-argument tail captured at a call
// site via `...`.
type ArgumentList struct {
	List
	Keywords     map[string]Value
	KeywordOrder []string
}

func (a ArgumentList) Kind() Kind { return KindArgumentList }

func (a ArgumentList) Inspect() string {
	if len(a.Keywords) == 0 {
		return a.List.Inspect()
	}
	parts := make([]string, 0, len(a.Items)+len(a.KeywordOrder))
	for _, it := range a.Items {
		parts = append(parts, it.Inspect())
	}
	for _, k := range a.KeywordOrder {
		parts = append(parts, "$"+k+": "+a.Keywords[k].Inspect())
	}
	sep := a.Sep
	if sep == SepUndecided {
		sep = SepComma
	}
	return strings.Join(parts, sep.Text())
}
