package eval

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/cssom"
	internalstrings "github.com/sassgo/sass/internal/strings"
)

// Query is one parsed media query: an optional `not`/`only` modifier, an
// optional media type, and the feature expressions joined by `and`.
type Query struct {
	Modifier string
	Type     string
	Features []string
}

// ParseQueries splits a media-query list on top-level commas and parses
// each query's modifier/type/feature shape. The feature expressions
// themselves stay verbatim; only the combinator structure matters for
// merging.
func ParseQueries(text string) []Query {
	var out []Query
	var buf []string
	internalstrings.SplitCommaNoAlloc(text, &buf)
	for _, part := range buf {
		part = internalstrings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseQuery(part))
	}
	return out
}

func parseQuery(text string) Query {
	var q Query
	terms := splitAnd(text)
	for i, t := range terms {
		t = internalstrings.TrimSpace(t)
		if strings.HasPrefix(t, "(") {
			q.Features = append(q.Features, t)
			continue
		}
		fields := strings.Fields(t)
		for _, f := range fields {
			switch {
			case i == 0 && (strings.EqualFold(f, "not") || strings.EqualFold(f, "only")) && q.Type == "":
				q.Modifier = f
			case q.Type == "":
				q.Type = f
			default:
				// Malformed extra token: keep it as an opaque feature so
				// output degrades to what was written.
				q.Features = append(q.Features, f)
			}
		}
	}
	return q
}

// splitAnd splits on the keyword `and` outside parentheses.
func splitAnd(s string) []string {
	var out []string
	depth, last := 0, 0
	for i := 0; i+3 <= len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i+3 <= len(s) && strings.EqualFold(s[i:i+3], "and") {
			before := i == 0 || s[i-1] == ' ' || s[i-1] == ')'
			after := i+3 == len(s) || s[i+3] == ' ' || s[i+3] == '('
			if before && after {
				out = append(out, s[last:i])
				last = i + 3
				i += 2
			}
		}
	}
	out = append(out, s[last:])
	return out
}

// MergeQueries intersects a nested query list with its enclosing one using
// the standard and/feature-intersection rule; a cross product that yields
// nothing means the nested block matches no context and is dropped.
func MergeQueries(parent, child []Query) []Query {
	var out []Query
	for _, p := range parent {
		for _, c := range child {
			if merged, ok := mergeQuery(p, c); ok {
				out = append(out, merged)
			}
		}
	}
	return out
}

func mergeQuery(p, c Query) (Query, bool) {
	var m Query
	switch {
	case p.Type == "" || strings.EqualFold(p.Type, "all"):
		m.Type, m.Modifier = c.Type, c.Modifier
	case c.Type == "" || strings.EqualFold(c.Type, "all"):
		m.Type, m.Modifier = p.Type, p.Modifier
	case strings.EqualFold(p.Type, c.Type):
		if p.Modifier != c.Modifier && (p.Modifier == "not") != (c.Modifier == "not") {
			return Query{}, false
		}
		m.Type, m.Modifier = p.Type, p.Modifier
	default:
		return Query{}, false
	}
	m.Features = append(append([]string{}, p.Features...), c.Features...)
	return m, true
}

// RenderQueries prints a query list back to its canonical CSS text.
func RenderQueries(qs []Query) string {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, renderQuery(q))
	}
	return strings.Join(parts, ", ")
}

func renderQuery(q Query) string {
	var terms []string
	head := q.Type
	if q.Modifier != "" {
		head = q.Modifier + " " + q.Type
	}
	if head != "" {
		terms = append(terms, head)
	}
	terms = append(terms, q.Features...)
	return strings.Join(terms, " and ")
}

func (e *Evaluator) evalMedia(st *ast.MediaStatement) error {
	text, err := e.evalInterpolation(st.Query)
	if err != nil {
		return err
	}
	queries := ParseQueries(text)

	merged := queries
	if len(e.media) > 0 {
		merged = MergeQueries(e.media, queries)
		if len(merged) == 0 {
			// The intersection matches nothing: the block is silently
			// dropped.
			return nil
		}
	}

	target := e.hoistTargetOutsideMedia()
	node := e.tree.Add(target, cssom.Node{Kind: cssom.KindMediaRule, Prelude: RenderQueries(merged), Span: st.Span})

	prevMedia := e.media
	e.media = merged
	defer func() { e.media = prevMedia }()

	parent, rule := node, e.styleRule
	if e.styleRule != cssom.NoNode {
		// Declarations directly inside a nested @media re-wrap in a copy of
		// the enclosing rule so the output keeps them scoped.
		copyID := e.tree.Add(node, cssom.Node{
			Kind:     cssom.KindStyleRule,
			Selector: e.tree.Get(e.styleRule).Selector,
			Span:     e.tree.Get(e.styleRule).Span,
		})
		parent, rule = copyID, copyID
	}
	if err := e.evalRuleBody(st.Frame, st.Body, parent, rule); err != nil {
		return err
	}
	pruneEmpty(e.tree, node)
	return nil
}

func (e *Evaluator) evalSupports(st *ast.SupportsStatement) error {
	cond, err := e.evalInterpolation(st.Condition)
	if err != nil {
		return err
	}
	target := e.hoistTarget()
	node := e.tree.Add(target, cssom.Node{Kind: cssom.KindSupportsRule, Prelude: internalstrings.TrimSpace(cond), Span: st.Span})

	parent, rule := node, e.styleRule
	if e.styleRule != cssom.NoNode {
		copyID := e.tree.Add(node, cssom.Node{
			Kind:     cssom.KindStyleRule,
			Selector: e.tree.Get(e.styleRule).Selector,
			Span:     e.tree.Get(e.styleRule).Span,
		})
		parent, rule = copyID, copyID
	}
	if err := e.evalRuleBody(st.Frame, st.Body, parent, rule); err != nil {
		return err
	}
	pruneEmpty(e.tree, node)
	return nil
}

// pruneEmpty detaches a container that ended up with no printable content,
// removing the rule-copy wrapper first when it too is empty.
func pruneEmpty(t *cssom.Tree, id cssom.NodeId) {
	n := t.Get(id)
	for i := len(n.Children) - 1; i >= 0; i-- {
		child := n.Children[i]
		if t.Get(child).Kind == cssom.KindStyleRule && t.IsEmpty(child) {
			t.Remove(child)
		}
	}
	if t.IsEmpty(id) {
		t.Remove(id)
	}
}
