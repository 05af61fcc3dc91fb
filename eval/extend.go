package eval

import (
	"strings"

	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/selector"
	"github.com/sassgo/sass/source"
)

// finalizeExtends applies every registered @extend across the whole CSS
// tree in one sweep, then strips selectors still carrying `%placeholder`
// simples (removing rules whose selector list empties out), and finally
// raises for any non-optional extend whose target never matched.
func (e *Evaluator) finalizeExtends(sp source.Span) error {
	hasPlaceholders := false
	for id := 0; id < e.tree.Len(); id++ {
		n := e.tree.Get(cssom.NodeId(id))
		if n.Kind != cssom.KindStyleRule || n.RawSelector != "" {
			continue
		}
		for _, cx := range n.Selector.Complex {
			if selector.HasPlaceholder(cx) {
				hasPlaceholders = true
			}
		}
		if !e.exts.Empty() {
			ctx := nodeMediaContext(e.tree, cssom.NodeId(id))
			applied, err := e.exts.Apply(n.Selector, ctx)
			if err != nil {
				return e.wrap(n.Span, err)
			}
			n.Selector = applied
		}
	}

	if hasPlaceholders || !e.exts.Empty() {
		for id := 0; id < e.tree.Len(); id++ {
			n := e.tree.Get(cssom.NodeId(id))
			if n.Kind != cssom.KindStyleRule || n.RawSelector != "" {
				continue
			}
			stripped := selector.StripPlaceholders(n.Selector)
			if len(stripped.Complex) == 0 && len(n.Selector.Complex) > 0 {
				e.tree.Remove(cssom.NodeId(id))
				continue
			}
			n.Selector = stripped
		}
	}

	if unmatched := e.exts.UnmatchedRequired(); len(unmatched) > 0 {
		return e.errorf(sp, "%q failed to @extend: the selector was not found. Use \"@extend %s !optional\" if the extend should be able to fail.", unmatched[0], unmatched[0])
	}
	return nil
}

// nodeMediaContext renders the media queries enclosing a node, the same
// canonical string extension registration captured.
func nodeMediaContext(t *cssom.Tree, id cssom.NodeId) string {
	var preludes []string
	for cur := t.Get(id).Parent; cur != cssom.NoNode && cur != cssom.RootID; cur = t.Get(cur).Parent {
		n := t.Get(cur)
		if n.Kind == cssom.KindMediaRule {
			preludes = append([]string{n.Prelude}, preludes...)
		}
	}
	return strings.Join(preludes, ", ")
}
