package eval

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/cssom"
)

// kindName maps a CSS-tree node to the name an `@at-root (with:/without:)`
// query matches against.
func kindName(n *cssom.Node) string {
	switch n.Kind {
	case cssom.KindStyleRule:
		return "rule"
	case cssom.KindMediaRule:
		return "media"
	case cssom.KindSupportsRule:
		return "supports"
	case cssom.KindAtRule:
		return n.AtRuleName
	default:
		return ""
	}
}

// queryExcludes decides whether an enclosing node is left behind when
// re-rooting: with no query, only style rules are excluded; `without:`
// excludes the named kinds (or everything for `all`); `with:` keeps only
// the named kinds.
func queryExcludes(q *ast.AtRootQuery, name string) bool {
	if name == "" {
		return false
	}
	if q == nil {
		return name == "rule"
	}
	listed := false
	all := false
	for _, n := range q.Names {
		if strings.EqualFold(n, "all") {
			all = true
		}
		if strings.EqualFold(n, name) {
			listed = true
		}
	}
	if q.Exclude {
		return listed || all
	}
	return !listed && !all
}

func (e *Evaluator) evalAtRoot(st *ast.AtRootStatement) error {
	// Walk the parent chain innermost-to-outermost, keeping the ancestors
	// the query includes.
	var included []cssom.NodeId
	for id := e.parent; id != cssom.RootID; id = e.tree.Get(id).Parent {
		n := e.tree.Get(id)
		if n.Kind == cssom.KindImportTrace {
			continue
		}
		if !queryExcludes(st.Query, kindName(n)) {
			included = append(included, id)
		}
	}

	// Re-root: copy the included intermediaries outer-to-inner as a fresh
	// chain under the root.
	newParent := cssom.RootID
	newRule := cssom.NoNode
	for i := len(included) - 1; i >= 0; i-- {
		copyID := e.tree.Clone(included[i], newParent)
		newParent = copyID
		if e.tree.Get(copyID).Kind == cssom.KindStyleRule {
			newRule = copyID
		}
	}

	excludesRule := queryExcludes(st.Query, "rule")
	excludesMedia := queryExcludes(st.Query, "media")

	prevFlags, prevSel, prevMedia := e.flags, e.selStack, e.media
	e.flags.AtRootExcludingStyleRule = excludesRule
	if excludesRule {
		e.selStack = nil
	}
	if excludesMedia {
		e.media = nil
	}
	if queryExcludes(st.Query, "keyframes") {
		e.flags.InKeyframes = false
	}
	err := e.evalRuleBody(st.Frame, st.Body, newParent, newRule)
	e.flags, e.selStack, e.media = prevFlags, prevSel, prevMedia
	if err != nil {
		return err
	}
	pruneAtRootCopies(e.tree, newParent)
	return nil
}

// pruneAtRootCopies walks from the innermost copied node upward, removing
// copies that received no content.
func pruneAtRootCopies(t *cssom.Tree, innermost cssom.NodeId) {
	for id := innermost; id != cssom.RootID; {
		parent := t.Get(id).Parent
		if t.IsEmpty(id) {
			t.Remove(id)
		}
		id = parent
	}
}

func (e *Evaluator) evalAtRule(st *ast.AtRule) error {
	name, err := e.evalInterpolation(st.Name)
	if err != nil {
		return err
	}
	var prelude string
	if st.Prelude != nil {
		p, err := e.evalInterpolation(st.Prelude)
		if err != nil {
			return err
		}
		prelude = strings.TrimSpace(p)
	}

	if !st.HasBody {
		e.tree.Add(e.parent, cssom.Node{Kind: cssom.KindAtRule, AtRuleName: name, Prelude: prelude, Span: st.Span})
		return nil
	}

	isKeyframes := strings.Contains(name, "keyframes")
	target := e.hoistTarget()
	node := e.tree.Add(target, cssom.Node{Kind: cssom.KindAtRule, AtRuleName: name, Prelude: prelude, Span: st.Span})

	prevFlags := e.flags
	if isKeyframes {
		e.flags.InKeyframes = true
	} else {
		e.flags.InUnknownAtRule = true
	}

	parent, rule := node, e.styleRule
	if isKeyframes {
		// Keyframe blocks never wrap the enclosing rule; their children are
		// keyframe selectors.
		rule = cssom.NoNode
	} else if e.styleRule != cssom.NoNode {
		copyID := e.tree.Add(node, cssom.Node{
			Kind:     cssom.KindStyleRule,
			Selector: e.tree.Get(e.styleRule).Selector,
			Span:     e.tree.Get(e.styleRule).Span,
		})
		parent, rule = copyID, copyID
	}
	err = e.evalRuleBody(st.Frame, st.Body, parent, rule)
	e.flags = prevFlags
	if err != nil {
		return err
	}
	pruneEmptyWrapper(e.tree, node)
	return nil
}

// pruneEmptyWrapper removes only an empty rule-copy wrapper; an at-rule
// with an empty body (like `@font-face {}`) still prints, unlike media.
func pruneEmptyWrapper(t *cssom.Tree, id cssom.NodeId) {
	n := t.Get(id)
	for i := len(n.Children) - 1; i >= 0; i-- {
		child := n.Children[i]
		if t.Get(child).Kind == cssom.KindStyleRule && t.IsEmpty(child) {
			t.Remove(child)
		}
	}
}
