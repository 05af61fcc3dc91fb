// Package cssom is the flat CSS tree the evaluator builds as it walks the
// AST: every style rule, at-rule, media rule, and declaration the
// compilation produces lives in one arena, addressed by NodeId rather than
// a pointer, so parent links never entangle with Go's ownership/lifetime
// rules the way a raw back-pointer tree would in a systems language.
package cssom

import (
	"github.com/sassgo/sass/selector"
	"github.com/sassgo/sass/source"
)

// NodeId indexes into a Tree's node arena. NoNode (-1) means "no node"
// (used for the synthetic root's parent); the zero value is RootID.
type NodeId int

const NoNode NodeId = -1

// Kind tags which concrete shape a Node holds.
type Kind int

const (
	KindRoot Kind = iota
	KindStyleRule
	KindAtRule
	KindMediaRule
	KindSupportsRule
	KindDeclaration
	KindComment
	// KindImportTrace wraps the statements a dynamic @import produced, for
	// error context only: it is transparent to hoisting walks and emits
	// nothing of its own.
	KindImportTrace
)

// Node is one entry in the flat tree. Only the fields relevant to Kind are
// populated; Children holds this node's direct children in emission order.
type Node struct {
	Kind     Kind
	Parent   NodeId
	Children []NodeId
	Span     source.Span

	// KindStyleRule; RawSelector carries an unparsed prelude (keyframe
	// selectors like `from`/`50%` that bypass the selector engine).
	Selector    selector.List
	RawSelector string

	// KindAtRule / KindMediaRule / KindSupportsRule / KindImportTrace
	AtRuleName string // empty for media/supports; import path for traces
	Prelude    string

	// KindDeclaration
	Property string
	Value    string

	// KindComment
	CommentText string
}

// Tree is the node arena plus the root NodeId (always 0).
type Tree struct {
	nodes []Node
}

const RootID NodeId = 0

func NewTree() *Tree {
	return &Tree{nodes: []Node{{Kind: KindRoot, Parent: NoNode}}}
}

// Add appends n as a child of parent and returns its id.
func (t *Tree) Add(parent NodeId, n Node) NodeId {
	n.Parent = parent
	id := NodeId(len(t.nodes))
	t.nodes = append(t.nodes, n)
	if parent != NoNode {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id
}

func (t *Tree) Get(id NodeId) *Node { return &t.nodes[id] }

// Len reports the arena size; iterating ids 0..Len()-1 visits every node
// ever added, reachable or not (the extend finalize pass uses this to
// rewrite every style rule in one sweep).
func (t *Tree) Len() int { return len(t.nodes) }

// HasVisibleSiblingAfter reports whether id has a sibling following it in
// its parent's child list, the check the hoisting logic uses to decide
// whether an intervening at-rule can be appended to in place or must be
// copied to preserve emission order.
func (t *Tree) HasVisibleSiblingAfter(id NodeId) bool {
	n := t.Get(id)
	if n.Parent == NoNode {
		return false
	}
	siblings := t.Get(n.Parent).Children
	for i, s := range siblings {
		if s == id {
			return i < len(siblings)-1
		}
	}
	return false
}

// Clone makes a shallow copy of node id (same Kind/fields, no children),
// attached under newParent -- the "copy" step hoisting uses to duplicate
// an intervening at-rule at a new position instead of reusing the
// original.
func (t *Tree) Clone(id NodeId, newParent NodeId) NodeId {
	n := *t.Get(id)
	n.Children = nil
	return t.Add(newParent, n)
}

// AncestorChain walks from id up to (excluding) the root, returning the
// chain innermost-to-outermost.
func (t *Tree) AncestorChain(id NodeId) []NodeId {
	var out []NodeId
	for cur := t.Get(id).Parent; cur != NoNode && cur != RootID; cur = t.Get(cur).Parent {
		out = append(out, cur)
	}
	return out
}

// IsEmpty reports whether id has no children -- used to prune rules that
// end up producing no declarations (e.g. an @media block whose merged
// query set went empty).
func (t *Tree) IsEmpty(id NodeId) bool {
	return len(t.Get(id).Children) == 0
}

// Remove detaches id from its parent's child list without touching the
// arena slot, so existing NodeId references elsewhere remain valid
// indices (just unreachable from the root).
func (t *Tree) Remove(id NodeId) {
	n := t.Get(id)
	if n.Parent == NoNode {
		return
	}
	siblings := &t.Get(n.Parent).Children
	for i, s := range *siblings {
		if s == id {
			*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
			return
		}
	}
}
