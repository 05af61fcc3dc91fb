package cssom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeParentLinks(t *testing.T) {
	tr := NewTree()
	rule := tr.Add(RootID, Node{Kind: KindStyleRule})
	decl := tr.Add(rule, Node{Kind: KindDeclaration, Property: "color", Value: "red"})

	require.Equal(t, rule, tr.Get(decl).Parent)
	require.Equal(t, []NodeId{decl}, tr.Get(rule).Children)
	require.Equal(t, NoNode, tr.Get(RootID).Parent)
}

func TestHasVisibleSiblingAfter(t *testing.T) {
	tr := NewTree()
	a := tr.Add(RootID, Node{Kind: KindStyleRule})
	b := tr.Add(RootID, Node{Kind: KindStyleRule})

	require.True(t, tr.HasVisibleSiblingAfter(a))
	require.False(t, tr.HasVisibleSiblingAfter(b))
	require.False(t, tr.HasVisibleSiblingAfter(RootID))
}

func TestCloneIsShallow(t *testing.T) {
	tr := NewTree()
	media := tr.Add(RootID, Node{Kind: KindMediaRule, Prelude: "screen"})
	tr.Add(media, Node{Kind: KindDeclaration, Property: "x", Value: "1"})

	cp := tr.Clone(media, RootID)
	require.Equal(t, "screen", tr.Get(cp).Prelude)
	require.Empty(t, tr.Get(cp).Children)
	require.Len(t, tr.Get(media).Children, 1)
}

func TestAncestorChain(t *testing.T) {
	tr := NewTree()
	media := tr.Add(RootID, Node{Kind: KindMediaRule})
	rule := tr.Add(media, Node{Kind: KindStyleRule})
	decl := tr.Add(rule, Node{Kind: KindDeclaration})

	require.Equal(t, []NodeId{rule, media}, tr.AncestorChain(decl))
	require.Empty(t, tr.AncestorChain(media))
}

func TestRemoveKeepsArenaSlots(t *testing.T) {
	tr := NewTree()
	a := tr.Add(RootID, Node{Kind: KindStyleRule})
	b := tr.Add(RootID, Node{Kind: KindStyleRule})

	tr.Remove(a)
	require.Equal(t, []NodeId{b}, tr.Get(RootID).Children)
	// The slot survives removal so outstanding ids stay valid.
	require.Equal(t, KindStyleRule, tr.Get(a).Kind)
	require.True(t, tr.IsEmpty(a))
	require.Equal(t, 3, tr.Len())
}
