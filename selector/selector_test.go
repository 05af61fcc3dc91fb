package selector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) List {
	t.Helper()
	l, err := Parse(text)
	require.NoError(t, err, "parsing %q", text)
	return l
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"a",
		"a b",
		".foo",
		"#bar",
		"a.btn.active",
		"a > b",
		"a + b",
		"a ~ b",
		"a, b.c, d > e",
		"*",
		"%placeholder",
		"a:hover",
		"a::before",
		"[href]",
	}
	for _, tc := range cases {
		require.Equal(t, tc, mustParse(t, tc).String())
	}
}

func TestParsePseudoWithSelectorArgs(t *testing.T) {
	l := mustParse(t, ":not(.a, .b)")
	require.Len(t, l.Complex, 1)
	s := l.Complex[0].Compounds[0].Simples[0]
	require.Equal(t, KindPseudoClass, s.Kind)
	require.Equal(t, "not", s.Name)
	require.Len(t, s.Args, 2)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []string{"", "a >", ","} {
		_, err := Parse(tc)
		require.Error(t, err, "parsing %q", tc)
	}
}

func TestResolveParentImplicit(t *testing.T) {
	parent := mustParse(t, ".a, .b")
	child := mustParse(t, ".x, .y")
	got := ResolveParent(child, parent)
	require.Equal(t, ".a .x, .b .x, .a .y, .b .y", got.String())
}

// Substituting a parent list P into a child with a single leading `&`
// produces exactly one complex selector per (p, c) pair, formed by
// concatenating p with c's tail.
func TestResolveParentExplicit(t *testing.T) {
	parent := mustParse(t, ".a, .b")
	child := mustParse(t, "& .x")
	got := ResolveParent(child, parent)
	require.Equal(t, ".a .x, .b .x", got.String())
	require.Len(t, got.Complex, len(parent.Complex)*len(child.Complex))
}

func TestResolveParentCompound(t *testing.T) {
	parent := mustParse(t, ".btn")
	got := ResolveParent(mustParse(t, "&.active"), parent)
	require.Equal(t, ".btn.active", got.String())

	got = ResolveParent(mustParse(t, "&:hover"), parent)
	require.Equal(t, ".btn:hover", got.String())
}

func TestResolveParentSuffix(t *testing.T) {
	parent := mustParse(t, ".btn")
	got := ResolveParent(mustParse(t, "&-primary"), parent)
	require.Equal(t, ".btn-primary", got.String())
}

func TestResolveParentLeadingCombinator(t *testing.T) {
	parent := mustParse(t, ".a")
	got := ResolveParent(mustParse(t, "> .x"), parent)
	require.Equal(t, ".a > .x", got.String())
}

func TestHasExplicitParentRef(t *testing.T) {
	require.True(t, HasExplicitParentRef(mustParse(t, "&.x")))
	require.True(t, HasExplicitParentRef(mustParse(t, "a &")))
	require.False(t, HasExplicitParentRef(mustParse(t, "a b")))
}

func TestExtendBasic(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".a", mustParse(t, ".b"), false, "")

	got, err := exts.Apply(mustParse(t, ".a"), "")
	require.NoError(t, err)
	require.Equal(t, ".a, .b", got.String())
}

func TestExtendCompoundMerge(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".c", mustParse(t, ".a.b"), false, "")

	got, err := exts.Apply(mustParse(t, ".c.d"), "")
	require.NoError(t, err)
	require.Equal(t, ".c.d, .a.b.d", got.String())
}

// A unification variant whose merged compound holds conflicting simples
// (two different type selectors) is dropped rather than emitted.
func TestExtendConflictingTypesDropped(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".x", mustParse(t, "b"), false, "")

	got, err := exts.Apply(mustParse(t, "a.x"), "")
	require.NoError(t, err)
	require.Equal(t, "a.x", got.String())
}

func TestExtendConflictingIDsDropped(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".x", mustParse(t, "#one"), false, "")

	got, err := exts.Apply(mustParse(t, "#two.x"), "")
	require.NoError(t, err)
	require.Equal(t, "#two.x", got.String())
}

func TestExtendUniversalSubsumedByType(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".x", mustParse(t, "a"), false, "")

	got, err := exts.Apply(mustParse(t, "*.x"), "")
	require.NoError(t, err)
	require.Equal(t, "*.x, a", got.String())
}

func TestExtendSharedSimpleDeduplicated(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".x", mustParse(t, "a.y"), false, "")

	got, err := exts.Apply(mustParse(t, "a.x"), "")
	require.NoError(t, err)
	require.Equal(t, "a.x, a.y", got.String())
}

func TestExtendTransitive(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".a", mustParse(t, ".b"), false, "")
	exts.Register(".b", mustParse(t, ".c"), false, "")

	got, err := exts.Apply(mustParse(t, ".a"), "")
	require.NoError(t, err)
	require.Equal(t, ".a, .b, .c", got.String())
}

// Applying the extend algorithm twice yields the same output as once.
func TestExtendIdempotent(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".a", mustParse(t, ".b .c"), false, "")

	once, err := exts.Apply(mustParse(t, "x .a"), "")
	require.NoError(t, err)
	twice, err := exts.Apply(once, "")
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(once.String(), twice.String()))
}

func TestExtendMediaMismatch(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".a", mustParse(t, ".b"), false, "screen")

	_, err := exts.Apply(mustParse(t, ".a"), "")
	require.Error(t, err)

	// !optional skips instead of raising.
	opt := NewExtensions()
	opt.Register(".a", mustParse(t, ".b"), true, "screen")
	got, err := opt.Apply(mustParse(t, ".a"), "")
	require.NoError(t, err)
	require.Equal(t, ".a", got.String())
}

func TestExtendUnmatchedRequired(t *testing.T) {
	exts := NewExtensions()
	exts.Register(".missing", mustParse(t, ".b"), false, "")
	exts.Register(".opt", mustParse(t, ".b"), true, "")

	_, err := exts.Apply(mustParse(t, ".other"), "")
	require.NoError(t, err)
	require.Equal(t, []string{".missing"}, exts.UnmatchedRequired())
}

func TestStripPlaceholders(t *testing.T) {
	l := mustParse(t, "%a, .b")
	got := StripPlaceholders(l)
	require.Equal(t, ".b", got.String())

	all := StripPlaceholders(mustParse(t, "%a"))
	require.Empty(t, all.Complex)
}
