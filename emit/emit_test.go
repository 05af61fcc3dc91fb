package emit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/selector"
)

func buildTree(t *testing.T) *cssom.Tree {
	t.Helper()
	tr := cssom.NewTree()
	sel, err := selector.Parse(".a")
	require.NoError(t, err)
	rule := tr.Add(cssom.RootID, cssom.Node{Kind: cssom.KindStyleRule, Selector: sel})
	tr.Add(rule, cssom.Node{Kind: cssom.KindDeclaration, Property: "color", Value: "#ff0000"})
	tr.Add(rule, cssom.Node{Kind: cssom.KindDeclaration, Property: "width", Value: "0.25px"})
	return tr
}

func TestEmitExpanded(t *testing.T) {
	out := New(Expanded).Emit(buildTree(t))
	require.Equal(t, ".a {\n  color: #ff0000;\n  width: 0.25px;\n}\n", out.CSS)
}

func TestEmitCompressed(t *testing.T) {
	out := New(Compressed).Emit(buildTree(t))
	require.Equal(t, ".a{color:red;width:.25px}\n", out.CSS)
}

func TestNestedAliasesExpanded(t *testing.T) {
	require.Equal(t, New(Expanded).Emit(buildTree(t)).CSS, New(Nested).Emit(buildTree(t)).CSS)
}

func TestEmptyRuleSkipped(t *testing.T) {
	tr := cssom.NewTree()
	sel, err := selector.Parse(".empty")
	require.NoError(t, err)
	tr.Add(cssom.RootID, cssom.Node{Kind: cssom.KindStyleRule, Selector: sel})
	require.Equal(t, "", New(Expanded).Emit(tr).CSS)
}

func TestImportTraceTransparent(t *testing.T) {
	tr := cssom.NewTree()
	trace := tr.Add(cssom.RootID, cssom.Node{Kind: cssom.KindImportTrace, AtRuleName: "lib.scss"})
	sel, err := selector.Parse(".lib")
	require.NoError(t, err)
	rule := tr.Add(trace, cssom.Node{Kind: cssom.KindStyleRule, Selector: sel})
	tr.Add(rule, cssom.Node{Kind: cssom.KindDeclaration, Property: "x", Value: "1"})

	out := New(Expanded).Emit(tr)
	require.Equal(t, ".lib {\n  x: 1;\n}\n", out.CSS)
}

func TestMappingsRecorded(t *testing.T) {
	out := New(Expanded).Emit(buildTree(t))
	// One mapping for the rule plus one per declaration.
	require.Len(t, out.Mappings, 3)
	require.Equal(t, 0, out.Mappings[0].Line)
	require.Equal(t, 1, out.Mappings[1].Line)
	require.Equal(t, 2, out.Mappings[1].Column)
}

func TestParseStyle(t *testing.T) {
	require.Equal(t, Compressed, ParseStyle("compressed"))
	require.Equal(t, Nested, ParseStyle("nested"))
	require.Equal(t, Expanded, ParseStyle("expanded"))
	require.Equal(t, Expanded, ParseStyle(""))
}
