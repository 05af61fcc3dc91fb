package parser

import (
	stdstrings "strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/source"
)

func parseSheet(t *testing.T, content string) (*ast.Stylesheet, *env.Table) {
	t.Helper()
	reg := source.NewRegistry()
	src := reg.Add("test.scss", "test.scss", content, source.DialectSCSS)
	frames := env.NewTable()
	p, err := New(src, frames)
	require.NoError(t, err)
	sheet, err := p.Parse()
	require.NoError(t, err)
	return sheet, frames
}

func parseErr(t *testing.T, content string) error {
	t.Helper()
	reg := source.NewRegistry()
	src := reg.Add("test.scss", "test.scss", content, source.DialectSCSS)
	p, err := New(src, env.NewTable())
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	return err
}

func TestParseStyleRule(t *testing.T) {
	sheet, _ := parseSheet(t, "a { color: red; }")
	require.Len(t, sheet.Body, 1)
	rule, ok := sheet.Body[0].(*ast.StyleRule)
	require.True(t, ok)
	require.Equal(t, "a ", rule.Selector.Text())
	require.Len(t, rule.Body, 1)
	decl, ok := rule.Body[0].(*ast.Declaration)
	require.True(t, ok)
	require.Equal(t, "color", decl.Property.Text())
}

func TestParseNestedRules(t *testing.T) {
	sheet, _ := parseSheet(t, "a { b { color: red; } }")
	rule := sheet.Body[0].(*ast.StyleRule)
	nested, ok := rule.Body[0].(*ast.StyleRule)
	require.True(t, ok)
	require.Equal(t, "b ", nested.Selector.Text())
}

func TestParseVarDecl(t *testing.T) {
	sheet, frames := parseSheet(t, "$x: 1; $y: 2 !default; $z: 3 !global;")
	v1 := sheet.Body[0].(*ast.VarDecl)
	require.Equal(t, "x", v1.Name)
	require.False(t, v1.Default)
	require.Equal(t, env.Root, v1.Frame)

	v2 := sheet.Body[1].(*ast.VarDecl)
	require.True(t, v2.Default)

	v3 := sheet.Body[2].(*ast.VarDecl)
	require.True(t, v3.Global)

	_, _, found := frames.Lookup(env.Root, "x")
	require.True(t, found)
}

func TestVarAssignmentResolvesOuterSlot(t *testing.T) {
	sheet, _ := parseSheet(t, "$x: 1; a { $x: 2; }")
	outer := sheet.Body[0].(*ast.VarDecl)
	inner := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.VarDecl)
	require.Equal(t, outer.Frame, inner.Frame)
	require.Equal(t, outer.Slot, inner.Slot)
}

func TestParseIfChain(t *testing.T) {
	sheet, _ := parseSheet(t, "@if $a { x: 1 } @else if $b { x: 2 } @else { x: 3 }")
	ifStmt := sheet.Body[0].(*ast.IfStatement)
	require.Len(t, ifStmt.Clauses, 3)
	require.NotNil(t, ifStmt.Clauses[0].Cond)
	require.NotNil(t, ifStmt.Clauses[1].Cond)
	require.Nil(t, ifStmt.Clauses[2].Cond)
}

func TestDanglingElse(t *testing.T) {
	err := parseErr(t, "@else { }")
	require.Contains(t, err.Error(), "@else")
}

func TestParseForStatement(t *testing.T) {
	sheet, _ := parseSheet(t, "@for $i from 1 through 3 { w: $i }")
	f := sheet.Body[0].(*ast.ForStatement)
	require.Equal(t, "i", f.Var)
	require.True(t, f.Inclusive)

	sheet, _ = parseSheet(t, "@for $i from 1 to 3 { w: $i }")
	require.False(t, sheet.Body[0].(*ast.ForStatement).Inclusive)
}

func TestParseEachStatement(t *testing.T) {
	sheet, _ := parseSheet(t, "@each $k, $v in $m { x: $v }")
	e := sheet.Body[0].(*ast.EachStatement)
	require.Equal(t, []string{"k", "v"}, e.Vars)
}

func TestParseMixinAndInclude(t *testing.T) {
	sheet, _ := parseSheet(t, "@mixin m($a, $b: 2) { x: $a } .c { @include m(1); }")
	m := sheet.Body[0].(*ast.MixinDecl)
	require.Equal(t, "m", m.Name)
	require.Len(t, m.Params, 2)
	require.Nil(t, m.Params[0].Default)
	require.NotNil(t, m.Params[1].Default)

	inc := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.IncludeStatement)
	require.Equal(t, "m", inc.Name)
	require.GreaterOrEqual(t, inc.ResolvedFrame, 0)
}

func TestParseIncludeWithContentBlock(t *testing.T) {
	sheet, _ := parseSheet(t, "@mixin m { @content } .a { @include m { color: red } }")
	inc := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.IncludeStatement)
	require.NotNil(t, inc.Content)
	require.Len(t, inc.Content.Body, 1)
}

func TestParseIncludeUsingClause(t *testing.T) {
	sheet, _ := parseSheet(t, "@mixin m { @content(1) } .a { @include m using ($v) { w: $v } }")
	inc := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.IncludeStatement)
	require.NotNil(t, inc.Content)
	require.Len(t, inc.Content.Params, 1)
	require.Equal(t, "v", inc.Content.Params[0].Name)
}

func TestParseFunctionAndCall(t *testing.T) {
	sheet, _ := parseSheet(t, "@function f($x) { @return $x * 2; } .a { w: f(2); }")
	fn := sheet.Body[0].(*ast.FunctionDecl)
	require.Equal(t, "f", fn.Name)
	ret, ok := fn.Body[0].(*ast.ReturnStatement)
	require.True(t, ok)
	require.IsType(t, &ast.BinaryOp{}, ret.Value)

	decl := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.Declaration)
	call, ok := decl.Value.(*ast.FuncCall)
	require.True(t, ok)
	require.Equal(t, "f", call.Name.Text())
	require.GreaterOrEqual(t, call.ResolvedFrame, 0)
}

func TestParseCallArguments(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { w: f(1, $b: 2, $c: 3); }")
	call := sheet.Body[0].(*ast.StyleRule).Body[0].(*ast.Declaration).Value.(*ast.FuncCall)
	require.Len(t, call.Positional, 1)
	require.Equal(t, []string{"b", "c"}, call.KeywordOrder)
}

func TestParseRestArgument(t *testing.T) {
	sheet, _ := parseSheet(t, "@mixin m($args...) { } .a { @include m(...$list); }")
	m := sheet.Body[0].(*ast.MixinDecl)
	require.True(t, m.Params[0].Rest)
	inc := sheet.Body[1].(*ast.StyleRule).Body[0].(*ast.IncludeStatement)
	require.NotNil(t, inc.Args.Rest)
}

func TestParseInterpolationInSelector(t *testing.T) {
	sheet, _ := parseSheet(t, ".#{$name} { color: red; }")
	rule := sheet.Body[0].(*ast.StyleRule)
	require.False(t, rule.Selector.Plain())
	require.Len(t, rule.Selector.Holes, 1)
}

func TestParseExpressionPrecedence(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { w: 1 + 2 * 3; }")
	bin := sheet.Body[0].(*ast.StyleRule).Body[0].(*ast.Declaration).Value.(*ast.BinaryOp)
	require.Equal(t, "+", bin.Op)
	right := bin.Right.(*ast.BinaryOp)
	require.Equal(t, "*", right.Op)
}

func TestParseSlashMarking(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { w: 16px/24px; }")
	bin := sheet.Body[0].(*ast.StyleRule).Body[0].(*ast.Declaration).Value.(*ast.BinaryOp)
	require.Equal(t, "/", bin.Op)
	require.True(t, bin.PossiblySlash)

	sheet, _ = parseSheet(t, ".a { w: $x/2; }")
	bin = sheet.Body[0].(*ast.StyleRule).Body[0].(*ast.Declaration).Value.(*ast.BinaryOp)
	require.False(t, bin.PossiblySlash)
}

func TestParseHexColors(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { c: #abc; d: #aabbcc; }")
	body := sheet.Body[0].(*ast.StyleRule).Body
	require.IsType(t, &ast.ColorLit{}, body[0].(*ast.Declaration).Value)
	require.IsType(t, &ast.ColorLit{}, body[1].(*ast.Declaration).Value)
}

func TestParseMapLiteral(t *testing.T) {
	sheet, _ := parseSheet(t, "$m: (a: 1, b: 2);")
	m := sheet.Body[0].(*ast.VarDecl).Value.(*ast.MapLit)
	require.Len(t, m.Keys, 2)
	require.Len(t, m.Values, 2)
}

func TestParseListForms(t *testing.T) {
	sheet, _ := parseSheet(t, "$a: 1 2 3; $b: 1, 2, 3; $c: [1, 2];")
	space := sheet.Body[0].(*ast.VarDecl).Value.(*ast.ListLit)
	require.False(t, space.Comma)
	comma := sheet.Body[1].(*ast.VarDecl).Value.(*ast.ListLit)
	require.True(t, comma.Comma)
	brack := sheet.Body[2].(*ast.VarDecl).Value.(*ast.ListLit)
	require.True(t, brack.Bracketed)
}

func TestParseImportantAndUnicodeRange(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { w: bold !important; u: U+0025-00FF; }")
	body := sheet.Body[0].(*ast.StyleRule).Body
	list := body[0].(*ast.Declaration).Value.(*ast.ListLit)
	last := list.Items[len(list.Items)-1].(*ast.StringLit)
	require.Equal(t, "!important", last.Text)
	ur := body[1].(*ast.Declaration).Value.(*ast.StringLit)
	require.Equal(t, "U+0025-00FF", ur.Text)
}

func TestParseRawFunctions(t *testing.T) {
	sheet, _ := parseSheet(t, ".a { b: url(http://x/y.png); w: calc(100% - 10px); }")
	body := sheet.Body[0].(*ast.StyleRule).Body
	u := body[0].(*ast.Declaration).Value.(*ast.InterpolatedIdent)
	require.Equal(t, "url(http://x/y.png)", u.Parts.Text())
	c := body[1].(*ast.Declaration).Value.(*ast.InterpolatedIdent)
	require.Equal(t, "calc(100% - 10px)", c.Parts.Text())
}

func TestParseGenericAtRule(t *testing.T) {
	sheet, _ := parseSheet(t, "@font-face { font-family: x; } @charset \"UTF-8\";")
	ar := sheet.Body[0].(*ast.AtRule)
	require.Equal(t, "font-face", ar.Name.Text())
	require.True(t, ar.HasBody)
	ch := sheet.Body[1].(*ast.AtRule)
	require.False(t, ch.HasBody)
}

func TestParseErrorEmptyDeclaration(t *testing.T) {
	err := parseErr(t, ".a { color: }")
	require.Contains(t, err.Error(), "Expected expression.")
}

func TestParseErrorTopLevelExtend(t *testing.T) {
	err := parseErr(t, "@extend .a, .b .c;")
	require.Contains(t, err.Error(), "@extend may only be used within style rules.")
}

func TestParseErrorCSSVariablesDialect(t *testing.T) {
	reg := source.NewRegistry()
	src := reg.Add("test.css", "test.css", "$x: 1;", source.DialectCSS)
	p, err := New(src, env.NewTable())
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	require.Contains(t, err.Error(), "plain CSS")
}

func TestSpanCoverage(t *testing.T) {
	sheet, _ := parseSheet(t, "a { color: red; b { w: 1px + 2px; } }\n.c { x: $y; }")
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, s := range stmts {
			sp := s.SourceSpan()
			require.True(t, sp.Covers(), "span start must not follow end for %T", s)
			switch st := s.(type) {
			case *ast.StyleRule:
				walk(st.Body)
			case *ast.Declaration:
				walk(st.Body)
			}
		}
	}
	walk(sheet.Body)
}

func TestConvertIndented(t *testing.T) {
	src := "a\n  color: red\n\nb\n  c\n    w: 1\n"
	out := ConvertIndented(src)
	require.Contains(t, out, "a {")
	require.Contains(t, out, "color: red;")
	require.Contains(t, out, "b {")
	require.Contains(t, out, "c {")
	// Line structure preserved: statement N stays on line N.
	require.Equal(t, "a {", stdstrings.Split(out, "\n")[0])
	require.Equal(t, "  color: red;", "  "+stdstrings.TrimSpace(stdstrings.Split(out, "\n")[1]))
}

func TestParseSignature(t *testing.T) {
	reg := source.NewRegistry()
	frames := env.NewTable()
	name, params, _, err := ParseSignature(reg, frames, "grid-width($n, $gutter: 10px)")
	require.NoError(t, err)
	require.Equal(t, "grid-width", name)
	require.Len(t, params, 2)
	require.Equal(t, "n", params[0].Name)
	require.NotNil(t, params[1].Default)

	_, _, _, err = ParseSignature(reg, frames, "bad signature (")
	require.Error(t, err)
}
