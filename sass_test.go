package sass

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/emit"
	"github.com/sassgo/sass/importer"
	"github.com/sassgo/sass/logger"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func compile(t *testing.T, scss string) string {
	t.Helper()
	result, err := Compile(Import{Path: "input.scss", Content: scss}, Options{})
	require.NoError(t, err)
	return result.CSS
}

func compileErr(t *testing.T, scss string) error {
	t.Helper()
	_, err := Compile(Import{Path: "input.scss", Content: scss}, Options{})
	require.Error(t, err)
	return err
}

func TestNesting(t *testing.T) {
	require.Equal(t, "a b {\n  color: red;\n}\n", compile(t, "a { b { color: red; } }"))
}

func TestVariableAndDefault(t *testing.T) {
	require.Equal(t, ".a {\n  w: 1;\n}\n", compile(t, "$x: 1; $x: 2 !default; .a { w: $x }"))
}

func TestMixinWithContent(t *testing.T) {
	css := compile(t, "@mixin m { .x { @content } } .a { @include m { color: red } }")
	require.Equal(t, ".a .x {\n  color: red;\n}\n", css)
}

func TestEachWithMap(t *testing.T) {
	css := compile(t, "$m: (a: 1, b: 2); @each $k,$v in $m { .#{$k} { v: $v } }")
	require.Equal(t, ".a {\n  v: 1;\n}\n\n.b {\n  v: 2;\n}\n", css)
}

func TestExtend(t *testing.T) {
	require.Equal(t, ".a, .b {\n  c: 1;\n}\n", compile(t, ".a { c: 1 } .b { @extend .a }"))
}

func TestUnitDivision(t *testing.T) {
	require.Equal(t, ".a {\n  w: 15px;\n}\n", compile(t, ".a { w: (10px / 2px) * 3px }"))
}

func TestSlashPreservation(t *testing.T) {
	require.Equal(t, ".a {\n  font: 16px/24px;\n}\n", compile(t, ".a { font: 16px/24px }"))
}

func TestParseErrorEmptyDeclaration(t *testing.T) {
	err := compileErr(t, ".a { color: }")
	require.Contains(t, err.Error(), "Expected expression.")
}

func TestParseErrorTopLevelExtend(t *testing.T) {
	err := compileErr(t, "@extend .a, .b .c;")
	require.Contains(t, err.Error(), "@extend may only be used within style rules.")
}

func TestDividedByZero(t *testing.T) {
	err := compileErr(t, "$x: 1 / 0; .a { w: 1 / 0 }")
	require.Contains(t, err.Error(), "divided by 0")
}

func TestIfElseChain(t *testing.T) {
	css := compile(t, "$v: 2; .a { @if $v == 1 { x: a } @else if $v == 2 { x: b } @else { x: c } }")
	require.Equal(t, ".a {\n  x: b;\n}\n", css)
}

func TestForLoop(t *testing.T) {
	css := compile(t, "@for $i from 1 through 3 { .w#{$i} { width: $i * 10px } }")
	require.Equal(t, ".w1 {\n  width: 10px;\n}\n\n.w2 {\n  width: 20px;\n}\n\n.w3 {\n  width: 30px;\n}\n", css)
}

func TestForLoopExclusive(t *testing.T) {
	css := compile(t, "@for $i from 1 to 3 { .w#{$i} { w: $i } }")
	require.Equal(t, ".w1 {\n  w: 1;\n}\n\n.w2 {\n  w: 2;\n}\n", css)
}

func TestWhileLoop(t *testing.T) {
	css := compile(t, "$i: 1; @while $i <= 2 { .x#{$i} { w: $i } $i: $i + 1; }")
	require.Equal(t, ".x1 {\n  w: 1;\n}\n\n.x2 {\n  w: 2;\n}\n", css)
}

func TestFunctionDeclarationAndCall(t *testing.T) {
	css := compile(t, "@function double($n) { @return $n * 2; } .a { w: double(4px) }")
	require.Equal(t, ".a {\n  w: 8px;\n}\n", css)
}

func TestFunctionWithoutReturnFails(t *testing.T) {
	err := compileErr(t, "@function f() { $x: 1; } .a { w: f() }")
	require.Contains(t, err.Error(), "without @return")
}

func TestReturnOutsideFunctionFails(t *testing.T) {
	err := compileErr(t, ".a { @return 1; }")
	require.Contains(t, err.Error(), "@return may only be used within a function.")
}

func TestUndefinedVariable(t *testing.T) {
	err := compileErr(t, ".a { w: $missing }")
	require.Contains(t, err.Error(), "Undefined variable: $missing.")
}

func TestUndefinedMixin(t *testing.T) {
	err := compileErr(t, ".a { @include nope; }")
	require.Contains(t, err.Error(), "Undefined mixin")
}

func TestParentSelectorForms(t *testing.T) {
	require.Equal(t, ".btn:hover {\n  c: 1;\n}\n", compile(t, ".btn { &:hover { c: 1 } }"))
	require.Equal(t, ".btn-primary {\n  c: 1;\n}\n", compile(t, ".btn { &-primary { c: 1 } }"))
	require.Equal(t, ".a > .x {\n  c: 1;\n}\n", compile(t, ".a { > .x { c: 1 } }"))
}

func TestTopLevelParentSelectorFails(t *testing.T) {
	err := compileErr(t, "& { c: 1 }")
	require.Contains(t, err.Error(), "Top-level selectors may not contain the parent selector.")
}

func TestMediaNestedInRule(t *testing.T) {
	css := compile(t, ".a { @media screen { color: red } }")
	require.Equal(t, "@media screen {\n  .a {\n    color: red;\n  }\n}\n", css)
}

func TestMediaMerging(t *testing.T) {
	css := compile(t, "@media screen { @media (min-width: 100px) { .a { c: 1 } } }")
	require.Equal(t, "@media screen and (min-width: 100px) {\n  .a {\n    c: 1;\n  }\n}\n", css)
}

func TestMediaConflictDropsBlock(t *testing.T) {
	css := compile(t, "@media screen { @media print { .a { c: 1 } } }")
	require.Equal(t, "", css)
}

func TestAtRootEscapesRule(t *testing.T) {
	css := compile(t, ".parent { @at-root .child { c: 1 } }")
	require.Equal(t, ".child {\n  c: 1;\n}\n", css)
}

func TestAtRootWithMedia(t *testing.T) {
	css := compile(t, "@media screen { .a { @at-root (without: media) { .b { c: 1 } } } }")
	require.Equal(t, ".a .b {\n  c: 1;\n}\n", css)
}

func TestKeyframes(t *testing.T) {
	css := compile(t, "@keyframes spin { from { transform: rotate(0deg) } 50% { opacity: 0.5 } }")
	require.Equal(t, "@keyframes spin {\n  from {\n    transform: rotate(0deg);\n  }\n  50% {\n    opacity: 0.5;\n  }\n}\n", css)
}

func TestPlaceholderExtend(t *testing.T) {
	css := compile(t, "%base { c: 1 } .a { @extend %base }")
	require.Equal(t, ".a {\n  c: 1;\n}\n", css)
}

func TestUnusedPlaceholderElided(t *testing.T) {
	require.Equal(t, "", compile(t, "%unused { c: 1 }"))
}

func TestExtendMissingTargetFails(t *testing.T) {
	err := compileErr(t, ".b { @extend .missing }")
	require.Contains(t, err.Error(), "failed to @extend")
}

func TestExtendOptionalMissingTargetOK(t *testing.T) {
	require.Equal(t, ".b {\n  c: 1;\n}\n", compile(t, ".b { c: 1; @extend .missing !optional }"))
}

func TestExtendComplexTargetFails(t *testing.T) {
	err := compileErr(t, ".a { c: 1 } .b { @extend .a .c }")
	require.Contains(t, err.Error(), "complex selectors may not be extended")
}

// Extension output order is insertion-driven: generated selectors append
// after the originals in registration order.
func TestExtendOrdering(t *testing.T) {
	css := compile(t, ".t { c: 1 } .a { @extend .t } .b { @extend .t }")
	require.Equal(t, ".t, .a, .b {\n  c: 1;\n}\n", css)
}

func TestInterpolationInValues(t *testing.T) {
	css := compile(t, "$n: 5; .a { content: \"n is #{$n}\" }")
	require.Equal(t, ".a {\n  content: \"n is 5\";\n}\n", css)
}

func TestNullDeclarationDropped(t *testing.T) {
	require.Equal(t, ".a {\n  b: 1;\n}\n", compile(t, ".a { x: null; b: 1 }"))
}

func TestNestedProperties(t *testing.T) {
	css := compile(t, ".a { font: { family: serif; size: 10px; } }")
	require.Equal(t, ".a {\n  font-family: serif;\n  font-size: 10px;\n}\n", css)
}

func TestLoudCommentSurvives(t *testing.T) {
	css := compile(t, "/* banner */\n.a { c: 1 }")
	require.Equal(t, "/* banner */\n\n.a {\n  c: 1;\n}\n", css)
}

func TestSilentCommentDropped(t *testing.T) {
	require.Equal(t, ".a {\n  c: 1;\n}\n", compile(t, "// gone\n.a { c: 1 }"))
}

func TestBuiltinFunctions(t *testing.T) {
	cases := map[string]string{
		".a { c: lighten(#800000, 20%) }":      "c: #e60000;",
		".a { c: rgb(255, 0, 0) }":             "c: red;",
		".a { c: rgba(255, 0, 0, 0.5) }":       "c: rgba(255, 0, 0, 0.5);",
		".a { w: percentage(0.5) }":            "w: 50%;",
		".a { w: round(1.6px) }":               "w: 2px;",
		".a { w: max(1px, 3px, 2px) }":         "w: 3px;",
		".a { w: length(1 2 3) }":              "w: 3;",
		".a { w: nth(10px 20px, 2) }":          "w: 20px;",
		".a { w: index(a b c, b) }":            "w: 2;",
		".a { c: to-upper-case(\"abc\") }":     "c: \"ABC\";",
		".a { c: str-length(\"hello\") }":      "c: 5;",
		".a { c: type-of(1px) }":               "c: number;",
		".a { c: unit(1px) }":                  "c: \"px\";",
		".a { c: unitless(1) }":                "c: true;",
		".a { c: if(1 == 1, yes, no) }":        "c: yes;",
		"$m: (x: 1); .a { c: map-get($m, x) }": "c: 1;",
	}
	for input, want := range cases {
		css := compile(t, input)
		require.Contains(t, css, want, "input %s", input)
	}
}

func TestPlainCSSFunctionPassthrough(t *testing.T) {
	css := compile(t, ".a { filter: blur(5px); b: var(--x) }")
	require.Contains(t, css, "filter: blur(5px);")
	require.Contains(t, css, "b: var(--x);")
}

func TestUrlAndCalcPassThrough(t *testing.T) {
	css := compile(t, ".a { b: url(img/x.png); w: calc(100% - 10px) }")
	require.Contains(t, css, "b: url(img/x.png);")
	require.Contains(t, css, "w: calc(100% - 10px);")
}

func TestWarnAndDebugBuffered(t *testing.T) {
	result, err := Compile(Import{Path: "in.scss", Content: "@warn \"careful\"; @debug 1 + 1; .a { c: 1 }"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Log, 2)
	require.Equal(t, logger.KindWarning, result.Log[0].Kind)
	require.Equal(t, "careful", result.Log[0].Message)
	require.Equal(t, logger.KindDebug, result.Log[1].Kind)
	require.Equal(t, "2", result.Log[1].Message)
}

func TestErrorDirective(t *testing.T) {
	err := compileErr(t, "@error \"boom #{1 + 1}\";")
	require.Contains(t, err.Error(), "boom 2")
}

func TestCompressedStyle(t *testing.T) {
	result, err := Compile(
		Import{Path: "in.scss", Content: ".a { color: #ff0000; width: 0.5px; } .b { c: 1 }"},
		Options{Style: emit.Compressed},
	)
	require.NoError(t, err)
	require.Equal(t, ".a{color:red;width:.5px}.b{c:1}\n", result.CSS)
}

func TestPrecisionOption(t *testing.T) {
	result, err := Compile(Import{Path: "in.scss", Content: ".a { w: (1 / 3) }"}, Options{Precision: 3})
	require.NoError(t, err)
	require.Equal(t, ".a {\n  w: 0.333;\n}\n", result.CSS)
	value.Precision = 10
}

func TestStaticImportPreserved(t *testing.T) {
	css := compile(t, `@import "foo.css"; @import url(bar.css); .a { c: 1 }`)
	require.Contains(t, css, `@import "foo.css";`)
	require.Contains(t, css, "@import url(bar.css);")
}

func TestDynamicImport(t *testing.T) {
	fsys := fstest.MapFS{
		"main.scss":  {Data: []byte(`@import "vars"; .a { c: $shared }`)},
		"_vars.scss": {Data: []byte("$shared: 42;")},
	}
	result, err := Compile(Import{Path: "main.scss"}, Options{FS: fsys})
	require.NoError(t, err)
	require.Equal(t, ".a {\n  c: 42;\n}\n", result.CSS)
}

func TestImportCycleFails(t *testing.T) {
	fsys := fstest.MapFS{
		"a.scss": {Data: []byte(`@import "b";`)},
		"b.scss": {Data: []byte(`@import "a";`)},
	}
	_, err := Compile(Import{Path: "a.scss"}, Options{FS: fsys})
	require.Error(t, err)
	require.Contains(t, err.Error(), "@import loop")
}

func TestImportNotFound(t *testing.T) {
	_, err := Compile(Import{Path: "in.scss", Content: `@import "ghost";`}, Options{FS: fstest.MapFS{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "File to import not found")
}

// Given importers [A, B] both able to handle "foo", A wins.
func TestImporterPriority(t *testing.T) {
	a := importer.Func(func(importPath, parentPath string) ([]importer.Entry, error) {
		return []importer.Entry{{ImportPath: importPath, AbsPath: "a.scss", Contents: ".from-a { c: 1 }"}}, nil
	})
	b := importer.Func(func(importPath, parentPath string) ([]importer.Entry, error) {
		return []importer.Entry{{ImportPath: importPath, AbsPath: "b.scss", Contents: ".from-b { c: 1 }"}}, nil
	})
	result, err := Compile(
		Import{Path: "in.scss", Content: `@import "foo";`},
		Options{Importers: []importer.Importer{a, b}},
	)
	require.NoError(t, err)
	require.Contains(t, result.CSS, ".from-a")
	require.NotContains(t, result.CSS, ".from-b")
}

// Multiple entries returned for one URL concatenate their statements.
func TestImporterMultipleEntries(t *testing.T) {
	multi := importer.Func(func(importPath, parentPath string) ([]importer.Entry, error) {
		return []importer.Entry{
			{ImportPath: importPath, AbsPath: "one.scss", Contents: ".one { c: 1 }"},
			{ImportPath: importPath, AbsPath: "two.scss", Contents: ".two { c: 2 }"},
		}, nil
	})
	result, err := Compile(
		Import{Path: "in.scss", Content: `@import "multi";`},
		Options{Importers: []importer.Importer{multi}},
	)
	require.NoError(t, err)
	require.Contains(t, result.CSS, ".one")
	require.Contains(t, result.CSS, ".two")
}

func TestCustomFunction(t *testing.T) {
	fn := Function{
		Signature: "grid-width($n, $gutter: 10px)",
		Fn: func(args []value.Value) (value.Value, error) {
			n := args[0].(value.Number)
			gutter := args[1].(value.Number)
			w, err := value.NewNumber(100, "px").Mul(n).Add(gutter)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	}
	result, err := Compile(
		Import{Path: "in.scss", Content: ".a { width: grid-width(2) }"},
		Options{Functions: []Function{fn}},
	)
	require.NoError(t, err)
	require.Equal(t, ".a {\n  width: 210px;\n}\n", result.CSS)
}

func TestCustomFunctionError(t *testing.T) {
	fn := Function{
		Signature: "explode()",
		Fn: func(args []value.Value) (value.Value, error) {
			return nil, fmt.Errorf("boom")
		},
	}
	_, err := Compile(Import{Path: "in.scss", Content: ".a { w: explode() }"}, Options{Functions: []Function{fn}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestCustomHeaders(t *testing.T) {
	result, err := Compile(
		Import{Path: "in.scss", Content: ".a { c: $injected }"},
		Options{Headers: []string{"$injected: 7;"}},
	)
	require.NoError(t, err)
	require.Equal(t, ".a {\n  c: 7;\n}\n", result.CSS)
}

func TestIndentedSyntax(t *testing.T) {
	result, err := Compile(
		Import{Path: "in.sass", Content: "a\n  color: red\n"},
		Options{},
	)
	require.NoError(t, err)
	require.Equal(t, "a {\n  color: red;\n}\n", result.CSS)
}

func TestSyntaxHintOverridesExtension(t *testing.T) {
	result, err := Compile(
		Import{Path: "weird.txt", Content: "a { color: red }", Syntax: source.DialectSCSS},
		Options{},
	)
	require.NoError(t, err)
	require.Equal(t, "a {\n  color: red;\n}\n", result.CSS)
}

func TestRecursionLimit(t *testing.T) {
	_, err := Compile(
		Import{Path: "in.scss", Content: "@mixin m { @include m; } .a { @include m; }"},
		Options{DepthLimit: 16},
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "stack depth exceeded")
}

func TestVariableScoping(t *testing.T) {
	// Inner assignment updates the outer variable; !global writes the root.
	css := compile(t, "$x: 1; .a { $x: 2; w: $x } .b { w: $x }")
	require.Equal(t, ".a {\n  w: 2;\n}\n\n.b {\n  w: 2;\n}\n", css)

	css = compile(t, "@mixin set { $g: 9 !global; } @include set; .a { w: $g }")
	require.Equal(t, ".a {\n  w: 9;\n}\n", css)
}

func TestRestArguments(t *testing.T) {
	css := compile(t, "@mixin pad($sides...) { padding: $sides; } .a { @include pad(1px, 2px) }")
	require.Equal(t, ".a {\n  padding: 1px, 2px;\n}\n", css)
}

func TestArgumentErrors(t *testing.T) {
	err := compileErr(t, "@mixin m($a) {} .x { @include m; }")
	require.Contains(t, err.Error(), "Missing argument $a.")

	err = compileErr(t, "@mixin m($a) {} .x { @include m(1, $a: 2); }")
	require.Contains(t, err.Error(), "passed both by position and by name")

	err = compileErr(t, "@mixin m($a) {} .x { @include m(1, $b: 2); }")
	require.Contains(t, err.Error(), "No argument named $b.")
}

func TestHandlerServesCompiledCSS(t *testing.T) {
	fsys := fstest.MapFS{
		"style.scss": {Data: []byte("a { b { color: red } }")},
	}
	h := NewHandler(fsys, "/css", Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/css/style.scss", nil))
	require.Equal(t, 200, rec.Code)
	require.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "a b {\n  color: red;\n}\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/css/missing.scss", nil))
	require.Equal(t, 404, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/css/style.scss", nil))
	require.Equal(t, 405, rec.Code)
}

func httptestHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestMiddlewarePassThrough(t *testing.T) {
	fsys := fstest.MapFS{
		"style.scss": {Data: []byte(".a { c: 1 }")},
	}
	mw := NewMiddleware("/assets", fsys, Options{})
	wrapped := mw(httptestHandler("fallthrough"))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/assets/style.scss", nil))
	require.Equal(t, ".a {\n  c: 1;\n}\n", rec.Body.String())

	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/assets/app.js", nil))
	require.Equal(t, "fallthrough", rec.Body.String())
}
