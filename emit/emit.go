// Package emit serializes the flat CSS tree to text in the three output
// styles, forwarding position-tagged mappings for a downstream source-map
// serializer. The tree arrives fully flattened and extended; this package
// only decides whitespace, punctuation, and the compact spellings the
// compressed style uses.
package emit

import (
	"regexp"
	"strings"

	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// Style selects the output format.
type Style int

const (
	// Expanded is the default multi-line style: one declaration per line,
	// the opening brace on the selector's line.
	Expanded Style = iota
	// Compressed strips all optional whitespace and shortens color and
	// number spellings.
	Compressed
	// Nested is the historical indented style; the flat tree no longer
	// carries original nesting depth, so it renders as Expanded.
	Nested
)

// ParseStyle maps the CLI/API spelling to a Style, defaulting to expanded.
func ParseStyle(s string) Style {
	switch s {
	case "compressed":
		return Compressed
	case "nested":
		return Nested
	default:
		return Expanded
	}
}

// Mapping ties a position in the generated CSS to the span of the node
// that produced it.
type Mapping struct {
	Line   int // 0-based generated line
	Column int // 0-based generated column
	Span   source.Span
}

// Result is the rendered CSS plus its mappings in generation order.
type Result struct {
	CSS      string
	Mappings []Mapping
}

// Emitter prints one tree. Not reusable across trees.
type Emitter struct {
	style    Style
	buf      strings.Builder
	line     int
	col      int
	mappings []Mapping
}

func New(style Style) *Emitter {
	if style == Nested {
		style = Expanded
	}
	return &Emitter{style: style}
}

// Emit renders the whole tree.
func (em *Emitter) Emit(t *cssom.Tree) Result {
	em.children(t, cssom.RootID, 0, true)
	css := em.buf.String()
	if em.style == Compressed {
		css = strings.TrimRight(css, "\n")
		if css != "" {
			css += "\n"
		}
	}
	return Result{CSS: css, Mappings: em.mappings}
}

func (em *Emitter) write(s string) {
	em.buf.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			em.line++
			em.col = 0
		} else {
			em.col++
		}
	}
}

func (em *Emitter) mark(sp source.Span) {
	em.mappings = append(em.mappings, Mapping{Line: em.line, Column: em.col, Span: sp})
}

// printable reports whether a node produces any output at all.
func (em *Emitter) printable(t *cssom.Tree, id cssom.NodeId) bool {
	n := t.Get(id)
	switch n.Kind {
	case cssom.KindDeclaration:
		return true
	case cssom.KindComment:
		return em.style != Compressed || strings.HasPrefix(n.CommentText, "/*!")
	case cssom.KindAtRule:
		return true
	case cssom.KindImportTrace:
		for _, c := range n.Children {
			if em.printable(t, c) {
				return true
			}
		}
		return false
	case cssom.KindStyleRule, cssom.KindMediaRule, cssom.KindSupportsRule:
		for _, c := range n.Children {
			if em.printable(t, c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// children emits every printable child of id, separated by a blank line at
// top level in expanded mode.
func (em *Emitter) children(t *cssom.Tree, id cssom.NodeId, indent int, topLevel bool) {
	first := true
	for _, c := range t.Get(id).Children {
		n := t.Get(c)
		if n.Kind == cssom.KindImportTrace {
			em.emitTraceChildren(t, c, indent, topLevel, &first)
			continue
		}
		if !em.printable(t, c) {
			continue
		}
		em.separator(topLevel, &first)
		em.node(t, c, indent)
	}
}

func (em *Emitter) emitTraceChildren(t *cssom.Tree, id cssom.NodeId, indent int, topLevel bool, first *bool) {
	for _, c := range t.Get(id).Children {
		n := t.Get(c)
		if n.Kind == cssom.KindImportTrace {
			em.emitTraceChildren(t, c, indent, topLevel, first)
			continue
		}
		if !em.printable(t, c) {
			continue
		}
		em.separator(topLevel, first)
		em.node(t, c, indent)
	}
}

func (em *Emitter) separator(topLevel bool, first *bool) {
	if em.style == Expanded && topLevel && !*first {
		em.write("\n")
	}
	*first = false
}

func (em *Emitter) node(t *cssom.Tree, id cssom.NodeId, indent int) {
	n := t.Get(id)
	switch n.Kind {
	case cssom.KindStyleRule:
		em.styleRule(t, id, indent)
	case cssom.KindMediaRule:
		em.container(t, id, indent, "@media "+n.Prelude)
	case cssom.KindSupportsRule:
		em.container(t, id, indent, "@supports "+n.Prelude)
	case cssom.KindAtRule:
		em.atRule(t, id, indent)
	case cssom.KindDeclaration:
		em.declaration(n, indent)
	case cssom.KindComment:
		em.comment(n, indent)
	}
}

func (em *Emitter) indentStr(indent int) string {
	if em.style == Compressed {
		return ""
	}
	return strings.Repeat("  ", indent)
}

func (em *Emitter) styleRule(t *cssom.Tree, id cssom.NodeId, indent int) {
	n := t.Get(id)
	sel := n.RawSelector
	if sel == "" {
		sel = n.Selector.String()
	}
	em.write(em.indentStr(indent))
	em.mark(n.Span)
	if em.style == Compressed {
		em.write(compressSelector(sel))
		em.write("{")
		em.blockBody(t, id, indent)
		em.write("}")
		return
	}
	em.write(sel)
	em.write(" {\n")
	em.blockBody(t, id, indent)
	em.write(em.indentStr(indent))
	em.write("}\n")
}

func (em *Emitter) container(t *cssom.Tree, id cssom.NodeId, indent int, head string) {
	n := t.Get(id)
	em.write(em.indentStr(indent))
	em.mark(n.Span)
	if em.style == Compressed {
		em.write(compressSelector(head))
		em.write("{")
		em.blockBody(t, id, indent)
		em.write("}")
		return
	}
	em.write(head)
	em.write(" {\n")
	em.blockBody(t, id, indent)
	em.write(em.indentStr(indent))
	em.write("}\n")
}

func (em *Emitter) atRule(t *cssom.Tree, id cssom.NodeId, indent int) {
	n := t.Get(id)
	head := "@" + n.AtRuleName
	if n.Prelude != "" {
		head += " " + n.Prelude
	}
	if len(n.Children) == 0 {
		em.write(em.indentStr(indent))
		em.mark(n.Span)
		em.write(head)
		if em.style == Compressed {
			em.write(";")
		} else {
			em.write(";\n")
		}
		return
	}
	em.container(t, id, indent, head)
}

// blockBody emits a container's children indented one level; inner nested
// containers (rules hoisted into a media rule) print in document order. In
// compressed mode declarations are joined by semicolons with no trailing
// one before the closing brace.
func (em *Emitter) blockBody(t *cssom.Tree, id cssom.NodeId, indent int) {
	prevWasDecl := false
	for _, c := range t.Get(id).Children {
		n := t.Get(c)
		if n.Kind == cssom.KindImportTrace {
			first := false
			em.emitTraceChildren(t, c, indent+1, false, &first)
			continue
		}
		if !em.printable(t, c) {
			continue
		}
		if em.style == Compressed && prevWasDecl {
			em.write(";")
		}
		em.node(t, c, indent+1)
		prevWasDecl = n.Kind == cssom.KindDeclaration
	}
}

func (em *Emitter) declaration(n *cssom.Node, indent int) {
	if em.style == Compressed {
		em.mark(n.Span)
		em.write(n.Property)
		em.write(":")
		em.write(compressValue(n.Value))
		return
	}
	em.write(em.indentStr(indent))
	em.mark(n.Span)
	em.write(n.Property)
	em.write(": ")
	em.write(n.Value)
	em.write(";\n")
}

func (em *Emitter) comment(n *cssom.Node, indent int) {
	if em.style == Compressed {
		if strings.HasPrefix(n.CommentText, "/*!") {
			em.write(n.CommentText)
		}
		return
	}
	em.write(em.indentStr(indent))
	em.mark(n.Span)
	em.write(n.CommentText)
	em.write("\n")
}

var (
	hexLongRe     = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	leadingZeroRe = regexp.MustCompile(`(^|[\s(,:-])0\.(\d)`)
)

// compressValue applies the compressed-style rewrites to a declaration
// value: collapsed separators, shortened hex colors, named colors when the
// name is shorter than the hex form, leading zero trimmed in (-1, 1).
func compressValue(s string) string {
	s = strings.ReplaceAll(s, ", ", ",")
	s = hexLongRe.ReplaceAllStringFunc(s, func(h string) string {
		if h[1] == h[2] && h[3] == h[4] && h[5] == h[6] {
			return "#" + h[1:2] + h[3:4] + h[5:6]
		}
		return h
	})
	s = leadingZeroRe.ReplaceAllString(s, "${1}.${2}")
	s = value.ShortenColorNames(s)
	return s
}

// compressSelector collapses the spaces expanded selectors carry around
// combinators and commas.
func compressSelector(s string) string {
	s = strings.ReplaceAll(s, ", ", ",")
	s = strings.ReplaceAll(s, " > ", ">")
	s = strings.ReplaceAll(s, " + ", "+")
	s = strings.ReplaceAll(s, " ~ ", "~")
	return s
}
