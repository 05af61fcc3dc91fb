// Package parser implements the recursive-descent, lexer-free parser: it
// drives a scan.Scanner directly over source characters, producing the
// ast.Stylesheet. The same grammar serves all three dialects (SCSS,
// indented Sass, plain CSS). Indented source reaches it already rewritten
// to the bracketed form by ConvertIndented; the remaining dialect checks
// are `//` comment legality and the rejection of Sass variables in plain
// CSS.
package parser

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/scan"
	"github.com/sassgo/sass/source"
)

// Parser holds the scanning cursor plus the frame table being built up as
// scopes are hoisted; each Parser parses exactly one source.
type Parser struct {
	s       *scan.Scanner
	dialect source.Dialect
	frames  *env.Table

	// scope is the frame currently being populated; pushScope/popScope
	// maintain this as a stack of frame indices mirroring lexical nesting.
	scope []int

	// ruleDepth counts enclosing style-rule/mixin/content-block bodies, the
	// contexts where `@extend` is grammatically legal.
	ruleDepth int

	// names resolved eagerly for the common "declared before used in the
	// same or an enclosing already-closed scope" case; anything else is
	// left with Slot -1 for lexical-lookup-at-eval-time.
}

// New creates a parser over src, dialect-aware per src.Dialect.
func New(src *source.Source, frames *env.Table) (*Parser, error) {
	s, err := scan.New(src)
	if err != nil {
		return nil, err
	}
	dialect := src.Dialect
	if dialect == source.DialectAuto {
		dialect = source.DialectFromPath(src.Path)
	}
	return &Parser{s: s, dialect: dialect, frames: frames, scope: []int{env.Root}}, nil
}

func (p *Parser) curFrame() int { return p.scope[len(p.scope)-1] }

func (p *Parser) pushScope() int {
	f := p.frames.NewFrame(p.curFrame())
	p.scope = append(p.scope, f)
	return f
}

func (p *Parser) popScope() {
	p.scope = p.scope[:len(p.scope)-1]
}

// Parse consumes the whole source and returns the stylesheet root. An
// optional UTF-8 BOM is skipped before the first statement.
func (p *Parser) Parse() (*ast.Stylesheet, error) {
	p.s.Scan("\xef\xbb\xbf")
	start := p.s.State()
	var body []ast.Statement
	for {
		// Loud comments are statements here, so only whitespace and silent
		// comments are skipped between them.
		p.skipWhitespaceAndComments(false)
		if p.s.AtEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	return &ast.Stylesheet{Node: ast.Node{Span: p.s.PState(start)}, Body: body}, nil
}

// skipWhitespaceAndComments advances past runs of whitespace and, when
// skipLoud, loud `/* */` comments too (callers that need to preserve loud
// comments as statements stop before consuming one). Silent `//` line
// comments are always skipped here; the SCSS/indented dialects both permit
// them outside plain CSS.
func (p *Parser) skipWhitespaceAndComments(skipLoud bool) {
	for {
		p.skipWhitespace()
		if b, ok := p.s.Peek(0); ok && b == '/' {
			b2, ok2 := p.s.Peek(1)
			if ok2 && b2 == '/' && p.dialect != source.DialectCSS {
				p.skipLineComment()
				continue
			}
			if ok2 && b2 == '*' && skipLoud {
				p.skipBlockComment()
				continue
			}
		}
		return
	}
}

func (p *Parser) skipWhitespace() {
	for {
		b, ok := p.s.Peek(0)
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			p.s.Read()
			continue
		}
		return
	}
}

func (p *Parser) skipLineComment() {
	for {
		b, ok := p.s.Peek(0)
		if !ok || b == '\n' {
			return
		}
		p.s.Read()
	}
}

func (p *Parser) skipBlockComment() {
	p.s.Scan("/*")
	for {
		if p.s.AtEnd() {
			return
		}
		if p.s.Scan("*/") {
			return
		}
		p.s.Read()
	}
}

// tryLoudComment parses a `/* ... */` comment as a statement when one is
// encountered where a statement is expected (loud comments survive to the
// emitted CSS, so they must round-trip through the AST rather than being
// silently dropped like `//` ones).
func (p *Parser) tryLoudComment() (*ast.Comment, bool, error) {
	if b, ok := p.s.Peek(0); !ok || b != '/' {
		return nil, false, nil
	}
	if b2, ok := p.s.Peek(1); !ok || b2 != '*' {
		return nil, false, nil
	}
	start := p.s.State()
	p.s.Scan("/*")
	var text strings.Builder
	text.WriteString("/*")
	for {
		if p.s.AtEnd() {
			return nil, false, p.s.Errorf("Expected %q.", "*/")
		}
		if p.s.Scan("*/") {
			text.WriteString("*/")
			break
		}
		b, _ := p.s.Read()
		text.WriteByte(b)
	}
	return &ast.Comment{Node: ast.Node{Span: p.s.PState(start)}, Text: text.String(), Loud: true}, true, nil
}

func isNameStartByte(b byte) bool {
	return b == '_' || b == '-' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStartByte(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// readIdent reads a CSS identifier (letters, digits, `-`, `_`, and
// UTF-8-continuation bytes for non-ASCII names); escape sequences are not
// handled here since the spec's grammar excludes them from this core.
func (p *Parser) readIdent() string {
	var b strings.Builder
	for {
		c, ok := p.s.Peek(0)
		if !ok || !isNameByte(c) {
			break
		}
		p.s.Read()
		b.WriteByte(c)
	}
	return b.String()
}

// expectIdent reads an identifier or raises a parse error naming what kind
// of identifier the caller expected.
func (p *Parser) expectIdent(what string) (string, error) {
	name := p.readIdent()
	if name == "" {
		return "", p.s.Errorf("Expected %s.", what)
	}
	return name, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return p.s.Errorf(format, args...)
}
