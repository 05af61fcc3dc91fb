package parser

import (
	"strings"

	"github.com/sassgo/sass/ast"
)

// parseInterpolated reads literal text interleaved with `#{...}` holes
// until stop reports true for the upcoming byte (checked before each
// literal byte is consumed; never checked inside a hole). It is used for
// every context that may contain interpolation: selectors, property
// names, at-rule preludes, and media queries.
func (p *Parser) parseInterpolated(stop func(p *Parser) bool) (*ast.Interpolation, error) {
	start := p.s.State()
	var frag strings.Builder
	var fragments []string
	var holes []ast.Expression
	for {
		if p.s.AtEnd() || stop(p) {
			break
		}
		b, _ := p.s.Peek(0)
		if b == '#' {
			if b2, ok := p.s.Peek(1); ok && b2 == '{' {
				fragments = append(fragments, frag.String())
				frag.Reset()
				p.s.Read()
				p.s.Read()
				p.skipWhitespaceAndComments(true)
				expr, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				p.skipWhitespaceAndComments(true)
				if err := p.s.ExpectChar('}'); err != nil {
					return nil, err
				}
				holes = append(holes, expr)
				continue
			}
		}
		p.s.Read()
		frag.WriteByte(b)
	}
	fragments = append(fragments, frag.String())
	return &ast.Interpolation{Node: ast.Node{Span: p.s.PState(start)}, Fragments: fragments, Holes: holes}, nil
}

// stopAtByte builds a stop predicate matching any of the given bytes at
// the current cursor, or end of input. It does not track bracket nesting:
// a listed byte stops the read even inside parentheses or brackets.
func stopAtByte(bytes ...byte) func(*Parser) bool {
	return func(p *Parser) bool {
		b, ok := p.s.Peek(0)
		if !ok {
			return true
		}
		for _, want := range bytes {
			if b == want {
				return true
			}
		}
		return false
	}
}
