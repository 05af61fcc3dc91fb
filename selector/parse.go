package selector

import (
	"fmt"
	"strings"
)

// Parse parses fully-resolved selector text (interpolation already
// substituted) into a List. It is deliberately permissive about
// whitespace and accepts the same grammar LibSass's selector parser
// recognizes: type/universal/class/id/attribute/pseudo atoms, the `&`
// parent reference, `%placeholder` extend targets, and the four
// combinators.
func Parse(text string) (List, error) {
	p := &parser{src: text}
	list, err := p.parseList()
	if err != nil {
		return List{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return List{}, fmt.Errorf("selector: unexpected trailing input %q", p.src[p.pos:])
	}
	return list, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		break
	}
}

func (p *parser) parseList() (List, error) {
	var list List
	c, err := p.parseComplex()
	if err != nil {
		return List{}, err
	}
	list.Complex = append(list.Complex, c)
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok || c != ',' {
			break
		}
		p.pos++
		p.skipSpace()
		cx, err := p.parseComplex()
		if err != nil {
			return List{}, err
		}
		list.Complex = append(list.Complex, cx)
	}
	return list, nil
}

func (p *parser) parseComplex() (Complex, error) {
	var cx Complex
	if c, ok := p.peek(); ok && (c == '>' || c == '~' || c == '+') {
		p.pos++
		p.skipSpace()
		cx.Leading = Combinator(c)
		cx.HasLeading = true
	}
	first, err := p.parseCompound()
	if err != nil {
		return Complex{}, err
	}
	cx.Compounds = append(cx.Compounds, first)
	for {
		savedPos := p.pos
		p.skipSpace()
		comb, hadSpace, found := p.tryCombinator()
		if !found {
			p.pos = savedPos
			break
		}
		_ = hadSpace
		p.skipSpace()
		if p.atListEnd() {
			return Complex{}, fmt.Errorf("selector: expected compound selector after combinator")
		}
		next, err := p.parseCompound()
		if err != nil {
			return Complex{}, err
		}
		cx.Compounds = append(cx.Compounds, next)
		cx.Combinators = append(cx.Combinators, comb)
	}
	return cx, nil
}

func (p *parser) atListEnd() bool {
	c, ok := p.peek()
	return !ok || c == ',' || c == '{'
}

func (p *parser) tryCombinator() (Combinator, bool, bool) {
	c, ok := p.peek()
	if !ok {
		return 0, false, false
	}
	switch c {
	case '>', '~', '+':
		p.pos++
		p.skipSpace()
		return Combinator(c), false, true
	}
	if p.atListEnd() {
		return 0, false, false
	}
	// No explicit combinator token but input continues: descendant combinator.
	return Descendant, true, true
}

func (p *parser) parseCompound() (Compound, error) {
	var c Compound
	for {
		ch, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case ch == '&':
			p.pos++
			c.Simples = append(c.Simples, Simple{Kind: KindParent})
		case ch == '*':
			p.pos++
			c.Simples = append(c.Simples, Simple{Kind: KindUniversal})
		case ch == '.':
			p.pos++
			name := p.readIdent()
			c.Simples = append(c.Simples, Simple{Kind: KindClass, Name: name, Raw: "." + name})
		case ch == '#':
			p.pos++
			name := p.readIdent()
			c.Simples = append(c.Simples, Simple{Kind: KindID, Name: name, Raw: "#" + name})
		case ch == '%':
			p.pos++
			name := p.readIdent()
			c.Simples = append(c.Simples, Simple{Kind: KindPlaceholder, Name: name, Raw: "%" + name})
		case ch == '[':
			raw, err := p.readBracketed('[', ']')
			if err != nil {
				return Compound{}, err
			}
			c.Simples = append(c.Simples, Simple{Kind: KindAttribute, Raw: raw})
		case ch == ':':
			s, err := p.readPseudo()
			if err != nil {
				return Compound{}, err
			}
			c.Simples = append(c.Simples, s)
		case isNameStart(ch):
			name := p.readIdent()
			c.Simples = append(c.Simples, Simple{Kind: KindType, Name: name, Raw: name})
		default:
			if len(c.Simples) == 0 {
				return Compound{}, fmt.Errorf("selector: unexpected character %q", ch)
			}
			return c, nil
		}
		if p.atCombinatorBoundary() {
			return c, nil
		}
	}
	if len(c.Simples) == 0 {
		return Compound{}, fmt.Errorf("selector: expected a selector")
	}
	return c, nil
}

func (p *parser) atCombinatorBoundary() bool {
	c, ok := p.peek()
	if !ok {
		return true
	}
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == '>' || c == '~' || c == '+' || c == '{'
}

func (p *parser) readPseudo() (Simple, error) {
	start := p.pos
	p.pos++ // first ':'
	elem := false
	if c, ok := p.peek(); ok && c == ':' {
		p.pos++
		elem = true
	}
	name := p.readIdent()
	if name == "" {
		return Simple{}, fmt.Errorf("selector: expected pseudo-class name")
	}
	kind := KindPseudoClass
	if elem {
		kind = KindPseudoElement
	}
	s := Simple{Kind: kind, Name: name}
	if c, ok := p.peek(); ok && c == '(' {
		argText, err := p.readBracketed('(', ')')
		if err != nil {
			return Simple{}, err
		}
		inner := argText[1 : len(argText)-1]
		for _, part := range splitTopLevelCommas(inner) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sub, err := Parse(part)
			if err == nil {
				s.Args = append(s.Args, sub)
			}
		}
		s.Raw = p.src[start:p.pos]
	} else {
		s.Raw = p.src[start:p.pos]
	}
	return s, nil
}

func splitTopLevelCommas(s string) []string {
	var out []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}

func (p *parser) readBracketed(open, close byte) (string, error) {
	start := p.pos
	if c, ok := p.peek(); !ok || c != open {
		return "", fmt.Errorf("selector: expected %q", open)
	}
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				return p.src[start:p.pos], nil
			}
		}
	}
	return "", fmt.Errorf("selector: unterminated %q", open)
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isNameStart(c) || (c >= '0' && c <= '9') || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isNameStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
