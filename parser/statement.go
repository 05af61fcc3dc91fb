package parser

import (
	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/selector"
	"github.com/sassgo/sass/source"
)

// parseStatement dispatches on the next significant byte: `@`-rules,
// variable assignments, loud comments, and the declaration-vs-style-rule
// ambiguity that everything else falls into.
func (p *Parser) parseStatement() (ast.Statement, error) {
	if c, ok, err := p.tryLoudComment(); err != nil {
		return nil, err
	} else if ok {
		return c, nil
	}
	b, ok := p.s.Peek(0)
	if !ok {
		return nil, p.errorf("Expected statement.")
	}
	switch {
	case b == '@':
		return p.parseAtRule()
	case b == '$':
		if p.dialect == source.DialectCSS {
			return nil, p.errorf("Sass variables aren't allowed in plain CSS.")
		}
		return p.parseVarDeclStatement()
	default:
		return p.parseDeclarationOrStyleRule()
	}
}

// parseBlock consumes `{ statements... }`, already positioned at the `{`.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if err := p.s.ExpectChar('{'); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for {
		p.skipWhitespaceAndComments(false)
		if b, ok := p.s.Peek(0); ok && b == '}' {
			p.s.Read()
			break
		}
		if p.s.AtEnd() {
			return nil, p.errorf("Expected %q.", "}")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			body = append(body, stmt)
		}
		p.skipWhitespaceAndComments(false)
		p.s.ScanChar(';')
	}
	return body, nil
}

// parseDeclarationOrStyleRule resolves the grammar's central ambiguity: a
// bare identifier run followed by `:` is a declaration unless what follows
// the colon fails to read as a terminated value, in which case the whole
// run (colon included) was actually a selector such as `a:hover`.
func (p *Parser) parseDeclarationOrStyleRule() (ast.Statement, error) {
	save := p.s.State()
	if decl, ok, err := p.tryParseDeclaration(); err != nil {
		return nil, err
	} else if ok {
		return decl, nil
	}
	p.s.ResetState(save)
	return p.parseStyleRule()
}

func (p *Parser) tryParseDeclaration() (ast.Statement, bool, error) {
	start := p.s.State()
	name, err := p.parseInterpolated(stopAtByte(':', '{', ';', '}'))
	if err != nil {
		return nil, false, err
	}
	if name.Plain() && name.Text() == "" {
		return nil, false, nil
	}
	b, ok := p.s.Peek(0)
	if !ok || b != ':' {
		return nil, false, nil
	}
	p.s.Read()
	p.skipWhitespaceAndComments(true)
	if b2, ok2 := p.s.Peek(0); (ok2 && b2 == ';') || (ok2 && b2 == '}') || !ok2 {
		// `color: ;` / `color: }` is definitely an empty declaration, not a
		// selector; report it as such instead of backtracking.
		return nil, false, p.errorf("Expected expression.")
	}
	if b2, ok2 := p.s.Peek(0); ok2 && b2 == '{' {
		frame := p.pushScope()
		body, err := p.parseBlock()
		p.popScope()
		if err != nil {
			return nil, false, err
		}
		return &ast.Declaration{Node: ast.Node{Span: p.s.PState(start)}, Property: name, Body: body, Frame: frame}, true, nil
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, false, nil
	}
	p.skipWhitespaceAndComments(true)
	b3, ok3 := p.s.Peek(0)
	switch {
	case !ok3:
		return &ast.Declaration{Node: ast.Node{Span: p.s.PState(start)}, Property: name, Value: val}, true, nil
	case b3 == ';':
		p.s.Read()
		return &ast.Declaration{Node: ast.Node{Span: p.s.PState(start)}, Property: name, Value: val}, true, nil
	case b3 == '}':
		return &ast.Declaration{Node: ast.Node{Span: p.s.PState(start)}, Property: name, Value: val}, true, nil
	default:
		return nil, false, nil
	}
}

func (p *Parser) parseStyleRule() (ast.Statement, error) {
	start := p.s.State()
	sel, err := p.parseInterpolated(stopAtByte('{'))
	if err != nil {
		return nil, err
	}
	if sel.Plain() {
		if _, err := selector.Parse(sel.Text()); err != nil {
			return nil, p.errorf("%s", err.Error())
		}
	}
	frame := p.pushScope()
	p.ruleDepth++
	body, err := p.parseBlock()
	p.ruleDepth--
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.StyleRule{Node: ast.Node{Span: p.s.PState(start)}, Selector: sel, Body: body, Frame: frame}, nil
}

func (p *Parser) parseVarDeclStatement() (ast.Statement, error) {
	start := p.s.State()
	p.s.Read() // '$'
	name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.ExpectChar(':'); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: name, Value: val}
	for {
		p.skipWhitespace()
		save := p.s.State()
		if p.s.Scan("!default") {
			decl.Default = true
			continue
		}
		if p.s.Scan("!global") {
			decl.Global = true
			continue
		}
		p.s.ResetState(save)
		break
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	decl.Frame, decl.Slot = resolveVarSlot(p, name, decl.Global)
	decl.Node = ast.Node{Span: p.s.PState(start)}
	return decl, nil
}

// resolveVarSlot picks where an assignment lands: the root frame
// unconditionally for `!global`; the already-declared slot when the name
// resolves in this or an enclosing scope (Sass assignment updates the
// existing variable rather than shadowing it); a fresh slot in the
// innermost scope otherwise.
func resolveVarSlot(p *Parser, name string, global bool) (int, int) {
	if global {
		return env.Root, p.frames.Declare(env.Root, name)
	}
	if frame, slot, found := p.frames.Lookup(p.curFrame(), name); found {
		return frame, slot
	}
	frame := p.curFrame()
	return frame, p.frames.Declare(frame, name)
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if err := p.s.ExpectChar('('); err != nil {
		return nil, err
	}
	var params []ast.Param
	p.skipWhitespaceAndComments(true)
	if b, ok := p.s.Peek(0); ok && b == ')' {
		p.s.Read()
		return params, nil
	}
	for {
		p.skipWhitespaceAndComments(true)
		if err := p.s.ExpectChar('$'); err != nil {
			return nil, err
		}
		name, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: name}
		p.skipWhitespace()
		if p.s.Scan("...") {
			param.Rest = true
		} else {
			p.skipWhitespace()
			if b2, ok2 := p.s.Peek(0); ok2 && b2 == ':' {
				p.s.Read()
				p.skipWhitespaceAndComments(true)
				def, err := p.parseSpaceList()
				if err != nil {
					return nil, err
				}
				param.Default = def
			}
		}
		param.Frame = p.curFrame()
		param.Slot = p.frames.Declare(param.Frame, name)
		params = append(params, param)
		p.skipWhitespaceAndComments(true)
		if b3, ok3 := p.s.Peek(0); ok3 && b3 == ',' {
			p.s.Read()
			continue
		}
		break
	}
	if err := p.s.ExpectChar(')'); err != nil {
		return nil, err
	}
	return params, nil
}
