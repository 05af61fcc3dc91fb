package parser

import (
	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/scan"
)

// parseAtRule reads the `@name` keyword and dispatches to the statement
// shape it introduces. Anything not specifically recognized falls through
// to the generic AtRule node, which preserves an arbitrary prelude and
// optional body verbatim.
func (p *Parser) parseAtRule() (ast.Statement, error) {
	start := p.s.State()
	p.s.Read() // '@'
	name := p.readIdent()
	switch name {
	case "if":
		return p.parseIfStatement(start)
	case "else":
		return nil, p.errorf("@else must follow @if.")
	case "for":
		return p.parseForStatement(start)
	case "each":
		return p.parseEachStatement(start)
	case "while":
		return p.parseWhileStatement(start)
	case "mixin":
		return p.parseMixinDecl(start)
	case "function":
		return p.parseFunctionDecl(start)
	case "include":
		return p.parseIncludeStatement(start)
	case "content":
		return p.parseContentStatement(start)
	case "return":
		return p.parseReturnStatement(start)
	case "import":
		return p.parseImportStatement(start)
	case "extend":
		return p.parseExtendStatement(start)
	case "warn":
		return p.parseDirectiveValueStatement(start, "warn")
	case "error":
		return p.parseDirectiveValueStatement(start, "error")
	case "debug":
		return p.parseDirectiveValueStatement(start, "debug")
	case "media":
		return p.parseMediaStatement(start)
	case "supports":
		return p.parseSupportsStatement(start)
	case "at-root":
		return p.parseAtRootStatement(start)
	default:
		return p.parseGenericAtRule(start, name)
	}
}

func (p *Parser) parseIfStatement(start scan.State) (ast.Statement, error) {
	var clauses []ast.IfClause
	p.skipWhitespaceAndComments(true)
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	frame := p.pushScope()
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, ast.IfClause{Cond: cond, Body: body, Frame: frame})
	for {
		save := p.s.State()
		p.skipWhitespaceAndComments(true)
		if !p.s.Scan("@else") {
			p.s.ResetState(save)
			break
		}
		p.skipWhitespaceAndComments(true)
		if p.s.Scan("if") {
			p.skipWhitespaceAndComments(true)
			c, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			p.skipWhitespaceAndComments(true)
			frame := p.pushScope()
			b, err := p.parseBlock()
			p.popScope()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.IfClause{Cond: c, Body: b, Frame: frame})
			continue
		}
		p.skipWhitespaceAndComments(true)
		frame := p.pushScope()
		b, err := p.parseBlock()
		p.popScope()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.IfClause{Cond: nil, Body: b, Frame: frame})
		break
	}
	return &ast.IfStatement{Node: ast.Node{Span: p.s.PState(start)}, Clauses: clauses}, nil
}

func (p *Parser) parseForStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	if err := p.s.ExpectChar('$'); err != nil {
		return nil, err
	}
	varName, err := p.expectIdent("loop variable")
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.Expect("from"); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	// Bounds are single terms, not space lists, so `through`/`to` stay
	// keywords rather than list items.
	from, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	inclusive := false
	if p.s.Scan("through") {
		inclusive = true
	} else if err := p.s.Expect("to"); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	to, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	frame := p.pushScope()
	slot := p.frames.Declare(frame, varName)
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{
		Node: ast.Node{Span: p.s.PState(start)}, Var: varName, Frame: frame, Slot: slot,
		From: from, To: to, Inclusive: inclusive, Body: body,
	}, nil
}

func (p *Parser) parseEachStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	var vars []string
	for {
		if err := p.s.ExpectChar('$'); err != nil {
			return nil, err
		}
		name, err := p.expectIdent("loop variable")
		if err != nil {
			return nil, err
		}
		vars = append(vars, name)
		p.skipWhitespace()
		if b, ok := p.s.Peek(0); ok && b == ',' {
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			continue
		}
		break
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.Expect("in"); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	list, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	frame := p.pushScope()
	slots := make([]int, len(vars))
	for i, v := range vars {
		slots[i] = p.frames.Declare(frame, v)
	}
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.EachStatement{
		Node: ast.Node{Span: p.s.PState(start)}, Vars: vars, Frame: frame, Slots: slots,
		List: list, Body: body,
	}, nil
}

func (p *Parser) parseWhileStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	frame := p.pushScope()
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Node: ast.Node{Span: p.s.PState(start)}, Cond: cond, Body: body, Frame: frame}, nil
}

func (p *Parser) parseMixinDecl(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	name, err := p.expectIdent("mixin name")
	if err != nil {
		return nil, err
	}
	frame := p.curFrame()
	slot := p.frames.Declare(frame, env.MixinKey(name))
	bodyFrame := p.pushScope()
	var params []ast.Param
	p.skipWhitespace()
	if b, ok := p.s.Peek(0); ok && b == '(' {
		params, err = p.parseParamList()
		if err != nil {
			p.popScope()
			return nil, err
		}
	}
	p.skipWhitespaceAndComments(true)
	p.ruleDepth++
	body, err := p.parseBlock()
	p.ruleDepth--
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.MixinDecl{
		Node: ast.Node{Span: p.s.PState(start)}, Name: name, Params: params, Body: body,
		Frame: bodyFrame, Slot: slot,
	}, nil
}

func (p *Parser) parseFunctionDecl(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}
	frame := p.curFrame()
	slot := p.frames.Declare(frame, env.FnKey(name))
	bodyFrame := p.pushScope()
	var params []ast.Param
	p.skipWhitespace()
	if b, ok := p.s.Peek(0); ok && b == '(' {
		params, err = p.parseParamList()
		if err != nil {
			p.popScope()
			return nil, err
		}
	}
	p.skipWhitespaceAndComments(true)
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Node: ast.Node{Span: p.s.PState(start)}, Name: name, Params: params, Body: body,
		Frame: bodyFrame, Slot: slot,
	}, nil
}

func (p *Parser) parseIncludeStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	name, err := p.expectIdent("mixin name")
	if err != nil {
		return nil, err
	}
	call := &ast.FuncCall{Keyword: map[string]ast.Expression{}, ResolvedFrame: -1}
	p.skipWhitespace()
	if b, ok := p.s.Peek(0); ok && b == '(' {
		argExpr, err := p.parseCallArgs(p.s.State(), name)
		if err != nil {
			return nil, err
		}
		call = argExpr.(*ast.FuncCall)
	}
	p.skipWhitespaceAndComments(true)
	var content *ast.ContentBlock
	if p.s.Scan("using") {
		p.skipWhitespaceAndComments(true)
		frame := p.pushScope()
		params, err := p.parseParamList()
		if err != nil {
			p.popScope()
			return nil, err
		}
		p.skipWhitespaceAndComments(true)
		p.ruleDepth++
		body, err := p.parseBlock()
		p.ruleDepth--
		p.popScope()
		if err != nil {
			return nil, err
		}
		content = &ast.ContentBlock{Params: params, Body: body, Frame: frame}
	} else if b, ok := p.s.Peek(0); ok && b == '{' {
		frame := p.pushScope()
		p.ruleDepth++
		body, err := p.parseBlock()
		p.ruleDepth--
		p.popScope()
		if err != nil {
			return nil, err
		}
		content = &ast.ContentBlock{Body: body, Frame: frame}
	} else {
		p.skipWhitespaceAndComments(true)
		p.s.ScanChar(';')
	}
	resFrame, resSlot, found := p.frames.Lookup(p.curFrame(), env.MixinKey(name))
	if !found {
		resFrame = -1
	}
	return &ast.IncludeStatement{
		Node: ast.Node{Span: p.s.PState(start)}, Name: name, Args: call, Content: content,
		ResolvedFrame: resFrame, ResolvedSlot: resSlot,
	}, nil
}

func (p *Parser) parseContentStatement(start scan.State) (ast.Statement, error) {
	var call *ast.FuncCall
	p.skipWhitespace()
	if b, ok := p.s.Peek(0); ok && b == '(' {
		argExpr, err := p.parseCallArgs(p.s.State(), "@content")
		if err != nil {
			return nil, err
		}
		call = argExpr.(*ast.FuncCall)
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	return &ast.ContentStatement{Node: ast.Node{Span: p.s.PState(start)}, Args: call}, nil
}

func (p *Parser) parseReturnStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	return &ast.ReturnStatement{Node: ast.Node{Span: p.s.PState(start)}, Value: val}, nil
}

func (p *Parser) parseImportStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	var entries []ast.ImportEntry
	for {
		url, err := p.parseInterpolated(stopAtByte(',', ';', '{'))
		if err != nil {
			return nil, err
		}
		entry := ast.ImportEntry{URL: url}
		p.skipWhitespace()
		if b, ok := p.s.Peek(0); ok && b != ',' && b != ';' && b != '{' {
			media, err := p.parseInterpolated(stopAtByte(',', ';', '{'))
			if err != nil {
				return nil, err
			}
			entry.Media = media
		}
		entries = append(entries, entry)
		p.skipWhitespace()
		if b, ok := p.s.Peek(0); ok && b == ',' {
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			continue
		}
		break
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	return &ast.ImportStatement{Node: ast.Node{Span: p.s.PState(start)}, Entries: entries}, nil
}

func (p *Parser) parseExtendStatement(start scan.State) (ast.Statement, error) {
	if p.ruleDepth == 0 {
		return nil, p.s.ErrorAt(start, "@extend may only be used within style rules.")
	}
	p.skipWhitespaceAndComments(true)
	target, err := p.parseInterpolated(stopAtByte(';', '{', '}'))
	if err != nil {
		return nil, err
	}
	optional := false
	p.skipWhitespace()
	if p.s.Scan("!optional") {
		optional = true
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	return &ast.ExtendStatement{Node: ast.Node{Span: p.s.PState(start)}, Target: target, Optional: optional}, nil
}

func (p *Parser) parseDirectiveValueStatement(start scan.State, kind string) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	p.s.ScanChar(';')
	sp := p.s.PState(start)
	switch kind {
	case "warn":
		return &ast.WarnStatement{Node: ast.Node{Span: sp}, Value: val}, nil
	case "error":
		return &ast.ErrorStatement{Node: ast.Node{Span: sp}, Value: val}, nil
	default:
		return &ast.DebugStatement{Node: ast.Node{Span: sp}, Value: val}, nil
	}
}

func (p *Parser) parseMediaStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	query, err := p.parseInterpolated(stopAtByte('{'))
	if err != nil {
		return nil, err
	}
	frame := p.pushScope()
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.MediaStatement{Node: ast.Node{Span: p.s.PState(start)}, Query: query, Body: body, Frame: frame}, nil
}

func (p *Parser) parseSupportsStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespaceAndComments(true)
	cond, err := p.parseInterpolated(stopAtByte('{'))
	if err != nil {
		return nil, err
	}
	frame := p.pushScope()
	body, err := p.parseBlock()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.SupportsStatement{Node: ast.Node{Span: p.s.PState(start)}, Condition: cond, Body: body, Frame: frame}, nil
}

func (p *Parser) parseAtRootStatement(start scan.State) (ast.Statement, error) {
	p.skipWhitespace()
	var query *ast.AtRootQuery
	if b, ok := p.s.Peek(0); ok && b == '(' {
		p.s.Read()
		p.skipWhitespaceAndComments(true)
		q := &ast.AtRootQuery{}
		if p.s.Scan("without") {
			q.Exclude = true
		} else if err := p.s.Expect("with"); err != nil {
			return nil, err
		}
		p.skipWhitespaceAndComments(true)
		if err := p.s.ExpectChar(':'); err != nil {
			return nil, err
		}
		p.skipWhitespaceAndComments(true)
		for {
			name, err := p.expectIdent("at-root query name")
			if err != nil {
				return nil, err
			}
			q.Names = append(q.Names, name)
			p.skipWhitespace()
			b2, ok2 := p.s.Peek(0)
			if ok2 && b2 == ',' {
				p.s.Read()
				p.skipWhitespaceAndComments(true)
				continue
			}
			break
		}
		if err := p.s.ExpectChar(')'); err != nil {
			return nil, err
		}
		query = q
	}
	p.skipWhitespaceAndComments(true)
	frame := p.pushScope()
	var body []ast.Statement
	var err error
	if b, ok := p.s.Peek(0); ok && b != '{' {
		// `@at-root .child { ... }` shorthand: the selector and block form
		// the statement's entire body.
		rule, ruleErr := p.parseStyleRule()
		if ruleErr != nil {
			p.popScope()
			return nil, ruleErr
		}
		body = []ast.Statement{rule}
	} else {
		body, err = p.parseBlock()
	}
	p.popScope()
	if err != nil {
		return nil, err
	}
	return &ast.AtRootStatement{Node: ast.Node{Span: p.s.PState(start)}, Query: query, Body: body, Frame: frame}, nil
}

func (p *Parser) parseGenericAtRule(start scan.State, name string) (ast.Statement, error) {
	p.skipWhitespace()
	var prelude *ast.Interpolation
	if b, ok := p.s.Peek(0); ok && b != '{' && b != ';' {
		pr, err := p.parseInterpolated(stopAtByte('{', ';'))
		if err != nil {
			return nil, err
		}
		prelude = pr
	}
	p.skipWhitespaceAndComments(true)
	var body []ast.Statement
	hasBody := false
	frame := 0
	if b, ok := p.s.Peek(0); ok && b == '{' {
		hasBody = true
		frame = p.pushScope()
		var err error
		body, err = p.parseBlock()
		p.popScope()
		if err != nil {
			return nil, err
		}
	} else {
		p.s.ScanChar(';')
	}
	return &ast.AtRule{
		Node: ast.Node{Span: p.s.PState(start)}, Name: ast.NewPlain(p.s.PState(start), name),
		Prelude: prelude, Body: body, HasBody: hasBody, Frame: frame,
	}, nil
}
