package parser

import (
	"strconv"
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/scan"
	"github.com/sassgo/sass/value"
)

// parseExpression parses a full comma-separated list, Sass's top-level
// value grammar: `1, 2, 3` is itself a value, not a grouping construct.
// A single item with no trailing comma returns unwrapped.
func (p *Parser) parseExpression() (ast.Expression, error) {
	start := p.s.State()
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	items := []ast.Expression{first}
	for {
		save := p.s.State()
		p.skipWhitespaceAndComments(true)
		if b, ok := p.s.Peek(0); ok && b == ',' {
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			if p.atExpressionEnd() {
				// trailing comma before a closer: leave it for the caller.
				p.s.ResetState(save)
				break
			}
			next, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
			continue
		}
		p.s.ResetState(save)
		break
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &ast.ListLit{Node: ast.Node{Span: p.s.PState(start)}, Items: items, Comma: true}, nil
}

// parseSpaceList parses a run of space-separated terms: `1px solid red`.
func (p *Parser) parseSpaceList() (ast.Expression, error) {
	start := p.s.State()
	first, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	items := []ast.Expression{first}
	for {
		save := p.s.State()
		p.skipWhitespace()
		if p.atExpressionEnd() {
			p.s.ResetState(save)
			break
		}
		next, err := p.parseTernary()
		if err != nil {
			p.s.ResetState(save)
			break
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &ast.ListLit{Node: ast.Node{Span: p.s.PState(start)}, Items: items}, nil
}

// atExpressionEnd reports whether the cursor sits at a byte that can never
// begin another term: a list/arg/block closer, a statement terminator, or
// end of input.
func (p *Parser) atExpressionEnd() bool {
	b, ok := p.s.Peek(0)
	if !ok {
		return true
	}
	switch b {
	case ',', ')', ']', '}', ';', ':', '{':
		return true
	}
	return false
}

func (p *Parser) checkKeyword(kw string) bool {
	save := p.s.State()
	defer p.s.ResetState(save)
	if !p.s.Scan(kw) {
		return false
	}
	if b, ok := p.s.Peek(0); ok && isNameByte(b) {
		return false
	}
	return true
}

func (p *Parser) scanKeyword(kw string) bool {
	if p.checkKeyword(kw) {
		p.s.Scan(kw)
		return true
	}
	return false
}

// parseTernary parses one term of a space list by delegating to parseOr.
// The `if(cond, a, b)` macro is recognized in parseIdentOrCall, and only
// when `if` is immediately followed by `(`, so `if` alone parses as an
// identifier.
func (p *Parser) parseTernary() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		if !p.scanKeyword("or") {
			p.s.ResetState(save)
			return left, nil
		}
		p.skipWhitespaceAndComments(true)
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: "or", Left: left, Right: right}
	}
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		if !p.scanKeyword("and") {
			p.s.ResetState(save)
			return left, nil
		}
		p.skipWhitespaceAndComments(true)
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: "and", Left: left, Right: right}
	}
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		op := ""
		switch {
		case p.s.Scan("=="):
			op = "=="
		case p.s.Scan("!="):
			op = "!="
		default:
			p.s.ResetState(save)
			return left, nil
		}
		p.skipWhitespaceAndComments(true)
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		op := ""
		switch {
		case p.s.Scan("<="):
			op = "<="
		case p.s.Scan(">="):
			op = ">="
		case p.s.Scan("<"):
			op = "<"
		case p.s.Scan(">"):
			op = ">"
		default:
			p.s.ResetState(save)
			return left, nil
		}
		p.skipWhitespaceAndComments(true)
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: op, Left: left, Right: right}
	}
}

// parseAdditive binds `+`/`-` as a binary operator whenever it is found at
// this level, after any surrounding whitespace. The ambiguity between
// subtraction and a negative-number bare-list item (`0 -1px`) is resolved
// in the caller's favor of arithmetic here; parseSpaceList only ever
// special-cases the cases parseAdditive declines to consume.
func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		b, ok := p.s.Peek(0)
		if !ok || (b != '+' && b != '-') {
			p.s.ResetState(save)
			return left, nil
		}
		p.s.Read()
		p.skipWhitespaceAndComments(true)
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: string(b), Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		save := p.s.State()
		p.skipWhitespace()
		op := ""
		switch {
		case p.s.Scan("*"):
			op = "*"
		case p.s.Scan("%"):
			op = "%"
		case p.s.Scan("/"):
			op = "/"
		default:
			p.s.ResetState(save)
			return left, nil
		}
		p.skipWhitespaceAndComments(true)
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		bin := &ast.BinaryOp{Node: ast.Node{Span: p.s.PState(save)}, Op: op, Left: left, Right: right}
		if op == "/" {
			_, lIsNum := left.(*ast.NumberLit)
			_, rIsNum := right.(*ast.NumberLit)
			bin.PossiblySlash = lIsNum && rIsNum
		}
		left = bin
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	start := p.s.State()
	if p.scanKeyword("not") {
		p.skipWhitespaceAndComments(true)
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Node: ast.Node{Span: p.s.PState(start)}, Op: "not", Operand: operand}, nil
	}
	if b, ok := p.s.Peek(0); ok && (b == '+' || b == '-') {
		// Only a unary sign when immediately glued to a number/variable/
		// paren with no following space, else it's punctuation handled by
		// the additive level or an error.
		if nb, ok := p.s.Peek(1); ok && (isDigit(nb) || nb == '.' || nb == '$' || nb == '(') {
			p.s.Read()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOp{Node: ast.Node{Span: p.s.PState(start)}, Op: string(b), Operand: operand}, nil
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	start := p.s.State()
	b, ok := p.s.Peek(0)
	if !ok {
		return nil, p.errorf("Expected expression.")
	}
	switch {
	case b == '!':
		p.s.Read()
		p.skipWhitespace()
		if !p.s.Scan("important") {
			return nil, p.errorf("Expected %q.", "!important")
		}
		return &ast.StringLit{Node: ast.Node{Span: p.s.PState(start)}, Text: "!important"}, nil
	case b == '$':
		return p.parseVarRef()
	case b == '(':
		return p.parseParenOrMap()
	case b == '[':
		return p.parseBracketedList()
	case b == '&':
		p.s.Read()
		return &ast.ParentRef{Node: ast.Node{Span: p.s.PState(start)}}, nil
	case b == '#':
		if nb, ok2 := p.s.Peek(1); ok2 && nb == '{' {
			interp, err := p.parseInterpolated(stopAtByte(',', ')', ']', '}', ';'))
			if err != nil {
				return nil, err
			}
			return &ast.InterpolatedIdent{Node: ast.Node{Span: interp.Span}, Parts: interp}, nil
		}
		return p.parseHexColor()
	case b == '"' || b == '\'':
		return p.parseQuotedString(b)
	case isDigit(b) || (b == '.' && func() bool { c, ok := p.s.Peek(1); return ok && isDigit(c) }()):
		return p.parseNumber()
	case isNameStartByte(b):
		return p.parseIdentOrCall()
	}
	return nil, p.errorf("Expected expression.")
}

func (p *Parser) parseVarRef() (ast.Expression, error) {
	start := p.s.State()
	p.s.Read() // '$'
	name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	frame, slot, found := p.frames.Lookup(p.curFrame(), name)
	ref := &ast.VarRef{Node: ast.Node{Span: p.s.PState(start)}, Name: name}
	if found {
		ref.Frame, ref.Slot = frame, slot
	} else {
		ref.Slot = -1
	}
	return ref, nil
}

func (p *Parser) parseParenOrMap() (ast.Expression, error) {
	start := p.s.State()
	p.s.Read() // '('
	p.skipWhitespaceAndComments(true)
	if b, ok := p.s.Peek(0); ok && b == ')' {
		p.s.Read()
		return &ast.MapLit{Node: ast.Node{Span: p.s.PState(start)}}, nil
	}
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if b, ok := p.s.Peek(0); ok && b == ':' {
		return p.parseMapTail(start, first)
	}
	items := []ast.Expression{first}
	comma := false
	for {
		p.skipWhitespaceAndComments(true)
		b, ok := p.s.Peek(0)
		if ok && b == ',' {
			comma = true
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			if b2, ok2 := p.s.Peek(0); ok2 && b2 == ')' {
				break
			}
			next, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
			continue
		}
		break
	}
	if err := p.s.ExpectChar(')'); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return &ast.Paren{Node: ast.Node{Span: p.s.PState(start)}, Inner: items[0]}, nil
	}
	return &ast.ListLit{Node: ast.Node{Span: p.s.PState(start)}, Items: items, Comma: comma}, nil
}

func (p *Parser) parseMapTail(start scan.State, firstKey ast.Expression) (ast.Expression, error) {
	p.s.Read() // ':'
	p.skipWhitespaceAndComments(true)
	firstVal, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	keys := []ast.Expression{firstKey}
	vals := []ast.Expression{firstVal}
	for {
		p.skipWhitespaceAndComments(true)
		b, ok := p.s.Peek(0)
		if !ok || b != ',' {
			break
		}
		p.s.Read()
		p.skipWhitespaceAndComments(true)
		if b2, ok2 := p.s.Peek(0); ok2 && b2 == ')' {
			break
		}
		k, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		p.skipWhitespaceAndComments(true)
		if err := p.s.ExpectChar(':'); err != nil {
			return nil, err
		}
		p.skipWhitespaceAndComments(true)
		v, err := p.parseSpaceList()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	if err := p.s.ExpectChar(')'); err != nil {
		return nil, err
	}
	return &ast.MapLit{Node: ast.Node{Span: p.s.PState(start)}, Keys: keys, Values: vals}, nil
}

func (p *Parser) parseBracketedList() (ast.Expression, error) {
	start := p.s.State()
	p.s.Read() // '['
	p.skipWhitespaceAndComments(true)
	if b, ok := p.s.Peek(0); ok && b == ']' {
		p.s.Read()
		return &ast.ListLit{Node: ast.Node{Span: p.s.PState(start)}, Bracketed: true}, nil
	}
	first, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	items := []ast.Expression{first}
	comma := false
	for {
		p.skipWhitespaceAndComments(true)
		b, ok := p.s.Peek(0)
		if ok && b == ',' {
			comma = true
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			next, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
			continue
		}
		break
	}
	if err := p.s.ExpectChar(']'); err != nil {
		return nil, err
	}
	return &ast.ListLit{Node: ast.Node{Span: p.s.PState(start)}, Items: items, Comma: comma, Bracketed: true}, nil
}

func (p *Parser) parseHexColor() (ast.Expression, error) {
	start := p.s.State()
	p.s.Read() // '#'
	var hex strings.Builder
	for {
		b, ok := p.s.Peek(0)
		if !ok || !isHexByte(b) {
			break
		}
		p.s.Read()
		hex.WriteByte(b)
	}
	c, err := value.ParseHex("#" + hex.String())
	if err != nil {
		return nil, p.errorf("Expected hex digit.")
	}
	return &ast.ColorLit{Node: ast.Node{Span: p.s.PState(start)}, Color: c}, nil
}

func isHexByte(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (p *Parser) parseQuotedString(quote byte) (ast.Expression, error) {
	start := p.s.State()
	p.s.Read()
	var frag strings.Builder
	var fragments []string
	var holes []ast.Expression
	for {
		b, ok := p.s.Peek(0)
		if !ok {
			return nil, p.errorf("Expected %q.", string(quote))
		}
		if b == quote {
			p.s.Read()
			break
		}
		if b == '\\' {
			p.s.Read()
			if eb, ok := p.s.Peek(0); ok {
				p.s.Read()
				frag.WriteByte(eb)
			}
			continue
		}
		if b == '#' {
			if nb, ok2 := p.s.Peek(1); ok2 && nb == '{' {
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
	sp := p.s.PState(start)
	if len(holes) == 0 {
		return &ast.StringLit{Node: ast.Node{Span: sp}, Text: fragments[0], Quoted: true}, nil
	}
	return &ast.InterpolatedString{
		Node:   ast.Node{Span: sp},
		Parts:  &ast.Interpolation{Node: ast.Node{Span: sp}, Fragments: fragments, Holes: holes},
		Quoted: true,
	}, nil
}

func (p *Parser) parseNumber() (ast.Expression, error) {
	start := p.s.State()
	var num strings.Builder
	for {
		b, ok := p.s.Peek(0)
		if !ok || !isDigit(b) {
			break
		}
		p.s.Read()
		num.WriteByte(b)
	}
	if b, ok := p.s.Peek(0); ok && b == '.' {
		if nb, ok2 := p.s.Peek(1); ok2 && isDigit(nb) {
			p.s.Read()
			num.WriteByte('.')
			for {
				b, ok := p.s.Peek(0)
				if !ok || !isDigit(b) {
					break
				}
				p.s.Read()
				num.WriteByte(b)
			}
		}
	}
	if b, ok := p.s.Peek(0); ok && (b == 'e' || b == 'E') {
		if nb, ok2 := p.s.Peek(1); ok2 && (isDigit(nb) || ((nb == '+' || nb == '-') && func() bool { c, ok3 := p.s.Peek(2); return ok3 && isDigit(c) }())) {
			p.s.Read()
			num.WriteByte('e')
			if sb, ok := p.s.Peek(0); ok && (sb == '+' || sb == '-') {
				p.s.Read()
				num.WriteByte(sb)
			}
			for {
				b, ok := p.s.Peek(0)
				if !ok || !isDigit(b) {
					break
				}
				p.s.Read()
				num.WriteByte(b)
			}
		}
	}
	val, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return nil, p.errorf("Expected number.")
	}
	unit := ""
	if b, ok := p.s.Peek(0); ok && b == '%' {
		p.s.Read()
		unit = "%"
	} else if ok && isNameStartByte(b) {
		unit = p.readIdent()
	}
	return &ast.NumberLit{Node: ast.Node{Span: p.s.PState(start)}, Val: val, Unit: unit}, nil
}

// parseIdentOrCall reads a bare identifier and decides, based on a
// trailing unglued `(`, whether it's a function call, the `if(...)`
// macro, a boolean/null literal, or a plain identifier (treated as an
// unquoted string -- Sass has no separate "keyword" expression type).
func (p *Parser) parseIdentOrCall() (ast.Expression, error) {
	start := p.s.State()
	name := p.readIdent()
	if (name == "U" || name == "u") && func() bool { b, ok := p.s.Peek(0); return ok && b == '+' }() {
		return p.parseUnicodeRange(start, name)
	}
	switch name {
	case "true":
		return &ast.BoolLit{Node: ast.Node{Span: p.s.PState(start)}, Val: true}, nil
	case "false":
		return &ast.BoolLit{Node: ast.Node{Span: p.s.PState(start)}, Val: false}, nil
	case "null":
		return &ast.NullLit{Node: ast.Node{Span: p.s.PState(start)}}, nil
	}
	if b, ok := p.s.Peek(0); ok && b == '(' {
		if name == "if" {
			return p.parseIfMacro(start)
		}
		if isRawFunction(name) {
			return p.parseRawFunction(start, name)
		}
		expr, err := p.parseCallArgs(start, name)
		if err != nil {
			return nil, err
		}
		call := expr.(*ast.FuncCall)
		if f, s, found := p.frames.Lookup(p.curFrame(), env.FnKey(name)); found {
			call.ResolvedFrame, call.ResolvedSlot = f, s
		}
		return call, nil
	}
	if b, ok := p.s.Peek(0); ok && b == '#' {
		if nb, ok2 := p.s.Peek(1); ok2 && nb == '{' {
			rest, err := p.parseInterpolated(stopAtByte(',', ')', ']', '}', ';', ':'))
			if err != nil {
				return nil, err
			}
			rest.Fragments[0] = name + rest.Fragments[0]
			return &ast.InterpolatedIdent{Node: ast.Node{Span: p.s.PState(start)}, Parts: rest}, nil
		}
	}
	return &ast.StringLit{Node: ast.Node{Span: p.s.PState(start)}, Text: name, Quoted: false}, nil
}

func (p *Parser) parseIfMacro(start scan.State) (ast.Expression, error) {
	p.s.Read() // '('
	p.skipWhitespaceAndComments(true)
	cond, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.ExpectChar(','); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	then, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.ExpectChar(','); err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	els, err := p.parseSpaceList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespaceAndComments(true)
	if err := p.s.ExpectChar(')'); err != nil {
		return nil, err
	}
	return &ast.IfExpr{Node: ast.Node{Span: p.s.PState(start)}, Cond: cond, Then: then, Else: els}, nil
}

// parseCallArgs parses `(args)` into a FuncCall's argument lists, handling
// positional, `$name: value` keyword, and `...` rest/splice forms.
func (p *Parser) parseCallArgs(start scan.State, name string) (ast.Expression, error) {
	p.s.Read() // '('
	call := &ast.FuncCall{Node: ast.Node{Span: p.s.PState(start)}, Name: ast.NewPlain(p.s.PState(start), name), Keyword: map[string]ast.Expression{}, ResolvedFrame: -1}
	p.skipWhitespaceAndComments(true)
	if b, ok := p.s.Peek(0); ok && b == ')' {
		p.s.Read()
		call.Node.Span = p.s.PState(start)
		return call, nil
	}
	for {
		p.skipWhitespaceAndComments(true)
		if p.s.Scan("...") {
			rest, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			call.Rest = rest
			p.skipWhitespaceAndComments(true)
			break
		}
		save := p.s.State()
		if b, ok := p.s.Peek(0); ok && b == '$' {
			p.s.Read()
			kwName := p.readIdent()
			afterName := p.s.State()
			p.skipWhitespace()
			if b2, ok2 := p.s.Peek(0); ok2 && b2 == ':' {
				p.s.Read()
				p.skipWhitespaceAndComments(true)
				val, err := p.parseSpaceList()
				if err != nil {
					return nil, err
				}
				call.Keyword[kwName] = val
				call.KeywordOrder = append(call.KeywordOrder, kwName)
				goto afterArg
			}
			p.s.ResetState(save)
			_ = afterName
		}
		{
			val, err := p.parseSpaceList()
			if err != nil {
				return nil, err
			}
			call.Positional = append(call.Positional, val)
		}
	afterArg:
		p.skipWhitespaceAndComments(true)
		if b, ok := p.s.Peek(0); ok && b == ',' {
			p.s.Read()
			p.skipWhitespaceAndComments(true)
			if b2, ok2 := p.s.Peek(0); ok2 && b2 == ')' {
				break
			}
			continue
		}
		break
	}
	if err := p.s.ExpectChar(')'); err != nil {
		return nil, err
	}
	call.Node.Span = p.s.PState(start)
	return call, nil
}

// isRawFunction reports whether a call's argument text must be preserved
// verbatim instead of parsed as a Sass expression: url() bodies are not
// expressions at all, and calc()-family math is CSS's, not Sass's, with
// only #{...} holes evaluated.
func isRawFunction(name string) bool {
	switch name {
	case "url", "calc", "-webkit-calc", "-moz-calc", "expression", "element":
		return true
	}
	return false
}

// parseRawFunction captures `name( ... )` as literal text with balanced
// parentheses, honoring interpolation holes inside the body.
func (p *Parser) parseRawFunction(start scan.State, name string) (ast.Expression, error) {
	var frag strings.Builder
	frag.WriteString(name)
	var fragments []string
	var holes []ast.Expression
	depth := 0
	for {
		b, ok := p.s.Peek(0)
		if !ok {
			return nil, p.errorf("Expected %q.", ")")
		}
		if b == '#' {
			if nb, ok2 := p.s.Peek(1); ok2 && nb == '{' {
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
		if b == '(' {
			depth++
		} else if b == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	fragments = append(fragments, frag.String())
	sp := p.s.PState(start)
	return &ast.InterpolatedIdent{
		Node:  ast.Node{Span: sp},
		Parts: &ast.Interpolation{Node: ast.Node{Span: sp}, Fragments: fragments, Holes: holes},
	}, nil
}

// parseUnicodeRange reads `U+0025-00FF` / `U+4??` forms as an unquoted
// literal; the value layer has no dedicated range type, matching how the
// output just echoes the source spelling.
func (p *Parser) parseUnicodeRange(start scan.State, prefix string) (ast.Expression, error) {
	var b strings.Builder
	b.WriteString(prefix)
	p.s.Read() // '+'
	b.WriteByte('+')
	seen := false
	for {
		c, ok := p.s.Peek(0)
		if !ok {
			break
		}
		if isHexByte(c) || c == '?' || (c == '-' && seen) {
			p.s.Read()
			b.WriteByte(c)
			seen = true
			continue
		}
		break
	}
	if !seen {
		return nil, p.errorf("Expected hex digit or %q.", "?")
	}
	return &ast.StringLit{Node: ast.Node{Span: p.s.PState(start)}, Text: b.String()}, nil
}
