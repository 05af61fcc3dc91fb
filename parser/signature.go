package parser

import (
	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/source"
)

// ParseSignature parses a custom-function signature string of the form
// `name($arg1, $arg2: default, $rest...)` into the function name and its
// formal parameter list, reusing the same parameter grammar declarations
// use. The signature is registered as its own synthetic source so errors
// in it carry usable positions. Parameters are hoisted into a fresh frame
// whose index is returned for instantiation at call time.
func ParseSignature(reg *source.Registry, frames *env.Table, signature string) (string, []ast.Param, int, error) {
	src := reg.Add("signature:"+signature, signature, signature, source.DialectSCSS)
	p, err := New(src, frames)
	if err != nil {
		return "", nil, 0, err
	}
	name, err := p.expectIdent("function name")
	if err != nil {
		return "", nil, 0, err
	}
	frame := p.pushScope()
	var params []ast.Param
	if b, ok := p.s.Peek(0); ok && b == '(' {
		params, err = p.parseParamList()
		if err != nil {
			p.popScope()
			return "", nil, 0, err
		}
	}
	p.popScope()
	p.skipWhitespace()
	if !p.s.AtEnd() {
		return "", nil, 0, p.errorf("Expected end of signature.")
	}
	return name, params, frame, nil
}
