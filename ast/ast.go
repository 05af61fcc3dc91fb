// Package ast implements the Sass AST as one tagged-variant enum per node
// family (Statement, Expression) plus shared span metadata, the way the
// data model calls for: no virtual dispatch in the data shape, visitors
// are type switches over the concrete node. Evaluation never mutates these
// nodes; the evaluator builds a separate CSS tree (see package cssom).
package ast

import "github.com/sassgo/sass/source"

// Node is embedded by every concrete AST type to carry its span.
type Node struct {
	Span source.Span
}

func (n Node) span() source.Span { return n.Span }

// Spanner is implemented by every AST node.
type Spanner interface {
	SourceSpan() source.Span
}

func (n Node) SourceSpan() source.Span { return n.Span }

// Statement is the marker interface for every statement-level node.
type Statement interface {
	Spanner
	stmt()
}

// Expression is the marker interface for every expression-level node.
type Expression interface {
	Spanner
	expr()
}

// Stylesheet is the parser's root node.
type Stylesheet struct {
	Node
	Body []Statement
}
