// Package value implements the Sass runtime value system described in the
// data model: numbers with units, RGBA/HSLA colors, quoted/unquoted
// strings, lists, maps, booleans, null and function references, plus the
// arithmetic and comparison operators defined over them.
//
// Every concrete type here is treated as immutable after construction, so a
// Value can be freely shared between environment frames without copying;
// even Color's cached HSL form is never filled in place: WithHSLCache
// returns a new copy with the cache set.
package value

import "fmt"

// Kind tags a Value's concrete representation.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindColor
	KindString
	KindList
	KindMap
	KindFunction
	KindArgumentList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindArgumentList:
		return "arglist"
	default:
		return "unknown"
	}
}

// Value is the tagged variant every expression evaluates to.
type Value interface {
	Kind() Kind
	// Inspect renders the value the way Sass's `inspect()`/debug output
	// does: quotes are shown, lists show brackets/separators. CSS
	// serialization (quote-less, comma-joined lists) is a separate
	// concern left to the emitter.
	Inspect() string
	// Truthy implements the language's truthiness rule: every value is
	// truthy except null and the boolean false.
	Truthy() bool
}

// Null is the singular null value.
type Null struct{}

func (Null) Kind() Kind      { return KindNull }
func (Null) Inspect() string { return "null" }
func (Null) Truthy() bool    { return false }

// TheNull is the single shared null instance; Values are immutable so
// sharing is safe and avoids allocation at every `null` literal.
var TheNull = Null{}

// Bool wraps a boolean.
type Bool bool

func (b Bool) Kind() Kind { return KindBool }
func (b Bool) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Truthy() bool { return bool(b) }

// True and False are the two shared boolean instances.
var (
	True  = Bool(true)
	False = Bool(false)
)

// FromBool converts a plain bool into the shared Bool values.
func FromBool(b bool) Bool {
	if b {
		return True
	}
	return False
}

// FunctionRef points at a callable without invoking it; `get-function()`
// and `call()` pass these around. The concrete callable type lives in the
// eval package to avoid an import cycle, so FunctionRef stores an opaque
// handle the evaluator knows how to dispatch.
type FunctionRef struct {
	Name     string
	Callable interface{} // *eval.Callable, opaque here
}

func (f FunctionRef) Kind() Kind      { return KindFunction }
func (f FunctionRef) Truthy() bool    { return true }
func (f FunctionRef) Inspect() string { return fmt.Sprintf("get-function(%q)", f.Name) }

// TypeName returns the Sass-visible type name used by type-of() and error
// messages, distinct from Kind.String() which is for internal debugging.
func TypeName(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindFunction:
		return "function"
	case KindList, KindArgumentList:
		return "list"
	default:
		return "unknown"
	}
}
