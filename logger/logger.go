// Package logger buffers the non-fatal events a compile produces --
// `@warn`, `@debug`, and deprecation warnings -- alongside the call stack
// active at the moment of each event, so messages can be rendered after the
// compile with source context. Fatal errors do not pass through here; they
// unwind evaluation directly.
package logger

import (
	"fmt"
	"strings"

	"github.com/sassgo/sass/source"
)

// Kind tags one buffered event.
type Kind int

const (
	KindWarning Kind = iota
	KindDeprecation
	KindDebug
)

func (k Kind) String() string {
	switch k {
	case KindDeprecation:
		return "DEPRECATION WARNING"
	case KindDebug:
		return "DEBUG"
	default:
		return "WARNING"
	}
}

// Entry is one buffered event with the trace captured when it fired.
type Entry struct {
	Kind    Kind
	Message string
	Span    source.Span
	Trace   []string // one line per frame, innermost first
}

// Logger accumulates entries in evaluation order.
type Logger struct {
	entries []Entry
}

func New() *Logger { return &Logger{} }

// Warn buffers a `@warn` event.
func (l *Logger) Warn(msg string, span source.Span, trace []string) {
	l.entries = append(l.entries, Entry{Kind: KindWarning, Message: msg, Span: span, Trace: trace})
}

// Deprecation buffers a deprecation warning.
func (l *Logger) Deprecation(msg string, span source.Span, trace []string) {
	l.entries = append(l.entries, Entry{Kind: KindDeprecation, Message: msg, Span: span, Trace: trace})
}

// Debug buffers a `@debug` event.
func (l *Logger) Debug(msg string, span source.Span, trace []string) {
	l.entries = append(l.entries, Entry{Kind: KindDebug, Message: msg, Span: span, Trace: trace})
}

// Entries returns the buffered events in evaluation order.
func (l *Logger) Entries() []Entry { return l.entries }

// Render formats every entry as plain text: a header, the message, a
// snippet of the offending source line with a caret under the span start,
// and the stack trace one line per frame.
func (l *Logger) Render(reg *source.Registry) string {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(RenderEntry(reg, e))
	}
	return b.String()
}

// RenderEntry renders one event.
func RenderEntry(reg *source.Registry, e Entry) string {
	var b strings.Builder
	if e.Kind == KindDebug {
		fmt.Fprintf(&b, "%s:%d DEBUG: %s\n", e.Span.Path(reg), e.Span.StartLine()+1, e.Message)
		return b.String()
	}
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Message)
	b.WriteString(Snippet(reg, e.Span))
	for _, line := range e.Trace {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Snippet renders the offending source line with a caret under the span
// start, the shape errors and warnings share.
func Snippet(reg *source.Registry, sp source.Span) string {
	src := reg.Get(sp.SourceID)
	line := src.Line(sp.StartLine())
	if line == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %d | %s\n", sp.StartLine()+1, line)
	prefix := len(fmt.Sprintf("  %d | ", sp.StartLine()+1))
	b.WriteString(strings.Repeat(" ", prefix+sp.StartColumn()))
	b.WriteString("^\n")
	return b.String()
}
