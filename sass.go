// Package sass is the public compile surface: it wires the source
// registry, parser, evaluator, extender, and emitter into one Compile call,
// and exposes an http.Handler/middleware pair that serves compiled CSS the
// same way the library's API callers consume it.
package sass

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/emit"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/eval"
	"github.com/sassgo/sass/importer"
	"github.com/sassgo/sass/logger"
	"github.com/sassgo/sass/parser"
	"github.com/sassgo/sass/scan"
	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

// Sentinel errors for callers that branch on failure class.
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// Import is the root input of one compile: a path for diagnostics and
// import resolution, optional inline content (read from FS when empty), and
// a dialect hint.
type Import struct {
	Path    string
	Content string
	Syntax  source.Dialect
}

// Function registers a custom function: a signature string like
// `grid-width($n, $gutter: 10px)` and the native callback invoked with the
// bound argument values in declaration order.
type Function struct {
	Signature string
	Fn        func(args []value.Value) (value.Value, error)
}

// Options configures one compile. The zero value means: expanded output,
// precision 10, no include paths, no headers, no custom importers or
// functions, and a 1024-frame call depth.
type Options struct {
	Style        emit.Style
	Precision    int
	IncludePaths []string
	Headers      []string
	Importers    []importer.Importer
	Functions    []Function
	// FS backs the default @import resolver and content loading; nil
	// disables file-system imports entirely.
	FS         fs.FS
	DepthLimit int
}

// Result is a successful compile: the CSS text, the emitter's position
// mappings, and the buffered warnings/debug events in evaluation order.
type Result struct {
	CSS      string
	Mappings []emit.Mapping
	Log      []logger.Entry
}

// Error is a failed compile: the message, the offending span, and the call
// stack captured at the failure point, pre-rendered with a source snippet.
type Error struct {
	Message  string
	Span     source.Span
	Trace    []string
	rendered string
}

func (e *Error) Error() string { return e.Message }

// Render returns the full human-readable report: header, message, source
// snippet with caret, and one line per stack frame.
func (e *Error) Render() string { return e.rendered }

// Compile runs the whole pipeline over one root import.
func Compile(imp Import, opts Options) (*Result, error) {
	if opts.Precision > 0 {
		value.Precision = opts.Precision
	} else {
		value.Precision = 10
	}

	reg := source.NewRegistry()
	frames := env.NewTable()
	log := logger.New()

	content := imp.Content
	if content == "" && imp.Path != "" && opts.FS != nil {
		data, err := fs.ReadFile(opts.FS, imp.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, imp.Path)
		}
		content = string(data)
	}

	dialect := imp.Syntax
	if dialect == source.DialectAuto {
		dialect = source.DialectFromPath(imp.Path)
	}
	if dialect == source.DialectSass {
		content = parser.ConvertIndented(content)
	}

	path := imp.Path
	if path == "" {
		path = "stdin"
	}
	src := reg.Add(path, path, content, dialect)

	// Custom headers parse as synthetic statements prepended to the root.
	sheet, err := parseWithHeaders(reg, frames, src, opts.Headers)
	if err != nil {
		return nil, renderError(reg, err)
	}

	chain := importer.NewChain(opts.Importers...)
	var resolver *importer.FSResolver
	if opts.FS != nil {
		resolver = importer.NewFSResolver(opts.FS, opts.IncludePaths)
	}

	var custom []eval.Custom
	for _, f := range opts.Functions {
		custom = append(custom, eval.Custom{Signature: f.Signature, Fn: f.Fn})
	}

	ev, err := eval.New(eval.Config{
		Registry:   reg,
		Frames:     frames,
		Logger:     log,
		Importers:  chain,
		Resolver:   resolver,
		Functions:  custom,
		DepthLimit: opts.DepthLimit,
	})
	if err != nil {
		return nil, renderError(reg, err)
	}

	tree, err := ev.Run(sheet)
	if err != nil {
		return nil, renderError(reg, err)
	}

	out := emit.New(opts.Style).Emit(tree)
	return &Result{CSS: out.CSS, Mappings: out.Mappings, Log: log.Entries()}, nil
}

// parseWithHeaders parses each custom header as its own synthetic source
// and splices the resulting statements ahead of the root's.
func parseWithHeaders(reg *source.Registry, frames *env.Table, src *source.Source, headers []string) (*ast.Stylesheet, error) {
	var prefix []ast.Statement
	for i, h := range headers {
		hsrc := reg.Add(fmt.Sprintf("header:%d", i), "", h, source.DialectSCSS)
		p, err := parser.New(hsrc, frames)
		if err != nil {
			return nil, err
		}
		sheet, err := p.Parse()
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, sheet.Body...)
	}
	p, err := parser.New(src, frames)
	if err != nil {
		return nil, err
	}
	sheet, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if len(prefix) > 0 {
		sheet.Body = append(prefix, sheet.Body...)
	}
	return sheet, nil
}

// renderError normalizes parse and runtime errors into *Error with the
// snippet-and-trace rendering attached.
func renderError(reg *source.Registry, err error) error {
	var sp source.Span
	var trace []string
	msg := err.Error()
	switch te := err.(type) {
	case *scan.Error:
		sp = te.Span
	case *eval.RuntimeError:
		sp = te.Span
		trace = te.Trace
	default:
		return fmt.Errorf("%w: %v", ErrCompilationFailed, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", msg)
	b.WriteString(logger.Snippet(reg, sp))
	for _, line := range trace {
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return &Error{Message: msg, Span: sp, Trace: trace, rendered: b.String()}
}
