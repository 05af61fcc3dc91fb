package eval

import (
	"strings"

	"github.com/sassgo/sass/ast"
	"github.com/sassgo/sass/cssom"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/importer"
	"github.com/sassgo/sass/parser"
	"github.com/sassgo/sass/source"
)

func (e *Evaluator) evalImport(st *ast.ImportStatement) error {
	for _, entry := range st.Entries {
		raw, err := e.evalInterpolation(entry.URL)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)

		var media string
		if entry.Media != nil {
			m, err := e.evalInterpolation(entry.Media)
			if err != nil {
				return err
			}
			media = strings.TrimSpace(m)
		}

		if media != "" || isStaticImport(raw) {
			prelude := raw
			if media != "" {
				prelude += " " + media
			}
			e.tree.Add(e.parent, cssom.Node{Kind: cssom.KindAtRule, AtRuleName: "import", Prelude: prelude, Span: st.Span})
			continue
		}

		if err := e.dynamicImport(st, unquoteURL(raw)); err != nil {
			return err
		}
	}
	return nil
}

// isStaticImport classifies a URL on its own text: one that ends with
// `.css`, begins with `//`, is an http(s) URL, or is wrapped in `url(...)`
// stays a plain CSS import in the output. An entry carrying a media/supports
// tail is static too; evalImport checks that before calling here.
func isStaticImport(raw string) bool {
	url := unquoteURL(raw)
	switch {
	case strings.HasPrefix(raw, "url("):
		return true
	case strings.HasSuffix(url, ".css"):
		return true
	case strings.HasPrefix(url, "//"):
		return true
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return true
	}
	return false
}

func unquoteURL(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// dynamicImport resolves, parses, and evaluates a Sass import in place: the
// custom-importer chain is consulted in priority order, then the default
// file-system resolver; every resolved entry's statements run in the
// current scope under a trace wrapper for error context.
func (e *Evaluator) dynamicImport(st *ast.ImportStatement, url string) error {
	parentPath := e.reg.Get(st.Span.SourceID).Path

	entries, err := e.importers.Resolve(url, parentPath)
	if err != nil {
		return e.wrap(st.Span, err)
	}
	if len(entries) == 0 && e.resolver != nil {
		entries, err = e.resolver.Resolve(url, parentPath)
		if err != nil {
			return e.wrap(st.Span, err)
		}
	}
	if len(entries) == 0 {
		return e.errorf(st.Span, "File to import not found or unreadable: %s.", url)
	}

	// Multiple entries for one URL concatenate their statements in order.
	for _, entry := range entries {
		if err := e.evalImportEntry(st, entry); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalImportEntry(st *ast.ImportStatement, entry importer.Entry) error {
	abs := entry.AbsPath
	if abs == "" {
		abs = entry.ImportPath
	}
	if e.importing[abs] {
		return e.errorf(st.Span, "An @import loop has been found: %s imports %s.", e.reg.Get(st.Span.SourceID).Path, abs)
	}

	content := entry.Contents
	dialect := entry.Syntax
	if dialect == source.DialectAuto {
		dialect = source.DialectFromPath(abs)
	}
	if dialect == source.DialectSass {
		content = parser.ConvertIndented(content)
	}

	src := e.reg.Add(abs, entry.ImportPath, content, dialect)
	p, err := parser.New(src, e.frames)
	if err != nil {
		return e.wrap(st.Span, err)
	}
	sheet, err := p.Parse()
	if err != nil {
		return err
	}

	if err := e.stack.Push(env.CallFrame{Kind: env.CallImport, Name: entry.ImportPath, Span: st.Span}); err != nil {
		return e.wrap(st.Span, err)
	}
	defer e.stack.Pop()

	e.importing[abs] = true
	defer delete(e.importing, abs)

	trace := e.tree.Add(e.parent, cssom.Node{Kind: cssom.KindImportTrace, AtRuleName: abs, Span: st.Span})
	prevParent := e.parent
	e.parent = trace
	ret, err := e.execStatements(sheet.Body)
	e.parent = prevParent
	if err != nil {
		return err
	}
	if ret != nil {
		return e.errorf(st.Span, "@return may only be used within a function.")
	}
	return nil
}
