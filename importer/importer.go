// Package importer resolves `@import` URLs to source text. Custom importers
// form an ordered chain consulted first; the default resolver walks an
// fs.FS through the parent file's directory and the configured include
// paths, trying the Sass candidate spellings (a URL that already ends in
// `.scss`, `.sass` or `.css` as written; any other URL with each of those
// extensions; each with and without the `_partial` prefix).
package importer

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sassgo/sass/source"
)

// Entry is one resolved import: the path as requested, the absolute path it
// resolved to, its contents, an optional source map, and the dialect to
// parse it with.
type Entry struct {
	ImportPath string
	AbsPath    string
	Contents   string
	SourceMap  string
	Syntax     source.Dialect
}

// Importer resolves an import URL in the context of the importing file. An
// empty result with nil error means "not handled, try the next importer".
type Importer interface {
	Resolve(importPath, parentPath string) ([]Entry, error)
}

// Func adapts a plain function to the Importer interface, the way custom
// importers are registered through compile options.
type Func func(importPath, parentPath string) ([]Entry, error)

func (f Func) Resolve(importPath, parentPath string) ([]Entry, error) {
	return f(importPath, parentPath)
}

// Chain consults importers in registration order; the first that returns a
// non-empty entry list wins.
type Chain struct {
	importers []Importer
}

func NewChain(importers ...Importer) *Chain {
	return &Chain{importers: importers}
}

func (c *Chain) Add(i Importer) { c.importers = append(c.importers, i) }

// Resolve runs the chain. A nil result means no importer handled the URL
// and the caller should fall back to the default resolver.
func (c *Chain) Resolve(importPath, parentPath string) ([]Entry, error) {
	for _, imp := range c.importers {
		entries, err := imp.Resolve(importPath, parentPath)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}
	return nil, nil
}

// FSResolver is the default file-system resolver over an fs.FS, with an
// ordered include-path list and a per-compile existence cache (resolution
// probes the same candidate paths repeatedly across imports).
type FSResolver struct {
	fsys         fs.FS
	includePaths []string
	exists       map[string]bool
}

func NewFSResolver(fsys fs.FS, includePaths []string) *FSResolver {
	return &FSResolver{fsys: fsys, includePaths: includePaths, exists: make(map[string]bool)}
}

func (r *FSResolver) fileExists(p string) bool {
	if cached, ok := r.exists[p]; ok {
		return cached
	}
	info, err := fs.Stat(r.fsys, p)
	ok := err == nil && !info.IsDir()
	r.exists[p] = ok
	return ok
}

// candidates lists the spellings tried for one URL within one directory: a
// URL ending in `.scss`, `.sass` or `.css` as written and as a partial; any
// other URL with each extension appended, plain then partial. The
// extensionless path itself is not tried.
func candidates(url string) []string {
	dir, base := path.Split(url)
	if strings.HasSuffix(base, ".scss") || strings.HasSuffix(base, ".sass") || strings.HasSuffix(base, ".css") {
		return []string{url, dir + "_" + base}
	}
	var out []string
	for _, ext := range []string{".scss", ".sass", ".css"} {
		out = append(out, dir+base+ext, dir+"_"+base+ext)
	}
	return out
}

// Resolve implements Importer: parent-relative lookup first, then each
// include path in order.
func (r *FSResolver) Resolve(importPath, parentPath string) ([]Entry, error) {
	dirs := []string{path.Dir(parentPath)}
	dirs = append(dirs, r.includePaths...)

	var matches []string
	for _, dir := range dirs {
		for _, cand := range candidates(importPath) {
			full := path.Join(dir, cand)
			if r.fileExists(full) {
				matches = append(matches, full)
			}
		}
		if len(matches) > 0 {
			break
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("import %q is ambiguous: %s", importPath, strings.Join(matches, ", "))
	}

	content, err := fs.ReadFile(r.fsys, matches[0])
	if err != nil {
		return nil, fmt.Errorf("reading import %q: %w", importPath, err)
	}
	return []Entry{{
		ImportPath: importPath,
		AbsPath:    matches[0],
		Contents:   string(content),
		Syntax:     source.DialectFromPath(matches[0]),
	}}, nil
}
