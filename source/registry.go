package source

import "fmt"

// Registry assigns ids to sources and owns them for the lifetime of one
// compile. It is never shared between concurrent compiles.
type Registry struct {
	sources []*Source
}

// NewRegistry returns an empty, process-local registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a source and returns it with its ID populated.
func (r *Registry) Add(path, importPath, content string, dialect Dialect) *Source {
	if dialect == DialectAuto {
		dialect = DialectFromPath(path)
	}
	s := &Source{
		ID:         ID(len(r.sources)),
		Path:       path,
		ImportPath: importPath,
		Content:    content,
		Dialect:    dialect,
	}
	r.sources = append(r.sources, s)
	return s
}

// AddSynthetic registers a source that wraps another, for re-parsed
// interpolated text (selectors, media queries, and similar contexts).
func (r *Registry) AddSynthetic(wrapping *Source, insertPos Offset, content string) *Source {
	s := &Source{
		ID:         ID(len(r.sources)),
		Path:       wrapping.Path,
		ImportPath: wrapping.ImportPath,
		Content:    content,
		Dialect:    wrapping.Dialect,
		Wrapping:   wrapping,
		InsertPos:  insertPos,
	}
	r.sources = append(r.sources, s)
	return s
}

// Get returns the source registered under id.
func (r *Registry) Get(id ID) *Source {
	if int(id) < 0 || int(id) >= len(r.sources) {
		panic(fmt.Sprintf("source: invalid id %d", id))
	}
	return r.sources[id]
}

// Len reports how many sources have been registered.
func (r *Registry) Len() int { return len(r.sources) }
