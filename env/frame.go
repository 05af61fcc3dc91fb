// Package env implements the environment model: parse-time frames (fixed
// slot vectors, one per hoisted variable/mixin/function in a scope) and the
// runtime instantiation stack the evaluator pushes and pops as it enters
// and leaves scopes. Names are resolved to a (frame, slot) pair wherever
// possible at parse time; anything left unresolved falls back to lexical
// lookup at evaluation time by walking the instantiation chain.
package env

// Frame is a parse-time scope descriptor: the ordered list of names
// hoisted into it (variables, mixins, functions share one slot space per
// scope, mixins and functions under the keys MixinKey and FnKey build) and the
// frame that lexically encloses it, or -1 for the root.
type Frame struct {
	Parent int
	Names  []string
}

// Table owns every Frame allocated while parsing one stylesheet (plus
// anything it @imports into the same frame space), addressed by index.
type Table struct {
	frames []Frame
}

// NewTable creates a table pre-seeded with the root (global) frame at
// index 0.
func NewTable() *Table {
	return &Table{frames: []Frame{{Parent: -1}}}
}

const Root = 0

// NewFrame allocates a child frame of parent and returns its index.
func (t *Table) NewFrame(parent int) int {
	t.frames = append(t.frames, Frame{Parent: parent})
	return len(t.frames) - 1
}

// Declare registers name in the given frame, returning its slot. Declaring
// the same name twice in one frame (shadowing within a single scope, e.g.
// a repeated `@each` variable) reuses the existing slot rather than
// growing it, matching how a scope only ever needs one binding per name.
func (t *Table) Declare(frame int, name string) int {
	f := &t.frames[frame]
	for i, n := range f.Names {
		if n == name {
			return i
		}
	}
	f.Names = append(f.Names, name)
	return len(f.Names) - 1
}

// Lookup resolves name starting at frame and walking Parent links,
// returning the (frame, slot) pair and true on success.
func (t *Table) Lookup(frame int, name string) (int, int, bool) {
	for frame >= 0 {
		f := &t.frames[frame]
		for i, n := range f.Names {
			if n == name {
				return frame, i, true
			}
		}
		frame = f.Parent
	}
	return 0, 0, false
}

// Size returns the slot count a frame needs at instantiation time.
func (t *Table) Size(frame int) int {
	return len(t.frames[frame].Names)
}

func (t *Table) ParentOf(frame int) int {
	return t.frames[frame].Parent
}

// MixinKey and FnKey namespace mixin and function names within the shared
// per-scope slot space, so `$a`, `@mixin a` and `@function a` coexist the
// way Sass's separate namespaces require. A ':' can never appear in a CSS
// identifier, so the keys cannot collide with variable names.
func MixinKey(name string) string { return "mixin:" + name }

func FnKey(name string) string { return "fn:" + name }
