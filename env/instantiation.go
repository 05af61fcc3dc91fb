package env

import "github.com/sassgo/sass/value"

// Instantiation is one runtime activation of a parse-time Frame: a value
// slot vector plus a link to the instantiation that was active when this
// scope was entered (its lexical parent, not necessarily its caller --
// mixins and functions close over their declaration site, not their call
// site).
type Instantiation struct {
	Frame  int
	Slots  []value.Value
	Parent *Instantiation
}

// New instantiates frame, sizing its slot vector from the table and
// linking to parent.
func New(t *Table, frame int, parent *Instantiation) *Instantiation {
	return &Instantiation{Frame: frame, Slots: make([]value.Value, t.Size(frame)), Parent: parent}
}

// Get walks up from inst through Parent links looking for the instantiation
// whose Frame matches, returning its slot value.
func (inst *Instantiation) Get(frame, slot int) (value.Value, bool) {
	for cur := inst; cur != nil; cur = cur.Parent {
		if cur.Frame == frame {
			if slot < 0 || slot >= len(cur.Slots) {
				return nil, false
			}
			v := cur.Slots[slot]
			if v == nil {
				return nil, false
			}
			return v, true
		}
	}
	return nil, false
}

// Set assigns into the instantiation matching frame, returning false if no
// such instantiation is currently live (a bug in frame resolution, or a
// `!global` write before the root instantiation exists).
func (inst *Instantiation) Set(frame, slot int, v value.Value) bool {
	for cur := inst; cur != nil; cur = cur.Parent {
		if cur.Frame == frame {
			if slot < 0 || slot >= len(cur.Slots) {
				return false
			}
			cur.Slots[slot] = v
			return true
		}
	}
	return false
}

// Root walks to the outermost instantiation, used for `!global` writes
// and lexical fallback lookups that were not resolved at parse time.
func (inst *Instantiation) Root() *Instantiation {
	cur := inst
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}
