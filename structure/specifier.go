package structure

// EditId identifies an edit node in the owning node network's edit
// lineage (patterning, atom-fill, atom-edit nodes). See DESIGN.md for the
// width decision.
type EditId uint64

// PatternInstanceId names one instance produced by a patterning edit: the
// edit that produced it, and which instance (0-based) within that edit's
// output this is.
type PatternInstanceId struct {
	OwnerEditId   EditId
	InstanceIndex int
}

// AtomSpecifier is a stable identity for an atom under edit-history
// mutation (§3, §9). It is a path of PatternInstanceIds — one per
// patterning/copy edit the atom's lineage passed through — plus a
// terminal ChildIndex identifying which atom a primitive "create" edit
// produced.
//
// The stability theorem this type exists to satisfy: editing the past
// (reordering or mutating earlier edits) must not change the specifier of
// any atom produced by a later, still-valid edit, as long as that edit's
// dependencies remain identified by EditId. Flattening this to a single
// integer (e.g. a running counter) breaks that theorem the moment an
// earlier edit's output count changes, so the path is kept explicit
// rather than collapsed.
type AtomSpecifier struct {
	Path        []PatternInstanceId
	ChildIndex  int
}

// NewAtomSpecifier builds a specifier for a primitive "create" edit's
// output, with an empty path.
func NewAtomSpecifier(childIndex int) AtomSpecifier {
	return AtomSpecifier{ChildIndex: childIndex}
}

// Push returns a new specifier with inst appended to the path, used by
// copying/patterning edits to derive each instance's children's
// specifiers from the pattern body's specifiers.
func (s AtomSpecifier) Push(inst PatternInstanceId) AtomSpecifier {
	path := make([]PatternInstanceId, len(s.Path)+1)
	copy(path, s.Path)
	path[len(s.Path)] = inst
	return AtomSpecifier{Path: path, ChildIndex: s.ChildIndex}
}

// Equal reports whether s and o name the same atom.
func (s AtomSpecifier) Equal(o AtomSpecifier) bool {
	if s.ChildIndex != o.ChildIndex || len(s.Path) != len(o.Path) {
		return false
	}
	for i := range s.Path {
		if s.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}
