package motif

import "github.com/atomcore/atomcore/latticemath"

// ParameterElement declares a substitutable element slot in a motif: sites
// may reference it by name instead of a fixed chemical element, and the
// fill step resolves it to a concrete atomic number (DefaultAtomicNumber
// unless overridden).
type ParameterElement struct {
	Name                string
	DefaultAtomicNumber int32
}

// Site is one atom within a motif's unit cell. AtomicNumber is either a
// positive chemical element or, for a site that names a ParameterElement,
// the negative encoding -(parameterIndex+1) (first parameter is -1).
type Site struct {
	AtomicNumber int32
	Position     latticemath.DVec3
}

// IsParameterized reports whether the site's element is a parameter
// reference rather than a fixed chemical element.
func (s Site) IsParameterized() bool { return s.AtomicNumber < 0 }

// ParameterIndex returns the referenced parameter's index. Only valid when
// IsParameterized is true.
func (s Site) ParameterIndex() int { return int(-s.AtomicNumber) - 1 }

// SiteSpecifier names a site, optionally offset into a neighbouring unit
// cell along each lattice axis (-1, 0, or +1 per axis).
type SiteSpecifier struct {
	ID           string
	RelativeCell latticemath.IVec3
}

// MotifBond is an internal bond between two sites (possibly in adjacent
// unit cells, per each specifier's RelativeCell).
type MotifBond struct {
	Site1, Site2 SiteSpecifier
	Multiplicity int32
}

// Motif is a parsed motif definition: its parameter elements, its named
// sites, and the bonds between them.
type Motif struct {
	Parameters []ParameterElement
	Sites      map[string]Site
	Bonds      []MotifBond
}

// ResolveAtomicNumber returns a site's concrete atomic number, substituting
// bound's entry for a parameterized site (falling back to the parameter's
// default when bound omits it).
func (m Motif) ResolveAtomicNumber(site Site, bound map[string]int32) int32 {
	if !site.IsParameterized() {
		return site.AtomicNumber
	}
	param := m.Parameters[site.ParameterIndex()]
	if n, ok := bound[param.Name]; ok {
		return n
	}
	return param.DefaultAtomicNumber
}
