package catalog

import (
	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/node"
)

// noData is shared by node types with no per-instance constants (the 3D
// and 2D union, intersection and difference combinators) — cloning it is
// a no-op since it carries no state.
type noData struct{}

func (noData) Clone() node.NodeData { return noData{} }

// ParameterData marks a node as a custom node type's promoted input: its
// exposed Name, declared Type and Multi (array-argument) flag become the
// corresponding fields of the node.Parameter the enclosing network
// exposes once promoted to a node type.
type ParameterData struct {
	Name  string
	Type  node.DataType
	Multi bool
}

func (d *ParameterData) Clone() node.NodeData { c := *d; return &c }

// ParameterSpec reports the promoted input this node describes. It
// satisfies bridge's unexported parameterSpec interface, letting
// PromoteNetworkToType read a parameter node's declared shape without
// this package importing bridge.
func (d *ParameterData) ParameterSpec() (name string, typ node.DataType, multi bool) {
	return d.Name, d.Type, d.Multi
}

// ConstBoolData is a constant_bool node's stored value.
type ConstBoolData struct{ Value bool }

func (d *ConstBoolData) Clone() node.NodeData { c := *d; return &c }

// ConstIntData is a constant_int node's stored value.
type ConstIntData struct{ Value int64 }

func (d *ConstIntData) Clone() node.NodeData { c := *d; return &c }

// ConstFloatData is a constant_float node's stored value.
type ConstFloatData struct{ Value float64 }

func (d *ConstFloatData) Clone() node.NodeData { c := *d; return &c }

// ConstStringData is a constant_string node's stored value.
type ConstStringData struct{ Value string }

func (d *ConstStringData) Clone() node.NodeData { c := *d; return &c }

// UnitCellData is a unit_cell node's stored basis vectors, defaulting to
// the cubic diamond preset.
type UnitCellData struct {
	A, B, C latticemath.DVec3
}

func (d *UnitCellData) Clone() node.NodeData { c := *d; return &c }

func (d *UnitCellData) cell() latticemath.UnitCellStruct {
	return latticemath.NewUnitCellStruct(d.A, d.B, d.C)
}

// SphereData is a sphere node's stored centre/radius.
type SphereData struct {
	Center latticemath.DVec3
	Radius float64
}

func (d *SphereData) Clone() node.NodeData { c := *d; return &c }

// CuboidData is a cuboid node's stored minimum corner and per-axis
// extent.
type CuboidData struct {
	MinCorner latticemath.DVec3
	Extent    latticemath.DVec3
}

func (d *CuboidData) Clone() node.NodeData { c := *d; return &c }

// HalfSpaceData is a half_space node's stored Miller index, integer
// shift, and lattice-space centre point.
type HalfSpaceData struct {
	MillerIndex latticemath.IVec3
	Shift       int64
	Center      latticemath.IVec3
}

func (d *HalfSpaceData) Clone() node.NodeData { c := *d; return &c }

// TransformData is a geo_trans node's stored rigid transform.
type TransformData struct {
	Rotation    latticemath.Quaternion
	Translation latticemath.DVec3
}

func (d *TransformData) Clone() node.NodeData { c := *d; return &c }

// ExtrudeData is an extrude node's stored height/direction/infinite flag.
type ExtrudeData struct {
	Height    float64
	Direction latticemath.DVec3
	Infinite  bool
}

func (d *ExtrudeData) Clone() node.NodeData { c := *d; return &c }

// AtomEditData is an atom_edit node's stored diff text (§4.8's atom-diff
// grammar, parsed by motif.ParseAtomDiffText).
type AtomEditData struct {
	DiffText string
}

func (d *AtomEditData) Clone() node.NodeData { c := *d; return &c }

// MotifFillData is a motif_fill node's stored motif definition text
// (motif.ParseMotif's grammar) plus the parameter-element bindings
// supplied at fill time.
type MotifFillData struct {
	MotifText string
	Bindings  map[string]int32
}

func (d *MotifFillData) Clone() node.NodeData {
	c := *d
	c.Bindings = make(map[string]int32, len(d.Bindings))
	for k, v := range d.Bindings {
		c.Bindings[k] = v
	}
	return &c
}
