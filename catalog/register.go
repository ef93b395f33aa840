package catalog

import (
	"github.com/atomcore/atomcore/eval"
	"github.com/atomcore/atomcore/geonode"
	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/motif"
	"github.com/atomcore/atomcore/node"
	"github.com/atomcore/atomcore/structure"
)

// RegisterAll installs every built-in node type's NodeType (into reg) and
// BuiltinFunc (into ev). It fails only if a type name collides with one
// already registered.
func RegisterAll(reg *node.Registry, ev *eval.Evaluator) error {
	for _, t := range builtinTypes {
		if err := reg.Register(t.nodeType); err != nil {
			return err
		}
		ev.RegisterBuiltin(t.nodeType.Name, t.fn)
	}
	return nil
}

type builtinType struct {
	nodeType node.NodeType
	fn       eval.BuiltinFunc
}

var builtinTypes = []builtinType{
	{
		nodeType: node.NodeType{
			Name: "parameter", Category: "Network",
			Description: "A promoted input of the enclosing custom node type.",
			OutputType:  node.TypeNone,
			NewData:     func() node.NodeData { return &ParameterData{Name: "value", Type: node.TypeFloat} },
		},
		// Parameter nodes are never dispatched here: the evaluator
		// intercepts them via the current stack frame's bindings before a
		// builtin would be looked up. This entry exists only so the type
		// is known to the registry (e.g. for serialization).
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			return eval.None, nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "constant_bool", Category: "Scalar",
			OutputType: node.TypeBool,
			NewData:    func() node.NodeData { return &ConstBoolData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*ConstBoolData)
			return eval.Bool(d.Value), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "constant_int", Category: "Scalar",
			OutputType: node.TypeInt,
			NewData:    func() node.NodeData { return &ConstIntData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*ConstIntData)
			return eval.Int(d.Value), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "constant_float", Category: "Scalar",
			OutputType: node.TypeFloat,
			NewData:    func() node.NodeData { return &ConstFloatData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*ConstFloatData)
			return eval.Float(d.Value), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "constant_string", Category: "Scalar",
			OutputType: node.TypeString,
			NewData:    func() node.NodeData { return &ConstStringData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*ConstStringData)
			return eval.String(d.Value), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "unit_cell", Category: "Lattice",
			Parameters: []node.Parameter{
				{Name: "a", Type: node.TypeVec3},
				{Name: "b", Type: node.TypeVec3},
				{Name: "c", Type: node.TypeVec3},
			},
			OutputType: node.TypeUnitCell,
			NewData: func() node.NodeData {
				cell := latticemath.CubicDiamond()
				return &UnitCellData{A: cell.A, B: cell.B, C: cell.C}
			},
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*UnitCellData)
			a := vec3Val(args[0], d.A)
			b := vec3Val(args[1], d.B)
			c := vec3Val(args[2], d.C)
			return eval.Result{Kind: node.KindUnitCell, Cell: latticemath.NewUnitCellStruct(a, b, c)}, nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "sphere", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "center", Type: node.TypeVec3},
				{Name: "radius", Type: node.TypeFloat},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return &SphereData{Radius: 1} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*SphereData)
			center := vec3Val(args[0], d.Center)
			radius := floatVal(args[1], d.Radius)
			return geometryResult(geonode.NewSphere(center, radius)), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "cuboid", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "min_corner", Type: node.TypeVec3},
				{Name: "extent", Type: node.TypeVec3},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return &CuboidData{Extent: latticemath.DVec3{X: 1, Y: 1, Z: 1}} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*CuboidData)
			min := vec3Val(args[0], d.MinCorner)
			extent := vec3Val(args[1], d.Extent)
			return geometryResult(geonode.NewCuboid(min, extent)), nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "half_space", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "unit_cell", Type: node.TypeUnitCell},
				{Name: "miller_index", Type: node.TypeIVec3},
				{Name: "shift", Type: node.TypeInt},
				{Name: "center", Type: node.TypeIVec3},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return &HalfSpaceData{MillerIndex: latticemath.IVec3{X: 1}} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*HalfSpaceData)
			cell := cellVal(args[0], latticemath.CubicDiamond())
			miller := ivec3Val(args[1], d.MillerIndex)
			shift := intVal(args[2], d.Shift)
			center := ivec3Val(args[3], d.Center)

			props, err := cell.MillerIntToPlaneProps(miller.X, miller.Y, miller.Z)
			if err != nil {
				return eval.Err(eval.ErrorDomain, err.Error()), nil
			}
			centerReal := cell.ILatticeToReal(center)
			offset := props.Normal.Scale(float64(shift) * props.DSpacing)
			tree := geonode.NewHalfSpace(props.Normal, centerReal.Add(offset))
			return eval.Result{Kind: node.KindGeometry, Geo: eval.GeometrySummary{
				UnitCell:    cell,
				GeoTreeRoot: tree,
			}}, nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "geo_trans", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "shape", Type: node.TypeGeometry},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return &TransformData{Rotation: latticemath.IdentityQuaternion()} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*TransformData)
			if args[0].Kind != node.KindGeometry {
				return eval.Err(eval.ErrorMissingInput, "shape"), nil
			}
			tree := geonode.NewTransform(args[0].Geo.GeoTreeRoot, d.Rotation, d.Translation)
			summary := args[0].Geo
			summary.GeoTreeRoot = tree
			return eval.Result{Kind: node.KindGeometry, Geo: summary}, nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "extrude", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "shape", Type: node.TypeGeometry2D},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return &ExtrudeData{Height: 1, Direction: latticemath.DVec3{Z: 1}} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*ExtrudeData)
			if args[0].Kind != node.KindGeometry2D {
				return eval.Err(eval.ErrorMissingInput, "shape"), nil
			}
			tree := geonode.NewExtrude(args[0].Geo2D, d.Height, d.Direction, d.Infinite)
			return eval.Result{Kind: node.KindGeometry, Geo: eval.GeometrySummary{
				UnitCell:    latticemath.CubicDiamond(),
				GeoTreeRoot: tree,
			}}, nil
		},
	},
	boolean3D("union", geonode.NewUnion3D),
	boolean3D("intersection", geonode.NewIntersection3D),
	difference3D(),
	boolean2D("union_2d", geonode.NewUnion2D),
	boolean2D("intersection_2d", geonode.NewIntersection2D),
	difference2D(),
	{
		nodeType: node.NodeType{
			Name: "atom_edit", Category: "Atomic",
			Parameters: []node.Parameter{
				{Name: "base", Type: node.TypeAtomic},
			},
			OutputType: node.TypeAtomic,
			NewData:    func() node.NodeData { return &AtomEditData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*AtomEditData)
			diff, err := motif.ParseAtomDiffText(d.DiffText)
			if err != nil {
				return eval.Err(eval.ErrorDomain, err.Error()), nil
			}
			var base *structure.AtomicStructure
			if args[0].Kind == node.KindAtomic {
				base = args[0].Atomic
			} else {
				base = structure.New()
			}
			result, _ := structure.ApplyDiff(base, diff)
			return eval.Result{Kind: node.KindAtomic, Atomic: result}, nil
		},
	},
	{
		nodeType: node.NodeType{
			Name: "motif_fill", Category: "Atomic",
			OutputType: node.TypeMotif,
			NewData:    func() node.NodeData { return &MotifFillData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			d := n.Data.(*MotifFillData)
			m, err := motif.ParseMotif(d.MotifText)
			if err != nil {
				return eval.Err(eval.ErrorDomain, err.Error()), nil
			}
			return eval.Result{Kind: node.KindMotif, Motif: &m}, nil
		},
	},
}

func geometryResult(tree *geonode.GeoNode) eval.Result {
	return eval.Result{Kind: node.KindGeometry, Geo: eval.GeometrySummary{
		UnitCell:    latticemath.CubicDiamond(),
		GeoTreeRoot: tree,
	}}
}

func boolean3D(name string, combine func(...*geonode.GeoNode) *geonode.GeoNode) builtinType {
	return builtinType{
		nodeType: node.NodeType{
			Name: name, Category: "Geometry",
			Parameters: []node.Parameter{{Name: "shapes", Type: node.TypeGeometry, Multi: true}},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return noData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			if args[0].Kind != node.KindArray {
				return eval.Err(eval.ErrorMissingInput, "shapes"), nil
			}
			cell := latticemath.CubicDiamond()
			trees := make([]*geonode.GeoNode, 0, len(args[0].Array))
			for i, v := range args[0].Array {
				if v.Kind != node.KindGeometry {
					return eval.Err(eval.ErrorTypeMismatch, "shapes"), nil
				}
				if i == 0 {
					cell = v.Geo.UnitCell
				}
				trees = append(trees, v.Geo.GeoTreeRoot)
			}
			if len(trees) == 0 {
				return eval.Err(eval.ErrorMissingInput, "shapes"), nil
			}
			return eval.Result{Kind: node.KindGeometry, Geo: eval.GeometrySummary{
				UnitCell:    cell,
				GeoTreeRoot: combine(trees...),
			}}, nil
		},
	}
}

func difference3D() builtinType {
	return builtinType{
		nodeType: node.NodeType{
			Name: "difference", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "base", Type: node.TypeGeometry},
				{Name: "sub", Type: node.TypeGeometry},
			},
			OutputType: node.TypeGeometry,
			NewData:    func() node.NodeData { return noData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			if args[0].Kind != node.KindGeometry {
				return eval.Err(eval.ErrorMissingInput, "base"), nil
			}
			if args[1].Kind != node.KindGeometry {
				return eval.Err(eval.ErrorMissingInput, "sub"), nil
			}
			tree := geonode.NewDifference3D(args[0].Geo.GeoTreeRoot, args[1].Geo.GeoTreeRoot)
			summary := args[0].Geo
			summary.GeoTreeRoot = tree
			return eval.Result{Kind: node.KindGeometry, Geo: summary}, nil
		},
	}
}

func boolean2D(name string, combine func(...*geonode.GeoNode) *geonode.GeoNode) builtinType {
	return builtinType{
		nodeType: node.NodeType{
			Name: name, Category: "Geometry",
			Parameters: []node.Parameter{{Name: "shapes", Type: node.TypeGeometry2D, Multi: true}},
			OutputType: node.TypeGeometry2D,
			NewData:    func() node.NodeData { return noData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			if args[0].Kind != node.KindArray {
				return eval.Err(eval.ErrorMissingInput, "shapes"), nil
			}
			trees := make([]*geonode.GeoNode, 0, len(args[0].Array))
			for _, v := range args[0].Array {
				if v.Kind != node.KindGeometry2D {
					return eval.Err(eval.ErrorTypeMismatch, "shapes"), nil
				}
				trees = append(trees, v.Geo2D)
			}
			if len(trees) == 0 {
				return eval.Err(eval.ErrorMissingInput, "shapes"), nil
			}
			return eval.Result{Kind: node.KindGeometry2D, Geo2D: combine(trees...)}, nil
		},
	}
}

func difference2D() builtinType {
	return builtinType{
		nodeType: node.NodeType{
			Name: "difference_2d", Category: "Geometry",
			Parameters: []node.Parameter{
				{Name: "base", Type: node.TypeGeometry2D},
				{Name: "sub", Type: node.TypeGeometry2D},
			},
			OutputType: node.TypeGeometry2D,
			NewData:    func() node.NodeData { return noData{} },
		},
		fn: func(n *node.Node, args []eval.Result) (eval.Result, error) {
			if args[0].Kind != node.KindGeometry2D {
				return eval.Err(eval.ErrorMissingInput, "base"), nil
			}
			if args[1].Kind != node.KindGeometry2D {
				return eval.Err(eval.ErrorMissingInput, "sub"), nil
			}
			return eval.Result{Kind: node.KindGeometry2D, Geo2D: geonode.NewDifference2D(args[0].Geo2D, args[1].Geo2D)}, nil
		},
	}
}

func floatVal(r eval.Result, fallback float64) float64 {
	switch r.Kind {
	case node.KindFloat:
		return r.Float
	case node.KindInt:
		return float64(r.Int)
	default:
		return fallback
	}
}

func intVal(r eval.Result, fallback int64) int64 {
	switch r.Kind {
	case node.KindInt:
		return r.Int
	case node.KindFloat:
		return int64(r.Float)
	default:
		return fallback
	}
}

func vec3Val(r eval.Result, fallback latticemath.DVec3) latticemath.DVec3 {
	if r.Kind == node.KindVec3 {
		return r.Vec3
	}
	return fallback
}

func ivec3Val(r eval.Result, fallback latticemath.IVec3) latticemath.IVec3 {
	if r.Kind == node.KindIVec3 {
		return r.IVec3
	}
	return fallback
}

func cellVal(r eval.Result, fallback latticemath.UnitCellStruct) latticemath.UnitCellStruct {
	if r.Kind == node.KindUnitCell {
		return r.Cell
	}
	return fallback
}
