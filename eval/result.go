package eval

import (
	"github.com/atomcore/atomcore/geonode"
	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/motif"
	"github.com/atomcore/atomcore/node"
	"github.com/atomcore/atomcore/structure"
)

// GeometrySummary is the payload of a Geometry-kinded NetworkResult: the
// lazy GeoNode expression tree plus the frame it is expressed in.
type GeometrySummary struct {
	UnitCell       latticemath.UnitCellStruct
	FrameTransform latticemath.Quaternion
	FrameOffset    latticemath.DVec3
	GeoTreeRoot    *geonode.GeoNode
}

// FunctionValue is a captured, not-yet-evaluated node reference produced by
// a Function-pin connection. Calling it binds extraArgs to the source
// node's trailing parameters (the ones left unbound by partial
// application) and evaluates the result.
type FunctionValue struct {
	ev       *Evaluator
	stack    []frame
	active   []activeCall
	targetID node.NodeId
	target   *node.NodeNetwork
	bound    int // number of leading parameters already satisfied by wiring
}

// Call evaluates the captured node with extraArgs bound to its trailing
// parameters (those past the ones already wired or previously bound).
func (f *FunctionValue) Call(extraArgs []NetworkResult) (NetworkResult, error) {
	return f.ev.evaluateNode(f.stack, f.active, f.target, f.targetID, extraArgs, f.bound)
}

// Result is a tagged union over every node.DataType kind plus a terminal
// Error variant, returned by every node evaluation.
type Result struct {
	Kind node.Kind

	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Vec2    latticemath.DVec2
	Vec3    latticemath.DVec3
	IVec2   latticemath.IVec2
	IVec3   latticemath.IVec3
	Cell    latticemath.UnitCellStruct
	Plane   GeometrySummary
	Geo2D   *geonode.GeoNode
	Geo     GeometrySummary
	Atomic  *structure.AtomicStructure
	Motif   *motif.Motif
	Array   []Result
	Func    *FunctionValue
	ErrKind ErrorKind
	ErrMsg  string
}

// NetworkResult is an alias kept for readability at call sites that mirror
// the spec's naming; Result is the canonical type.
type NetworkResult = Result

// None is the empty/absent result, used for unconnected non-required
// arguments.
var None = Result{Kind: node.KindNone}

// Bool builds a Bool-kinded result.
func Bool(v bool) Result { return Result{Kind: node.KindBool, Bool: v} }

// Int builds an Int-kinded result.
func Int(v int64) Result { return Result{Kind: node.KindInt, Int: v} }

// Float builds a Float-kinded result.
func Float(v float64) Result { return Result{Kind: node.KindFloat, Float: v} }

// String builds a String-kinded result.
func String(v string) Result { return Result{Kind: node.KindString, Str: v} }

// Geometry builds a Geometry-kinded result.
func Geometry(summary GeometrySummary) Result {
	return Result{Kind: node.KindGeometry, Geo: summary}
}

// Geometry2D builds a Geometry2D-kinded result.
func Geometry2D(g *geonode.GeoNode) Result {
	return Result{Kind: node.KindGeometry2D, Geo2D: g}
}

// Err builds an Error result of the given kind and message.
func Err(kind ErrorKind, message string) Result {
	return Result{Kind: errKindMarker, ErrKind: kind, ErrMsg: message}
}

// errKindMarker is a node.Kind value reserved by this package to tag an
// Error-variant NetworkResult; it never collides with node.Kind's builtin
// constants because it is one past node.KindFunction.
const errKindMarker node.Kind = node.KindFunction + 1

// IsError reports whether r is the terminal Error variant.
func (r Result) IsError() bool { return r.Kind == errKindMarker }

// AsError returns r as an *EvalError if it is the Error variant.
func (r Result) AsError() *EvalError {
	if !r.IsError() {
		return nil
	}
	return newError(r.ErrKind, r.ErrMsg)
}

// DataType returns the node.DataType matching r's variant, used when
// checking a freshly produced result against a declared parameter type.
func (r Result) DataType() node.DataType {
	switch r.Kind {
	case node.KindArray:
		if len(r.Array) == 0 {
			return node.ArrayOf(node.TypeNone)
		}
		return node.ArrayOf(r.Array[0].DataType())
	default:
		return node.DataType{Kind: r.Kind}
	}
}
