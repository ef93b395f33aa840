package geonode

import (
	"math"

	"github.com/atomcore/atomcore/csg"
	"github.com/atomcore/atomcore/csgcache"
	"github.com/atomcore/atomcore/latticemath"
)

// sphereSegments/sphereStacks/circleSegments control the tessellation of
// round primitives when they are converted to explicit polygon meshes.
const (
	sphereSegments = 24
	sphereStacks   = 12
	circleSegments = 36

	// proxyExtent bounds an otherwise-unbounded primitive (a half-space,
	// or an infinite extrusion) to a large finite quad/prism so it can be
	// represented as an explicit polygon mesh.
	proxyExtent = 1200.0
)

// ToCSGMesh converts n (which must describe a 3D solid) into an explicit
// csg.Mesh, consulting and populating cache by n.Hash() when cache is
// non-nil.
func (n *GeoNode) ToCSGMesh(cache *csgcache.Cache) (csg.Mesh, error) {
	return n.toCSGMesh(true, cache)
}

func (n *GeoNode) toCSGMesh(isRoot bool, cache *csgcache.Cache) (csg.Mesh, error) {
	key := n.Hash()
	if m, ok := cache.GetMesh(key); ok {
		return m, nil
	}

	var result csg.Mesh
	var err error
	switch n.Kind {
	case KindHalfSpace:
		result = halfSpaceMesh(n.Normal, n.Center, isRoot)
	case KindSphere:
		result = sphereMesh(n.Center, n.Radius)
	case KindCuboid:
		result = cuboidMesh(n.MinCorner3, n.Extent3)
	case KindExtrude:
		result, err = extrudeMesh(n, cache)
	case KindTransform:
		var inner csg.Mesh
		inner, err = n.Shape.toCSGMesh(false, cache)
		if err == nil {
			result = transformMesh(inner, n.Rotation, n.Translation)
		}
	case KindUnion3D:
		result, err = combine3D(n.Shapes, cache, csg.Union)
	case KindIntersection3D:
		result, err = combine3D(n.Shapes, cache, csg.Intersection)
	case KindDifference3D:
		var base, sub csg.Mesh
		base, err = n.Base.toCSGMesh(false, cache)
		if err == nil {
			sub, err = n.Sub.toCSGMesh(false, cache)
		}
		if err == nil {
			result = csg.Difference(base, sub)
		}
	default:
		return csg.Mesh{}, ErrNotSolid
	}
	if err != nil {
		return csg.Mesh{}, err
	}

	cache.PutMesh(key, result)
	return result, nil
}

func combine3D(shapes []*GeoNode, cache *csgcache.Cache, op func(a, b csg.Mesh) csg.Mesh) (csg.Mesh, error) {
	if len(shapes) == 0 {
		return csg.Mesh{}, nil
	}
	result, err := shapes[0].toCSGMesh(false, cache)
	if err != nil {
		return csg.Mesh{}, err
	}
	for _, s := range shapes[1:] {
		m, err := s.toCSGMesh(false, cache)
		if err != nil {
			return csg.Mesh{}, err
		}
		result = op(result, m)
	}
	return result, nil
}

// ToCSGSketch converts n (which must describe a 2D sketch) into an
// explicit csg.Sketch.
func (n *GeoNode) ToCSGSketch(cache *csgcache.Cache) (csg.Sketch, error) {
	key := n.Hash()
	if s, ok := cache.GetSketch(key); ok {
		return s, nil
	}

	var result csg.Sketch
	var err error
	switch n.Kind {
	case KindHalfPlane:
		result = halfPlaneSketch(n.Point1, n.Point2)
	case KindCircle:
		result = circleSketch(n.Center2, n.Radius)
	case KindRect:
		result = rectSketch(n.MinCorner2, n.Extent2)
	case KindPolygon:
		result = csg.NewSketch([]csg.Polygon2D{{Points: toPoint2Ds(n.Vertices)}})
	case KindUnion2D:
		result, err = combine2D(n.Shapes, cache, sketchBoundsForShapes(n.Shapes, cache))
	case KindIntersection2D:
		result, err = combine2DOp(n.Shapes, cache, csg.SketchIntersection2D)
	case KindDifference2D:
		var base, sub csg.Sketch
		base, err = n.Base.ToCSGSketch(cache)
		if err == nil {
			sub, err = n.Sub.ToCSGSketch(cache)
		}
		if err == nil {
			bounds := unionBounds([]csg.Sketch{base, sub})
			result = csg.SketchDifference2D(base, sub, bounds, 0.1)
		}
	default:
		return csg.Sketch{}, ErrNotSketch
	}
	if err != nil {
		return csg.Sketch{}, err
	}

	cache.PutSketch(key, result)
	return result, nil
}

func combine2D(shapes []*GeoNode, cache *csgcache.Cache, bounds csg.SketchBounds) (csg.Sketch, error) {
	return combine2DOpBounds(shapes, cache, bounds, csg.SketchUnion2D)
}

func combine2DOp(shapes []*GeoNode, cache *csgcache.Cache, op func(a, b csg.Sketch, bounds csg.SketchBounds, resolution float64) csg.Sketch) (csg.Sketch, error) {
	sketches, err := sketchesOf(shapes, cache)
	if err != nil {
		return csg.Sketch{}, err
	}
	bounds := unionBounds(sketches)
	return reduceSketches(sketches, bounds, op), nil
}

func combine2DOpBounds(shapes []*GeoNode, cache *csgcache.Cache, bounds csg.SketchBounds, op func(a, b csg.Sketch, bounds csg.SketchBounds, resolution float64) csg.Sketch) (csg.Sketch, error) {
	sketches, err := sketchesOf(shapes, cache)
	if err != nil {
		return csg.Sketch{}, err
	}
	return reduceSketches(sketches, bounds, op), nil
}

func sketchesOf(shapes []*GeoNode, cache *csgcache.Cache) ([]csg.Sketch, error) {
	out := make([]csg.Sketch, 0, len(shapes))
	for _, s := range shapes {
		sk, err := s.ToCSGSketch(cache)
		if err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, nil
}

func reduceSketches(sketches []csg.Sketch, bounds csg.SketchBounds, op func(a, b csg.Sketch, bounds csg.SketchBounds, resolution float64) csg.Sketch) csg.Sketch {
	if len(sketches) == 0 {
		return csg.Sketch{}
	}
	result := sketches[0]
	for _, s := range sketches[1:] {
		result = op(result, s, bounds, 0.1)
	}
	return result
}

func sketchBoundsForShapes(shapes []*GeoNode, cache *csgcache.Cache) csg.SketchBounds {
	sketches, err := sketchesOf(shapes, cache)
	if err != nil {
		return csg.SketchBounds{}
	}
	return unionBounds(sketches)
}

func unionBounds(sketches []csg.Sketch) csg.SketchBounds {
	bounds := csg.SketchBounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, s := range sketches {
		for _, ring := range s.Rings {
			for _, p := range ring.Points {
				bounds.MinX = math.Min(bounds.MinX, p.X)
				bounds.MinY = math.Min(bounds.MinY, p.Y)
				bounds.MaxX = math.Max(bounds.MaxX, p.X)
				bounds.MaxY = math.Max(bounds.MaxY, p.Y)
			}
		}
	}
	if math.IsInf(bounds.MinX, 1) {
		return csg.SketchBounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	const margin = 1.0
	bounds.MinX -= margin
	bounds.MinY -= margin
	bounds.MaxX += margin
	bounds.MaxY += margin
	return bounds
}

func toPoint2Ds(vertices []latticemath.DVec2) []csg.Point2D {
	out := make([]csg.Point2D, len(vertices))
	for i, v := range vertices {
		out[i] = csg.Point2D{X: v.X, Y: v.Y}
	}
	return out
}

func halfPlaneSketch(point1, point2 latticemath.DVec2) csg.Sketch {
	dirVector := point2.Sub(point1)
	dir := dirVector.Normalized()
	normal := latticemath.DVec2{X: -dir.Y, Y: dir.X}
	centerPos := point1.Add(dirVector.Scale(0.5))

	tr := centerPos.Sub(dir.Scale(proxyExtent * 0.5)).Sub(normal.Scale(proxyExtent))
	angle := math.Atan2(dir.Y, dir.X)
	cosA, sinA := math.Cos(angle), math.Sin(angle)

	corners := [4]latticemath.DVec2{{X: 0, Y: 0}, {X: proxyExtent, Y: 0}, {X: proxyExtent, Y: proxyExtent}, {X: 0, Y: proxyExtent}}
	points := make([]csg.Point2D, 4)
	for i, c := range corners {
		rx := c.X*cosA - c.Y*sinA
		ry := c.X*sinA + c.Y*cosA
		points[i] = csg.Point2D{X: rx + tr.X, Y: ry + tr.Y}
	}
	return csg.NewSketch([]csg.Polygon2D{{Points: points}})
}

func circleSketch(center latticemath.DVec2, radius float64) csg.Sketch {
	points := make([]csg.Point2D, circleSegments)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(circleSegments)
		points[i] = csg.Point2D{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
	}
	return csg.NewSketch([]csg.Polygon2D{{Points: points}})
}

func rectSketch(minCorner, extent latticemath.DVec2) csg.Sketch {
	max := minCorner.Add(extent)
	points := []csg.Point2D{
		{X: minCorner.X, Y: minCorner.Y},
		{X: max.X, Y: minCorner.Y},
		{X: max.X, Y: max.Y},
		{X: minCorner.X, Y: max.Y},
	}
	return csg.NewSketch([]csg.Polygon2D{{Points: points}})
}

func halfSpaceMesh(normal, center latticemath.DVec3, isRoot bool) csg.Mesh {
	extent := proxyExtent
	if isRoot {
		extent = 100.0
	}
	n := normal.Normalized()

	u, v := orthonormalBasis(n)
	half := extent * 0.5
	corners := [4]latticemath.DVec3{
		u.Scale(-half).Add(v.Scale(-half)),
		u.Scale(half).Add(v.Scale(-half)),
		u.Scale(half).Add(v.Scale(half)),
		u.Scale(-half).Add(v.Scale(half)),
	}
	verts := make([]csg.Vertex, 4)
	for i, c := range corners {
		verts[i] = csg.Vertex{Pos: c.Add(center), Normal: n}
	}
	poly, err := csg.NewPolygon(verts)
	if err != nil {
		return csg.Mesh{}
	}
	return csg.Mesh{Polygons: []csg.Polygon{poly}}
}

// orthonormalBasis returns two unit vectors spanning the plane
// perpendicular to n.
func orthonormalBasis(n latticemath.DVec3) (latticemath.DVec3, latticemath.DVec3) {
	ref := latticemath.DVec3{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = latticemath.DVec3{Y: 1}
	}
	u := n.Cross(ref).Normalized()
	v := n.Cross(u).Normalized()
	return u, v
}

func sphereMesh(center latticemath.DVec3, radius float64) csg.Mesh {
	var polys []csg.Polygon
	for i := 0; i < sphereStacks; i++ {
		theta1 := math.Pi * float64(i) / float64(sphereStacks)
		theta2 := math.Pi * float64(i+1) / float64(sphereStacks)
		for j := 0; j < sphereSegments; j++ {
			phi1 := 2 * math.Pi * float64(j) / float64(sphereSegments)
			phi2 := 2 * math.Pi * float64(j+1) / float64(sphereSegments)

			p00 := sphericalPoint(center, radius, theta1, phi1)
			p01 := sphericalPoint(center, radius, theta1, phi2)
			p10 := sphericalPoint(center, radius, theta2, phi1)
			p11 := sphericalPoint(center, radius, theta2, phi2)

			if i == 0 {
				poly, err := csg.NewPolygon([]csg.Vertex{
					{Pos: p00, Normal: p00.Sub(center).Normalized()},
					{Pos: p11, Normal: p11.Sub(center).Normalized()},
					{Pos: p10, Normal: p10.Sub(center).Normalized()},
				})
				if err == nil {
					polys = append(polys, poly)
				}
				continue
			}
			if i == sphereStacks-1 {
				poly, err := csg.NewPolygon([]csg.Vertex{
					{Pos: p00, Normal: p00.Sub(center).Normalized()},
					{Pos: p01, Normal: p01.Sub(center).Normalized()},
					{Pos: p10, Normal: p10.Sub(center).Normalized()},
				})
				if err == nil {
					polys = append(polys, poly)
				}
				continue
			}
			poly, err := csg.NewPolygon([]csg.Vertex{
				{Pos: p00, Normal: p00.Sub(center).Normalized()},
				{Pos: p01, Normal: p01.Sub(center).Normalized()},
				{Pos: p11, Normal: p11.Sub(center).Normalized()},
				{Pos: p10, Normal: p10.Sub(center).Normalized()},
			})
			if err == nil {
				polys = append(polys, poly)
			}
		}
	}
	return csg.Mesh{Polygons: polys}
}

func sphericalPoint(center latticemath.DVec3, radius, theta, phi float64) latticemath.DVec3 {
	return latticemath.DVec3{
		X: center.X + radius*math.Sin(theta)*math.Cos(phi),
		Y: center.Y + radius*math.Cos(theta),
		Z: center.Z + radius*math.Sin(theta)*math.Sin(phi),
	}
}

func cuboidMesh(minCorner, extent latticemath.DVec3) csg.Mesh {
	maxCorner := minCorner.Add(extent)
	corner := func(x, y, z float64) latticemath.DVec3 {
		px := minCorner.X
		if x > 0 {
			px = maxCorner.X
		}
		py := minCorner.Y
		if y > 0 {
			py = maxCorner.Y
		}
		pz := minCorner.Z
		if z > 0 {
			pz = maxCorner.Z
		}
		return latticemath.DVec3{X: px, Y: py, Z: pz}
	}
	faces := [][4][3]float64{
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
		{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
		{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}},
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	}
	var polys []csg.Polygon
	for _, f := range faces {
		verts := make([]csg.Vertex, 4)
		for i, pt := range f {
			verts[i] = csg.Vertex{Pos: corner(pt[0], pt[1], pt[2])}
		}
		poly, err := csg.NewPolygon(verts)
		if err != nil {
			continue
		}
		for i := range poly.Vertices {
			poly.Vertices[i].Normal = poly.Plane.Normal
		}
		polys = append(polys, poly)
	}
	return csg.Mesh{Polygons: polys}
}

func transformMesh(m csg.Mesh, rotation latticemath.Quaternion, translation latticemath.DVec3) csg.Mesh {
	polys := make([]csg.Polygon, len(m.Polygons))
	for i, p := range m.Polygons {
		verts := make([]csg.Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = csg.Vertex{
				Pos:    rotation.MulVec3(v.Pos).Add(translation),
				Normal: rotation.MulVec3(v.Normal),
			}
		}
		poly, err := csg.NewPolygon(verts)
		if err != nil {
			continue
		}
		polys[i] = poly
	}
	return csg.Mesh{Polygons: polys}
}

func extrudeMesh(n *GeoNode, cache *csgcache.Cache) (csg.Mesh, error) {
	sketch, err := n.Shape.ToCSGSketch(cache)
	if err != nil {
		return csg.Mesh{}, err
	}

	if n.Infinite {
		dirLen := n.Direction.Length()
		if dirLen < 1e-12 {
			return csg.Mesh{}, ErrSingularDirection
		}
		mesh := csg.Extrude(sketch, proxyExtent, true)
		return translateMesh(mesh, latticemath.DVec3{Y: -proxyExtent * 0.5}), nil
	}
	return csg.Extrude(sketch, n.Height, true), nil
}

func translateMesh(m csg.Mesh, offset latticemath.DVec3) csg.Mesh {
	polys := make([]csg.Polygon, len(m.Polygons))
	for i, p := range m.Polygons {
		verts := make([]csg.Vertex, len(p.Vertices))
		for j, v := range p.Vertices {
			verts[j] = csg.Vertex{Pos: v.Pos.Add(offset), Normal: v.Normal}
		}
		poly, err := csg.NewPolygon(verts)
		if err != nil {
			continue
		}
		polys[i] = poly
	}
	return csg.Mesh{Polygons: polys}
}
