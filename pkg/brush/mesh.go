package brush

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-stairs/pkg/math"
)

// Brush errors.
var (
	ErrDegeneratePolygon = errors.New("degenerate polygon")
	ErrZeroExtrusion     = errors.New("zero-length extrusion")
	ErrCoplanarExtrusion = errors.New("extrusion lies in polygon plane")
	ErrSurfaceIndex      = errors.New("surface index out of range")
	ErrNotClosed         = errors.New("brush is not closed")
	ErrNotConvex         = errors.New("brush is not convex")
)

// planeEpsilon is the tolerance used for on-plane tests.
const planeEpsilon = 1e-4

// Plane is the set of points p with Normal.Dot(p) + D == 0.
// Normal points out of the brush.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(v math.Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// HalfEdge is a directed polygon edge starting at VertexIndex.
// TwinIndex is the half-edge running the opposite way on the neighbouring polygon.
type HalfEdge struct {
	VertexIndex int
	TwinIndex   int
}

// Polygon is a face of a brush: EdgeCount half-edges starting at FirstEdge.
type Polygon struct {
	FirstEdge    int
	EdgeCount    int
	SurfaceIndex int
	Surface      SurfaceDescription
}

// Mesh is a convex polyhedron.
type Mesh struct {
	Vertices  []math.Vec3
	HalfEdges []HalfEdge
	Polygons  []Polygon
	Planes    []Plane
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3 `yaml:"min"`
	Max math.Vec3 `yaml:"max"`
}

// Size returns Max - Min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Polygons) == 0
}

// Reset clears the mesh while keeping allocated storage.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.HalfEdges = m.HalfEdges[:0]
	m.Polygons = m.Polygons[:0]
	m.Planes = m.Planes[:0]
}

// PolygonVertices returns the vertex loop of polygon i.
func (m *Mesh) PolygonVertices(i int) []math.Vec3 {
	p := m.Polygons[i]
	loop := make([]math.Vec3, p.EdgeCount)
	for e := 0; e < p.EdgeCount; e++ {
		loop[e] = m.Vertices[m.HalfEdges[p.FirstEdge+e].VertexIndex]
	}
	return loop
}

// PolygonIndices returns the vertex indices of polygon i.
func (m *Mesh) PolygonIndices(i int) []int {
	p := m.Polygons[i]
	indices := make([]int, p.EdgeCount)
	for e := 0; e < p.EdgeCount; e++ {
		indices[e] = m.HalfEdges[p.FirstEdge+e].VertexIndex
	}
	return indices
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Transform moves the mesh by mat. Mirroring transforms flip polygon winding
// so planes keep pointing outwards.
func (m *Mesh) Transform(mat math.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.TransformPoint(v)
	}
	if mat.Determinant3x3() < 0 {
		m.reverseWinding()
	}
	m.updatePlanes()
}

// Validate checks that every half-edge has a reverse twin and that no vertex
// lies in front of any plane.
func (m *Mesh) Validate() error {
	for i, he := range m.HalfEdges {
		if he.TwinIndex < 0 || he.TwinIndex >= len(m.HalfEdges) {
			return fmt.Errorf("%w: half-edge %d has no twin", ErrNotClosed, i)
		}
		twin := m.HalfEdges[he.TwinIndex]
		if twin.TwinIndex != i {
			return fmt.Errorf("%w: half-edge %d twin mismatch", ErrNotClosed, i)
		}
		if twin.VertexIndex != m.edgeEnd(i) || m.edgeEnd(he.TwinIndex) != he.VertexIndex {
			return fmt.Errorf("%w: half-edge %d twin runs the wrong way", ErrNotClosed, i)
		}
	}
	for p, plane := range m.Planes {
		for v, vertex := range m.Vertices {
			if d := plane.Distance(vertex); d > planeEpsilon {
				return fmt.Errorf("%w: vertex %d is %.5f in front of plane %d", ErrNotConvex, v, d, p)
			}
		}
	}
	return nil
}

// edgeEnd returns the vertex the half-edge points to.
func (m *Mesh) edgeEnd(edge int) int {
	for _, p := range m.Polygons {
		if edge >= p.FirstEdge && edge < p.FirstEdge+p.EdgeCount {
			next := p.FirstEdge + (edge-p.FirstEdge+1)%p.EdgeCount
			return m.HalfEdges[next].VertexIndex
		}
	}
	return -1
}

// reverseWinding flips every polygon loop in place and relinks twins.
func (m *Mesh) reverseWinding() {
	for _, p := range m.Polygons {
		edges := m.HalfEdges[p.FirstEdge : p.FirstEdge+p.EdgeCount]
		for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
			edges[i], edges[j] = edges[j], edges[i]
		}
	}
	m.linkTwins()
}

// linkTwins pairs each half-edge a->b with the half-edge b->a.
func (m *Mesh) linkTwins() {
	type edgeKey struct{ from, to int }
	lookup := make(map[edgeKey]int, len(m.HalfEdges))
	for _, p := range m.Polygons {
		for e := 0; e < p.EdgeCount; e++ {
			idx := p.FirstEdge + e
			next := p.FirstEdge + (e+1)%p.EdgeCount
			lookup[edgeKey{m.HalfEdges[idx].VertexIndex, m.HalfEdges[next].VertexIndex}] = idx
		}
	}
	for _, p := range m.Polygons {
		for e := 0; e < p.EdgeCount; e++ {
			idx := p.FirstEdge + e
			next := p.FirstEdge + (e+1)%p.EdgeCount
			twin, ok := lookup[edgeKey{m.HalfEdges[next].VertexIndex, m.HalfEdges[idx].VertexIndex}]
			if !ok {
				twin = -1
			}
			m.HalfEdges[idx].TwinIndex = twin
		}
	}
}

// updatePlanes recomputes one plane per polygon from its vertex loop.
func (m *Mesh) updatePlanes() {
	m.Planes = m.Planes[:0]
	for i := range m.Polygons {
		loop := m.PolygonVertices(i)
		normal := newellNormal(loop).Normalize()
		var centroid math.Vec3
		for _, v := range loop {
			centroid = centroid.Add(v)
		}
		centroid = centroid.Scale(1 / float32(len(loop)))
		m.Planes = append(m.Planes, Plane{Normal: normal, D: -normal.Dot(centroid)})
	}
}

// newellNormal returns the area-weighted normal of a polygon loop.
// Its length is twice the polygon area; counter-clockwise loops point towards the viewer.
func newellNormal(loop []math.Vec3) math.Vec3 {
	var n math.Vec3
	for i, cur := range loop {
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// PolygonArea returns the area of a planar vertex loop.
func PolygonArea(loop []math.Vec3) float32 {
	if len(loop) < 3 {
		return 0
	}
	return newellNormal(loop).Length() / 2
}
