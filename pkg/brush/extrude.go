package brush

import (
	"fmt"

	"github.com/Faultbox/midgard-stairs/pkg/math"
)

const (
	// distanceEpsilon is the squared distance under which two loop vertices are merged.
	distanceEpsilon = 1e-10
	// areaEpsilon is the smallest polygon area accepted by CreateExtruded.
	areaEpsilon = 1e-8
)

// CreateExtruded fills m with the prism swept by polygon along extrusion.
//
// surfaceIndices maps faces to entries of surfaces: [0] is the cap lying on
// polygon, [1] the cap at polygon+extrusion, and [2+i] the side swept by the
// edge from polygon[i] to polygon[i+1]. Consecutive duplicate vertices are
// merged, dropping the side of the collapsed edge, so a quad whose last two
// vertices coincide becomes a triangular prism.
//
// The input loop may have either winding; it is reoriented so that all
// planes point out of the brush.
func CreateExtruded(m *Mesh, polygon []math.Vec3, extrusion math.Vec3, surfaceIndices []int, surfaces SurfaceDefinition) error {
	if len(surfaceIndices) != len(polygon)+2 {
		return fmt.Errorf("%w: %d surface indices for %d vertices", ErrSurfaceIndex, len(surfaceIndices), len(polygon))
	}
	if extrusion.LengthSquared() == 0 {
		return ErrZeroExtrusion
	}

	loop, sides := mergeDuplicates(polygon, surfaceIndices[2:])
	if len(loop) < 3 {
		return fmt.Errorf("%w: %d distinct vertices", ErrDegeneratePolygon, len(loop))
	}
	normal := newellNormal(loop)
	if normal.Length()/2 < areaEpsilon {
		return fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	facing := normal.Dot(extrusion)
	if math.Abs(facing) <= areaEpsilon*extrusion.Length() {
		return ErrCoplanarExtrusion
	}
	if facing > 0 {
		// The base cap must face away from the extrusion.
		loop, sides = reverseLoop(loop, sides)
	}

	descriptions := make([]SurfaceDescription, 0, len(sides)+2)
	faceSurfaces := append([]int{surfaceIndices[0], surfaceIndices[1]}, sides...)
	for _, idx := range faceSurfaces {
		desc, err := surfaces.Lookup(idx)
		if err != nil {
			return err
		}
		descriptions = append(descriptions, desc)
	}

	n := len(loop)
	m.Reset()
	m.Vertices = append(m.Vertices, loop...)
	for _, v := range loop {
		m.Vertices = append(m.Vertices, v.Add(extrusion))
	}

	// Base cap keeps the (now outward facing) loop order.
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	m.addPolygon(base, faceSurfaces[0], descriptions[0])

	// Far cap runs the other way.
	top := make([]int, n)
	for i := range top {
		top[i] = n + (n - 1 - i)
	}
	m.addPolygon(top, faceSurfaces[1], descriptions[1])

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addPolygon([]int{i, n + i, n + j, j}, faceSurfaces[2+i], descriptions[2+i])
	}

	m.linkTwins()
	m.updatePlanes()
	return nil
}

func (m *Mesh) addPolygon(indices []int, surfaceIndex int, desc SurfaceDescription) {
	m.Polygons = append(m.Polygons, Polygon{
		FirstEdge:    len(m.HalfEdges),
		EdgeCount:    len(indices),
		SurfaceIndex: surfaceIndex,
		Surface:      desc,
	})
	for _, idx := range indices {
		m.HalfEdges = append(m.HalfEdges, HalfEdge{VertexIndex: idx, TwinIndex: -1})
	}
}

// mergeDuplicates drops every vertex equal to its successor together with
// the surface of the zero-length edge leaving it.
func mergeDuplicates(polygon []math.Vec3, sides []int) ([]math.Vec3, []int) {
	loop := make([]math.Vec3, 0, len(polygon))
	kept := make([]int, 0, len(sides))
	for i, v := range polygon {
		next := polygon[(i+1)%len(polygon)]
		if v.Sub(next).LengthSquared() < distanceEpsilon {
			continue
		}
		loop = append(loop, v)
		kept = append(kept, sides[i])
	}
	return loop, kept
}

// reverseLoop flips the loop order. Edge i of the reversed loop is edge
// n-2-i of the original one.
func reverseLoop(loop []math.Vec3, sides []int) ([]math.Vec3, []int) {
	n := len(loop)
	rl := make([]math.Vec3, n)
	rs := make([]int, n)
	for i := range loop {
		rl[i] = loop[n-1-i]
		rs[i] = sides[((n-2-i)%n+n)%n]
	}
	return rl, rs
}
