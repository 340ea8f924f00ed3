// Package brush holds convex CSG brush meshes and the extrusion primitive that builds them.
package brush

import (
	"fmt"
)

// SurfaceFlags mark how a surface takes part in CSG evaluation.
type SurfaceFlags uint32

// Surface flag constants.
const (
	SurfaceRenderable SurfaceFlags = 1 << iota // Produces visible geometry
	SurfaceCollidable                          // Produces collision geometry
	SurfaceDefault    = SurfaceRenderable | SurfaceCollidable
)

// SurfaceDescription is one entry of a surface table.
type SurfaceDescription struct {
	MaterialID     int          `yaml:"material_id"`
	SmoothingGroup uint32       `yaml:"smoothing_group"`
	Flags          SurfaceFlags `yaml:"flags"`
}

// SurfaceDefinition is the surface table a generator indexes into.
type SurfaceDefinition struct {
	Surfaces []SurfaceDescription `yaml:"surfaces"`
}

// NewSurfaceDefinition returns a table of n default surfaces, each with its own material ID.
func NewSurfaceDefinition(n int) SurfaceDefinition {
	surfaces := make([]SurfaceDescription, n)
	for i := range surfaces {
		surfaces[i] = SurfaceDescription{MaterialID: i, Flags: SurfaceDefault}
	}
	return SurfaceDefinition{Surfaces: surfaces}
}

// Len returns the number of surfaces in the table.
func (d SurfaceDefinition) Len() int {
	return len(d.Surfaces)
}

// Lookup returns the surface at index i.
func (d SurfaceDefinition) Lookup(i int) (SurfaceDescription, error) {
	if i < 0 || i >= len(d.Surfaces) {
		return SurfaceDescription{}, fmt.Errorf("%w: %d (table has %d)", ErrSurfaceIndex, i, len(d.Surfaces))
	}
	return d.Surfaces[i], nil
}
