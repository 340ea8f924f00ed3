// Package stairs generates the convex brushes of a parametric linear staircase.
//
// Local space: X runs across the stairs (the right side is at Bounds.Min.X),
// Y is up, and Z is depth. The top step sits at Bounds.Min.Z and every
// following step is StepDepth further along Z and StepHeight lower.
package stairs

import (
	"fmt"
	"strings"
)

// RiserType selects how the vertical part of each step is built.
type RiserType uint8

// Riser types.
const (
	RiserNone  RiserType = iota // No risers, treads float
	ThinRiser                   // Riser of RiserDepth behind the step edge
	ThickRiser                  // Riser fills the full step depth
	FillDown                    // Riser extends down to the floor
	Smooth                      // Thick riser with a slanted face
	maxRiserType
)

var riserNames = [...]string{"none", "thin_riser", "thick_riser", "fill_down", "smooth"}

// String returns the riser type name used in presets.
func (t RiserType) String() string {
	if t < maxRiserType {
		return riserNames[t]
	}
	return fmt.Sprintf("RiserType(%d)", t)
}

// MarshalText implements encoding.TextMarshaler.
func (t RiserType) MarshalText() ([]byte, error) {
	if t >= maxRiserType {
		return nil, fmt.Errorf("invalid riser type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RiserType) UnmarshalText(text []byte) error {
	idx, err := lookupName(riserNames[:], string(text))
	if err != nil {
		return fmt.Errorf("riser type: %w", err)
	}
	*t = RiserType(idx)
	return nil
}

// SideType selects which side walls a staircase side gets.
type SideType uint8

// Side types.
const (
	SideNone      SideType = iota // No side wall
	SideDown                      // Wall below the steps
	SideUp                        // Wall above the steps
	SideDownAndUp                 // Both
	maxSideType
)

var sideNames = [...]string{"none", "down", "up", "down_and_up"}

// String returns the side type name used in presets.
func (t SideType) String() string {
	if t < maxSideType {
		return sideNames[t]
	}
	return fmt.Sprintf("SideType(%d)", t)
}

// MarshalText implements encoding.TextMarshaler.
func (t SideType) MarshalText() ([]byte, error) {
	if t >= maxSideType {
		return nil, fmt.Errorf("invalid side type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SideType) UnmarshalText(text []byte) error {
	idx, err := lookupName(sideNames[:], string(text))
	if err != nil {
		return fmt.Errorf("side type: %w", err)
	}
	*t = SideType(idx)
	return nil
}

// HasDown reports whether the side has a wall below the steps.
func (t SideType) HasDown() bool {
	return t == SideDown || t == SideDownAndUp
}

// HasUp reports whether the side has a wall above the steps.
func (t SideType) HasUp() bool {
	return t == SideUp || t == SideDownAndUp
}

// SurfaceSide names the logical surfaces of a staircase. The surface table
// of a Definition has exactly TotalSides entries, indexed by SurfaceSide.
type SurfaceSide int

// Surface sides.
const (
	TopSurface SurfaceSide = iota
	BottomSurface
	LeftSurface
	RightSurface
	ForwardSurface
	BackSurface
	TreadSurface
	StepSurface
	TotalSides
)

var surfaceNames = [...]string{"top", "bottom", "left", "right", "forward", "back", "tread", "step"}

// String returns the surface name.
func (s SurfaceSide) String() string {
	if s >= 0 && s < TotalSides {
		return surfaceNames[s]
	}
	return fmt.Sprintf("SurfaceSide(%d)", int(s))
}

func lookupName(names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}
