package stairs

import (
	stdmath "math"

	"github.com/Faultbox/midgard-stairs/pkg/brush"
	"github.com/Faultbox/midgard-stairs/pkg/math"
)

// Epsilon is the threshold below which tread height and step depth offset count as zero.
const Epsilon = 0.001

// Limits enforced by Validate.
const (
	MinStepHeight = 0.01
	MinStepDepth  = 0.01
	MinRiserDepth = 0.01
	MinSideWidth  = 0.01
	MinSideDepth  = 0.01
	MinWidth      = 4 * MinSideWidth
	MinDepth      = MinStepDepth

	stepSmudge = 0.0001
)

// Defaults used by DefaultDefinition.
const (
	DefaultStepHeight    = 0.20
	DefaultStepDepth     = 0.20
	DefaultTreadHeight   = 0.02
	DefaultNosingDepth   = 0.02
	DefaultNosingWidth   = 0.01
	DefaultPlateauHeight = 0
	DefaultRiserDepth    = 0.05
	DefaultSideDepth     = 0.125
	DefaultSideWidth     = 0.125
	DefaultSideHeight    = 0.5
)

// Definition describes a linear staircase filling Bounds.
type Definition struct {
	Bounds brush.Bounds `yaml:"bounds"`

	StepHeight    float32 `yaml:"step_height"`
	StepDepth     float32 `yaml:"step_depth"`
	PlateauHeight float32 `yaml:"plateau_height"`
	TreadHeight   float32 `yaml:"tread_height"`
	NosingDepth   float32 `yaml:"nosing_depth"`
	NosingWidth   float32 `yaml:"nosing_width"`
	RiserDepth    float32 `yaml:"riser_depth"`
	SideWidth     float32 `yaml:"side_width"`
	SideHeight    float32 `yaml:"side_height"`
	SideDepth     float32 `yaml:"side_depth"`

	RiserType RiserType `yaml:"riser_type"`
	LeftSide  SideType  `yaml:"left_side"`
	RightSide SideType  `yaml:"right_side"`

	Surfaces brush.SurfaceDefinition `yaml:"surface_definition"`
}

// DefaultDefinition returns a one metre cube of stairs with thick risers.
func DefaultDefinition() Definition {
	return Definition{
		Bounds: brush.Bounds{
			Min: math.Vec3{X: -0.5, Y: 0, Z: -0.5},
			Max: math.Vec3{X: 0.5, Y: 1, Z: 0.5},
		},
		StepHeight:    DefaultStepHeight,
		StepDepth:     DefaultStepDepth,
		PlateauHeight: DefaultPlateauHeight,
		TreadHeight:   DefaultTreadHeight,
		NosingDepth:   DefaultNosingDepth,
		NosingWidth:   DefaultNosingWidth,
		RiserDepth:    DefaultRiserDepth,
		SideWidth:     DefaultSideWidth,
		SideHeight:    DefaultSideHeight,
		SideDepth:     DefaultSideDepth,
		RiserType:     ThickRiser,
		LeftSide:      SideNone,
		RightSide:     SideNone,
		Surfaces:      brush.NewSurfaceDefinition(int(TotalSides)),
	}
}

// SortedBounds returns Bounds with every axis ordered min <= max.
func (d *Definition) SortedBounds() brush.Bounds {
	return brush.Bounds{
		Min: d.Bounds.Min.Min(d.Bounds.Max),
		Max: d.Bounds.Min.Max(d.Bounds.Max),
	}
}

// Width, Height and Depth return the absolute bounds extents.
func (d *Definition) Width() float32  { return math.Abs(d.Bounds.Max.X - d.Bounds.Min.X) }
func (d *Definition) Height() float32 { return math.Abs(d.Bounds.Max.Y - d.Bounds.Min.Y) }
func (d *Definition) Depth() float32  { return math.Abs(d.Bounds.Max.Z - d.Bounds.Min.Z) }

// StepCount returns how many whole steps fit in the bounds height.
// Bounds flatter than MinStepHeight hold no steps.
func (d *Definition) StepCount() int {
	height := d.Height()
	if height < MinStepHeight || d.StepHeight <= 0 {
		return 0
	}
	steps := int(stdmath.Floor(float64((height - d.PlateauHeight + stepSmudge) / d.StepHeight)))
	return max(1, steps)
}

// StepDepthOffset is the extra depth given to the first step when the steps
// do not use up the whole bounds depth.
func (d *Definition) StepDepthOffset() float32 {
	return max(0, d.Depth()-float32(d.StepCount())*d.StepDepth)
}

// extendTo returns the smallest float32 at or above lo+size whose distance
// from lo is not rounded below size.
func extendTo(lo, size float32) float32 {
	hi := lo + size
	for hi-lo < size {
		hi = stdmath.Nextafter32(hi, stdmath.MaxFloat32)
	}
	return hi
}

// Validate clamps the definition into a self-consistent state: ordered
// bounds of a minimum width and depth, whole steps that fit the bounds, a
// tread thinner than a step, a thin riser shallower than a step, and side
// walls narrower than half the stairs.
func (d *Definition) Validate() {
	d.Bounds = d.SortedBounds()
	if d.Width() < MinWidth {
		d.Bounds.Max.X = extendTo(d.Bounds.Min.X, MinWidth)
	}
	if d.Depth() < MinDepth {
		d.Bounds.Max.Z = extendTo(d.Bounds.Min.Z, MinDepth)
	}

	height := d.Height()
	depth := d.Depth()

	d.StepHeight = math.Clamp(d.StepHeight, MinStepHeight, max(MinStepHeight, height))
	d.PlateauHeight = math.Clamp(d.PlateauHeight, 0, max(0, height-d.StepHeight))

	if steps := d.StepCount(); steps > 0 {
		d.PlateauHeight = max(0, height-float32(steps)*d.StepHeight)
		d.StepDepth = math.Clamp(d.StepDepth, MinStepDepth, depth/float32(steps))
	} else {
		d.PlateauHeight = 0
		d.StepDepth = math.Clamp(d.StepDepth, MinStepDepth, depth)
	}

	d.TreadHeight = math.Clamp(d.TreadHeight, 0, d.StepHeight-MinStepHeight)
	d.NosingDepth = max(0, d.NosingDepth)
	d.NosingWidth = max(0, d.NosingWidth)
	minRiser := min(MinRiserDepth, d.StepDepth/2)
	d.RiserDepth = math.Clamp(d.RiserDepth, minRiser, d.StepDepth-minRiser)

	d.SideWidth = math.Clamp(d.SideWidth, MinSideWidth, (d.Width()-2*MinSideWidth)/2)
	d.SideHeight = max(0, d.SideHeight)
	d.SideDepth = max(MinSideDepth, d.SideDepth)
}
