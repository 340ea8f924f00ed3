package stairs

import (
	"github.com/Faultbox/midgard-stairs/pkg/math"
)

// ramp carries the running step window of a side wall. min and max bound
// the current step; each iteration moves them one step down and back.
type ramp struct {
	min, max   math.Vec3
	extrusion  math.Vec3
	extraDepth float32
	maxDepth   float32
}

func (r *ramp) advance(stepHeight, stepDepth float32) {
	r.min.Z += stepDepth
	r.max.Z += stepDepth
	r.min.Y -= stepHeight
	r.max.Y -= stepHeight
}

// bottomRampQuad returns the sawtooth piece under step i of count.
// riserDepth is how far the wall reaches behind the step edge. No depth is
// ever placed in front of maxDepth.
func (r *ramp) bottomRampQuad(i, count int, riserDepth, treadHeight float32) [4]math.Vec3 {
	z0 := max(r.maxDepth, r.min.Z-r.extraDepth)
	z1 := max(r.maxDepth, r.max.Z-r.extraDepth)
	z2 := max(r.maxDepth, r.min.Z+riserDepth)

	bottom := r.min.Y
	if i == count-1 {
		// Blend the last step into the landing.
		bottom += treadHeight
	}
	x := r.min.X
	return [4]math.Vec3{
		{X: x, Y: r.max.Y, Z: z2},
		{X: x, Y: r.max.Y, Z: z0},
		{X: x, Y: bottom, Z: z1},
		{X: x, Y: bottom, Z: z2},
	}
}

// topRampPentagon returns segment i of the sloped top edge of a side wall.
// The first segment, and every segment of fill-down stairs, drops its back
// corner straight to maxDepth.
//
//	          topY leftZ
//	        0    4
//	         *--*
//	         |   \
//	         |    \
//	lefterZ  |     \ 3
//	         |      *
//	         |      |   rightZ
//	         *------*
//	        1        2
//	          bottomY
func (r *ramp) topRampPentagon(i int, diagonalHeight float32, riserType RiserType) [5]math.Vec3 {
	topY := r.max.Y + diagonalHeight
	bottomY := r.min.Y
	middleY := bottomY + diagonalHeight
	rightZ := max(r.maxDepth, r.max.Z)
	leftZ := max(r.maxDepth, r.min.Z)

	lefterZ := r.maxDepth
	if i != 0 && riserType != FillDown {
		lefterZ = max(r.maxDepth, leftZ-r.extraDepth)
	}
	x := r.min.X
	return [5]math.Vec3{
		{X: x, Y: topY, Z: lefterZ},
		{X: x, Y: bottomY, Z: lefterZ},
		{X: x, Y: bottomY, Z: rightZ},
		{X: x, Y: middleY, Z: rightZ},
		{X: x, Y: topY, Z: leftZ},
	}
}

// generateBottomRamp fills a down band with the pieces of a wall below the steps.
func (g *generator) generateBottomRamp(band Band, r ramp, riserDepth float32) error {
	for i := 0; i < band.Size; i++ {
		quad := r.bottomRampQuad(i, band.Size, riserDepth, g.cfg.TreadHeight)
		if err := g.extrude(band, i, quad[:], r.extrusion, bottomRampSurfaces); err != nil {
			return err
		}
		r.advance(g.def.StepHeight, g.def.StepDepth)
	}
	return nil
}

// generateTopRamp fills the ramp slots of an up band with the sloped wall
// segments above the steps.
func (g *generator) generateTopRamp(band Band, r ramp) error {
	diagonalHeight := g.def.SideHeight + g.cfg.TreadHeight
	for i := 0; i < band.Ramps; i++ {
		pentagon := r.topRampPentagon(i, diagonalHeight, g.cfg.RiserType)
		if err := g.extrude(band, i, pentagon[:], r.extrusion, topRampSurfaces); err != nil {
			return err
		}
		r.advance(g.def.StepHeight, g.def.StepDepth)
	}
	return nil
}
