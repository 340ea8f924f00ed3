package stairs

import (
	"fmt"

	"github.com/Faultbox/midgard-stairs/pkg/brush"
	"github.com/Faultbox/midgard-stairs/pkg/math"
)

// Generate validates def, sizes c to exactly the brushes it needs and fills
// them using the definition's own side styles.
//
// Generate owns c: it sets the slot count with Resize, so a container that
// was larger shrinks, where callers placing stairs among other brushes grow
// theirs with EnsureSize and call GenerateSubMeshes. A definition without
// steps is not an error; it leaves c empty and returns nil.
func Generate(c *brush.Container, def *Definition) error {
	def.Validate()
	if def.Surfaces.Len() != int(TotalSides) {
		return fmt.Errorf("%w: got %d, want %d", ErrSurfaceCount, def.Surfaces.Len(), TotalSides)
	}
	c.Resize(SubMeshCount(def, def.LeftSide, def.RightSide))
	return GenerateSubMeshes(c, def, def.LeftSide, def.RightSide, 0)
}

// GenerateSubMeshes writes the brushes of def into c starting at slot
// offset. The caller must have sized c to hold SubMeshCount(def, leftSide,
// rightSide) slots from offset; c is never resized here.
//
// A surface table without exactly TotalSides entries fails with
// ErrSurfaceCount before anything is written. A staircase without steps
// writes nothing and succeeds. Any other error means the brush math produced
// a degenerate polygon and is a bug.
func GenerateSubMeshes(c *brush.Container, def *Definition, leftSide, rightSide SideType, offset int) error {
	if def.Surfaces.Len() != int(TotalSides) {
		return fmt.Errorf("%w: got %d, want %d", ErrSurfaceCount, def.Surfaces.Len(), TotalSides)
	}

	cfg := Normalize(def, leftSide, rightSide)
	layout := NewLayout(cfg)
	if layout.Total() == 0 {
		return nil
	}

	g := newGenerator(c, def, cfg, offset)
	for _, band := range layout.Bands() {
		var err error
		switch band.Kind {
		case RiserBand:
			err = g.generateRisers(band)
		case TreadBand:
			err = g.generateTreads(band)
		case LeftDownBand, RightDownBand:
			err = g.generateDownSide(band)
		case LeftUpBand, RightUpBand:
			err = g.generateUpSide(band)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type generator struct {
	c      *brush.Container
	def    *Definition
	cfg    Config
	offset int

	boundsMin, boundsMax math.Vec3

	// stepDepthOffset is the raw first-step depth adjustment; offsetZ is the
	// same value with sub-epsilon noise dropped.
	stepDepthOffset float32
	offsetZ         float32
	riserDepth      float32
}

func newGenerator(c *brush.Container, def *Definition, cfg Config, offset int) *generator {
	bounds := def.SortedBounds()
	g := &generator{
		c:               c,
		def:             def,
		cfg:             cfg,
		offset:          offset,
		boundsMin:       bounds.Min,
		boundsMax:       bounds.Max,
		stepDepthOffset: def.StepDepthOffset(),
	}
	if g.stepDepthOffset >= Epsilon {
		g.offsetZ = g.stepDepthOffset
	}
	if cfg.HaveRiser && !cfg.ThickRiser {
		g.riserDepth = def.RiserDepth
	}
	return g
}

func (g *generator) extrude(band Band, i int, polygon []math.Vec3, extrusion math.Vec3, surfaces []int) error {
	slot := g.offset + band.Start + i
	if err := brush.CreateExtruded(g.c.At(slot), polygon, extrusion, surfaces, g.def.Surfaces); err != nil {
		return fmt.Errorf("stairs: %s piece %d (slot %d): %w", band.Kind, i, slot, err)
	}
	return nil
}

// stepQuad is the profile shared by risers and treads, in the YZ plane at x.
func stepQuad(x float32, min, max math.Vec3, backTopZ float32) [4]math.Vec3 {
	return [4]math.Vec3{
		{X: x, Y: min.Y, Z: min.Z},
		{X: x, Y: min.Y, Z: max.Z},
		{X: x, Y: max.Y, Z: max.Z},
		{X: x, Y: max.Y, Z: backTopZ},
	}
}

func (g *generator) generateRisers(band Band) error {
	def, cfg := g.def, g.cfg
	min, max := g.boundsMin, g.boundsMax

	max.Z = min.Z + g.stepDepthOffset + def.StepDepth
	if cfg.RiserType != FillDown {
		if cfg.RiserType == ThinRiser {
			min.Z = max.Z - g.riserDepth
		} else {
			min.Z += g.stepDepthOffset
		}
		if cfg.ThickRiser {
			min.Z -= g.offsetZ
		}
	}
	// Risers sit below the tread.
	min.Y = max.Y - def.StepHeight - cfg.TreadHeight
	max.Y -= cfg.TreadHeight
	if cfg.HaveRightSideUp {
		min.X += def.SideWidth
	}
	if cfg.HaveLeftSideUp {
		max.X -= def.SideWidth
	}
	extrusion := math.Vec3{X: max.X - min.X}

	for i := 0; i < band.Size; i++ {
		if i == 1 && cfg.ThickRiser {
			min.Z += g.offsetZ
		}
		if i == band.Size-1 {
			// The lowest riser reaches down to the floor below the plateau.
			min.Y += cfg.TreadHeight - def.PlateauHeight
		}
		backTopZ := min.Z
		if i > 0 && cfg.RiserType == Smooth {
			backTopZ -= def.StepDepth
		}

		quad := stepQuad(min.X, min, max, backTopZ)
		if err := g.extrude(band, i, quad[:], extrusion, riserSurfaces); err != nil {
			return err
		}

		if cfg.RiserType != FillDown {
			min.Z += def.StepDepth
		}
		max.Z += def.StepDepth
		min.Y -= def.StepHeight
		max.Y -= def.StepHeight
	}
	return nil
}

func (g *generator) generateTreads(band Band) error {
	def, cfg := g.def, g.cfg

	// A side with a wall above pulls the tread in behind the wall, except on
	// the top step when there is no top panel to cover the nosing.
	rightNosing, rightTopNosing := def.NosingWidth, def.NosingWidth
	if cfg.HaveRightSideUp {
		rightNosing = -def.SideWidth
		if cfg.HaveTopSide {
			rightTopNosing = rightNosing
		}
	}
	leftNosing, leftTopNosing := def.NosingWidth, def.NosingWidth
	if cfg.HaveLeftSideUp {
		leftNosing = -def.SideWidth
		if cfg.HaveTopSide {
			leftTopNosing = leftNosing
		}
	}

	min := math.Vec3{Y: g.boundsMax.Y - cfg.TreadHeight, Z: g.boundsMin.Z}
	max := math.Vec3{Y: g.boundsMax.Y, Z: g.boundsMin.Z + g.stepDepthOffset + def.StepDepth + def.NosingDepth}
	stepOffset := math.Vec3{Y: -def.StepHeight, Z: def.StepDepth}

	for i := 0; i < band.Size; i++ {
		if i == 0 {
			min.X = g.boundsMin.X - rightTopNosing
			max.X = g.boundsMax.X + leftTopNosing
		} else {
			min.X = g.boundsMin.X - rightNosing
			max.X = g.boundsMax.X + leftNosing
		}
		if i == 1 {
			min.Z = max.Z - (def.StepDepth + def.NosingDepth)
		}

		quad := stepQuad(min.X, min, max, min.Z)
		extrusion := math.Vec3{X: max.X - min.X}
		if err := g.extrude(band, i, quad[:], extrusion, treadSurfaces); err != nil {
			return err
		}
		min = min.Add(stepOffset)
		max = max.Add(stepOffset)
	}
	return nil
}

// sideExtraDepth is how far a side wall reaches back past the step edge.
func (g *generator) sideExtraDepth(haveDown bool) float32 {
	extra := g.riserDepth
	if g.cfg.ThickRiser {
		extra = g.def.StepDepth
	}
	if haveDown {
		extra += g.def.SideDepth
	}
	return extra
}

// sideX returns the X range of the wall on the side of band.
func (g *generator) sideX(kind BandKind) (float32, float32) {
	if kind == LeftDownBand || kind == LeftUpBand {
		return g.boundsMax.X - g.def.SideWidth, g.boundsMax.X
	}
	return g.boundsMin.X, g.boundsMin.X + g.def.SideWidth
}

func (g *generator) haveDown(kind BandKind) bool {
	if kind == LeftDownBand || kind == LeftUpBand {
		return g.cfg.HaveLeftSideDown
	}
	return g.cfg.HaveRightSideDown
}

func (g *generator) generateDownSide(band Band) error {
	def, cfg := g.def, g.cfg
	minX, maxX := g.sideX(band.Kind)
	firstZ := g.boundsMin.Z + g.stepDepthOffset

	r := ramp{
		min:        math.Vec3{X: minX, Y: g.boundsMax.Y - def.StepHeight - cfg.TreadHeight, Z: firstZ},
		max:        math.Vec3{X: maxX, Y: g.boundsMax.Y - cfg.TreadHeight, Z: firstZ + def.StepDepth},
		extrusion:  math.Vec3{X: def.SideWidth},
		extraDepth: g.sideExtraDepth(g.haveDown(band.Kind)),
		maxDepth:   g.boundsMin.Z,
	}
	return g.generateBottomRamp(band, r, def.StepDepth-g.riserDepth)
}

func (g *generator) generateUpSide(band Band) error {
	def, cfg := g.def, g.cfg
	minX, maxX := g.sideX(band.Kind)
	firstZ := g.boundsMin.Z + g.stepDepthOffset + def.StepDepth

	r := ramp{
		min:        math.Vec3{X: minX, Y: g.boundsMax.Y - cfg.TreadHeight - def.StepHeight, Z: firstZ},
		max:        math.Vec3{X: maxX, Y: g.boundsMax.Y - cfg.TreadHeight, Z: firstZ + def.StepDepth},
		extrusion:  math.Vec3{X: def.SideWidth},
		extraDepth: g.sideExtraDepth(g.haveDown(band.Kind)),
		maxDepth:   g.boundsMin.Z,
	}
	if err := g.generateTopRamp(band, r); err != nil {
		return err
	}

	x := r.min.X
	if band.TopPanel {
		topY := r.max.Y + def.SideHeight + cfg.TreadHeight
		panel := [4]math.Vec3{
			{X: x, Y: topY, Z: r.min.Z},
			{X: x, Y: topY, Z: g.boundsMin.Z},
			{X: x, Y: r.max.Y, Z: g.boundsMin.Z},
			{X: x, Y: r.max.Y, Z: r.min.Z},
		}
		if err := g.extrude(band, band.TopPanelSlot()-band.Start, panel[:], r.extrusion, sidePanelSurfaces); err != nil {
			return err
		}
	}

	// The end cap closes the wall at the bottom of the stairs.
	backZ := max(g.boundsMin.Z, g.boundsMax.Z-r.extraDepth)
	if cfg.RiserType == FillDown {
		backZ = g.boundsMin.Z
	}
	capTop := g.boundsMin.Y + def.StepHeight
	endCap := [4]math.Vec3{
		{X: x, Y: capTop, Z: g.boundsMax.Z},
		{X: x, Y: capTop, Z: backZ},
		{X: x, Y: g.boundsMin.Y, Z: backZ},
		{X: x, Y: g.boundsMin.Y, Z: g.boundsMax.Z},
	}
	return g.extrude(band, band.EndCapSlot()-band.Start, endCap[:], r.extrusion, sidePanelSurfaces)
}
