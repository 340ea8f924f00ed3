package stairs

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/midgard-stairs/pkg/brush"
	"github.com/Faultbox/midgard-stairs/pkg/math"
)

var (
	allRisers = []RiserType{RiserNone, ThinRiser, ThickRiser, FillDown, Smooth}
	allSides  = []SideType{SideNone, SideDown, SideUp, SideDownAndUp}
)

const padding = 2

// generateAt runs GenerateSubMeshes into a container with padding slots on
// both sides of the predicted range and returns the container and count.
func generateAt(t *testing.T, def *Definition, left, right SideType) (*brush.Container, int) {
	t.Helper()
	count := SubMeshCount(def, left, right)
	var c brush.Container
	c.EnsureSize(padding + count + padding)
	if err := GenerateSubMeshes(&c, def, left, right, padding); err != nil {
		t.Fatalf("GenerateSubMeshes() error = %v", err)
	}
	return &c, count
}

func checkWrittenRange(t *testing.T, c *brush.Container, count int) {
	t.Helper()
	for i := 0; i < c.Len(); i++ {
		inRange := i >= padding && i < padding+count
		if empty := c.At(i).Empty(); empty == inRange {
			t.Errorf("slot %d: empty=%v, expected written=%v", i, empty, inRange)
		}
	}
}

func TestSubMeshCountScenarios(t *testing.T) {
	tests := []struct {
		name        string
		steps       int
		riser       RiserType
		left, right SideType
		sideHeight  float32
		expected    int
	}{
		{"A thick riser no sides", 4, ThickRiser, SideNone, SideNone, 0.5, 8},
		{"B no riser forces left down", 3, RiserNone, SideUp, SideNone, 0, 9},
		{"B with top panel", 3, RiserNone, SideUp, SideNone, 0.5, 10},
		{"D fill down drops walls below", 3, FillDown, SideDownAndUp, SideDown, 0, 3 + 3 + 3},
		{"smooth adds walls below", 2, Smooth, SideNone, SideNone, 0.5, 2 + 2 + 2 + 2},
		{"single step with up walls", 1, ThickRiser, SideUp, SideUp, 0.5, 1 + 1 + 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newDefinition(tt.steps)
			def.RiserType = tt.riser
			def.SideHeight = tt.sideHeight

			if got := SubMeshCount(&def, tt.left, tt.right); got != tt.expected {
				t.Errorf("SubMeshCount() = %d, want %d", got, tt.expected)
			}
			c, count := generateAt(t, &def, tt.left, tt.right)
			checkWrittenRange(t, c, count)
		})
	}
}

// Scenario C: a surface table one entry short fails both entry points before
// any geometry is produced.
func TestSurfaceTableMismatch(t *testing.T) {
	def := newDefinition(4)
	def.Surfaces.Surfaces = def.Surfaces.Surfaces[:TotalSides-1]

	if got := SubMeshCount(&def, SideDownAndUp, SideDownAndUp); got != 0 {
		t.Errorf("SubMeshCount() = %d, want 0", got)
	}

	var c brush.Container
	c.EnsureSize(32)
	err := GenerateSubMeshes(&c, &def, SideDownAndUp, SideDownAndUp, 0)
	if !errors.Is(err, ErrSurfaceCount) {
		t.Errorf("GenerateSubMeshes() error = %v, want ErrSurfaceCount", err)
	}
	if c.Filled() != 0 {
		t.Errorf("expected no writes, %d slots filled", c.Filled())
	}

	if err := Generate(&c, &def); !errors.Is(err, ErrSurfaceCount) {
		t.Errorf("Generate() error = %v, want ErrSurfaceCount", err)
	}
}

func TestZeroSteps(t *testing.T) {
	def := newDefinition(4)
	def.Bounds.Max.Y = def.Bounds.Min.Y
	def.Validate()
	def.RiserType = ThickRiser

	if def.StepCount() != 0 {
		t.Fatalf("expected 0 steps, got %d", def.StepCount())
	}
	if got := SubMeshCount(&def, SideDownAndUp, SideUp); got != 0 {
		t.Errorf("SubMeshCount() = %d, want 0", got)
	}

	var c brush.Container
	c.EnsureSize(4)
	if err := GenerateSubMeshes(&c, &def, SideDownAndUp, SideUp, 0); err != nil {
		t.Errorf("GenerateSubMeshes() error = %v", err)
	}
	if c.Filled() != 0 {
		t.Errorf("expected no writes, %d slots filled", c.Filled())
	}
}

func TestSubMeshCountDoesNotAllocate(t *testing.T) {
	def := newDefinition(6)
	allocs := testing.AllocsPerRun(100, func() {
		SubMeshCount(&def, SideDownAndUp, SideUp)
	})
	if allocs != 0 {
		t.Errorf("SubMeshCount allocated %v times per run", allocs)
	}
}

// Every combination of riser style, side styles, tread and top panel writes
// exactly the predicted slots, and every brush is closed and convex.
func TestGenerateMatchesPrediction(t *testing.T) {
	for _, steps := range []int{1, 2, 4} {
		for _, riser := range allRisers {
			for _, tread := range []float32{0, 0.02} {
				for _, sideHeight := range []float32{0, 0.5} {
					for _, left := range allSides {
						for _, right := range allSides {
							name := fmt.Sprintf("%d/%v/tread=%v/side=%v/%v/%v", steps, riser, tread, sideHeight, left, right)
							t.Run(name, func(t *testing.T) {
								def := newDefinition(steps)
								def.RiserType = riser
								def.TreadHeight = tread
								def.SideHeight = sideHeight
								checkGenerated(t, &def, left, right)
							})
						}
					}
				}
			}
		}
	}
}

// Randomised definitions with odd proportions, plateaus and depth offsets.
func TestGenerateRandomDefinitions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rnd := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	for i := 0; i < 300; i++ {
		def := DefaultDefinition()
		def.Bounds = brush.Bounds{
			Min: math.Vec3{X: rnd(-2, 0), Y: rnd(-1, 1), Z: rnd(-2, 0)},
		}
		def.Bounds.Max = def.Bounds.Min.Add(math.Vec3{X: rnd(0.2, 3), Y: rnd(0.1, 3), Z: rnd(0.5, 4)})
		def.StepHeight = rnd(0.05, 0.4)
		def.StepDepth = rnd(0.05, 0.5)
		def.PlateauHeight = rnd(0, 0.3)
		def.TreadHeight = rnd(0, 0.05)
		def.NosingDepth = rnd(0, 0.05)
		def.NosingWidth = rnd(0, 0.05)
		def.RiserDepth = rnd(0, 0.3)
		def.SideWidth = rnd(0, 0.3)
		def.SideHeight = rnd(0, 0.8)
		def.SideDepth = rnd(0, 0.3)
		def.RiserType = allRisers[rng.Intn(len(allRisers))]
		left := allSides[rng.Intn(len(allSides))]
		right := allSides[rng.Intn(len(allSides))]
		def.Validate()

		t.Run(fmt.Sprintf("case%03d", i), func(t *testing.T) {
			checkGenerated(t, &def, left, right)
		})
	}
}

func checkGenerated(t *testing.T, def *Definition, left, right SideType) {
	t.Helper()
	c, count := generateAt(t, def, left, right)
	checkWrittenRange(t, c, count)

	cfg := Normalize(def, left, right)
	layout := NewLayout(cfg)
	if layout.Total() != count {
		t.Fatalf("layout total %d != predicted %d", layout.Total(), count)
	}

	bounds := def.SortedBounds()
	for _, band := range layout.Bands() {
		for i := 0; i < band.Size; i++ {
			m := c.At(padding + band.Start + i)
			if err := m.Validate(); err != nil {
				t.Errorf("%s piece %d: %v", band.Kind, i, err)
			}
			b := m.Bounds()
			width := b.Max.X - b.Min.X

			switch band.Kind {
			case LeftDownBand, RightDownBand, LeftUpBand, RightUpBand:
				if math.Abs(width-def.SideWidth) > 1e-4 {
					t.Errorf("%s piece %d: width %f, want side width %f", band.Kind, i, width, def.SideWidth)
				}
				if b.Min.Z < bounds.Min.Z-1e-5 {
					t.Errorf("%s piece %d: min z %f in front of %f", band.Kind, i, b.Min.Z, bounds.Min.Z)
				}
			case RiserBand:
				want := def.Width()
				if cfg.HaveLeftSideUp {
					want -= def.SideWidth
				}
				if cfg.HaveRightSideUp {
					want -= def.SideWidth
				}
				if math.Abs(width-want) > 1e-4 {
					t.Errorf("riser %d: width %f, want %f", i, width, want)
				}
			case TreadBand:
				if width <= 0 {
					t.Errorf("tread %d: width %f", i, width)
				}
			}
		}
	}
}

func TestThickRiserGeometry(t *testing.T) {
	def := newDefinition(4)
	def.RiserType = ThickRiser
	def.TreadHeight = 0.05
	c, count := generateAt(t, &def, SideNone, SideNone)
	if count != 8 {
		t.Fatalf("expected 8 brushes, got %d", count)
	}

	approx := cmpopts.EquateApprox(0, 1e-5)
	for i := 0; i < 4; i++ {
		step := float32(i)
		riser := c.At(padding + i).Bounds()
		want := brush.Bounds{
			Min: math.Vec3{X: -0.5, Y: 0.70 - 0.25*step, Z: 0},
			Max: math.Vec3{X: 0.5, Y: 0.95 - 0.25*step, Z: 0.25 * (step + 1)},
		}
		if i == 3 {
			// The lowest riser reaches the floor.
			want.Min.Y = 0
		}
		if i > 0 {
			want.Min.Z = 0.25 * step
		}
		if diff := cmp.Diff(want, riser, approx); diff != "" {
			t.Errorf("riser %d bounds mismatch (-want +got):\n%s", i, diff)
		}

		tread := c.At(padding + 4 + i).Bounds()
		if math.Abs(tread.Max.Y-(1-0.25*step)) > 1e-5 || math.Abs(tread.Max.Y-tread.Min.Y-0.05) > 1e-5 {
			t.Errorf("tread %d spans y %f..%f", i, tread.Min.Y, tread.Max.Y)
		}
		if math.Abs(tread.Max.Z-(0.25*(step+1)+def.NosingDepth)) > 1e-5 {
			t.Errorf("tread %d front at z %f", i, tread.Max.Z)
		}
		if math.Abs(tread.Min.X-(-0.5-def.NosingWidth)) > 1e-5 {
			t.Errorf("tread %d right edge at x %f", i, tread.Min.X)
		}
	}
}

func TestSmoothRiserIsSlanted(t *testing.T) {
	def := newDefinition(3)
	def.RiserType = Smooth
	c, _ := generateAt(t, &def, SideNone, SideNone)

	first := c.At(padding).Bounds()
	second := c.At(padding + 1).Bounds()
	// The second riser leans back one step depth over the first.
	wantBack := first.Max.Z - def.StepDepth
	if math.Abs(second.Min.Z-wantBack) > 1e-5 {
		t.Errorf("smooth riser should reach back to z %f, got %f", wantBack, second.Min.Z)
	}
	if math.Abs(second.Max.Z-second.Min.Z-2*def.StepDepth) > 1e-5 {
		t.Errorf("smooth riser depth %f, want %f", second.Max.Z-second.Min.Z, 2*def.StepDepth)
	}
}

func TestTreadNosingNextToUpperWall(t *testing.T) {
	def := newDefinition(3)
	def.RiserType = ThickRiser
	def.SideHeight = 0
	c, _ := generateAt(t, &def, SideUp, SideNone)

	layout := NewLayout(Normalize(&def, SideUp, SideNone))
	treads, ok := layout.Band(TreadBand)
	if !ok {
		t.Fatal("expected a tread band")
	}
	top := c.At(padding + treads.Start).Bounds()
	next := c.At(padding + treads.Start + 1).Bounds()

	// Without a top panel the top tread keeps its nosing over the wall.
	if math.Abs(top.Max.X-(0.5+def.NosingWidth)) > 1e-5 {
		t.Errorf("top tread left edge at %f, want %f", top.Max.X, 0.5+def.NosingWidth)
	}
	if math.Abs(next.Max.X-(0.5-def.SideWidth)) > 1e-5 {
		t.Errorf("second tread left edge at %f, want %f", next.Max.X, 0.5-def.SideWidth)
	}

	def.SideHeight = 0.5
	c, _ = generateAt(t, &def, SideUp, SideNone)
	top = c.At(padding + treads.Start).Bounds()
	if math.Abs(top.Max.X-(0.5-def.SideWidth)) > 1e-5 {
		t.Errorf("with a top panel the top tread stops at %f, got %f", 0.5-def.SideWidth, top.Max.X)
	}
}

// Scenario D.
func TestFillDownEndCap(t *testing.T) {
	def := newDefinition(3)
	def.RiserType = FillDown
	def.SideHeight = 0.5

	cfg := Normalize(&def, SideDownAndUp, SideDownAndUp)
	if cfg.HaveLeftSideDown || cfg.HaveRightSideDown {
		t.Fatalf("fill down must drop walls below: %+v", cfg)
	}

	c, _ := generateAt(t, &def, SideDownAndUp, SideDownAndUp)
	layout := NewLayout(cfg)
	for _, kind := range []BandKind{LeftUpBand, RightUpBand} {
		band, ok := layout.Band(kind)
		if !ok {
			t.Fatalf("missing %s band", kind)
		}
		endCap := c.At(padding + band.EndCapSlot()).Bounds()
		if endCap.Min.Z != def.Bounds.Min.Z || endCap.Max.Z != def.Bounds.Max.Z {
			t.Errorf("%s end cap spans z %f..%f, want full depth", kind, endCap.Min.Z, endCap.Max.Z)
		}
		if math.Abs(endCap.Max.Y-endCap.Min.Y-def.StepHeight) > 1e-5 {
			t.Errorf("%s end cap height %f, want %f", kind, endCap.Max.Y-endCap.Min.Y, def.StepHeight)
		}
	}
}

func TestEndCapInsetFollowsRiser(t *testing.T) {
	def := newDefinition(3)
	def.RiserType = ThickRiser
	def.SideHeight = 0
	c, _ := generateAt(t, &def, SideDownAndUp, SideNone)

	layout := NewLayout(Normalize(&def, SideDownAndUp, SideNone))
	band, _ := layout.Band(LeftUpBand)
	if band.TopPanel {
		t.Fatal("no top panel expected")
	}
	endCap := c.At(padding + band.EndCapSlot()).Bounds()
	wantBack := def.Bounds.Max.Z - (def.StepDepth + def.SideDepth)
	if math.Abs(endCap.Min.Z-wantBack) > 1e-5 {
		t.Errorf("end cap back at %f, want %f", endCap.Min.Z, wantBack)
	}
}

func TestGenerateResizesContainer(t *testing.T) {
	def := newDefinition(4)
	def.LeftSide = SideDownAndUp
	def.RightSide = SideDown

	c := brush.Container{}
	c.EnsureSize(100)
	if err := Generate(&c, &def); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := SubMeshCount(&def, def.LeftSide, def.RightSide)
	if c.Len() != want || c.Filled() != want {
		t.Errorf("Generate() left Len()=%d Filled()=%d, want %d", c.Len(), c.Filled(), want)
	}
}

func TestGenerateZeroStepsEmptiesContainer(t *testing.T) {
	def := newDefinition(2)
	def.Bounds.Max.Y = def.Bounds.Min.Y

	c := brush.Container{}
	c.EnsureSize(6)
	if err := Generate(&c, &def); err != nil {
		t.Fatalf("Generate() error = %v, want nil for a staircase without steps", err)
	}
	if c.Len() != 0 {
		t.Errorf("Generate() left %d slots, want 0", c.Len())
	}
}
