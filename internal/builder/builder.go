// Package builder places configured staircases into one brush container.
package builder

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-stairs/internal/config"
	"github.com/Faultbox/midgard-stairs/internal/logger"
	"github.com/Faultbox/midgard-stairs/pkg/brush"
	"github.com/Faultbox/midgard-stairs/pkg/math"
	"github.com/Faultbox/midgard-stairs/pkg/stairs"
)

// ErrNoPresets is returned when there is nothing to build.
var ErrNoPresets = errors.New("no stair presets")

// Placement records where one preset landed in the container.
type Placement struct {
	Name   string
	Start  int // First slot
	Count  int // Slots used
	Steps  int
	Layout stairs.Layout // Bands relative to Start
}

// Slots returns the half-open slot range [Start, Start+Count).
func (p Placement) Slots() (int, int) {
	return p.Start, p.Start + p.Count
}

// Result is the output of a build.
type Result struct {
	Container  brush.Container
	Placements []Placement
}

// Builder generates staircases from presets.
type Builder struct {
	log     *zap.Logger
	workers int
	check   bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithWorkers limits how many presets are generated at once. Zero or less
// means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// WithCheck enables closure and convexity checks on every generated brush.
func WithCheck(check bool) Option {
	return func(b *Builder) { b.check = check }
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		log: logger.Named("builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers <= 0 {
		b.workers = runtime.GOMAXPROCS(0)
	}
	return b
}

// FromConfig creates a Builder from build settings.
func FromConfig(cfg config.BuildConfig) *Builder {
	return New(WithWorkers(cfg.Workers), WithCheck(cfg.Check))
}

// Build generates a single preset.
func (b *Builder) Build(ctx context.Context, preset config.Preset) (*Result, error) {
	return b.BuildAll(ctx, []config.Preset{preset})
}

// Plan validates a copy of every preset definition and assigns each one a
// disjoint slot range. It returns the validated definitions alongside the
// placements and the total slot count.
func Plan(presets []config.Preset) ([]stairs.Definition, []Placement, int, error) {
	defs := make([]stairs.Definition, len(presets))
	placements := make([]Placement, len(presets))
	total := 0
	for i, p := range presets {
		def := p.Definition
		def.Validate()
		if def.Surfaces.Len() != int(stairs.TotalSides) {
			return nil, nil, 0, fmt.Errorf("preset %q: %w: got %d, want %d",
				p.Name, stairs.ErrSurfaceCount, def.Surfaces.Len(), stairs.TotalSides)
		}
		layout := stairs.NewLayout(stairs.Normalize(&def, def.LeftSide, def.RightSide))
		defs[i] = def
		placements[i] = Placement{
			Name:   p.Name,
			Start:  total,
			Count:  layout.Total(),
			Steps:  def.StepCount(),
			Layout: layout,
		}
		total += layout.Total()
	}
	return defs, placements, total, nil
}

// BuildAll generates every preset into one container. The container is sized
// up front and each preset writes only its own slot range, so presets are
// generated concurrently.
func (b *Builder) BuildAll(ctx context.Context, presets []config.Preset) (*Result, error) {
	if len(presets) == 0 {
		return nil, ErrNoPresets
	}

	defs, placements, total, err := Plan(presets)
	if err != nil {
		return nil, err
	}

	res := &Result{Placements: placements}
	res.Container.Resize(total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i := range presets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.generate(&res.Container, &defs[i], presets[i], placements[i])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.log.Info("built stairs",
		zap.Int("presets", len(presets)),
		zap.Int("brushes", total))
	return res, nil
}

// generate fills one preset's slot range and moves it into place.
func (b *Builder) generate(c *brush.Container, def *stairs.Definition, preset config.Preset, pl Placement) error {
	log := b.log.With(zap.String("preset", preset.Name))

	if pl.Count == 0 {
		log.Warn("preset has no steps", zap.Float32("height", def.Height()))
		return nil
	}

	if err := stairs.GenerateSubMeshes(c, def, def.LeftSide, def.RightSide, pl.Start); err != nil {
		return fmt.Errorf("preset %q: %w", preset.Name, err)
	}

	mat := math.Placement(preset.Origin, preset.Yaw, preset.Mirror)
	for slot := pl.Start; slot < pl.Start+pl.Count; slot++ {
		mesh := c.At(slot)
		mesh.Transform(mat)
		if b.check {
			if err := mesh.Validate(); err != nil {
				return fmt.Errorf("preset %q slot %d: %w", preset.Name, slot, err)
			}
		}
	}

	log.Debug("generated preset",
		zap.Int("steps", pl.Steps),
		zap.Int("start", pl.Start),
		zap.Int("brushes", pl.Count),
		zap.Stringer("riser", def.RiserType),
		zap.Array("bands", bandList(pl.Layout)))
	return nil
}

// bandList logs a layout as an array of {kind, start, size} objects.
type bandList stairs.Layout

func (l bandList) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	layout := stairs.Layout(l)
	for _, band := range layout.Bands() {
		err := enc.AppendObject(zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
			oe.AddString("kind", band.Kind.String())
			oe.AddInt("start", band.Start)
			oe.AddInt("size", band.Size)
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}
