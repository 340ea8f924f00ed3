package stairs

import (
	"errors"
	"fmt"
)

// ErrSurfaceCount is returned when the surface table does not have exactly TotalSides entries.
var ErrSurfaceCount = errors.New("stairs: surface table has wrong number of entries")

// BandKind identifies a structural part of the staircase.
type BandKind uint8

// Band kinds, in slot order.
const (
	RiserBand BandKind = iota
	TreadBand
	LeftDownBand
	RightDownBand
	LeftUpBand
	RightUpBand
)

var bandNames = [...]string{"riser", "tread", "left_down", "right_down", "left_up", "right_up"}

func (k BandKind) String() string {
	if int(k) < len(bandNames) {
		return bandNames[k]
	}
	return fmt.Sprintf("BandKind(%d)", k)
}

// Band is a contiguous range of sub-mesh slots owned by one part.
type Band struct {
	Kind  BandKind
	Start int
	Size  int

	// Up bands only: sloped ramp segments, then the optional top panel,
	// then the end cap.
	Ramps    int
	TopPanel bool
}

// TopPanelSlot returns the slot of the horizontal top panel of an up band.
func (b Band) TopPanelSlot() int {
	return b.Start + b.Ramps
}

// EndCapSlot returns the slot of the vertical end cap of an up band.
func (b Band) EndCapSlot() int {
	slot := b.Start + b.Ramps
	if b.TopPanel {
		slot++
	}
	return slot
}

// Layout is the ordered list of bands a staircase occupies, relative to the
// caller's slot offset. It is a value type so the count predictor never
// allocates.
type Layout struct {
	bands [maxBands]Band
	count int
	total int
}

const maxBands = 6

// NewLayout computes the band layout for cfg. A staircase without steps has
// no bands. Both SubMeshCount and GenerateSubMeshes use it.
func NewLayout(cfg Config) Layout {
	var l Layout
	n := cfg.StepCount
	if n <= 0 {
		return l
	}
	upSize := n - 1 + 1 // ramps + end cap
	if cfg.HaveTopSide {
		upSize++
	}

	l.add(cfg.HaveRiser, Band{Kind: RiserBand, Size: n})
	l.add(cfg.HaveTread, Band{Kind: TreadBand, Size: n})
	l.add(cfg.HaveLeftSideDown, Band{Kind: LeftDownBand, Size: n})
	l.add(cfg.HaveRightSideDown, Band{Kind: RightDownBand, Size: n})
	l.add(cfg.HaveLeftSideUp, Band{Kind: LeftUpBand, Size: upSize, Ramps: n - 1, TopPanel: cfg.HaveTopSide})
	l.add(cfg.HaveRightSideUp, Band{Kind: RightUpBand, Size: upSize, Ramps: n - 1, TopPanel: cfg.HaveTopSide})
	return l
}

func (l *Layout) add(enabled bool, b Band) {
	if !enabled {
		return
	}
	b.Start = l.total
	l.bands[l.count] = b
	l.count++
	l.total += b.Size
}

// Total returns the number of slots the layout covers.
func (l Layout) Total() int {
	return l.total
}

// Bands returns the present bands in slot order.
func (l *Layout) Bands() []Band {
	return l.bands[:l.count]
}

// Band returns the band of the given kind, if present.
func (l *Layout) Band(kind BandKind) (Band, bool) {
	for _, b := range l.Bands() {
		if b.Kind == kind {
			return b, true
		}
	}
	return Band{}, false
}

// SubMeshCount returns how many brushes GenerateSubMeshes writes for def
// with the given side styles, or 0 when the surface table is invalid.
// It does no geometry work and no allocation.
func SubMeshCount(def *Definition, leftSide, rightSide SideType) int {
	if def.Surfaces.Len() != int(TotalSides) {
		return 0
	}
	return NewLayout(Normalize(def, leftSide, rightSide)).Total()
}
