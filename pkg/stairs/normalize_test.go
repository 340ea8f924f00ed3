package stairs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		riser       RiserType
		tread       float32
		sideHeight  float32
		left, right SideType
		want        Config
	}{
		{
			name:  "thick riser no sides",
			riser: ThickRiser, tread: 0.02, sideHeight: 0,
			left: SideNone, right: SideNone,
			want: Config{
				StepCount: 4, TreadHeight: 0.02, RiserType: ThickRiser,
				HaveRiser: true, HaveTread: true, ThickRiser: true,
			},
		},
		{
			name:  "thin riser without tread becomes thick",
			riser: ThinRiser, tread: 0.0005, sideHeight: 0.5,
			left: SideDown, right: SideNone,
			want: Config{
				StepCount: 4, RiserType: ThickRiser, LeftSide: SideDown,
				HaveRiser: true, HaveTopSide: true, ThickRiser: true, HaveLeftSideDown: true,
			},
		},
		{
			name:  "no riser forces wall below an upper wall",
			riser: RiserNone, tread: 0.02,
			left: SideUp, right: SideDown,
			want: Config{
				StepCount: 4, TreadHeight: 0.02, RiserType: RiserNone,
				LeftSide: SideDownAndUp, RightSide: SideDown,
				HaveTread: true, HaveLeftSideDown: true, HaveLeftSideUp: true, HaveRightSideDown: true,
			},
		},
		{
			name:  "smooth riser remaps both sides",
			riser: Smooth, tread: 0.02,
			left: SideUp, right: SideNone,
			want: Config{
				StepCount: 4, TreadHeight: 0.02, RiserType: Smooth,
				LeftSide: SideDownAndUp, RightSide: SideDown,
				HaveRiser: true, HaveTread: true, ThickRiser: true,
				HaveLeftSideDown: true, HaveLeftSideUp: true, HaveRightSideDown: true,
			},
		},
		{
			name:  "fill down removes walls below",
			riser: FillDown, tread: 0.02,
			left: SideDownAndUp, right: SideDown,
			want: Config{
				StepCount: 4, TreadHeight: 0.02, RiserType: FillDown,
				LeftSide: SideDownAndUp, RightSide: SideDown,
				HaveRiser: true, HaveTread: true, HaveLeftSideUp: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newDefinition(4)
			def.RiserType = tt.riser
			def.TreadHeight = tt.tread
			def.SideHeight = tt.sideHeight

			got := Normalize(&def, tt.left, tt.right)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The side arguments are normalized on their own; the definition's side
// fields never feed into the remapping.
func TestNormalizeUsesSideArguments(t *testing.T) {
	tests := []struct {
		name              string
		riser             RiserType
		defLeft, defRight SideType
		left, right       SideType
		wantLeft          SideType
		wantRight         SideType
	}{
		{"argument up, definition none", RiserNone, SideNone, SideNone, SideUp, SideNone, SideDownAndUp, SideNone},
		{"definition up, argument none", RiserNone, SideUp, SideUp, SideNone, SideNone, SideNone, SideNone},
		{"definition up, argument down", RiserNone, SideUp, SideNone, SideDown, SideUp, SideDown, SideDownAndUp},
		{"smooth, definition up, argument none", Smooth, SideUp, SideUp, SideNone, SideUp, SideDown, SideDownAndUp},
		{"thick riser keeps argument", ThickRiser, SideDownAndUp, SideNone, SideUp, SideDown, SideUp, SideDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newDefinition(2)
			def.RiserType = tt.riser
			def.LeftSide = tt.defLeft
			def.RightSide = tt.defRight

			cfg := Normalize(&def, tt.left, tt.right)
			if cfg.LeftSide != tt.wantLeft {
				t.Errorf("LeftSide = %v, want %v", cfg.LeftSide, tt.wantLeft)
			}
			if cfg.RightSide != tt.wantRight {
				t.Errorf("RightSide = %v, want %v", cfg.RightSide, tt.wantRight)
			}
			if def.LeftSide != tt.defLeft || def.RightSide != tt.defRight {
				t.Error("Normalize modified the definition")
			}
		})
	}
}
