package stairs

// Config is the effective configuration of a staircase after all riser and
// side constraints have been applied. The count predictor and the generator
// both work from it so they always agree on which parts exist.
type Config struct {
	StepCount   int
	TreadHeight float32
	RiserType   RiserType
	LeftSide    SideType
	RightSide   SideType

	HaveRiser         bool
	HaveTread         bool
	HaveTopSide       bool
	ThickRiser        bool
	HaveLeftSideDown  bool
	HaveLeftSideUp    bool
	HaveRightSideDown bool
	HaveRightSideUp   bool
}

// Normalize derives the effective configuration of def with the given side
// styles. The side arguments usually mirror def.LeftSide and def.RightSide;
// composite shapes pass their own.
func Normalize(def *Definition, leftSide, rightSide SideType) Config {
	cfg := Config{StepCount: def.StepCount()}

	cfg.TreadHeight = def.TreadHeight
	if cfg.TreadHeight < Epsilon {
		cfg.TreadHeight = 0
	}

	cfg.RiserType = def.RiserType
	if cfg.TreadHeight == 0 && cfg.RiserType == ThinRiser {
		cfg.RiserType = ThickRiser
	}

	cfg.LeftSide = normalizeSide(cfg.RiserType, leftSide)
	cfg.RightSide = normalizeSide(cfg.RiserType, rightSide)

	notFilled := cfg.RiserType != FillDown
	cfg.HaveRiser = cfg.RiserType != RiserNone
	cfg.HaveTread = cfg.TreadHeight >= Epsilon
	cfg.HaveTopSide = def.SideHeight > Epsilon
	cfg.ThickRiser = cfg.RiserType == ThickRiser || cfg.RiserType == Smooth
	cfg.HaveLeftSideDown = notFilled && cfg.LeftSide.HasDown()
	cfg.HaveLeftSideUp = cfg.LeftSide.HasUp()
	cfg.HaveRightSideDown = notFilled && cfg.RightSide.HasDown()
	cfg.HaveRightSideUp = cfg.RightSide.HasUp()
	return cfg
}

// normalizeSide applies the side remapping forced by the riser type:
// stairs without risers need a wall below any wall above, and smooth stairs
// always get a wall below.
func normalizeSide(riser RiserType, side SideType) SideType {
	switch riser {
	case RiserNone:
		if side == SideUp {
			return SideDownAndUp
		}
	case Smooth:
		switch side {
		case SideUp:
			return SideDownAndUp
		case SideNone:
			return SideDown
		}
	}
	return side
}
