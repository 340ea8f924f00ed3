package stairs

// Face-to-surface maps handed to brush.CreateExtruded: base cap, far cap,
// then one entry per polygon edge. Every part is extruded along +X, so the
// base cap faces the right side and the far cap the left side.
var (
	// Vertex order: bottom-back, bottom-front, top-front, top-back.
	riserSurfaces = []int{
		int(RightSurface), int(LeftSurface),
		int(BottomSurface), int(StepSurface), int(TopSurface), int(BackSurface),
	}
	treadSurfaces = []int{
		int(RightSurface), int(LeftSurface),
		int(BottomSurface), int(ForwardSurface), int(TreadSurface), int(BackSurface),
	}
	// Vertex order: top-front, top-back, bottom-back, bottom-front.
	bottomRampSurfaces = []int{
		int(RightSurface), int(LeftSurface),
		int(TopSurface), int(BottomSurface), int(BottomSurface), int(ForwardSurface),
	}
	// Vertex order: top-back, bottom-back, bottom-front, middle-front, top.
	topRampSurfaces = []int{
		int(RightSurface), int(LeftSurface),
		int(BackSurface), int(BottomSurface), int(ForwardSurface), int(TopSurface), int(TopSurface),
	}
	// Vertex order: top-front, top-back, bottom-back, bottom-front.
	sidePanelSurfaces = []int{
		int(RightSurface), int(LeftSurface),
		int(TopSurface), int(BackSurface), int(BottomSurface), int(ForwardSurface),
	}
)
