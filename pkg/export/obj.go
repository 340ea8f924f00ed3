// Package export writes brush containers to interchange formats.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-stairs/pkg/brush"
)

// DefaultPrecision is the number of decimals written for coordinates.
const DefaultPrecision = 6

// ErrGroupRange is returned when a group names slots outside the container.
var ErrGroupRange = errors.New("group outside container")

// Group names a run of consecutive brushes.
type Group struct {
	Name  string
	Start int
	Count int
}

// Options controls OBJ output.
type Options struct {
	Precision int     // Decimals per coordinate, DefaultPrecision if zero
	Groups    []Group // Optional "g" statements
}

// Stats summarizes what was written.
type Stats struct {
	Objects  int
	Vertices int
	Faces    int
}

// WriteOBJ writes every non-empty brush of c as a Wavefront OBJ object named
// brush_<slot>. Faces keep the brush winding, so OBJ normals point out of
// each brush. Materials are referenced as surface_<material id>.
func WriteOBJ(w io.Writer, c *brush.Container, opts Options) (Stats, error) {
	var stats Stats

	precision := opts.Precision
	if precision <= 0 {
		precision = DefaultPrecision
	}
	groupAt := make(map[int]string, len(opts.Groups))
	for _, g := range opts.Groups {
		if g.Start < 0 || g.Count < 0 || g.Start+g.Count > c.Len() {
			return stats, fmt.Errorf("%w: %q covers %d..%d of %d slots",
				ErrGroupRange, g.Name, g.Start, g.Start+g.Count, c.Len())
		}
		if g.Count > 0 {
			groupAt[g.Start] = g.Name
		}
	}

	bw := bufio.NewWriter(w)
	ow := objWriter{w: bw, precision: precision}

	ow.printf("# midgard-stairs\n")
	ow.printf("# %d brushes\n", c.Filled())

	base := 1 // OBJ indices are 1-based and global
	for slot := range c.Meshes {
		if name, ok := groupAt[slot]; ok {
			ow.printf("g %s\n", name)
		}
		m := c.At(slot)
		if m.Empty() {
			continue
		}

		ow.printf("o brush_%d\n", slot)
		for _, v := range m.Vertices {
			ow.printf("v %s %s %s\n", ow.coord(v.X), ow.coord(v.Y), ow.coord(v.Z))
		}

		material := -1
		smoothing := uint32(0)
		ow.printf("s off\n")
		for p, poly := range m.Polygons {
			if poly.Surface.MaterialID != material {
				material = poly.Surface.MaterialID
				ow.printf("usemtl surface_%d\n", material)
			}
			if poly.Surface.SmoothingGroup != smoothing {
				smoothing = poly.Surface.SmoothingGroup
				if smoothing == 0 {
					ow.printf("s off\n")
				} else {
					ow.printf("s %d\n", smoothing)
				}
			}
			ow.printf("f")
			for _, idx := range m.PolygonIndices(p) {
				ow.printf(" %d", base+idx)
			}
			ow.printf("\n")
			stats.Faces++
		}

		base += len(m.Vertices)
		stats.Vertices += len(m.Vertices)
		stats.Objects++
	}

	if ow.err != nil {
		return stats, ow.err
	}
	return stats, bw.Flush()
}

// objWriter keeps the first write error so the loop above stays flat.
type objWriter struct {
	w         *bufio.Writer
	precision int
	err       error
}

func (o *objWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

func (o *objWriter) coord(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', o.precision, 32)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		return s[1:]
	}
	return s
}
