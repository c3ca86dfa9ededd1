package pipeline

import (
	"math"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
)

// SimplifyShortArcs rewrites a G2/G3 motion whose sagitta (the maximum
// deviation of the arc from its chord) is within tolerance as a plain G1,
// dropping its centre offsets.
func SimplifyShortArcs(tolerance float64) func(Source) Source {
	return func(src Source) Source {
		var (
			prev     geom.Coord
			havePrev bool
			plane    = geom.PlaneXY
			tracker  motionTracker
		)

		return func() (gcodeline.Line, bool) {
			l, ok := src()
			if !ok {
				return gcodeline.Line{}, false
			}
			updatePlane(&plane, l)

			cur := targetCoord(l, prev, havePrev)
			defer func() { prev, havePrev = cur, true }()

			cmdTok, hasCmd := tracker.Observe(l)
			if !hasCmd || !isArcCommand(cmdTok) || !havePrev {
				return l, true
			}
			centre, ok := arcCentre(l, prev, plane)
			if !ok {
				return l, true
			}

			radius := prev.Distance(centre)
			chord := prev.Distance(cur)
			if radius <= 0 || chord/2 > radius {
				return l, true
			}
			sagitta := radius - math.Sqrt(radius*radius-(chord/2)*(chord/2))
			if sagitta > tolerance {
				return l, true
			}

			out := ensureCommand(l.RemoveByCode("IJK"), cmdToken('G', 1))
			return out, true
		}
	}
}

func arcCentre(l gcodeline.Line, prev geom.Coord, plane geom.Plane) (geom.Coord, bool) {
	iTok, hasI := argOf(l, 'I')
	jTok, hasJ := argOf(l, 'J')
	kTok, hasK := argOf(l, 'K')
	if !hasI && !hasJ && !hasK {
		return geom.Coord{}, false
	}
	c := prev
	if hasI {
		i, _ := iTok.Value.Float64()
		c = c.WithX(prev.X + i)
	}
	if hasJ {
		j, _ := jTok.Value.Float64()
		c = c.WithY(prev.Y + j)
	}
	if hasK {
		k, _ := kTok.Value.Float64()
		c = c.WithZ(prev.Z + k)
	}
	switch plane {
	case geom.PlaneXZ:
		if !hasI || !hasK {
			return geom.Coord{}, false
		}
	case geom.PlaneYZ:
		if !hasJ || !hasK {
			return geom.Coord{}, false
		}
	default:
		if !hasI || !hasJ {
			return geom.Coord{}, false
		}
	}
	return c, true
}
