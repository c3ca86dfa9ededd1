package pipeline

import (
	"math"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
)

// DedupLinearToArc accumulates a run of points that all lie on a common
// circle and collapses them into a single G2/G3. A run starts once three
// consecutive points fit a circle whose radius exceeds tolerance and both
// straight moves between them stay within tolerance of that circle; it
// extends while each further point still fits a circle with the same
// centre and radius (within tolerance) and its move does too, plane-aware;
// it closes as soon as a point breaks the fit, a non-candidate line
// interrupts the run, or the stream ends. The run's first line is kept and
// the G2/G3 replaces the lines after it.
func DedupLinearToArc(tolerance float64) func(Source) Source {
	return func(src Source) Source {
		var (
			a, b         gcodeline.Line
			haveA, haveB bool
			active       bool
			centre       geom.Coord
			radius       float64
			clockwise    bool
			plane        = geom.PlaneXY
			queue        []gcodeline.Line
			done         bool
			tracker      motionTracker
		)

		flush := func() {
			switch {
			case active:
				queue = append(queue, a, arcLine(a, b, centre, clockwise, plane))
			case haveA && haveB:
				queue = append(queue, a, b)
			case haveA:
				queue = append(queue, a)
			}
			a, b = gcodeline.Line{}, gcodeline.Line{}
			haveA, haveB, active = false, false, false
		}

		// chordFits reports whether the straight move p→q stays within
		// tolerance of an arc of radius r through both points.
		chordFits := func(p, q geom.Coord, r float64) bool {
			half := p.Distance(q) / 2
			if half > r {
				return false
			}
			return r-math.Sqrt(r*r-half*half) <= tolerance
		}

		return func() (gcodeline.Line, bool) {
			for {
				if len(queue) > 0 {
					out := queue[0]
					queue = queue[1:]
					return out, true
				}
				if done {
					return gcodeline.Line{}, false
				}

				l, ok := src()
				if !ok {
					flush()
					done = true
					continue
				}
				updatePlane(&plane, l)

				if _, ok := tracker.Observe(l); !ok || l.ToCoord().Set == 0 {
					flush()
					queue = append(queue, l)
					continue
				}

				if !haveA {
					a, haveA = l, true
					continue
				}
				if !haveB {
					b, haveB = l, true
					continue
				}

				ca, cb, cc := a.ToCoord(), b.ToCoord(), l.ToCoord()
				fitCentre, fitRadius, fitClockwise, fitOK := geom.FindCircle(ca, cb, cc, plane)

				switch {
				case active:
					if fitOK && circleMatches(centre, radius, fitCentre, fitRadius, tolerance) && chordFits(cb, cc, radius) {
						b = l
						continue
					}
					queue = append(queue, a, arcLine(a, b, centre, clockwise, plane))
					a, b, haveB, active = l, gcodeline.Line{}, false, false
				case fitOK && fitRadius > tolerance && chordFits(ca, cb, fitRadius) && chordFits(cb, cc, fitRadius):
					active = true
					centre, radius, clockwise = fitCentre, fitRadius, fitClockwise
					b = l
				default:
					queue = append(queue, a)
					a, b = b, l
				}
			}
		}
	}
}

func circleMatches(c1 geom.Coord, r1 float64, c2 geom.Coord, r2, tolerance float64) bool {
	return math.Abs(r1-r2) <= tolerance && c1.Distance(c2) <= tolerance
}

// arcLine rebuilds end's line as a G2/G3 to the same endpoint, offset
// from start by centre.
func arcLine(start, end gcodeline.Line, centre geom.Coord, clockwise bool, plane geom.Plane) gcodeline.Line {
	cmd := 3
	if clockwise {
		cmd = 2
	}
	out := end.RemoveByCode("IJK")
	if cmdTok, ok := motionCommand(out); ok {
		out = out.Replace(cmdTok, cmdToken('G', cmd))
	} else {
		out = out.Prepend(cmdToken('G', cmd))
	}
	out = out.AppendMany(centreOffsets(plane, start.ToCoord(), centre))
	return out
}
