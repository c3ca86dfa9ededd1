package pipeline

import (
	"math"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
)

// DedupLinear drops the middle point of a three-point run A, B, C when B
// lies on the chord A→C within tolerance: A and C must have compatible
// line shape to B, all three must carry the same set of coordinate axes,
// B must fall inside the axis-wise bounding box of A and C, and B's
// altitude off chord AC (via Heron's formula) must not exceed tolerance.
func DedupLinear(tolerance float64) func(Source) Source {
	return func(src Source) Source {
		var (
			pending []gcodeline.Line
			queue   []gcodeline.Line
			done    bool
			tracker motionTracker
		)

		return func() (gcodeline.Line, bool) {
			for {
				if len(queue) > 0 {
					out := queue[0]
					queue = queue[1:]
					return out, true
				}
				if done {
					if len(pending) > 0 {
						queue = append(queue, pending...)
						pending = nil
						continue
					}
					return gcodeline.Line{}, false
				}

				l, ok := src()
				if !ok {
					done = true
					continue
				}

				if _, ok := tracker.Observe(l); !ok || l.ToCoord().Set == 0 {
					queue = append(queue, pending...)
					pending = nil
					queue = append(queue, l)
					continue
				}

				pending = append(pending, l)
				if len(pending) < 3 {
					continue
				}

				a, b, c := pending[0], pending[1], pending[2]
				if collinear(a, b, c, tolerance) {
					pending = []gcodeline.Line{a, c}
					continue
				}
				queue = append(queue, a)
				pending = pending[1:]
			}
		}
	}
}

func collinear(a, b, c gcodeline.Line, tolerance float64) bool {
	if !a.IsCompatible(b) || !b.IsCompatible(c) {
		return false
	}
	ca, cb, cc := a.ToCoord(), b.ToCoord(), c.ToCoord()
	if ca.Set != cb.Set || cb.Set != cc.Set {
		return false
	}
	if !withinBoundingBox(ca, cb, cc) {
		return false
	}

	ab, bc, ac := ca.Distance(cb), cb.Distance(cc), ca.Distance(cc)
	if ac < epsilon {
		return ab < tolerance
	}
	s := (ab + bc + ac) / 2
	areaSq := s * (s - ab) * (s - bc) * (s - ac)
	if areaSq < 0 {
		areaSq = 0
	}
	altitude := 2 * math.Sqrt(areaSq) / ac
	return altitude <= tolerance
}

const epsilon = 1e-9

func withinBoundingBox(a, b, c geom.Coord) bool {
	for _, axis := range []geom.Axis{geom.AxisX, geom.AxisY, geom.AxisZ} {
		if !a.Set.Has(axis) {
			continue
		}
		av, bv, cv := axisValue(a, axis), axisValue(b, axis), axisValue(c, axis)
		lo, hi := av, cv
		if lo > hi {
			lo, hi = hi, lo
		}
		if bv < lo-epsilon || bv > hi+epsilon {
			return false
		}
	}
	return true
}

func axisValue(c geom.Coord, a geom.Axis) float64 {
	switch a {
	case geom.AxisX:
		return c.X
	case geom.AxisY:
		return c.Y
	default:
		return c.Z
	}
}
