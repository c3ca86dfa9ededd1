package pipeline

import (
	"fmt"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// ConvertArcRadiusToCenter rewrites an arc-by-radius motion line (G2/G3
// with R) into arc-by-centre (I, J, K offsets from the previous point),
// choosing whichever of the two candidate centres matches the line's
// declared clockwise/counter-clockwise sense. On geometric degeneracy
// (no intersection) the line is forwarded unreduced, per §7.
func ConvertArcRadiusToCenter(src Source) Source {
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
		rTok, hasR := argOf(l, 'R')
		if !hasCmd || !isArcCommand(cmdTok) || !hasR || !havePrev {
			return l, true
		}

		clockwise := cmdTok.Value.IntPart() == 2
		r, _ := rTok.Value.Float64()
		candidates := geom.FindIntersections(prev, cur, r, plane)
		if len(candidates) == 0 {
			return l, true // degenerate: no intersection, keep R form
		}

		centre := candidates[0]
		if len(candidates) == 2 {
			if candidateClockwise(prev, cur, candidates[0]) != clockwise {
				centre = candidates[1]
			}
		}

		out := ensureCommand(l.RemoveByToken([]token.Token{rTok}), cmdTok)
		out = out.AppendMany(centreOffsets(plane, prev, centre))
		return out, true
	}
}

func candidateClockwise(prev, target, centre geom.Coord) bool {
	cross := (target.X-prev.X)*(centre.Y-prev.Y) - (target.Y-prev.Y)*(centre.X-prev.X)
	return cross < 0
}

func isArcCommand(t token.Token) bool {
	return modalgroup.SimpleMotion.Contains(t) && (t.Value.IntPart() == 2 || t.Value.IntPart() == 3)
}

// targetCoord resolves the line's endpoint, inheriting any axis it
// doesn't name from prev (absolute-mode carry-forward).
func targetCoord(l gcodeline.Line, prev geom.Coord, havePrev bool) geom.Coord {
	c := l.ToCoord()
	if !havePrev {
		return c
	}
	if !c.HasX() {
		c = c.WithX(prev.X)
	}
	if !c.HasY() {
		c = c.WithY(prev.Y)
	}
	if !c.HasZ() {
		c = c.WithZ(prev.Z)
	}
	return c
}

func centreOffsets(plane geom.Plane, prev, centre geom.Coord) []token.Token {
	i := centre.X - prev.X
	j := centre.Y - prev.Y
	k := centre.Z - prev.Z
	switch plane {
	case geom.PlaneXZ:
		return []token.Token{
			token.Parse(fmt.Sprintf("I%s", formatClamp(i))),
			token.Parse(fmt.Sprintf("K%s", formatClamp(k))),
		}
	case geom.PlaneYZ:
		return []token.Token{
			token.Parse(fmt.Sprintf("J%s", formatClamp(j))),
			token.Parse(fmt.Sprintf("K%s", formatClamp(k))),
		}
	default:
		return []token.Token{
			token.Parse(fmt.Sprintf("I%s", formatClamp(i))),
			token.Parse(fmt.Sprintf("J%s", formatClamp(j))),
		}
	}
}
