package pipeline

import (
	"fmt"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// ZClamp tracks X, Y, Z and the active plane; for motion lines with a Z
// argument it clamps positive Z, promotes/demotes between rapid (G0) and
// linear (G1) per §4.5, and inserts an auxiliary G1 re-entry line when an
// arc in a non-XY plane rises above the table.
func ZClamp(clampZ float64) func(Source) Source {
	return func(src Source) Source {
		var (
			lastX, lastY, lastZ float64
			haveX, haveY, haveZ bool
			plane               = geom.PlaneXY
			queue               []gcodeline.Line
			tracker             motionTracker
		)

		return func() (gcodeline.Line, bool) {
			for {
				if len(queue) > 0 {
					out := queue[0]
					queue = queue[1:]
					return out, true
				}
				l, ok := src()
				if !ok {
					return gcodeline.Line{}, false
				}

				updatePlane(&plane, l)

				cmdTok, hasCmd := tracker.Observe(l)
				zTok, hasZ := argOf(l, 'Z')
				if !hasCmd || !hasZ {
					updateXY(l, &lastX, &haveX, &lastY, &haveY)
					if hasZ {
						z, _ := zTok.Value.Float64()
						lastZ, haveZ = z, true
					}
					return l, true
				}

				z, _ := zTok.Value.Float64()
				isArc := cmdTok.Value.IntPart() == 2 || cmdTok.Value.IntPart() == 3
				isRapid := cmdTok.Value.IntPart() == 0

				xTok, hasX := argOf(l, 'X')
				yTok, hasY := argOf(l, 'Y')
				xyChanged := false
				if hasX {
					xv, _ := xTok.Value.Float64()
					if !haveX || xv != lastX {
						xyChanged = true
					}
				}
				if hasY {
					yv, _ := yTok.Value.Float64()
					if !haveY || yv != lastY {
						xyChanged = true
					}
				}

				out := l
				finalZ := z
				switch {
				case z > 0:
					finalZ = clampZ
					out = out.Replace(zTok, zToken(clampZ))
					if modalgroup.SimpleMotion.Contains(cmdTok) && (haveZ && lastZ > 0 || !xyChanged) {
						out = ensureCommand(out, cmdToken('G', 0))
						if plane != geom.PlaneXY && isArc {
							queue = append(queue, reentryLine(lastX, lastY, lastZ))
						}
					}
				case z < 0 && isRapid:
					out = ensureCommand(out, cmdToken('G', 1))
				}

				updateXY(out, &lastX, &haveX, &lastY, &haveY)
				lastZ, haveZ = finalZ, true

				queue = append(queue, out)
			}
		}
	}
}

func updatePlane(plane *geom.Plane, l gcodeline.Line) {
	for _, t := range l.Body() {
		if t.Kind != token.Command || !modalgroup.PlaneSelection.Contains(t) {
			continue
		}
		switch t.Value.IntPart() {
		case 17:
			*plane = geom.PlaneXY
		case 18:
			*plane = geom.PlaneXZ
		case 19:
			*plane = geom.PlaneYZ
		}
	}
}

func motionCommand(l gcodeline.Line) (token.Token, bool) {
	for _, t := range l.Body() {
		if t.Kind == token.Command && modalgroup.SimpleMotion.Contains(t) {
			return t, true
		}
	}
	return token.Token{}, false
}

func argOf(l gcodeline.Line, letter byte) (token.Token, bool) {
	for _, t := range l.Body() {
		if t.Kind == token.Argument && t.Letter == letter {
			return t, true
		}
	}
	return token.Token{}, false
}

func updateXY(l gcodeline.Line, lastX *float64, haveX *bool, lastY *float64, haveY *bool) {
	if t, ok := argOf(l, 'X'); ok {
		v, _ := t.Value.Float64()
		*lastX, *haveX = v, true
	}
	if t, ok := argOf(l, 'Y'); ok {
		v, _ := t.Value.Float64()
		*lastY, *haveY = v, true
	}
}

func zToken(v float64) token.Token { return token.Parse(fmt.Sprintf("Z%s", formatClamp(v))) }

func cmdToken(letter byte, v int) token.Token { return token.Parse(fmt.Sprintf("%c%d", letter, v)) }

func reentryLine(x, y, z float64) gcodeline.Line {
	return gcodeline.New(fmt.Sprintf("G1 X%s Y%s Z%s", formatClamp(x), formatClamp(y), formatClamp(z)))
}
