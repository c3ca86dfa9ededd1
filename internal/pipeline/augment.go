package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// Augment carries the most recently seen motion command and the most
// recently seen X, Y, Z argument values forward. Any line carrying an X,
// Y or Z argument but no motion command of its own has the remembered
// motion command prepended; X, Y, Z are always re-emitted in that order,
// with any trailing I, J, K moved to the line's end.
func Augment(src Source) Source {
	var lastMotion token.Token
	haveMotion := false
	var lastX, lastY, lastZ token.Token
	haveX, haveY, haveZ := false, false, false

	return func() (gcodeline.Line, bool) {
		l, ok := src()
		if !ok {
			return gcodeline.Line{}, false
		}

		body := l.Body()
		var motion token.Token
		sawMotion := false
		var x, y, z token.Token
		sawX, sawY, sawZ := false, false, false
		for _, t := range body {
			if t.Kind == token.Command && modalgroup.AllMotion.Contains(t) {
				motion = t
				sawMotion = true
			}
			switch {
			case t.Kind == token.Argument && t.Letter == 'X':
				x, sawX = t, true
			case t.Kind == token.Argument && t.Letter == 'Y':
				y, sawY = t, true
			case t.Kind == token.Argument && t.Letter == 'Z':
				z, sawZ = t, true
			}
		}
		if sawMotion {
			lastMotion, haveMotion = motion, true
		}
		if sawX {
			lastX, haveX = x, true
		}
		if sawY {
			lastY, haveY = y, true
		}
		if sawZ {
			lastZ, haveZ = z, true
		}

		if !sawX && !sawY && !sawZ {
			return l, true
		}

		if !sawMotion && haveMotion {
			l = l.Prepend(lastMotion)
		}
		if !sawX && haveX {
			l = l.Append(lastX)
		}
		if !sawY && haveY {
			l = l.Append(lastY)
		}
		if !sawZ && haveZ {
			l = l.Append(lastZ)
		}

		return reorderCoords(l), true
	}
}

// reorderCoords rebuilds the body so that X, Y, Z arguments (if present)
// appear in that order, with I, J, K arguments moved to the end of the
// body, everything else left in its original relative order.
func reorderCoords(l gcodeline.Line) gcodeline.Line {
	body := l.Body()
	var x, y, z token.Token
	haveX, haveY, haveZ := false, false, false
	var ijk []token.Token
	var rest []token.Token
	for _, t := range body {
		switch {
		case t.Kind == token.Argument && t.Letter == 'X':
			x, haveX = t, true
		case t.Kind == token.Argument && t.Letter == 'Y':
			y, haveY = t, true
		case t.Kind == token.Argument && t.Letter == 'Z':
			z, haveZ = t, true
		case t.Kind == token.Argument && (t.Letter == 'I' || t.Letter == 'J' || t.Letter == 'K'):
			ijk = append(ijk, t)
		default:
			rest = append(rest, t)
		}
	}

	// rebuild from scratch to guarantee the exact order: rest, X, Y, Z, IJK.
	out := clearBody(l)
	out = out.AppendMany(rest)
	if haveX {
		out = out.Append(x)
	}
	if haveY {
		out = out.Append(y)
	}
	if haveZ {
		out = out.Append(z)
	}
	out = out.AppendMany(ijk)
	return out
}

// clearBody returns l with its non-comment, non-line-number body emptied
// but block-delete/line-number/comments preserved.
func clearBody(l gcodeline.Line) gcodeline.Line {
	return l.RemoveByCode(allBodyLetters(l))
}

func allBodyLetters(l gcodeline.Line) string {
	seen := map[byte]bool{}
	var letters []byte
	for _, t := range l.Body() {
		if !seen[t.Letter] {
			seen[t.Letter] = true
			letters = append(letters, t.Letter)
		}
	}
	return string(letters)
}
