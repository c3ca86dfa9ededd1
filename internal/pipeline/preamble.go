package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modal"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// PreambleOpenMarker and PreambleCloseMarker bracket the preamble
// declarations InjectPreamble dumps; their exact text is part of the
// split/merge contract (§6), so other packages reuse these constants
// rather than re-deriving the strings.
const (
	PreambleOpenMarker  = "(Preamble completion by GCodeClean)"
	PreambleCloseMarker = "(Preamble completed by GCodeClean)"
)

// InjectPreamble dumps any not-yet-emitted default-preamble declarations,
// bracketed by the literal marker comments, and clamps the vertical axis
// before the first motion-group command it observes; it then marks the
// context fully emitted and passes everything through unchanged. If no
// motion command is ever seen, no preamble is written.
func InjectPreamble(ctx *modal.Context, clampZ float64) func(Source) Source {
	return func(src Source) Source {
		var queue []gcodeline.Line
		triggered := false

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
				if triggered || !hasMotionCommand(l) {
					return l, true
				}

				triggered = true
				pending := ctx.NonEmittedLines()
				*ctx = ctx.MarkAllEmitted()

				queue = append(queue, gcodeline.New(PreambleOpenMarker))
				queue = append(queue, pending...)
				queue = append(queue, liftLine(clampZ))
				queue = append(queue, gcodeline.New(PreambleCloseMarker))
				queue = append(queue, l)
			}
		}
	}
}

func hasMotionCommand(l gcodeline.Line) bool {
	for _, t := range l.Body() {
		if t.Kind == token.Command && modalgroup.AllMotion.Contains(t) {
			return true
		}
	}
	return false
}
