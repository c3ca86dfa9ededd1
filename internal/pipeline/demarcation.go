package pipeline

import (
	"fmt"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// FileDemarcation strips leading blank lines, tracks a leading file
// terminator, lifts and comments out everything after the first
// stop-group command, and appends a postamble once the upstream stream
// ends (§4.5).
func FileDemarcation(clampZ float64) func(Source) Source {
	return func(src Source) Source {
		var (
			started           bool
			leadingTerminator bool
			trailingSeen      bool
			stopped           bool
			haveZ             bool
			lastZ             float64
			queue             []gcodeline.Line
			done              bool
		)

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
					queue = append(queue, postamble(leadingTerminator, trailingSeen, stopped, haveZ, lastZ, clampZ)...)
					done = true
					continue
				}

				if !started {
					if l.IsEmptyOrWhitespace() {
						continue
					}
					started = true
					if l.IsFileTerminator() {
						leadingTerminator = true
						continue
					}
				}

				if z, ok := zOf(l); ok {
					haveZ, lastZ = true, z
				}

				if stopped {
					queue = append(queue, commentOutLine(l))
					continue
				}

				if l.IsFileTerminator() {
					if !leadingTerminator {
						continue // mismatched trailing terminator: discard
					}
					trailingSeen = true
					queue = append(queue, l)
					continue
				}

				if hasStopCommand(l) {
					stopped = true
					if haveZ && lastZ < 0 {
						queue = append(queue, liftLine(clampZ))
					}
					queue = append(queue, l)
					continue
				}

				queue = append(queue, l)
			}
		}
	}
}

func zOf(l gcodeline.Line) (float64, bool) {
	for _, t := range l.Body() {
		if t.Kind == token.Argument && t.Letter == 'Z' {
			f, _ := t.Value.Float64()
			return f, true
		}
	}
	return 0, false
}

func hasStopCommand(l gcodeline.Line) bool {
	for _, t := range l.Body() {
		if t.Kind == token.Command && modalgroup.AllStop.Contains(t) {
			return true
		}
	}
	return false
}

func liftLine(clampZ float64) gcodeline.Line {
	return gcodeline.New(fmt.Sprintf("G0 Z%s", formatClamp(clampZ)))
}

func formatClamp(z float64) string {
	return fmt.Sprintf("%g", z)
}

func commentOutLine(l gcodeline.Line) gcodeline.Line {
	return gcodeline.NewFromTokens([]token.Token{
		{Kind: token.Comment, Source: "(" + l.String() + ")"},
	})
}

// PostambleOpenMarker and PostambleCloseMarker bracket everything a
// postamble writes, including any Z-lift line that precedes the close
// marker; other packages cut at the open marker rather than the close
// one so a preceding lift line is never left stranded in their own body
// (§6).
const (
	PostambleOpenMarker  = "(Postamble completion by GCodeClean)"
	PostambleCloseMarker = "(Postamble completed by GCodeClean)"
)

// postamble implements the end-of-stream rule: if a leading terminator
// was seen and no trailing one followed, emit the markers then "%";
// otherwise, if no leading terminator was seen and no stop command was
// ever encountered, raise Z (if negative), emit the markers, then M30.
func postamble(leadingTerminator, trailingSeen, stopped, haveZ bool, lastZ, clampZ float64) []gcodeline.Line {
	if leadingTerminator {
		if !trailingSeen {
			return []gcodeline.Line{
				gcodeline.New(PostambleOpenMarker),
				gcodeline.New(PostambleCloseMarker),
				gcodeline.New("%"),
			}
		}
		return nil
	}
	if stopped {
		return nil
	}
	out := []gcodeline.Line{gcodeline.New(PostambleOpenMarker)}
	if haveZ && lastZ < 0 {
		out = append(out, liftLine(clampZ))
	}
	out = append(out, gcodeline.New(PostambleCloseMarker), gcodeline.New("M30"))
	return out
}
