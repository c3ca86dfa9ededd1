package pipeline

import (
	"fmt"
	"math"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/token"
)

// DetectTravelling injects a structured travel-divider comment immediately
// before every transition from cutting (Z ≤ 0) to travelling (Z > 0),
// carrying a per-tool pass sequence number, a running block index, the
// deepest Z reached during the preceding cutting pass and the motion
// lines immediately either side of the crossing.
func DetectTravelling(src Source) Source {
	var (
		queue       []gcodeline.Line
		lastMotion  gcodeline.Line
		cutting     bool
		haveCutting bool
		zMax        float64
		tool        int
		block       int
		seqByTool   = map[int]int{}
		tracker     motionTracker
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

			if t, ok := toolOf(l); ok {
				tool = t
			}

			z, hasZ := zOf(l)
			_, isMotion := tracker.Observe(l)

			if isMotion && hasZ {
				nowCutting := z <= 0
				if haveCutting && cutting && !nowCutting {
					block++
					seqByTool[tool]++
					queue = append(queue, gcodeline.New(dividerComment(
						seqByTool[tool], 0, block, zMax, tool, lastMotion, l)))
					zMax = 0
				}
				if nowCutting {
					if !haveCutting || z < zMax {
						zMax = z
					}
				}
				cutting, haveCutting = nowCutting, true
			}

			if isMotion {
				lastMotion = l
			}

			queue = append(queue, l)
		}
	}
}

func toolOf(l gcodeline.Line) (int, bool) {
	for _, t := range l.Body() {
		if t.Kind == token.Code && t.Letter == 'T' {
			return int(t.Value.IntPart()), true
		}
	}
	return 0, false
}

func dividerComment(seq, subSeq, block int, zMax float64, tool int, entry, exit gcodeline.Line) string {
	return fmt.Sprintf("(||Travelling||%d||%d||%d||%s||%d||>>%s>>%s>>||)",
		seq, subSeq, block, formatClamp(math.Abs(zMax)), tool, entry.Simple(), exit.Simple())
}
