package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/token"
)

// DedupSelectTokens omits any token whose letter is in sticky and whose
// value is unchanged from the last time that letter was emitted. I, J
// and K are never treated as sticky regardless of what sticky contains.
// A line reduced to nothing is dropped.
func DedupSelectTokens(sticky string) func(Source) Source {
	stickySet := map[byte]bool{}
	for i := 0; i < len(sticky); i++ {
		c := sticky[i]
		if c == 'I' || c == 'J' || c == 'K' {
			continue
		}
		stickySet[c] = true
	}

	return func(src Source) Source {
		last := map[byte]string{}

		return func() (gcodeline.Line, bool) {
			for {
				l, ok := src()
				if !ok {
					return gcodeline.Line{}, false
				}
				keep, dropped := selectTokens(l, stickySet, last)
				if !dropped {
					return l, true
				}
				if len(keep) == 0 {
					continue
				}
				return gcodeline.NewFromTokens(rebuildTokens(l, keep)), true
			}
		}
	}
}

func selectTokens(l gcodeline.Line, sticky map[byte]bool, last map[byte]string) ([]token.Token, bool) {
	body := l.Body()
	keep := make([]token.Token, 0, len(body))
	dropped := false
	for _, t := range body {
		if !sticky[t.Letter] {
			keep = append(keep, t)
			continue
		}
		if prev, ok := last[t.Letter]; ok && prev == t.Source {
			dropped = true
			continue
		}
		last[t.Letter] = t.Source
		keep = append(keep, t)
	}
	return keep, dropped
}

