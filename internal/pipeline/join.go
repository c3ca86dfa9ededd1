package pipeline

import (
	"strings"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
)

// JoinLines renders each line by joining its tokens with sep (the empty
// string under "hard" minimisation, otherwise a space), collapsing runs
// of resulting blank lines to a single one.
func JoinLines(sep string) func(Source) RawSource {
	return func(src Source) RawSource {
		lastBlank := false

		return func() (string, bool) {
			for {
				l, ok := src()
				if !ok {
					return "", false
				}
				rendered := joinTokens(l, sep)
				blank := rendered == ""
				if blank && lastBlank {
					continue
				}
				lastBlank = blank
				return rendered, true
			}
		}
	}
}

func joinTokens(l gcodeline.Line, sep string) string {
	toks := l.Tokens()
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, t.Source)
	}
	return strings.Join(parts, sep)
}
