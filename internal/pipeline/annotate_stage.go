package pipeline

import (
	"strings"

	"github.com/cncmill/gcodeclean/internal/annotate"
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/token"
)

// Annotate folds every token's dictionary-declared context update into a
// running Context, and appends a "(...)" comment describing the line's
// command/code tokens whenever that set differs from the previous line's.
func Annotate(dict annotate.Dictionary) func(Source) Source {
	return func(src Source) Source {
		ctx := annotate.Context{}
		lastCodes := ""

		return func() (gcodeline.Line, bool) {
			l, ok := src()
			if !ok {
				return gcodeline.Line{}, false
			}
			for _, t := range l.Tokens() {
				ctx = dict.Apply(ctx, t)
			}

			codes := effectiveCodes(l)
			if codes == "" || codes == lastCodes {
				lastCodes = codes
				return l, true
			}
			lastCodes = codes

			var parts []string
			for _, t := range l.Body() {
				if t.Kind != token.Command && t.Kind != token.Code {
					continue
				}
				if desc, ok := dict.Describe(ctx, t); ok {
					parts = append(parts, desc)
				}
			}
			if len(parts) == 0 {
				return l, true
			}
			return l.Append(token.Token{Kind: token.Comment, Source: "(" + strings.Join(parts, ", ") + ")"}), true
		}
	}
}

func effectiveCodes(l gcodeline.Line) string {
	var parts []string
	for _, t := range l.Body() {
		if t.Kind == token.Command || t.Kind == token.Code {
			parts = append(parts, t.Source)
		}
	}
	return strings.Join(parts, ",")
}
