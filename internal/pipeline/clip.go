package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/token"
)

// Clip rounds every Argument/Code token's value to a per-letter
// precision: arc centre offsets I, J, K round to a fixed,
// unit-dependent machinist precision; every other numeric token rounds
// to the decimal-place count of the constrained general tolerance.
// Re-serialisation uses a fixed-scale format so repeated clipping is
// idempotent.
func Clip(tolerance float64, units geom.Units) func(Source) Source {
	generalPlaces := int32(geom.DecimalPlaces(decimal.NewFromFloat(geom.ConstrainTolerance(tolerance, units))))
	ijkPlaces := int32(4)
	if units == geom.Inches {
		ijkPlaces = 5
	}

	return func(src Source) Source {
		return func() (gcodeline.Line, bool) {
			l, ok := src()
			if !ok {
				return gcodeline.Line{}, false
			}
			return clipLine(l, generalPlaces, ijkPlaces), true
		}
	}
}

func clipLine(l gcodeline.Line, generalPlaces, ijkPlaces int32) gcodeline.Line {
	tokens := l.Tokens()
	out := make([]token.Token, len(tokens))
	changed := false
	for i, t := range tokens {
		if t.Kind != token.Argument && t.Kind != token.Code {
			out[i] = t
			continue
		}
		places := generalPlaces
		if t.Kind == token.Argument && (t.Letter == 'I' || t.Letter == 'J' || t.Letter == 'K') {
			places = ijkPlaces
		}
		rounded := t.Value.Round(places)
		if rounded.Equal(t.Value) && int32(geom.DecimalPlaces(t.Value)) == places {
			out[i] = t
			continue
		}
		out[i] = token.Token{
			Kind: t.Kind, Letter: t.Letter, HasValue: true, Value: rounded,
			Source: fmt.Sprintf("%c%s", t.Letter, rounded.StringFixed(places)),
		}
		changed = true
	}
	if !changed {
		return l
	}
	return gcodeline.NewFromTokens(out)
}
