package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modal"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// DedupContext removes any body token already represented by the current
// modal context (a command/code whose value is unchanged from the
// context's current representative); skips the line entirely if the
// remainder is empty, otherwise updates the context with the surviving
// tokens and forwards it. Arguments are never touched — only
// modal-tracked commands and per-letter codes are subject to dedup.
func DedupContext(ctx *modal.Context) func(Source) Source {
	return func(src Source) Source {
		return func() (gcodeline.Line, bool) {
			for {
				l, ok := src()
				if !ok {
					return gcodeline.Line{}, false
				}
				keep, redundant := splitRedundant(*ctx, l)
				if !redundant {
					// l is forwarded to the real output stream as-is, so
					// whatever modal slots it occupies are now emitted —
					// InjectPreamble must not also dump them later.
					*ctx = ctx.Update(l, true)
					return l, true
				}
				if len(keep) == 0 {
					continue
				}
				filtered := gcodeline.NewFromTokens(rebuildTokens(l, keep))
				*ctx = ctx.Update(filtered, true)
				return filtered, true
			}
		}
	}
}

// splitRedundant returns the non-redundant body tokens of l against ctx,
// and whether any token was actually dropped.
func splitRedundant(ctx modal.Context, l gcodeline.Line) ([]token.Token, bool) {
	body := l.Body()
	keep := make([]token.Token, 0, len(body))
	dropped := false
	for _, t := range body {
		if isRedundant(ctx, t) {
			dropped = true
			continue
		}
		keep = append(keep, t)
	}
	return keep, dropped
}

func isRedundant(ctx modal.Context, t token.Token) bool {
	switch t.Kind {
	case token.Command:
		for _, g := range modalgroup.Groups {
			if g.Contains(t) {
				if cur, ok := ctx.GetModalStateGroup(g); ok {
					return lineHasEqualToken(cur, t)
				}
				return false
			}
		}
		return false
	case token.Code:
		if cur, ok := ctx.GetModalStateLetter(t.Letter); ok {
			return lineHasEqualToken(cur, t)
		}
		return false
	default:
		return false
	}
}

func lineHasEqualToken(l gcodeline.Line, t token.Token) bool {
	for _, o := range l.Body() {
		if o.Equal(t) {
			return true
		}
	}
	return false
}

// rebuildTokens returns l's full token list (block-delete, line-number,
// comments included) with its body replaced by keep.
func rebuildTokens(l gcodeline.Line, keep []token.Token) []token.Token {
	var out []token.Token
	if l.HasBlockDelete() {
		out = append(out, token.Token{Kind: token.BlockDelete, Source: "/"})
	}
	if ln, ok := lineNumberOf(l); ok {
		out = append(out, ln)
	}
	out = append(out, keep...)
	out = append(out, l.Comments()...)
	return out
}
