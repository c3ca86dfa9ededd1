package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/token"
)

// TokeniseToLine lexes and canonicalises each raw line from raw in turn.
func TokeniseToLine(raw RawSource) Source {
	return func() (gcodeline.Line, bool) {
		s, ok := raw()
		if !ok {
			return gcodeline.Line{}, false
		}
		return gcodeline.New(s), true
	}
}

// TokeniseToLineUntil behaves like TokeniseToLine but stops (reports
// ok=false) immediately after emitting the first line for which exit
// returns true — used to harvest a file's preamble without lexing the
// rest of the file.
func TokeniseToLineUntil(raw RawSource, exit func(gcodeline.Line) bool) Source {
	done := false
	return func() (gcodeline.Line, bool) {
		if done {
			return gcodeline.Line{}, false
		}
		s, ok := raw()
		if !ok {
			done = true
			return gcodeline.Line{}, false
		}
		l := gcodeline.New(s)
		if exit(l) {
			done = true
		}
		return l, true
	}
}

// EliminateLineNumbers drops every line-number token from every line.
func EliminateLineNumbers(src Source) Source {
	return func() (gcodeline.Line, bool) {
		l, ok := src()
		if !ok {
			return gcodeline.Line{}, false
		}
		return l.RemoveByCode("N"), true
	}
}

// DedupRepeatedTokens removes, within each line, every token that repeats
// one already seen earlier in the same line (by structural equality),
// keeping the first occurrence's position.
func DedupRepeatedTokens(src Source) Source {
	return func() (gcodeline.Line, bool) {
		l, ok := src()
		if !ok {
			return gcodeline.Line{}, false
		}
		toks := l.Tokens()
		var kept []token.Token
		for _, t := range toks {
			if containsToken(kept, t) {
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) == len(toks) {
			return l, true
		}
		return gcodeline.NewFromTokens(kept), true
	}
}

func containsToken(xs []token.Token, t token.Token) bool {
	for _, x := range xs {
		if x.Equal(t) {
			return true
		}
	}
	return false
}

// DedupLine drops a line that is equal (line-number blind) to its
// immediate predecessor.
func DedupLine(src Source) Source {
	var prev gcodeline.Line
	havePrev := false
	return func() (gcodeline.Line, bool) {
		for {
			l, ok := src()
			if !ok {
				return gcodeline.Line{}, false
			}
			if havePrev && prev.Equal(l) {
				continue
			}
			prev = l
			havePrev = true
			return l, true
		}
	}
}
