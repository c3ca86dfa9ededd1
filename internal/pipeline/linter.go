package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

var g53Value = decimal.NewFromInt(53)

// linterSlot names one emission slot in the fixed execution order a
// multi-command line is decomposed into.
type linterSlot struct {
	name  string
	match func(token.Token) bool
}

// linterOrder is the §4.5 execution-order contract. The worked example in
// §8 scenario E lists an inconsistent line count ("six lines", five
// shown) and an S-after-units ordering that contradicts this explicit,
// named list; the named list is treated as authoritative (see DESIGN.md).
var linterOrder = []linterSlot{
	{"feed-rate mode", modalgroup.FeedRateMode.Contains},
	{"F", isCode('F')},
	{"S", isCode('S')},
	{"T", isCode('T')},
	{"tool-change", modalgroup.ToolChange.Contains},
	{"spindle", modalgroup.SpindleTurning.Contains},
	{"coolant", modalgroup.Coolant.Contains},
	{"override-enabling", modalgroup.OverrideEnabler.Contains},
	{"dwell", modalgroup.Dwell.Contains},
	{"plane", modalgroup.PlaneSelection.Contains},
	{"units", modalgroup.LengthUnits.Contains},
	{"cutter-radius-comp", modalgroup.CutterRadiusCmp.Contains},
	{"tool-length-offset", modalgroup.ToolLengthOffs.Contains},
	{"coord-system", modalgroup.CoordSystem.Contains},
	{"path-control", modalgroup.PathControl.Contains},
	{"distance", modalgroup.DistanceMode.Contains},
	{"return-mode", modalgroup.ReturnMode.Contains},
	{"home", modalgroup.Home.Contains},
	{"change-coord-sys-data", modalgroup.ChangeCoordSysData.Contains},
	{"coord-sys-offset", modalgroup.CoordSysOffset.Contains},
	{"motion", isMotion},
	{"stop", modalgroup.AllStop.Contains},
}

func isCode(letter byte) func(token.Token) bool {
	return func(t token.Token) bool { return t.Kind == token.Code && t.Letter == letter }
}

func isMotion(t token.Token) bool {
	return t.Kind == token.Command &&
		(modalgroup.SimpleMotion.Contains(t) || modalgroup.Probe.Contains(t) || modalgroup.CannedMotion.Contains(t))
}

// argOwnerPriority lists the slots (besides motion) that can own
// argument tokens when no motion command shares the line, most specific
// first.
var argOwnerPriority = []string{"dwell", "home", "change-coord-sys-data", "coord-sys-offset", "coord-system", "tool-length-offset"}

// SingleCommandPerLine decomposes a multi-command line into single-
// command lines in the §4.5 execution order. A motion command emitted
// with no arguments is dropped. The source line's line-number token (if
// any) is attached to the first emitted line; comments are attached to
// the last.
func SingleCommandPerLine(src Source) Source {
	var queue []gcodeline.Line
	return func() (gcodeline.Line, bool) {
		for len(queue) == 0 {
			l, ok := src()
			if !ok {
				return gcodeline.Line{}, false
			}
			queue = splitLine(l)
		}
		out := queue[0]
		queue = queue[1:]
		return out, true
	}
}

func splitLine(l gcodeline.Line) []gcodeline.Line {
	if l.IsNotCommandCodeOrArguments() {
		return []gcodeline.Line{l}
	}

	body := l.Body()
	buckets := make(map[string][]token.Token, len(linterOrder))
	var args []token.Token
	var g53 *token.Token

	for _, t := range body {
		if t.Kind == token.Command && t.Letter == 'G' && t.Value.Equal(g53Value) {
			cp := t
			g53 = &cp
			continue
		}
		if t.Kind == token.Argument || t.Kind == token.ParameterSet {
			args = append(args, t)
			continue
		}
		placed := false
		for _, slot := range linterOrder {
			if slot.match(t) {
				buckets[slot.name] = append(buckets[slot.name], t)
				placed = true
				break
			}
		}
		if !placed {
			// unrecognised command/code: keep it in its own slot so it is
			// never silently lost.
			buckets["__other__"] = append(buckets["__other__"], t)
		}
	}

	owner := argsOwner(buckets)
	if owner != "" {
		buckets[owner] = append(buckets[owner], args...)
		args = nil
	}

	var out []gcodeline.Line
	for _, slot := range linterOrder {
		toks := buckets[slot.name]
		if len(toks) == 0 {
			continue
		}
		if slot.name == "motion" {
			hasArgs := false
			for _, t := range toks {
				if t.Kind == token.Argument || t.Kind == token.ParameterSet {
					hasArgs = true
					break
				}
			}
			if !hasArgs {
				continue // motion command with no arguments is dropped
			}
			if g53 != nil {
				toks = append([]token.Token{*g53}, toks...)
			}
		}
		out = append(out, gcodeline.NewFromTokens(toks))
	}
	if other := buckets["__other__"]; len(other) > 0 {
		out = append(out, gcodeline.NewFromTokens(other))
	}
	// a line whose only content was arguments with no claiming command
	// (rare, e.g. bare "X10") is preserved as its own line.
	if len(args) > 0 {
		out = append(out, gcodeline.NewFromTokens(args))
	}

	if len(out) == 0 {
		return nil
	}

	if ln, ok := lineNumberOf(l); ok {
		out[0] = out[0].Prepend(ln)
	}
	if l.HasBlockDelete() {
		bd := token.Token{Kind: token.BlockDelete, Source: "/"}
		out[0] = out[0].Prepend(bd)
	}
	for _, c := range l.Comments() {
		out[len(out)-1] = out[len(out)-1].Append(c)
	}
	return out
}

func argsOwner(buckets map[string][]token.Token) string {
	if len(buckets["motion"]) > 0 {
		return "motion"
	}
	for _, name := range argOwnerPriority {
		if len(buckets[name]) > 0 {
			return name
		}
	}
	return ""
}

func lineNumberOf(l gcodeline.Line) (token.Token, bool) {
	for _, t := range l.Tokens() {
		if t.Kind == token.LineNumber {
			return t, true
		}
	}
	return token.Token{}, false
}
