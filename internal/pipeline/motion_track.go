package pipeline

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// motionTracker recovers the "effective" motion command of a line for
// stages running downstream of DedupContext, which may have already
// stripped a line's own G-command because it repeated the current modal
// group's representative. A line carrying X, Y or Z but no command of
// its own is still implicitly governed by the last motion command seen;
// each stage owns an independent tracker (§5: no cross-stage sharing).
type motionTracker struct {
	last token.Token
	have bool
}

// Observe returns l's effective motion command: its own, if present,
// else the last one seen, if l still carries a coordinate argument.
func (m *motionTracker) Observe(l gcodeline.Line) (token.Token, bool) {
	for _, t := range l.Body() {
		if t.Kind == token.Command && modalgroup.AllMotion.Contains(t) {
			m.last, m.have = t, true
			return t, true
		}
	}
	if m.have && hasCoordArg(l) {
		return m.last, true
	}
	return token.Token{}, false
}

func hasCoordArg(l gcodeline.Line) bool {
	for _, t := range l.Body() {
		if t.Kind == token.Argument && (t.Letter == 'X' || t.Letter == 'Y' || t.Letter == 'Z') {
			return true
		}
	}
	return false
}

// ensureCommand replaces l's own motion command with cmd, or prepends
// cmd if l had none of its own (an implied line being made explicit
// because its effective command is changing).
func ensureCommand(l gcodeline.Line, cmd token.Token) gcodeline.Line {
	for _, t := range l.Body() {
		if t.Kind == token.Command && modalgroup.AllMotion.Contains(t) {
			return l.Replace(t, cmd)
		}
	}
	return l.Prepend(cmd)
}
