// Package modal implements §4.4: the modal context, an ordered collection
// of (line, already-emitted?) pairs tracking the machine's currently
// declared modal state.
package modal

import (
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// Entry pairs a representative line with whether it has already been
// written to the output stream.
type Entry struct {
	Line    gcodeline.Line
	Emitted bool
}

// Context is a value, never a singleton: every pipeline owns its own copy.
type Context struct {
	entries []Entry
}

// New returns an empty context with no declared modal state.
func New() Context {
	return Context{}
}

// DefaultPreamble is the modal state every file begins with, before any
// declaration has been seen: {G21, G90, G94, G17, G40, G49, G54, M3}.
func DefaultPreamble() []gcodeline.Line {
	return []gcodeline.Line{
		gcodeline.New("G21"),
		gcodeline.New("G90"),
		gcodeline.New("G94"),
		gcodeline.New("G17"),
		gcodeline.New("G40"),
		gcodeline.New("G49"),
		gcodeline.New("G54"),
		gcodeline.New("M3"),
	}
}

// NewWithDefaultPreamble returns a context seeded with DefaultPreamble,
// every entry marked not-yet-emitted.
func NewWithDefaultPreamble() Context {
	var c Context
	for _, l := range DefaultPreamble() {
		c.entries = append(c.entries, Entry{Line: l, Emitted: false})
	}
	return c
}

// Update applies line to the context: for every modal group (in the fixed
// §4.4 order) and every per-letter slot, if line contains a token from
// that group/letter, the context is scanned back-to-front; the first
// match is replaced by line, any further matches are evicted; if no match
// is found, line is appended. A single line can update several slots at
// once — each slot-matching pass is independent.
func (c Context) Update(line gcodeline.Line, emitted bool) Context {
	toks := line.Body()
	for _, g := range modalgroup.Groups {
		if containsGroupMember(toks, g) {
			c = c.applySlot(line, emitted, func(t token.Token) bool { return g.Contains(t) })
		}
	}
	for _, letter := range modalgroup.ByLetter {
		if containsLetter(toks, letter) {
			c = c.applySlot(line, emitted, func(t token.Token) bool { return t.Kind == token.Code && t.Letter == letter })
		}
	}
	return c
}

func containsGroupMember(toks []token.Token, g modalgroup.Group) bool {
	for _, t := range toks {
		if g.Contains(t) {
			return true
		}
	}
	return false
}

func containsLetter(toks []token.Token, letter byte) bool {
	for _, t := range toks {
		if t.Kind == token.Code && t.Letter == letter {
			return true
		}
	}
	return false
}

// applySlot replaces the last entry matching pred with line, evicting any
// earlier matches, or appends line if no entry matches.
func (c Context) applySlot(line gcodeline.Line, emitted bool, pred func(token.Token) bool) Context {
	matchesSlot := func(e Entry) bool {
		for _, t := range e.Line.Body() {
			if pred(t) {
				return true
			}
		}
		return false
	}

	replaced := false
	out := make([]Entry, 0, len(c.entries)+1)
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		if matchesSlot(e) {
			if !replaced {
				out = append(out, Entry{Line: line, Emitted: emitted})
				replaced = true
			}
			continue // evict every match, first or further
		}
		out = append(out, e)
	}
	// out was built back-to-front; reverse it.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if !replaced {
		out = append(out, Entry{Line: line, Emitted: emitted})
	}
	c.entries = out
	return c
}

// GetModalStateGroup returns the current representative line for group, if
// any.
func (c Context) GetModalStateGroup(g modalgroup.Group) (gcodeline.Line, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		for _, t := range c.entries[i].Line.Body() {
			if g.Contains(t) {
				return c.entries[i].Line, true
			}
		}
	}
	return gcodeline.Line{}, false
}

// GetModalStateLetter returns the current representative line for the
// per-letter slot identified by letter, if any.
func (c Context) GetModalStateLetter(letter byte) (gcodeline.Line, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		for _, t := range c.entries[i].Line.Body() {
			if t.Kind == token.Code && t.Letter == letter {
				return c.entries[i].Line, true
			}
		}
	}
	return gcodeline.Line{}, false
}

// NonEmittedLines returns every entry's line that has not yet been
// written to output, in context order.
func (c Context) NonEmittedLines() []gcodeline.Line {
	var out []gcodeline.Line
	for _, e := range c.entries {
		if !e.Emitted {
			out = append(out, e.Line)
		}
	}
	return out
}

// MarkAllEmitted returns a copy of c with every entry marked emitted.
func (c Context) MarkAllEmitted() Context {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		e.Emitted = true
		out[i] = e
	}
	c.entries = out
	return c
}

// Len reports the number of entries currently held (bounded by the size
// of the modal catalogue, never by input length).
func (c Context) Len() int { return len(c.entries) }
