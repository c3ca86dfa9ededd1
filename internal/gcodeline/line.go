// Package gcodeline implements §4.2: the structural Line record with
// canonical token order and derived status flags.
package gcodeline

import (
	"strings"

	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/lexer"
	"github.com/cncmill/gcodeclean/internal/modalgroup"
	"github.com/cncmill/gcodeclean/internal/token"
)

// Status is the set of derived flags recomputed after every mutation.
type Status struct {
	IsFileTerminator            bool
	IsEmptyOrWhitespace         bool
	IsValid                     bool
	HasBlockDelete              bool
	HasLineNumber               bool
	IsNotCommandCodeOrArguments bool
	IsArgumentsOnly             bool
	HasMovementCommand          bool
}

// Line is an ordered sequence of tokens with the canonical-order invariant:
// block-delete? line-number? (non-comment, non-line-number)* comment*.
type Line struct {
	blockDelete bool
	lineNumber  *token.Token
	body        []token.Token // commands/codes/arguments/parameters/terminator, insertion order
	comments    []token.Token
	status      Status
}

// New lexes and canonicalises a raw source line.
func New(source string) Line {
	raw := lexer.Tokenize(source)
	toks := make([]token.Token, 0, len(raw))
	for _, r := range raw {
		toks = append(toks, token.Parse(r))
	}
	return NewFromTokens(toks)
}

// NewFromTokens builds a Line from an explicit token sequence, copying it
// and re-establishing canonical order and status.
func NewFromTokens(tokens []token.Token) Line {
	var l Line
	l.body = make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		l.appendCanonical(t)
	}
	l.recompute()
	return l
}

// appendCanonical routes t into the right bucket without recomputing status.
func (l *Line) appendCanonical(t token.Token) {
	switch t.Kind {
	case token.BlockDelete:
		l.blockDelete = true
	case token.LineNumber:
		cp := t
		l.lineNumber = &cp
	case token.Comment:
		l.comments = append(l.comments, t)
	default:
		l.body = append(l.body, t)
	}
}

func (l *Line) recompute() {
	s := Status{}
	s.HasBlockDelete = l.blockDelete
	s.HasLineNumber = l.lineNumber != nil
	s.IsEmptyOrWhitespace = !l.blockDelete && l.lineNumber == nil && len(l.body) == 0 && len(l.comments) == 0

	hasTerminator := false
	for _, t := range l.body {
		if t.Kind == token.FileTerminator {
			hasTerminator = true
		}
	}
	s.IsFileTerminator = hasTerminator

	valid := true
	for _, t := range l.allTokens() {
		if !t.IsValid() {
			valid = false
			break
		}
	}
	if hasTerminator && (l.blockDelete || l.lineNumber != nil || len(l.comments) != 0 || len(l.body) != 1) {
		valid = false
	}
	s.IsValid = valid

	notCCA := true
	for _, t := range l.body {
		switch t.Kind {
		case token.Command, token.Code, token.Argument, token.ParameterSet:
			notCCA = false
		}
	}
	s.IsNotCommandCodeOrArguments = notCCA

	argsOnly := len(l.body) > 0
	for _, t := range l.body {
		if t.Kind != token.Argument {
			argsOnly = false
			break
		}
	}
	s.IsArgumentsOnly = argsOnly

	hasMove := false
	for _, t := range l.body {
		if t.Kind == token.Command && modalgroup.AllMotion.Contains(t) {
			hasMove = true
			break
		}
	}
	s.HasMovementCommand = hasMove

	l.status = s
}

func (l Line) allTokens() []token.Token {
	out := make([]token.Token, 0, len(l.body)+len(l.comments)+2)
	if l.blockDelete {
		out = append(out, token.Token{Kind: token.BlockDelete, Source: "/"})
	}
	if l.lineNumber != nil {
		out = append(out, *l.lineNumber)
	}
	out = append(out, l.body...)
	out = append(out, l.comments...)
	return out
}

// Tokens returns the line's tokens in canonical order.
func (l Line) Tokens() []token.Token { return l.allTokens() }

// Body returns the non-block-delete, non-line-number, non-comment tokens
// in insertion order.
func (l Line) Body() []token.Token { return append([]token.Token(nil), l.body...) }

// Comments returns the comment tokens in insertion order.
func (l Line) Comments() []token.Token { return append([]token.Token(nil), l.comments...) }

// Status returns the line's derived status flags.
func (l Line) Status() Status { return l.status }

func (l Line) IsFileTerminator() bool            { return l.status.IsFileTerminator }
func (l Line) IsEmptyOrWhitespace() bool         { return l.status.IsEmptyOrWhitespace }
func (l Line) IsValid() bool                     { return l.status.IsValid }
func (l Line) HasBlockDelete() bool              { return l.status.HasBlockDelete }
func (l Line) HasLineNumber() bool               { return l.status.HasLineNumber }
func (l Line) IsNotCommandCodeOrArguments() bool { return l.status.IsNotCommandCodeOrArguments }
func (l Line) IsArgumentsOnly() bool             { return l.status.IsArgumentsOnly }
func (l Line) HasMovementCommand() bool          { return l.status.HasMovementCommand }

// Prepend inserts t at the front of the body (or the appropriate slot for
// block-delete/line-number/comment), preserving canonical order.
func (l Line) Prepend(t token.Token) Line {
	switch t.Kind {
	case token.BlockDelete:
		l.blockDelete = true
	case token.LineNumber:
		cp := t
		l.lineNumber = &cp
	case token.Comment:
		l.comments = append([]token.Token{t}, l.comments...)
	default:
		l.body = append([]token.Token{t}, l.body...)
	}
	l.recompute()
	return l
}

// Append adds t to the end of the appropriate bucket, preserving canonical
// order.
func (l Line) Append(t token.Token) Line {
	l.appendCanonical(t)
	l.recompute()
	return l
}

// AppendMany appends every token in ts in order.
func (l Line) AppendMany(ts []token.Token) Line {
	for _, t := range ts {
		l.appendCanonical(t)
	}
	l.recompute()
	return l
}

// RemoveByCode removes every body token whose classifying letter is in
// letters.
func (l Line) RemoveByCode(letters string) Line {
	set := make(map[byte]bool, len(letters))
	for i := 0; i < len(letters); i++ {
		set[letters[i]] = true
	}
	kept := l.body[:0:0]
	for _, t := range l.body {
		if !set[t.Letter] {
			kept = append(kept, t)
		}
	}
	l.body = kept
	l.recompute()
	return l
}

// RemoveByToken removes every token structurally equal to one in toRemove.
func (l Line) RemoveByToken(toRemove []token.Token) Line {
	matches := func(t token.Token) bool {
		for _, r := range toRemove {
			if t.Equal(r) {
				return true
			}
		}
		return false
	}
	kept := l.body[:0:0]
	for _, t := range l.body {
		if !matches(t) {
			kept = append(kept, t)
		}
	}
	l.body = kept
	keptComments := l.comments[:0:0]
	for _, t := range l.comments {
		if !matches(t) {
			keptComments = append(keptComments, t)
		}
	}
	l.comments = keptComments
	l.recompute()
	return l
}

// Replace substitutes every body/comment token structurally equal to
// search with replacement.
func (l Line) Replace(search, replacement token.Token) Line {
	for i, t := range l.body {
		if t.Equal(search) {
			l.body[i] = replacement
		}
	}
	for i, t := range l.comments {
		if t.Equal(search) {
			l.comments[i] = replacement
		}
	}
	l.recompute()
	return l
}

// IsCompatible reports whether l and o are the "same kind of motion": same
// number of non-line-number tokens, pairwise identical classifying
// letters, and command (G/M) tokens strictly equal.
func (l Line) IsCompatible(o Line) bool {
	a, b := l.nonLineNumberTokens(), o.nonLineNumberTokens()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Letter != b[i].Letter || a[i].Kind != b[i].Kind {
			return false
		}
		if a[i].Kind == token.Command && !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (l Line) nonLineNumberTokens() []token.Token {
	out := make([]token.Token, 0, len(l.body)+len(l.comments))
	out = append(out, l.body...)
	out = append(out, l.comments...)
	return out
}

// ToCoord projects the line's X, Y, Z arguments into a Coord.
func (l Line) ToCoord() geom.Coord {
	var c geom.Coord
	for _, t := range l.body {
		if t.Kind != token.Argument {
			continue
		}
		v := geom.FromDecimal(t.Value)
		switch t.Letter {
		case 'X':
			c = c.WithX(v)
		case 'Y':
			c = c.WithY(v)
		case 'Z':
			c = c.WithZ(v)
		}
	}
	return c
}

// Equal compares two lines ignoring line-number tokens.
func (l Line) Equal(o Line) bool {
	if l.blockDelete != o.blockDelete {
		return false
	}
	a, b := l.nonLineNumberTokens(), o.nonLineNumberTokens()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders the line in canonical order, single-space separated.
func (l Line) String() string {
	return l.render(false)
}

// Simple renders the line omitting its line-number and comments.
func (l Line) Simple() string {
	return l.render(true)
}

func (l Line) render(simple bool) string {
	var parts []string
	if l.blockDelete {
		parts = append(parts, "/")
	}
	if !simple && l.lineNumber != nil {
		parts = append(parts, l.lineNumber.Source)
	}
	for _, t := range l.body {
		parts = append(parts, t.Source)
	}
	if !simple {
		for _, t := range l.comments {
			parts = append(parts, t.Source)
		}
	}
	return strings.Join(parts, " ")
}
