// Package token implements the classification step of the lexer: turning
// one raw token source string (as produced by internal/lexer) into a typed,
// immutable Token.
package token

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates the token variants of §3.
type Kind int

const (
	Invalid Kind = iota
	Command
	Code
	Argument
	LineNumber
	BlockDelete
	FileTerminator
	Comment
	ParameterSet
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "Command"
	case Code:
		return "Code"
	case Argument:
		return "Argument"
	case LineNumber:
		return "LineNumber"
	case BlockDelete:
		return "BlockDelete"
	case FileTerminator:
		return "FileTerminator"
	case Comment:
		return "Comment"
	case ParameterSet:
		return "ParameterSet"
	default:
		return "Invalid"
	}
}

// codeLetters are the narrow-sense §3 codes: feed, spindle speed, tool.
var codeLetters = map[byte]bool{'F': true, 'S': true, 'T': true}

// argumentLetters are every recognised argument letter.
var argumentLetters = map[byte]bool{
	'A': true, 'B': true, 'C': true, 'D': true, 'H': true, 'I': true,
	'J': true, 'K': true, 'L': true, 'P': true, 'R': true,
	'X': true, 'Y': true, 'Z': true,
}

// Token is the atomic, immutable unit inside a Line.
type Token struct {
	Kind Kind

	// Letter is the classifying letter/code: 'G'/'M' for Command, 'F'/'S'/'T'
	// for Code, the argument letter for Argument, 'N' for LineNumber, '#' for
	// ParameterSet. Zero for BlockDelete, FileTerminator, Comment; an Invalid
	// token keeps the leading letter of its word, if it had one.
	Letter byte

	// Source is the canonical (upper-cased for non-comment tokens) textual
	// form of the token, sufficient to reconstruct it verbatim.
	Source string

	// HasValue reports whether Value carries a meaningful numeric reading.
	HasValue bool
	Value    decimal.Decimal

	// Param is the parameter index for a ParameterSet token (#Param=Value).
	Param int
}

// Equal implements the dedup/line-equality notion of "same token": same
// kind, same classifying letter, same printed source.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Letter == o.Letter && t.Source == o.Source
}

func (t Token) String() string { return t.Source }

// IsValid reports whether the token was successfully classified.
func (t Token) IsValid() bool { return t.Kind != Invalid }

// Parse classifies one already-lexed raw token string (as emitted by
// internal/lexer.Tokenize) into a Token. raw is assumed non-empty; the
// lexer has already rejected malformed words, so Parse is defensive rather
// than the primary validity gate — any residual malformed text is
// classified as Invalid rather than causing an error.
func Parse(raw string) Token {
	switch {
	case raw == "%":
		return Token{Kind: FileTerminator, Source: "%"}
	case raw == "/":
		return Token{Kind: BlockDelete, Source: "/"}
	case strings.HasPrefix(raw, "("):
		return Token{Kind: Comment, Source: raw}
	case strings.HasPrefix(raw, ";"):
		return Token{Kind: Comment, Source: "(" + strings.TrimSpace(raw[1:]) + ")"}
	case strings.HasPrefix(raw, "#"):
		return parseParameterSet(raw)
	default:
		return parseWord(raw)
	}
}

func parseParameterSet(raw string) Token {
	eq := strings.IndexByte(raw, '=')
	if eq < 0 {
		return Token{Kind: Invalid, Source: raw}
	}
	name := strings.TrimLeft(raw[:eq], "#")
	n, err := strconv.Atoi(name)
	if err != nil {
		return Token{Kind: Invalid, Source: raw}
	}
	val, err := decimal.NewFromString(raw[eq+1:])
	if err != nil {
		return Token{Kind: Invalid, Source: raw}
	}
	return Token{
		Kind: ParameterSet, Letter: '#', Source: strings.ToUpper(raw),
		HasValue: true, Value: val, Param: n,
	}
}

func parseWord(raw string) Token {
	upper := strings.ToUpper(raw)
	letter := upper[0]

	if letter == 'N' {
		n, err := strconv.Atoi(upper[1:])
		if err != nil {
			return Token{Kind: Invalid, Source: upper}
		}
		return Token{
			Kind: LineNumber, Letter: 'N', Source: upper,
			HasValue: true, Value: decimal.NewFromInt(int64(n)),
		}
	}

	val, err := decimal.NewFromString(upper[1:])
	if err != nil {
		return Token{Kind: Invalid, Source: upper}
	}

	switch {
	case letter == 'G' || letter == 'M':
		return Token{Kind: Command, Letter: letter, Source: upper, HasValue: true, Value: val}
	case codeLetters[letter]:
		return Token{Kind: Code, Letter: letter, Source: upper, HasValue: true, Value: val}
	case argumentLetters[letter]:
		return Token{Kind: Argument, Letter: letter, Source: upper, HasValue: true, Value: val}
	default:
		return Token{Kind: Invalid, Letter: letter, Source: upper, HasValue: true, Value: val}
	}
}
