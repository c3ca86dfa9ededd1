// Package lexer implements §4.1 of the spec: turning one physical line of
// G-code text into an ordered sequence of token source strings. It is pure
// and total — malformed words are silently dropped, never an error.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
)

// Compiled once at startup, per §9's re-architecture note.
var (
	fullLineParenComment = regexp.MustCompile(`^\([^()]*\)$`)
	fullLineSemiComment  = regexp.MustCompile(`^;`)
	lineNumberRe         = regexp.MustCompile(`(?i)N\s*\d{1,5}`)
	wordBody             = `(#+\d{1,4}=|[A-Za-z])[+-]?(#+\d{1,4}|\d*\.?\d*)`
)

const sentinel = "\x01"

var sentinelOrWord = regexp.MustCompile(sentinel + "|" + wordBody)

// Tokenize converts one physical line into its ordered token source
// strings. The line-number token, if present, is returned first (after a
// block-delete "/", if any);
// comments are returned in their original relative order, interleaved with
// the words that surround them in the source text.
func Tokenize(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if trimmed == "%" {
		return []string{"%"}
	}
	if fullLineParenComment.MatchString(trimmed) {
		return []string{trimmed}
	}
	if fullLineSemiComment.MatchString(trimmed) {
		return []string{trimmed}
	}

	residue := line

	var blockDelete bool
	if i := firstNonSpace(residue); i >= 0 && residue[i] == '/' {
		blockDelete = true
		residue = residue[:i] + residue[i+1:]
	}

	var lineNumTok string
	if loc := lineNumberRe.FindStringIndex(residue); loc != nil {
		lineNumTok = collapseWhitespace(residue[loc[0]:loc[1]])
		residue = residue[:loc[0]] + residue[loc[1]:]
	}

	comments, marked := extractComments(residue)
	marked = stripWhitespace(marked)

	var tokens []string
	if blockDelete {
		tokens = append(tokens, "/")
	}
	if lineNumTok != "" {
		tokens = append(tokens, strings.ToUpper(lineNumTok))
	}

	ci := 0
	for _, match := range sentinelOrWord.FindAllString(marked, -1) {
		if match == sentinel {
			if ci < len(comments) {
				tokens = append(tokens, comments[ci])
				ci++
			}
			continue
		}
		if word, ok := validateWord(match); ok {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// extractComments replaces every (...) and ;... comment in residue with a
// single sentinel rune, returning the comments (trimmed) in order of
// appearance and the marked-up residue.
func extractComments(residue string) (comments []string, marked string) {
	var sb strings.Builder
	i := 0
	for i < len(residue) {
		switch residue[i] {
		case '(':
			end := strings.IndexByte(residue[i:], ')')
			if end < 0 {
				comments = append(comments, strings.TrimSpace(residue[i:]))
				sb.WriteString(sentinel)
				i = len(residue)
				continue
			}
			end += i + 1
			comments = append(comments, strings.TrimSpace(residue[i:end]))
			sb.WriteString(sentinel)
			i = end
		case ';':
			comments = append(comments, strings.TrimSpace(residue[i:]))
			sb.WriteString(sentinel)
			i = len(residue)
		default:
			sb.WriteByte(residue[i])
			i++
		}
	}
	return comments, sb.String()
}

// validateWord applies §4.1 step 6: reject length-1 words, reject
// malformed parameter sets and malformed decimal tails, else upper-case.
func validateWord(word string) (string, bool) {
	if len(word) <= 1 {
		return "", false
	}
	upper := strings.ToUpper(word)
	if strings.HasPrefix(upper, "#") {
		eq := strings.IndexByte(upper, '=')
		if eq < 0 {
			return "", false
		}
		name := strings.TrimLeft(upper[:eq], "#")
		if _, err := strconv.Atoi(name); err != nil {
			return "", false
		}
		if !isDecimalTail(upper[eq+1:]) {
			return "", false
		}
		return upper, true
	}
	if !isDecimalTail(upper[1:]) {
		return "", false
	}
	return upper, true
}

// isDecimalTail reports whether s is a (possibly empty-mantissa) signed
// decimal: optional sign, then digits, an optional '.', then digits — with
// at least one digit present somewhere, and for letter N specifically
// digits are mandatory (enforced by the caller's context, not here).
func isDecimalTail(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	digitsBefore := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digitsBefore++
	}
	digitsAfter := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digitsAfter++
		}
	}
	return i == len(s) && (digitsBefore+digitsAfter) > 0
}

func firstNonSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return -1
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func stripWhitespace(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
