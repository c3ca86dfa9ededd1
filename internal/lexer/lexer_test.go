package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeBasicMotion(t *testing.T) {
	got := Tokenize("G1 X10.500 Y-2 Z0")
	assert.Equal(t, []string{"G1", "X10.500", "Y-2", "Z0"}, got)
}

func TestTokenizeFileTerminator(t *testing.T) {
	assert.Equal(t, []string{"%"}, Tokenize("  %  "))
}

func TestTokenizeFullLineParenComment(t *testing.T) {
	assert.Equal(t, []string{"(hello world)"}, Tokenize("  (hello world)  "))
}

func TestTokenizeFullLineSemiComment(t *testing.T) {
	assert.Equal(t, []string{"; a note"}, Tokenize("; a note"))
}

func TestTokenizeInlineComment(t *testing.T) {
	got := Tokenize("G1 X10 (move right) Y20")
	assert.Equal(t, []string{"G1", "X10", "(move right)", "Y20"}, got)
}

func TestTokenizeInlineSemiComment(t *testing.T) {
	got := Tokenize("G1 X10 ; trailing")
	assert.Equal(t, []string{"G1", "X10", "; trailing"}, got)
}

func TestTokenizeLineNumberAlwaysFirst(t *testing.T) {
	got := Tokenize("G1 N120 X10")
	assert.Equal(t, []string{"N120", "G1", "X10"}, got)
}

func TestTokenizeLineNumberSpacedDigits(t *testing.T) {
	got := Tokenize("N 120 G1 X10")
	assert.Equal(t, []string{"N120", "G1", "X10"}, got)
}

func TestTokenizeBlockDelete(t *testing.T) {
	got := Tokenize("/G1 X10")
	assert.Equal(t, []string{"/", "G1", "X10"}, got)
}

func TestTokenizeParameterSet(t *testing.T) {
	got := Tokenize("#2=15.0")
	assert.Equal(t, []string{"#2=15.0"}, got)
}

func TestTokenizeRejectsSingleLetterWord(t *testing.T) {
	got := Tokenize("G1 X")
	assert.Equal(t, []string{"G1"}, got)
}

func TestTokenizeRejectsMalformedParameterSet(t *testing.T) {
	got := Tokenize("G1 #abc=5 X10")
	assert.Equal(t, []string{"G1", "X10"}, got)
}

func TestTokenizeLowercaseInput(t *testing.T) {
	got := Tokenize("g1 x10 y20")
	assert.Equal(t, []string{"G1", "X10", "Y20"}, got)
}

func TestTokenizeCaseInsensitiveLineNumber(t *testing.T) {
	got := Tokenize("n5 g0 x0")
	assert.Equal(t, []string{"N5", "G0", "X0"}, got)
}

func TestTokenizeWhitespaceOnlyLine(t *testing.T) {
	assert.Nil(t, Tokenize("   "))
}

func TestTokenizeRoundTripValidLine(t *testing.T) {
	line := "G1 X10.500 Y-2 Z0"
	toks := Tokenize(line)
	again := Tokenize(joinSpace(toks))
	assert.Equal(t, toks, again)
}

func joinSpace(toks []string) string {
	out := ""
	for i, t := range toks {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
