package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupSelectTokensDropsUnchangedStickyValue(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X10 F100", "G1 X20 F100", "G1 X30 F200"}))
	out := collectStrings(DedupSelectTokens("F")(src))
	assert.Equal(t, []string{"G1 X10 F100", "G1 X20", "G1 X30 F200"}, out)
}

func TestDedupSelectTokensNeverTreatsIJKAsSticky(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G2 I1 F100", "G2 I1 F100"}))
	out := collectStrings(DedupSelectTokens("FIJK")(src))
	assert.Equal(t, []string{"G2 I1 F100", "G2 I1"}, out)
}
