package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cncmill/gcodeclean/internal/modal"
)

func TestDedupContextDropsRepeatedCommandKeepsArguments(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"G1 X10", "G1 X20"}))
	out := collectStrings(DedupContext(&ctx)(src))
	assert.Equal(t, []string{"G1 X10", "X20"}, out)
}

func TestDedupContextSkipsLineThatBecomesFullyEmpty(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"G1 X10", "G1", "G1 X30"}))
	out := collectStrings(DedupContext(&ctx)(src))
	assert.Equal(t, []string{"G1 X10", "X30"}, out)
}

func TestDedupContextForwardsFirstOccurrenceUnchanged(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"G21", "G90"}))
	out := collectStrings(DedupContext(&ctx)(src))
	assert.Equal(t, []string{"G21", "G90"}, out)
}
