package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyShortArcsCollapsesLowSagittaArcToLinear(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G2 X0.1 Y0 I10 J0"}))
	out := collectStrings(SimplifyShortArcs(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X0.1 Y0"}, out)
}

func TestSimplifyShortArcsKeepsArcWhenSagittaExceedsTolerance(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G2 X19.9 Y0 I10 J0"}))
	out := collectStrings(SimplifyShortArcs(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G2 X19.9 Y0 I10 J0"}, out)
}

func TestSimplifyShortArcsIgnoresArcWithoutCentreOffsets(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G2 X10 Y0 R5"}))
	out := collectStrings(SimplifyShortArcs(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G2 X10 Y0 R5"}, out)
}
