package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertArcRadiusToCenterRewritesTangentArc(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G2 X10 Y0 R5"}))
	out := collectStrings(ConvertArcRadiusToCenter(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G2 X10 Y0 I5 J0"}, out)
}

func TestConvertArcRadiusToCenterLeavesDegenerateArcUnreduced(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G2 X10 Y0 R1"}))
	out := collectStrings(ConvertArcRadiusToCenter(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G2 X10 Y0 R1"}, out)
}

func TestConvertArcRadiusToCenterIgnoresLinesWithoutPriorPosition(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G2 X10 Y0 R5"}))
	out := collectStrings(ConvertArcRadiusToCenter(src))
	assert.Equal(t, []string{"G2 X10 Y0 R5"}, out)
}
