package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupLinearDropsMidpointOfStraightRun(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G1 X5 Y0", "G1 X10 Y0"}))
	out := collectStrings(DedupLinear(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X10 Y0"}, out)
}

func TestDedupLinearKeepsPointAtACorner(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{
		"G1 X0 Y0", "G1 X5 Y0", "G1 X10 Y0", "G1 X10 Y10",
	}))
	out := collectStrings(DedupLinear(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X10 Y0", "G1 X10 Y10"}, out)
}

func TestDedupLinearFlushesPendingOnNonCoordinateLine(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G1 X5 Y0", "(note)"}))
	out := collectStrings(DedupLinear(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X5 Y0", "(note)"}, out)
}
