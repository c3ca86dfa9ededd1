package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupLinearToArcCollapsesPointsOnACommonCircle(t *testing.T) {
	// (5,0), (4,3), (0,5), (-4,3) all lie on the circle of radius 5 centred
	// at the origin; the straight moves between them stray at most about
	// 0.53 from it.
	src := TokeniseToLine(FromStrings([]string{
		"G1 X5 Y0", "G1 X4 Y3", "G1 X0 Y5", "G1 X-4 Y3",
	}))
	out := collectStrings(DedupLinearToArc(0.6)(src))
	assert.Equal(t, []string{"G1 X5 Y0", "G3 X-4 Y3 I-5 J0"}, out)
}

func TestDedupLinearToArcLeavesCollinearPointsAsLines(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G1 X5 Y0", "G1 X10 Y0"}))
	out := collectStrings(DedupLinearToArc(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X5 Y0", "G1 X10 Y0"}, out)
}

func TestDedupLinearToArcFlushesBufferedPointsOnInterruption(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X0 Y0", "G1 X5 Y0", "(note)"}))
	out := collectStrings(DedupLinearToArc(0.001)(src))
	assert.Equal(t, []string{"G1 X0 Y0", "G1 X5 Y0", "(note)"}, out)
}
