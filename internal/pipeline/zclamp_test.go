package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZClampClampsAndPromotesToRapidWhenXYUnchanged(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 Z10"}))
	out := collectStrings(ZClamp(5)(src))
	assert.Equal(t, []string{"G0 Z5"}, out)
}

func TestZClampClampsWithoutPromotingWhenXYMovedFromNegativeZ(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 X10 Y10 Z-1", "G1 X20 Y20 Z10"}))
	out := collectStrings(ZClamp(5)(src))
	assert.Equal(t, []string{"G1 X10 Y10 Z-1", "G1 X20 Y20 Z5"}, out)
}

func TestZClampDemotesRapidToLinearWhenDivingNegative(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G0 Z-1"}))
	out := collectStrings(ZClamp(5)(src))
	assert.Equal(t, []string{"G1 Z-1"}, out)
}

func TestZClampLeavesNonMotionLinesUntouched(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"(comment)", "M3 S1000"}))
	out := collectStrings(ZClamp(5)(src))
	assert.Equal(t, []string{"(comment)", "M3 S1000"}, out)
}

func TestZClampClampsCannedCycleWithoutDemotingCommand(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G0 X10 Y20", "G81 X10 Y20 Z3 R5 F100"}))
	out := collectStrings(ZClamp(5)(src))
	assert.Equal(t, []string{"G0 X10 Y20", "G81 X10 Y20 Z5 R5 F100"}, out)
}
