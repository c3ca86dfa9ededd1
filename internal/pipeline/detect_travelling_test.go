package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTravellingInsertsDividerAtCuttingToTravelCrossing(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{
		"T1",
		"G1 Z-1",
		"G1 X10 Y0",
		"G1 Z-2",
		"G0 Z5",
	}))
	out := collectStrings(DetectTravelling(src))

	require.Len(t, out, 6)
	assert.Equal(t, []string{"T1", "G1 Z-1", "G1 X10 Y0", "G1 Z-2"}, out[:4])
	assert.Equal(t, "(||Travelling||1||0||1||2||1||>>G1 Z-2>>G0 Z5>>||)", out[4])
	assert.Equal(t, "G0 Z5", out[5])
}

func TestDetectTravellingStaysQuietWithoutACrossing(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{"G1 Z-1", "G1 X10 Y10", "G1 Z-2"}))
	out := collectStrings(DetectTravelling(src))
	assert.Equal(t, []string{"G1 Z-1", "G1 X10 Y10", "G1 Z-2"}, out)
}

func TestDetectTravellingCountsAPerToolSequence(t *testing.T) {
	src := TokeniseToLine(FromStrings([]string{
		"T1",
		"G1 Z-1",
		"G0 Z5",
		"G1 Z-1",
		"G0 Z5",
	}))
	out := collectStrings(DetectTravelling(src))

	var dividers []string
	for _, l := range out {
		if len(l) > 0 && l[0] == '(' {
			dividers = append(dividers, l)
		}
	}
	require.Len(t, dividers, 2)
	assert.Contains(t, dividers[0], "||1||0||1||")
	assert.Contains(t, dividers[1], "||2||0||2||")
}
