package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cncmill/gcodeclean/internal/modal"
)

func TestInjectPreambleDumpsDefaultStateBeforeFirstMotion(t *testing.T) {
	ctx := modal.NewWithDefaultPreamble()
	src := TokeniseToLine(FromStrings([]string{"G1 X10"}))
	out := collectStrings(InjectPreamble(&ctx, 5)(src))

	assert.Equal(t, []string{
		PreambleOpenMarker,
		"G21", "G90", "G94", "G17", "G40", "G49", "G54", "M3",
		"G0 Z5",
		PreambleCloseMarker,
		"G1 X10",
	}, out)
}

func TestInjectPreambleWithEmptyContextStillBracketsLift(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"G1 X10"}))
	out := collectStrings(InjectPreamble(&ctx, 5)(src))

	assert.Equal(t, []string{
		PreambleOpenMarker,
		"G0 Z5",
		PreambleCloseMarker,
		"G1 X10",
	}, out)
}

func TestInjectPreamblePassesNonMotionLinesThroughBeforeTrigger(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"(note)", "G1 X10", "G1 X20"}))
	out := collectStrings(InjectPreamble(&ctx, 5)(src))

	assert.Equal(t, []string{
		"(note)",
		PreambleOpenMarker,
		"G0 Z5",
		PreambleCloseMarker,
		"G1 X10",
		"G1 X20",
	}, out)
}

func TestInjectPreambleNeverTriggersWithoutMotion(t *testing.T) {
	ctx := modal.New()
	src := TokeniseToLine(FromStrings([]string{"(note)", "M3"}))
	out := collectStrings(InjectPreamble(&ctx, 5)(src))
	assert.Equal(t, []string{"(note)", "M3"}, out)
}
