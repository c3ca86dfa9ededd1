package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
)

func TestMotionTrackerObservesOwnCommand(t *testing.T) {
	var tr motionTracker
	cmd, ok := tr.Observe(gcodeline.New("G1 X10"))
	assert.True(t, ok)
	assert.Equal(t, "G1", cmd.Source)
}

func TestMotionTrackerCarriesImpliedCommand(t *testing.T) {
	var tr motionTracker
	_, _ = tr.Observe(gcodeline.New("G1 X10"))
	cmd, ok := tr.Observe(gcodeline.New("X20"))
	assert.True(t, ok)
	assert.Equal(t, "G1", cmd.Source)
}

func TestMotionTrackerNoCommandBeforeAnySeen(t *testing.T) {
	var tr motionTracker
	_, ok := tr.Observe(gcodeline.New("X10"))
	assert.False(t, ok)
}

func TestMotionTrackerIgnoresNonMotionLines(t *testing.T) {
	var tr motionTracker
	_, ok := tr.Observe(gcodeline.New("M3 S1000"))
	assert.False(t, ok)
}

func TestEnsureCommandReplacesExisting(t *testing.T) {
	out := ensureCommand(gcodeline.New("G1 X10"), cmdToken('G', 0))
	assert.Equal(t, "G0 X10", out.String())
}

func TestEnsureCommandPrependsWhenMissing(t *testing.T) {
	out := ensureCommand(gcodeline.New("X10"), cmdToken('G', 1))
	assert.Equal(t, "G1 X10", out.String())
}
