package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

func lines(raw ...string) []gcodeline.Line {
	var out []gcodeline.Line
	for _, r := range raw {
		out = append(out, gcodeline.New(r))
	}
	return out
}

func TestRunNoDividersYieldsEmptyResult(t *testing.T) {
	res := Run(lines("G0 X0 Y0", "G1 X10 Y10"))
	assert.Empty(t, res.Passes)
	assert.Nil(t, res.Preamble)
}

func TestRunSplitsOnSingleDivider(t *testing.T) {
	// A single cutting pass ends with its own lift-off-to-travel crossing,
	// so even one pass produces exactly one divider; nothing cutting
	// follows it, only the lift move and the postamble.
	in := lines(
		pipeline.PreambleOpenMarker,
		"G21",
		pipeline.PreambleCloseMarker,
		"G1 X0 Y0",
		"G1 X10 Y0",
		"(||Travelling||1||0||0||2.0||5||>>X10Y0>>X10Y20>>||)",
		"G0 Z5",
		pipeline.PostambleOpenMarker,
		pipeline.PostambleCloseMarker,
		"M30",
	)
	res := Run(in)
	require.Len(t, res.Passes, 1)

	p := res.Passes[0]
	assert.Equal(t, 5, p.Tool)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, 0.0, p.Start.X)
	assert.Equal(t, 10.0, p.End.X)
	assert.Equal(t, 0.0, p.End.Y)
	assert.Equal(t, pipeline.PreambleCloseMarker, res.Preamble[len(res.Preamble)-1].String())
	assert.Equal(t, "M30", res.Postamble[len(res.Postamble)-1].String())
}

func TestFilenameFormat(t *testing.T) {
	p := Pass{Tool: 5, ID: 3}
	assert.Equal(t, "5_0003_X0Y0_X0Y0_gcc.nc", Filename(p))
}

func TestWriteAllNoPassesReturnsErrNoDividers(t *testing.T) {
	err := WriteAll(fsx.Mem(), "/out", Result{})
	assert.ErrorIs(t, err, ErrNoDividers)
}

func TestWriteAllWritesOneFilePerPass(t *testing.T) {
	res := Result{
		Preamble:  lines("G21"),
		Postamble: lines("M30"),
		Passes: []Pass{
			{Tool: 5, ID: 1, Lines: lines("G1 X0 Y0")},
			{Tool: 5, ID: 2, Lines: lines("G1 X10 Y10")},
		},
	}
	fsys := fsx.Mem()
	require.NoError(t, WriteAll(fsys, "/out", res))

	names, err := fsx.ListFiles(fsys, "/out")
	require.NoError(t, err)
	assert.Len(t, names, 2)
}
