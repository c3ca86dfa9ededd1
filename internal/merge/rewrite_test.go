package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

func TestRewriteKeepsFirstPreambleAndLastPostambleOnly(t *testing.T) {
	fsys := fsx.Mem()
	require.NoError(t, fsx.WriteLines(fsys, "/in/a.nc", []string{
		pipeline.PreambleOpenMarker,
		"G21",
		pipeline.PreambleCloseMarker,
		"G1 X0 Y0",
		pipeline.PostambleOpenMarker,
		pipeline.PostambleCloseMarker,
		"M30",
	}))
	require.NoError(t, fsx.WriteLines(fsys, "/in/b.nc", []string{
		pipeline.PreambleOpenMarker,
		"G21",
		pipeline.PreambleCloseMarker,
		"G1 X10 Y10",
		pipeline.PostambleOpenMarker,
		pipeline.PostambleCloseMarker,
		"M30",
	}))

	nodes := []Node{
		{ID: 1, Path: "/in/a.nc"},
		{ID: 2, Path: "/in/b.nc"},
	}
	out, err := Rewrite(fsys, nodes, []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []string{
		pipeline.PreambleOpenMarker,
		"G21",
		pipeline.PreambleCloseMarker,
		"G1 X0 Y0",
		"G1 X10 Y10",
		pipeline.PostambleOpenMarker,
		pipeline.PostambleCloseMarker,
		"M30",
	}, out)
}

// TestRewriteDropsLiftLinePrecedingNonLastPostamble guards against a lift
// line written ahead of the close marker (FileDemarcation's end-of-stream
// rule raises Z before closing) leaking into a non-last node's body: the
// whole postamble, lift line included, must be cut from its open marker.
func TestRewriteDropsLiftLinePrecedingNonLastPostamble(t *testing.T) {
	fsys := fsx.Mem()
	require.NoError(t, fsx.WriteLines(fsys, "/in/a.nc", []string{
		"G21",
		"G1 Z-2",
		pipeline.PostambleOpenMarker,
		"G0 Z5",
		pipeline.PostambleCloseMarker,
		"M30",
	}))
	require.NoError(t, fsx.WriteLines(fsys, "/in/b.nc", []string{
		"G21",
		"G1 X10 Y10",
		pipeline.PostambleOpenMarker,
		"G0 Z5",
		pipeline.PostambleCloseMarker,
		"M30",
	}))

	nodes := []Node{
		{ID: 1, Path: "/in/a.nc"},
		{ID: 2, Path: "/in/b.nc"},
	}
	out, err := Rewrite(fsys, nodes, []int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"G21",
		"G1 Z-2",
		"G21",
		"G1 X10 Y10",
		pipeline.PostambleOpenMarker,
		"G0 Z5",
		pipeline.PostambleCloseMarker,
		"M30",
	}, out)
}

func TestRewriteUnknownNodeErrors(t *testing.T) {
	fsys := fsx.Mem()
	_, err := Rewrite(fsys, nil, []int{1})
	assert.Error(t, err)
}
