package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncmill/gcodeclean/internal/fsx"
)

func TestParseNodeValid(t *testing.T) {
	n, err := ParseNode("5_0001_X0Y0_X10Y20_gcc.nc")
	require.NoError(t, err)
	assert.Equal(t, 5, n.Tool)
	assert.Equal(t, 1, n.ID)
	assert.Equal(t, 0.0, n.Start.X)
	assert.Equal(t, 10.0, n.End.X)
	assert.Equal(t, 20.0, n.End.Y)
}

func TestParseNodeMalformed(t *testing.T) {
	_, err := ParseNode("not-a-pass-file.nc")
	assert.ErrorIs(t, err, ErrMalformedFilename)
}

func TestLoadNodesEmptyDir(t *testing.T) {
	fsys := fsx.Mem()
	require.NoError(t, fsys.MkdirAll("/in", 0o755))
	_, err := LoadNodes(fsys, "/in")
	assert.ErrorIs(t, err, ErrNoNodes)
}

func TestLoadNodesMixedToolRejected(t *testing.T) {
	fsys := fsx.Mem()
	require.NoError(t, fsx.WriteLines(fsys, "/in/5_0001_X0Y0_X10Y0_gcc.nc", []string{"G1 X10 Y0"}))
	require.NoError(t, fsx.WriteLines(fsys, "/in/6_0001_X0Y0_X10Y0_gcc.nc", []string{"G1 X10 Y0"}))

	_, err := LoadNodes(fsys, "/in")
	assert.ErrorIs(t, err, ErrMultiTool)
}

func TestLoadNodesSingleTool(t *testing.T) {
	fsys := fsx.Mem()
	require.NoError(t, fsx.WriteLines(fsys, "/in/5_0001_X0Y0_X10Y0_gcc.nc", []string{"G1 X10 Y0"}))
	require.NoError(t, fsx.WriteLines(fsys, "/in/5_0002_X10Y0_X20Y20_gcc.nc", []string{"G1 X20 Y20"}))

	nodes, err := LoadNodes(fsys, "/in")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "/in/5_0001_X0Y0_X10Y0_gcc.nc", nodes[0].Path)
}
