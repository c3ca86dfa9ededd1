// Package merge implements §4.7: recovering per-pass nodes from a split
// directory, the travel-reordering optimiser, and rewriting the passes
// into a single file in the optimiser's chosen order.
package merge

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/geom"
)

// Node is one cutting pass, recovered from its split filename: a stable
// Id, the tool that cut it, and its fixed entry/exit coordinates (§3).
type Node struct {
	ID    int
	Tool  int
	Start geom.Coord
	End   geom.Coord
	Path  string
}

var filenamePattern = regexp.MustCompile(
	`^(\d+)_(\d+)_X(-?[0-9.]+)Y(-?[0-9.]+)_X(-?[0-9.]+)Y(-?[0-9.]+)_gcc\.nc$`)

// Sentinel errors (§7) so callers can errors.Is past the wrapping
// cmd/gcodeclean adds when it reports an abort.
var (
	ErrNoNodes           = errors.New("merge: directory has no parseable pass files")
	ErrMultiTool         = errors.New("merge: directory mixes passes from more than one tool")
	ErrMalformedFilename = errors.New("merge: filename does not match the split naming contract")
)

// ParseNode recovers a Node from a split filename (§6's "Split filename
// format"); it returns ErrMalformedFilename if the name does not parse.
func ParseNode(name string) (Node, error) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return Node{}, errors.Wrapf(ErrMalformedFilename, "%q", name)
	}
	tool, _ := strconv.Atoi(m[1])
	id, _ := strconv.Atoi(m[2])
	sx, _ := strconv.ParseFloat(m[3], 64)
	sy, _ := strconv.ParseFloat(m[4], 64)
	ex, _ := strconv.ParseFloat(m[5], 64)
	ey, _ := strconv.ParseFloat(m[6], 64)
	return Node{
		ID:   id,
		Tool: tool,
		Start: geom.Coord{X: sx, Y: sy, Set: geom.SetX | geom.SetY},
		End:   geom.Coord{X: ex, Y: ey, Set: geom.SetX | geom.SetY},
	}, nil
}

// LoadNodes lists dir on fsys and parses every entry into a Node, erroring
// on the first malformed name (§7: "the merge aborts with a descriptive
// message before producing output") and on a mixed-tool directory (§7:
// multi-tool merges are out of scope for this pass of the optimiser).
func LoadNodes(fsys afero.Fs, dir string) ([]Node, error) {
	names, err := fsx.ListFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.Wrapf(ErrNoNodes, "%q", dir)
	}
	nodes := make([]Node, 0, len(names))
	tool, haveTool := 0, false
	for _, name := range names {
		n, err := ParseNode(name)
		if err != nil {
			return nil, err
		}
		n.Path = filepath.Join(dir, name)
		if !haveTool {
			tool, haveTool = n.Tool, true
		} else if n.Tool != tool {
			return nil, errors.Wrapf(ErrMultiTool, "tools %d and %d in %q", tool, n.Tool, dir)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
