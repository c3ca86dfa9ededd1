package merge

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

// Rewrite reads the node files named by order (already resolved against
// nodes) and concatenates them into a single program per §4.7's
// "Rewriting" rules: the first file's preamble is kept verbatim, every
// other file's own preamble is discarded up to and including its close
// marker, and only the last file's postamble survives.
func Rewrite(fsys afero.Fs, nodes []Node, order []int) ([]string, error) {
	byID := make(map[int]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var out []string
	for i, id := range order {
		n, ok := byID[id]
		if !ok {
			return nil, errors.Errorf("merge: order references unknown node %d", id)
		}
		lines, err := fsx.ReadLines(fsys, n.Path)
		if err != nil {
			return nil, err
		}

		body := lines
		if i > 0 {
			body = dropPreamble(lines)
		}
		if i < len(order)-1 {
			body = dropPostamble(body)
		}
		out = append(out, body...)
	}
	return out, nil
}

// dropPreamble discards everything through and including a file's own
// preamble-close marker; if the file never wrote one, nothing is dropped.
func dropPreamble(lines []string) []string {
	for i, l := range lines {
		if l == pipeline.PreambleCloseMarker {
			return lines[i+1:]
		}
	}
	return lines
}

// dropPostamble discards a file's own postamble, identified by its open
// marker and everything after it (which includes any Z-lift line written
// ahead of the close marker); if absent, the file is passed through.
func dropPostamble(lines []string) []string {
	for i, l := range lines {
		if l == pipeline.PostambleOpenMarker {
			return lines[:i]
		}
	}
	return lines
}
