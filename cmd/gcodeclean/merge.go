package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/merge"
)

var mergeFlags struct {
	inputDir string
	output   string
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Reassemble a split directory's passes into one travel-ordered program",
	RunE:  runMerge,
}

func init() {
	f := mergeCmd.Flags()
	f.StringVarP(&mergeFlags.inputDir, "input-dir", "i", ".", "directory of split pass files")
	f.StringVarP(&mergeFlags.output, "output", "o", "-", `output file, "-" for stdout`)
}

func runMerge(cmd *cobra.Command, args []string) error {
	fsys := fsx.OS()
	nodes, err := merge.LoadNodes(fsys, mergeFlags.inputDir)
	if err != nil {
		if errors.Is(err, merge.ErrNoNodes) {
			logger.Warn("no pass files found, nothing to merge", logrus.Fields{"dir": mergeFlags.inputDir})
			return nil
		}
		return err
	}

	order := merge.Order(nodes)
	lines, err := merge.Rewrite(fsys, nodes, order)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(mergeFlags.output)
	if err != nil {
		return err
	}
	defer closeOut()

	for _, l := range lines {
		if _, err := out.WriteString(l + "\n"); err != nil {
			return errors.Wrap(err, "gcodeclean: writing merged output")
		}
	}
	logger.Info("merge finished", logrus.Fields{"nodes": len(nodes), "output": mergeFlags.output})
	return nil
}
