package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/pipeline"
	"github.com/cncmill/gcodeclean/internal/split"
)

var splitFlags struct {
	input     string
	outputDir string
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Partition a cleaned G-code program into one file per cutting pass",
	RunE:  runSplit,
}

func init() {
	f := splitCmd.Flags()
	f.StringVarP(&splitFlags.input, "input", "i", "-", `cleaned input file, "-" for stdin`)
	f.StringVarP(&splitFlags.outputDir, "output-dir", "o", ".", "directory to write one file per pass into")
}

func runSplit(cmd *cobra.Command, args []string) error {
	in, closeIn, err := openInput(splitFlags.input)
	if err != nil {
		return err
	}
	defer closeIn()

	lines := collectLines(pipeline.TokeniseToLine(pipeline.FromReader(in)))
	res := split.Run(lines)

	fsys := fsx.OS()
	if err := split.WriteAll(fsys, splitFlags.outputDir, res); err != nil {
		if errors.Is(err, split.ErrNoDividers) {
			logger.Warn("no travel dividers found, nothing written", logrus.Fields{"input": splitFlags.input})
			return nil
		}
		return err
	}
	logger.Info("split finished", logrus.Fields{"passes": len(res.Passes), "dir": splitFlags.outputDir})
	return nil
}

func collectLines(src pipeline.Source) []gcodeline.Line {
	var out []gcodeline.Line
	for {
		l, ok := src()
		if !ok {
			return out
		}
		out = append(out, l)
	}
}
