package main

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cncmill/gcodeclean/internal/annotate"
	"github.com/cncmill/gcodeclean/internal/config"
	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/pipeline"
	"github.com/cncmill/gcodeclean/internal/workflow"
)

var cleanFlags struct {
	input            string
	output           string
	profile          string
	dictionary       string
	units            string
	tolerance        float64
	arcTolerance     float64
	zClamp           float64
	minimisation     string
	customLetters    string
	stripLineNumbers bool
	dedupTravelling  bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the cleaning pipeline over a single G-code program",
	RunE:  runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVarP(&cleanFlags.input, "input", "i", "-", `input file, "-" for stdin`)
	f.StringVarP(&cleanFlags.output, "output", "o", "-", `output file, "-" for stdout`)
	f.StringVar(&cleanFlags.profile, "profile", "", "named machine profile (TOML) overriding the tolerance flags")
	f.StringVar(&cleanFlags.dictionary, "dictionary", "", "optional annotation dictionary (JSON)")
	f.StringVar(&cleanFlags.units, "units", "mm", "mm or inch")
	f.Float64Var(&cleanFlags.tolerance, "tolerance", 0.005, "collinear deviation tolerance and clip precision")
	f.Float64Var(&cleanFlags.arcTolerance, "arc-tolerance", 0.01, "short-arc simplification and line-to-arc fitting tolerance")
	f.Float64Var(&cleanFlags.zClamp, "z-clamp", 2, "vertical clamp height")
	f.StringVar(&cleanFlags.minimisation, "minimisation", "soft", "soft, medium, hard or custom")
	f.StringVar(&cleanFlags.customLetters, "custom-letters", "", "sticky letter set when --minimisation=custom")
	f.BoolVar(&cleanFlags.stripLineNumbers, "strip-line-numbers", false, "drop N-word line numbers outright")
	f.BoolVar(&cleanFlags.dedupTravelling, "dedup-travelling", false, "dedup repeated rapid moves before motion rewriting")
}

func runClean(cmd *cobra.Command, args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}

	opts := workflow.Options{
		StripLineNumbers: cleanFlags.stripLineNumbers,
		DedupTravelling:  cleanFlags.dedupTravelling,
	}
	if cleanFlags.dictionary != "" {
		dict, err := annotate.LoadFile(cleanFlags.dictionary)
		if err != nil {
			return err
		}
		opts.Dictionary = &dict
	}

	in, closeIn, err := openInput(cleanFlags.input)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(cleanFlags.output)
	if err != nil {
		return err
	}
	defer closeOut()

	raw := pipeline.FromReader(in)
	cleaned := workflow.Clean(p, opts, raw)

	w := bufio.NewWriter(out)
	defer w.Flush()
	n := 0
	for _, line := range pipeline.CollectStrings(cleaned) {
		if _, err := w.WriteString(line); err != nil {
			return errors.Wrap(err, "gcodeclean: writing output")
		}
		if _, err := w.WriteString("\n"); err != nil {
			return errors.Wrap(err, "gcodeclean: writing output")
		}
		n++
	}
	logger.Info("clean finished", logrus.Fields{"lines": n, "input": cleanFlags.input})
	return nil
}

func resolveProfile() (config.Profile, error) {
	if cleanFlags.profile != "" {
		return config.LoadFile(cleanFlags.profile)
	}
	p := config.Profile{
		Units:         parseUnits(cleanFlags.units),
		Tolerance:     cleanFlags.tolerance,
		ArcTolerance:  cleanFlags.arcTolerance,
		ZClamp:        cleanFlags.zClamp,
		Minimisation:  config.ParseMinimisation(cleanFlags.minimisation),
		CustomLetters: cleanFlags.customLetters,
	}
	return p.Normalise(), nil
}

func parseUnits(s string) geom.Units {
	if s == "inch" || s == "in" {
		return geom.Inches
	}
	return geom.Millimetres
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "gcodeclean: opening input %q", path)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "gcodeclean: creating output %q", path)
	}
	return f, func() { f.Close() }, nil
}
