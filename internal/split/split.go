// Package split implements §4.6: partitioning a previously-cleaned stream
// at travel-divider comments into one file per cutting pass, each file
// named so the endpoints and identity survive the split/merge boundary.
package split

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/cncmill/gcodeclean/internal/fsx"
	"github.com/cncmill/gcodeclean/internal/gcodeline"
	"github.com/cncmill/gcodeclean/internal/geom"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

// dividerPattern captures the structured fields of a DetectTravelling
// comment: seq, subSeq, block, zMax, tool, entry, exit.
var dividerPattern = regexp.MustCompile(
	`^\(\|\|Travelling\|\|(\d+)\|\|(\d+)\|\|(\d+)\|\|([0-9.]+)\|\|(\d+)\|\|>>(.*?)>>(.*?)>>\|\|\)$`)

// Pass is one cutting pass recovered from a cleaned stream: a stable
// per-tool sequence Id plus the start/end coordinates the filename
// carries across the split/merge boundary.
type Pass struct {
	Tool  int
	ID    int
	Start geom.Coord
	End   geom.Coord
	Lines []gcodeline.Line
}

// Result is a cleaned stream decomposed into its framing and passes.
type Result struct {
	Preamble  []gcodeline.Line
	Passes    []Pass
	Postamble []gcodeline.Line
}

// ErrNoDividers is a sentinel (§7) cmd/gcodeclean checks for to log a
// recoverable Warn rather than treat an undivided stream as fatal.
var ErrNoDividers = errors.New("split: no travel dividers found in input")

// Run scans lines for travel dividers and partitions them per §4.6. If no
// divider is found, Passes is empty and the caller should write nothing.
func Run(lines []gcodeline.Line) Result {
	preambleEnd := 0
	for i, l := range lines {
		if isMarker(l, pipeline.PreambleCloseMarker) {
			preambleEnd = i + 1
			break
		}
	}

	var dividers []int
	for i := preambleEnd; i < len(lines); i++ {
		if _, ok := parseDivider(lines[i]); ok {
			dividers = append(dividers, i)
		}
	}
	if len(dividers) == 0 {
		return Result{}
	}

	res := Result{Preamble: append([]gcodeline.Line(nil), lines[:preambleEnd]...)}

	// The single physical line right after a divider is that divider's
	// "exit" move — the travel that carries the tool from the end of the
	// pass just closed to the start of the next one. It becomes the next
	// pass's continuation-start line rather than belonging to either
	// pass's own cutting instructions.
	start := preambleEnd
	cuttingStart := preambleEnd
	first := true
	for _, idx := range dividers {
		d, _ := parseDivider(lines[idx])
		pass := Pass{Tool: d.tool, ID: d.seq}
		if !first {
			pass.Lines = append(pass.Lines, lines[start])
			cuttingStart = start + 1
		}
		pass.Lines = append(pass.Lines, lines[cuttingStart:idx+1]...)
		pass.Start = firstXY(pass.Lines)
		pass.End = d.entry.ToCoord()
		res.Passes = append(res.Passes, pass)

		start = idx + 1
		first = false
	}

	if start < len(lines) {
		res.Postamble = append([]gcodeline.Line(nil), lines[start:]...)
	}
	return res
}

// firstXY returns the coordinate of the first line in lines that carries
// both axes; the continuation line copied in from the previous divider is
// often a bare Z lift and would otherwise leave a pass's start undefined.
func firstXY(lines []gcodeline.Line) geom.Coord {
	for _, l := range lines {
		c := l.ToCoord()
		if c.HasX() && c.HasY() {
			return c
		}
	}
	return geom.Coord{}
}

func isMarker(l gcodeline.Line, marker string) bool {
	for _, c := range l.Comments() {
		if c.Source == marker {
			return true
		}
	}
	return false
}

type divider struct {
	seq, subSeq, block, tool int
	zMax                     float64
	entry, exit              gcodeline.Line
}

func parseDivider(l gcodeline.Line) (divider, bool) {
	comments := l.Comments()
	if len(l.Body()) != 0 || len(comments) != 1 {
		return divider{}, false
	}
	m := dividerPattern.FindStringSubmatch(comments[0].Source)
	if m == nil {
		return divider{}, false
	}
	seq, _ := strconv.Atoi(m[1])
	subSeq, _ := strconv.Atoi(m[2])
	block, _ := strconv.Atoi(m[3])
	zMax, _ := strconv.ParseFloat(m[4], 64)
	tool, _ := strconv.Atoi(m[5])
	return divider{
		seq: seq, subSeq: subSeq, block: block, tool: tool, zMax: zMax,
		entry: gcodeline.New(m[6]), exit: gcodeline.New(m[7]),
	}, true
}

// Filename returns the stable, merge-parseable name for pass p:
// <tool>_<id>_<startXY>_<endXY>_gcc.nc.
func Filename(p Pass) string {
	return fmt.Sprintf("%d_%04d_%s_%s_gcc.nc", p.Tool, p.ID, formatXY(p.Start), formatXY(p.End))
}

func formatXY(c geom.Coord) string {
	return fmt.Sprintf("X%gY%g", c.X, c.Y)
}

// WriteAll renders res to dir on fsys, one file per pass (§4.6); preamble
// and postamble are prepended/appended to every pass's interior lines.
// A Result with no passes writes nothing and returns ErrNoDividers.
func WriteAll(fsys afero.Fs, dir string, res Result) error {
	if len(res.Passes) == 0 {
		return ErrNoDividers
	}
	for _, p := range res.Passes {
		var rendered []string
		for _, l := range res.Preamble {
			rendered = append(rendered, l.String())
		}
		for _, l := range p.Lines {
			rendered = append(rendered, l.String())
		}
		for _, l := range res.Postamble {
			rendered = append(rendered, l.String())
		}
		name := path.Join(dir, Filename(p))
		if err := fsx.WriteLines(fsys, name, rendered); err != nil {
			return errors.Wrapf(err, "split: writing pass %d", p.ID)
		}
	}
	return nil
}
