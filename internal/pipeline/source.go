// Package pipeline implements §4.5: the library of lazy, pull-driven
// line-to-line transformations that make up the "clean" workflow. Each
// stage wraps an upstream Source in a new Source that pulls from it
// lazily — no stage buffers more than the small fixed look-behind window
// its algorithm needs.
package pipeline

import (
	"bufio"
	"io"

	"github.com/cncmill/gcodeclean/internal/gcodeline"
)

// RawSource pulls one raw text line at a time. ok is false once
// exhausted.
type RawSource func() (string, bool)

// Source pulls one Line at a time. ok is false once exhausted.
type Source func() (gcodeline.Line, bool)

// FromReader adapts an io.Reader into a RawSource, one physical line per
// pull.
func FromReader(r io.Reader) RawSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
}

// FromStrings adapts a slice of raw lines into a RawSource — mainly for
// tests, and for split/merge's in-memory line lists.
func FromStrings(lines []string) RawSource {
	i := 0
	return func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		s := lines[i]
		i++
		return s, true
	}
}

// FromLines adapts a slice of Lines into a Source — for tests.
func FromLines(lines []gcodeline.Line) Source {
	i := 0
	return func() (gcodeline.Line, bool) {
		if i >= len(lines) {
			return gcodeline.Line{}, false
		}
		l := lines[i]
		i++
		return l, true
	}
}

// Collect drains src into a slice. Only ever used in tests and at the
// pipeline's sink; the core itself never buffers an entire stream.
func Collect(src Source) []gcodeline.Line {
	var out []gcodeline.Line
	for {
		l, ok := src()
		if !ok {
			return out
		}
		out = append(out, l)
	}
}

// CollectStrings drains a RawSource into a slice.
func CollectStrings(src RawSource) []string {
	var out []string
	for {
		s, ok := src()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
