package workflow

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cncmill/gcodeclean/internal/config"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

var dividerRe = regexp.MustCompile(`\(\|\|Travelling\|\|`)

func TestCleanInjectsFramingAndDetectsTravel(t *testing.T) {
	raw := pipeline.FromStrings([]string{
		"G21",
		"G0 Z5",
		"G1 Z-1",
		"G1 X10 Y0",
		"G1 X10 Y10",
	})

	out := pipeline.CollectStrings(Clean(config.Default(), Options{}, raw))
	require.NotEmpty(t, out)

	joined := ""
	for _, l := range out {
		joined += l + "\n"
	}

	assert.Contains(t, joined, pipeline.PreambleCloseMarker)
	assert.Contains(t, joined, pipeline.PostambleCloseMarker)
	assert.Equal(t, "M30", out[len(out)-1])
	assert.True(t, dividerRe.MatchString(joined), "expected a travel-divider comment for the final lift-off")
}

func TestCleanEmptyInputStillClosesWithPostamble(t *testing.T) {
	// FileDemarcation appends a postamble once the upstream stream ends
	// regardless of whether anything was ever read from it; since no
	// motion command is ever seen, no preamble is injected.
	raw := pipeline.FromStrings(nil)
	out := pipeline.CollectStrings(Clean(config.Default(), Options{}, raw))
	require.Len(t, out, 3)
	assert.Equal(t, pipeline.PostambleOpenMarker, out[0])
	assert.Equal(t, pipeline.PostambleCloseMarker, out[1])
	assert.Equal(t, "M30", out[2])
}

func TestCleanStripLineNumbersOption(t *testing.T) {
	raw := pipeline.FromStrings([]string{
		"N10 G21",
		"N20 G1 X10 Y10",
	})
	out := pipeline.CollectStrings(Clean(config.Default(), Options{StripLineNumbers: true}, raw))

	joined := ""
	for _, l := range out {
		joined += l + " "
	}
	assert.NotContains(t, joined, "N10")
	assert.NotContains(t, joined, "N20")
}
