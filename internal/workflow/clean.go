// Package workflow wires the internal/pipeline stages into the fixed
// "clean" composition §4.5 mandates: per-line canonicalisation, then
// file-framing, then motion rewriting, then presentation, then assembly.
// The order is a contract, not a convenience — see the comment on Clean.
package workflow

import (
	"github.com/cncmill/gcodeclean/internal/annotate"
	"github.com/cncmill/gcodeclean/internal/config"
	"github.com/cncmill/gcodeclean/internal/modal"
	"github.com/cncmill/gcodeclean/internal/pipeline"
)

// Options gates the two steps the source leaves optional: stripping
// line numbers outright, and deduplicating repeated travelling (rapid)
// moves immediately after Z-clamping, before any motion rewriting.
// Dictionary is nil to skip the Annotate stage entirely.
type Options struct {
	StripLineNumbers bool
	DedupTravelling  bool
	Dictionary       *annotate.Dictionary
}

// Clean runs raw through the full cleaning pipeline for profile p, in
// the order: tokenise, [strip line numbers], per-line dedup, augment,
// single-command-per-line, context dedup; demarcation, preamble
// injection; Z-clamp, [travel dedup], arc-R→IJK, plain-line dedup,
// short-arc simplification, line-to-arc, clip, repeated-token dedup,
// plain-line dedup again, travel-divider detection, collinear dedup;
// select-token dedup, [annotate]; join. Each stage owns whatever state
// it needs; the only value threaded across stage boundaries here is the
// modal context, shared by DedupContext and InjectPreamble exactly as
// §4.4's contract requires.
func Clean(p config.Profile, opts Options, raw pipeline.RawSource) pipeline.RawSource {
	src := pipeline.TokeniseToLine(raw)
	if opts.StripLineNumbers {
		src = pipeline.EliminateLineNumbers(src)
	}
	src = pipeline.DedupRepeatedTokens(src)
	src = pipeline.Augment(src)
	src = pipeline.SingleCommandPerLine(src)

	ctx := modal.NewWithDefaultPreamble()
	src = pipeline.DedupContext(&ctx)(src)

	src = pipeline.FileDemarcation(p.ZClamp)(src)
	src = pipeline.InjectPreamble(&ctx, p.ZClamp)(src)

	src = pipeline.ZClamp(p.ZClamp)(src)
	if opts.DedupTravelling {
		src = pipeline.DedupLine(src)
	}
	src = pipeline.ConvertArcRadiusToCenter(src)
	src = pipeline.DedupLine(src)
	src = pipeline.SimplifyShortArcs(p.ArcTolerance)(src)
	src = pipeline.DedupLinearToArc(p.ArcTolerance)(src)
	src = pipeline.Clip(p.Tolerance, p.Units)(src)
	src = pipeline.DedupRepeatedTokens(src)
	src = pipeline.DedupLine(src)
	src = pipeline.DetectTravelling(src)
	src = pipeline.DedupLinear(p.Tolerance)(src)

	src = pipeline.DedupSelectTokens(p.Minimisation.StickyLetters(p.CustomLetters))(src)
	if opts.Dictionary != nil {
		src = pipeline.Annotate(*opts.Dictionary)(src)
	}

	return pipeline.JoinLines(p.Minimisation.JoinSeparator())(src)
}
