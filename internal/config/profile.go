// Package config holds the machining profile that parameterises a clean
// run: units, tolerances, and the minimisation mode. A Profile is a plain
// value, never a package singleton — each workflow invocation builds and
// owns its own.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/cncmill/gcodeclean/internal/geom"
)

// Minimisation selects how aggressively DedupSelectTokens and JoinLines
// compact the output (§6).
type Minimisation int

const (
	MinimisationSoft Minimisation = iota
	MinimisationMedium
	MinimisationHard
	MinimisationCustom
)

func ParseMinimisation(s string) Minimisation {
	switch s {
	case "medium":
		return MinimisationMedium
	case "hard":
		return MinimisationHard
	case "custom":
		return MinimisationCustom
	default:
		return MinimisationSoft
	}
}

// StickyLetters returns the set of letters DedupSelectTokens treats as
// sticky (only re-emitted on change) under m, or custom when m is
// MinimisationCustom.
func (m Minimisation) StickyLetters(custom string) string {
	switch m {
	case MinimisationMedium, MinimisationHard:
		return "ABCDFGHLMNPRSTXYZ"
	case MinimisationCustom:
		return custom
	default:
		return "FZ"
	}
}

// JoinSeparator is the string JoinLines places between tokens.
func (m Minimisation) JoinSeparator() string {
	if m == MinimisationHard {
		return ""
	}
	return " "
}

// Profile is the full set of parameters a clean run needs.
type Profile struct {
	Units         geom.Units
	Tolerance     float64
	ArcTolerance  float64
	ZClamp        float64
	Minimisation  Minimisation
	CustomLetters string
}

// Default returns the mid-range profile: millimetres, tolerance 0.005mm,
// arc tolerance 0.01mm, Z clamp 2mm, soft minimisation.
func Default() Profile {
	return Profile{
		Units:        geom.Millimetres,
		Tolerance:    0.005,
		ArcTolerance: 0.01,
		ZClamp:       2,
		Minimisation: MinimisationSoft,
	}
}

// Normalise clamps Tolerance and ZClamp into their unit-dependent legal
// ranges (§4.3); out-of-range values are clamped, never rejected.
func (p Profile) Normalise() Profile {
	p.Tolerance = geom.ConstrainTolerance(p.Tolerance, p.Units)
	p.ZClamp = geom.ConstrainZClamp(p.ZClamp, p.Units)
	return p
}

// fileProfile is the on-disk TOML shape of a named machine profile.
type fileProfile struct {
	Units         string  `toml:"units"`
	Tolerance     float64 `toml:"tolerance"`
	ArcTolerance  float64 `toml:"arc_tolerance"`
	ZClamp        float64 `toml:"z_clamp"`
	Minimisation  string  `toml:"minimisation"`
	CustomLetters string  `toml:"custom_letters"`
}

// LoadFile reads a TOML machine profile from path, normalising it before
// return.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrapf(err, "config: reading profile %q", path)
	}
	var fp fileProfile
	if err := toml.Unmarshal(data, &fp); err != nil {
		return Profile{}, errors.Wrapf(err, "config: parsing profile %q", path)
	}
	p := Profile{
		Tolerance:     fp.Tolerance,
		ArcTolerance:  fp.ArcTolerance,
		ZClamp:        fp.ZClamp,
		Minimisation:  ParseMinimisation(fp.Minimisation),
		CustomLetters: fp.CustomLetters,
	}
	if fp.Units == "inch" || fp.Units == "in" {
		p.Units = geom.Inches
	}
	return p.Normalise(), nil
}
