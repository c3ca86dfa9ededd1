// Package geom implements §4.3: 3-D coordinates, distance, decimal-place
// counting, tolerance/clamp constraining, three-point circle fitting,
// circle-circle intersection and the clockwise-direction test.
//
// Token values are exact decimals (see internal/token); geometry itself is
// computed in float64 — per §9, binary floating point is reserved for
// intermediate geometry, never for the value compared for equality.
package geom

import (
	"math"

	"github.com/shopspring/decimal"
)

// Axis identifies one of the three linear axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AxisSet is a bitset over {X, Y, Z}.
type AxisSet uint8

const (
	SetX AxisSet = 1 << iota
	SetY
	SetZ
)

func (s AxisSet) Has(a Axis) bool {
	switch a {
	case AxisX:
		return s&SetX != 0
	case AxisY:
		return s&SetY != 0
	default:
		return s&SetZ != 0
	}
}

// Coord is a 3-D point with a presence bitset: only the axes in Set were
// actually populated by the line that produced this Coord.
type Coord struct {
	X, Y, Z float64
	Set     AxisSet
}

// FromDecimal builds a coordinate value from an exact-decimal token value.
func FromDecimal(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func (c Coord) HasX() bool { return c.Set.Has(AxisX) }
func (c Coord) HasY() bool { return c.Set.Has(AxisY) }
func (c Coord) HasZ() bool { return c.Set.Has(AxisZ) }

// WithX returns a copy of c with X set to v and marked present.
func (c Coord) WithX(v float64) Coord { c.X = v; c.Set |= SetX; return c }
func (c Coord) WithY(v float64) Coord { c.Y = v; c.Set |= SetY; return c }
func (c Coord) WithZ(v float64) Coord { c.Z = v; c.Set |= SetZ; return c }

// Sub returns the per-axis difference c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z, Set: c.Set | o.Set}
}

// Distance computes the 3-D Euclidean distance between c and o.
func (c Coord) Distance(o Coord) float64 {
	dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance2D computes the 2-D Euclidean distance between c and o,
// dropping the given axis.
func (c Coord) Distance2D(o Coord, drop Axis) float64 {
	a, b := c.Project2D(drop)
	x, y := o.Project2D(drop)
	dx, dy := a-x, b-y
	return math.Sqrt(dx*dx + dy*dy)
}

// Project2D drops one axis, returning the remaining two in (first, second)
// axis order (X before Y before Z).
func (c Coord) Project2D(drop Axis) (float64, float64) {
	switch drop {
	case AxisX:
		return c.Y, c.Z
	case AxisY:
		return c.X, c.Z
	default:
		return c.X, c.Y
	}
}

// Orthogonal returns the set of axes on which every coordinate in coords
// shares the same value (and is present). An empty slice yields no axes.
func Orthogonal(coords []Coord) AxisSet {
	if len(coords) == 0 {
		return 0
	}
	var result AxisSet
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		same := true
		first := coords[0]
		if !first.Set.Has(axis) {
			same = false
		}
		for _, c := range coords[1:] {
			if !c.Set.Has(axis) || !approxEqual(valueOf(c, axis), valueOf(first, axis)) {
				same = false
				break
			}
		}
		if same {
			result |= bitFor(axis)
		}
	}
	return result
}

func valueOf(c Coord, a Axis) float64 {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

func bitFor(a Axis) AxisSet {
	switch a {
	case AxisX:
		return SetX
	case AxisY:
		return SetY
	default:
		return SetZ
	}
}

const epsilon = 1e-9

func approxEqual(a, b float64) bool { return math.Abs(a-b) < epsilon }

// Angle returns the angle of vector (dx, dy) in degrees, in (-180, 180].
func Angle(dx, dy float64) float64 {
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg <= -180 {
		deg += 360
	}
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// DecimalPlaces counts the trailing-significant digits of d as printed,
// i.e. the number of digits after the decimal point in its canonical
// (trailing-zero-preserving) textual form.
func DecimalPlaces(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}

// Units distinguishes millimetre from inch tolerances (§6).
type Units int

const (
	Millimetres Units = iota
	Inches
)

// ConstrainTolerance clamps t into the unit-dependent general tolerance
// range: [0.001, 0.01] mm or [0.00005, 0.2] inch.
func ConstrainTolerance(t float64, units Units) float64 {
	lo, hi := 0.001, 0.01
	if units == Inches {
		lo, hi = 0.00005, 0.2
	}
	return clamp(t, lo, hi)
}

// ConstrainZClamp clamps z into the unit-dependent vertical clamp range:
// [0.5, 10] mm or [0.02, 0.5] inch.
func ConstrainZClamp(z float64, units Units) float64 {
	lo, hi := 0.5, 10.0
	if units == Inches {
		lo, hi = 0.02, 0.5
	}
	return clamp(z, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
