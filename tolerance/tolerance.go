// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolerance provides the shared floating-point tolerance
// primitives used throughout pwquad: approximate equality, the ≲/≳
// relations, clamping, and the quadratic-root solver. Every
// approximate comparison elsewhere in the module routes through this
// package so that Epsilon is tuned in exactly one place.
package tolerance

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance governing all approximate comparisons and
// quadratic-discriminant acceptance across pwquad.
const Epsilon = 1e-12

// Equal reports whether a and b are within Epsilon of one another.
// Bitwise-equal values (including matching infinities) always
// compare equal, which keeps ±∞ = ±∞ exact and avoids forming ∞ − ∞.
func Equal(a, b float64) bool {
	if a == b {
		return true
	}
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

// LessOrEqual reports whether a ≲ b, i.e. a ≤ b + Epsilon.
func LessOrEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return a <= b+Epsilon
}

// GreaterOrEqual reports whether a ≳ b, the mirror of LessOrEqual.
func GreaterOrEqual(a, b float64) bool {
	return LessOrEqual(b, a)
}

// Clip returns x constrained to [lb, ub].
func Clip(x, lb, ub float64) float64 {
	return math.Min(math.Max(x, lb), ub)
}

// SolveQuadratic returns an unordered pair of roots of
// a·x² + b·x + c = 0, using the Muller pairing to preserve precision
// against catastrophic cancellation.
//
//   - If a == 0 and b == 0, both roots are NaN.
//   - If a == 0, the single root is returned as x1 with x2 = NaN.
//   - Otherwise the discriminant D = b² − 4ac is computed; if
//     D < −Epsilon both roots are NaN, otherwise D is clamped to
//     [0, ∞) before taking the square root.
func SolveQuadratic(a, b, c float64) (x1, x2 float64) {
	if a == 0 {
		if b == 0 {
			return math.NaN(), math.NaN()
		}
		return -c / b, math.NaN()
	}
	d := b*b - 4*a*c
	if d < -Epsilon {
		return math.NaN(), math.NaN()
	}
	d = math.Max(d, 0)
	sqrtD := math.Sqrt(d)
	if b > 0 {
		denom := -b - sqrtD
		x1 = denom / (2 * a)
		x2 = 2 * c / denom
		return x1, x2
	}
	denom := -b + sqrtD
	x1 = denom / (2 * a)
	x2 = 2 * c / denom
	return x1, x2
}
