// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import (
	"math"

	"pwquad/tolerance"
)

const emptyProxTarget = "piecewise: prox of a function with no pieces is undefined"

// Prox returns the proximal operator of f at u with parameter rho:
// argmin over x in dom(f) of f(x) + (rho/2)(x - u)^2. f must be
// convex (callers should Simplify(Envelope(f)) first if needed); the
// caller's responsibility to ensure that, per the spec, is not
// checked here.
//
// Each piece's augmented objective has linear derivative with slope
// pAdj = 2p + rho and intercept q, giving a feasibility band
// [pAdj*lb + q, pAdj*ub + q] at that piece. Sweeping pieces left to
// right and tracking the previous band's upper edge: if rho*u falls
// in the gap before the current band, the answer is this piece's
// lower bound; if it falls inside the band, the answer solves the
// band equation directly. Falling through returns the last piece's
// upper bound.
func (f PiecewiseQuadratic) Prox(u, rho float64) float64 {
	if len(f.Pieces) == 0 {
		panic(emptyProxTarget)
	}
	target := rho * u
	ubPrev := math.Inf(-1)
	last := f.Pieces[len(f.Pieces)-1]

	for _, p := range f.Pieces {
		if p.IsEmpty() {
			continue
		}
		pAdj := 2*p.P + rho
		lbBand := pAdj*p.Lb + p.Q
		ubBand := pAdj*p.Ub + p.Q

		if tolerance.LessOrEqual(ubPrev, target) && tolerance.LessOrEqual(target, lbBand) {
			return p.Lb
		}
		if tolerance.LessOrEqual(lbBand, target) && tolerance.LessOrEqual(target, ubBand) {
			return (target - p.Q) / pAdj
		}
		ubPrev = ubBand
	}
	return last.Ub
}
