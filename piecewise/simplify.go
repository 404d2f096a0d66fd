// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import (
	"pwquad/quadratic"
	"pwquad/tolerance"
)

// Simplify is the structural reducer described in the spec: scanning
// left to right with an accumulator whose last piece is prev, it
// drops empty pieces, collapses redundant point pieces, fuses
// coefficient-identical adjacent pieces, and resolves point/non-point
// collisions at shared boundaries. It exists to remove the
// bookkeeping artifacts that Sum and Envelope leave behind
// (vestigial zero-width pieces, duplicate affine segments from
// bridge tangents); it is not re-run automatically by either engine.
func Simplify(f PiecewiseQuadratic) PiecewiseQuadratic {
	var out []quadratic.BoundedQuadratic
	for _, cur := range f.Pieces {
		if cur.IsEmpty() {
			// Rule 1: drop empty pieces.
			continue
		}
		if len(out) == 0 {
			out = append(out, cur)
			continue
		}
		prev := out[len(out)-1]

		switch {
		case prev.IsPoint() && cur.IsPoint() && tolerance.Equal(prev.Lb, cur.Lb):
			// Rule 2: same point twice, keep the smaller value.
			if cur.Eval(cur.Lb) < prev.Eval(prev.Lb) {
				out[len(out)-1] = cur
			}

		case prev.IsPoint() != cur.IsPoint() && prev.ContinuousAndOverlapping(cur):
			// Rule 3: one is a point, continuous with the other;
			// drop the point, keep the non-point over the union.
			nonPoint := cur
			if cur.IsPoint() {
				nonPoint = prev
			}
			out[len(out)-1] = quadratic.New(prev.Lb, cur.Ub, nonPoint.P, nonPoint.Q, nonPoint.R)

		case coefficientIdentical(prev, cur) && tolerance.Equal(prev.Ub, cur.Lb):
			// Rule 4: coefficient-identical adjacent pieces, fuse.
			src := cur
			if cur.IsPoint() {
				src = prev
			}
			out[len(out)-1] = quadratic.New(prev.Lb, cur.Ub, src.P, src.Q, src.R)

		case tolerance.Equal(prev.Ub, cur.Lb) && prev.IsPoint() != cur.IsPoint():
			// Rule 5: boundaries coincide, exactly one is a point.
			// If the point is prev, it already wins any tie at the
			// shared x by first-match order: fold it away only when
			// the incoming non-point is at least as good there,
			// otherwise keep both (the point still wins at that one
			// x). If the point is cur, there is no way to splice it
			// ahead of the already-committed prev, so it is dropped.
			if cur.IsPoint() {
				continue
			}
			point := prev
			meetX := point.Lb
			if cur.Eval(meetX) <= point.Eval(meetX) {
				out[len(out)-1] = cur
			} else {
				out = append(out, cur)
			}

		default:
			// Rule 6: no redundancy detected, append unchanged.
			out = append(out, cur)
		}
	}
	return PiecewiseQuadratic{Pieces: out}
}

// coefficientIdentical reports whether f and g have the same
// coefficients once extended to the whole real line, i.e. they are
// the same underlying quadratic regardless of domain.
func coefficientIdentical(f, g quadratic.BoundedQuadratic) bool {
	return tolerance.Equal(f.P, g.P) && tolerance.Equal(f.Q, g.Q) && tolerance.Equal(f.R, g.R)
}
