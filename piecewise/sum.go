// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"pwquad/interval"
	"pwquad/quadratic"
)

// cursor tracks one input's sweep position through Sum: which piece
// is active, and whether the input has been exhausted. It is the
// per-input state the spec's merge-sum algorithm calls
// (active_piece_index, active_piece, more).
type cursor struct {
	pieces []quadratic.BoundedQuadratic
	idx    int
	alive  bool
}

func newCursor(pieces []quadratic.BoundedQuadratic) *cursor {
	return &cursor{pieces: pieces, alive: len(pieces) > 0}
}

func (c *cursor) piece() quadratic.BoundedQuadratic {
	return c.pieces[c.idx]
}

// domain returns the active piece's domain, or the empty interval
// once the cursor is dead. Treating a dead cursor's domain as empty
// means every subsequent candidate intersection is empty too, so no
// further output is emitted for that input without needing a
// separate "is anything still defined" check at each step.
func (c *cursor) domain() interval.Interval {
	if !c.alive {
		return interval.Interval{Lb: math.Inf(1), Ub: math.Inf(-1)}
	}
	return c.pieces[c.idx].Domain()
}

func (c *cursor) advance() {
	c.idx++
	if c.idx >= len(c.pieces) {
		c.alive = false
	}
}

// workspace is the preallocated k-length scratch Sum reuses across
// its sweep: per-input cursors plus the coefficient accumulation
// buffer, avoiding repeated allocation in the inner loop.
type workspace struct {
	cursors []*cursor
	coeffs  [][]float64
}

func newWorkspace(inputs []PiecewiseQuadratic) *workspace {
	w := &workspace{
		cursors: make([]*cursor, len(inputs)),
		coeffs:  make([][]float64, len(inputs)),
	}
	for i, in := range inputs {
		w.cursors[i] = newCursor(in.Pieces)
		w.coeffs[i] = make([]float64, 3)
	}
	return w
}

func (w *workspace) anyAlive() bool {
	for _, c := range w.cursors {
		if c.alive {
			return true
		}
	}
	return false
}

// sumCoefficients sums the P, Q, R of every active piece using
// floats.Add, the same elementwise-slice-sum idiom the teacher
// exposes for aggregating float64 data without per-call allocation.
func (w *workspace) sumCoefficients() (p, q, r float64) {
	dst := []float64{0, 0, 0}
	for i, c := range w.cursors {
		pc := c.piece()
		w.coeffs[i][0], w.coeffs[i][1], w.coeffs[i][2] = pc.P, pc.Q, pc.R
	}
	for _, c := range w.coeffs {
		floats.Add(dst, c)
	}
	return dst[0], dst[1], dst[2]
}

// Sum combines k piecewise quadratics into their pointwise sum by
// sweeping a shared breakpoint schedule: at each step it emits a
// piece covering the intersection of every input's active domain
// (skipping the step when that intersection is empty), then
// advances every cursor whose active piece ends exactly at the
// nearest upcoming breakpoint. A single input is copied through
// unchanged; inputs with disjoint domains produce an empty result.
// The output is not re-simplified; call Simplify if that is needed.
func Sum(inputs []PiecewiseQuadratic) PiecewiseQuadratic {
	switch len(inputs) {
	case 0:
		return PiecewiseQuadratic{}
	case 1:
		out := make([]quadratic.BoundedQuadratic, len(inputs[0].Pieces))
		copy(out, inputs[0].Pieces)
		return PiecewiseQuadratic{Pieces: out}
	}

	w := newWorkspace(inputs)
	var out []quadratic.BoundedQuadratic

	for w.anyAlive() {
		dom := w.cursors[0].domain()
		for _, c := range w.cursors[1:] {
			dom = dom.Intersect(c.domain())
		}
		if !dom.IsEmpty() {
			// dom.IsEmpty() is false only when every cursor contributed
			// a real domain to the intersection, so sumCoefficients'
			// c.piece() calls below are all in bounds.
			p, q, r := w.sumCoefficients()
			out = append(out, quadratic.New(dom.Lb, dom.Ub, p, q, r))
		}

		uStar := math.Inf(1)
		for _, c := range w.cursors {
			if c.alive && c.piece().Ub < uStar {
				uStar = c.piece().Ub
			}
		}
		for _, c := range w.cursors {
			if c.alive && c.piece().Ub == uStar {
				c.advance()
			}
		}
	}

	return PiecewiseQuadratic{Pieces: out}
}
