// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package piecewise implements PiecewiseQuadratic, an ordered
// sequence of BoundedQuadratic pieces evaluated with first-match-wins
// semantics. It provides construction, queries, the structural
// Simplify reducer, piecewise-distributed algebra and reshapes, the
// k-way merge-sum engine, and the piecewise Minimize/Prox
// operations. The convex-envelope engine lives in the sibling
// envelope package, which depends on this one.
package piecewise

import (
	"math"
	"strings"

	"pwquad/interval"
	"pwquad/quadratic"
	"pwquad/tolerance"
)

// PiecewiseQuadratic is an ordered, finite sequence of
// BoundedQuadratic pieces. Evaluation at x returns the value of the
// first piece (in order) whose domain contains x; where pieces
// overlap, "pointwise minimum" semantics must be realized by the
// caller through Simplify or by constructing overlaps in min-first
// order.
type PiecewiseQuadratic struct {
	Pieces []quadratic.BoundedQuadratic
}

// New builds a PiecewiseQuadratic from pieces. If simplifyResult is
// true, the result is passed through Simplify before being returned.
func New(pieces []quadratic.BoundedQuadratic, simplifyResult bool) PiecewiseQuadratic {
	out := make([]quadratic.BoundedQuadratic, len(pieces))
	copy(out, pieces)
	pwq := PiecewiseQuadratic{Pieces: out}
	if simplifyResult {
		return Simplify(pwq)
	}
	return pwq
}

// Indicator returns the PiecewiseQuadratic with a single piece
// (lb, ub, 0, 0, 0): zero on [lb, ub], +Inf elsewhere.
func Indicator(lb, ub float64) PiecewiseQuadratic {
	return PiecewiseQuadratic{Pieces: []quadratic.BoundedQuadratic{quadratic.New(lb, ub, 0, 0, 0)}}
}

// Zero returns the PiecewiseQuadratic that is identically zero on
// the whole real line.
func Zero() PiecewiseQuadratic {
	return Indicator(math.Inf(-1), math.Inf(1))
}

// IsEmpty reports whether f has no non-empty pieces.
func (f PiecewiseQuadratic) IsEmpty() bool {
	for _, p := range f.Pieces {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// IsPoint reports whether f reduces to a single point piece.
func (f PiecewiseQuadratic) IsPoint() bool {
	return len(f.Pieces) == 1 && f.Pieces[0].IsPoint()
}

// Domain returns the sorted, merged union of the domains of f's
// non-empty pieces. Adjacent or overlapping piece domains are fused
// into a single Interval; gaps between pieces are preserved as
// separate intervals in the result.
func (f PiecewiseQuadratic) Domain() []interval.Interval {
	var doms []interval.Interval
	for _, p := range f.Pieces {
		if !p.IsEmpty() {
			doms = append(doms, p.Domain())
		}
	}
	if len(doms) == 0 {
		return nil
	}
	sortIntervals(doms)
	merged := []interval.Interval{doms[0]}
	for _, d := range doms[1:] {
		last := &merged[len(merged)-1]
		if tolerance.LessOrEqual(d.Lb, last.Ub) {
			if d.Ub > last.Ub {
				last.Ub = d.Ub
			}
			continue
		}
		merged = append(merged, d)
	}
	return merged
}

func sortIntervals(ivs []interval.Interval) {
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0 && ivs[j].Lb < ivs[j-1].Lb; j-- {
			ivs[j], ivs[j-1] = ivs[j-1], ivs[j]
		}
	}
}

// Eval returns f(x): the value of the first piece (in order)
// containing x, or +Inf if no piece contains x.
func (f PiecewiseQuadratic) Eval(x float64) float64 {
	for _, p := range f.Pieces {
		if p.Domain().Contains(x) {
			return p.Eval(x)
		}
	}
	return math.Inf(1)
}

// Values returns f evaluated at every point in xs.
func (f PiecewiseQuadratic) Values(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f.Eval(x)
	}
	return out
}

// IsConvex reports whether f is convex: every piece is convex, every
// adjacent pair of pieces is continuous and overlapping, and the
// left derivative does not exceed the right derivative at each
// join. An empty PiecewiseQuadratic is treated as vacuously convex.
func IsConvex(f PiecewiseQuadratic) bool {
	if len(f.Pieces) == 0 {
		return true
	}
	for _, p := range f.Pieces {
		if !p.IsConvex() {
			return false
		}
	}
	for i := 1; i < len(f.Pieces); i++ {
		prev, cur := f.Pieces[i-1], f.Pieces[i]
		if !prev.ContinuousAndOverlapping(cur) {
			return false
		}
		leftDeriv := prev.Derivative().Eval(prev.Ub)
		rightDeriv := cur.Derivative().Eval(cur.Lb)
		if !tolerance.LessOrEqual(leftDeriv, rightDeriv) {
			return false
		}
	}
	return true
}

// Push appends g to the end of f. If simplifyResult is true,
// Simplify is run over the tail affected by the append (the last
// two pieces), matching the spec's "simplify the affected tail"
// contract for push/append operations.
func (f PiecewiseQuadratic) Push(g quadratic.BoundedQuadratic, simplifyResult bool) PiecewiseQuadratic {
	pieces := append(append([]quadratic.BoundedQuadratic(nil), f.Pieces...), g)
	if simplifyResult {
		start := max(len(pieces)-2, 0)
		tail := Simplify(PiecewiseQuadratic{Pieces: pieces[start:]})
		pieces = append(pieces[:start:start], tail.Pieces...)
	}
	return PiecewiseQuadratic{Pieces: pieces}
}

// mapPieces returns a new PiecewiseQuadratic with op applied to
// every piece of f, in the same order.
func (f PiecewiseQuadratic) mapPieces(op func(quadratic.BoundedQuadratic) quadratic.BoundedQuadratic) PiecewiseQuadratic {
	out := make([]quadratic.BoundedQuadratic, len(f.Pieces))
	for i, p := range f.Pieces {
		out[i] = op(p)
	}
	return PiecewiseQuadratic{Pieces: out}
}

// Mul returns the scalar multiple alpha*f, distributed piece-wise.
func (f PiecewiseQuadratic) Mul(alpha float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Mul(alpha) })
}

// Neg returns -f. Every piece must be affine (see
// quadratic.BoundedQuadratic.Neg).
func (f PiecewiseQuadratic) Neg() PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Neg() })
}

// AddConst returns f + a, distributed piece-wise.
func (f PiecewiseQuadratic) AddConst(a float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.AddConst(a) })
}

// Shift returns f(x - delta), distributed piece-wise.
func (f PiecewiseQuadratic) Shift(delta float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Shift(delta) })
}

// Tilt returns f(x) + alpha*x, distributed piece-wise.
func (f PiecewiseQuadratic) Tilt(alpha float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Tilt(alpha) })
}

// Scale returns f(alpha*x), distributed piece-wise.
func (f PiecewiseQuadratic) Scale(alpha float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Scale(alpha) })
}

// Perspective returns alpha*f(x/alpha), distributed piece-wise.
func (f PiecewiseQuadratic) Perspective(alpha float64) PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Perspective(alpha) })
}

// RestrictDom returns f with every piece restricted to dom,
// dropping pieces whose restriction would be empty rather than
// panicking (a PiecewiseQuadratic, unlike a lone BoundedQuadratic,
// may legitimately lose coverage under restriction).
func (f PiecewiseQuadratic) RestrictDom(dom interval.Interval) PiecewiseQuadratic {
	var out []quadratic.BoundedQuadratic
	for _, p := range f.Pieces {
		newDom := p.Domain().Intersect(dom)
		if newDom.IsEmpty() {
			continue
		}
		out = append(out, quadratic.New(newDom.Lb, newDom.Ub, p.P, p.Q, p.R))
	}
	return PiecewiseQuadratic{Pieces: out}
}

// ExtendDom returns f with every piece's domain extended to the
// whole real line.
func (f PiecewiseQuadratic) ExtendDom() PiecewiseQuadratic {
	return f.mapPieces(func(p quadratic.BoundedQuadratic) quadratic.BoundedQuadratic { return p.Extend() })
}

// Reverse returns f(-x): every piece reversed and the piece
// ordering itself reversed, so the result remains left-to-right
// ordered by domain.
func (f PiecewiseQuadratic) Reverse() PiecewiseQuadratic {
	n := len(f.Pieces)
	out := make([]quadratic.BoundedQuadratic, n)
	for i, p := range f.Pieces {
		out[n-1-i] = p.Reverse()
	}
	return PiecewiseQuadratic{Pieces: out}
}

// Add returns f + g as a PiecewiseQuadratic, equivalent to
// Sum([]PiecewiseQuadratic{f, g}).
func (f PiecewiseQuadratic) Add(g PiecewiseQuadratic) PiecewiseQuadratic {
	return Sum([]PiecewiseQuadratic{f, g})
}

// String renders every piece using the spec's display contract,
// one per line.
func (f PiecewiseQuadratic) String() string {
	lines := make([]string, len(f.Pieces))
	for i, p := range f.Pieces {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n")
}
