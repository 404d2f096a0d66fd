// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"math"

	"pwquad/interval"
	"pwquad/quadratic"
	"pwquad/tolerance"
)

const numericalInconsistency = "envelope: no bridge case applies between adjacent pieces"

// bridgeCase computes the pieces that should replace the adjacent
// pair (f, g) in the hull, where f sits immediately to the left of g.
// It reports applied=false when its preconditions don't hold, so the
// driver can fall through to the next case in the sequence. When
// applied, discard signals that f contributes nothing to the
// envelope and should be dropped entirely; the driver then retries
// the bridge one piece deeper into the hull, g unchanged.
type bridgeCase func(f, g quadratic.BoundedQuadratic) (buf *buffer, discard, applied bool)

var bridgeCases = []bridgeCase{
	midpointMidpoint,
	midpointLowerEndpoint,
	midpointUpperEndpoint,
	midpointInfiniteUpper,
	mirrorMidpointCases,
	endpointNoGap,
	endpointGap,
	lowerToUpperChord,
	upperToUpperChord,
	lowerToInfiniteUpperRay,
	upperToInfiniteUpperRay,
	mirrorTailCases,
}

func computeBridge(f, g quadratic.BoundedQuadratic) (*buffer, bool) {
	for _, c := range bridgeCases {
		if buf, discard, applied := c(f, g); applied {
			return buf, discard
		}
	}
	panic(numericalInconsistency)
}

func withinDomain(x, lb, ub float64) bool {
	return tolerance.LessOrEqual(lb, x) && tolerance.LessOrEqual(x, ub)
}

func strictlyInterior(x, lb, ub float64) bool {
	return !tolerance.Equal(x, lb) && !tolerance.Equal(x, ub)
}

// midpointMidpoint is §4.G case 1: both f and g have interior
// curvature, and the bridge is the common tangent line touching each
// at an interior point.
func midpointMidpoint(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if !(f.P > 0 && g.P > 0) {
		return nil, false, false
	}
	a := f.P*f.P/g.P - f.P
	b := (f.P / g.P) * (f.Q - g.Q)
	c := f.R - g.R + (f.Q-g.Q)*(f.Q-g.Q)/(4*g.P)
	x1, x2 := tolerance.SolveQuadratic(a, b, c)
	for _, xf := range []float64{x1, x2} {
		if math.IsNaN(xf) || !withinDomain(xf, f.Lb, f.Ub) {
			continue
		}
		xfC := tolerance.Clip(xf, f.Lb, f.Ub)
		xg := (f.P/g.P)*xfC + (f.Q-g.Q)/(2*g.P)
		if !withinDomain(xg, g.Lb, g.Ub) {
			continue
		}
		xgC := tolerance.Clip(xg, g.Lb, g.Ub)

		buf := newBuffer(3)
		buf.Push(f.Restrict(interval.New(f.Lb, xfC)))
		if !tolerance.Equal(xfC, xgC) {
			buf.Push(quadratic.Line(xfC, f.Eval(xfC), xgC, g.Eval(xgC)).Restrict(interval.New(xfC, xgC)))
		}
		buf.Push(g.Restrict(interval.New(xgC, g.Ub)))

		discard := tolerance.Equal(xfC, f.Lb)
		return buf, discard, true
	}
	return nil, false, false
}

// tangentTo fixes the touch point of f's tangent at g's bound xg,
// solving for x_f such that the tangent to f at x_f passes through
// (xg, g.Eval(xg)).
func tangentTo(f, g quadratic.BoundedQuadratic, xg float64) (float64, bool) {
	if f.P <= 0 {
		return 0, false
	}
	a := f.P
	b := -2 * f.P * xg
	c := g.Eval(xg) - f.R - f.Q*xg
	x1, x2 := tolerance.SolveQuadratic(a, b, c)
	for _, xf := range []float64{x1, x2} {
		if math.IsNaN(xf) || !withinDomain(xf, f.Lb, f.Ub) {
			continue
		}
		return tolerance.Clip(xf, f.Lb, f.Ub), true
	}
	return 0, false
}

// midpointLowerEndpoint is §4.G case 2: f's tangent touches g at g's
// lower (near) endpoint, so f and g each survive, joined by the
// tangent segment.
func midpointLowerEndpoint(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	xf, ok := tangentTo(f, g, g.Lb)
	if !ok {
		return nil, false, false
	}
	tangent := f.Tangent(xf)
	if !quadratic.LessOrEqual(tangent.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(3)
	buf.Push(f.Restrict(interval.New(f.Lb, xf)))
	if !tolerance.Equal(xf, g.Lb) {
		buf.Push(tangent.Restrict(interval.New(xf, g.Lb)))
	}
	buf.Push(g)
	return buf, tolerance.Equal(xf, f.Lb), true
}

// midpointUpperEndpoint is §4.G case 3: f's tangent touches g at g's
// upper (finite) endpoint, dominating g entirely; g is dropped.
func midpointUpperEndpoint(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if math.IsInf(g.Ub, 1) {
		return nil, false, false
	}
	xf, ok := tangentTo(f, g, g.Ub)
	if !ok {
		return nil, false, false
	}
	tangent := f.Tangent(xf)
	if !quadratic.LessOrEqual(tangent.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(2)
	buf.Push(f.Restrict(interval.New(f.Lb, xf)))
	buf.Push(tangent.Restrict(interval.New(xf, g.Ub)))
	return buf, tolerance.Equal(xf, f.Lb), true
}

// midpointInfiniteUpper is §4.G case 4: g is an affine ray to +Inf;
// f's tangent with matching slope takes over from x_f onward.
func midpointInfiniteUpper(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if f.P <= 0 || !math.IsInf(g.Ub, 1) || g.P != 0 {
		return nil, false, false
	}
	xf := (g.Q - f.Q) / (2 * f.P)
	if !withinDomain(xf, f.Lb, f.Ub) {
		return nil, false, false
	}
	xfC := tolerance.Clip(xf, f.Lb, f.Ub)
	tangent := f.Tangent(xfC)
	if !quadratic.LessOrEqual(tangent.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(2)
	buf.Push(f.Restrict(interval.New(f.Lb, xfC)))
	buf.Push(tangent.Restrict(interval.New(xfC, math.Inf(1))))
	return buf, tolerance.Equal(xfC, f.Lb), true
}

// mirrorMidpointCases handles g's midpoint touching one of f's
// endpoints, by reversing both pieces (which also swaps their roles
// and exchanges left/right) and re-running cases 2-4, then reversing
// the produced bridge back into the original frame.
func mirrorMidpointCases(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	fm, gm := g.Reverse(), f.Reverse()
	for _, c := range []bridgeCase{midpointLowerEndpoint, midpointUpperEndpoint, midpointInfiniteUpper} {
		if buf, discard, applied := c(fm, gm); applied {
			buf.Reverse()
			return buf, discard, true
		}
	}
	return nil, false, false
}

// endpointNoGap is §4.G case 6a: f and g already meet with no gap.
// If either degenerates to a point, only the lower-valued of the two
// survives; otherwise both survive provided the corner doesn't turn
// concave (left derivative <= right derivative).
func endpointNoGap(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if !tolerance.Equal(f.Ub, g.Lb) {
		return nil, false, false
	}
	if f.IsPoint() || g.IsPoint() {
		buf := newBuffer(1)
		if f.Eval(f.Ub) <= g.Eval(g.Lb) {
			buf.Push(f)
		} else {
			buf.Push(g)
		}
		return buf, false, true
	}
	if !tolerance.Equal(f.Eval(f.Ub), g.Eval(g.Lb)) {
		return nil, false, false
	}
	leftDeriv := f.Derivative().Eval(f.Ub)
	rightDeriv := g.Derivative().Eval(g.Lb)
	if !tolerance.LessOrEqual(leftDeriv, rightDeriv) {
		return nil, true, true
	}
	buf := newBuffer(2)
	buf.Push(f)
	buf.Push(g)
	return buf, false, true
}

// endpointGap is §4.G case 6b: f and g are separated by a gap; the
// chord joining their near endpoints bridges them when it stays
// below both over their own domains.
func endpointGap(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if !(f.Ub < g.Lb) {
		return nil, false, false
	}
	chord := quadratic.Line(f.Ub, f.Eval(f.Ub), g.Lb, g.Eval(g.Lb))
	if !quadratic.LessOrEqual(chord.Restrict(f.Domain()), f) || !quadratic.LessOrEqual(chord.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(3)
	buf.Push(f)
	buf.Push(chord.Restrict(interval.New(f.Ub, g.Lb)))
	buf.Push(g)
	return buf, false, true
}

// lowerToUpperChord is §4.G case 6c: a rare configuration where f's
// lower bound and g's upper bound, both finite, are joined directly.
func lowerToUpperChord(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if math.IsInf(f.Lb, -1) || math.IsInf(g.Ub, 1) || tolerance.Equal(f.Lb, g.Ub) {
		return nil, false, false
	}
	lo, hi := f.Lb, g.Ub
	if lo > hi {
		lo, hi = hi, lo
	}
	chord := quadratic.Line(f.Lb, f.Eval(f.Lb), g.Ub, g.Eval(g.Ub)).Restrict(interval.New(lo, hi))
	if !quadratic.LessOrEqual(chord.Restrict(f.Domain()), f) || !quadratic.LessOrEqual(chord.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(1)
	buf.Push(chord)
	return buf, false, true
}

// upperToUpperChord is §4.G case 6d: f's and g's upper bounds
// (g.Ub finite, distinct from f.Ub) are joined by a chord that
// extends the hull from f.Ub to g.Ub.
func upperToUpperChord(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if math.IsInf(g.Ub, 1) || tolerance.Equal(f.Ub, g.Ub) {
		return nil, false, false
	}
	lo, hi := f.Ub, g.Ub
	if lo > hi {
		lo, hi = hi, lo
	}
	chord := quadratic.Line(f.Ub, f.Eval(f.Ub), g.Ub, g.Eval(g.Ub)).Restrict(interval.New(lo, hi))
	if !quadratic.LessOrEqual(chord.Restrict(f.Domain()), f) || !quadratic.LessOrEqual(chord.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(2)
	buf.Push(f)
	buf.Push(chord)
	return buf, false, true
}

// lowerToInfiniteUpperRay is §4.G case 6e: g is an affine ray to
// +Inf with the same eventual slope the envelope must take; the
// bridge is a single ray anchored at f's lower bound, replacing both
// pieces entirely.
func lowerToInfiniteUpperRay(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if !math.IsInf(g.Ub, 1) || g.P != 0 || math.IsInf(f.Lb, -1) {
		return nil, false, false
	}
	ray := quadratic.NewReal(0, g.Q, f.Eval(f.Lb)-g.Q*f.Lb).Restrict(interval.New(f.Lb, math.Inf(1)))
	if !quadratic.LessOrEqual(ray.Restrict(f.Domain()), f) || !quadratic.LessOrEqual(ray.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(1)
	buf.Push(ray)
	return buf, false, true
}

// upperToInfiniteUpperRay is §4.G case 6f: like 6e, but the ray
// starts at f.Ub instead, so f itself survives ahead of it.
func upperToInfiniteUpperRay(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	if !math.IsInf(g.Ub, 1) || g.P != 0 {
		return nil, false, false
	}
	ray := quadratic.NewReal(0, g.Q, f.Eval(f.Ub)-g.Q*f.Ub).Restrict(interval.New(f.Ub, math.Inf(1)))
	if !quadratic.LessOrEqual(ray.Restrict(g.Domain()), g) {
		return nil, false, false
	}
	buf := newBuffer(2)
	buf.Push(f)
	buf.Push(ray)
	return buf, false, true
}

// mirrorTailCases applies 6c-6f in the mirror direction, covering
// the symmetric configurations anchored at f's lower bound or an
// infinite lower bound on g's side.
func mirrorTailCases(f, g quadratic.BoundedQuadratic) (*buffer, bool, bool) {
	fm, gm := g.Reverse(), f.Reverse()
	for _, c := range []bridgeCase{upperToUpperChord, lowerToUpperChord, lowerToInfiniteUpperRay, upperToInfiniteUpperRay} {
		if buf, discard, applied := c(fm, gm); applied {
			buf.Reverse()
			return buf, discard, true
		}
	}
	return nil, false, false
}
