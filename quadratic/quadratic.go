// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quadratic implements BoundedQuadratic, a single quadratic
// piece p·x² + q·x + r restricted to a closed domain [lb, ub]. It
// provides the piece-level algebra and affine-domain reshapes
// (shift, scale, tilt, perspective, reverse, restriction) that
// PiecewiseQuadratic, the merge-sum engine and the envelope engine
// build on.
package quadratic

import (
	"fmt"
	"math"

	"pwquad/interval"
	"pwquad/tolerance"
)

const (
	nonFiniteCoefficient   = "quadratic: non-finite coefficient"
	nanBound               = "quadratic: NaN bound"
	negationRequiresAffine = "quadratic: negation requires an affine (p=0) piece"
	zeroScaleFactor        = "quadratic: scale factor must be non-zero"
	equalAbscissae         = "quadratic: line requires distinct abscissae"
	lowerOperandNotAffine  = "quadratic: order relation requires an affine lower operand"
	emptyRestriction       = "quadratic: restrict_dom yields empty domain"
)

// BoundedQuadratic is the function p·x² + q·x + r restricted to the
// closed interval [Lb, Ub]; it evaluates to +Inf outside that
// interval. P, Q and R must always be finite; Lb and Ub may be
// infinite but never NaN.
type BoundedQuadratic struct {
	Lb, Ub float64
	P, Q, R float64
}

func checkCoefficients(p, q, r float64) {
	if !isFinite(p) || !isFinite(q) || !isFinite(r) {
		panic(nonFiniteCoefficient)
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// New returns the piece p·x² + q·x + r on [lb, ub]. It panics if any
// of p, q, r is non-finite or if lb or ub is NaN.
func New(lb, ub, p, q, r float64) BoundedQuadratic {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		panic(nanBound)
	}
	checkCoefficients(p, q, r)
	return BoundedQuadratic{Lb: lb, Ub: ub, P: p, Q: q, R: r}
}

// NewReal returns p·x² + q·x + r over the whole real line.
func NewReal(p, q, r float64) BoundedQuadratic {
	return New(math.Inf(-1), math.Inf(1), p, q, r)
}

// OnInterval returns p·x² + q·x + r restricted to dom.
func OnInterval(dom interval.Interval, p, q, r float64) BoundedQuadratic {
	return New(dom.Lb, dom.Ub, p, q, r)
}

// Domain returns the piece's domain as an Interval.
func (f BoundedQuadratic) Domain() interval.Interval {
	return interval.Interval{Lb: f.Lb, Ub: f.Ub}
}

// IsEmpty reports whether f's domain is empty.
func (f BoundedQuadratic) IsEmpty() bool {
	return f.Domain().IsEmpty()
}

// IsPoint reports whether f's domain is an exact singleton.
func (f BoundedQuadratic) IsPoint() bool {
	return f.Domain().IsPoint()
}

// IsAlmostPoint reports whether f's domain has width within
// tolerance.Epsilon of zero.
func (f BoundedQuadratic) IsAlmostPoint() bool {
	return f.Domain().IsAlmostPoint()
}

// IsConvex reports whether f is convex on its domain, i.e. P >= 0.
func (f BoundedQuadratic) IsConvex() bool {
	return f.P >= 0
}

// IsAffine reports whether f has no quadratic term.
func (f BoundedQuadratic) IsAffine() bool {
	return f.P == 0
}

// Eval returns f(x): p·x² + q·x + r for x in [Lb, Ub], +Inf
// otherwise.
func (f BoundedQuadratic) Eval(x float64) float64 {
	if !f.Domain().Contains(x) {
		return math.Inf(1)
	}
	return f.P*x*x + f.Q*x + f.R
}

// Equal reports whether f and g are approximately equal: all five
// fields agree within tolerance.Epsilon (or are bitwise equal).
func (f BoundedQuadratic) Equal(g BoundedQuadratic) bool {
	return tolerance.Equal(f.Lb, g.Lb) &&
		tolerance.Equal(f.Ub, g.Ub) &&
		tolerance.Equal(f.P, g.P) &&
		tolerance.Equal(f.Q, g.Q) &&
		tolerance.Equal(f.R, g.R)
}

// Neg returns -f. f must be affine (P == 0); negating a genuine
// quadratic term is not representable as a BoundedQuadratic of the
// same shape and is a programmer error.
func (f BoundedQuadratic) Neg() BoundedQuadratic {
	if f.P != 0 {
		panic(negationRequiresAffine)
	}
	return New(f.Lb, f.Ub, -f.P, -f.Q, -f.R)
}

// AddConst returns f + a, i.e. f with a added to its constant term.
func (f BoundedQuadratic) AddConst(a float64) BoundedQuadratic {
	return New(f.Lb, f.Ub, f.P, f.Q, f.R+a)
}

// Add returns f + g, the pointwise sum of f and g on the
// intersection of their domains. The result may be empty; callers
// must check IsEmpty.
func (f BoundedQuadratic) Add(g BoundedQuadratic) BoundedQuadratic {
	dom := f.Domain().Intersect(g.Domain())
	return New(dom.Lb, dom.Ub, f.P+g.P, f.Q+g.Q, f.R+g.R)
}

// Mul returns the scalar multiple alpha*f.
func (f BoundedQuadratic) Mul(alpha float64) BoundedQuadratic {
	return New(f.Lb, f.Ub, alpha*f.P, alpha*f.Q, alpha*f.R)
}

// Scale returns the reshape g(x) = f(alpha*x): domain and
// coefficients rewritten so that g's graph is f's graph compressed
// by alpha along x. alpha must be non-zero.
func (f BoundedQuadratic) Scale(alpha float64) BoundedQuadratic {
	if alpha == 0 {
		panic(zeroScaleFactor)
	}
	lb, ub := f.Lb/alpha, f.Ub/alpha
	if lb > ub {
		lb, ub = ub, lb
	}
	return New(lb, ub, alpha*alpha*f.P, alpha*f.Q, f.R)
}

// Perspective returns alpha*f(x/alpha): the perspective function of
// f with parameter alpha, which must be non-zero.
func (f BoundedQuadratic) Perspective(alpha float64) BoundedQuadratic {
	if alpha == 0 {
		panic(zeroScaleFactor)
	}
	lb, ub := alpha*f.Lb, alpha*f.Ub
	if lb > ub {
		lb, ub = ub, lb
	}
	return New(lb, ub, f.P/alpha, f.Q, alpha*f.R)
}

// Shift returns g(x) = f(x - delta): f translated by delta along x.
func (f BoundedQuadratic) Shift(delta float64) BoundedQuadratic {
	return New(f.Lb+delta, f.Ub+delta, f.P, f.Q-2*f.P*delta, f.P*delta*delta-f.Q*delta+f.R)
}

// Tilt returns f(x) + alpha*x, f with a linear term added.
func (f BoundedQuadratic) Tilt(alpha float64) BoundedQuadratic {
	return New(f.Lb, f.Ub, f.P, f.Q+alpha, f.R)
}

// Restrict returns f restricted to dom ∩ f.Domain(). It panics if
// the resulting domain is empty.
func (f BoundedQuadratic) Restrict(dom interval.Interval) BoundedQuadratic {
	newDom := f.Domain().Intersect(dom)
	if newDom.IsEmpty() {
		panic(emptyRestriction)
	}
	return New(newDom.Lb, newDom.Ub, f.P, f.Q, f.R)
}

// Extend returns f with its domain extended to the whole real line.
func (f BoundedQuadratic) Extend() BoundedQuadratic {
	return NewReal(f.P, f.Q, f.R)
}

// Reverse returns g(x) = f(-x), f mirrored about the y-axis.
func (f BoundedQuadratic) Reverse() BoundedQuadratic {
	return New(-f.Ub, -f.Lb, f.P, -f.Q, f.R)
}

// Tangent returns the (unbounded) affine piece tangent to f at x:
// it agrees with f's value and slope at x.
func (f BoundedQuadratic) Tangent(x float64) BoundedQuadratic {
	slope := 2*f.P*x + f.Q
	value := f.P*x*x + f.Q*x + f.R
	return NewReal(0, slope, value-slope*x)
}

// Line returns the (unbounded) affine piece through (x1, y1) and
// (x2, y2). x1 and x2 must differ.
func Line(x1, y1, x2, y2 float64) BoundedQuadratic {
	if x1 == x2 {
		panic(equalAbscissae)
	}
	q := (y2 - y1) / (x2 - x1)
	r := y1 - q*x1
	return NewReal(0, q, r)
}

// Derivative returns f', the degree-1 derivative of f, on f's
// domain.
func (f BoundedQuadratic) Derivative() BoundedQuadratic {
	return New(f.Lb, f.Ub, 0, 2*f.P, f.Q)
}

// Minimize returns the minimizing x* and the minimum value f(x*)
// over f's domain.
func (f BoundedQuadratic) Minimize() (xStar, value float64) {
	if f.IsEmpty() {
		return math.NaN(), math.Inf(1)
	}
	switch {
	case f.P > 0:
		xStar = tolerance.Clip(-f.Q/(2*f.P), f.Lb, f.Ub)
	case f.P < 0:
		// Concave: the vertex is a maximum, so the minimum over a
		// closed interval sits at whichever endpoint is lower, and
		// is unbounded below as soon as either side is infinite.
		if math.IsInf(f.Lb, -1) || math.IsInf(f.Ub, 1) {
			return math.NaN(), math.Inf(-1)
		}
		xStar = f.Lb
		if f.Eval(f.Ub) < f.Eval(f.Lb) {
			xStar = f.Ub
		}
	case f.P == 0 && f.Q > 0:
		if math.IsInf(f.Lb, -1) {
			return math.NaN(), math.Inf(-1)
		}
		xStar = f.Lb
	case f.P == 0 && f.Q < 0:
		if math.IsInf(f.Ub, 1) {
			return math.NaN(), math.Inf(-1)
		}
		xStar = f.Ub
	default: // P == 0 && Q == 0
		switch {
		case isFinite(f.Lb):
			xStar = f.Lb
		case isFinite(f.Ub):
			xStar = f.Ub
		default:
			xStar = 0
		}
	}
	return xStar, f.Eval(xStar)
}

// ContinuousAndOverlapping reports whether f and g meet
// continuously: f.Ub ≈ g.Lb and f(f.Ub) ≈ g(g.Lb).
func (f BoundedQuadratic) ContinuousAndOverlapping(g BoundedQuadratic) bool {
	return tolerance.Equal(f.Ub, g.Lb) && tolerance.Equal(f.Eval(f.Ub), g.Eval(g.Lb))
}

// LessOrEqual reports whether lower ≲ upper on upper's domain: lower
// must be affine (P == 0), lower's domain must ≲-cover upper's, and
// the minimum of (upper - lower) over the shared domain must be
// ≳ 0. It panics if lower is not affine, matching the spec's
// precondition that order relations require an affine lower
// operand.
func LessOrEqual(lower, upper BoundedQuadratic) bool {
	if lower.P != 0 {
		panic(lowerOperandNotAffine)
	}
	if !tolerance.LessOrEqual(lower.Lb, upper.Lb) || !tolerance.LessOrEqual(upper.Ub, lower.Ub) {
		return false
	}
	diff := upper.Add(lower.Neg())
	_, minVal := diff.Minimize()
	return tolerance.GreaterOrEqual(minVal, 0)
}

// Less reports whether lower ≤ upper exactly: like LessOrEqual but
// with strict domain coverage (no tolerance slack on the bounds).
func Less(lower, upper BoundedQuadratic) bool {
	if lower.P != 0 {
		panic(lowerOperandNotAffine)
	}
	if lower.Lb > upper.Lb || upper.Ub > lower.Ub {
		return false
	}
	diff := upper.Add(lower.Neg())
	_, minVal := diff.Minimize()
	return minVal >= 0
}

// Intersect restricts every piece in fs to the common intersection
// of all their domains. ok is false when that intersection is
// empty, in which case the returned pieces carry that (necessarily
// invalid) domain and must not be used.
func Intersect(fs []BoundedQuadratic) (restricted []BoundedQuadratic, ok bool) {
	if len(fs) == 0 {
		return nil, false
	}
	dom := fs[0].Domain()
	for _, f := range fs[1:] {
		dom = dom.Intersect(f.Domain())
	}
	restricted = make([]BoundedQuadratic, len(fs))
	for i, f := range fs {
		restricted[i] = New(dom.Lb, dom.Ub, f.P, f.Q, f.R)
	}
	return restricted, !dom.IsEmpty()
}

// String implements fmt.Stringer using the display contract: 5
// decimal digits, with the whole real line printed as "ℝ".
func (f BoundedQuadratic) String() string {
	dom := "[" + formatBound(f.Lb) + ", " + formatBound(f.Ub) + "]"
	if math.IsInf(f.Lb, -1) && math.IsInf(f.Ub, 1) {
		dom = "ℝ"
	}
	return fmt.Sprintf("BoundedQuadratic: f(x) = %.5fx^2 + %.5fx + %.5f, ∀x ∈ %s", f.P, f.Q, f.R, dom)
}

func formatBound(x float64) string {
	if math.IsInf(x, -1) {
		return "-∞"
	}
	if math.IsInf(x, 1) {
		return "+∞"
	}
	return fmt.Sprintf("%.5f", x)
}
