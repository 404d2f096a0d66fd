// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval provides the one-dimensional bounded-scalar
// domain algebra that BoundedQuadratic and PiecewiseQuadratic build
// on: membership, inclusion, intersection, strict ordering and
// emptiness, all with the module-wide epsilon tolerance where an
// approximate variant is required.
package interval

import (
	"math"

	"pwquad/tolerance"
)

// Interval is a closed scalar domain [Lb, Ub]. Lb may be -Inf and Ub
// may be +Inf; neither may be NaN. Lb > Ub represents the empty
// interval; Lb == Ub is a valid singleton.
type Interval struct {
	Lb, Ub float64
}

// New returns the interval [lb, ub]. It panics if lb or ub is NaN.
func New(lb, ub float64) Interval {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		panic("interval: NaN bound")
	}
	return Interval{Lb: lb, Ub: ub}
}

// Real returns the whole real line (-∞, +∞).
func Real() Interval {
	return Interval{Lb: math.Inf(-1), Ub: math.Inf(1)}
}

// IsEmpty reports whether the interval is empty, i.e. Lb > Ub.
// A singleton (Lb == Ub) is not empty.
func (i Interval) IsEmpty() bool {
	return i.Lb > i.Ub
}

// Contains reports whether x lies in the closed interval [Lb, Ub].
func (i Interval) Contains(x float64) bool {
	return x >= i.Lb && x <= i.Ub
}

// Includes reports whether other is entirely contained in i, i.e.
// both of other's bounds lie within i.
func (i Interval) Includes(other Interval) bool {
	return i.Contains(other.Lb) && i.Contains(other.Ub)
}

// Intersect returns the intersection of i and j: [max(lbs), min(ubs)].
// The result may be empty; callers must check IsEmpty.
func (i Interval) Intersect(j Interval) Interval {
	return Interval{Lb: math.Max(i.Lb, j.Lb), Ub: math.Min(i.Ub, j.Ub)}
}

// Less reports whether i lies strictly to the left of j, i.e.
// i.Ub < j.Lb.
func (i Interval) Less(j Interval) bool {
	return i.Ub < j.Lb
}

// Greater reports whether i lies strictly to the right of j.
func (i Interval) Greater(j Interval) bool {
	return j.Less(i)
}

// Equal reports approximate equality of bounds, treating matching
// infinities as exactly equal.
func (i Interval) Equal(j Interval) bool {
	return tolerance.Equal(i.Lb, j.Lb) && tolerance.Equal(i.Ub, j.Ub)
}

// IsPoint reports whether the interval is a degenerate singleton,
// Lb == Ub exactly.
func (i Interval) IsPoint() bool {
	return i.Lb == i.Ub
}

// IsAlmostPoint reports whether the interval's width is within
// tolerance.Epsilon of zero.
func (i Interval) IsAlmostPoint() bool {
	return !i.IsEmpty() && math.Abs(i.Ub-i.Lb) <= tolerance.Epsilon
}
