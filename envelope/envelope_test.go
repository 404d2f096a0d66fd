// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pwquad/piecewise"
	"pwquad/quadratic"
)

const eps = 1e-9

func approxEqual(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) < eps
}

// bqApprox compares BoundedQuadratic fields with approxEqual's looser
// eps=1e-9 rather than BoundedQuadratic.Equal's tolerance.Epsilon
// (1e-12), which several breakpoints here fail to meet after being
// chained through several bridge computations.
var bqApprox = cmp.Comparer(func(a, b quadratic.BoundedQuadratic) bool {
	return approxEqual(a.Lb, b.Lb) && approxEqual(a.Ub, b.Ub) &&
		approxEqual(a.P, b.P) && approxEqual(a.Q, b.Q) && approxEqual(a.R, b.R)
})

func TestEnvelopeOfConvexThreePieces(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 0, 0, 0),
		quadratic.New(1, 2, 0, 1, -1),
		quadratic.New(2, math.Inf(1), 1, -4, 5),
	}, false)

	got := piecewise.Simplify(Envelope(f))

	z1 := 0.8284271247461898
	z2 := 2.414213562373095
	want := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 0, 0, 0),
		quadratic.New(1, z2, 0, z1, -z1),
		quadratic.New(z2, math.Inf(1), 1, -4, 5),
	}, false)

	if diff := cmp.Diff(want.Pieces, got.Pieces, bqApprox); diff != "" {
		t.Errorf("Envelope() mismatch (-want +got):\n%s", diff)
	}
	if !piecewise.IsConvex(got) {
		t.Error("Envelope() result is not convex")
	}
}

func TestEnvelopeOfNonConvexVCollapsesToOnePiece(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(-2, -1, 0, 1, -1),
		quadratic.New(-1, 0, 0, 2, 0),
		quadratic.New(0, math.Inf(1), 0, 0, 0),
	}, false)

	got := piecewise.Simplify(Envelope(f))
	want := []quadratic.BoundedQuadratic{quadratic.New(-2, math.Inf(1), 0, 0, -3)}
	if diff := cmp.Diff(want, got.Pieces, bqApprox); diff != "" {
		t.Errorf("Envelope() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvelopeIsConvexAndBelowInput(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(math.Inf(-1), 0, 1, 0, 0),
		quadratic.New(0, 1, 0, 0, -5),
		quadratic.New(1, math.Inf(1), 1, -2, 1),
	}, false)

	env := Envelope(f)
	if !piecewise.IsConvex(piecewise.Simplify(env)) {
		t.Error("Envelope() is not convex")
	}
	for _, x := range []float64{-3, -1, -0.5, 0, 0.5, 1, 2, 5} {
		if env.Eval(x) > f.Eval(x)+1e-9 {
			t.Errorf("Envelope()(%v) = %v > f(%v) = %v", x, env.Eval(x), x, f.Eval(x))
		}
	}
}

func TestEnvelopeOfAlreadyConvexIsUnchanged(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(math.Inf(-1), 0, 1, 2, 1),
		quadratic.New(0, math.Inf(1), 2, 2, 1),
	}, false)
	if !piecewise.IsConvex(f) {
		t.Fatal("test fixture is not convex")
	}
	got := piecewise.Simplify(Envelope(f))
	want := piecewise.Simplify(f)
	if diff := cmp.Diff(want.Pieces, got.Pieces); diff != "" {
		t.Errorf("Envelope() of a convex function should be unchanged (-want +got):\n%s", diff)
	}
}

func TestEnvelopeReverseCommutes(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 0, 0, 0),
		quadratic.New(1, 2, 0, 1, -1),
		quadratic.New(2, math.Inf(1), 1, -4, 5),
	}, false)

	envThenRev := piecewise.Simplify(Envelope(f).Reverse())
	revThenEnv := piecewise.Simplify(Envelope(f.Reverse()))

	for _, x := range []float64{-5, -2.4, -1, 0, 1.5} {
		a, b := envThenRev.Eval(x), revThenEnv.Eval(x)
		if !approxEqual(a, b) {
			t.Errorf("Envelope(Reverse(f))(%v) = %v, Reverse(Envelope(f))(%v) = %v", x, b, x, a)
		}
	}
}

func TestEnvelopeStatsCountsPieces(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 0, 0, 0),
		quadratic.New(1, 2, 0, 1, -1),
		quadratic.New(2, math.Inf(1), 1, -4, 5),
	}, false)
	_, stats := EnvelopeStats(f)
	if stats.PiecesIn != 3 {
		t.Errorf("PiecesIn = %d, want 3", stats.PiecesIn)
	}
	if stats.BridgesApplied == 0 {
		t.Error("BridgesApplied = 0, want at least one bridge attempted")
	}
}
