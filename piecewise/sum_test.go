// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pwquad/quadratic"
)

func TestSumDisjointDomainsIsEmpty(t *testing.T) {
	t.Parallel()
	f1 := New([]quadratic.BoundedQuadratic{quadratic.New(1, 1, 0, 0, 1)}, false)
	f2 := New([]quadratic.BoundedQuadratic{quadratic.New(math.Inf(-1), -1, 0, 0, 0)}, false)
	f3 := New([]quadratic.BoundedQuadratic{quadratic.New(1, math.Inf(1), 0, 0, 0)}, false)

	got := Sum([]PiecewiseQuadratic{f1, f2, f3})
	if !got.IsEmpty() {
		t.Errorf("Sum() of disjoint domains = %v, want empty", got)
	}
}

func TestSumSingleInputIsCopy(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 1, 2, 3),
		quadratic.New(1, 2, 0, 1, -1),
	}, false)
	got := Sum([]PiecewiseQuadratic{f})
	if diff := cmp.Diff(f.Pieces, got.Pieces); diff != "" {
		t.Errorf("Sum() of a single input should be a copy (-want +got):\n%s", diff)
	}
}

func TestSumOverlappingDomains(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{quadratic.New(0, 10, 1, 0, 0)}, false)
	g := New([]quadratic.BoundedQuadratic{quadratic.New(5, 15, 0, 1, 2)}, false)

	got := Sum([]PiecewiseQuadratic{f, g})
	if len(got.Pieces) != 1 {
		t.Fatalf("Sum() len = %d, want 1", len(got.Pieces))
	}
	p := got.Pieces[0]
	if p.Lb != 5 || p.Ub != 10 {
		t.Errorf("Sum() domain = [%v,%v], want [5,10]", p.Lb, p.Ub)
	}
	x := 7.0
	want := f.Eval(x) + g.Eval(x)
	if got := p.Eval(x); !approxEqual(got, want) {
		t.Errorf("Sum()(7) = %v, want %v", got, want)
	}
}

func TestSumIsCommutative(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 5, 1, 1, 1),
		quadratic.New(5, 10, 0, 2, -3),
	}, false)
	g := New([]quadratic.BoundedQuadratic{
		quadratic.New(2, 8, 0, -1, 4),
	}, false)

	fg := Sum([]PiecewiseQuadratic{f, g})
	gf := Sum([]PiecewiseQuadratic{g, f})

	for _, x := range []float64{2, 3, 5, 7, 8} {
		a, b := fg.Eval(x), gf.Eval(x)
		if !approxEqual(a, b) {
			t.Errorf("Sum([f,g])(%v) = %v, Sum([g,f])(%v) = %v, want equal", x, a, x, b)
		}
	}
}

func TestSumPlusNegationIsZero(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 5, 0, 1, 1),
		quadratic.New(5, 10, 0, 2, -3),
	}, false)
	negF := f.Neg()
	sum := Simplify(Sum([]PiecewiseQuadratic{f, negF}))
	for _, x := range []float64{0, 2.5, 5, 7.5, 10} {
		if got := sum.Eval(x); !approxEqual(got, 0) {
			t.Errorf("(f + (-f))(%v) = %v, want 0", x, got)
		}
	}
}
