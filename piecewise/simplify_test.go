// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pwquad/quadratic"
)

func TestSimplifyRedundantPoints(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 3, 0, 0, 4),
		quadratic.New(3, 3, 0, 0, 1),
		quadratic.New(3, 3, 0, 0, 50),
		quadratic.New(3, 4, 0, 0, 20),
	}, false)

	got := Simplify(f)
	want := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 3, 0, 0, 4),
		quadratic.New(3, 4, 0, 0, 20),
	}, false)

	if diff := cmp.Diff(want.Pieces, got.Pieces); diff != "" {
		t.Errorf("Simplify() mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyDropsEmptyPieces(t *testing.T) {
	t.Parallel()
	f := PiecewiseQuadratic{Pieces: []quadratic.BoundedQuadratic{
		quadratic.New(2, 1, 0, 0, 0), // empty: lb > ub
		quadratic.New(0, 1, 0, 0, 3),
	}}
	got := Simplify(f)
	if len(got.Pieces) != 1 {
		t.Fatalf("Simplify() len = %d, want 1", len(got.Pieces))
	}
}

func TestSimplifyFusesCoefficientIdenticalPieces(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 1, 2, 3),
		quadratic.New(1, 2, 1, 2, 3),
	}, false)
	got := Simplify(f)
	if len(got.Pieces) != 1 {
		t.Fatalf("Simplify() len = %d, want 1 (fused)", len(got.Pieces))
	}
	if got.Pieces[0].Lb != 0 || got.Pieces[0].Ub != 2 {
		t.Errorf("fused domain = [%v,%v], want [0,2]", got.Pieces[0].Lb, got.Pieces[0].Ub)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 3, 0, 0, 4),
		quadratic.New(3, 3, 0, 0, 1),
		quadratic.New(3, 4, 0, 0, 20),
		quadratic.New(4, 5, 1, -1, 2),
	}, false)
	once := Simplify(f)
	twice := Simplify(once)
	if diff := cmp.Diff(once.Pieces, twice.Pieces); diff != "" {
		t.Errorf("simplify not idempotent (-once +twice):\n%s", diff)
	}
}

func TestSimplifyMergesAdjacentPointsKeepingMin(t *testing.T) {
	t.Parallel()
	f := New([]quadratic.BoundedQuadratic{
		quadratic.New(5, 5, 0, 0, 9),
		quadratic.New(5, 5, 0, 0, 2),
	}, false)
	got := Simplify(f)
	if len(got.Pieces) != 1 {
		t.Fatalf("Simplify() len = %d, want 1", len(got.Pieces))
	}
	if got.Pieces[0].R != 2 {
		t.Errorf("kept value = %v, want 2 (the smaller)", got.Pieces[0].R)
	}
}
