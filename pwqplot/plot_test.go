// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pwqplot

import (
	"math"
	"testing"

	"pwquad/piecewise"
	"pwquad/quadratic"
)

func TestSampleCoversBreakpoints(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 1, 0, 0),
		quadratic.New(1, 2, 0, 1, -1),
	}, false)
	xs, ys := Sample(f, Options{Samples: 50, Pad: 0.1})
	if len(xs) != 50 || len(ys) != 50 {
		t.Fatalf("Sample returned %d xs, %d ys, want 50 each", len(xs), len(ys))
	}
	if xs[0] > 0 || xs[len(xs)-1] < 2 {
		t.Errorf("sample range [%v,%v] does not cover breakpoints [0,2]", xs[0], xs[len(xs)-1])
	}
}

func TestSampleOutOfDomainIsInf(t *testing.T) {
	t.Parallel()
	f := piecewise.Indicator(-1, 1)
	xs, ys := Sample(f, Options{Samples: 10, Pad: 1})
	sawInf := false
	for i, x := range xs {
		if x < -1 || x > 1 {
			if !math.IsInf(ys[i], 1) {
				t.Errorf("Sample at x=%v (outside [-1,1]) = %v, want +Inf", x, ys[i])
			}
			sawInf = true
		}
	}
	if !sawInf {
		t.Fatal("test fixture padding produced no out-of-domain samples")
	}
}

func TestPlotBuildsWithoutError(t *testing.T) {
	t.Parallel()
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(math.Inf(-1), math.Inf(1), 1, 0, 0),
	}, false)
	p, err := Plot(f, Options{Title: "parabola"})
	if err != nil {
		t.Fatalf("Plot() error = %v", err)
	}
	if p == nil {
		t.Fatal("Plot() returned nil plot")
	}
}
