// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope_test

import (
	"fmt"
	"math"

	"pwquad/envelope"
	"pwquad/piecewise"
	"pwquad/quadratic"
)

// ExampleEnvelope bridges a three-piece function, which has a concave
// kink at x=2, with a single tangent line that replaces the middle
// piece and the start of the last one.
func ExampleEnvelope() {
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(0, 1, 0, 0, 0),
		quadratic.New(1, 2, 0, 1, -1),
		quadratic.New(2, math.Inf(1), 1, -4, 5),
	}, false)

	got := piecewise.Simplify(envelope.Envelope(f))
	fmt.Println(piecewise.IsConvex(got))
	for _, p := range got.Pieces {
		fmt.Printf("[%.5f, %v]: p=%.5f q=%.5f r=%.5f\n", p.Lb, boundString(p.Ub), p.P, p.Q, p.R)
	}

	// Output:
	// true
	// [0.00000, 1.00000]: p=0.00000 q=0.00000 r=0.00000
	// [1.00000, 2.41421]: p=0.00000 q=0.82843 r=-0.82843
	// [2.41421, +Inf]: p=1.00000 q=-4.00000 r=5.00000
}

// ExampleEnvelope_nonConvexV collapses a non-convex piecewise-affine
// V shape to its single convex minorant line.
func ExampleEnvelope_nonConvexV() {
	f := piecewise.New([]quadratic.BoundedQuadratic{
		quadratic.New(-2, -1, 0, 1, -1),
		quadratic.New(-1, 0, 0, 2, 0),
		quadratic.New(0, math.Inf(1), 0, 0, 0),
	}, false)

	got := piecewise.Simplify(envelope.Envelope(f))
	for _, p := range got.Pieces {
		fmt.Printf("[%.5f, %v]: p=%.5f q=%.5f r=%.5f\n", p.Lb, boundString(p.Ub), p.P, p.Q, p.R)
	}

	// Output:
	// [-2.00000, +Inf]: p=0.00000 q=0.00000 r=-3.00000
}

func boundString(x float64) string {
	if math.IsInf(x, 1) {
		return "+Inf"
	}
	return fmt.Sprintf("%.5f", x)
}
