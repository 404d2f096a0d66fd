// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package piecewise

import "math"

// Minimize returns the minimizing x* and the minimum value v* of f,
// taken as the minimum over pieces of their individual minima. Ties
// are broken by the first piece in order.
func (f PiecewiseQuadratic) Minimize() (xStar, value float64) {
	value = math.Inf(1)
	xStar = math.NaN()
	for _, p := range f.Pieces {
		x, v := p.Minimize()
		if v < value {
			xStar, value = x, v
		}
	}
	return xStar, value
}
