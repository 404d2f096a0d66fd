// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pwqplot renders a PiecewiseQuadratic as a gonum/plot line,
// the module's external-collaborator display helper.
package pwqplot

import (
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"pwquad/piecewise"
)

const defaultSamples = 200

// Options controls how a PiecewiseQuadratic is sampled and rendered.
type Options struct {
	// Samples is the number of x values plotted between the
	// sampling range's bounds. Zero selects defaultSamples.
	Samples int
	// Pad widens the auto-detected finite x-range by this fraction
	// on each side so the curve isn't drawn flush against the axes.
	Pad float64
	Title, XLabel, YLabel string
}

// Sample returns paired (x, y) slices for f over its finite
// breakpoints, widened by opts.Pad and subdivided into opts.Samples
// points. Points outside f's domain evaluate to +Inf, matching
// PiecewiseQuadratic.Eval.
func Sample(f piecewise.PiecewiseQuadratic, opts Options) (xs, ys []float64) {
	lo, hi := sampleRange(f, opts.Pad)
	n := opts.Samples
	if n <= 0 {
		n = defaultSamples
	}
	xs = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + step*float64(i)
	}
	ys = f.Values(xs)
	return xs, ys
}

// sampleRange finds the tightest finite range covering every finite
// breakpoint of f's pieces, widened by the fractional pad.
func sampleRange(f piecewise.PiecewiseQuadratic, pad float64) (lo, hi float64) {
	var bounds []float64
	for _, p := range f.Pieces {
		if !math.IsInf(p.Lb, 0) {
			bounds = append(bounds, p.Lb)
		}
		if !math.IsInf(p.Ub, 0) {
			bounds = append(bounds, p.Ub)
		}
	}
	if len(bounds) == 0 {
		return -10, 10
	}
	sort.Float64s(bounds)
	lo, hi = bounds[0], bounds[len(bounds)-1]
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	width := hi - lo
	return lo - pad*width, hi + pad*width
}

// Plot renders f as a single line onto a fresh plot, ready to be
// saved with plot.Save.
func Plot(f piecewise.PiecewiseQuadratic, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	xs, ys := Sample(f, opts)
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line, plotter.NewGrid())
	return p, nil
}

// Save renders f and writes it to path in the format its extension
// implies (see gonum.org/v1/plot's Save), at the given size.
func Save(f piecewise.PiecewiseQuadratic, opts Options, width, height vg.Length, path string) error {
	p, err := Plot(f, opts)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}
