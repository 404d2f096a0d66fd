// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envelope computes the convex envelope (greatest convex
// minorant) of a piecewise quadratic function.
package envelope

import (
	"pwquad/piecewise"
	"pwquad/quadratic"
)

// Stats reports the work the envelope engine did constructing a
// hull, useful for profiling and for the test suite.
type Stats struct {
	PiecesIn       int
	PiecesOut      int
	BridgesApplied int
}

// Envelope returns the convex envelope of f: the greatest convex
// piecewise quadratic function that lies pointwise at or below f.
// The result is not simplified; callers that want a canonical form
// should follow up with piecewise.Simplify.
func Envelope(f piecewise.PiecewiseQuadratic) piecewise.PiecewiseQuadratic {
	h, _ := compute(f)
	return piecewise.New(h.Pieces(), false)
}

// EnvelopeStats behaves like Envelope but also returns bookkeeping
// about the construction.
func EnvelopeStats(f piecewise.PiecewiseQuadratic) (piecewise.PiecewiseQuadratic, Stats) {
	h, stats := compute(f)
	return piecewise.New(h.Pieces(), false), stats
}

func compute(f piecewise.PiecewiseQuadratic) (*buffer, Stats) {
	stats := Stats{PiecesIn: len(f.Pieces)}
	h := newBuffer(2*len(f.Pieces) + 4)
	for _, g := range f.Pieces {
		if g.IsEmpty() {
			continue
		}
		appendPiece(h, g, &stats)
	}
	stats.PiecesOut = h.Len()
	return h, stats
}

// appendPiece folds g into the hull h, back-popping pieces that the
// new bridge determines no longer belong on the envelope.
func appendPiece(h *buffer, g quadratic.BoundedQuadratic, stats *Stats) {
	for {
		if h.IsEmpty() {
			h.Push(g)
			return
		}
		f := h.Pop()
		buf, discard := computeBridge(f, g)
		stats.BridgesApplied++
		if discard {
			continue
		}
		h.AppendFrom(buf)
		return
	}
}
