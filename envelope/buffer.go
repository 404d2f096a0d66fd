// Copyright ©2024 The pwquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import "pwquad/quadratic"

const bufferOverflow = "envelope: fixed buffer overflow"
const bufferUnderflow = "envelope: pop of an empty buffer"

// buffer is the fixed-capacity scratch sequence of BoundedQuadratic
// pieces the envelope engine uses for its inner loop: a bridge
// workspace of one to three slots, allocated fresh by each bridge
// case, and a 2n+4-capacity output buffer. Its capacity is fixed at
// construction, so appending to and back-popping the output buffer
// never grows it.
type buffer struct {
	data []quadratic.BoundedQuadratic
	n    int
}

func newBuffer(capacity int) *buffer {
	return &buffer{data: make([]quadratic.BoundedQuadratic, capacity)}
}

// Len returns the buffer's live length.
func (b *buffer) Len() int { return b.n }

// IsEmpty reports whether the buffer currently holds no pieces.
func (b *buffer) IsEmpty() bool { return b.n == 0 }

// Push appends p. It panics if the buffer is already at capacity.
func (b *buffer) Push(p quadratic.BoundedQuadratic) {
	if b.n >= len(b.data) {
		panic(bufferOverflow)
	}
	b.data[b.n] = p
	b.n++
}

// Pop removes and returns the last piece. It panics if the buffer
// is empty.
func (b *buffer) Pop() quadratic.BoundedQuadratic {
	if b.n == 0 {
		panic(bufferUnderflow)
	}
	b.n--
	return b.data[b.n]
}

// Get returns the piece at index i.
func (b *buffer) Get(i int) quadratic.BoundedQuadratic { return b.data[i] }

// Set overwrites the piece at index i.
func (b *buffer) Set(i int, p quadratic.BoundedQuadratic) { b.data[i] = p }

// AppendFrom pushes every piece of other onto b, in order.
func (b *buffer) AppendFrom(other *buffer) {
	for i := 0; i < other.n; i++ {
		b.Push(other.data[i])
	}
}

// Reverse reverses the buffer in place: it swaps symmetric
// positions and also reverses each element, so the buffer continues
// to represent the same function under a domain reversal. This is
// how a bridge computed in a mirrored coordinate frame (§4.G's
// "mirror cases 2-4") is folded back into the original frame.
func (b *buffer) Reverse() {
	for i, j := 0, b.n-1; i < j; i, j = i+1, j-1 {
		b.data[i], b.data[j] = b.data[j], b.data[i]
	}
	for i := 0; i < b.n; i++ {
		b.data[i] = b.data[i].Reverse()
	}
}

// Pieces returns a copy of the buffer's live contents.
func (b *buffer) Pieces() []quadratic.BoundedQuadratic {
	out := make([]quadratic.BoundedQuadratic, b.n)
	copy(out, b.data[:b.n])
	return out
}
