// seehuhn.de/go/spellcard - animated bullet pattern exporter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package batch draws an unbounded sequence of quads through a geometry
// buffer of fixed capacity.
//
// The quads are given oldest first.  They are drawn newest first, so that
// under src-over blending older quads end up on top of younger ones.  The
// partition into batches never changes this order, and thus never changes
// the resulting image.
package batch

import (
	"fmt"

	"seehuhn.de/go/spellcard/pattern"
)

// Source is a sequence of quads, oldest first.
type Source interface {
	// Len returns the number of quads.
	Len() int

	// PutQuad writes the NDC geometry of quad i into dst, which has room
	// for pattern.QuadFloats values.
	PutQuad(dst []float32, i int)
}

var _ Source = (*pattern.Pattern)(nil)

// Batch is a contiguous range [Lo, Hi) of the quad sequence which is
// uploaded and drawn in one pass.
type Batch struct {
	Index  int
	Lo, Hi int
	Clear  bool // whether the pass clears the canvas first
}

// Len returns the number of quads in the batch.
func (b Batch) Len() int {
	return b.Hi - b.Lo
}

// Plan partitions n quads into batches of at most capacity quads and
// returns the batches in processing order: highest index first.  Only the
// first batch clears the canvas.
func Plan(n, capacity int) []Batch {
	if capacity < 1 {
		panic(fmt.Sprintf("batch: invalid capacity %d", capacity))
	}
	numBatches := (n + capacity - 1) / capacity
	res := make([]Batch, 0, numBatches)
	for b := numBatches - 1; b >= 0; b-- {
		res = append(res, Batch{
			Index: b,
			Lo:    b * capacity,
			Hi:    min((b+1)*capacity, n),
			Clear: b == numBatches-1,
		})
	}
	return res
}

// DrawOrder returns the indices of n quads in the order in which they are
// drawn when using the given buffer capacity: batches in descending index
// order, and within a batch, descending local index.
func DrawOrder(n, capacity int) []int {
	order := make([]int, 0, n)
	for _, b := range Plan(n, capacity) {
		for slot := b.Len() - 1; slot >= 0; slot-- {
			order = append(order, b.Lo+slot)
		}
	}
	return order
}
