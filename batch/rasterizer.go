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

package batch

import (
	"fmt"

	"seehuhn.de/go/spellcard/backend"
	"seehuhn.de/go/spellcard/pattern"
)

// Rasterizer renders a quad sequence followed by a fixed anchor quad onto
// a canvas.
//
// A Rasterizer is the only writer of its canvas and geometry buffer while
// a frame is drawn.  It is not safe for concurrent use.
type Rasterizer struct {
	canvas backend.Canvas
	buf    *backend.GeometryBuffer

	// Background is the colour the canvas is cleared to at the start of
	// every frame.
	Background backend.Color

	// Anchor is the NDC geometry of the marker drawn on top of everything.
	Anchor [pattern.QuadFloats]float32

	pass  backend.Pass
	slots []int
}

// NewRasterizer returns a Rasterizer which draws onto canvas through buf.
func NewRasterizer(canvas backend.Canvas, buf *backend.GeometryBuffer) *Rasterizer {
	return &Rasterizer{
		canvas: canvas,
		buf:    buf,
		slots:  make([]int, 0, buf.Cap()),
	}
}

// Capacity returns the number of quads drawn per pass.
func (r *Rasterizer) Capacity() int {
	return r.buf.Cap()
}

// Render draws one frame: all quads of src, newest first, then the anchor.
// The canvas is cleared exactly once, before the first quad.
func (r *Rasterizer) Render(src Source) {
	capacity := r.buf.Cap()
	batches := Plan(src.Len(), capacity)

	if len(batches) == 0 {
		// nothing to draw, but the frame still starts from a clean canvas
		r.pass = backend.Pass{Load: backend.Clear, ClearColor: r.Background}
		r.canvas.DrawPass(r.buf, &r.pass)
	}

	for _, b := range batches {
		r.drawBatch(src, b)
	}

	copy(r.buf.Slot(0), r.Anchor[:])
	r.slots = append(r.slots[:0], 0)
	r.pass = backend.Pass{Load: backend.Load, Slots: r.slots}
	r.canvas.DrawPass(r.buf, &r.pass)
}

// drawBatch uploads the quads of b and draws them, newest first, in a
// single pass.
func (r *Rasterizer) drawBatch(src Source, b Batch) {
	n := b.Len()
	if capacity := r.buf.Cap(); n > capacity {
		panic(fmt.Sprintf("batch: batch %d has %d quads, capacity is %d", b.Index, n, capacity))
	}

	// upload oldest first ...
	for slot := range n {
		src.PutQuad(r.buf.Slot(slot), b.Lo+slot)
	}
	// ... draw newest first
	r.slots = r.slots[:0]
	for slot := n - 1; slot >= 0; slot-- {
		r.slots = append(r.slots, slot)
	}

	r.pass = backend.Pass{Load: backend.Load, Slots: r.slots}
	if b.Clear {
		r.pass.Load = backend.Clear
		r.pass.ClearColor = r.Background
	}
	r.canvas.DrawPass(r.buf, &r.pass)
}

// Snapshot appends the fully composited canvas to dst as RGBA8 bytes.
func (r *Rasterizer) Snapshot(dst []byte) []byte {
	return r.canvas.ReadPixels(dst)
}
