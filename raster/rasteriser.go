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

// Package raster computes anti-aliased pixel coverage for polygons.
//
// Only straight edges are supported.  Coverage is the exact fraction of each
// pixel's area inside the polygon, using the nonzero winding rule.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts polygons to per-pixel coverage values between 0 and 1.
// Create one instance and reuse it; internal buffers grow as needed and are
// kept between calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps path coordinates to device pixels.  Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output.  Coordinates must be integers.
	Clip rect.Rect

	cover       []float32 // signed vertical extent per pixel; reused as output
	area        []float32 // area right of the edge crossing, per pixel
	edges       []edge
	rowHasEdges []bool

	// device-space bounding box of r.edges
	bboxEmpty    bool
	bxMin, bxMax float64
	byMin, byMax float64
}

// NewRasteriser returns a Rasteriser with the identity CTM and the given
// clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:  matrix.Identity,
		Clip: clip,
	}
}

// Reset restores the CTM and sets a new clip rectangle.  Buffer capacity is
// preserved.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.rowHasEdges = r.rowHasEdges[:0]
}

// FillNonZero fills the polygon described by p using the nonzero winding
// rule.  Only MoveTo, LineTo and Close commands are allowed.  The emit
// callback receives coverage row by row, starting at pixel xMin; the slice
// is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.y0, e.y1
		if lo > hi {
			lo, hi = hi, lo
		}
		yFirst := int(math.Floor(min(max(lo, float64(yMin)), float64(yMax))))
		yLast := min(int(math.Floor(max(min(hi, float64(yMax)), float64(yMin))))+1, yMax)
		for y := yFirst; y < yLast; y++ {
			row := y - yMin
			off := row * width
			r.accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateNonZero(coverage, r.area[off:off+width])
		if trimmed, start := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+start, trimmed)
		}
	}
}

// collectEdges transforms the path to device space and fills r.edges.  The
// returned box is clamped to the clip rectangle.
func (r *Rasteriser) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	var cur, start [2]float64
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = r.toDevice(p.Coords[k].X, p.Coords[k].Y)
			start = cur
			k++
		case path.CmdLineTo:
			next := r.toDevice(p.Coords[k].X, p.Coords[k].Y)
			r.addEdge(cur, next)
			cur = next
			k++
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		default:
			panic("raster: only straight edges are supported")
		}
	}
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	// clamp before converting, so that huge coordinates cannot overflow
	xMin = int(math.Floor(max(r.bxMin, r.Clip.LLx)))
	xMax = int(math.Floor(min(r.bxMax, r.Clip.URx-1))) + 1
	yMin = int(math.Floor(max(r.byMin, r.Clip.LLy)))
	yMax = int(math.Floor(min(r.byMax, r.Clip.URy-1))) + 1
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

func (r *Rasteriser) toDevice(x, y float64) [2]float64 {
	m := r.CTM
	return [2]float64{m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}

// addEdge records the device-space edge a→b.  Horizontal edges carry no
// coverage and are dropped.
func (r *Rasteriser) addEdge(a, b [2]float64) {
	dy := b[1] - a[1]
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a[0], y0: a[1],
		x1: b[0], y1: b[1],
		dxdy: (b[0] - a[0]) / dy,
	})

	lx, hx := min(a[0], b[0]), max(a[0], b[0])
	ly, hy := min(a[1], b[1]), max(a[1], b[1])
	if r.bboxEmpty {
		r.bxMin, r.bxMax, r.byMin, r.byMax = lx, hx, ly, hy
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, lx)
	r.bxMax = max(r.bxMax, hx)
	r.byMin = min(r.byMin, ly)
	r.byMax = max(r.byMax, hy)
}

// Each edge contributes, per pixel it crosses in a scanline,
//
//	cover = ±(vertical extent inside the pixel)
//	area  = cover · (1 - mean x offset inside the pixel)
//
// where the sign is + for downward edges.  Scanning a row from left to right,
// the coverage of pixel i is (sum of cover[0..i-1]) + area[i].

// accumulate adds the contribution of e within scanline y to the row
// buffers, which are indexed by x - bxMin.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, bxMin, bxMax int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left, right := min(xTop, xBot), max(xTop, xBot)
	lo, hi := float64(bxMin-1), float64(bxMax)
	pxLeft := int(math.Floor(max(lo, min(hi, left))))
	pxRight := int(math.Floor(max(lo, min(hi, right))))

	switch {
	case pxRight < bxMin:
		// entirely left of the box: full cover enters at the first pixel
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case pxLeft >= bxMax:
		return
	case pxLeft == pxRight:
		r.addSpan(e, top, bot, sign, pxLeft, cover, area, bxMin, bxMax)
		return
	}

	// Columns left of the box all add to cover[0], so they are merged
	// into column bxMin-1; columns right of the box are ignored.
	dydx := 1 / e.dxdy
	for px := pxLeft; px <= min(pxRight, bxMax-1); px++ {
		xa := float64(px)
		if px == bxMin-1 {
			xa = left
		}
		ya := e.y0 + dydx*(xa-e.x0)
		yb := e.y0 + dydx*(float64(px+1)-e.x0)
		spanLo := max(min(ya, yb), top)
		spanHi := min(max(ya, yb), bot)
		if spanHi <= spanLo {
			continue
		}
		r.addSpan(e, spanLo, spanHi, sign, px, cover, area, bxMin, bxMax)
	}
}

// addSpan adds the part of e between lo and hi, which lies in pixel column
// px.
func (r *Rasteriser) addSpan(e *edge, lo, hi float64, sign float32, px int, cover, area []float32, bxMin, bxMax int) {
	c := sign * float32(hi-lo)
	if px < bxMin {
		cover[0] += c
		area[0] += c
		return
	}
	if px >= bxMax {
		return
	}
	xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
	frac := xMid - float64(px)
	i := px - bxMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrateNonZero turns the accumulated cover/area values of one row into
// coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the sub-slice between the first and last non-zero
// entry, and the offset of its first element.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// horizontalEdgeThreshold is the smallest vertical extent for which an edge
// is considered.
const horizontalEdgeThreshold = 1e-10
