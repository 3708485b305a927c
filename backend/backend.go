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

// Package backend defines the rendering primitives used to draw quads.
//
// A backend provides a persistent RGBA canvas, geometry buffers of fixed
// quad capacity, draw passes which either clear or keep the canvas contents,
// and synchronous read-back of the canvas.
package backend

import (
	"fmt"

	"seehuhn.de/go/spellcard/pattern"
)

// Color is a straight-alpha colour with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// LoadOp selects what happens to the canvas at the start of a pass.
type LoadOp int

const (
	// Load keeps the existing canvas contents.
	Load LoadOp = iota

	// Clear fills the canvas with the pass's clear colour before drawing.
	Clear
)

func (op LoadOp) String() string {
	switch op {
	case Load:
		return "load"
	case Clear:
		return "clear"
	default:
		return fmt.Sprintf("LoadOp(%d)", int(op))
	}
}

// Pass describes one draw pass over a geometry buffer.
type Pass struct {
	Load       LoadOp
	ClearColor Color // used if Load == Clear

	// Slots lists the geometry buffer slots to draw, in draw order.
	Slots []int
}

// Device allocates rendering resources.
type Device interface {
	// NewCanvas allocates a width×height canvas.
	NewCanvas(width, height int) Canvas

	// NewGeometryBuffer allocates a buffer for capacity quads.
	NewGeometryBuffer(capacity int) *GeometryBuffer
}

// Canvas is a persistent RGBA render target.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)

	// DrawPass draws the quads in the given slots of buf, with src-over
	// blending.
	DrawPass(buf *GeometryBuffer, pass *Pass)

	// ReadPixels appends the canvas contents to dst, as tightly packed
	// row-major RGBA8 values, and returns the extended slice.  All
	// previously issued passes are complete when ReadPixels returns.
	ReadPixels(dst []byte) []byte
}

// GeometryBuffer holds the corner coordinates of a fixed number of quads.
// Each slot stores the four corners left-top, right-top, left-bottom,
// right-bottom, as x,y pairs of normalised device coordinates.
type GeometryBuffer struct {
	data []float32
}

// NewGeometryBuffer allocates a buffer with room for capacity quads.
func NewGeometryBuffer(capacity int) *GeometryBuffer {
	if capacity < 1 {
		panic(fmt.Sprintf("backend: invalid geometry buffer capacity %d", capacity))
	}
	return &GeometryBuffer{
		data: make([]float32, capacity*pattern.QuadFloats),
	}
}

// Cap returns the number of quads the buffer can hold.
func (b *GeometryBuffer) Cap() int {
	return len(b.data) / pattern.QuadFloats
}

// Slot returns the storage for quad i.  It panics if i is out of range.
func (b *GeometryBuffer) Slot(i int) []float32 {
	if i < 0 || i >= b.Cap() {
		panic(fmt.Sprintf("backend: slot %d out of range [0,%d)", i, b.Cap()))
	}
	return b.data[i*pattern.QuadFloats : (i+1)*pattern.QuadFloats : (i+1)*pattern.QuadFloats]
}
