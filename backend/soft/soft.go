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

// Package soft is a software implementation of the rendering backend.
//
// Quads are rasterised with anti-aliased coverage, textured, and blended
// into an 8-bit straight-alpha canvas.  All drawing happens synchronously.
package soft

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spellcard/backend"
	"seehuhn.de/go/spellcard/raster"
)

// Device creates canvases which paint every quad with a texture.
type Device struct {
	tex *Texture
}

var _ backend.Device = (*Device)(nil)

// NewDevice returns a device using tex as the fill texture.
func NewDevice(tex *Texture) *Device {
	return &Device{tex: tex}
}

// NewCanvas implements [backend.Device].
func (d *Device) NewCanvas(width, height int) backend.Canvas {
	return NewCanvas(width, height, d.tex)
}

// NewGeometryBuffer implements [backend.Device].
func (d *Device) NewGeometryBuffer(capacity int) *backend.GeometryBuffer {
	return backend.NewGeometryBuffer(capacity)
}

// Canvas is an in-memory render target.
type Canvas struct {
	img *image.NRGBA
	tex *Texture

	ras      *raster.Rasteriser
	outline  path.Data
	toDevice matrix.Matrix
	emit     func(y, xMin int, coverage []float32)

	// state of the quad being drawn
	sprite         *image.NRGBA
	spriteSize     image.Point // size of the whole scaled texture
	scratch        image.NRGBA
	qx, qy, qw, qh float64 // device-space bounding box
}

var _ backend.Canvas = (*Canvas)(nil)

// NewCanvas allocates a width×height canvas, initially transparent black.
func NewCanvas(width, height int, tex *Texture) *Canvas {
	w, h := float64(width), float64(height)
	c := &Canvas{
		img:      image.NewNRGBA(image.Rect(0, 0, width, height)),
		tex:      tex,
		ras:      raster.NewRasteriser(rect.Rect{URx: w, URy: h}),
		toDevice: matrix.Matrix{w / 2, 0, 0, -h / 2, w / 2, h / 2},
	}
	c.ras.CTM = c.toDevice
	c.emit = c.blendRow
	return c
}

// Size implements [backend.Canvas].
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// DrawPass implements [backend.Canvas].
func (c *Canvas) DrawPass(buf *backend.GeometryBuffer, pass *backend.Pass) {
	if pass.Load == backend.Clear {
		c.clear(pass.ClearColor)
	}
	for _, slot := range pass.Slots {
		c.drawQuad(buf.Slot(slot))
	}
}

// ReadPixels implements [backend.Canvas].
func (c *Canvas) ReadPixels(dst []byte) []byte {
	return append(dst, c.img.Pix...)
}

func (c *Canvas) clear(col backend.Color) {
	px := [4]uint8{to8(col.R), to8(col.G), to8(col.B), to8(col.A)}
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
}

// drawQuad draws one quad, given as LT, RT, LB, RB in NDC.
func (c *Canvas) drawQuad(q []float32) {
	lt := vec.Vec2{X: float64(q[0]), Y: float64(q[1])}
	rt := vec.Vec2{X: float64(q[2]), Y: float64(q[3])}
	lb := vec.Vec2{X: float64(q[4]), Y: float64(q[5])}
	rb := vec.Vec2{X: float64(q[6]), Y: float64(q[7])}

	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]vec.Vec2{lt, rt, lb, rb} {
		m := c.toDevice
		x := m[0]*p.X + m[2]*p.Y + m[4]
		y := m[1]*p.X + m[3]*p.Y + m[5]
		xMin, xMax = min(xMin, x), max(xMax, x)
		yMin, yMax = min(yMin, y), max(yMax, y)
	}
	c.qx, c.qy = xMin, yMin
	c.qw, c.qh = xMax-xMin, yMax-yMin
	if c.qw <= 0 || c.qh <= 0 {
		return
	}
	size := image.Point{
		X: spriteExtent(c.qw),
		Y: spriteExtent(c.qh),
	}
	// only the part of the sprite which lands on the canvas is needed
	cw, ch := c.Size()
	win := image.Rect(
		spriteIndex(0.5, c.qx, c.qw, size.X),
		spriteIndex(0.5, c.qy, c.qh, size.Y),
		spriteIndex(float64(cw)-0.5, c.qx, c.qw, size.X)+1,
		spriteIndex(float64(ch)-0.5, c.qy, c.qh, size.Y)+1,
	)
	c.spriteSize = size
	c.sprite = c.tex.sprite(size, win, &c.scratch)

	// triangle strip order LT,RT,LB,RB becomes the outline LT→RT→RB→LB
	c.outline.Cmds = c.outline.Cmds[:0]
	c.outline.Coords = c.outline.Coords[:0]
	c.outline.MoveTo(lt).LineTo(rt).LineTo(rb).LineTo(lb).Close()

	c.ras.FillNonZero(&c.outline, c.emit)
}

// blendRow composites one row of the current quad onto the canvas.
func (c *Canvas) blendRow(y, xMin int, coverage []float32) {
	sb := c.sprite.Bounds()
	sy := clampInt(spriteIndex(float64(y)+0.5, c.qy, c.qh, c.spriteSize.Y), sb.Min.Y, sb.Max.Y-1)
	srcRow := c.sprite.Pix[c.sprite.PixOffset(sb.Min.X, sy):]
	dstRow := c.img.Pix[y*c.img.Stride:]

	for i, cov := range coverage {
		x := xMin + i
		sx := clampInt(spriteIndex(float64(x)+0.5, c.qx, c.qw, c.spriteSize.X), sb.Min.X, sb.Max.X-1)
		k := 4 * (sx - sb.Min.X)
		blend(dstRow[4*x:4*x+4], srcRow[k:k+4], cov)
	}
}

// spriteIndex returns the sprite pixel, in [0,n), sampled at device
// coordinate p of a quad starting at q0 with extent qLen.
func spriteIndex(p, q0, qLen float64, n int) int {
	u := (p - q0) / qLen * float64(n)
	return int(max(0, min(float64(n-1), u)))
}

// spriteExtent returns the pixel size of the sprite for a quad extent.
func spriteExtent(qLen float64) int {
	return max(1, int(math.Ceil(min(qLen, maxSpriteExtent)-spriteSlack)))
}

// blend composites the straight-alpha colour src over dst, with the source
// alpha scaled by the pixel coverage.
func blend(dst, src []uint8, coverage float32) {
	sa := float64(src[3]) / 255 * float64(coverage)
	if sa <= 0 {
		return
	}
	inv := 1 - sa
	da := float64(dst[3]) / 255
	for ch := range 3 {
		dst[ch] = round8(float64(src[ch])*sa + float64(dst[ch])*inv)
	}
	dst[3] = round8((sa + da*inv) * 255)
}

// to8 converts a channel value in [0,1] to 8 bits.
func to8(v float64) uint8 {
	return round8(v * 255)
}

func round8(v float64) uint8 {
	return uint8(math.Round(max(0, min(255, v))))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// spriteSlack absorbs float32 rounding in the quad size, so that a 16.00001
// pixel wide quad uses a 16 pixel sprite.
const spriteSlack = 1.0 / 64

// maxSpriteExtent bounds the nominal sprite size of very large quads.
const maxSpriteExtent = 1 << 24
