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

package pattern

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// QuadFloats is the number of float32 values used to store one quad:
// two coordinates for each of the four corners.
const QuadFloats = 2 * 4

// Quad holds the corners of an axis-aligned rectangle in the order
// left-top, right-top, left-bottom, right-bottom.  This is the vertex order
// of a two-triangle strip.
type Quad [4]vec.Vec2

// BoxQuad returns the quad of the box with centre c and the given half
// extents.
func BoxQuad(c vec.Vec2, hw, hh float64) Quad {
	return Quad{
		{X: c.X - hw, Y: c.Y - hh},
		{X: c.X + hw, Y: c.Y - hh},
		{X: c.X - hw, Y: c.Y + hh},
		{X: c.X + hw, Y: c.Y + hh},
	}
}

// FieldToNDC returns the transformation from field pixels to normalised
// device coordinates.  The field's top edge maps to +1, the bottom edge
// to -1.
func FieldToNDC(width, height float64) matrix.Matrix {
	return matrix.Matrix{2 / width, 0, 0, -2 / height, -1, 1}
}

// Put serialises q into dst, transforming every corner by m.
// dst must have room for QuadFloats values.
func (q Quad) Put(dst []float32, m matrix.Matrix) {
	_ = dst[QuadFloats-1]
	for i, p := range q {
		dst[2*i] = float32(m[0]*p.X + m[2]*p.Y + m[4])
		dst[2*i+1] = float32(m[1]*p.X + m[3]*p.Y + m[5])
	}
}

// Quad returns the field-space quad of projectile i.
func (p *Pattern) Quad(i int) Quad {
	return BoxQuad(p.projectiles[i].Pos, p.halfW, p.halfH)
}

// PutQuad writes the NDC geometry of projectile i into dst.
func (p *Pattern) PutQuad(dst []float32, i int) {
	p.Quad(i).Put(dst, FieldToNDC(p.width, p.height))
}

// CenterQuad returns the NDC geometry of the anchor marker drawn at the
// centre of a width×height field.
func CenterQuad(width, height, hw, hh float64) [QuadFloats]float32 {
	var res [QuadFloats]float32
	q := BoxQuad(vec.Vec2{X: width / 2, Y: height / 2}, hw, hh)
	q.Put(res[:], FieldToNDC(width, height))
	return res
}
