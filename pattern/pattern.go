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

// Package pattern simulates a radial projectile burst.
//
// Projectiles are spawned at the centre of a rectangular field, move in a
// straight line and are removed once their bounding box has left the field.
// The spawn direction rotates with an accelerating angular velocity.
package pattern

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Projectile is a single bullet of the pattern.
type Projectile struct {
	Pos vec.Vec2 // centre, in field pixels
	Dir vec.Vec2 // unit direction of motion
}

// Params holds the initial state of a Pattern.
type Params struct {
	Width, Height float64 // field size in pixels, must be positive
	Ways          int     // projectiles spawned per tick, at least 1

	// SpeedPerFrame is the distance a projectile moves per tick, in pixels.
	SpeedPerFrame float64

	// Angle is the base spawn direction in degrees.
	Angle float64

	// AngularVelocity is the initial change of Angle per tick, in degrees.
	AngularVelocity float64

	// AngularAcceleration is the change of AngularVelocity per tick.
	AngularAcceleration float64

	// HalfWidth and HalfHeight give half the size of a projectile's
	// bounding box. Both must be non-negative.
	HalfWidth, HalfHeight float64
}

// Pattern is the simulation state of a spell card.
//
// The projectile sequence is kept in spawn order, oldest first. The order is
// only ever changed by removing elements; it is the age order used when
// compositing.
//
// A Pattern is not safe for concurrent use.
type Pattern struct {
	width, height float64
	ways          int
	speed         float64

	angle    float64
	velocity float64
	accel    float64

	halfW, halfH float64

	projectiles []Projectile
}

// New returns a Pattern with the given parameters and no projectiles.
// New panics if the parameters are invalid; user input is checked by the
// config package before it gets here.
func New(p Params) *Pattern {
	if !(p.Width > 0 && p.Height > 0) {
		panic(fmt.Sprintf("pattern: invalid field size %gx%g", p.Width, p.Height))
	}
	if p.Ways < 1 {
		panic(fmt.Sprintf("pattern: invalid number of ways %d", p.Ways))
	}
	if p.HalfWidth < 0 || p.HalfHeight < 0 {
		panic("pattern: negative projectile size")
	}
	return &Pattern{
		width:    p.Width,
		height:   p.Height,
		ways:     p.Ways,
		speed:    p.SpeedPerFrame,
		angle:    wrapDegrees(p.Angle),
		velocity: wrapDegrees(p.AngularVelocity),
		accel:    p.AngularAcceleration,
		halfW:    p.HalfWidth,
		halfH:    p.HalfHeight,
	}
}

// Tick advances the simulation by one step: spawn one projectile per way,
// move all projectiles, remove the ones which have left the field, and
// update the spawn angle.
func (p *Pattern) Tick() {
	center := vec.Vec2{X: p.width / 2, Y: p.height / 2}
	offset := 360 / float64(p.ways)
	for k := range p.ways {
		a := (p.angle + float64(k)*offset) * math.Pi / 180
		sin, cos := math.Sincos(a)
		p.projectiles = append(p.projectiles, Projectile{
			Pos: center,
			Dir: vec.Vec2{X: cos, Y: sin},
		})
	}

	// Move and compact in a single pass.  Survivors keep their relative
	// order.
	n := 0
	for _, b := range p.projectiles {
		b.Pos = b.Pos.Add(b.Dir.Mul(p.speed))
		if p.outside(b.Pos) {
			continue
		}
		p.projectiles[n] = b
		n++
	}
	clear(p.projectiles[n:])
	p.projectiles = p.projectiles[:n]

	// velocity first, then angle
	p.velocity = wrapDegrees(p.velocity + p.accel)
	p.angle = wrapDegrees(p.angle + p.velocity)

	p.check()
}

// outside reports whether the bounding box of a projectile centred at pos
// lies entirely outside the field.  A box which meets the field only along
// its boundary, without overlap, is outside.
func (p *Pattern) outside(pos vec.Vec2) bool {
	return pos.X+p.halfW <= 0 || pos.X-p.halfW >= p.width ||
		pos.Y+p.halfH <= 0 || pos.Y-p.halfH >= p.height
}

// check panics if the state violates one of the pattern invariants.
func (p *Pattern) check() {
	if !(p.angle >= 0 && p.angle < 360) {
		panic(fmt.Sprintf("pattern: angle %g outside [0,360)", p.angle))
	}
	if !(p.velocity >= 0 && p.velocity < 360) {
		panic(fmt.Sprintf("pattern: angular velocity %g outside [0,360)", p.velocity))
	}
	for i, b := range p.projectiles {
		if math.IsNaN(b.Pos.X) || math.IsInf(b.Pos.X, 0) ||
			math.IsNaN(b.Pos.Y) || math.IsInf(b.Pos.Y, 0) {
			panic(fmt.Sprintf("pattern: projectile %d has non-finite position %v", i, b.Pos))
		}
	}
}

// wrapDegrees maps an angle into [0,360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		// -1e-14 + 360 rounds to 360
		a = 0
	}
	return a
}

// Len returns the number of live projectiles.
func (p *Pattern) Len() int {
	return len(p.projectiles)
}

// Projectiles returns the live projectiles, oldest first.  The slice is
// owned by the Pattern and is only valid until the next call to Tick.
func (p *Pattern) Projectiles() []Projectile {
	return p.projectiles
}

// Angle returns the current base spawn angle in degrees.
func (p *Pattern) Angle() float64 {
	return p.angle
}

// AngularVelocity returns the current angular velocity in degrees per tick.
func (p *Pattern) AngularVelocity() float64 {
	return p.velocity
}

// Ways returns the number of projectiles spawned per tick.
func (p *Pattern) Ways() int {
	return p.ways
}

// Field returns the field rectangle [0,Width]×[0,Height].
func (p *Pattern) Field() rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: p.width, URy: p.height}
}

// HalfExtent returns half the width and height of a projectile.
func (p *Pattern) HalfExtent() (hw, hh float64) {
	return p.halfW, p.halfH
}
