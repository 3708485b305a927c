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

// Package clock converts a fixed tick rate into frame delays.
//
// Delays are measured in units of 10ms, the resolution of GIF frame delays.
// The clock remembers the emitted time truncated to this grid, so that
// rounding errors never accumulate: the total of all delays after frame i is
// always within one unit of i frame intervals.
package clock

import (
	"fmt"
	"math"
)

// Unit is the length of one delay unit, in milliseconds.
const Unit = 10

// Clock tracks the emitted time of an animation recorded at a fixed frame
// rate.
type Clock struct {
	interval    float64 // ms per frame
	lastEmitted float64 // ms, a multiple of Unit
	frame       int
}

// New returns a clock for the given frame rate.  It panics if fps is not a
// positive, finite number.
func New(fps float64) *Clock {
	if !(fps > 0) || math.IsInf(fps, 0) {
		panic(fmt.Sprintf("clock: invalid frame rate %g", fps))
	}
	return &Clock{interval: 1000 / fps}
}

// Next advances to the next frame and returns its delay in units.
func (c *Clock) Next() int {
	c.frame++
	cur := float64(c.frame) * c.interval
	delay := int(math.Floor((cur - c.lastEmitted) / Unit))
	c.lastEmitted = math.Floor(cur/Unit) * Unit
	return delay
}

// Frame returns the number of frames emitted so far.
func (c *Clock) Frame() int {
	return c.frame
}

// LastEmitted returns the emitted time in milliseconds, truncated to
// multiples of [Unit].
func (c *Clock) LastEmitted() float64 {
	return c.lastEmitted
}

// Interval returns the length of a frame in milliseconds.
func (c *Clock) Interval() float64 {
	return c.interval
}
