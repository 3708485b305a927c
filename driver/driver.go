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

// Package driver records an animation: it advances the simulation, renders
// every frame and hands the pixels to an encoder.
package driver

import (
	"fmt"
	"log"

	"seehuhn.de/go/spellcard/batch"
	"seehuhn.de/go/spellcard/clock"
)

// Simulation is a quad sequence which can be advanced by one tick.
type Simulation interface {
	batch.Source
	Tick()
}

// Encoder receives the recorded frames.
type Encoder interface {
	// WriteFrame consumes one frame of tightly packed RGBA8 pixels.  The
	// delay is given in units of [clock.Unit] milliseconds.  The encoder
	// must not retain pix after WriteFrame returns.
	WriteFrame(pix []byte, width, height, delay int) error
}

// Driver sequences the warm-up ticks and the recorded frames.
type Driver struct {
	Sim        Simulation
	Rasterizer *batch.Rasterizer
	Clock      *clock.Clock
	Encoder    Encoder

	Width, Height int // canvas size

	Skip   int // ticks before the first recorded frame
	Frames int // number of recorded frames

	// Logger receives progress messages.  If nil, nothing is logged.
	Logger *log.Logger

	pix []byte
}

// Run executes the warm-up ticks and records all frames.  Each frame is
// completely drawn and read back before the next tick starts.
func (d *Driver) Run() error {
	for t := range d.Skip {
		d.logf("pre-ticking %d/%d", t, d.Skip)
		d.Sim.Tick()
	}

	for i := 1; i <= d.Frames; i++ {
		d.Sim.Tick()
		d.logf("rendering frame %d/%d with %d projectiles", i, d.Frames, d.Sim.Len())

		d.Rasterizer.Render(d.Sim)
		d.pix = d.Rasterizer.Snapshot(d.pix[:0])
		if len(d.pix) != 4*d.Width*d.Height {
			return fmt.Errorf("frame %d: read back %d bytes, want %d",
				i, len(d.pix), 4*d.Width*d.Height)
		}

		delay := d.Clock.Next()
		if err := d.Encoder.WriteFrame(d.pix, d.Width, d.Height, delay); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

func (d *Driver) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}
