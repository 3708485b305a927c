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

// Package config holds the settings of a spell card export.
package config

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/spellcard/backend"
	"seehuhn.de/go/spellcard/pattern"
)

// Config describes one animation.
type Config struct {
	Input  string // background image path
	Output string // GIF path

	Width, Height int // field and output size in pixels

	BulletWidth, BulletHeight float64 // projectile size in pixels
	CenterWidth, CenterHeight float64 // size of the centre marker

	Ways int     // projectiles spawned per tick
	FPS  float64 // ticks per second of animation time

	// QuantizeSpeed trades palette quality for encoding speed, from 1
	// (sample every pixel) to 30.
	QuantizeSpeed int

	Angle float64 // initial spawn angle in degrees
	Delta float64 // angular acceleration in degrees per tick²
	Speed float64 // projectile speed in pixels per second

	Skip   int // warm-up ticks before the first recorded frame
	Frames int // number of recorded frames

	Red, Green, Blue, Alpha float64 // background colour, each in [0,1]

	// Capacity is the number of quads drawn per geometry buffer pass.
	Capacity int
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Input:         "img.png",
		Output:        "output.gif",
		Width:         512,
		Height:        512,
		BulletWidth:   15,
		BulletHeight:  15,
		CenterWidth:   50,
		CenterHeight:  50,
		Ways:          8,
		FPS:           10,
		QuantizeSpeed: 10,
		Angle:         0,
		Delta:         0.5,
		Speed:         96,
		Skip:          40,
		Frames:        100,
		Red:           1,
		Green:         1,
		Blue:          1,
		Alpha:         1,
		Capacity:      1024,
	}
}

// MaxQuantizeSpeed is the largest allowed value of QuantizeSpeed.
const MaxQuantizeSpeed = 30

var errEmptyPath = errors.New("empty path")

// Validate checks the settings and returns an error describing the first
// invalid field.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input: %w", errEmptyPath)
	}
	if c.Output == "" {
		return fmt.Errorf("output: %w", errEmptyPath)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Width > 65535 || c.Height > 65535 {
		return fmt.Errorf("size %dx%d exceeds the GIF limit", c.Width, c.Height)
	}
	if !nonNegative(c.BulletWidth) || !nonNegative(c.BulletHeight) {
		return fmt.Errorf("invalid bullet size %gx%g", c.BulletWidth, c.BulletHeight)
	}
	if !nonNegative(c.CenterWidth) || !nonNegative(c.CenterHeight) {
		return fmt.Errorf("invalid centre size %gx%g", c.CenterWidth, c.CenterHeight)
	}
	if c.Ways < 1 {
		return fmt.Errorf("invalid number of ways %d", c.Ways)
	}
	if !(c.FPS > 0) || math.IsInf(c.FPS, 0) {
		return fmt.Errorf("invalid frame rate %g", c.FPS)
	}
	if c.QuantizeSpeed < 1 || c.QuantizeSpeed > MaxQuantizeSpeed {
		return fmt.Errorf("quantize speed %d not in [1,%d]", c.QuantizeSpeed, MaxQuantizeSpeed)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"angle", c.Angle}, {"delta", c.Delta}, {"speed", c.Speed}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%s is not finite", v.name)
		}
	}
	if c.Skip < 0 {
		return fmt.Errorf("invalid skip count %d", c.Skip)
	}
	if c.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	for _, ch := range []float64{c.Red, c.Green, c.Blue, c.Alpha} {
		if !(ch >= 0 && ch <= 1) {
			return fmt.Errorf("background colour channel %g not in [0,1]", ch)
		}
	}
	if c.Capacity < 1 {
		return fmt.Errorf("invalid batch capacity %d", c.Capacity)
	}
	return nil
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}

// SpeedPerFrame returns the distance a projectile moves per tick.
func (c *Config) SpeedPerFrame() float64 {
	return c.Speed / c.FPS
}

// PatternParams returns the initial state of the simulation.
// The angular velocity always starts at zero.
func (c *Config) PatternParams() pattern.Params {
	return pattern.Params{
		Width:               float64(c.Width),
		Height:              float64(c.Height),
		Ways:                c.Ways,
		SpeedPerFrame:       c.SpeedPerFrame(),
		Angle:               c.Angle,
		AngularAcceleration: c.Delta,
		HalfWidth:           c.BulletWidth / 2,
		HalfHeight:          c.BulletHeight / 2,
	}
}

// Background returns the colour the canvas is cleared to.
func (c *Config) Background() backend.Color {
	return backend.Color{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
}

// Anchor returns the NDC geometry of the centre marker.
func (c *Config) Anchor() [pattern.QuadFloats]float32 {
	return pattern.CenterQuad(float64(c.Width), float64(c.Height),
		c.CenterWidth/2, c.CenterHeight/2)
}
