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

package spellcard

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"seehuhn.de/go/spellcard/backend/soft"
	"seehuhn.de/go/spellcard/batch"
	"seehuhn.de/go/spellcard/clock"
	"seehuhn.de/go/spellcard/config"
	"seehuhn.de/go/spellcard/driver"
	"seehuhn.de/go/spellcard/gifenc"
	"seehuhn.de/go/spellcard/pattern"
)

// Run renders the animation described by cfg, using tex as the texture of
// every projectile and of the centre marker, and writes the GIF to w.
// Progress is reported to logger, which may be nil.
//
// Nothing is written to w unless all frames were rendered.
func Run(cfg config.Config, tex image.Image, w io.Writer, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if tex == nil || tex.Bounds().Empty() {
		return errors.New("empty texture")
	}

	dev := soft.NewDevice(soft.NewTexture(tex))
	r := batch.NewRasterizer(
		dev.NewCanvas(cfg.Width, cfg.Height),
		dev.NewGeometryBuffer(cfg.Capacity),
	)
	r.Background = cfg.Background()
	r.Anchor = cfg.Anchor()

	enc := &gifenc.Encoder{Speed: cfg.QuantizeSpeed}
	d := &driver.Driver{
		Sim:        pattern.New(cfg.PatternParams()),
		Rasterizer: r,
		Clock:      clock.New(cfg.FPS),
		Encoder:    enc,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Skip:       cfg.Skip,
		Frames:     cfg.Frames,
		Logger:     logger,
	}
	if err := d.Run(); err != nil {
		return err
	}
	return enc.Encode(w)
}
