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

// Command spellcard renders a radial projectile burst over a texture and
// writes it as an animated GIF.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"seehuhn.de/go/spellcard"
	"seehuhn.de/go/spellcard/config"
	"seehuhn.de/go/spellcard/imagesrc"
)

func parseFlags(args []string) (config.Config, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet("spellcard", flag.ContinueOnError)
	fs.StringVar(&cfg.Input, "input", cfg.Input, "image used for every projectile and the centre marker")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output GIF file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "output width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "output height in pixels")
	fs.Float64Var(&cfg.BulletWidth, "bullet-width", cfg.BulletWidth, "projectile width")
	fs.Float64Var(&cfg.BulletHeight, "bullet-height", cfg.BulletHeight, "projectile height")
	fs.Float64Var(&cfg.CenterWidth, "center-width", cfg.CenterWidth, "centre marker width")
	fs.Float64Var(&cfg.CenterHeight, "center-height", cfg.CenterHeight, "centre marker height")
	fs.IntVar(&cfg.Ways, "ways", cfg.Ways, "projectiles spawned per tick")
	fs.Float64Var(&cfg.FPS, "fps", cfg.FPS, "ticks per second")
	fs.IntVar(&cfg.QuantizeSpeed, "speed-gif", cfg.QuantizeSpeed,
		fmt.Sprintf("palette sampling stride, in [1,%d]", config.MaxQuantizeSpeed))
	fs.Float64Var(&cfg.Angle, "angle", cfg.Angle, "initial spawn angle in degrees")
	fs.Float64Var(&cfg.Delta, "delta", cfg.Delta, "angular acceleration in degrees per tick²")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "projectile speed in pixels per second")
	fs.IntVar(&cfg.Skip, "skip", cfg.Skip, "ticks to run before recording")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "frames to record")
	fs.Float64Var(&cfg.Red, "red", cfg.Red, "background red")
	fs.Float64Var(&cfg.Green, "green", cfg.Green, "background green")
	fs.Float64Var(&cfg.Blue, "blue", cfg.Blue, "background blue")
	fs.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "background alpha")
	fs.IntVar(&cfg.Capacity, "batch", cfg.Capacity, "quads per draw pass")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config, logger *log.Logger) error {
	tex, err := imagesrc.Load(cfg.Input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := spellcard.Run(cfg, tex, &buf, logger); err != nil {
		return err
	}

	err = os.WriteFile(cfg.Output, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("output %q: %w", cfg.Output, err)
	}
	logger.Printf("wrote %q (%d bytes)", cfg.Output, buf.Len())
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := run(cfg, log.Default()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
