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
	"bytes"
	"image"
	"image/gif"
	"testing"

	"seehuhn.de/go/spellcard/config"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 48
	cfg.BulletWidth, cfg.BulletHeight = 4, 4
	cfg.CenterWidth, cfg.CenterHeight = 8, 8
	cfg.Ways = 5
	cfg.Skip = 3
	cfg.Frames = 6
	cfg.Capacity = 7
	cfg.Red, cfg.Green, cfg.Blue = 0, 0, 0
	return cfg
}

func whiteTexture() *image.NRGBA {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range tex.Pix {
		tex.Pix[i] = 255
	}
	return tex
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(smallConfig(), whiteTexture(), &buf, nil); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 6 {
		t.Fatalf("%d frames, want 6", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 10 {
			t.Errorf("frame %d: delay %d, want 10", i, d)
		}
	}
	if g.Config.Width != 64 || g.Config.Height != 48 {
		t.Errorf("size %dx%d", g.Config.Width, g.Config.Height)
	}

	// white marker in the centre, black background in the top right
	// corner, where no projectile passes
	centre := g.Image[0].At(32, 24)
	if r, _, _, _ := centre.RGBA(); r>>8 < 240 {
		t.Errorf("centre pixel %v, want white", centre)
	}
	corner := g.Image[0].At(63, 0)
	if r, _, _, _ := corner.RGBA(); r>>8 > 15 {
		t.Errorf("corner pixel %v, want black", corner)
	}
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer

	cfg := smallConfig()
	cfg.Ways = 0
	if err := Run(cfg, whiteTexture(), &buf, nil); err == nil {
		t.Error("invalid config accepted")
	}

	cfg = smallConfig()
	cfg.Frames = 0
	if err := Run(cfg, whiteTexture(), &buf, nil); err == nil {
		t.Error("animation without frames accepted")
	}

	if err := Run(smallConfig(), image.NewNRGBA(image.Rectangle{}), &buf, nil); err == nil {
		t.Error("empty texture accepted")
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written on failure", buf.Len())
	}
}
