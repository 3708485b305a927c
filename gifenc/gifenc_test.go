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

package gifenc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"slices"
	"testing"
)

// stripes returns a w×h frame of vertical stripes in the given colours.
func stripes(w, h int, cols ...color.NRGBA) []byte {
	pix := make([]byte, 0, 4*w*h)
	for range h {
		for x := range w {
			c := cols[x*len(cols)/w]
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return pix
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 240 && g>>8 < 16 && b>>8 < 16
}

func TestEncode(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	for _, speed := range []int{0, 1, 10, 30} {
		e := &Encoder{Speed: speed}
		delays := []int{10, 10, 33, 34}
		for i, d := range delays {
			frame := stripes(40, 8, red, green, blue)
			if i%2 == 1 {
				frame = stripes(40, 8, blue, red)
			}
			if err := e.WriteFrame(frame, 40, 8, d); err != nil {
				t.Fatal(err)
			}
		}
		if e.Len() != len(delays) {
			t.Fatalf("speed %d: %d frames, want %d", speed, e.Len(), len(delays))
		}

		var buf bytes.Buffer
		if err := e.Encode(&buf); err != nil {
			t.Fatal(err)
		}
		g, err := gif.DecodeAll(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if g.LoopCount != 0 {
			t.Errorf("speed %d: loop count %d, want 0 (forever)", speed, g.LoopCount)
		}
		if !slices.Equal(g.Delay, delays) {
			t.Errorf("speed %d: delays %v, want %v", speed, g.Delay, delays)
		}
		if g.Config.Width != 40 || g.Config.Height != 8 {
			t.Errorf("speed %d: size %dx%d", speed, g.Config.Width, g.Config.Height)
		}
		if len(g.Image) != len(delays) {
			t.Fatalf("speed %d: decoded %d frames", speed, len(g.Image))
		}

		if !isRed(g.Image[0].At(1, 3)) {
			t.Errorf("speed %d: frame 0 pixel (1,3) = %v, want red", speed, g.Image[0].At(1, 3))
		}
		if !isRed(g.Image[1].At(39, 0)) {
			t.Errorf("speed %d: frame 1 pixel (39,0) = %v, want red", speed, g.Image[1].At(39, 0))
		}
	}
}

func TestWriteFrameErrors(t *testing.T) {
	e := &Encoder{}
	if err := e.WriteFrame(make([]byte, 10), 2, 2, 1); err == nil {
		t.Error("short pixel buffer accepted")
	}
	if err := e.WriteFrame(nil, 0, 2, 1); err == nil {
		t.Error("empty frame accepted")
	}
	if err := e.WriteFrame(make([]byte, 16), 2, 2, -1); err == nil {
		t.Error("negative delay accepted")
	}
	if err := e.WriteFrame(make([]byte, 16), 2, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteFrame(make([]byte, 16), 4, 1, 1); err == nil {
		t.Error("frame of different size accepted")
	}
	if e.Len() != 1 {
		t.Errorf("%d frames, want 1", e.Len())
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Encoder{}).Encode(&buf); !errors.Is(err, ErrNoFrames) {
		t.Errorf("got %v, want ErrNoFrames", err)
	}
}

// TestTranslucentColours checks that semi-transparent pixels keep their
// straight colour and become opaque, and that invisible pixels stay
// transparent.
func TestTranslucentColours(t *testing.T) {
	half := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	e := &Encoder{}
	if err := e.WriteFrame(stripes(4, 2, half, color.NRGBA{}), 4, 2, 10); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := e.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	img := anim.Image[0]

	r, g, b, a := img.At(0, 0).RGBA()
	got := [4]int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
	want := [4]int{200, 100, 50, 255}
	for k := range got {
		if d := got[k] - want[k]; d < -2 || d > 2 {
			t.Errorf("translucent pixel = %v, want %v", got, want)
			break
		}
	}
	if _, _, _, a := img.At(3, 1).RGBA(); a != 0 {
		t.Errorf("invisible pixel has alpha %d", a)
	}
}

func TestStraighten(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 1), color.Palette{
		color.RGBA{},
		color.RGBA{R: 50, G: 25, A: 128},
		color.RGBA{B: 1},
	})
	copy(img.Pix, []uint8{0, 1, 2, 2})
	straighten(img)

	if img.Palette[1] != (color.NRGBA{R: 99, G: 49, A: 255}) {
		t.Errorf("palette entry 1 = %v", img.Palette[1])
	}
	// entry 2 has zero alpha, so its pixels move to the transparent entry 0
	if !slices.Equal(img.Pix, []uint8{0, 1, 0, 0}) {
		t.Errorf("pixels = %v", img.Pix)
	}
}
