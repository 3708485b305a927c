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

// Package gifenc collects RGBA frames into a looping animated GIF.
//
// Every frame gets its own palette of at most 256 colours, computed by
// median cut over a sample of the frame's pixels.  Frames are kept in memory
// and the file is written in one go by [Encoder.Encode].
package gifenc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// Encoder accumulates the frames of one animation.
//
// The zero value is ready to use and samples every pixel.
type Encoder struct {
	// Speed is the pixel stride used when sampling a frame for its
	// palette: 1 uses every pixel, larger values are faster and coarser.
	Speed int

	anim gif.GIF
}

// ErrNoFrames is returned by [Encoder.Encode] if no frame was written.
var ErrNoFrames = errors.New("gifenc: no frames")

// WriteFrame appends a frame given as tightly packed RGBA8 pixels.  The
// delay is measured in hundredths of a second.  All frames must have the
// same size.
func (e *Encoder) WriteFrame(pix []byte, width, height, delay int) error {
	if width < 1 || height < 1 || width > 65535 || height > 65535 {
		return fmt.Errorf("gifenc: invalid frame size %dx%d", width, height)
	}
	if len(pix) != 4*width*height {
		return fmt.Errorf("gifenc: got %d bytes for a %dx%d frame", len(pix), width, height)
	}
	if delay < 0 {
		return fmt.Errorf("gifenc: negative delay %d", delay)
	}
	if n := len(e.anim.Image); n > 0 {
		if b := e.anim.Image[0].Bounds(); b.Dx() != width || b.Dy() != height {
			return fmt.Errorf("gifenc: frame %d is %dx%d, animation is %dx%d",
				n, width, height, b.Dx(), b.Dy())
		}
	}

	src := &image.NRGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
	pal := quantize.MedianCutQuantizer{}.Quantize(make(color.Palette, 0, 256), e.sample(src))
	if len(pal) == 0 {
		pal = color.Palette{color.Black}
	}

	dst := image.NewPaletted(src.Rect, pal)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	straighten(dst)

	e.anim.Image = append(e.anim.Image, dst)
	e.anim.Delay = append(e.anim.Delay, delay)
	return nil
}

// straighten replaces the premultiplied palette of img by straight colours.
// GIF has no partial transparency: visible entries become opaque, and
// pixels of all invisible entries are moved to the first one, which is the
// only transparent index a GIF can have.
func straighten(img *image.Paletted) {
	transparent := -1
	var remap [256]uint8
	moved := false
	for i, c := range img.Palette {
		remap[i] = uint8(i)
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if n.A == 0 {
			if transparent < 0 {
				transparent = i
			} else {
				remap[i] = uint8(transparent)
				moved = true
			}
			img.Palette[i] = color.NRGBA{}
			continue
		}
		n.A = 255
		img.Palette[i] = n
	}
	if moved {
		for i, p := range img.Pix {
			img.Pix[i] = remap[p]
		}
	}
}

// sample returns every Speed-th pixel of img, in row-major order, as a
// single-row image.
func (e *Encoder) sample(img *image.NRGBA) *image.NRGBA {
	stride := max(e.Speed, 1)
	if stride == 1 {
		return img
	}
	n := len(img.Pix) / 4
	res := image.NewNRGBA(image.Rect(0, 0, (n+stride-1)/stride, 1))
	for i, j := 0, 0; i < n; i, j = i+stride, j+1 {
		copy(res.Pix[4*j:4*j+4], img.Pix[4*i:4*i+4])
	}
	return res
}

// Len returns the number of frames written so far.
func (e *Encoder) Len() int {
	return len(e.anim.Image)
}

// Encode writes the animation to w.  The animation loops forever.
func (e *Encoder) Encode(w io.Writer) error {
	if len(e.anim.Image) == 0 {
		return ErrNoFrames
	}
	e.anim.LoopCount = 0
	b := e.anim.Image[0].Bounds()
	e.anim.Config = image.Config{
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	if err := gif.EncodeAll(w, &e.anim); err != nil {
		return fmt.Errorf("gifenc: %w", err)
	}
	return nil
}
