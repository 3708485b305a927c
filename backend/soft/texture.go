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

package soft

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Texture is the image painted onto every quad.  The image is stretched to
// cover the quad; scaled copies are cached by pixel size.
type Texture struct {
	src     *image.NRGBA
	sprites map[image.Point]*image.NRGBA
}

// NewTexture converts img to a texture.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	src, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		src = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Copy(src, image.Point{}, img, b, xdraw.Src, nil)
	}
	return &Texture{
		src:     src,
		sprites: make(map[image.Point]*image.NRGBA),
	}
}

// SolidTexture returns a 1×1 texture of the given colour.
func SolidTexture(c color.NRGBA) *Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return NewTexture(img)
}

// Size returns the dimensions of the unscaled texture.
func (t *Texture) Size() image.Point {
	return t.src.Bounds().Size()
}

// sprite returns the texture scaled to size, using bilinear interpolation.
// Only the pixels in win, a non-empty sub-rectangle of the scaled image,
// are guaranteed to be present.  A texture which already has the requested
// size is returned unchanged; other full-size sprites are cached, partial
// ones are drawn into scratch.
func (t *Texture) sprite(size image.Point, win image.Rectangle, scratch *image.NRGBA) *image.NRGBA {
	if size == t.src.Bounds().Size() {
		return t.src
	}
	full := image.Rectangle{Max: size}
	if win == full {
		if s, ok := t.sprites[size]; ok {
			return s
		}
		s := image.NewNRGBA(full)
		xdraw.BiLinear.Scale(s, full, t.src, t.src.Bounds(), xdraw.Src, nil)
		t.sprites[size] = s
		return s
	}

	n := 4 * win.Dx() * win.Dy()
	pix := scratch.Pix
	if cap(pix) < n {
		pix = make([]uint8, n)
	}
	*scratch = image.NRGBA{Pix: pix[:n], Stride: 4 * win.Dx(), Rect: win}
	// the destination bounds clip the scaled image to win
	xdraw.BiLinear.Scale(scratch, full, t.src, t.src.Bounds(), xdraw.Src, nil)
	return scratch
}
