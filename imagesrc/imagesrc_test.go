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

package imagesrc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := range 3 {
		for x := range 5 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(50 * x), G: uint8(80 * y), B: 7, A: 255})
		}
	}
	return img
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	want := testImage()

	encoders := map[string]func(*os.File) error{
		"a.png":  func(f *os.File) error { return png.Encode(f, want) },
		"b.bmp":  func(f *os.File) error { return bmp.Encode(f, want) },
		"c.tiff": func(f *os.File) error { return tiff.Encode(f, want, nil) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc(f); err != nil {
				t.Fatal(err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.Bounds() != want.Bounds() {
				t.Fatalf("bounds %v, want %v", got.Bounds(), want.Bounds())
			}
			if !bytes.Equal(got.Pix, want.Pix) {
				t.Error("pixel data differs")
			}
		})
	}
}

func TestDecodeOffset(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.SetRGBA(10, 20, color.RGBA{R: 255, A: 255})
	src.SetRGBA(11, 20, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if c := img.NRGBAAt(1, 0); c != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("pixel (1,0) = %v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.png")
	_, err := Load(missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("error %v does not name the path", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(garbage)
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("garbage file: got %v", err)
	}
}
