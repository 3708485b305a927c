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

package driver

import (
	"bytes"
	"errors"
	"log"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/spellcard/backend"
	"seehuhn.de/go/spellcard/batch"
	"seehuhn.de/go/spellcard/clock"
)

// countingSim has one quad per tick so far.
type countingSim struct {
	ticks int
}

func (s *countingSim) Len() int { return s.ticks }

func (s *countingSim) PutQuad(dst []float32, i int) {
	for k := range 8 {
		dst[k] = float32(i)
	}
}

func (s *countingSim) Tick() { s.ticks++ }

// tallyCanvas stores the number of quads drawn in the last frame as its
// only pixel.
type tallyCanvas struct {
	quads int
}

func (c *tallyCanvas) Size() (int, int) { return 1, 1 }

func (c *tallyCanvas) DrawPass(buf *backend.GeometryBuffer, pass *backend.Pass) {
	if pass.Load == backend.Clear {
		c.quads = 0
	}
	c.quads += len(pass.Slots)
}

func (c *tallyCanvas) ReadPixels(dst []byte) []byte {
	return append(dst, byte(c.quads), 0, 0, 255)
}

type frame struct {
	quads, delay int
}

type recordingEncoder struct {
	frames []frame
	failAt int
}

func (e *recordingEncoder) WriteFrame(pix []byte, width, height, delay int) error {
	if len(e.frames)+1 == e.failAt {
		return errors.New("disk full")
	}
	e.frames = append(e.frames, frame{int(pix[0]), delay})
	return nil
}

func newDriver(enc Encoder, logger *log.Logger) (*Driver, *countingSim) {
	sim := &countingSim{}
	return &Driver{
		Sim:        sim,
		Rasterizer: batch.NewRasterizer(&tallyCanvas{}, backend.NewGeometryBuffer(4)),
		Clock:      clock.New(3),
		Encoder:    enc,
		Width:      1,
		Height:     1,
		Skip:       5,
		Frames:     3,
		Logger:     logger,
	}, sim
}

func TestRun(t *testing.T) {
	enc := &recordingEncoder{}
	var logBuf bytes.Buffer
	d, sim := newDriver(enc, log.New(&logBuf, "", 0))
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}

	if sim.ticks != 8 {
		t.Errorf("%d ticks, want 8", sim.ticks)
	}
	// frame i shows skip+i projectiles plus the anchor
	want := []frame{{7, 33}, {8, 33}, {9, 34}}
	if !slices.Equal(enc.frames, want) {
		t.Errorf("frames %v, want %v", enc.frames, want)
	}

	out := logBuf.String()
	for _, msg := range []string{"pre-ticking 0/5", "pre-ticking 4/5", "rendering frame 3/3 with 8 projectiles"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log does not contain %q:\n%s", msg, out)
		}
	}
}

func TestRunSilent(t *testing.T) {
	d, _ := newDriver(&recordingEncoder{}, nil)
	d.Frames = 0
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestRunEncoderError(t *testing.T) {
	enc := &recordingEncoder{failAt: 2}
	d, sim := newDriver(enc, nil)
	err := d.Run()
	if err == nil || !strings.Contains(err.Error(), "frame 2") {
		t.Fatalf("got %v, want error for frame 2", err)
	}
	if sim.ticks != 7 {
		t.Errorf("%d ticks after failure, want 7", sim.ticks)
	}
}

func TestRunSizeMismatch(t *testing.T) {
	d, _ := newDriver(&recordingEncoder{}, nil)
	d.Width = 2
	if err := d.Run(); err == nil {
		t.Error("wrong read-back size not detected")
	}
}
