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

// Command spellcard-plan draws the compositing order of every scenario's
// first recorded frame as a PDF.
//
// Every projectile is drawn as its bounding box, in the same order as the
// renderer draws it.  The grey level increases with the draw position, so
// the oldest projectiles, which are drawn last, are the lightest.  The
// centre marker is outlined in white.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/spellcard/batch"
	"seehuhn.de/go/spellcard/pattern"
	"seehuhn.de/go/spellcard/scenarios"
)

const planDir = "testdata/plan"

func main() {
	if err := os.MkdirAll(planDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, s := range scenarios.All[category] {
			name := category + "_" + s.Name
			pdfPath := filepath.Join(planDir, name+".pdf")
			if err := generatePDF(s, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(s scenarios.Scenario, pdfPath string) error {
	cfg := s.Config
	w, h := float64(cfg.Width), float64(cfg.Height)

	p := pattern.New(cfg.PatternParams())
	for range cfg.Skip + 1 {
		p.Tick()
	}

	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF origin is bottom-left; the field has y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	order := batch.DrawOrder(p.Len(), cfg.Capacity)
	var outline path.Data
	for k, i := range order {
		level := 0.2 + 0.8*float64(k+1)/float64(len(order))
		page.SetFillColor(color.DeviceGray(level))
		quadPath(&outline, p.Quad(i))
		drawPath(page, &outline)
		page.Fill()
	}

	hw, hh := cfg.CenterWidth/2, cfg.CenterHeight/2
	anchor := pattern.BoxQuad(vec.Vec2{X: w / 2, Y: h / 2}, hw, hh)
	page.SetStrokeColor(color.DeviceGray(1))
	page.SetLineWidth(1)
	quadPath(&outline, anchor)
	drawPath(page, &outline)
	page.Stroke()

	return page.Close()
}

// quadPath replaces the contents of dst by the outline of q.
func quadPath(dst *path.Data, q pattern.Quad) {
	dst.Cmds = dst.Cmds[:0]
	dst.Coords = dst.Coords[:0]
	dst.MoveTo(q[0]).LineTo(q[1]).LineTo(q[3]).LineTo(q[2]).Close()
}

// pathBuilder is the part of the PDF content stream writer used here.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

func drawPath(page pathBuilder, d *path.Data) {
	k := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(d.Coords[k].X, d.Coords[k].Y)
			k++
		case path.CmdLineTo:
			page.LineTo(d.Coords[k].X, d.Coords[k].Y)
			k++
		case path.CmdClose:
			page.ClosePath()
		}
	}
}
