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

// Command export writes the first ticks of every scenario to a JSON file,
// for comparison with other implementations of the simulation.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/spellcard/batch"
	"seehuhn.de/go/spellcard/clock"
	"seehuhn.de/go/spellcard/pattern"
	"seehuhn.de/go/spellcard/scenarios"
)

const numTicks = 8

func main() {
	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}

	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, s := range scenarios.All[category] {
			out.Scenarios = append(out.Scenarios, toJSON(category, s))
		}
	}

	f, err := os.Create("testdata/scenarios.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScenario struct {
	Name     string     `json:"name"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Ways     int        `json:"ways"`
	Speed    float64    `json:"speed_per_frame"`
	Angle    float64    `json:"angle"`
	Delta    float64    `json:"delta"`
	HalfSize [2]float64 `json:"half_size"`
	Capacity int        `json:"capacity"`
	Ticks    []jsonTick `json:"ticks"`
}

type jsonTick struct {
	Angle       float64      `json:"angle"`
	Velocity    float64      `json:"angular_velocity"`
	Delay       int          `json:"delay"`
	Projectiles [][4]float64 `json:"projectiles"` // x, y, dx, dy
	DrawOrder   []int        `json:"draw_order"`
}

func toJSON(category string, s scenarios.Scenario) jsonScenario {
	cfg := s.Config
	params := cfg.PatternParams()
	js := jsonScenario{
		Name:     category + "_" + s.Name,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Ways:     cfg.Ways,
		Speed:    params.SpeedPerFrame,
		Angle:    cfg.Angle,
		Delta:    cfg.Delta,
		HalfSize: [2]float64{params.HalfWidth, params.HalfHeight},
		Capacity: cfg.Capacity,
	}

	p := pattern.New(params)
	clk := clock.New(cfg.FPS)
	for range numTicks {
		p.Tick()
		jt := jsonTick{
			Angle:     p.Angle(),
			Velocity:  p.AngularVelocity(),
			Delay:     clk.Next(),
			DrawOrder: batch.DrawOrder(p.Len(), cfg.Capacity),
		}
		for _, b := range p.Projectiles() {
			jt.Projectiles = append(jt.Projectiles, [4]float64{b.Pos.X, b.Pos.Y, b.Dir.X, b.Dir.Y})
		}
		js.Ticks = append(js.Ticks, jt)
	}
	return js
}
