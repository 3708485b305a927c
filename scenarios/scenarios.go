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

// Package scenarios holds named spell card configurations used for tests
// and for the inspection tools.
package scenarios

import "seehuhn.de/go/spellcard/config"

// Scenario is a named configuration.
type Scenario struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Config config.Config
}

// All contains all scenarios, grouped by category.
// The category name is used as a prefix in generated file names.
var All = map[string][]Scenario{
	"basic":  basicScenarios,
	"dense":  denseScenarios,
	"shape":  shapeScenarios,
	"timing": timingScenarios,
}

// small returns a quick configuration on a 128×128 field.
func small() config.Config {
	c := config.Default()
	c.Width, c.Height = 128, 128
	c.BulletWidth, c.BulletHeight = 6, 6
	c.CenterWidth, c.CenterHeight = 12, 12
	c.Skip = 10
	c.Frames = 20
	return c
}

func with(c config.Config, modify func(*config.Config)) config.Config {
	modify(&c)
	return c
}

var basicScenarios = []Scenario{
	{Name: "default", Config: config.Default()},
	{Name: "small", Config: small()},
	{Name: "single_way", Config: with(small(), func(c *config.Config) { c.Ways = 1 })},
	{Name: "straight", Config: with(small(), func(c *config.Config) { c.Delta = 0 })},
	{Name: "tilted", Config: with(small(), func(c *config.Config) { c.Angle = 22.5 })},
}

var denseScenarios = []Scenario{
	{Name: "many_ways", Config: with(small(), func(c *config.Config) {
		c.Ways = 64
		c.Capacity = 100
	})},
	{Name: "slow", Config: with(small(), func(c *config.Config) {
		c.Speed = 12
		c.Ways = 16
		c.Capacity = 37
	})},
	{Name: "tiny_buffer", Config: with(small(), func(c *config.Config) { c.Capacity = 1 })},
}

var shapeScenarios = []Scenario{
	{Name: "wide_field", Config: with(small(), func(c *config.Config) { c.Width = 256 })},
	{Name: "flat_bullets", Config: with(small(), func(c *config.Config) {
		c.BulletWidth, c.BulletHeight = 20, 3
	})},
	{Name: "point_bullets", Config: with(small(), func(c *config.Config) {
		c.BulletWidth, c.BulletHeight = 0, 0
	})},
	{Name: "no_marker", Config: with(small(), func(c *config.Config) {
		c.CenterWidth, c.CenterHeight = 0, 0
	})},
}

var timingScenarios = []Scenario{
	{Name: "fps3", Config: with(small(), func(c *config.Config) { c.FPS = 3 })},
	{Name: "fps30", Config: with(small(), func(c *config.Config) { c.FPS = 30 })},
	{Name: "fast_spin", Config: with(small(), func(c *config.Config) { c.Delta = 47.3 })},
	{Name: "no_warmup", Config: with(small(), func(c *config.Config) { c.Skip = 0 })},
}
