// seehuhn.de/go/toolpath - toolpath generation for 3D printers
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

package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/layer"
)

var brickSettings = []string{
	"layer_height=1",
	"perimeters=2",
	"fill_density=30%",
	"nozzle_diameter=0.5",
	"filament_diameter=2.95",
}

var solidCases = []TestCase{
	{
		Name:     "brick",
		Settings: brickSettings,
		Items:    []any{box(0, 0, 50, 50, 10)},
	},
	{
		Name:     "hole",
		Settings: []string{"layer_height=0.5", "perimeters=2"},
		Items: []any{
			geometry.Prism{
				Outer: square(10, 10, 30),
				Holes: []geometry.Loop{square(20, 20, 10)},
				ZMax:  2,
			},
		},
	},
	{
		Name:     "merged",
		Settings: []string{"layer_height=0.5", "perimeters=1"},
		Mode:     layer.Full,
		Items:    []any{box(0, 0, 20, 20, 2), box(10, 10, 30, 30, 2)},
	},
	{
		Name:     "separate",
		Settings: []string{"layer_height=0.5", "perimeters=1"},
		Mode:     layer.ZOnly,
		Items:    []any{box(0, 0, 20, 20, 2), box(10, 10, 30, 30, 2)},
	},
	{
		Name:     "spiral",
		Settings: []string{"layer_height=0.5", "perimeters=3", "perimeter_mode=spiral"},
		Items:    []any{box(5, 5, 35, 25, 1.5)},
	},
	{
		Name:     "lshape_round",
		Settings: []string{"layer_height=0.4", "offset_join=round", "fill_angle=30"},
		Items: []any{
			geometry.Prism{
				Outer: geometry.Loop{pt(0, 0), pt(30, 0), pt(30, 10), pt(10, 10), pt(10, 30), pt(0, 30)},
				ZMax:  1.2,
			},
		},
	},
	{
		Name:     "sheet",
		Settings: []string{"layer_height=0.5"},
		Items: []any{
			geometry.Sheet{
				Profile: []vec.Vec2{pt(10, 10), pt(40, 10), pt(40, 30)},
				ZMax:    1.5,
			},
		},
	},
	{
		Name:     "too_thin",
		Settings: []string{"layer_height=0.5"},
		Items:    []any{box(0, 0, 20, 1, 1), box(30, 0, 50, 20, 1)},
	},
	{
		Name:  "outside",
		Items: []any{box(190, 0, 210, 10, 1), box(0, 0, 10, 10, 0.6)},
	},
}
