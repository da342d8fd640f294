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
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/layer"
	"seehuhn.de/go/toolpath/movement"
)

var movementCases = []TestCase{
	{
		Name:  "blobs",
		Items: []any{p3(10, 10, 0.3), p3(20, 10, 0.3), p3(20, 20, 0.6)},
	},
	{
		Name: "raw",
		Items: []any{
			movement.NewRaw(0.3, "M106 S255 ; fan on"),
			geometry.Line{From: p3(10, 10, 0.3), To: p3(30, 10, 0.3)},
			movement.NewRaw(0.6, "M106 S0 ; fan off"),
		},
	},
	{
		Name:     "segments",
		Settings: []string{"absolute_extrudersteps=0"},
		Items: []any{
			[]movement.Segment{
				{
					Line:  geometry.Line{From: p3(10, 10, 0.3), To: p3(30, 10, 0.3)},
					Flow:  movement.Some(0.05),
					Speed: movement.Some(1200),
				},
				{
					Line:  geometry.Line{From: p3(30, 10, 0.3), To: p3(30, 20, 0.3)},
					Speed: movement.Some(600),
				},
			},
		},
	},
	{
		Name: "custom_delimiter",
		Items: []any{
			&movement.Run{
				Segments: []movement.Segment{
					{Line: geometry.Line{From: p3(10, 10, 0.3), To: p3(20, 10, 0.3)}},
					{Line: geometry.Line{From: p3(20, 10, 0.3), To: p3(20, 20, 0.3)}},
				},
				Delimiter: &movement.Delimiter{
					StartVec:      p3(-2, 0, -1),
					EndVec:        p3(2, 0, 1),
					StartSpeed:    1800,
					EndSpeed:      1800,
					StartPressure: 0.5,
					EndPressure:   -0.5,
				},
			},
		},
	},
	{
		Name: "unsorted",
		Mode: layer.None,
		Items: []any{
			geometry.Line{From: p3(10, 10, 0.9), To: p3(20, 10, 0.9)},
			p3(15, 15, 0.3),
			geometry.Line{From: p3(10, 20, 0.6), To: p3(20, 20, 0.6)},
		},
	},
	{
		Name: "unsupported",
		Items: []any{
			"not geometry",
			geometry.Line{From: p3(10, 10, 0.3), To: p3(20, 10, 0.3)},
		},
	},
}
