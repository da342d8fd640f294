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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/geometry"
)

var curveCases = []TestCase{
	{
		Name: "corner",
		Items: []any{
			geometry.Polyline{Points: []geometry.Vec3{p3(10, 10, 0.3), p3(30, 10, 0.3), p3(30, 30, 0.3)}},
		},
	},
	{
		Name: "closed",
		Items: []any{
			geometry.Polyline{
				Points: []geometry.Vec3{p3(10, 10, 0.3), p3(30, 10, 0.3), p3(20, 25, 0.3)},
				Closed: true,
			},
		},
	},
	{
		Name: "arc",
		Items: []any{
			geometry.Arc{
				Plane:  geometry.NewPlane(p3(50, 50, 0.3), p3(0, 0, 1)),
				Radius: 20,
				Sweep:  math.Pi,
			},
		},
	},
	{
		Name: "bezier",
		Items: []any{
			geometry.Bezier{
				P0: p3(10, 10, 0.3),
				P1: p3(10, 40, 0.3),
				P2: p3(40, 40, 0.3),
				P3: p3(40, 10, 0.3),
			},
		},
	},
	{
		Name: "outline",
		Items: []any{
			geometry.PathCurve{
				Plane: geometry.HorizontalAt(0.3),
				Path:  roundedRect(10, 10, 40, 30, 5),
			},
		},
	},
	{
		Name: "ramp",
		Items: []any{
			geometry.Line{From: p3(10, 10, 0.3), To: p3(40, 10, 1.5)},
		},
	},
}

// roundedRect returns a closed rectangle path with quarter-circle corners.
func roundedRect(x0, y0, x1, y1, r float64) path.Path {
	// control point distance for a quarter circle
	k := r * 4 * (math.Sqrt2 - 1) / 3
	return func(yield func(path.Command, []vec.Vec2) bool) {
		steps := []struct {
			cmd path.Command
			pts []vec.Vec2
		}{
			{path.CmdMoveTo, []vec.Vec2{pt(x0+r, y0)}},
			{path.CmdLineTo, []vec.Vec2{pt(x1-r, y0)}},
			{path.CmdCubeTo, []vec.Vec2{pt(x1-r+k, y0), pt(x1, y0+r-k), pt(x1, y0+r)}},
			{path.CmdLineTo, []vec.Vec2{pt(x1, y1-r)}},
			{path.CmdCubeTo, []vec.Vec2{pt(x1, y1-r+k), pt(x1-r+k, y1), pt(x1-r, y1)}},
			{path.CmdLineTo, []vec.Vec2{pt(x0+r, y1)}},
			{path.CmdQuadTo, []vec.Vec2{pt(x0, y1), pt(x0, y1-r)}},
			{path.CmdLineTo, []vec.Vec2{pt(x0, y0+r)}},
			{path.CmdQuadTo, []vec.Vec2{pt(x0, y0), pt(x0+r, y0)}},
			{path.CmdClose, nil},
		}
		for _, s := range steps {
			if !yield(s.cmd, s.pts) {
				return
			}
		}
	}
}
