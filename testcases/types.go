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

// Package testcases holds print jobs used for regression tests.
package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/layer"
)

// TestCase is a complete print job.
type TestCase struct {
	Name     string     // lowercase a-z and _ only
	Settings []string   // "key=value" lines, on top of the default profile
	Mode     layer.Mode // how the items are grouped into layers
	Items    []any      // the input of the job
}

// Config returns the settings of the test case.
func (tc TestCase) Config() (config.Map, error) {
	return config.WithDefaults(tc.Settings)
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// p3 is a helper to create a point in model space.
func p3(x, y, z float64) geometry.Vec3 {
	return geometry.Vec3{X: x, Y: y, Z: z}
}

// box returns an axis-aligned brick standing on the print bed.
func box(x0, y0, x1, y1, h float64) geometry.Prism {
	return geometry.NewBox(p3(x0, y0, 0), p3(x1, y1, h))
}

// square returns a counter-clockwise square loop.
func square(x0, y0, size float64) geometry.Loop {
	return geometry.Loop{pt(x0, y0), pt(x0+size, y0), pt(x0+size, y0+size), pt(x0, y0+size)}
}
