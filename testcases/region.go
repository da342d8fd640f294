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

import "seehuhn.de/go/toolpath/geometry"

var regionCases = []TestCase{
	{
		Name:     "square",
		Settings: []string{"fill_density=50%"},
		Items: []any{
			geometry.NewRegion(geometry.HorizontalAt(0.3), square(10, 10, 20), nil, geometry.Whole),
		},
	},
	{
		Name:     "frame",
		Settings: []string{"fill_density=1", "fill_angle=0"},
		Items: []any{
			geometry.NewRegion(geometry.HorizontalAt(0.3), square(10, 10, 30),
				[]geometry.Loop{square(20, 20, 10)}, geometry.Whole),
		},
	},
	{
		Name: "stacked",
		Items: []any{
			geometry.NewRegion(geometry.HorizontalAt(0.6), square(0, 0, 10), nil, geometry.Whole),
			geometry.NewRegion(geometry.HorizontalAt(0.3), square(0, 0, 10), nil, geometry.Whole),
		},
	},
}
