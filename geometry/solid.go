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

package geometry

import "seehuhn.de/go/geom/vec"

// Solid is a body which can be cut by planes.
type Solid interface {
	// Bounds returns the axis-aligned bounding box of the solid.
	Bounds() Box

	// Closed reports whether the solid encloses a volume.  Cutting a closed
	// solid gives regions, cutting an open one gives curves.
	Closed() bool
}

// Prism is a polygon with holes, extruded vertically from ZMin to ZMax.
// The polygon is given in world XY coordinates.
type Prism struct {
	Outer      Loop
	Holes      []Loop
	ZMin, ZMax float64
}

// NewBox returns the axis-aligned box with the given corners as a Prism.
func NewBox(lo, hi Vec3) Prism {
	return Prism{
		Outer: Loop{
			{X: lo.X, Y: lo.Y},
			{X: hi.X, Y: lo.Y},
			{X: hi.X, Y: hi.Y},
			{X: lo.X, Y: hi.Y},
		},
		ZMin: lo.Z,
		ZMax: hi.Z,
	}
}

// Bounds implements the [Solid] interface.
func (p Prism) Bounds() Box {
	return profileBounds(p.Outer, p.ZMin, p.ZMax)
}

// Closed implements the [Solid] interface.
func (p Prism) Closed() bool { return true }

// Sheet is an open surface, obtained by extruding a polyline in world XY
// coordinates vertically from ZMin to ZMax.
type Sheet struct {
	Profile    []vec.Vec2
	ZMin, ZMax float64
}

// Bounds implements the [Solid] interface.
func (s Sheet) Bounds() Box {
	return profileBounds(s.Profile, s.ZMin, s.ZMax)
}

// Closed implements the [Solid] interface.
func (s Sheet) Closed() bool { return false }

func profileBounds(pts []vec.Vec2, z0, z1 float64) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Extend(Vec3{p.X, p.Y, z0}).Extend(Vec3{p.X, p.Y, z1})
	}
	return b
}
