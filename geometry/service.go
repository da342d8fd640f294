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

// Package geometry defines the geometric types used by the toolpath
// pipeline, and the interface to the geometry kernel.
//
// Model space is three-dimensional, in millimetres.  Planar data (loops and
// regions) uses the two-dimensional coordinates of a [Plane], represented as
// [vec.Vec2] values.
package geometry

import "errors"

// Service is the interface to a geometry kernel.
//
// The pipeline only needs these five operations.  Package planar provides an
// implementation for polygonal solids; other kernels can be substituted.
type Service interface {
	// Slice cuts solids with the plane.  Closed solids give regions in the
	// coordinates of pl, open solids give polylines in model space.
	Slice(solids []Solid, pl Plane) (closed []Region, open []Polyline, err error)

	// Offset moves every edge of l to its left by distance, in the
	// coordinates of pl.  For a counter-clockwise outer loop or a clockwise
	// hole this moves the loop into the material.  The second return value
	// is false if the offset degenerates.
	Offset(l Loop, pl Plane, distance float64) (Loop, bool)

	// Union merges overlapping regions which lie in the same plane.
	Union(regions []Region) ([]Region, error)

	// Intersect returns the parts of c which lie inside r, in order along c.
	Intersect(c Polyline, r Region) []Polyline

	// BoundingBox returns the bounding box of solids, in the coordinates of
	// pl.  The Z range is measured along the plane normal.
	BoundingBox(solids []Solid, pl Plane) Box
}

// ErrUnsupported is returned by a [Service] for input it cannot handle.
var ErrUnsupported = errors.New("unsupported geometry")
