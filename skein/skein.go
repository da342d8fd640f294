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

// Package skein fills planar regions with extrusion paths.
//
// Three patterns are available: [Generator.Shell] traces the centre line of
// a perimeter ring, [Generator.Spiral] winds a single path inwards from the
// boundary of a region, and [Generator.Hatch] covers a region with parallel
// lines, connected into back-and-forth runs.
//
// Geometric problems never stop the generator.  They are recorded as
// warnings and the affected region gives no paths.
package skein

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
)

// Generator produces extrusion paths for planar regions.
type Generator struct {
	Service geometry.Service

	// Width is the width of one extruded line.  It is used as the hatch
	// line spacing and as the distance between a boundary and the centre
	// line of the path next to it.
	Width float64
}

// Shell returns the centre line of a perimeter ring, as a closed polyline.
func (g *Generator) Shell(ring geometry.Region, rep *diag.Report) []geometry.Polyline {
	center, ok := g.Service.Offset(ring.Outer, ring.Plane, g.Width/2)
	if !ok {
		rep.Warnf("shell: ring is too narrow for a perimeter")
		return nil
	}
	return []geometry.Polyline{ring.Lift(center)}
}

func totalLength(pp []geometry.Polyline) float64 {
	var l float64
	for _, p := range pp {
		l += p.Length()
	}
	return l
}

func liftAll(pl geometry.Plane, pts []vec.Vec2) []geometry.Vec3 {
	res := make([]geometry.Vec3, len(pts))
	for i, p := range pts {
		res[i] = pl.At(p)
	}
	return res
}
