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

package skein

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
)

// maxRings bounds the number of spiral rings per region.
const maxRings = 10000

// Spiral winds a single open path inwards from the outer boundary of r.
//
// The path consists of rings at distance Width/2, Width/2+spacing,
// Width/2+2*spacing, ... from the boundary.  The rings stop once an offset
// fails, leaves the region or no longer shrinks.  Every ring is opened by
// cutting away the last Width units before its start point, and the
// rings are joined end to start.
func (g *Generator) Spiral(r geometry.Region, spacing float64, rep *diag.Report) []geometry.Polyline {
	var rings []geometry.Loop
	for k := range maxRings {
		d := g.Width/2 + float64(k)*spacing
		ring, ok := g.Service.Offset(r.Outer, r.Plane, d)
		if !ok {
			break
		}
		if totalLength(g.Service.Intersect(r.Lift(ring), r)) == 0 {
			break
		}
		if k > 0 && !strictlyInside(ring, rings[k-1]) {
			break
		}
		rings = append(rings, ring)
		if spacing <= 0 {
			break
		}
	}
	if len(rings) == 0 {
		rep.Warnf("spiral: region is too small")
		return nil
	}

	var pts []vec.Vec2
	for _, ring := range rings {
		pts = append(pts, openLoop(ring, g.Width)...)
	}
	if len(pts) < 2 {
		rep.Warnf("spiral: rings are shorter than the line width")
		return nil
	}
	return []geometry.Polyline{{Points: liftAll(r.Plane, pts)}}
}

// strictlyInside reports whether the loop inner lies inside outer without
// touching it.
func strictlyInside(inner, outer geometry.Loop) bool {
	if math.Abs(inner.Area()) >= math.Abs(outer.Area()) {
		return false
	}
	for _, p := range inner {
		if !outer.Contains(p) {
			return false
		}
	}
	return true
}

// openLoop returns the points of l, starting at l[0], with the last cut
// units of the closed loop removed.  The result is empty if the loop is not
// longer than cut.
func openLoop(l geometry.Loop, cut float64) []vec.Vec2 {
	keep := l.Perimeter() - cut
	if keep <= 0 || len(l) < 2 {
		return nil
	}
	res := []vec.Vec2{l[0]}
	for i := range l {
		a, b := l[i], l[(i+1)%len(l)]
		seg := b.Sub(a).Length()
		if seg >= keep {
			if keep > 0 {
				res = append(res, a.Add(b.Sub(a).Mul(keep/seg)))
			}
			break
		}
		keep -= seg
		res = append(res, b)
	}
	return res
}
