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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/geometry"
)

// ScanLines returns the number of hatch lines used for a region whose
// bounding box, in the hatch frame, has long side length.
func ScanLines(density, length, spacing float64) int {
	if density <= 0 || spacing <= 0 {
		return 0
	}
	return int(math.Round(density * length / spacing))
}

// Hatch covers r with parallel lines.
//
// The region is measured in a frame turned by angle degrees.  Lines are
// placed perpendicular to the long side of the bounding box in this frame,
// at the centres of ScanLines(density, ...) equal cells.  The parts of
// neighbouring lines are joined into back-and-forth runs as long as the
// connecting move stays inside the region.  The result is empty if the
// density gives no lines.
func (g *Generator) Hatch(r geometry.Region, density, angle float64) []geometry.Polyline {
	m := matrix.RotateDeg(angle)

	// region coordinates -> hatch frame
	toFrame := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: m[0]*p.X + m[1]*p.Y, Y: m[2]*p.X + m[3]*p.Y}
	}
	// hatch frame -> region coordinates
	fromFrame := func(q vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: m[0]*q.X + m[2]*q.Y, Y: m[1]*q.X + m[3]*q.Y}
	}

	box := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range r.Outer {
		q := toFrame(p)
		box.LLx = min(box.LLx, q.X)
		box.LLy = min(box.LLy, q.Y)
		box.URx = max(box.URx, q.X)
		box.URy = max(box.URy, q.Y)
	}
	w, h := box.URx-box.LLx, box.URy-box.LLy
	if !(w > 0 && h > 0) {
		return nil
	}

	// The border lines run along the long side of the box, the scan lines
	// connect corresponding points on the two borders.
	along, across := vec.Vec2{X: 1}, vec.Vec2{Y: 1}
	length, depth := w, h
	if h > w {
		along, across = across, along
		length, depth = h, w
	}
	n := ScanLines(density, length, g.Width)
	if n == 0 {
		return nil
	}

	origin := vec.Vec2{X: box.LLx, Y: box.LLy}
	margin := g.Width
	var lines [][]geometry.Polyline
	for i := range n {
		s := (float64(i) + 0.5) / float64(n) * length
		base := origin.Add(along.Mul(s))
		a := fromFrame(base.Sub(across.Mul(margin)))
		b := fromFrame(base.Add(across.Mul(depth + margin)))
		scan := geometry.Polyline{Points: []geometry.Vec3{r.Plane.At(a), r.Plane.At(b)}}
		lines = append(lines, g.Service.Intersect(scan, r))
	}

	return g.chain(r, lines)
}

// chain joins the j-th parts of consecutive scan lines into runs.
// Every other part of a run is reversed.
func (g *Generator) chain(r geometry.Region, lines [][]geometry.Polyline) []geometry.Polyline {
	depth := 0
	for _, parts := range lines {
		depth = max(depth, len(parts))
	}

	var res []geometry.Polyline
	for j := range depth {
		var run []geometry.Vec3
		var lastDir geometry.Vec3
		flush := func() {
			if len(run) >= 2 {
				res = append(res, geometry.Polyline{Points: run})
			}
			run = nil
		}

		for _, parts := range lines {
			if j >= len(parts) {
				flush()
				continue
			}
			p := parts[j].Points
			from, to := p[0], p[len(p)-1]
			if len(run)%4 == 2 {
				from, to = to, from
			}
			if len(run) > 0 && !g.connected(r, run[len(run)-1], from, lastDir) {
				flush()
				// a new run starts in the forward direction
				from, to = p[0], p[len(p)-1]
			}
			run = append(run, from, to)
			lastDir = to.Sub(from).Unit()
		}
		flush()
	}
	return res
}

// connected reports whether the move from a to b, pulled slightly back
// along dir into the scanned area, stays inside r.
func (g *Generator) connected(r geometry.Region, a, b, dir geometry.Vec3) bool {
	nudge := dir.Mul(-g.Width / 100)
	move := geometry.Polyline{Points: []geometry.Vec3{a.Add(nudge), b.Add(nudge)}}
	want := move.Length()
	if want == 0 {
		return true
	}
	got := totalLength(g.Service.Intersect(move, r))
	return got >= want*(1-1e-6)
}
