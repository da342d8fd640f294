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

package planar

import (
	"slices"

	"seehuhn.de/go/toolpath/geometry"
)

// Intersect implements the [geometry.Service] interface.
//
// Each edge of c is split where it crosses the boundary of r, and the parts
// whose midpoints lie inside r are kept.  Consecutive parts are joined.
func (s *Service) Intersect(c geometry.Polyline, r geometry.Region) []geometry.Polyline {
	pts := c.Vertices()
	if len(pts) < 2 {
		return nil
	}
	loops := r.Loops()

	var res []geometry.Polyline
	var cur []geometry.Vec3
	flush := func() {
		if len(cur) >= 2 {
			pl := geometry.Polyline{Points: cur}
			if pl.Length() > eps {
				res = append(res, pl)
			}
		}
		cur = nil
	}

	for k := 1; k < len(pts); k++ {
		A, B := pts[k-1], pts[k]
		a, b := r.Plane.Project(A), r.Plane.Project(B)
		d := b.Sub(a)
		if d.Length() < eps {
			continue
		}

		ts := []float64{0, 1}
		for _, l := range loops {
			n := len(l)
			for i := range n {
				p, q := l[i], l[(i+1)%n]
				e := q.Sub(p)
				denom := cross(d, e)
				if denom == 0 {
					continue
				}
				ap := p.Sub(a)
				t := cross(ap, e) / denom
				u := cross(ap, d) / denom
				if t > 0 && t < 1 && u >= 0 && u <= 1 {
					ts = append(ts, t)
				}
			}
		}
		slices.Sort(ts)
		ts = slices.Compact(ts)

		for i := 1; i < len(ts); i++ {
			t0, t1 := ts[i-1], ts[i]
			if (t1-t0)*d.Length() < eps {
				continue
			}
			mid := a.Add(d.Mul((t0 + t1) / 2))
			if !r.Contains(mid) {
				flush()
				continue
			}
			P0, P1 := geometry.Lerp(A, B, t0), geometry.Lerp(A, B, t1)
			if len(cur) == 0 {
				cur = append(cur, P0)
			} else if cur[len(cur)-1].Sub(P0).Length() > eps {
				flush()
				cur = append(cur, P0)
			}
			cur = append(cur, P1)
		}
	}
	flush()

	// a closed curve which is inside at its seam gives one piece, not two
	if c.Closed && len(res) >= 2 {
		first, last := res[0], res[len(res)-1]
		if first.Points[0] == pts[0] && last.Points[len(last.Points)-1] == pts[len(pts)-1] {
			joined := slices.Concat(last.Points, first.Points[1:])
			res[0] = geometry.Polyline{Points: joined}
			res = res[:len(res)-1]
		}
	}
	return res
}
