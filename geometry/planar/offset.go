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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/toolpath/geometry"
)

// Offset implements the [geometry.Service] interface.
//
// Edges which shrink to nothing before the offset distance is reached are
// removed, and their neighbours are extended to meet.  The result is
// rejected if it intersects itself or changes orientation.
func (s *Service) Offset(l geometry.Loop, _ geometry.Plane, d float64) (geometry.Loop, bool) {
	base := clean(l)
	if len(base) < 3 {
		return nil, false
	}
	if d == 0 {
		return base, true
	}

	for len(base) >= 3 {
		i, ok := firstCollapse(base, d)
		if !ok {
			break
		}
		base, ok = removeEdge(base, i)
		if !ok {
			return nil, false
		}
		base = clean(base)
	}
	if len(base) < 3 {
		return nil, false
	}

	res := s.offsetVertices(base, d)
	res = clean(res)
	if len(res) < 3 {
		return nil, false
	}

	a0, a1 := base.Area(), res.Area()
	if math.Abs(a1) < eps || (a0 > 0) != (a1 > 0) {
		return nil, false
	}
	if (d > 0 && a1 >= a0) || (d < 0 && a1 <= a0) {
		return nil, false
	}
	if selfIntersects(res) {
		return nil, false
	}
	return res, true
}

// tangents returns the unit directions of the edges of l.
// Edge i runs from vertex i to vertex i+1.
func tangents(l geometry.Loop) []vec.Vec2 {
	n := len(l)
	T := make([]vec.Vec2, n)
	for i := range n {
		T[i] = unit(l[(i+1)%n].Sub(l[i]))
	}
	return T
}

// miterOffset returns the displacement of a vertex whose incoming and
// outgoing edges have directions T1 and T2, when both edges are moved to
// their left by distance 1.
func miterOffset(T1, T2 vec.Vec2) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)

	// half_angle = cos(θ/2) = sqrt((1 + cos_θ) / 2)
	halfAngle := math.Sqrt(max(0, (1+cosTheta)/2))
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	bisector := N1.Add(N2)
	bisectorLen := bisector.Length()
	if bisectorLen < 1e-9 {
		return vec.Vec2{}, false
	}
	return bisector.Mul(1 / (bisectorLen * halfAngle)), true
}

// firstCollapse finds the edge which shrinks to zero length at the smallest
// offset distance not exceeding |d|.
func firstCollapse(l geometry.Loop, d float64) (int, bool) {
	n := len(l)
	T := tangents(l)
	m := make([]vec.Vec2, n)
	for i := range n {
		var ok bool
		m[i], ok = miterOffset(T[(i+n-1)%n], T[i])
		if !ok {
			// a spike, which clean() should have removed
			m[i] = vec.Vec2{}
		}
	}

	best, bestFrac := -1, math.Inf(1)
	for i := range n {
		j := (i + 1) % n
		length := l[j].Sub(l[i]).Length()
		// rate at which the edge length changes with the offset distance
		rate := m[j].Dot(T[i]) - m[i].Dot(T[i])
		newLength := length + d*rate
		if newLength > eps {
			continue
		}
		frac := length / math.Abs(d*rate)
		if frac < bestFrac {
			best, bestFrac = i, frac
		}
	}
	return best, best >= 0
}

// removeEdge replaces edge i of l by the intersection of the lines through
// its two neighbouring edges.
func removeEdge(l geometry.Loop, i int) (geometry.Loop, bool) {
	n := len(l)
	if n <= 3 {
		return nil, false
	}
	prevA, prevB := l[(i+n-1)%n], l[i]
	nextA, nextB := l[(i+1)%n], l[(i+2)%n]
	X, ok := lineIntersection(prevA, prevB, nextA, nextB)
	if !ok {
		return nil, false
	}

	res := make(geometry.Loop, 0, n-1)
	for k := range n {
		switch k {
		case i:
			res = append(res, X)
		case (i + 1) % n:
			// dropped
		default:
			res = append(res, l[k])
		}
	}
	return res, true
}

// lineIntersection intersects the infinite lines through a, b and c, d.
func lineIntersection(a, b, c, d vec.Vec2) (vec.Vec2, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := cross(r, s)
	if math.Abs(denom) < 1e-12*r.Length()*s.Length() || denom == 0 {
		return vec.Vec2{}, false
	}
	t := cross(c.Sub(a), s) / denom
	return a.Add(r.Mul(t)), true
}

// offsetVertices moves every edge of l to its left by d and joins the
// moved edges.  Corners on the side of the offset are mitered; corners on
// the other side use the join style of s.
func (s *Service) offsetVertices(l geometry.Loop, d float64) geometry.Loop {
	n := len(l)
	T := tangents(l)
	res := make(geometry.Loop, 0, n)
	for i, P := range l {
		T1, T2 := T[(i+n-1)%n], T[i]
		N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
		N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
		sinTheta := cross(T1, T2)

		m, ok := miterOffset(T1, T2)
		if !ok {
			res = append(res, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
			continue
		}
		if sinTheta*d >= 0 {
			// the moved edges overlap at this corner
			res = append(res, P.Add(m.Mul(d)))
			continue
		}

		switch s.Join {
		case graphics.LineJoinRound:
			start := N1.Mul(math.Copysign(1, d))
			end := N2.Mul(math.Copysign(1, d))
			sweep := math.Atan2(cross(start, end), start.Dot(end))
			res = s.addArc(res, P, math.Abs(d), start, sweep)

		case graphics.LineJoinBevel:
			res = append(res, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))

		default:
			// Miter length relative to the offset distance is 1/cos(θ/2),
			// the length of m.
			if m.Length() <= s.MiterLimit+1e-10 {
				res = append(res, P.Add(m.Mul(d)))
			} else {
				res = append(res, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
			}
		}
	}
	return res
}

// addArc appends the points of a circular arc around center to res.
// startDir is the unit vector from the center to the arc start, and sweep
// is the signed sweep angle in radians.
func (s *Service) addArc(res geometry.Loop, center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) geometry.Loop {
	// For a chord subtending angle θ on a circle of radius r, the maximum
	// deviation (sagitta) is r*(1 - cos(θ/2)).
	n := 1
	if radius > s.Flatness {
		angleStep := 2 * math.Acos(1-s.Flatness/radius)
		if angleStep > 0 && !math.IsNaN(angleStep) {
			n = max(n, int(math.Ceil(math.Abs(sweep)/angleStep)))
		}
	}

	dt := sweep / float64(n)
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		res = append(res, center.Add(dir.Mul(radius)))
	}
	return res
}

// clean removes repeated points, collinear vertices and spikes from l.
func clean(l geometry.Loop) geometry.Loop {
	res := make(geometry.Loop, 0, len(l))
	for _, p := range l {
		if len(res) > 0 && p.Sub(res[len(res)-1]).Length() < eps {
			continue
		}
		res = append(res, p)
	}
	for len(res) > 1 && res[0].Sub(res[len(res)-1]).Length() < eps {
		res = res[:len(res)-1]
	}

	changed := true
	for changed && len(res) >= 3 {
		changed = false
		n := len(res)
		for i := 0; i < n; i++ {
			prev, p, next := res[(i+n-1)%n], res[i], res[(i+1)%n]
			a, b := p.Sub(prev), next.Sub(p)
			la, lb := a.Length(), b.Length()
			if lb < eps || math.Abs(cross(a, b)) <= 1e-9*la*lb {
				res = append(res[:i], res[i+1:]...)
				changed = true
				break
			}
		}
	}
	if len(res) < 3 {
		return nil
	}
	return res
}

// selfIntersects reports whether two non-adjacent edges of l cross.
func selfIntersects(l geometry.Loop) bool {
	n := len(l)
	for i := range n {
		a, b := l[i], l[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c, d := l[j], l[(j+1)%n]
			if segmentsTouch(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

// segmentsTouch reports whether the closed segments ab and cd share a point.
func segmentsTouch(a, b, c, d vec.Vec2) bool {
	d1 := cross(b.Sub(a), c.Sub(a))
	d2 := cross(b.Sub(a), d.Sub(a))
	d3 := cross(d.Sub(c), a.Sub(c))
	d4 := cross(d.Sub(c), b.Sub(c))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(a, b, c)) ||
		(d2 == 0 && onSegment(a, b, d)) ||
		(d3 == 0 && onSegment(c, d, a)) ||
		(d4 == 0 && onSegment(c, d, b))
}

// onSegment reports whether p, known to be collinear with ab, lies on ab.
func onSegment(a, b, p vec.Vec2) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
