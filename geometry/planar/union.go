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
	"errors"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/geometry"
)

// errOpenBoundary is returned when the merged boundary does not close up.
var errOpenBoundary = errors.New("union: boundary does not close")

// Union implements the [geometry.Service] interface.
//
// Regions whose bounding boxes do not overlap any other region are returned
// unchanged.  The remaining regions are merged by splitting all boundary
// edges at their intersections and keeping the pieces which do not lie
// inside another region.
func (s *Service) Union(regions []geometry.Region) ([]geometry.Region, error) {
	if len(regions) < 2 {
		return regions, nil
	}

	// group regions with overlapping bounding boxes
	parent := make([]int, len(regions))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	bounds := make([]rect.Rect, len(regions))
	for i, r := range regions {
		bounds[i] = r.Bounds()
	}
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			if overlaps(bounds[i], bounds[j]) {
				parent[find(j)] = find(i)
			}
		}
	}

	var res []geometry.Region
	done := make([]bool, len(regions))
	for i := range regions {
		root := find(i)
		if done[root] {
			continue
		}
		done[root] = true

		var group []geometry.Region
		for j := i; j < len(regions); j++ {
			if find(j) == root {
				group = append(group, regions[j])
			}
		}
		if len(group) == 1 {
			res = append(res, group[0])
			continue
		}
		merged, err := merge(group)
		if err != nil {
			return nil, err
		}
		res = append(res, merged...)
	}
	return res, nil
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx+eps && b.LLx <= a.URx+eps &&
		a.LLy <= b.URy+eps && b.LLy <= a.URy+eps
}

type unionEdge struct {
	a, b  vec.Vec2
	owner int
	cuts  []vec.Vec2
}

type piece struct {
	a, b vec.Vec2
	used bool
}

func merge(group []geometry.Region) ([]geometry.Region, error) {
	var edges []*unionEdge
	for g, r := range group {
		for _, l := range r.Loops() {
			n := len(l)
			for i := range n {
				a, b := l[i], l[(i+1)%n]
				if a == b {
					continue
				}
				edges = append(edges, &unionEdge{a: a, b: b, owner: g})
			}
		}
	}

	for i, e := range edges {
		for _, f := range edges[i+1:] {
			if e.owner != f.owner {
				cutPair(e, f)
			}
		}
	}

	var pieces []*piece
	for _, e := range edges {
		pts := splitPoints(e)
		for k := 1; k < len(pts); k++ {
			a, b := pts[k-1], pts[k]
			if b.Sub(a).Length() < eps {
				continue
			}
			if keepPiece(a, b, e.owner, group) {
				pieces = append(pieces, &piece{a: a, b: b})
			}
		}
	}

	loops, err := chain(pieces)
	if err != nil {
		return nil, err
	}

	var outers, holes []geometry.Loop
	for _, l := range loops {
		l = clean(l)
		if l == nil {
			continue
		}
		if l.Area() > 0 {
			outers = append(outers, l)
		} else {
			holes = append(holes, l)
		}
	}

	holesOf := make([][]geometry.Loop, len(outers))
	for _, h := range holes {
		best, bestArea := -1, math.Inf(1)
		for k, o := range outers {
			if a := o.Area(); a < bestArea && o.Contains(interiorPoint(h)) {
				best, bestArea = k, a
			}
		}
		if best >= 0 {
			holesOf[best] = append(holesOf[best], h)
		}
	}

	res := make([]geometry.Region, len(outers))
	for k, o := range outers {
		res[k] = geometry.NewRegion(group[0].Plane, o, holesOf[k], group[0].Kind)
	}
	return res, nil
}

// cutPair records the intersection points of e and f on both edges.
// Points are computed once and shared, so that the pieces fit together
// exactly.
func cutPair(e, f *unionEdge) {
	r := e.b.Sub(e.a)
	s := f.b.Sub(f.a)
	denom := cross(r, s)
	lr, ls := r.Length(), s.Length()

	if math.Abs(denom) <= 1e-12*lr*ls {
		// parallel: only collinear overlaps matter
		if math.Abs(cross(f.a.Sub(e.a), r)) > eps*lr {
			return
		}
		for _, p := range []vec.Vec2{f.a, f.b} {
			if interior(e.a, e.b, p) {
				e.cuts = append(e.cuts, p)
			}
		}
		for _, p := range []vec.Vec2{e.a, e.b} {
			if interior(f.a, f.b, p) {
				f.cuts = append(f.cuts, p)
			}
		}
		return
	}

	ac := f.a.Sub(e.a)
	t := cross(ac, s) / denom
	u := cross(ac, r) / denom
	te, tf := eps/lr, eps/ls
	if t < -te || t > 1+te || u < -tf || u > 1+tf {
		return
	}

	var X vec.Vec2
	switch {
	case t <= te:
		X = e.a
	case t >= 1-te:
		X = e.b
	case u <= tf:
		X = f.a
	case u >= 1-tf:
		X = f.b
	default:
		X = e.a.Add(r.Mul(t))
	}
	if X != e.a && X != e.b {
		e.cuts = append(e.cuts, X)
	}
	if X != f.a && X != f.b {
		f.cuts = append(f.cuts, X)
	}
}

// interior reports whether p lies on the segment ab, away from the ends.
func interior(a, b, p vec.Vec2) bool {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return false
	}
	t := p.Sub(a).Dot(d) / l2
	te := eps / math.Sqrt(l2)
	return t > te && t < 1-te
}

// splitPoints returns the end points of e together with its cut points,
// sorted along the edge.
func splitPoints(e *unionEdge) []vec.Vec2 {
	d := e.b.Sub(e.a)
	param := func(p vec.Vec2) float64 { return p.Sub(e.a).Dot(d) }
	cuts := slices.Clone(e.cuts)
	slices.SortFunc(cuts, func(p, q vec.Vec2) int {
		switch tp, tq := param(p), param(q); {
		case tp < tq:
			return -1
		case tp > tq:
			return 1
		}
		return 0
	})
	res := make([]vec.Vec2, 0, len(cuts)+2)
	res = append(res, e.a)
	res = append(res, cuts...)
	return append(res, e.b)
}

// keepPiece decides whether the boundary piece ab of region owner is part of
// the boundary of the union.
func keepPiece(a, b vec.Vec2, owner int, group []geometry.Region) bool {
	m := a.Add(b).Mul(0.5)
	dir := b.Sub(a)
	for h, r := range group {
		if h == owner {
			continue
		}
		if other, ok := boundaryDirection(r, m); ok {
			if dir.Dot(other) < 0 {
				// the two regions touch along this piece
				return false
			}
			if h < owner {
				// shared boundary, already kept for region h
				return false
			}
			continue
		}
		if r.Contains(m) {
			return false
		}
	}
	return true
}

// boundaryDirection returns the direction of the boundary edge of r which
// passes through p, if any.
func boundaryDirection(r geometry.Region, p vec.Vec2) (vec.Vec2, bool) {
	for _, l := range r.Loops() {
		n := len(l)
		for i := range n {
			a, b := l[i], l[(i+1)%n]
			if distToSegment(p, a, b) < eps {
				return b.Sub(a), true
			}
		}
	}
	return vec.Vec2{}, false
}

func distToSegment(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := max(0, min(1, p.Sub(a).Dot(d)/l2))
	return p.Sub(a.Add(d.Mul(t))).Length()
}

// chain joins boundary pieces into closed loops.
func chain(pieces []*piece) ([]geometry.Loop, error) {
	starts := make(map[vec.Vec2][]*piece)
	for _, p := range pieces {
		starts[p.a] = append(starts[p.a], p)
	}

	var loops []geometry.Loop
	for _, first := range pieces {
		if first.used {
			continue
		}
		first.used = true
		loop := geometry.Loop{first.a}
		cur := first
		for cur.b != first.a {
			next := nextPiece(starts[cur.b], cur)
			if next == nil {
				return nil, errOpenBoundary
			}
			next.used = true
			loop = append(loop, next.a)
			cur = next
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// nextPiece selects the unused piece leaving the end point of cur, turning
// as far right as possible where several pieces meet.
func nextPiece(candidates []*piece, cur *piece) *piece {
	in := unit(cur.b.Sub(cur.a))
	var best *piece
	bestAngle := math.Inf(1)
	for _, p := range candidates {
		if p.used {
			continue
		}
		out := unit(p.b.Sub(p.a))
		angle := math.Atan2(cross(in, out), in.Dot(out))
		if angle < bestAngle {
			best, bestAngle = p, angle
		}
	}
	return best
}

// interiorPoint returns a point just inside the area enclosed by l,
// next to the midpoint of its first edge.
func interiorPoint(l geometry.Loop) vec.Vec2 {
	a, b := l[0], l[1%len(l)]
	m := a.Add(b).Mul(0.5)
	T := unit(b.Sub(a))
	N := vec.Vec2{X: -T.Y, Y: T.X}
	if l.Area() < 0 {
		N = N.Mul(-1)
	}
	return m.Add(N.Mul(1e-4))
}
