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

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Loop is a closed polygon in plane coordinates.  The closing edge from the
// last vertex back to the first is implicit.
type Loop []vec.Vec2

// Area returns the signed area of the loop.  The area is positive for
// counter-clockwise loops.
func (l Loop) Area() float64 {
	var a float64
	n := len(l)
	for i := range n {
		p, q := l[i], l[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Perimeter returns the length of the loop, including the closing edge.
func (l Loop) Perimeter() float64 {
	var s float64
	n := len(l)
	for i := range n {
		s += l[(i+1)%n].Sub(l[i]).Length()
	}
	return s
}

// Reversed returns a copy of the loop with the opposite orientation.
func (l Loop) Reversed() Loop {
	res := slices.Clone(l)
	slices.Reverse(res)
	return res
}

// CCW returns the loop with counter-clockwise orientation.
func (l Loop) CCW() Loop {
	if l.Area() < 0 {
		return l.Reversed()
	}
	return l
}

// CW returns the loop with clockwise orientation.
func (l Loop) CW() Loop {
	if l.Area() > 0 {
		return l.Reversed()
	}
	return l
}

// Contains reports whether p lies inside the loop.
// Points on the boundary may be reported either way.
func (l Loop) Contains(p vec.Vec2) bool {
	return l.crossings(p)%2 == 1
}

// crossings counts the edges crossed by a ray from p in +x direction.
func (l Loop) crossings(p vec.Vec2) int {
	count := 0
	n := len(l)
	for i := range n {
		a, b := l[i], l[(i+1)%n]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if x > p.X {
			count++
		}
	}
	return count
}

// Bounds returns the bounding rectangle of the loop.
func (l Loop) Bounds() rect.Rect {
	if len(l) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range l {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

// RegionKind classifies a planar region.
type RegionKind int

// These are the supported region kinds.
const (
	Whole  RegionKind = iota // a complete cross-section
	Wall                     // one perimeter ring
	Infill                   // the interior left after the perimeters
)

func (k RegionKind) String() string {
	switch k {
	case Whole:
		return "whole"
	case Wall:
		return "wall"
	case Infill:
		return "infill"
	default:
		return "unknown"
	}
}

// Region is a bounded planar area.
//
// The outer loop is counter-clockwise and the holes are clockwise, in the
// coordinates of Plane.  Regions are not modified after construction.
type Region struct {
	Plane Plane
	Outer Loop
	Holes []Loop
	Kind  RegionKind
}

// NewRegion returns a region with the loop orientations normalised.
func NewRegion(pl Plane, outer Loop, holes []Loop, kind RegionKind) Region {
	r := Region{Plane: pl, Outer: outer.CCW(), Kind: kind}
	for _, h := range holes {
		r.Holes = append(r.Holes, h.CW())
	}
	return r
}

// Loops returns the outer loop followed by the holes.
func (r Region) Loops() []Loop {
	res := make([]Loop, 0, 1+len(r.Holes))
	res = append(res, r.Outer)
	return append(res, r.Holes...)
}

// Contains reports whether the plane point p lies inside the region.
func (r Region) Contains(p vec.Vec2) bool {
	if !r.Outer.Contains(p) {
		return false
	}
	for _, h := range r.Holes {
		if h.Contains(p) {
			return false
		}
	}
	return true
}

// Area returns the area of the region.
func (r Region) Area() float64 {
	a := r.Outer.Area()
	for _, h := range r.Holes {
		a += h.Area()
	}
	return a
}

// Bounds returns the bounding rectangle of the region in plane coordinates.
func (r Region) Bounds() rect.Rect {
	return r.Outer.Bounds()
}

// Lift converts a loop in the coordinates of r's plane to a closed polyline
// in model space.
func (r Region) Lift(l Loop) Polyline {
	pts := make([]Vec3, len(l))
	for i, p := range l {
		pts[i] = r.Plane.At(p)
	}
	return Polyline{Points: pts, Closed: true}
}
