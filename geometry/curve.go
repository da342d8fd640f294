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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Curve is a curve in model space.
type Curve interface {
	// Bounds returns the axis-aligned bounding box of the curve.
	Bounds() Box
}

// Parametric is a curve which can be evaluated for t in [0, 1].
type Parametric interface {
	Curve
	PointAt(t float64) Vec3
}

// Polyline is a sequence of points joined by straight lines.
// If Closed is set, the last point is joined back to the first.
type Polyline struct {
	Points []Vec3
	Closed bool
}

// Bounds implements the [Curve] interface.
func (p Polyline) Bounds() Box {
	b := EmptyBox()
	for _, q := range p.Points {
		b = b.Extend(q)
	}
	return b
}

// Vertices returns the points of the polyline in order.  For closed
// polylines, the first point is repeated at the end.
func (p Polyline) Vertices() []Vec3 {
	if !p.Closed || len(p.Points) == 0 {
		return p.Points
	}
	res := make([]Vec3, 0, len(p.Points)+1)
	res = append(res, p.Points...)
	return append(res, p.Points[0])
}

// Lines returns the edges of the polyline.
func (p Polyline) Lines() []Line {
	v := p.Vertices()
	if len(v) < 2 {
		return nil
	}
	res := make([]Line, 0, len(v)-1)
	for i := 1; i < len(v); i++ {
		res = append(res, Line{From: v[i-1], To: v[i]})
	}
	return res
}

// Length returns the total length of the polyline.
func (p Polyline) Length() float64 {
	var s float64
	for _, l := range p.Lines() {
		s += l.Length()
	}
	return s
}

// Line is a directed straight line between two points.
type Line struct {
	From, To Vec3
}

// Bounds implements the [Curve] interface.
func (l Line) Bounds() Box {
	return EmptyBox().Extend(l.From).Extend(l.To)
}

// PointAt implements the [Parametric] interface.
func (l Line) PointAt(t float64) Vec3 {
	return Lerp(l.From, l.To, t)
}

// Length returns the distance between the end points.
func (l Line) Length() float64 {
	return l.To.Sub(l.From).Length()
}

// Direction returns the unit vector pointing from From to To.
func (l Line) Direction() Vec3 {
	return l.To.Sub(l.From).Unit()
}

// Arc is a circular arc in a plane.  The arc is centred at the plane origin
// and starts at angle Start (radians, measured from the X axis towards the
// Y axis).  Positive Sweep turns counter-clockwise.
type Arc struct {
	Plane  Plane
	Radius float64
	Start  float64
	Sweep  float64
}

// PointAt implements the [Parametric] interface.
func (a Arc) PointAt(t float64) Vec3 {
	s, c := math.Sincos(a.Start + t*a.Sweep)
	return a.Plane.At(vec.Vec2{X: a.Radius * c, Y: a.Radius * s})
}

// Bounds implements the [Curve] interface.
// The box is computed from a fine sampling of the arc.
func (a Arc) Bounds() Box {
	b := EmptyBox()
	const n = 64
	for i := range n + 1 {
		b = b.Extend(a.PointAt(float64(i) / n))
	}
	return b
}

// Bezier is a cubic Bézier curve.
type Bezier struct {
	P0, P1, P2, P3 Vec3
}

// PointAt implements the [Parametric] interface.
func (c Bezier) PointAt(t float64) Vec3 {
	omt := 1 - t
	omt2 := omt * omt
	t2 := t * t
	return c.P0.Mul(omt2 * omt).
		Add(c.P1.Mul(3 * omt2 * t)).
		Add(c.P2.Mul(3 * omt * t2)).
		Add(c.P3.Mul(t2 * t))
}

// Bounds implements the [Curve] interface.
// The control polygon is used, which contains the curve.
func (c Bezier) Bounds() Box {
	return EmptyBox().Extend(c.P0).Extend(c.P1).Extend(c.P2).Extend(c.P3)
}

// PathCurve is a planar outline, given as a path in the coordinates of
// Plane.  Each subpath becomes a separate polyline when segmented.
type PathCurve struct {
	Plane Plane
	Path  path.Path
}

// Bounds implements the [Curve] interface.
// All control points are included, so the box may be larger than the curve.
func (c PathCurve) Bounds() Box {
	b := EmptyBox()
	if c.Path == nil {
		return b
	}
	for _, pts := range c.Path {
		for _, p := range pts {
			b = b.Extend(c.Plane.At(p))
		}
	}
	return b
}
