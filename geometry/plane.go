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

	"seehuhn.de/go/geom/vec"
)

// Plane is an oriented frame in model space.
// XAxis, YAxis and Normal form a right-handed orthonormal basis.
type Plane struct {
	Origin Vec3
	XAxis  Vec3
	YAxis  Vec3
	Normal Vec3
}

// WorldXY returns the plane z=0 with the world axes.
func WorldXY() Plane {
	return HorizontalAt(0)
}

// HorizontalAt returns the plane parallel to WorldXY at height z.
func HorizontalAt(z float64) Plane {
	return Plane{
		Origin: Vec3{0, 0, z},
		XAxis:  Vec3{1, 0, 0},
		YAxis:  Vec3{0, 1, 0},
		Normal: Vec3{0, 0, 1},
	}
}

// NewPlane returns a plane through origin with the given normal.
// The X axis is the projection of the world X axis onto the plane, or of the
// world Y axis if the normal is parallel to X.
func NewPlane(origin, normal Vec3) Plane {
	n := normal.Unit()
	ref := Vec3{1, 0, 0}
	if math.Abs(n.X) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	x := ref.Sub(n.Mul(ref.Dot(n))).Unit()
	return Plane{
		Origin: origin,
		XAxis:  x,
		YAxis:  n.Cross(x),
		Normal: n,
	}
}

// At returns the model space point with plane coordinates p.
func (pl Plane) At(p vec.Vec2) Vec3 {
	return pl.Origin.Add(pl.XAxis.Mul(p.X)).Add(pl.YAxis.Mul(p.Y))
}

// Project returns the plane coordinates of the orthogonal projection of q.
func (pl Plane) Project(q Vec3) vec.Vec2 {
	d := q.Sub(pl.Origin)
	return vec.Vec2{X: d.Dot(pl.XAxis), Y: d.Dot(pl.YAxis)}
}

// Height returns the signed distance of q from the plane.
func (pl Plane) Height(q Vec3) float64 {
	return q.Sub(pl.Origin).Dot(pl.Normal)
}

// IsHorizontal reports whether the plane is parallel to WorldXY and faces
// upwards.
func (pl Plane) IsHorizontal() bool {
	const eps = 1e-9
	return math.Abs(pl.Normal.X) < eps && math.Abs(pl.Normal.Y) < eps && pl.Normal.Z > 0
}

// Rotate returns the plane with its in-plane axes turned by deg degrees
// around the normal.
func (pl Plane) Rotate(deg float64) Plane {
	s, c := math.Sincos(deg * math.Pi / 180)
	x := pl.XAxis.Mul(c).Add(pl.YAxis.Mul(s))
	y := pl.YAxis.Mul(c).Sub(pl.XAxis.Mul(s))
	return Plane{Origin: pl.Origin, XAxis: x, YAxis: y, Normal: pl.Normal}
}

// Translated returns the plane moved along its normal by d.
func (pl Plane) Translated(d float64) Plane {
	pl.Origin = pl.Origin.Add(pl.Normal.Mul(d))
	return pl
}
