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

// Package planar implements the geometry service for polygonal solids.
//
// The solids handled here are vertical extrusions of polygons
// ([geometry.Prism] and [geometry.Sheet]).  Cutting planes may be tilted, as
// long as the plane cuts the whole side surface of a solid between its top
// and bottom faces.
package planar

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/toolpath/geometry"
)

const (
	// eps is the geometric tolerance, in model units.
	eps = 1e-7

	defaultMiterLimit = 4.0
	defaultFlatness   = 0.01
)

// Service is a [geometry.Service] for polygonal solids.
type Service struct {
	// Join is the corner style used where an offset loop turns away from
	// the offset direction.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of mitered corners, as a multiple of the
	// offset distance.  Longer miters are bevelled.
	MiterLimit float64

	// Flatness is the maximum deviation of round joins from a true arc.
	Flatness float64
}

var _ geometry.Service = (*Service)(nil)

// New returns a Service with mitered corners.
func New() *Service {
	return &Service{
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
		Flatness:   defaultFlatness,
	}
}

// Slice implements the [geometry.Service] interface.
func (s *Service) Slice(solids []geometry.Solid, pl geometry.Plane) ([]geometry.Region, []geometry.Polyline, error) {
	var closed []geometry.Region
	var open []geometry.Polyline
	for i, solid := range solids {
		switch solid := solid.(type) {
		case geometry.Prism:
			outer, ok, err := lift(solid.Outer, solid.ZMin, solid.ZMax, pl)
			if err != nil {
				return nil, nil, fmt.Errorf("solid %d: %w", i, err)
			}
			if !ok {
				continue
			}
			var holes []geometry.Loop
			for _, h := range solid.Holes {
				hole, ok, err := lift(h, solid.ZMin, solid.ZMax, pl)
				if err != nil {
					return nil, nil, fmt.Errorf("solid %d: %w", i, err)
				}
				if ok {
					holes = append(holes, project(hole, pl))
				}
			}
			closed = append(closed,
				geometry.NewRegion(pl, project(outer, pl), holes, geometry.Whole))

		case geometry.Sheet:
			pts, ok, err := lift(solid.Profile, solid.ZMin, solid.ZMax, pl)
			if err != nil {
				return nil, nil, fmt.Errorf("solid %d: %w", i, err)
			}
			if ok && len(pts) >= 2 {
				open = append(open, geometry.Polyline{Points: pts})
			}

		default:
			return nil, nil, fmt.Errorf("solid %d: %T: %w", i, solid, geometry.ErrUnsupported)
		}
	}
	return closed, open, nil
}

// lift moves the points of a vertical extrusion profile up to the plane.
// The second return value is false if the plane misses the solid.
func lift(profile []vec.Vec2, z0, z1 float64, pl geometry.Plane) ([]geometry.Vec3, bool, error) {
	n := pl.Normal
	if math.Abs(n.Z) < eps {
		return nil, false, fmt.Errorf("vertical cutting plane: %w", geometry.ErrUnsupported)
	}

	res := make([]geometry.Vec3, len(profile))
	below, above := 0, 0
	for i, p := range profile {
		z := pl.Origin.Z - (n.X*(p.X-pl.Origin.X)+n.Y*(p.Y-pl.Origin.Y))/n.Z
		switch {
		case z < z0-eps:
			below++
		case z > z1+eps:
			above++
		}
		res[i] = geometry.Vec3{X: p.X, Y: p.Y, Z: z}
	}
	switch {
	case below == len(profile) || above == len(profile):
		return nil, false, nil
	case below > 0 || above > 0:
		return nil, false, fmt.Errorf("plane cuts top or bottom face: %w", geometry.ErrUnsupported)
	}
	return res, true, nil
}

func project(pts []geometry.Vec3, pl geometry.Plane) geometry.Loop {
	res := make(geometry.Loop, len(pts))
	for i, p := range pts {
		res[i] = pl.Project(p)
	}
	return res
}

// BoundingBox implements the [geometry.Service] interface.
func (s *Service) BoundingBox(solids []geometry.Solid, pl geometry.Plane) geometry.Box {
	box := geometry.EmptyBox()
	add := func(p geometry.Vec3) {
		q := pl.Project(p)
		box = box.Extend(geometry.Vec3{X: q.X, Y: q.Y, Z: pl.Height(p)})
	}
	addProfile := func(pts []vec.Vec2, z0, z1 float64) {
		for _, p := range pts {
			add(geometry.Vec3{X: p.X, Y: p.Y, Z: z0})
			add(geometry.Vec3{X: p.X, Y: p.Y, Z: z1})
		}
	}

	for _, solid := range solids {
		switch solid := solid.(type) {
		case geometry.Prism:
			addProfile(solid.Outer, solid.ZMin, solid.ZMax)
		case geometry.Sheet:
			addProfile(solid.Profile, solid.ZMin, solid.ZMax)
		default:
			b := solid.Bounds()
			if b.IsEmpty() {
				continue
			}
			for _, x := range []float64{b.Min.X, b.Max.X} {
				for _, y := range []float64{b.Min.Y, b.Max.Y} {
					for _, z := range []float64{b.Min.Z, b.Max.Z} {
						add(geometry.Vec3{X: x, Y: y, Z: z})
					}
				}
			}
		}
	}
	return box
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
