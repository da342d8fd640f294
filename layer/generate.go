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

package layer

import (
	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/movement"
	"seehuhn.de/go/toolpath/segment"
	"seehuhn.de/go/toolpath/skein"
	"seehuhn.de/go/toolpath/slicer"
)

type generator struct {
	svc geometry.Service
	s   Settings
	rep *diag.Report
}

// convert turns a single input item into movements.  The second return
// value is false if the item type is not supported.
func (g *generator) convert(item any) ([]movement.Movement, bool) {
	switch item := item.(type) {
	case movement.Movement:
		return []movement.Movement{item}, true
	case movement.Segment:
		return g.segments([]movement.Segment{item}), true
	case []movement.Segment:
		return g.segments(item), true
	case geometry.Vec3:
		return []movement.Movement{movement.NewBlob(item)}, true
	case geometry.Region:
		return g.region(item, g.s.Density, g.s.Angle), true
	case geometry.Solid:
		return g.solids([]geometry.Solid{item}), true
	case geometry.Curve:
		return g.curve(item), true
	default:
		return nil, false
	}
}

// segments turns explicitly given segments into a run without transitions.
func (g *generator) segments(segs []movement.Segment) []movement.Movement {
	if len(segs) == 0 {
		g.rep.Warnf("empty segment list")
		return nil
	}
	r := &movement.Run{
		Segments:  append([]movement.Segment(nil), segs...),
		Delimiter: &movement.Delimiter{},
	}
	return []movement.Movement{r}
}

func (g *generator) curve(c geometry.Curve) []movement.Movement {
	parts, err := segment.Curve(c, segment.DefaultOptions())
	if err != nil {
		g.rep.Errorf("curve: %v", err)
		return nil
	}
	var res []movement.Movement
	for _, p := range parts {
		res = append(res, g.runs(p.Polyline)...)
	}
	return res
}

// region prints the boundary loops of r and fills the inside.
func (g *generator) region(r geometry.Region, density, angle float64) []movement.Movement {
	var res []movement.Movement
	for _, l := range r.Loops() {
		res = append(res, g.runs(r.Lift(l))...)
	}
	return append(res, g.runs(g.skein().Hatch(r, density, angle)...)...)
}

// solids slices the given solids together and fills every layer.
func (g *generator) solids(solids []geometry.Solid) []movement.Movement {
	sliced := slicer.Slice(g.svc, g.s.Slicer, solids, nil)
	g.rep.Merge(sliced.Report)

	sk := g.skein()
	var res []movement.Movement
	n := len(sliced.Layers)
	for i, l := range sliced.Layers {
		density, angle := g.s.density(i, n), g.s.angle(i)

		res = append(res, g.runs(l.Open...)...)
		if !sliced.WallsEnabled {
			for _, r := range l.Whole {
				res = append(res, g.region(r, density, angle)...)
			}
			continue
		}

		if g.s.Spiral {
			for _, b := range l.Bands {
				res = append(res, g.runs(sk.Spiral(b, g.s.Spacing, g.rep)...)...)
			}
		} else {
			for _, w := range l.Walls {
				res = append(res, g.runs(sk.Shell(w, g.rep)...)...)
			}
		}
		for _, r := range l.Infill {
			res = append(res, g.runs(sk.Hatch(r, density, angle)...)...)
		}
	}
	return res
}

func (g *generator) skein() *skein.Generator {
	return &skein.Generator{Service: g.svc, Width: g.s.Slicer.Width}
}

// runs converts polylines into incomplete runs.
func (g *generator) runs(pp ...geometry.Polyline) []movement.Movement {
	var res []movement.Movement
	for _, p := range pp {
		r, err := movement.FromPolyline(p)
		if err != nil {
			continue
		}
		res = append(res, r)
	}
	return res
}
