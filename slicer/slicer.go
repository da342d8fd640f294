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

// Package slicer cuts solids into planar layers.
//
// Each layer holds the cross-sections of the closed solids, split into
// perimeter rings and the infill area inside them, together with the curves
// where the plane meets open sheets.
package slicer

import (
	"fmt"
	"math"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/internal/logging"
)

// Volume is the printable volume.  Objects must fit inside and rest on the
// bottom face.
var Volume = geometry.Box{
	Min: geometry.Vec3{X: 0, Y: 0, Z: 0},
	Max: geometry.Vec3{X: 200, Y: 200, Z: 125},
}

const eps = 1e-6

// Params controls slicing.
type Params struct {
	// LayerHeight is the distance between automatically added planes.
	LayerHeight float64

	// Width is the width of one perimeter ring.
	Width float64

	// Perimeters is the number of rings.  Zero disables perimeters.
	Perimeters int
}

// LoadParams reads the slicing parameters from cfg.
func LoadParams(cfg config.Map) (Params, error) {
	lh, err := cfg.Float("layer_height")
	if err != nil {
		return Params{}, err
	}
	if lh <= 0 {
		return Params{}, &config.KeyError{Key: "layer_height", Value: fmt.Sprint(lh), Err: config.ErrMalformed}
	}
	n, err := cfg.Int("perimeters")
	if err != nil {
		return Params{}, err
	}
	w, err := cfg.FloatOr("extrusion_width", 0.6)
	if err != nil {
		return Params{}, err
	}
	return Params{LayerHeight: lh, Width: w, Perimeters: max(n, 0)}, nil
}

// Layer is the result of cutting all solids with one plane.
type Layer struct {
	Plane geometry.Plane

	// Whole holds the complete cross-sections, after merging overlapping
	// sections.
	Whole []geometry.Region

	// Walls holds the perimeter rings, outermost first for every loop.
	// Walls is empty if perimeters are disabled.
	Walls []geometry.Region

	// Bands holds, for every loop, the area covered by all of its rings.
	Bands []geometry.Region

	// Infill holds the areas inside the innermost rings.
	Infill []geometry.Region

	// Open holds the cuts through open sheets.
	Open []geometry.Polyline
}

// IsEmpty reports whether the plane missed all solids.
func (l *Layer) IsEmpty() bool {
	return len(l.Whole) == 0 && len(l.Open) == 0
}

// Result is the output of [Slice].
type Result struct {
	Layers []Layer

	// WallsEnabled is false if some planes are not horizontal.  In this case
	// only the whole cross-sections are available.
	WallsEnabled bool

	Report diag.Report
}

// Slice cuts solids with the given planes.
//
// If fewer than two planes are given and the first one is horizontal,
// additional planes are added every p.LayerHeight units up to the top of the
// solids.  If no plane is given, slicing starts at the world XY plane.
//
// Objects outside the printable [Volume], or not resting on the print bed,
// are reported as errors and nothing is sliced.
func Slice(svc geometry.Service, p Params, solids []geometry.Solid, planes []geometry.Plane) *Result {
	res := &Result{WallsEnabled: true}
	if len(solids) == 0 {
		return res
	}

	box := svc.BoundingBox(solids, geometry.WorldXY())
	if !Volume.Contains(box, eps) {
		res.Report.Errorf("object is outside of printable area")
		return res
	}
	if math.Abs(box.Min.Z-Volume.Min.Z) > eps {
		res.Report.Errorf("object is not aligned with print bed")
		return res
	}

	if len(planes) == 0 {
		planes = []geometry.Plane{geometry.WorldXY()}
	}
	for _, pl := range planes {
		if !pl.IsHorizontal() {
			res.WallsEnabled = false
		}
	}
	if !res.WallsEnabled {
		res.Report.Warnf("slice planes are not horizontal, perimeters and infill are disabled")
	}
	if len(planes) < 2 && res.WallsEnabled {
		planes = replicate(planes[0], box.Max.Z, p.LayerHeight)
	}

	for i, pl := range planes {
		closed, open, err := svc.Slice(solids, pl)
		if err != nil {
			res.Report.Errorf("plane %d: %v", i, err)
			continue
		}
		if len(closed) > 1 {
			merged, err := svc.Union(closed)
			if err != nil {
				res.Report.Warnf("plane %d: cannot merge cross-sections: %v", i, err)
			} else {
				closed = merged
			}
		}

		layer := Layer{Plane: pl, Whole: closed, Open: open}
		if res.WallsEnabled {
			for _, r := range closed {
				walls, bands, infill := perimeters(svc, r, p, &res.Report)
				layer.Walls = append(layer.Walls, walls...)
				layer.Bands = append(layer.Bands, bands...)
				layer.Infill = append(layer.Infill, infill...)
			}
		}
		res.Layers = append(res.Layers, layer)
	}

	logging.Logger().Debug("sliced",
		"planes", len(planes),
		"walls", res.WallsEnabled,
		"warnings", len(res.Report.Warnings))
	return res
}

// replicate returns base together with horizontal planes at multiples of
// lh, up to height top.
func replicate(base geometry.Plane, top, lh float64) []geometry.Plane {
	planes := []geometry.Plane{base}
	n := int(math.Round(top / lh))
	for i := 1; i < n; i++ {
		planes = append(planes, geometry.HorizontalAt(float64(i)*lh))
	}
	return planes
}

// perimeters splits r into rings of width p.Width along every loop, and the
// area inside the innermost rings.
func perimeters(svc geometry.Service, r geometry.Region, p Params, rep *diag.Report) (walls, bands, infill []geometry.Region) {
	if p.Perimeters == 0 {
		r.Kind = geometry.Infill
		return nil, nil, []geometry.Region{r}
	}

	var innerHoles []geometry.Loop
	var innerOuter geometry.Loop
	for k, loop := range r.Loops() {
		isHole := k > 0
		offsets := []geometry.Loop{loop}
		for o := 1; o <= p.Perimeters; o++ {
			off, ok := svc.Offset(loop, r.Plane, float64(o)*p.Width)
			if !ok {
				rep.Warnf("loop is too small to slice (perimeter %d)", o)
				break
			}
			offsets = append(offsets, off)
			walls = append(walls, band(r.Plane, offsets[o-1], off, isHole))
		}

		last := offsets[len(offsets)-1]
		if len(offsets) > 1 {
			bands = append(bands, band(r.Plane, loop, last, isHole))
		}
		switch {
		case isHole:
			innerHoles = append(innerHoles, last)
		case len(offsets) > 1:
			innerOuter = last
		}
	}

	if innerOuter == nil {
		return walls, bands, nil
	}
	inner := geometry.NewRegion(r.Plane, innerOuter, innerHoles, geometry.Infill)
	return walls, bands, []geometry.Region{inner}
}

// band returns the area between a loop and its offset.
func band(pl geometry.Plane, loop, off geometry.Loop, isHole bool) geometry.Region {
	if isHole {
		return geometry.NewRegion(pl, off, []geometry.Loop{loop}, geometry.Wall)
	}
	return geometry.NewRegion(pl, loop, []geometry.Loop{off}, geometry.Wall)
}
