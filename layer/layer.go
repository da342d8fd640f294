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

// Package layer turns heterogeneous print input into a layered model.
//
// The input to [Assemble] may mix solids, planar regions, curves, points,
// single segments and ready-made movements.  Everything is converted into
// complete movements, which are then grouped into layers by the height at
// which they start.
package layer

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/internal/logging"
	"seehuhn.de/go/toolpath/movement"
)

// Mode selects how input items are grouped.
type Mode int

// These are the supported grouping modes.
const (
	// Full slices all solids together, so that overlapping solids are
	// merged, and groups all movements by height.
	Full Mode = iota

	// ZOnly processes every item on its own and groups the movements by
	// height.
	ZOnly

	// None processes every item on its own and keeps all movements in a
	// single layer, in input order.
	None
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case ZOnly:
		return "z"
	case None:
		return "none"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode converts "full", "z" or "none" to a Mode.  The numbers 1, 2 and
// 3 are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full", "1":
		return Full, nil
	case "z", "2":
		return ZOnly, nil
	case "none", "3":
		return None, nil
	}
	return 0, fmt.Errorf("layer: unknown mode %q", s)
}

// Layer is a group of movements which start at the same height.
type Layer struct {
	Z         float64
	Movements []movement.Movement
}

// Model is a print job, ready for compilation.
type Model struct {
	// Layers is sorted by increasing Z.
	Layers []Layer

	// Config holds the settings the model was built with.
	Config config.Map
}

// Len returns the total number of movements in the model.
func (m *Model) Len() int {
	n := 0
	for _, l := range m.Layers {
		n += len(l.Movements)
	}
	return n
}

// Assemble converts items into complete movements and groups these into
// layers.
//
// The following item types are supported:
//   - [geometry.Solid]: sliced, perimeters and infill are generated
//   - [geometry.Region]: outline and hatch infill
//   - [geometry.Curve]: a run along the segmented curve
//   - [geometry.Vec3]: a blob
//   - [movement.Segment] and []movement.Segment: a run without transitions
//   - [movement.Movement]: used as is, missing values are filled in
//
// Items of other types are reported as errors and skipped.  Geometric
// problems are reported as warnings.  An error is returned only if a
// required setting is missing or malformed.
func Assemble(svc geometry.Service, cfg config.Map, items []any, mode Mode) (*Model, diag.Report, error) {
	var rep diag.Report
	s, err := LoadSettings(cfg)
	if err != nil {
		return nil, rep, err
	}
	g := &generator{svc: svc, s: s, rep: &rep}

	var all []movement.Movement
	var solids []geometry.Solid
	solidsAt := -1
	for i, item := range items {
		if solid, ok := item.(geometry.Solid); ok && mode == Full {
			if solidsAt < 0 {
				solidsAt = len(all)
			}
			solids = append(solids, solid)
			continue
		}
		ms, ok := g.convert(item)
		if !ok {
			rep.Errorf("item %d: unsupported input type %T", i, item)
			continue
		}
		all = append(all, ms...)
	}
	if len(solids) > 0 {
		all = slices.Insert(all, solidsAt, g.solids(solids)...)
	}

	for i, m := range all {
		c, err := movement.Complete(m, cfg)
		if err != nil {
			return nil, rep, fmt.Errorf("completing movement %d: %w", i, err)
		}
		all[i] = c
	}

	model := &Model{Config: cfg}
	if mode == None {
		if len(all) > 0 {
			z, _ := all[0].ZRange()
			model.Layers = []Layer{{Z: round(z, s.Decimals), Movements: all}}
		}
	} else {
		model.Layers = bucket(all, s.Decimals)
	}

	logging.Logger().Debug("assembled",
		"mode", mode,
		"layers", len(model.Layers),
		"movements", len(all))
	return model, rep, nil
}

// bucket groups movements by their rounded start height.  The order of
// movements within a layer is the input order.
func bucket(all []movement.Movement, decimals int) []Layer {
	index := make(map[float64]int)
	var layers []Layer
	for _, m := range all {
		z, _ := m.ZRange()
		z = round(z, decimals)
		k, ok := index[z]
		if !ok {
			k = len(layers)
			index[z] = k
			layers = append(layers, Layer{Z: z})
		}
		layers[k].Movements = append(layers[k].Movements, m)
	}
	slices.SortStableFunc(layers, func(a, b Layer) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		}
		return 0
	})
	return layers
}

// round rounds z to the given number of decimals.  Ties go to the even
// neighbour.
func round(z float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	r := math.RoundToEven(z*scale) / scale
	if r == 0 {
		return 0 // avoid -0
	}
	return r
}
