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

package slicer

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/geometry/planar"
)

func brick(x0, y0, z0, x1, y1, z1 float64) geometry.Prism {
	return geometry.NewBox(geometry.Vec3{X: x0, Y: y0, Z: z0}, geometry.Vec3{X: x1, Y: y1, Z: z1})
}

func TestBrick(t *testing.T) {
	p := Params{LayerHeight: 1, Width: 0.6, Perimeters: 2}
	res := Slice(planar.New(), p, []geometry.Solid{brick(0, 0, 0, 50, 50, 10)}, nil)
	if !res.Report.Empty() {
		t.Fatalf("report: %+v", res.Report)
	}
	if len(res.Layers) != 10 {
		t.Fatalf("got %d layers, want 10", len(res.Layers))
	}
	for i, l := range res.Layers {
		if z := l.Plane.Origin.Z; z != float64(i) {
			t.Errorf("layer %d at z=%g", i, z)
		}
		if len(l.Whole) != 1 || len(l.Walls) != 2 || len(l.Infill) != 1 {
			t.Fatalf("layer %d: %d whole, %d walls, %d infill",
				i, len(l.Whole), len(l.Walls), len(l.Infill))
		}
		for k, want := range []float64{50*50 - 48.8*48.8, 48.8*48.8 - 47.6*47.6} {
			if a := l.Walls[k].Area(); math.Abs(a-want) > 1e-6 {
				t.Errorf("layer %d ring %d: area %g, want %g", i, k, a, want)
			}
			if l.Walls[k].Kind != geometry.Wall {
				t.Errorf("ring %d has kind %s", k, l.Walls[k].Kind)
			}
		}
		if len(l.Bands) != 1 || math.Abs(l.Bands[0].Area()-(2500-47.6*47.6)) > 1e-6 {
			t.Errorf("layer %d: bands %v", i, l.Bands)
		}
		if a := l.Infill[0].Area(); math.Abs(a-47.6*47.6) > 1e-6 {
			t.Errorf("layer %d: infill area %g", i, a)
		}
	}
}

func TestPlacement(t *testing.T) {
	p := Params{LayerHeight: 1, Width: 0.6, Perimeters: 2}
	cases := []struct {
		name  string
		solid geometry.Solid
		want  string
	}{
		{"outside", brick(190, 0, 0, 210, 10, 5), "object is outside of printable area"},
		{"too_tall", brick(0, 0, 0, 10, 10, 130), "object is outside of printable area"},
		{"floating", brick(0, 0, 1, 10, 10, 5), "object is not aligned with print bed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := Slice(planar.New(), p, []geometry.Solid{c.solid}, nil)
			if len(res.Layers) != 0 {
				t.Errorf("got %d layers", len(res.Layers))
			}
			if len(res.Report.Errors) != 1 || res.Report.Errors[0] != c.want {
				t.Errorf("errors: %q", res.Report.Errors)
			}
		})
	}
}

func TestTiltedPlane(t *testing.T) {
	p := Params{LayerHeight: 1, Width: 0.6, Perimeters: 2}
	pl := geometry.NewPlane(geometry.Vec3{X: 25, Y: 25, Z: 5}, geometry.Vec3{X: 0.1, Z: 1})
	res := Slice(planar.New(), p, []geometry.Solid{brick(0, 0, 0, 50, 50, 10)}, []geometry.Plane{pl})
	if res.WallsEnabled {
		t.Error("walls enabled for tilted plane")
	}
	if len(res.Report.Warnings) != 1 {
		t.Errorf("warnings: %q", res.Report.Warnings)
	}
	if len(res.Layers) != 1 {
		t.Fatalf("got %d layers", len(res.Layers))
	}
	l := res.Layers[0]
	if len(l.Whole) != 1 || len(l.Walls) != 0 || len(l.Infill) != 0 {
		t.Errorf("%d whole, %d walls, %d infill", len(l.Whole), len(l.Walls), len(l.Infill))
	}
}

func TestHole(t *testing.T) {
	p := Params{LayerHeight: 2, Width: 0.6, Perimeters: 2}
	b := brick(0, 0, 0, 50, 50, 4)
	b.Holes = []geometry.Loop{{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}, {X: 20, Y: 30}}}
	res := Slice(planar.New(), p, []geometry.Solid{b}, nil)
	if len(res.Layers) != 2 {
		t.Fatalf("got %d layers", len(res.Layers))
	}
	l := res.Layers[1]
	if len(l.Walls) != 4 {
		t.Fatalf("got %d rings, want 4", len(l.Walls))
	}
	if a := l.Walls[2].Area(); math.Abs(a-(11.2*11.2-100)) > 1e-6 {
		t.Errorf("first hole ring: area %g", a)
	}
	if len(l.Infill) != 1 || len(l.Infill[0].Holes) != 1 {
		t.Fatalf("infill %v", l.Infill)
	}
	want := 47.6*47.6 - 12.4*12.4
	if a := l.Infill[0].Area(); math.Abs(a-want) > 1e-6 {
		t.Errorf("infill area %g, want %g", a, want)
	}
}

func TestTooSmall(t *testing.T) {
	p := Params{LayerHeight: 1, Width: 0.6, Perimeters: 2}
	res := Slice(planar.New(), p, []geometry.Solid{brick(0, 0, 0, 20, 1, 1)}, nil)
	if len(res.Layers) != 1 {
		t.Fatalf("got %d layers", len(res.Layers))
	}
	l := res.Layers[0]
	if len(l.Walls) != 0 || len(l.Infill) != 0 {
		t.Errorf("%d walls, %d infill", len(l.Walls), len(l.Infill))
	}
	if len(res.Report.Warnings) == 0 {
		t.Error("no warning for thin object")
	}
}

func TestUnionPerPlane(t *testing.T) {
	p := Params{LayerHeight: 1, Width: 0.6, Perimeters: 1}
	solids := []geometry.Solid{
		brick(0, 0, 0, 10, 10, 2),
		brick(5, 5, 0, 15, 15, 2),
	}
	res := Slice(planar.New(), p, solids, nil)
	if len(res.Layers) != 2 {
		t.Fatalf("got %d layers", len(res.Layers))
	}
	for i, l := range res.Layers {
		if len(l.Whole) != 1 {
			t.Errorf("layer %d: %d sections", i, len(l.Whole))
		}
	}
}

func TestExplicitPlanes(t *testing.T) {
	p := Params{LayerHeight: 0.1, Width: 0.6, Perimeters: 0}
	planes := []geometry.Plane{geometry.HorizontalAt(1), geometry.HorizontalAt(3)}
	res := Slice(planar.New(), p, []geometry.Solid{brick(0, 0, 0, 10, 10, 5)}, planes)
	if len(res.Layers) != 2 {
		t.Fatalf("got %d layers", len(res.Layers))
	}
	l := res.Layers[0]
	if len(l.Walls) != 0 || len(l.Infill) != 1 || l.Infill[0].Kind != geometry.Infill {
		t.Errorf("perimeters=0: %d walls, %v", len(l.Walls), l.Infill)
	}
}

func TestLoadParams(t *testing.T) {
	cfg, err := config.WithDefaults(nil)
	if err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p != (Params{LayerHeight: 0.3, Width: 0.6, Perimeters: 3}) {
		t.Errorf("got %+v", p)
	}

	cfg, _ = config.Parse([]string{"perimeters=2"})
	if _, err := LoadParams(cfg); !errors.Is(err, config.ErrMissing) {
		t.Errorf("got %v", err)
	}
}
