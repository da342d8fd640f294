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

package segment

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/geometry"
)

func TestDirect(t *testing.T) {
	cases := []struct {
		name string
		c    geometry.Curve
		want int
	}{
		{"open_polyline", geometry.Polyline{Points: []geometry.Vec3{{}, {X: 10}, {X: 10, Y: 10}}}, 2},
		{"closed_polyline", geometry.Polyline{
			Points: []geometry.Vec3{{}, {X: 10}, {X: 10, Y: 10}, {Y: 10}},
			Closed: true,
		}, 4},
		{"line", geometry.Line{From: geometry.Vec3{}, To: geometry.Vec3{X: 1, Y: 2, Z: 3}}, 1},
		{"straight_bezier", geometry.Bezier{
			P0: geometry.Vec3{}, P1: geometry.Vec3{X: 1}, P2: geometry.Vec3{X: 2}, P3: geometry.Vec3{X: 3},
		}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Curve(c.c, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			if len(res) != 1 {
				t.Fatalf("got %d results", len(res))
			}
			if n := len(res[0].Segments); n != c.want {
				t.Errorf("got %d segments, want %d", n, c.want)
			}
		})
	}
}

func TestArc(t *testing.T) {
	a := geometry.Arc{
		Plane:  geometry.HorizontalAt(1),
		Radius: 10,
		Start:  0,
		Sweep:  math.Pi / 2,
	}
	res, err := Curve(a, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	segs := res[0].Segments
	// the angle limit of 0.05 radians is the binding constraint
	if len(segs) != 32 {
		t.Errorf("got %d segments, want 32", len(segs))
	}
	for i, s := range segs {
		for _, p := range []geometry.Vec3{s.From, s.To} {
			r := math.Hypot(p.X, p.Y)
			if math.Abs(r-10) > 1e-9 || p.Z != 1 {
				t.Fatalf("segment %d: point %v off the arc", i, p)
			}
		}
		if i > 0 && segs[i-1].To != s.From {
			t.Fatalf("segment %d does not continue segment %d", i, i-1)
		}
	}
	end := segs[len(segs)-1].To
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y-10) > 1e-9 {
		t.Errorf("arc ends at %v", end)
	}

	opt := DefaultOptions()
	opt.MaxCount = 8
	res, err = Curve(a, opt)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res[0].Segments); n != 8 {
		t.Errorf("MaxCount: got %d segments, want 8", n)
	}
}

func TestBezierDeviation(t *testing.T) {
	c := geometry.Bezier{
		P0: geometry.Vec3{},
		P1: geometry.Vec3{X: 0, Y: 20},
		P2: geometry.Vec3{X: 20, Y: 20},
		P3: geometry.Vec3{X: 20, Y: 0},
	}
	opt := DefaultOptions()
	opt.Tolerance = 0.05
	res, err := Curve(c, opt)
	if err != nil {
		t.Fatal(err)
	}
	segs := res[0].Segments
	if len(segs) < 4 {
		t.Fatalf("only %d segments", len(segs))
	}
	// sample the curve and compare with the nearest segment
	for i := range 101 {
		p := c.PointAt(float64(i) / 100)
		best := math.Inf(1)
		for _, s := range segs {
			best = min(best, distToLine(p, s))
		}
		if best > 0.1 {
			t.Errorf("t=%g: deviation %g", float64(i)/100, best)
		}
	}
}

func distToLine(p geometry.Vec3, s geometry.Line) float64 {
	d := s.To.Sub(s.From)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(s.From).Length()
	}
	t := max(0, min(1, p.Sub(s.From).Dot(d)/l2))
	return p.Sub(geometry.Lerp(s.From, s.To, t)).Length()
}

func TestPathCurve(t *testing.T) {
	var p path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{{X: 0, Y: 0}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: 10, Y: 0}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: 10, Y: 10}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: 0, Y: 10}}) &&
			yield(path.CmdClose, nil) &&
			yield(path.CmdMoveTo, []vec.Vec2{{X: 20, Y: 0}}) &&
			yield(path.CmdCubeTo, []vec.Vec2{{X: 20, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 0}})
	}
	c := geometry.PathCurve{Plane: geometry.HorizontalAt(2), Path: p}

	res, err := Curve(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(res))
	}
	if !res[0].Polyline.Closed || len(res[0].Segments) != 4 {
		t.Errorf("square: closed=%t, %d segments", res[0].Polyline.Closed, len(res[0].Segments))
	}
	if res[1].Polyline.Closed || len(res[1].Segments) < 2 {
		t.Errorf("curve: closed=%t, %d segments", res[1].Polyline.Closed, len(res[1].Segments))
	}
	last := res[1].Polyline.Points[len(res[1].Polyline.Points)-1]
	if last != (geometry.Vec3{X: 30, Y: 0, Z: 2}) {
		t.Errorf("curve ends at %v", last)
	}
}

func TestPathQuadratic(t *testing.T) {
	p0, p1, p2 := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 20, Y: 0}
	var p path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{p0}) &&
			yield(path.CmdQuadTo, []vec.Vec2{p1, p2})
	}
	pl := geometry.HorizontalAt(1)
	quad := func(t float64) geometry.Vec3 {
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		return pl.At(q)
	}

	for _, tol := range []float64{0.5, 0.05, 0.005} {
		opt := DefaultOptions()
		opt.Tolerance = tol
		res, err := Curve(geometry.PathCurve{Plane: pl, Path: p}, opt)
		if err != nil {
			t.Fatal(err)
		}
		if len(res) != 1 {
			t.Fatalf("got %d subpaths", len(res))
		}
		pts := res[0].Polyline.Points
		if pts[0] != pl.At(p0) || pts[len(pts)-1] != pl.At(p2) {
			t.Errorf("tol=%g: end points %v, %v", tol, pts[0], pts[len(pts)-1])
		}
		for i := range 101 {
			q := quad(float64(i) / 100)
			best := math.Inf(1)
			for _, s := range res[0].Segments {
				best = min(best, distToLine(q, s))
			}
			if best > 2*tol {
				t.Errorf("tol=%g, t=%g: deviation %g", tol, float64(i)/100, best)
			}
		}
	}
}

func TestQuadraticForm(t *testing.T) {
	p0 := geometry.Vec3{X: 0, Y: 0}
	p1 := geometry.Vec3{X: 10, Y: 20}
	p2 := geometry.Vec3{X: 20, Y: 0}
	c := quadratic(p0, p1, p2)
	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		s := 1 - tt
		want := p0.Mul(s * s).Add(p1.Mul(2 * s * tt)).Add(p2.Mul(tt * tt))
		if d := c.PointAt(tt).Sub(want).Length(); d > 1e-12 {
			t.Errorf("t=%g: off by %g", tt, d)
		}
	}
}

type spiral struct{}

func (spiral) Bounds() geometry.Box { return geometry.Box{} }

func TestUnsupported(t *testing.T) {
	if _, err := Curve(spiral{}, DefaultOptions()); err == nil {
		t.Error("expected an error")
	}
}
