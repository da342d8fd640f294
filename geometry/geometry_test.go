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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func square(x, y, side float64) Loop {
	return Loop{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

func TestLoopArea(t *testing.T) {
	l := square(0, 0, 10)
	if a := l.Area(); a != 100 {
		t.Errorf("area = %g, want 100", a)
	}
	if a := l.Reversed().Area(); a != -100 {
		t.Errorf("reversed area = %g, want -100", a)
	}
	if a := l.Reversed().CCW().Area(); a != 100 {
		t.Errorf("CCW area = %g", a)
	}
	if p := l.Perimeter(); p != 40 {
		t.Errorf("perimeter = %g", p)
	}
}

func TestRegionContains(t *testing.T) {
	r := NewRegion(WorldXY(), square(0, 0, 10), []Loop{square(4, 4, 2)}, Whole)
	if r.Outer.Area() <= 0 || r.Holes[0].Area() >= 0 {
		t.Fatal("orientation not normalised")
	}
	if a := r.Area(); a != 96 {
		t.Errorf("area = %g, want 96", a)
	}

	cases := []struct {
		p    vec.Vec2
		want bool
	}{
		{vec.Vec2{X: 1, Y: 1}, true},
		{vec.Vec2{X: 5, Y: 5}, false},
		{vec.Vec2{X: 11, Y: 5}, false},
		{vec.Vec2{X: 3.9, Y: 5}, true},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %t, want %t", c.p, got, c.want)
		}
	}
}

func TestPlaneRoundTrip(t *testing.T) {
	planes := []Plane{
		WorldXY(),
		HorizontalAt(3.5),
		NewPlane(Vec3{1, 2, 3}, Vec3{0, 1, 1}),
		NewPlane(Vec3{0, 0, 0}, Vec3{1, 0, 0}),
		HorizontalAt(1).Rotate(30),
	}
	p := vec.Vec2{X: 2.5, Y: -1.25}
	for i, pl := range planes {
		q := pl.At(p)
		if h := pl.Height(q); math.Abs(h) > 1e-12 {
			t.Errorf("%d: point off plane by %g", i, h)
		}
		back := pl.Project(q)
		if back.Sub(p).Length() > 1e-12 {
			t.Errorf("%d: got %v, want %v", i, back, p)
		}
		if d := pl.XAxis.Cross(pl.YAxis).Sub(pl.Normal).Length(); d > 1e-12 {
			t.Errorf("%d: frame is not right-handed", i)
		}
	}

	if !HorizontalAt(2).IsHorizontal() {
		t.Error("horizontal plane not recognised")
	}
	if NewPlane(Vec3{}, Vec3{0, 1, 1}).IsHorizontal() {
		t.Error("tilted plane reported as horizontal")
	}
}

func TestPolylineVertices(t *testing.T) {
	p := Polyline{Points: []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, Closed: true}
	if n := len(p.Lines()); n != 3 {
		t.Errorf("closed polyline has %d lines, want 3", n)
	}
	if l := p.Length(); math.Abs(l-(2+math.Sqrt2)) > 1e-12 {
		t.Errorf("length = %g", l)
	}
	p.Closed = false
	if n := len(p.Lines()); n != 2 {
		t.Errorf("open polyline has %d lines, want 2", n)
	}
}

func TestBox(t *testing.T) {
	b := NewBox(Vec3{0, 0, 0}, Vec3{50, 50, 10}).Bounds()
	want := Box{Min: Vec3{0, 0, 0}, Max: Vec3{50, 50, 10}}
	if b != want {
		t.Errorf("got %v, want %v", b, want)
	}
	if !EmptyBox().IsEmpty() {
		t.Error("empty box is not empty")
	}
	if got := EmptyBox().Union(b); got != b {
		t.Errorf("union with empty box: %v", got)
	}
}
