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

package movement

import (
	"errors"
	"math"
	"testing"
	"time"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
)

func defaults(t *testing.T) config.Map {
	t.Helper()
	cfg, err := config.WithDefaults(nil)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func corner() geometry.Polyline {
	return geometry.Polyline{Points: []geometry.Vec3{
		{X: 0, Y: 0, Z: 0.3},
		{X: 10, Y: 0, Z: 0.3},
		{X: 10, Y: 10, Z: 0.3},
	}}
}

func TestCompleteCorner(t *testing.T) {
	cfg := defaults(t)
	r, err := FromPolyline(corner())
	if err != nil {
		t.Fatal(err)
	}
	if r.IsComplete() {
		t.Fatal("fresh run is complete")
	}
	if _, ok := r.Time(); ok {
		t.Error("time of incomplete run reported as valid")
	}

	m, err := Complete(r, cfg)
	if err != nil {
		t.Fatal(err)
	}
	c := m.(*Run)
	if !c.IsComplete() {
		t.Fatal("completed run is incomplete")
	}
	if len(c.Segments) != 2 {
		t.Fatalf("got %d segments", len(c.Segments))
	}

	wantFlow := (0.5 / 2.95) * (0.5 / 2.95)
	for i, s := range c.Segments {
		f, _ := s.Flow.Get()
		if math.Abs(f-wantFlow) > 1e-12 {
			t.Errorf("segment %d: flow %g, want %g", i, f, wantFlow)
		}
	}

	v0, _ := c.Segments[0].Speed.Get()
	if v0 != 40*60 {
		t.Errorf("first speed %g, want %g", v0, 40.0*60)
	}
	// turn radius 10 at acceleration 25
	want := math.Sqrt(25*10/math.Sqrt2) * 60
	v1, _ := c.Segments[1].Speed.Get()
	if math.Abs(v1-want) > 1e-9 {
		t.Errorf("corner speed %g, want %g", v1, want)
	}
	if v1 >= v0 {
		t.Error("corner is not slower than the straight")
	}

	if c.Delimiter == nil || !c.Delimiter.HasLeadIn() || !c.Delimiter.HasLeadOut() {
		t.Errorf("delimiter %v", c.Delimiter)
	}
	if c.Delimiter.StartVec != (geometry.Vec3{Z: -0.3}) || c.Delimiter.EndPressure != -1 {
		t.Errorf("delimiter %+v", *c.Delimiter)
	}

	if r.IsComplete() || r.Delimiter != nil {
		t.Error("Complete modified its argument")
	}

	again, err := Complete(c, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if again != Movement(c) {
		t.Error("completing a complete run changed it")
	}
}

func TestCompleteKeepsValues(t *testing.T) {
	cfg := defaults(t)
	r, err := FromPolyline(corner())
	if err != nil {
		t.Fatal(err)
	}
	r.Segments[1].Speed = Some(123)
	r.Segments[0].Flow = Some(0.5)
	explicit := &Delimiter{}
	r.Delimiter = explicit

	m, err := Complete(r, cfg)
	if err != nil {
		t.Fatal(err)
	}
	c := m.(*Run)
	if v, _ := c.Segments[1].Speed.Get(); v != 123 {
		t.Errorf("speed overwritten: %g", v)
	}
	if f, _ := c.Segments[0].Flow.Get(); f != 0.5 {
		t.Errorf("flow overwritten: %g", f)
	}
	if c.Delimiter != explicit {
		t.Error("explicit delimiter replaced")
	}
}

func TestSpeedClamp(t *testing.T) {
	p := Physics{PerimeterSpeed: 40, MinPrintSpeed: 5, Acceleration: 25}
	cases := []struct {
		name string
		to   geometry.Vec3
		want float64
	}{
		{"straight", geometry.Vec3{X: 20}, 40 * 60},
		{"hairpin", geometry.Vec3{X: 0, Y: 0.01}, 5 * 60},
		{"reversal", geometry.Vec3{X: -5}, 5 * 60},
		{"partial_reversal", geometry.Vec3{X: 5}, 5 * 60},
		{"retrace", geometry.Vec3{}, 5 * 60},
	}
	prev := geometry.Line{From: geometry.Vec3{}, To: geometry.Vec3{X: 10}}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cur := geometry.Line{From: prev.To, To: c.to}
			if got := p.Speed(&prev, cur); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("got %g, want %g", got, c.want)
			}
		})
	}
}

func TestSpeedNoAcceleration(t *testing.T) {
	p := Physics{PerimeterSpeed: 40, MinPrintSpeed: 5}
	prev := geometry.Line{From: geometry.Vec3{}, To: geometry.Vec3{X: 10}}
	cases := []struct {
		name string
		to   geometry.Vec3
		want float64
	}{
		{"straight", geometry.Vec3{X: 20}, 40 * 60},
		{"corner", geometry.Vec3{X: 10, Y: 10}, 5 * 60},
		{"reversal", geometry.Vec3{X: -5}, 5 * 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cur := geometry.Line{From: prev.To, To: c.to}
			got := p.Speed(&prev, cur)
			if math.IsNaN(got) || got != c.want {
				t.Errorf("got %g, want %g", got, c.want)
			}
		})
	}
}

func TestLoadPhysics(t *testing.T) {
	p, err := LoadPhysics(defaults(t))
	if err != nil {
		t.Fatal(err)
	}
	if p.PerimeterSpeed != 40 || p.Acceleration != 25 || p.MinPrintSpeed != 5 {
		t.Errorf("got %+v", p)
	}

	cases := []struct {
		setting string
		ok      bool
	}{
		{"perimeter_acceleration=0", true},
		{"perimeter_acceleration=-1", false},
		{"perimeter_speed=-40", false},
		{"min_print_speed=-5", false},
		{"travel_speed=-120", false},
		{"nozzle_diameter=-0.5", false},
		{"filament_diameter=0", false},
		{"retract_length=-1", true},
	}
	for _, c := range cases {
		t.Run(c.setting, func(t *testing.T) {
			cfg, err := config.WithDefaults([]string{c.setting})
			if err != nil {
				t.Fatal(err)
			}
			_, err = LoadPhysics(cfg)
			if c.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			} else if !c.ok && !errors.Is(err, config.ErrMalformed) {
				t.Errorf("got %v, want ErrMalformed", err)
			}
		})
	}
}

func TestTime(t *testing.T) {
	r := &Run{Segments: []Segment{
		{Line: geometry.Line{To: geometry.Vec3{X: 60}}, Flow: Some(0), Speed: Some(60)},
		{Line: geometry.Line{From: geometry.Vec3{X: 60}, To: geometry.Vec3{X: 60, Y: 30}}, Flow: Some(0), Speed: Some(60)},
	}}
	d, ok := r.Time()
	if !ok {
		t.Fatal("time not available")
	}
	if d != 90*time.Second {
		t.Errorf("got %v, want 1m30s", d)
	}
	if l := r.Length(); l != 90 {
		t.Errorf("length %g", l)
	}
}

func TestBlobAndRaw(t *testing.T) {
	cfg := defaults(t)
	b := NewBlob(geometry.Vec3{X: 1, Y: 2, Z: 0.6})
	m, err := Complete(b, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if m.(*Blob).Delimiter == nil {
		t.Error("blob has no delimiter")
	}
	if lo, hi := m.ZRange(); lo != 0.6 || hi != 0.6 {
		t.Errorf("z range %g %g", lo, hi)
	}

	raw := NewRaw(1.5, "M106 S0")
	m, err = Complete(raw, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if m != Movement(raw) {
		t.Error("raw movement changed")
	}
}

func TestMissingSetting(t *testing.T) {
	cfg, err := config.Parse([]string{"nozzle_diameter=0.4"})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := FromPolyline(corner())
	_, err = Complete(r, cfg)
	if !errors.Is(err, config.ErrMissing) {
		t.Errorf("got %v", err)
	}
}

func TestEmpty(t *testing.T) {
	if _, err := NewRun(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("got %v", err)
	}
}
