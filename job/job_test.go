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

package job

import (
	"errors"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/layer"
	"seehuhn.de/go/toolpath/movement"
)

const example = `
sort: z
settings:
  - layer_height=0.5
  - fill_density=20%
objects:
  - box: {min: [0, 0, 0], max: [50, 50, 10]}
  - prism:
      outline: [[0, 0], [30, 0], [30, 30], [0, 30]]
      holes: [[[10, 10], [20, 10], [20, 20], [10, 20]]]
      top: 2
  - sheet: {profile: [[0, 0], [10, 0]], top: 1}
  - polyline: {points: [[60, 0, 0.3], [80, 0, 0.3], [80, 20, 0.3]], closed: true}
  - line: {from: [0, 0, 0.3], to: [10, 0, 0.3]}
  - arc: {center: [50, 50, 0.3], radius: 10, sweep: 90}
  - point: [5, 5, 0.3]
  - gcode: {z: 0.3, lines: ["M106 S255"]}
`

func TestRead(t *testing.T) {
	j, err := Read(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}

	mode, err := j.Mode()
	if err != nil || mode != layer.ZOnly {
		t.Errorf("mode %v, %v", mode, err)
	}

	items, err := j.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 8 {
		t.Fatalf("got %d items", len(items))
	}

	if b, ok := items[0].(geometry.Prism); !ok || b.ZMax != 10 || len(b.Outer) != 4 {
		t.Errorf("box: %#v", items[0])
	}
	if p, ok := items[1].(geometry.Prism); !ok || len(p.Holes) != 1 || p.ZMax != 2 {
		t.Errorf("prism: %#v", items[1])
	}
	if _, ok := items[2].(geometry.Sheet); !ok {
		t.Errorf("sheet: %#v", items[2])
	}
	if p, ok := items[3].(geometry.Polyline); !ok || !p.Closed || len(p.Points) != 3 {
		t.Errorf("polyline: %#v", items[3])
	}
	if _, ok := items[4].(geometry.Line); !ok {
		t.Errorf("line: %#v", items[4])
	}
	if a, ok := items[5].(geometry.Arc); !ok || math.Abs(a.Sweep-math.Pi/2) > 1e-12 {
		t.Errorf("arc: %#v", items[5])
	}
	if p, ok := items[6].(geometry.Vec3); !ok || p != (geometry.Vec3{X: 5, Y: 5, Z: 0.3}) {
		t.Errorf("point: %#v", items[6])
	}
	if r, ok := items[7].(*movement.Raw); !ok || len(r.Lines) != 1 || r.Z != 0.3 {
		t.Errorf("gcode: %#v", items[7])
	}
}

func TestConfig(t *testing.T) {
	j, err := Read(strings.NewReader(example))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := j.Config([]string{"layer_height=0.2", "perimeters=1"})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		key  string
		want float64
	}{
		{"layer_height", 0.5}, // the job file wins
		{"fill_density", 0.2},
		{"perimeters", 1},
		{"temperature", 200},
	}
	for _, c := range cases {
		got, err := cfg.Float(c.key)
		if err != nil || got != c.want {
			t.Errorf("%s: got %g, %v", c.key, got, err)
		}
	}
}

func TestInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"two_shapes", "objects:\n  - point: [0, 0, 0]\n    line: {from: [0, 0, 0], to: [1, 0, 0]}\n"},
		{"no_shape", "objects:\n  - {}\n"},
		{"short_point", "objects:\n  - point: [0, 0]\n"},
		{"flat_prism", "objects:\n  - prism: {outline: [[0, 0], [1, 0], [1, 1]], top: 0}\n"},
		{"zero_radius", "objects:\n  - arc: {center: [0, 0, 0], radius: 0, sweep: 90}\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			j, err := Read(strings.NewReader(c.body))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := j.Items(); !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestUnknownKey(t *testing.T) {
	_, err := Read(strings.NewReader("objects:\n  - sphere: {radius: 3}\n"))
	if err == nil {
		t.Error("unknown object key accepted")
	}
}

func TestEmpty(t *testing.T) {
	j, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	items, err := j.Items()
	if err != nil || len(items) != 0 {
		t.Errorf("got %v, %v", items, err)
	}
	if mode, _ := j.Mode(); mode != layer.Full {
		t.Errorf("mode %v", mode)
	}
}
