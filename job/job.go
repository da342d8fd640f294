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

// Package job reads print jobs from YAML files.
//
// A job file lists the objects to print, optionally together with extra
// settings and the layer grouping mode:
//
//	sort: full
//	settings:
//	  - layer_height=0.3
//	  - fill_density=20%
//	objects:
//	  - box: {min: [0, 0, 0], max: [50, 50, 10]}
//	  - polyline: {points: [[60, 0, 0.3], [80, 0, 0.3], [80, 20, 0.3]]}
//	  - gcode: {z: 0.3, lines: ["M106 S255"]}
//
// Every object has exactly one of the keys box, prism, sheet, polyline,
// line, arc, point or gcode.  Unknown keys are rejected.
package job

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/layer"
	"seehuhn.de/go/toolpath/movement"
)

// ErrInvalid is returned for objects which cannot be converted.
var ErrInvalid = errors.New("invalid object")

// Job is the content of a job file.
type Job struct {
	Sort     string   `yaml:"sort"`
	Settings []string `yaml:"settings"`
	Objects  []Object `yaml:"objects"`
}

// Object is a single entry of the objects list.
// Exactly one field must be set.
type Object struct {
	Box      *Box      `yaml:"box"`
	Prism    *Prism    `yaml:"prism"`
	Sheet    *Sheet    `yaml:"sheet"`
	Polyline *Polyline `yaml:"polyline"`
	Line     *Line     `yaml:"line"`
	Arc      *Arc      `yaml:"arc"`
	Point    []float64 `yaml:"point"`
	GCode    *GCode    `yaml:"gcode"`
}

// Box is an axis-aligned brick, given by two opposite corners.
type Box struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

// Prism is a polygon with holes, extruded from Bottom to Top.
type Prism struct {
	Outline [][]float64   `yaml:"outline"`
	Holes   [][][]float64 `yaml:"holes"`
	Bottom  float64       `yaml:"bottom"`
	Top     float64       `yaml:"top"`
}

// Sheet is an open polyline, extruded from Bottom to Top.
type Sheet struct {
	Profile [][]float64 `yaml:"profile"`
	Bottom  float64     `yaml:"bottom"`
	Top     float64     `yaml:"top"`
}

// Polyline is a sequence of points in model space.
type Polyline struct {
	Points [][]float64 `yaml:"points"`
	Closed bool        `yaml:"closed"`
}

// Line is a straight line in model space.
type Line struct {
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`
}

// Arc is a horizontal circular arc.  Angles are in degrees, measured
// counter-clockwise from the X axis.
type Arc struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Start  float64   `yaml:"start"`
	Sweep  float64   `yaml:"sweep"`
}

// GCode holds printer commands which are copied to the output.
type GCode struct {
	Z     float64  `yaml:"z"`
	Lines []string `yaml:"lines"`
}

// Load reads a job file.
func Load(fname string) (*Job, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads a job from r.
func Read(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	job := &Job{}
	if err := dec.Decode(job); err != nil && err != io.EOF {
		return nil, fmt.Errorf("job: %w", err)
	}
	return job, nil
}

// Mode returns the layer grouping mode.  The default is [layer.Full].
func (j *Job) Mode() (layer.Mode, error) {
	if j.Sort == "" {
		return layer.Full, nil
	}
	return layer.ParseMode(j.Sort)
}

// Config returns the settings for the job.  Settings given in the job file
// take precedence over the lines in base, which in turn take precedence over
// the default profile.
func (j *Job) Config(base []string) (config.Map, error) {
	lines := make([]string, 0, len(j.Settings)+len(base))
	lines = append(lines, j.Settings...)
	lines = append(lines, base...)
	return config.WithDefaults(lines)
}

// Items converts the objects into input items for the toolpath generator.
func (j *Job) Items() ([]any, error) {
	items := make([]any, 0, len(j.Objects))
	for i, obj := range j.Objects {
		item, err := obj.item()
		if err != nil {
			return nil, fmt.Errorf("job: object %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (obj *Object) item() (any, error) {
	var res []any
	if obj.Box != nil {
		lo, err := point3(obj.Box.Min)
		if err != nil {
			return nil, err
		}
		hi, err := point3(obj.Box.Max)
		if err != nil {
			return nil, err
		}
		res = append(res, geometry.NewBox(
			geometry.Vec3{X: min(lo.X, hi.X), Y: min(lo.Y, hi.Y), Z: min(lo.Z, hi.Z)},
			geometry.Vec3{X: max(lo.X, hi.X), Y: max(lo.Y, hi.Y), Z: max(lo.Z, hi.Z)}))
	}
	if obj.Prism != nil {
		p, err := obj.Prism.solid()
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	if obj.Sheet != nil {
		profile, err := loop(obj.Sheet.Profile)
		if err != nil {
			return nil, err
		}
		if obj.Sheet.Top <= obj.Sheet.Bottom {
			return nil, fmt.Errorf("%w: empty height range", ErrInvalid)
		}
		res = append(res, geometry.Sheet{Profile: profile, ZMin: obj.Sheet.Bottom, ZMax: obj.Sheet.Top})
	}
	if obj.Polyline != nil {
		pts, err := points3(obj.Polyline.Points)
		if err != nil {
			return nil, err
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("%w: polyline needs two points", ErrInvalid)
		}
		res = append(res, geometry.Polyline{Points: pts, Closed: obj.Polyline.Closed})
	}
	if obj.Line != nil {
		from, err := point3(obj.Line.From)
		if err != nil {
			return nil, err
		}
		to, err := point3(obj.Line.To)
		if err != nil {
			return nil, err
		}
		res = append(res, geometry.Line{From: from, To: to})
	}
	if obj.Arc != nil {
		c, err := point3(obj.Arc.Center)
		if err != nil {
			return nil, err
		}
		if obj.Arc.Radius <= 0 {
			return nil, fmt.Errorf("%w: arc radius must be positive", ErrInvalid)
		}
		res = append(res, geometry.Arc{
			Plane:  geometry.NewPlane(c, geometry.Vec3{Z: 1}),
			Radius: obj.Arc.Radius,
			Start:  obj.Arc.Start * math.Pi / 180,
			Sweep:  obj.Arc.Sweep * math.Pi / 180,
		})
	}
	if obj.Point != nil {
		p, err := point3(obj.Point)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	if obj.GCode != nil {
		res = append(res, movement.NewRaw(obj.GCode.Z, obj.GCode.Lines...))
	}

	if len(res) != 1 {
		return nil, fmt.Errorf("%w: need exactly one shape, got %d", ErrInvalid, len(res))
	}
	return res[0], nil
}

func (p *Prism) solid() (geometry.Prism, error) {
	outer, err := loop(p.Outline)
	if err != nil {
		return geometry.Prism{}, err
	}
	if len(outer) < 3 {
		return geometry.Prism{}, fmt.Errorf("%w: outline needs three points", ErrInvalid)
	}
	if p.Top <= p.Bottom {
		return geometry.Prism{}, fmt.Errorf("%w: empty height range", ErrInvalid)
	}
	res := geometry.Prism{Outer: outer, ZMin: p.Bottom, ZMax: p.Top}
	for _, h := range p.Holes {
		hole, err := loop(h)
		if err != nil {
			return geometry.Prism{}, err
		}
		res.Holes = append(res.Holes, hole)
	}
	return res, nil
}

func point3(c []float64) (geometry.Vec3, error) {
	if len(c) != 3 {
		return geometry.Vec3{}, fmt.Errorf("%w: point %v needs three coordinates", ErrInvalid, c)
	}
	return geometry.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func points3(cc [][]float64) ([]geometry.Vec3, error) {
	res := make([]geometry.Vec3, len(cc))
	for i, c := range cc {
		p, err := point3(c)
		if err != nil {
			return nil, err
		}
		res[i] = p
	}
	return res, nil
}

func loop(cc [][]float64) (geometry.Loop, error) {
	res := make(geometry.Loop, len(cc))
	for i, c := range cc {
		if len(c) != 2 {
			return nil, fmt.Errorf("%w: point %v needs two coordinates", ErrInvalid, c)
		}
		res[i] = vec.Vec2{X: c[0], Y: c[1]}
	}
	return res, nil
}
