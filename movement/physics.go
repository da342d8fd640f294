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
	"fmt"
	"math"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
)

// Physics holds the printer parameters used to derive flow, speed and
// delimiters.  Speeds are in units per second, as in the settings file.
type Physics struct {
	NozzleDiameter   float64
	FilamentDiameter float64

	PerimeterSpeed float64
	MinPrintSpeed  float64
	Acceleration   float64

	RetractLift         float64
	RetractLength       float64
	RetractRestartExtra float64
	RetractSpeed        float64
	TravelSpeed         float64
}

// LoadPhysics reads the printer parameters from cfg.
func LoadPhysics(cfg config.Map) (Physics, error) {
	var p Physics
	fields := []struct {
		key    string
		dst    *float64
		signed bool
	}{
		{"nozzle_diameter", &p.NozzleDiameter, false},
		{"filament_diameter", &p.FilamentDiameter, false},
		{"perimeter_speed", &p.PerimeterSpeed, false},
		{"min_print_speed", &p.MinPrintSpeed, false},
		{"perimeter_acceleration", &p.Acceleration, false},
		{"retract_lift", &p.RetractLift, true},
		{"retract_length", &p.RetractLength, true},
		{"retract_restart_extra", &p.RetractRestartExtra, true},
		{"retract_speed", &p.RetractSpeed, false},
		{"travel_speed", &p.TravelSpeed, false},
	}
	for _, f := range fields {
		v, err := cfg.Float(f.key)
		if err != nil {
			return Physics{}, fmt.Errorf("printer physics: %w", err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || !f.signed && v < 0 {
			return Physics{}, malformed(f.key, v)
		}
		*f.dst = v
	}
	if p.FilamentDiameter == 0 {
		return Physics{}, malformed("filament_diameter", p.FilamentDiameter)
	}
	return p, nil
}

func malformed(key string, v float64) error {
	return fmt.Errorf("printer physics: %w", &config.KeyError{
		Key:   key,
		Value: fmt.Sprint(v),
		Err:   config.ErrMalformed,
	})
}

// Flow returns the amount of filament fed per unit of travel.
func (p Physics) Flow() float64 {
	r := p.NozzleDiameter / p.FilamentDiameter
	return r * r
}

// Speed returns the feed rate, in units per minute, for the segment cur
// which follows the segment prev.  If prev is nil, cur starts a run.
func (p Physics) Speed(prev *geometry.Line, cur geometry.Line) float64 {
	if prev == nil {
		return p.PerimeterSpeed * 60
	}
	v := p.PerimeterSpeed
	if r := turnRadius(*prev, cur); !math.IsInf(r, 1) {
		v = min(v, math.Sqrt(p.Acceleration*r/math.Sqrt2))
	}
	v = max(v, p.MinPrintSpeed)
	return v * 60
}

// turnRadius returns the radius of the circle which touches the direction of
// prev at the start of prev and passes through the end of cur.
// The result is +Inf if cur continues straight on, and 0 if cur reverses
// the direction of prev.
func turnRadius(prev, cur geometry.Line) float64 {
	t := prev.Direction()
	if t.IsZero() {
		return math.Inf(1)
	}
	d := cur.To.Sub(prev.From)
	if d.Length() < 1e-12 {
		return 0
	}
	perp := d.Sub(t.Mul(d.Dot(t))).Length()
	if perp < 1e-12 {
		if cur.Direction().Dot(t) < 0 {
			return 0
		}
		return math.Inf(1)
	}
	return d.Dot(d) / (2 * perp)
}

// Lift returns the default delimiter for these parameters.
func (p Physics) Lift() Delimiter {
	return Lift(p.RetractLift, p.RetractLength, p.RetractRestartExtra,
		p.RetractSpeed*60, p.TravelSpeed*60)
}

// Reference returns a complete run along lines, with every value derived
// from the physics.
func (p Physics) Reference(lines []geometry.Line) *Run {
	flow := p.Flow()
	segs := make([]Segment, len(lines))
	for i, l := range lines {
		var prev *geometry.Line
		if i > 0 {
			prev = &lines[i-1]
		}
		segs[i] = Segment{
			Line:  l,
			Flow:  Some(flow),
			Speed: Some(p.Speed(prev, l)),
		}
	}
	return &Run{Segments: segs}
}
