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

// Package gcode compiles a layered model into printer commands.
//
// The output is RepRap-style G-code: one command per line, with all
// coordinates, feed rates and extrusion amounts printed with two decimals.
// Every run is surrounded by the transitions described by its delimiter.
// Extrusion is counted from zero at the start of each run.
package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/internal/logging"
	"seehuhn.de/go/toolpath/layer"
	"seehuhn.de/go/toolpath/movement"
)

// Program is a compiled command stream.
type Program struct {
	Lines []string

	// Extrusion is the total amount of filament fed by the extruding
	// moves of all runs.
	Extrusion float64
}

// WriteTo writes the program to w, one command per line.
// This implements the [io.WriterTo] interface.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range p.Lines {
		k, err := bw.WriteString(line)
		n += int64(k)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

func (p *Program) String() string {
	return strings.Join(p.Lines, "\n") + "\n"
}

// Settings holds the printer settings used by the compiler.
type Settings struct {
	// Absolute selects absolute extrusion values within a run.  Otherwise
	// every move carries its own extrusion amount.
	Absolute bool

	// Temperature is the extruder temperature, as given in the settings.
	Temperature string

	Start []string
	End   []string
}

// LoadSettings reads the compiler settings from cfg.
func LoadSettings(cfg config.Map) (Settings, error) {
	var s Settings
	var err error
	if s.Absolute, err = cfg.Bool("absolute_extrudersteps"); err != nil {
		return Settings{}, fmt.Errorf("gcode: %w", err)
	}
	if _, err := cfg.Float("temperature"); err != nil {
		return Settings{}, fmt.Errorf("gcode: %w", err)
	}
	s.Temperature, _ = cfg.Lookup("temperature")
	s.Start = cfg.Text("start_gcode")
	s.End = cfg.Text("end_gcode")
	return s, nil
}

// state is threaded through the compiler.
type state struct {
	Settings

	lines []string

	// total is the extrusion of all runs so far.
	total float64

	// layer is the index of the current layer.
	layer int

	rep diag.Report
}

// Compile converts the model into a command stream.  Movements which are
// not complete are skipped with a warning.  An error is returned only if a
// required setting is missing or malformed.
func Compile(model *layer.Model) (*Program, diag.Report, error) {
	s, err := LoadSettings(model.Config)
	if err != nil {
		return nil, diag.Report{}, err
	}
	st := &state{Settings: s}

	st.header()
	for i, l := range model.Layers {
		st.layer = i
		st.emit("; layer %d, z=%s", i, num(l.Z))
		for _, m := range l.Movements {
			st.movement(m)
		}
	}
	st.footer()

	logging.Logger().Debug("compiled",
		"layers", len(model.Layers),
		"lines", len(st.lines),
		"extrusion", st.total)
	return &Program{Lines: st.lines, Extrusion: st.total}, st.rep, nil
}

func (st *state) emit(format string, args ...any) {
	st.lines = append(st.lines, fmt.Sprintf(format, args...))
}

func (st *state) header() {
	st.lines = append(st.lines, st.Start...)
	if st.Absolute {
		st.emit("M82 ; use absolute distances for extrusion")
	}
	st.emit("G90 ; use absolute coordinates")
	st.emit("G21 ; set units to millimeters")
	st.emit("G92 E0 ; reset extrusion distance")
	st.emit("M104 S%s ; set temperature", st.Temperature)
	st.emit("M109 S%s ; wait for temperature to be reached", st.Temperature)
	st.emit("G1 Z0.00 F360.00 E1.00")
}

func (st *state) footer() {
	st.emit("G92 E0 ; reset extrusion distance")
	st.lines = append(st.lines, st.End...)
}

func (st *state) movement(m movement.Movement) {
	switch m := m.(type) {
	case *movement.Raw:
		st.lines = append(st.lines, m.Lines...)
	case *movement.Blob:
		d := delimiter(m.Delimiter)
		st.leadIn(m.Point, d)
		st.leadOut(m.Point, d)
	case *movement.Run:
		if len(m.Segments) == 0 || !m.IsComplete() {
			st.skip()
			return
		}
		d := delimiter(m.Delimiter)
		st.leadIn(m.Start(), d)
		st.body(m)
		st.leadOut(m.End(), d)
	default:
		st.skip()
	}
}

func (st *state) skip() {
	st.rep.Warnf("layer %d: skipped incomplete movement", st.layer)
	st.emit("; skipped incomplete movement")
}

func delimiter(d *movement.Delimiter) movement.Delimiter {
	if d == nil {
		return movement.Delimiter{}
	}
	return *d
}

func (st *state) leadIn(start geometry.Vec3, d movement.Delimiter) {
	st.emit("G92 E0")
	if !d.HasLeadIn() {
		st.travel(start, d.TravelSpeed)
		return
	}
	st.travel(start.Sub(d.StartVec), d.TravelSpeed)
	st.travel(start, d.TravelSpeed)
	st.emit("G1 F%s E%s", num(d.StartSpeed), num(d.StartPressure))
	st.emit("G92 E0")
}

func (st *state) leadOut(end geometry.Vec3, d movement.Delimiter) {
	if !d.HasLeadOut() {
		return
	}
	st.emit("G92 E0")
	st.emit("G1 F%s E%s", num(d.EndSpeed), num(d.EndPressure))
	st.travel(end.Add(d.EndVec), d.TravelSpeed)
	st.emit("G92 E0")
}

func (st *state) body(r *movement.Run) {
	var e float64
	for _, s := range r.Segments {
		speed, _ := s.Speed.Get()
		de := s.Extrusion()
		e += de
		st.total += de

		value := de
		if st.Absolute {
			value = e
		}
		st.emit("G1 F%s X%s Y%s Z%s E%s",
			num(speed), num(s.To.X), num(s.To.Y), num(s.To.Z), num(value))
	}
}

// travel emits a non-extruding move.  The feed rate is left unchanged if
// speed is zero.
func (st *state) travel(p geometry.Vec3, speed float64) {
	if speed == 0 {
		st.emit("G1 X%s Y%s Z%s", num(p.X), num(p.Y), num(p.Z))
		return
	}
	st.emit("G1 F%s X%s Y%s Z%s", num(speed), num(p.X), num(p.Y), num(p.Z))
}

// num formats x with two decimals.
func num(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
