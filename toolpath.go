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

// Package toolpath turns print geometry into G-code for fused filament
// 3D printers.
//
// [Generate] runs the whole pipeline: solids are sliced into layers,
// perimeters and infill are generated, all paths are given flow, speed and
// retraction moves, and the result is compiled into printer commands.  The
// individual stages live in the sub-packages and can be used on their own.
package toolpath

//go:generate go run ./testcases/export

import (
	"log/slog"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/diag"
	"seehuhn.de/go/toolpath/gcode"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/geometry/planar"
	"seehuhn.de/go/toolpath/internal/logging"
	"seehuhn.de/go/toolpath/layer"
)

// Options controls [Generate].
type Options struct {
	// Service is the geometry kernel.  If nil, a [planar.Service]
	// configured from the settings is used.
	Service geometry.Service

	// Mode selects how the input items are grouped into layers.
	Mode layer.Mode
}

// Result is the outcome of a successful run.
type Result struct {
	Model   *layer.Model
	Program *gcode.Program

	// Report collects the problems found on the way.  Items with errors
	// are missing from the output.
	Report diag.Report
}

// Generate converts items into a G-code program.
// See [layer.Assemble] for the supported item types.
//
// Problems with individual items are collected in the report.  An error is
// returned only for invalid settings.
func Generate(cfg config.Map, items []any, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	svc := opts.Service
	if svc == nil {
		s, err := planar.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		svc = s
	}

	model, rep, err := layer.Assemble(svc, cfg, items, opts.Mode)
	if err != nil {
		return nil, err
	}
	prog, crep, err := gcode.Compile(model)
	if err != nil {
		return nil, err
	}
	rep.Merge(crep)

	logging.Logger().Info("toolpath generated",
		"items", len(items),
		"layers", len(model.Layers),
		"lines", len(prog.Lines),
		"warnings", len(rep.Warnings),
		"errors", len(rep.Errors))
	return &Result{Model: model, Program: prog, Report: rep}, nil
}

// SetLogger installs the logger used by all toolpath packages.
// By default, nothing is logged.  A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}
