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

// Command export writes the reference G-code for all test cases, together
// with a JSON summary of the cases.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/toolpath"
	"seehuhn.de/go/toolpath/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			jtc, err := export(name, tc)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name      string   `json:"name"`
	Mode      string   `json:"mode"`
	Settings  []string `json:"settings,omitempty"`
	Items     []string `json:"items"`
	Layers    int      `json:"layers"`
	Movements int      `json:"movements"`
	Lines     int      `json:"lines"`
	Extrusion float64  `json:"extrusion"`
	Warnings  []string `json:"warnings,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func export(name string, tc testcases.TestCase) (jsonTestCase, error) {
	cfg, err := tc.Config()
	if err != nil {
		return jsonTestCase{}, err
	}
	res, err := toolpath.Generate(cfg, tc.Items, &toolpath.Options{Mode: tc.Mode})
	if err != nil {
		return jsonTestCase{}, err
	}

	f, err := os.Create(filepath.Join(refDir, name+".gcode"))
	if err != nil {
		return jsonTestCase{}, err
	}
	if _, err := res.Program.WriteTo(f); err != nil {
		f.Close()
		return jsonTestCase{}, err
	}
	if err := f.Close(); err != nil {
		return jsonTestCase{}, err
	}

	jtc := jsonTestCase{
		Name:      name,
		Mode:      tc.Mode.String(),
		Settings:  tc.Settings,
		Layers:    len(res.Model.Layers),
		Movements: res.Model.Len(),
		Lines:     len(res.Program.Lines),
		Extrusion: res.Program.Extrusion,
		Warnings:  res.Report.Warnings,
		Errors:    res.Report.Errors,
	}
	for _, item := range tc.Items {
		jtc.Items = append(jtc.Items, fmt.Sprintf("%T", item))
	}
	return jtc, nil
}
