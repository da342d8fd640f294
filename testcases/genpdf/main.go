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

// Command genpdf plots the toolpaths of all test cases, for visual
// inspection.  Each case gives one PDF page, seen from above, with lower
// layers drawn in lighter grey.
// Run from the module root directory.
package main

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/toolpath"
	"seehuhn.de/go/toolpath/layer"
	"seehuhn.de/go/toolpath/movement"
	"seehuhn.de/go/toolpath/testcases"
)

const (
	plotDir = "testdata/plot"

	// mm is the size of one model unit in PDF points.
	mm = 72 / 25.4

	margin = 5.0 // model units
)

func main() {
	if err := os.MkdirAll(plotDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := plot(tc, filepath.Join(plotDir, name+".pdf")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func plot(tc testcases.TestCase, pdfPath string) error {
	cfg, err := tc.Config()
	if err != nil {
		return err
	}
	width, err := cfg.Float("extrusion_width")
	if err != nil {
		return err
	}
	res, err := toolpath.Generate(cfg, tc.Items, &toolpath.Options{Mode: tc.Mode})
	if err != nil {
		return err
	}

	box := bounds(res.Model)
	if box.LLx > box.URx {
		box = rect.Rect{URx: 10, URy: 10}
	}
	paper := &pdf.Rectangle{
		URx: (box.URx - box.LLx + 2*margin) * mm,
		URy: (box.URy - box.LLy + 2*margin) * mm,
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, paper.URx, paper.URy)
	page.Fill()

	// model units -> points, with the bounding box inside the margin
	page.Transform(matrix.Matrix{mm, 0, 0, mm, (margin - box.LLx) * mm, (margin - box.LLy) * mm})

	page.SetLineWidth(width)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	n := len(res.Model.Layers)
	for i, l := range res.Model.Layers {
		grey := 0.8 * (1 - float64(i+1)/float64(n))
		page.SetStrokeColor(color.DeviceGray(grey))
		for _, m := range l.Movements {
			r, ok := m.(*movement.Run)
			if !ok || len(r.Segments) == 0 {
				continue
			}
			start := r.Start()
			page.MoveTo(start.X, start.Y)
			for _, s := range r.Segments {
				page.LineTo(s.To.X, s.To.Y)
			}
			page.Stroke()
		}
	}

	return page.Close()
}

// bounds returns the XY bounding box of all runs and blobs in the model.
func bounds(model *layer.Model) rect.Rect {
	box := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	extend := func(x, y float64) {
		box.LLx = min(box.LLx, x)
		box.LLy = min(box.LLy, y)
		box.URx = max(box.URx, x)
		box.URy = max(box.URy, y)
	}
	for _, l := range model.Layers {
		for _, m := range l.Movements {
			switch m := m.(type) {
			case *movement.Run:
				for _, s := range m.Segments {
					extend(s.From.X, s.From.Y)
					extend(s.To.X, s.To.Y)
				}
			case *movement.Blob:
				extend(m.Point.X, m.Point.Y)
			}
		}
	}
	return box
}
