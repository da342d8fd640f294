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

package toolpath

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
	"seehuhn.de/go/toolpath/testcases"
)

func BenchmarkBrick(b *testing.B) {
	sizes := []float64{20, 50, 150}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%gx%g", size, size), func(b *testing.B) {
			cfg, err := config.WithDefaults([]string{"layer_height=0.5"})
			if err != nil {
				b.Fatal(err)
			}
			brick := geometry.NewBox(geometry.Vec3{}, geometry.Vec3{X: size, Y: size, Z: 5})
			items := []any{brick}

			for b.Loop() {
				if _, err := Generate(cfg, items, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGenerateAll(b *testing.B) {
	for b.Loop() {
		for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
			for _, tc := range testcases.All[category] {
				generate(b, tc)
			}
		}
	}
}
