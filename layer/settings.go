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

package layer

import (
	"fmt"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/slicer"
)

// Settings controls how solids and regions are turned into movements.
type Settings struct {
	Slicer slicer.Params

	// Density is the hatch density of sparse layers, between 0 and 1.
	Density float64

	// Angle is the hatch direction of even layers, in degrees.  Odd layers
	// are turned by a further 90 degrees.
	Angle float64

	// SolidLayers is the number of fully filled layers at the bottom and at
	// the top.
	SolidLayers int

	// Spiral selects spiral perimeters instead of one closed path per ring.
	Spiral bool

	// Spacing is the distance between the turns of a spiral perimeter.
	Spacing float64

	// Decimals is the precision used to group movements into layers.
	Decimals int
}

// LoadSettings reads the layer settings from cfg.
func LoadSettings(cfg config.Map) (Settings, error) {
	var s Settings
	var err error
	if s.Slicer, err = slicer.LoadParams(cfg); err != nil {
		return Settings{}, err
	}
	if s.Density, err = cfg.Float("fill_density"); err != nil {
		return Settings{}, err
	}
	if s.Density < 0 || s.Density > 1 {
		return Settings{}, &config.KeyError{Key: "fill_density", Value: fmt.Sprint(s.Density), Err: config.ErrMalformed}
	}
	if s.Angle, err = cfg.Float("fill_angle"); err != nil {
		return Settings{}, err
	}
	if s.SolidLayers, err = cfg.Int("solid_layers"); err != nil {
		return Settings{}, err
	}
	if s.Spacing, err = cfg.FloatOr("perimeter_spacing", 0.66); err != nil {
		return Settings{}, err
	}
	if s.Decimals, err = cfg.Decimals("layer_height"); err != nil {
		return Settings{}, err
	}

	mode, ok := cfg.Lookup("perimeter_mode")
	switch {
	case !ok, mode == "shell":
		// default
	case mode == "spiral":
		s.Spiral = true
	default:
		return Settings{}, &config.KeyError{Key: "perimeter_mode", Value: mode, Err: config.ErrMalformed}
	}
	return s, nil
}

// density returns the hatch density for layer i out of n.
func (s Settings) density(i, n int) float64 {
	if i < s.SolidLayers || i >= n-s.SolidLayers {
		return 1
	}
	return s.Density
}

// angle returns the hatch direction for layer i.
func (s Settings) angle(i int) float64 {
	if i%2 == 1 {
		return s.Angle + 90
	}
	return s.Angle
}
