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

package config

// defaults is the built-in printer profile, for a 0.5mm nozzle and
// 2.95mm filament.
var defaults = []string{
	"absolute_extrudersteps=1",
	`end_gcode=M104 S0 ; turn off temperature\nG28 X0 ; home X axis\nM84 ; disable motors\nM107 ; Fan off`,
	"extrusion_width=0.6",
	"filament_diameter=2.95",
	"fill_angle=45",
	"fill_density=0.3",
	"layer_height=0.3",
	"min_print_speed=5",
	"nozzle_diameter=0.5",
	"offset_join=miter",
	"perimeter_acceleration=25",
	"perimeter_mode=shell",
	"perimeter_spacing=0.66",
	"perimeter_speed=40",
	"perimeters=3",
	"retract_length=1",
	"retract_lift=0.3",
	"retract_restart_extra=1",
	"retract_speed=6",
	"solid_layers=2",
	`start_gcode=M106 S150 ; Fan on`,
	"temperature=200",
	"travel_speed=120",
}

// Defaults returns the built-in printer profile as "key=value" lines.
func Defaults() []string {
	res := make([]string, len(defaults))
	copy(res, defaults)
	return res
}
