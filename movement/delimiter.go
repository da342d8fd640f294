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

import "seehuhn.de/go/toolpath/geometry"

// Delimiter describes the non-printing transitions into and out of a
// movement.
//
// Before the movement, the nozzle travels to the start point minus
// StartVec, then to the start point, and StartPressure units of filament are
// fed at StartSpeed.  After the movement, EndPressure units are fed at
// EndSpeed (usually negative, to retract) and the nozzle travels to the end
// point plus EndVec.  A zero vector disables the transition on that side.
type Delimiter struct {
	StartVec      geometry.Vec3
	EndVec        geometry.Vec3
	StartSpeed    float64
	EndSpeed      float64
	StartPressure float64
	EndPressure   float64
	TravelSpeed   float64
}

// Lift returns a delimiter which lifts the nozzle by lift units before
// travelling, retracts retractLength units of filament after a movement and
// feeds restartExtra units before the next one.  Speeds are in units per
// minute.
func Lift(lift, retractLength, restartExtra, retractSpeed, travelSpeed float64) Delimiter {
	return Delimiter{
		StartVec:      geometry.Vec3{Z: -lift},
		EndVec:        geometry.Vec3{Z: lift},
		StartSpeed:    retractSpeed,
		EndSpeed:      retractSpeed,
		StartPressure: restartExtra,
		EndPressure:   -retractLength,
		TravelSpeed:   travelSpeed,
	}
}

// HasLeadIn reports whether the delimiter has a transition before the
// movement.
func (d Delimiter) HasLeadIn() bool {
	return !d.StartVec.IsZero()
}

// HasLeadOut reports whether the delimiter has a transition after the
// movement.
func (d Delimiter) HasLeadOut() bool {
	return !d.EndVec.IsZero()
}
