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

package planar

import (
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/toolpath/config"
)

// FromConfig returns a Service with the corner style given by the
// "offset_join" setting: "miter", "round" or "bevel".  If the setting is
// missing, corners are mitered.
func FromConfig(cfg config.Map) (*Service, error) {
	s := New()
	join, ok := cfg.Lookup("offset_join")
	if !ok {
		return s, nil
	}
	switch join {
	case "miter":
		s.Join = graphics.LineJoinMiter
	case "round":
		s.Join = graphics.LineJoinRound
	case "bevel":
		s.Join = graphics.LineJoinBevel
	default:
		return nil, &config.KeyError{Key: "offset_join", Value: join, Err: config.ErrMalformed}
	}
	return s, nil
}
