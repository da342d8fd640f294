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

	"seehuhn.de/go/toolpath/config"
)

// Complete returns a version of m which can be compiled.
//
// Missing flow and speed values of a run are derived from the printer
// settings, values which are already present are kept.  Runs and blobs
// without a delimiter receive the lift delimiter.  Movements which need no
// change are returned unchanged, so that completing twice gives the same
// result as completing once.
//
// An error is returned only if the settings lack a required parameter.
func Complete(m Movement, cfg config.Map) (Movement, error) {
	switch m := m.(type) {
	case *Run:
		return completeRun(m, cfg)
	case *Blob:
		if m.Delimiter != nil {
			return m, nil
		}
		phys, err := LoadPhysics(cfg)
		if err != nil {
			return nil, err
		}
		d := phys.Lift()
		return &Blob{Point: m.Point, Delimiter: &d}, nil
	case *Raw:
		return m, nil
	default:
		return nil, fmt.Errorf("movement: unsupported type %T", m)
	}
}

func completeRun(r *Run, cfg config.Map) (*Run, error) {
	if r.IsComplete() && r.Delimiter != nil {
		return r, nil
	}
	if len(r.Segments) == 0 {
		return nil, ErrEmpty
	}
	phys, err := LoadPhysics(cfg)
	if err != nil {
		return nil, err
	}

	ref := phys.Reference(r.Lines())
	res := &Run{
		Segments:  make([]Segment, len(r.Segments)),
		Delimiter: r.Delimiter,
		Config:    r.Config,
	}
	if res.Config.Len() == 0 {
		res.Config = cfg
	}
	for i, s := range r.Segments {
		if !s.Flow.IsSet() {
			s.Flow = ref.Segments[i].Flow
		}
		if !s.Speed.IsSet() {
			s.Speed = ref.Segments[i].Speed
		}
		res.Segments[i] = s
	}
	if res.Delimiter == nil {
		d := phys.Lift()
		res.Delimiter = &d
	}
	return res, nil
}
