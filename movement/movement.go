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

// Package movement implements extruding moves and the transitions between
// them.
//
// A [Movement] is one of three kinds: a [Run] is a continuous extruding path
// made of line segments, a [Blob] deposits material at a single point, and
// a [Raw] movement holds printer commands which are passed through
// unchanged.
//
// Runs built from plain geometry lack extrusion and speed values.
// [Complete] fills these in from the printer settings.
package movement

import (
	"errors"
	"time"

	"seehuhn.de/go/toolpath/config"
	"seehuhn.de/go/toolpath/geometry"
)

// ErrEmpty is returned when a run would contain no segments.
var ErrEmpty = errors.New("movement: no segments")

// Optional is a number which may be absent.
// The zero value is absent.
type Optional struct {
	value float64
	set   bool
}

// Some returns a present value.
func Some(v float64) Optional {
	return Optional{value: v, set: true}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (float64, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present.
func (o Optional) IsSet() bool {
	return o.set
}

// Segment is a straight extruding move.
type Segment struct {
	geometry.Line

	// Flow is the amount of filament fed per unit of travel.
	Flow Optional

	// Speed is the feed rate, in units per minute.
	Speed Optional
}

// IsComplete reports whether flow and speed are both known.
func (s Segment) IsComplete() bool {
	return s.Flow.set && s.Speed.set
}

// Extrusion returns the amount of filament fed for the segment.
func (s Segment) Extrusion() float64 {
	return s.Flow.value * s.Length()
}

// Movement is one of *[Run], *[Blob] or *[Raw].
type Movement interface {
	// ZRange returns the height at the start and at the end of the
	// movement.
	ZRange() (start, end float64)

	// IsComplete reports whether the movement can be compiled.
	IsComplete() bool

	isMovement()
}

// Run is a continuous extruding path.
type Run struct {
	Segments []Segment

	// Delimiter describes the transitions before and after the run.
	// Nil means that a delimiter is synthesised by [Complete].
	Delimiter *Delimiter

	// Config holds the settings used to complete the run.
	Config config.Map
}

// NewRun returns a run along the given lines, with flow and speed unset.
func NewRun(lines []geometry.Line) (*Run, error) {
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	segs := make([]Segment, len(lines))
	for i, l := range lines {
		segs[i] = Segment{Line: l}
	}
	return &Run{Segments: segs}, nil
}

// FromPolyline returns a run along a polyline, with flow and speed unset.
func FromPolyline(p geometry.Polyline) (*Run, error) {
	return NewRun(p.Lines())
}

func (*Run) isMovement() {}

// ZRange implements the [Movement] interface.
func (r *Run) ZRange() (start, end float64) {
	if len(r.Segments) == 0 {
		return 0, 0
	}
	return r.Segments[0].From.Z, r.Segments[len(r.Segments)-1].To.Z
}

// IsComplete implements the [Movement] interface.
// A run is complete if every segment has both flow and speed.
func (r *Run) IsComplete() bool {
	for _, s := range r.Segments {
		if !s.IsComplete() {
			return false
		}
	}
	return true
}

// Lines returns the geometry of the run.
func (r *Run) Lines() []geometry.Line {
	res := make([]geometry.Line, len(r.Segments))
	for i, s := range r.Segments {
		res[i] = s.Line
	}
	return res
}

// Start returns the first point of the run.
func (r *Run) Start() geometry.Vec3 {
	return r.Segments[0].From
}

// End returns the last point of the run.
func (r *Run) End() geometry.Vec3 {
	return r.Segments[len(r.Segments)-1].To
}

// Length returns the total length of the run.
func (r *Run) Length() float64 {
	var l float64
	for _, s := range r.Segments {
		l += s.Length()
	}
	return l
}

// Time returns the printing time of the run.
// The second return value is false if the run is not complete.
func (r *Run) Time() (time.Duration, bool) {
	if !r.IsComplete() {
		return 0, false
	}
	var minutes float64
	for _, s := range r.Segments {
		if s.Speed.value > 0 {
			minutes += s.Length() / s.Speed.value
		}
	}
	return time.Duration(minutes * float64(time.Minute)), true
}

// Blob deposits material at a single point, without moving.
type Blob struct {
	Point     geometry.Vec3
	Delimiter *Delimiter
}

// NewBlob returns a blob at p.  The delimiter is filled in by [Complete].
func NewBlob(p geometry.Vec3) *Blob {
	return &Blob{Point: p}
}

func (*Blob) isMovement() {}

// ZRange implements the [Movement] interface.
func (b *Blob) ZRange() (start, end float64) {
	return b.Point.Z, b.Point.Z
}

// IsComplete implements the [Movement] interface.
func (b *Blob) IsComplete() bool {
	return true
}

// Raw holds printer commands which are emitted verbatim.
type Raw struct {
	Lines []string

	// Z is the height used to sort the commands into a layer.
	Z float64
}

// NewRaw returns a raw movement at height z.
func NewRaw(z float64, lines ...string) *Raw {
	return &Raw{Lines: lines, Z: z}
}

func (*Raw) isMovement() {}

// ZRange implements the [Movement] interface.
func (r *Raw) ZRange() (start, end float64) {
	return r.Z, r.Z
}

// IsComplete implements the [Movement] interface.
func (r *Raw) IsComplete() bool {
	return true
}
