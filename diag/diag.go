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

// Package diag collects the warnings and errors of a toolpath run.
//
// Warnings describe geometric degeneracies (failed offsets, features too
// small to print) where the affected part was skipped.  Errors describe
// objects which were omitted from the output altogether, for example because
// they lie outside the build volume.  Neither kind stops a run.
package diag

import (
	"fmt"

	"seehuhn.de/go/toolpath/internal/logging"
)

// Report is the list of problems found during a run.
// The zero value is an empty report, ready to use.
type Report struct {
	Warnings []string
	Errors   []string
}

// Warnf records a warning.
func (r *Report) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Logger().Debug("warning", "msg", msg)
	r.Warnings = append(r.Warnings, msg)
}

// Errorf records an error.
func (r *Report) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Logger().Debug("error", "msg", msg)
	r.Errors = append(r.Errors, msg)
}

// Merge appends the messages of other to r.
func (r *Report) Merge(other Report) {
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
}

// Empty reports whether r contains no messages.
func (r *Report) Empty() bool {
	return len(r.Warnings) == 0 && len(r.Errors) == 0
}
