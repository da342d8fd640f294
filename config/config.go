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

// Package config implements the printer settings map.
//
// Settings are given as lines of the form "key=value".  Percentages like
// "30%" are normalised to ratios ("0.3") when the map is built.  Multi-line
// values, used for the custom start and end G-code, encode line breaks as the
// two characters `\n`.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/toolpath/internal/logging"
)

var (
	// ErrMissing indicates that a required setting is not present.
	ErrMissing = errors.New("missing setting")

	// ErrMalformed indicates that a setting cannot be interpreted.
	ErrMalformed = errors.New("malformed setting")
)

// KeyError describes a problem with a single setting.
type KeyError struct {
	Key   string
	Value string
	Err   error
}

func (e *KeyError) Error() string {
	if errors.Is(e.Err, ErrMissing) {
		return fmt.Sprintf("config: %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("config: %q=%q: %v", e.Key, e.Value, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// Map is an immutable set of printer settings.
// The zero value is an empty map.
type Map struct {
	values map[string]string
}

// Parse builds a settings map from "key=value" lines.
//
// Lines without "=" are ignored.  White space around keys and values is
// removed.  If a key occurs more than once, the first occurrence is used.
func Parse(lines []string) (Map, error) {
	values := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		if _, seen := values[key]; seen {
			logging.Logger().Debug("duplicate setting ignored", "key", key)
			continue
		}

		if strings.Contains(value, "%") {
			num := strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
			x, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return Map{}, &KeyError{Key: key, Value: value, Err: ErrMalformed}
			}
			value = strconv.FormatFloat(x/100, 'f', -1, 64)
		}
		values[key] = value
	}
	return Map{values: values}, nil
}

// Read parses settings from r, one setting per line.
func Read(r io.Reader) (Map, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Map{}, fmt.Errorf("config: %w", err)
	}
	return Parse(lines)
}

// WithDefaults parses lines and fills in every setting not given there from
// [Defaults].
func WithDefaults(lines []string) (Map, error) {
	all := make([]string, 0, len(lines)+len(defaults))
	all = append(all, lines...)
	all = append(all, defaults...)
	return Parse(all)
}

// Len returns the number of settings in m.
func (m Map) Len() int {
	return len(m.values)
}

// Keys returns the setting names in sorted order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// Lookup returns the raw value stored for key.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// String returns the value of a required setting.
func (m Map) String(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", &KeyError{Key: key, Err: ErrMissing}
	}
	return v, nil
}

// Float returns the value of a required numeric setting.
func (m Map) Float(key string) (float64, error) {
	v, err := m.String(key)
	if err != nil {
		return 0, err
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &KeyError{Key: key, Value: v, Err: ErrMalformed}
	}
	return x, nil
}

// FloatOr returns the value of an optional numeric setting.
// If the setting is absent, def is returned.
func (m Map) FloatOr(key string, def float64) (float64, error) {
	if _, ok := m.values[key]; !ok {
		return def, nil
	}
	return m.Float(key)
}

// Int returns the value of a required integer setting.
// Values like "3.0" are accepted.
func (m Map) Int(key string) (int, error) {
	x, err := m.Float(key)
	if err != nil {
		return 0, err
	}
	if x != float64(int(x)) {
		return 0, &KeyError{Key: key, Value: m.values[key], Err: ErrMalformed}
	}
	return int(x), nil
}

// Bool returns the value of a required flag, stored as "0" or "1".
func (m Map) Bool(key string) (bool, error) {
	x, err := m.Float(key)
	if err != nil {
		return false, err
	}
	switch x {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &KeyError{Key: key, Value: m.values[key], Err: ErrMalformed}
}

// Text returns a multi-line setting, split at the escape sequence `\n`.
// Empty lines are dropped.  A missing setting gives no lines.
func (m Map) Text(key string) []string {
	var lines []string
	for line := range strings.SplitSeq(m.values[key], `\n`) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Decimals returns the number of digits after the decimal point in the
// stored value of a required setting.
func (m Map) Decimals(key string) (int, error) {
	v, err := m.String(key)
	if err != nil {
		return 0, err
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return 0, &KeyError{Key: key, Value: v, Err: ErrMalformed}
	}
	_, frac, ok := strings.Cut(v, ".")
	if !ok {
		return 0, nil
	}
	// exponent notation, e.g. 1.5e-1
	if i := strings.IndexAny(frac, "eE"); i >= 0 {
		frac = frac[:i]
	}
	return len(strings.TrimRight(frac, "0")), nil
}
