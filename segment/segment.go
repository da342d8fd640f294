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

// Package segment approximates curves by polylines.
package segment

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/toolpath/geometry"
)

// defaultFlatness is the chord deviation used for Bézier curves when no
// absolute tolerance is set.
const defaultFlatness = 0.01

// maxDepth limits the recursion of the adaptive subdivision.
const maxDepth = 16

// Options control the approximation of curves by polylines.
// Zero values disable the corresponding criterion.
type Options struct {
	MaxCount  int     // maximum number of segments
	MaxAngle  float64 // maximum turning angle between segments, in radians
	MaxChord  float64 // maximum chord deviation, relative to segment length
	MaxAspect float64 // maximum ratio between longest and shortest segment
	Tolerance float64 // maximum chord deviation, absolute
	MinEdge   float64 // minimum segment length
	MaxEdge   float64 // maximum segment length
	KeepStart bool    // keep the start point even if the first segment is short
}

// DefaultOptions returns the tolerances used by the toolpath generator.
func DefaultOptions() Options {
	return Options{
		MaxAngle:  0.05,
		MaxChord:  0.1,
		MinEdge:   0.1,
		KeepStart: true,
	}
}

// Result is the approximation of a curve.
type Result struct {
	Segments []geometry.Line
	Polyline geometry.Polyline
}

func newResult(p geometry.Polyline) Result {
	return Result{Segments: p.Lines(), Polyline: p}
}

// Polyline decomposes a polyline into its segments.
// No approximation takes place.
func Polyline(p geometry.Polyline) Result {
	return newResult(p)
}

// Curve approximates c by polylines.
//
// Polylines and lines are decomposed directly.  Path curves give one result
// per subpath; all other curves give a single result.
func Curve(c geometry.Curve, opt Options) ([]Result, error) {
	switch c := c.(type) {
	case geometry.Polyline:
		return []Result{Polyline(c)}, nil
	case geometry.Line:
		return []Result{Polyline(geometry.Polyline{Points: []geometry.Vec3{c.From, c.To}})}, nil
	case geometry.PathCurve:
		return pathCurve(c, opt), nil
	case geometry.Arc:
		pts := arc(c, opt)
		return []Result{newResult(geometry.Polyline{Points: pts})}, nil
	case geometry.Bezier:
		pts := bezier(c, opt)
		return []Result{newResult(geometry.Polyline{Points: pts})}, nil
	case geometry.Parametric:
		pts := adaptive(c.PointAt, opt)
		return []Result{newResult(geometry.Polyline{Points: pts})}, nil
	}
	return nil, fmt.Errorf("segment: unsupported curve type %T", c)
}

func (opt Options) flatness() float64 {
	if opt.Tolerance > 0 {
		return opt.Tolerance
	}
	return defaultFlatness
}

// arc samples an arc uniformly, with enough points to satisfy the angle
// and deviation limits.
func arc(a geometry.Arc, opt Options) []geometry.Vec3 {
	absSweep := math.Abs(a.Sweep)
	n := 1

	// For a chord subtending angle θ on a circle of radius r, the maximum
	// deviation (sagitta) is r*(1 - cos(θ/2)).
	tol := opt.flatness()
	if a.Radius > tol {
		angleStep := 2 * math.Acos(1-tol/a.Radius)
		if angleStep > 0 && !math.IsNaN(angleStep) {
			n = max(n, int(math.Ceil(absSweep/angleStep)))
		}
	}
	if opt.MaxAngle > 0 {
		n = max(n, int(math.Ceil(absSweep/opt.MaxAngle)))
	}
	if opt.MaxEdge > 0 {
		n = max(n, int(math.Ceil(absSweep*a.Radius/opt.MaxEdge)))
	}
	return finish(uniform(a.PointAt, n), opt)
}

func bezier(c geometry.Bezier, opt Options) []geometry.Vec3 {
	return finish(bezierPoints(c, opt), opt)
}

// bezierPoints samples a cubic Bézier curve uniformly, using Wang's formula
// to bound the deviation from the curve.
func bezierPoints(c geometry.Bezier, opt Options) []geometry.Vec3 {
	d1 := c.P0.Sub(c.P1.Mul(2)).Add(c.P2) // P0 - 2*P1 + P2
	d2 := c.P1.Sub(c.P2.Mul(2)).Add(c.P3) // P1 - 2*P2 + P3
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		// n = ceil(sqrt(3 * m / (4 * ε)))
		nFloat := math.Sqrt(3 * m / (4 * opt.flatness()))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}
	if opt.MaxAngle > 0 || opt.MaxEdge > 0 {
		return refine(c.PointAt, n, opt)
	}
	return uniform(c.PointAt, n)
}

// quadratic returns the cubic form of the quadratic Bézier curve with
// control points p0, p1, p2.
func quadratic(p0, p1, p2 geometry.Vec3) geometry.Bezier {
	return geometry.Bezier{
		P0: p0,
		P1: geometry.Lerp(p0, p1, 2.0/3),
		P2: geometry.Lerp(p2, p1, 2.0/3),
		P3: p2,
	}
}

func uniform(f func(float64) geometry.Vec3, n int) []geometry.Vec3 {
	pts := make([]geometry.Vec3, n+1)
	for i := range n + 1 {
		pts[i] = f(float64(i) / float64(n))
	}
	return pts
}

// refine subdivides each of n uniform parameter intervals adaptively.
func refine(f func(float64) geometry.Vec3, n int, opt Options) []geometry.Vec3 {
	pts := []geometry.Vec3{f(0)}
	for i := range n {
		t0, t1 := float64(i)/float64(n), float64(i+1)/float64(n)
		pts = subdivide(pts, f, t0, t1, f(t0), f(t1), opt, 0)
	}
	return pts
}

// adaptive approximates a parametric curve by recursive subdivision.
func adaptive(f func(float64) geometry.Vec3, opt Options) []geometry.Vec3 {
	// start with a few intervals, so that closed curves are not mistaken
	// for points
	return finish(refine(f, 4, opt), opt)
}

// subdivide appends points for the parameter range (t0, t1] to pts.
func subdivide(pts []geometry.Vec3, f func(float64) geometry.Vec3, t0, t1 float64, p0, p1 geometry.Vec3, opt Options, depth int) []geometry.Vec3 {
	tm := (t0 + t1) / 2
	pm := f(tm)
	if depth < maxDepth && needsSplit(p0, pm, p1, opt) {
		pts = subdivide(pts, f, t0, tm, p0, pm, opt, depth+1)
		return subdivide(pts, f, tm, t1, pm, p1, opt, depth+1)
	}
	return append(pts, p1)
}

func needsSplit(p0, pm, p1 geometry.Vec3, opt Options) bool {
	chord := p1.Sub(p0)
	chordLen := chord.Length()
	if opt.MinEdge > 0 && chordLen < 2*opt.MinEdge {
		return false
	}
	if opt.MaxEdge > 0 && chordLen > opt.MaxEdge {
		return true
	}

	// distance of the midpoint from the chord
	var dev float64
	if chordLen > 0 {
		dev = chord.Cross(pm.Sub(p0)).Length() / chordLen
	} else {
		dev = pm.Sub(p0).Length()
	}
	if dev > opt.flatness() {
		return true
	}
	if opt.MaxChord > 0 && dev > opt.MaxChord*chordLen {
		return true
	}
	if opt.MaxAngle > 0 {
		a, b := pm.Sub(p0), p1.Sub(pm)
		la, lb := a.Length(), b.Length()
		if la > 0 && lb > 0 {
			cos := max(-1, min(1, a.Dot(b)/(la*lb)))
			if math.Acos(cos) > opt.MaxAngle {
				return true
			}
		}
	}
	return false
}

// finish applies the edge length and count limits to a sampled curve.
func finish(pts []geometry.Vec3, opt Options) []geometry.Vec3 {
	if opt.MinEdge > 0 && len(pts) > 2 {
		res := []geometry.Vec3{pts[0]}
		for _, p := range pts[1 : len(pts)-1] {
			if p.Sub(res[len(res)-1]).Length() >= opt.MinEdge {
				res = append(res, p)
			}
		}
		last := pts[len(pts)-1]
		if len(res) > 1 && last.Sub(res[len(res)-1]).Length() < opt.MinEdge {
			// merge the short final edge into the previous one
			res = res[:len(res)-1]
		}
		if !opt.KeepStart && len(res) > 1 && res[1].Sub(res[0]).Length() < opt.MinEdge {
			res = res[1:]
		}
		pts = append(res, last)
	}

	if opt.MaxAspect > 0 && len(pts) > 2 {
		pts = splitLong(pts, opt.MaxAspect)
	}

	if opt.MaxCount > 0 && len(pts)-1 > opt.MaxCount {
		pts = thin(pts, opt.MaxCount)
	}
	return pts
}

// splitLong subdivides edges which are more than ratio times longer than
// the shortest edge.
func splitLong(pts []geometry.Vec3, ratio float64) []geometry.Vec3 {
	shortest := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		if l := pts[i].Sub(pts[i-1]).Length(); l > 0 {
			shortest = min(shortest, l)
		}
	}
	limit := shortest * ratio
	res := []geometry.Vec3{pts[0]}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		n := int(math.Ceil(b.Sub(a).Length() / limit))
		for k := 1; k < n; k++ {
			res = append(res, geometry.Lerp(a, b, float64(k)/float64(n)))
		}
		res = append(res, b)
	}
	return res
}

// thin keeps n+1 evenly spread points, including both end points.
func thin(pts []geometry.Vec3, n int) []geometry.Vec3 {
	res := make([]geometry.Vec3, n+1)
	last := len(pts) - 1
	for i := range n + 1 {
		res[i] = pts[int(math.Round(float64(i)*float64(last)/float64(n)))]
	}
	return res
}

// pathCurve flattens each subpath of a planar path and lifts it into model
// space.
func pathCurve(c geometry.PathCurve, opt Options) []Result {
	if c.Path == nil {
		return nil
	}

	var res []Result
	var cur []geometry.Vec3
	emit := func(closed bool) {
		if len(cur) >= 2 {
			pts := cur
			if closed && len(pts) > 2 && pts[0] == pts[len(pts)-1] {
				pts = pts[:len(pts)-1]
			}
			if !closed {
				pts = finish(pts, opt)
			}
			res = append(res, newResult(geometry.Polyline{Points: pts, Closed: closed}))
		}
		cur = nil
	}

	var start, currentPt geometry.Vec3
	add := func(pts []geometry.Vec3) {
		if len(cur) == 0 {
			cur = append(cur, currentPt)
		}
		cur = append(cur, pts[1:]...)
		currentPt = pts[len(pts)-1]
	}
	for cmd, pts := range c.Path {
		switch cmd {
		case path.CmdMoveTo:
			emit(false)
			currentPt = c.Plane.At(pts[0])
			start = currentPt
		case path.CmdLineTo:
			add([]geometry.Vec3{currentPt, c.Plane.At(pts[0])})
		case path.CmdQuadTo:
			q := quadratic(currentPt, c.Plane.At(pts[0]), c.Plane.At(pts[1]))
			add(bezierPoints(q, opt))
		case path.CmdCubeTo:
			b := geometry.Bezier{
				P0: currentPt,
				P1: c.Plane.At(pts[0]),
				P2: c.Plane.At(pts[1]),
				P3: c.Plane.At(pts[2]),
			}
			add(bezierPoints(b, opt))
		case path.CmdClose:
			if len(cur) > 0 && currentPt != start {
				add([]geometry.Vec3{currentPt, start})
			}
			emit(true)
			currentPt = start
		}
	}
	emit(false)
	return res
}
