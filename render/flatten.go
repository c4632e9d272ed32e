// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// flattenTolerance is the maximum distance in device pixels between a curve
// and its polyline approximation.
const flattenTolerance = 0.1

// maxCurveSegments bounds the subdivision of a single curve.
const maxCurveSegments = 256

// polyline is one flattened subpath.
type polyline struct {
	pts    []vec.Vec2
	closed bool
}

// flatten converts p into polylines. Curves are subdivided so that the
// approximation error stays below tol.
func flatten(p path.Path, tol float64) []polyline {
	var (
		out     []polyline
		cur     []vec.Vec2
		current vec.Vec2
		start   vec.Vec2
		open    bool
	)
	finish := func(closed bool) {
		if open && len(cur) > 0 {
			out = append(out, polyline{pts: cur, closed: closed})
		}
		cur = nil
		open = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = pts[0]
			start = current
			cur = []vec.Vec2{current}
			open = true
		case path.CmdLineTo:
			if !open {
				continue
			}
			cur = append(cur, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			if !open {
				continue
			}
			p0, p1, p2 := current, pts[0], pts[1]
			n := curveSegments(p1.Sub(p0).Sub(p2.Sub(p1)).Length(), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				cur = append(cur, p0.Mul(mt*mt).Add(p1.Mul(2*mt*t)).Add(p2.Mul(t*t)))
			}
			current = p2
		case path.CmdCubeTo:
			if !open {
				continue
			}
			p0, p1, p2, p3 := current, pts[0], pts[1], pts[2]
			dd := math.Max(
				p0.Sub(p1.Mul(2)).Add(p2).Length(),
				p1.Sub(p2.Mul(2)).Add(p3).Length())
			n := curveSegments(1.5*dd, tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				mt := 1 - t
				cur = append(cur, p0.Mul(mt*mt*mt).
					Add(p1.Mul(3*mt*mt*t)).
					Add(p2.Mul(3*mt*t*t)).
					Add(p3.Mul(t*t*t)))
			}
			current = p3
		case path.CmdClose:
			if !open {
				continue
			}
			finish(true)
			current = start
		}
	}
	finish(false)
	return out
}

// curveSegments returns the number of line segments for a curve whose
// second difference has length dd.
func curveSegments(dd, tol float64) int {
	n := int(math.Ceil(math.Sqrt(dd / (4 * tol))))
	return min(max(n, 1), maxCurveSegments)
}

// apply maps v through m.
func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// scaleOf returns the geometric mean scale factor of m.
func scaleOf(m matrix.Matrix) float64 {
	s := math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
	if s == 0 || math.IsNaN(s) {
		return 1
	}
	return s
}

// signedArea returns twice the signed area of a closed polygon.
// Counter-clockwise polygons have positive area in a y-up frame.
func signedArea(pts []vec.Vec2) float64 {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}
