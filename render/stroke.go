// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// DefaultMiterLimit is the miter limit used when Stroke.MiterLimit is zero.
const DefaultMiterLimit = 10

// Stroke describes how a path is outlined.
type Stroke struct {
	// Width is the line width in canvas units.
	Width float64

	// Cap is the shape at the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the shape at corners.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the ratio of miter length to line width.
	MiterLimit float64
}

// roundSegments is the number of polygon edges approximating a full circle
// of radius r in canvas units at device scale s.
func roundSegments(r, s float64) int {
	n := int(math.Ceil(2 * math.Pi * r * s / 2))
	return min(max(n, 8), 256)
}

// outliner builds stroke outline polygons. Every polygon is emitted with
// clockwise orientation so overlapping pieces accumulate instead of
// cancelling.
type outliner struct {
	st    Stroke
	hw    float64
	scale float64
	polys [][]vec.Vec2
}

func newOutliner(st Stroke, scale float64) *outliner {
	if st.MiterLimit <= 0 {
		st.MiterLimit = DefaultMiterLimit
	}
	return &outliner{st: st, hw: st.Width / 2, scale: scale}
}

// add appends a polygon, normalizing its orientation.
func (o *outliner) add(pts ...vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	a := signedArea(pts)
	if a == 0 {
		return
	}
	if a > 0 {
		rev := make([]vec.Vec2, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	o.polys = append(o.polys, pts)
}

func (o *outliner) disc(c vec.Vec2) {
	n := roundSegments(o.hw, o.scale)
	pts := make([]vec.Vec2, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: c.X + o.hw*math.Cos(a), Y: c.Y + o.hw*math.Sin(a)}
	}
	o.add(pts...)
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []vec.Vec2, closed bool) []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	return vec.Vec2{X: v.X / l, Y: v.Y / l}
}

func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// polyline outlines one flattened subpath.
func (o *outliner) polyline(pl polyline) {
	if o.hw <= 0 {
		return
	}
	pts := dedupe(pl.pts, pl.closed)
	if len(pts) == 1 {
		if o.st.Cap == graphics.LineCapRound {
			o.disc(pts[0])
		}
		return
	}

	n := len(pts) - 1
	if pl.closed {
		n = len(pts)
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		t := unit(b.Sub(a))
		if !pl.closed && o.st.Cap == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(t.Mul(o.hw))
			}
			if i == n-1 {
				b = b.Add(t.Mul(o.hw))
			}
		}
		nv := normal(t).Mul(o.hw)
		o.add(a.Add(nv), b.Add(nv), b.Sub(nv), a.Sub(nv))
	}

	// Joins at interior vertices, and at every vertex of a closed subpath.
	first, last := 1, len(pts)-1
	if pl.closed {
		first, last = 0, len(pts)
	}
	for i := first; i < last; i++ {
		prev := pts[(i-1+len(pts))%len(pts)]
		v := pts[i]
		next := pts[(i+1)%len(pts)]
		o.join(prev, v, next)
	}

	if !pl.closed && o.st.Cap == graphics.LineCapRound {
		o.disc(pts[0])
		o.disc(pts[len(pts)-1])
	}
}

// join fills the gap on the outer side of the corner at v.
func (o *outliner) join(prev, v, next vec.Vec2) {
	t1 := unit(v.Sub(prev))
	t2 := unit(next.Sub(v))
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < 1e-12 && t1.X*t2.X+t1.Y*t2.Y > 0 {
		return
	}
	if o.st.Join == graphics.LineJoinRound {
		o.disc(v)
		return
	}

	// The outer side is right of a left turn and left of a right turn.
	side := 1.0
	if cross > 0 {
		side = -1
	}
	n1 := normal(t1).Mul(side)
	n2 := normal(t2).Mul(side)
	p1 := v.Add(n1.Mul(o.hw))
	p2 := v.Add(n2.Mul(o.hw))

	if o.st.Join == graphics.LineJoinMiter {
		sum := n1.Add(n2)
		l := sum.Length()
		if l > 1e-12 && 2/l <= o.st.MiterLimit {
			m := v.Add(sum.Mul(2 * o.hw / (l * l)))
			o.add(v, p1, m, p2)
			return
		}
	}
	o.add(v, p1, p2)
}
