// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func TestOutliner_Orientation(t *testing.T) {
	o := newOutliner(Stroke{Width: 4, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound}, 1)
	o.polyline(polyline{pts: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}})
	if len(o.polys) == 0 {
		t.Fatal("polyline() produced no polygons")
	}
	for i, p := range o.polys {
		if a := signedArea(p); a >= 0 {
			t.Errorf("polygon %d area = %v, want clockwise", i, a)
		}
	}
}

func TestOutliner_PolygonCount(t *testing.T) {
	open := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	tests := []struct {
		name   string
		stroke Stroke
		closed bool
		want   int
	}{
		{"butt bevel", Stroke{Width: 2, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel}, false, 3},
		{"round caps", Stroke{Width: 2, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound}, false, 5},
		{"closed", Stroke{Width: 2, Join: graphics.LineJoinMiter}, true, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOutliner(tt.stroke, 1)
			o.polyline(polyline{pts: open, closed: tt.closed})
			if len(o.polys) != tt.want {
				t.Errorf("polygons = %d, want %d", len(o.polys), tt.want)
			}
		})
	}
}

func TestOutliner_MiterLimit(t *testing.T) {
	// A very sharp corner exceeds the default limit and falls back to bevel.
	sharp := []vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 1}}
	o := newOutliner(Stroke{Width: 2, Join: graphics.LineJoinMiter}, 1)
	o.polyline(polyline{pts: sharp})
	join := o.polys[len(o.polys)-1]
	if len(join) != 3 {
		t.Errorf("join polygon has %d points, want bevel triangle", len(join))
	}

	o = newOutliner(Stroke{Width: 2, Join: graphics.LineJoinMiter, MiterLimit: 1000}, 1)
	o.polyline(polyline{pts: sharp})
	if join := o.polys[len(o.polys)-1]; len(join) != 4 {
		t.Errorf("join polygon has %d points, want miter", len(join))
	}
}

func TestOutliner_Degenerate(t *testing.T) {
	dot := polyline{pts: []vec.Vec2{{X: 3, Y: 3}, {X: 3, Y: 3}}}

	o := newOutliner(Stroke{Width: 2, Cap: graphics.LineCapRound}, 1)
	o.polyline(dot)
	if len(o.polys) != 1 {
		t.Errorf("round dot polygons = %d, want 1", len(o.polys))
	}

	o = newOutliner(Stroke{Width: 2, Cap: graphics.LineCapButt}, 1)
	o.polyline(dot)
	if len(o.polys) != 0 {
		t.Errorf("butt dot polygons = %d, want 0", len(o.polys))
	}

	o = newOutliner(Stroke{Width: 0}, 1)
	o.polyline(polyline{pts: []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}}})
	if len(o.polys) != 0 {
		t.Errorf("zero width polygons = %d, want 0", len(o.polys))
	}
}
