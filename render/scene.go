// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Scene is a retained list of drawing commands in canvas coordinates.
//
// A tiled pass draws the same content once per tile with a different
// projection. Building the content once as a Scene and replaying it with
// Draw avoids rebuilding paths for every tile.
//
// Example:
//
//	scene := render.NewScene()
//	scene.SetStrokeColor(color.Black)
//	scene.SetStroke(render.Stroke{Width: 8, Cap: graphics.LineCapRound})
//	scene.MoveTo(0, 0)
//	scene.LineTo(4000, 3000)
//	scene.Stroke()
//
//	r.Render(gc, func(t tiler.TileInfo) error {
//	    gc.SetTransform(t.Projection())
//	    scene.Draw(gc)
//	    return nil
//	})
type Scene struct {
	commands []drawCommand

	// Current path under construction.
	cmds   []path.Command
	coords []vec.Vec2

	fillColor   color.Color
	strokeColor color.Color
	stroke      Stroke
}

// drawCommand is a single recorded operation.
type drawCommand struct {
	op     drawOp
	path   path.Path
	color  color.Color
	stroke Stroke
	x, y   float64
	text   string
}

// drawOp is the type of drawing operation.
type drawOp uint8

const (
	opFill drawOp = iota
	opStroke
	opClear
	opText
)

// NewScene creates a new empty Scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Reset()
	return s
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	s.commands = s.commands[:0]
	s.cmds = s.cmds[:0]
	s.coords = s.coords[:0]
	s.fillColor = color.Black
	s.strokeColor = color.Black
	s.stroke = Stroke{Width: 1, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter}
}

// SetFillColor sets the color for subsequent Fill and Text operations.
func (s *Scene) SetFillColor(c color.Color) {
	s.fillColor = c
}

// SetStrokeColor sets the color for subsequent Stroke operations.
func (s *Scene) SetStrokeColor(c color.Color) {
	s.strokeColor = c
}

// SetStroke sets the stroke style for subsequent Stroke operations.
func (s *Scene) SetStroke(st Stroke) {
	s.stroke = st
}

// MoveTo starts a new subpath.
func (s *Scene) MoveTo(x, y float64) {
	s.cmds = append(s.cmds, path.CmdMoveTo)
	s.coords = append(s.coords, vec.Vec2{X: x, Y: y})
}

// LineTo adds a line segment.
func (s *Scene) LineTo(x, y float64) {
	s.cmds = append(s.cmds, path.CmdLineTo)
	s.coords = append(s.coords, vec.Vec2{X: x, Y: y})
}

// QuadTo adds a quadratic Bézier curve.
func (s *Scene) QuadTo(cx, cy, x, y float64) {
	s.cmds = append(s.cmds, path.CmdQuadTo)
	s.coords = append(s.coords, vec.Vec2{X: cx, Y: cy}, vec.Vec2{X: x, Y: y})
}

// CubicTo adds a cubic Bézier curve.
func (s *Scene) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.cmds = append(s.cmds, path.CmdCubeTo)
	s.coords = append(s.coords,
		vec.Vec2{X: c1x, Y: c1y}, vec.Vec2{X: c2x, Y: c2y}, vec.Vec2{X: x, Y: y})
}

// ClosePath closes the current subpath.
func (s *Scene) ClosePath() {
	s.cmds = append(s.cmds, path.CmdClose)
}

// Rectangle adds a closed rectangle subpath.
func (s *Scene) Rectangle(x, y, width, height float64) {
	s.MoveTo(x, y)
	s.LineTo(x+width, y)
	s.LineTo(x+width, y+height)
	s.LineTo(x, y+height)
	s.ClosePath()
}

// Circle adds a closed circle subpath made of four cubic curves.
func (s *Scene) Circle(cx, cy, r float64) {
	const k = 0.5522847498
	kr := k * r
	s.MoveTo(cx+r, cy)
	s.CubicTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	s.CubicTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	s.CubicTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	s.CubicTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	s.ClosePath()
}

// Fill records a fill of the current path and starts a new path.
func (s *Scene) Fill() {
	if p := s.takePath(); p != nil {
		s.commands = append(s.commands, drawCommand{op: opFill, path: p, color: s.fillColor})
	}
}

// Stroke records a stroke of the current path and starts a new path.
func (s *Scene) Stroke() {
	if p := s.takePath(); p != nil {
		s.commands = append(s.commands, drawCommand{op: opStroke, path: p, color: s.strokeColor, stroke: s.stroke})
	}
}

// Clear records a clear of the whole framebuffer.
func (s *Scene) Clear(c color.Color) {
	s.commands = append(s.commands, drawCommand{op: opClear, color: c})
}

// Text records a string drawn in the fill color with its baseline origin at
// (x, y).
func (s *Scene) Text(x, y float64, text string) {
	s.commands = append(s.commands, drawCommand{op: opText, color: s.fillColor, x: x, y: y, text: text})
}

// IsEmpty returns true if the scene has no commands.
func (s *Scene) IsEmpty() bool {
	return len(s.commands) == 0
}

// CommandCount returns the number of drawing commands in the scene.
func (s *Scene) CommandCount() int {
	return len(s.commands)
}

// Draw replays the scene into c using its current transform and viewport.
func (s *Scene) Draw(c *SoftwareContext) {
	for _, cmd := range s.commands {
		switch cmd.op {
		case opClear:
			c.Clear(cmd.color)
		case opFill:
			c.FillPath(cmd.path, cmd.color)
		case opStroke:
			c.StrokePath(cmd.path, cmd.stroke, cmd.color)
		case opText:
			c.DrawString(cmd.x, cmd.y, cmd.text, cmd.color)
		}
	}
}

// takePath snapshots the current path and resets it.
func (s *Scene) takePath() path.Path {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := append([]path.Command(nil), s.cmds...)
	coords := append([]vec.Vec2(nil), s.coords...)
	s.cmds = s.cmds[:0]
	s.coords = s.coords[:0]

	return func(yield func(path.Command, []vec.Vec2) bool) {
		i := 0
		for _, cmd := range cmds {
			n := pointCount(cmd)
			if !yield(cmd, coords[i:i+n]) {
				return
			}
			i += n
		}
	}
}

// pointCount returns the number of points a path command consumes.
func pointCount(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}
