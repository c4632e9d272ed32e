// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// solidVertexStride is the size of one vertex: position (2 x f32) followed by
// a premultiplied color (4 x f32).
const solidVertexStride = 24

// solidVertexLayout returns the vertex buffer layout of the solid pipeline.
func solidVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: solidVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// writeSolidVertex encodes a single vertex into buf.
func writeSolidVertex(buf []byte, x, y float32, col [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(col[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(col[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(col[2]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(col[3]))
}

// premultiplied converts c to premultiplied float components.
func premultiplied(c color.Color) [4]float32 {
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}

// scissor is a clip rectangle in texture coordinates (origin top-left).
type scissor struct {
	x, y, width, height uint32
}

// batch is a run of triangles sharing one scissor rectangle.
type batch struct {
	clip  scissor
	first uint32
	count uint32
}

// fanTriangles appends the triangle fan of a convex polygon to out.
func fanTriangles(out, pts []vec.Vec2) []vec.Vec2 {
	for i := 1; i+1 < len(pts); i++ {
		out = append(out, pts[0], pts[i], pts[i+1])
	}
	return out
}

// viewportScissor intersects the viewport (framebuffer coordinates, origin
// bottom-left) with a width x height framebuffer and returns it in texture
// coordinates. ok is false if the intersection is empty.
func viewportScissor(vx, vy, vw, vh, width, height int) (s scissor, ok bool) {
	x0, y0 := max(vx, 0), max(vy, 0)
	x1, y1 := min(vx+vw, width), min(vy+vh, height)
	if x1 <= x0 || y1 <= y0 {
		return scissor{}, false
	}
	//nolint:gosec // G115: clamped to the framebuffer
	return scissor{
		x:      uint32(x0),
		y:      uint32(height - y1),
		width:  uint32(x1 - x0),
		height: uint32(y1 - y0),
	}, true
}

// toNDC maps a framebuffer point (origin bottom-left) to normalized device
// coordinates of a width x height framebuffer.
func toNDC(p vec.Vec2, width, height int) (x, y float32) {
	return float32(2*p.X/float64(width) - 1), float32(2*p.Y/float64(height) - 1)
}

// transformPoint maps p through m.
func transformPoint(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
