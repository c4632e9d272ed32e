// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// PixmapTarget is a CPU-backed framebuffer using *image.RGBA.
//
// The image is stored top-down like every image.Image. Graphics coordinates
// are bottom-up: row y of the framebuffer is image row Height()-1-y.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	gc := render.NewSoftwareContextFromTarget(target)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed framebuffer.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a framebuffer.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Row returns the pixels of framebuffer row y, counted from the bottom,
// starting at column x. The slice shares memory with the target.
func (t *PixmapTarget) Row(x, y, width int) []byte {
	b := t.img.Bounds()
	iy := b.Max.Y - 1 - y
	off := t.img.PixOffset(b.Min.X+x, iy)
	return t.img.Pix[off : off+width*4]
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// SetPixel sets the pixel at framebuffer coordinates (x, y), origin at the
// bottom-left corner.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	b := t.img.Bounds()
	t.img.Set(b.Min.X+x, b.Max.Y-1-y, c)
}

// GetPixel returns the color at framebuffer coordinates (x, y), origin at
// the bottom-left corner.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	b := t.img.Bounds()
	return t.img.RGBAAt(b.Min.X+x, b.Max.Y-1-y)
}

// imageRect converts a framebuffer rectangle into image coordinates.
func (t *PixmapTarget) imageRect(x, y, width, height int) image.Rectangle {
	b := t.img.Bounds()
	return image.Rect(b.Min.X+x, b.Max.Y-y-height, b.Min.X+x+width, b.Max.Y-y)
}
