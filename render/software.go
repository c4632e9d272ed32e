// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/tiler"
)

// SoftwareContext is a CPU graphics context rendering into a PixmapTarget.
// It implements tiler.GraphicsContext.
//
// Coordinates follow the graphics API convention: the framebuffer origin is
// the lower-left corner and y grows upwards. Drawing operations take canvas
// coordinates, map them through the current transform into viewport pixels
// and clip to the viewport. Rendering is anti-aliased and synchronous.
//
// Example:
//
//	gc := render.NewSoftwareContext(256, 256)
//	gc.Viewport(0, 0, 256, 256)
//	gc.Clear(color.White)
//	gc.FillPath(shape, color.RGBA{255, 0, 0, 255})
type SoftwareContext struct {
	target *PixmapTarget

	// Viewport in framebuffer coordinates.
	vx, vy, vw, vh int

	store   tiler.PixelStore
	ctm     matrix.Matrix
	flushes int

	raster *vector.Rasterizer
}

// NewSoftwareContext creates a context with a new width x height framebuffer.
// The viewport covers the whole framebuffer.
func NewSoftwareContext(width, height int) *SoftwareContext {
	return NewSoftwareContextFromTarget(NewPixmapTarget(width, height))
}

// NewSoftwareContextFromTarget creates a context drawing into target.
func NewSoftwareContextFromTarget(target *PixmapTarget) *SoftwareContext {
	return &SoftwareContext{
		target: target,
		vw:     target.Width(),
		vh:     target.Height(),
		store:  tiler.DefaultPixelStore,
		ctm:    matrix.Identity,
		raster: vector.NewRasterizer(0, 0),
	}
}

// Target returns the framebuffer.
func (c *SoftwareContext) Target() *PixmapTarget {
	return c.target
}

// MaxViewportSize returns the framebuffer size.
func (c *SoftwareContext) MaxViewportSize() (width, height int) {
	return c.target.Width(), c.target.Height()
}

// Viewport sets the rectangle drawing maps onto, in framebuffer coordinates.
func (c *SoftwareContext) Viewport(x, y, width, height int) {
	c.vx, c.vy, c.vw, c.vh = x, y, width, height
}

// ViewportRect returns the viewport in framebuffer coordinates.
func (c *SoftwareContext) ViewportRect() (x, y, width, height int) {
	return c.vx, c.vy, c.vw, c.vh
}

// Flush completes pending rendering. Software rendering is synchronous, so
// Flush only counts calls and never fails.
func (c *SoftwareContext) Flush() error {
	c.flushes++
	return nil
}

// Flushes returns the number of Flush calls.
func (c *SoftwareContext) Flushes() int {
	return c.flushes
}

// PixelStore returns the current pack state.
func (c *SoftwareContext) PixelStore() tiler.PixelStore {
	return c.store
}

// SetPixelStore replaces the pack state.
func (c *SoftwareContext) SetPixelStore(ps tiler.PixelStore) {
	c.store = ps
}

// SetTransform sets the transform from canvas coordinates to viewport
// pixels. Use the tile projection of the renderer when drawing tiles.
func (c *SoftwareContext) SetTransform(m matrix.Matrix) {
	c.ctm = m
}

// Transform returns the current transform.
func (c *SoftwareContext) Transform() matrix.Matrix {
	return c.ctm
}

// Clear fills the whole framebuffer with col, ignoring the viewport.
func (c *SoftwareContext) Clear(col color.Color) {
	c.target.Clear(col)
}

// clip returns the viewport intersected with the framebuffer, in image
// coordinates.
func (c *SoftwareContext) clip() image.Rectangle {
	return c.target.imageRect(c.vx, c.vy, c.vw, c.vh).Intersect(c.target.img.Bounds())
}

// toRaster maps a viewport point to rasterizer coordinates for clip r.
func (c *SoftwareContext) toRaster(r image.Rectangle, v vec.Vec2) vec.Vec2 {
	b := c.target.img.Bounds()
	return vec.Vec2{
		X: float64(b.Min.X+c.vx) + v.X - float64(r.Min.X),
		Y: float64(b.Max.Y-c.vy) - v.Y - float64(r.Min.Y),
	}
}

// minRasterWidth keeps every mask wider than the size at which
// x/image/vector switches from fixed to floating point math, so all
// viewports rasterize with the same arithmetic.
const minRasterWidth = 513

// fill rasterizes closed polygons given in viewport coordinates.
//
// The mask covers the clip rectangle and geometry is moved into it by whole
// pixels only. Points outside the mask are handled by the rasterizer, so an
// edge gets the same coverage whichever viewport it is drawn through.
func (c *SoftwareContext) fill(polys [][]vec.Vec2, col color.Color) {
	r := c.clip()
	if r.Empty() || len(polys) == 0 {
		return
	}
	c.raster.Reset(max(r.Dx(), minRasterWidth), r.Dy())
	drawn := false
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		p := c.toRaster(r, poly[0])
		c.raster.MoveTo(float32(p.X), float32(p.Y))
		for _, v := range poly[1:] {
			p = c.toRaster(r, v)
			c.raster.LineTo(float32(p.X), float32(p.Y))
		}
		c.raster.ClosePath()
		drawn = true
	}
	if drawn {
		c.raster.Draw(c.target.img, r, image.NewUniform(col), image.Point{})
	}
}

// FillPath fills p with col using the nonzero winding rule. Open subpaths
// are closed implicitly.
func (c *SoftwareContext) FillPath(p path.Path, col color.Color) {
	tol := flattenTolerance / scaleOf(c.ctm)
	var polys [][]vec.Vec2
	for _, pl := range flatten(p, tol) {
		pts := make([]vec.Vec2, len(pl.pts))
		for i, v := range pl.pts {
			pts[i] = apply(c.ctm, v)
		}
		polys = append(polys, pts)
	}
	c.fill(polys, col)
}

// StrokePath outlines p with col. The stroke width is in canvas units.
// Dash patterns are not supported.
func (c *SoftwareContext) StrokePath(p path.Path, st Stroke, col color.Color) {
	scale := scaleOf(c.ctm)
	o := newOutliner(st, scale)
	for _, pl := range flatten(p, flattenTolerance/scale) {
		o.polyline(pl)
	}
	for _, poly := range o.polys {
		for i, v := range poly {
			poly[i] = apply(c.ctm, v)
		}
	}
	c.fill(o.polys, col)
}

// DrawString draws s with the baseline origin at canvas point (x, y).
// Only the position is transformed; glyphs are drawn upright at their
// natural 7x13 pixel size.
func (c *SoftwareContext) DrawString(x, y float64, s string, col color.Color) {
	r := c.clip()
	if r.Empty() {
		return
	}
	v := apply(c.ctm, vec.Vec2{X: x, Y: y})
	b := c.target.img.Bounds()
	ix := b.Min.X + c.vx + int(math.Round(v.X))
	iy := b.Max.Y - c.vy - int(math.Round(v.Y))

	d := &font.Drawer{
		Dst:  c.target.img.SubImage(r).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(ix, iy),
	}
	d.DrawString(s)
}

// ReadPixels copies the width x height rectangle at framebuffer position
// (x, y) into dst. The lowest row is written first. Rows are laid out
// according to the pack state; pixels are converted to attr.Format.
//
// Returns ErrOutOfBounds for rectangles outside the framebuffer,
// ErrShortBuffer if dst is too small and tiler.ErrUnsupportedFormat for
// formats other than RGBA8, BGRA8 and R8.
func (c *SoftwareContext) ReadPixels(x, y, width, height int, attr tiler.PixelAttributes, dst []byte) error {
	fbW, fbH := c.target.Width(), c.target.Height()
	if width < 0 || height < 0 || x < 0 || y < 0 || x+width > fbW || y+height > fbH {
		return fmt.Errorf("%w: %dx%d at %d,%d, framebuffer %dx%d",
			ErrOutOfBounds, width, height, x, y, fbW, fbH)
	}
	if _, err := tiler.NewPixelAttributes(attr.Format); err != nil {
		return err
	}
	bpp := attr.BytesPerPixel
	need := c.store.ReadSize(width, height, bpp)
	if len(dst) < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, need, len(dst))
	}

	stride := c.store.RowStride(width, bpp)
	for row := range height {
		src := c.target.Row(x, y+row, width)
		out := dst[row*stride : row*stride+width*bpp]
		convertRow(out, src, attr.Format)
	}
	return nil
}

// convertRow converts one row of RGBA pixels into format.
func convertRow(dst, src []byte, format gputypes.TextureFormat) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		copy(dst, src)
	case gputypes.TextureFormatBGRA8Unorm:
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	case gputypes.TextureFormatR8Unorm:
		for i := range len(src) / 4 {
			dst[i] = src[i*4]
		}
	}
}

var _ tiler.GraphicsContext = (*SoftwareContext)(nil)
