// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

// GraphicsContext is the graphics capability the tile renderer drives.
//
// Coordinates follow the graphics API convention: the origin is the
// lower-left corner of the framebuffer and y grows upwards. ReadPixels
// writes the lowest row of the requested rectangle first.
//
// Implementations are provided by render.SoftwareContext (CPU framebuffer)
// and gpu.Context (gogpu/wgpu HAL). A GraphicsContext is owned by a single
// goroutine; the renderer never retains it beyond a call.
type GraphicsContext interface {
	// Viewport sets the rectangle subsequent drawing maps onto.
	Viewport(x, y, width, height int)

	// Flush forces completion of all previously issued rendering commands.
	Flush() error

	// PixelStore returns the current pixel pack state.
	PixelStore() PixelStore

	// SetPixelStore replaces the pixel pack state.
	SetPixelStore(ps PixelStore)

	// ReadPixels copies the width x height rectangle at (x, y) into dst,
	// converted to attr.Format and laid out according to the pack state.
	ReadPixels(x, y, width, height int, attr PixelAttributes, dst []byte) error
}

// viewportLimiter is implemented by contexts that bound the viewport size.
// BeginTile rejects tiles larger than the limit.
type viewportLimiter interface {
	MaxViewportSize() (width, height int)
}

// PixelStore is the pixel pack state of a graphics context: how rows are
// laid out in client memory by ReadPixels.
type PixelStore struct {
	// PackAlignment is the byte alignment of each row start: 1, 2, 4 or 8.
	PackAlignment int

	// PackRowLength is the row length in pixels. Zero means rows are as
	// wide as the rectangle being read.
	PackRowLength int
}

// DefaultPixelStore is the initial pack state of a graphics context.
var DefaultPixelStore = PixelStore{PackAlignment: 4}

// RowStride returns the distance in bytes between the starts of consecutive
// rows when reading rows of width pixels of bpp bytes each.
func (ps PixelStore) RowStride(width, bpp int) int {
	n := width
	if ps.PackRowLength > 0 {
		n = ps.PackRowLength
	}
	stride := n * bpp
	if a := ps.PackAlignment; a > 1 {
		stride = (stride + a - 1) / a * a
	}
	return stride
}

// ReadSize returns the number of bytes ReadPixels touches when reading a
// width x height rectangle. The last row is not padded to the stride.
func (ps PixelStore) ReadSize(width, height, bpp int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (height-1)*ps.RowStride(width, bpp) + width*bpp
}

// pixelStoreScope holds the pack state saved by acquirePixelStore.
type pixelStoreScope struct {
	gc    GraphicsContext
	saved PixelStore
}

// acquirePixelStore saves the pack state of gc and switches to byte-aligned,
// tightly packed rows. The caller must release the scope on every path,
// typically with defer.
func acquirePixelStore(gc GraphicsContext) pixelStoreScope {
	s := pixelStoreScope{gc: gc, saved: gc.PixelStore()}
	gc.SetPixelStore(PixelStore{PackAlignment: 1})
	return s
}

// setRowLength changes the pack row length inside the scope.
func (s pixelStoreScope) setRowLength(n int) {
	ps := s.gc.PixelStore()
	ps.PackRowLength = n
	s.gc.SetPixelStore(ps)
}

// release restores the pack state saved by acquirePixelStore.
func (s pixelStoreScope) release() {
	s.gc.SetPixelStore(s.saved)
}
