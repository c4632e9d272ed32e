// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PixelAttributes describes the client-side layout of read-back pixels.
type PixelAttributes struct {
	// Format is the pixel format ReadPixels converts to.
	Format gputypes.TextureFormat

	// BytesPerPixel is the size of one pixel in Format.
	BytesPerPixel int
}

// Predefined attributes for the formats read-back supports.
var (
	RGBA8 = PixelAttributes{Format: gputypes.TextureFormatRGBA8Unorm, BytesPerPixel: 4}
	BGRA8 = PixelAttributes{Format: gputypes.TextureFormatBGRA8Unorm, BytesPerPixel: 4}
	R8    = PixelAttributes{Format: gputypes.TextureFormatR8Unorm, BytesPerPixel: 1}
)

// NewPixelAttributes returns the attributes for format.
// Returns ErrUnsupportedFormat for formats read-back cannot produce.
func NewPixelAttributes(format gputypes.TextureFormat) (PixelAttributes, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return RGBA8, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return BGRA8, nil
	case gputypes.TextureFormatR8Unorm:
		return R8, nil
	default:
		return PixelAttributes{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// PixelBuffer is a caller-owned byte container that receives read-back
// pixels. It keeps a position and a limit like a byte cursor: writers
// advance the position, then Flip marks [0, position) as the readable region.
//
// The renderer validates capacity and writes into the buffer; it never
// reallocates it.
type PixelBuffer struct {
	attr  PixelAttributes
	data  []byte
	pos   int
	limit int
}

// NewPixelBuffer allocates a buffer large enough for width x height pixels
// with the given attributes.
func NewPixelBuffer(attr PixelAttributes, width, height int) *PixelBuffer {
	return WrapPixelBuffer(attr, make([]byte, width*height*attr.BytesPerPixel))
}

// WrapPixelBuffer wraps existing memory. The slice is used directly.
func WrapPixelBuffer(attr PixelAttributes, data []byte) *PixelBuffer {
	return &PixelBuffer{attr: attr, data: data, limit: len(data)}
}

// Attributes returns the pixel attributes of the buffer.
func (b *PixelBuffer) Attributes() PixelAttributes { return b.attr }

// Data returns the whole underlying memory, independent of position and limit.
func (b *PixelBuffer) Data() []byte { return b.data }

// Cap returns the capacity in bytes.
func (b *PixelBuffer) Cap() int { return len(b.data) }

// Position returns the write position.
func (b *PixelBuffer) Position() int { return b.pos }

// Limit returns the end of the readable region.
func (b *PixelBuffer) Limit() int { return b.limit }

// Bytes returns the readable region [position, limit).
func (b *PixelBuffer) Bytes() []byte { return b.data[b.pos:b.limit] }

// Clear resets the position to zero and the limit to the capacity.
func (b *PixelBuffer) Clear() {
	b.pos = 0
	b.limit = len(b.data)
}

// SetPosition moves the write position. It panics if n is outside
// [0, limit].
func (b *PixelBuffer) SetPosition(n int) {
	if n < 0 || n > b.limit {
		panic(fmt.Sprintf("tiler: PixelBuffer position %d out of range [0, %d]", n, b.limit))
	}
	b.pos = n
}

// Flip sets the limit to the current position and the position to zero.
func (b *PixelBuffer) Flip() {
	b.limit = b.pos
	b.pos = 0
}

// RequiresNewBuffer reports whether the buffer is too small to hold
// required bytes.
func (b *PixelBuffer) RequiresNewBuffer(required int) bool {
	return required > len(b.data)
}

// String describes the buffer for error messages.
func (b *PixelBuffer) String() string {
	return fmt.Sprintf("PixelBuffer[%v, %d bpp, pos %d, lim %d, cap %d]",
		b.attr.Format, b.attr.BytesPerPixel, b.pos, b.limit, len(b.data))
}
