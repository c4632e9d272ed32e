// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/tiler"
)

// copyPitchAlignment is the required BytesPerRow alignment of texture to
// buffer copies.
const copyPitchAlignment = 256

// alignedRowPitch returns the staging buffer row pitch for width BGRA8
// pixels.
func alignedRowPitch(width int) int {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// scatterRows copies a staging image of height rows (top row first, rows
// pitch bytes apart, BGRA8) into dst bottom row first. Rows in dst are
// spaced according to ps and converted to format.
func scatterRows(dst, src []byte, width, height, pitch int, ps tiler.PixelStore, format gputypes.TextureFormat, bpp int) {
	stride := ps.RowStride(width, bpp)
	for i := range height {
		off := (height - 1 - i) * pitch
		convertBGRARow(dst[i*stride:i*stride+width*bpp], src[off:off+width*4], format)
	}
}

// convertBGRARow converts one row of BGRA8 pixels into format.
func convertBGRARow(dst, src []byte, format gputypes.TextureFormat) {
	switch format {
	case gputypes.TextureFormatBGRA8Unorm:
		copy(dst, src)
	case gputypes.TextureFormatRGBA8Unorm:
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	case gputypes.TextureFormatR8Unorm:
		for i := range len(src) / 4 {
			dst[i] = src[i*4+2]
		}
	}
}
