// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tiler/internal/parallel"
)

// minBandRows is the smallest row band converted by one worker.
const minBandRows = 64

// rowPool is shared by all conversions and lives for the process.
var rowPool = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

// ImageFromBuffer converts an assembled image buffer into an image.Image.
// The buffer stores the bottom row first; the returned image is top-down.
// RGBA8 and BGRA8 buffers become *image.RGBA, R8 buffers *image.Gray.
//
// The whole buffer memory is read, independent of its position and limit.
// Images of at least 2*minBandRows rows are converted in parallel bands on
// a shared worker pool.
func ImageFromBuffer(buf *PixelBuffer, width, height int) (image.Image, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrBufferTooSmall)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidImageSize, width, height)
	}
	attr := buf.Attributes()
	stride := width * attr.BytesPerPixel
	if need := stride * height; buf.RequiresNewBuffer(need) {
		return nil, fmt.Errorf("%w: image requires %d bytes, only had %v", ErrBufferTooSmall, need, buf)
	}
	data := buf.Data()

	var img image.Image
	var pix []byte
	var dstStride int
	switch attr.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		img, pix, dstStride = rgba, rgba.Pix, rgba.Stride
	case gputypes.TextureFormatR8Unorm:
		gray := image.NewGray(image.Rect(0, 0, width, height))
		img, pix, dstStride = gray, gray.Pix, gray.Stride
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, attr.Format)
	}
	swap := attr.Format == gputypes.TextureFormatBGRA8Unorm

	rowPool().Rows(height, minBandRows, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			dst := pix[y*dstStride : y*dstStride+stride]
			copy(dst, data[(height-1-y)*stride:(height-y)*stride])
			if swap {
				for i := 0; i < len(dst); i += 4 {
					dst[i], dst[i+2] = dst[i+2], dst[i]
				}
			}
		}
	})
	return img, nil
}
