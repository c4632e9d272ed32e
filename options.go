// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

// Option configures a TileRenderer during creation.
// Options are applied in order; the first failing option aborts New.
//
// Example:
//
//	r, err := tiler.New(
//	    tiler.WithImageSize(4096, 4096),
//	    tiler.WithTileSize(512, 512, 2),
//	    tiler.WithRowOrder(tiler.TopToBottom),
//	)
type Option func(*TileRenderer) error

// WithTileSize sets the tile size including border. See SetTileSize.
func WithTileSize(width, height, border int) Option {
	return func(r *TileRenderer) error {
		return r.SetTileSize(width, height, border)
	}
}

// WithImageSize sets the size of the final image. See SetImageSize.
func WithImageSize(width, height int) Option {
	return func(r *TileRenderer) error {
		return r.SetImageSize(width, height)
	}
}

// WithRowOrder sets the row traversal order.
func WithRowOrder(order RowOrder) Option {
	return func(r *TileRenderer) error {
		return r.SetRowOrder(order)
	}
}

// WithTileOffset sets the offset added to reported tile positions.
func WithTileOffset(x, y int) Option {
	return func(r *TileRenderer) error {
		r.SetTileOffset(x, y)
		return nil
	}
}

// WithTileBuffer sets the buffer receiving each tile.
func WithTileBuffer(b *PixelBuffer) Option {
	return func(r *TileRenderer) error {
		r.SetTileBuffer(b)
		return nil
	}
}

// WithImageBuffer sets the buffer receiving the assembled image.
//
// Example:
//
//	buf := tiler.NewPixelBuffer(tiler.RGBA8, 1920, 1080)
//	r, err := tiler.New(tiler.WithImageSize(1920, 1080), tiler.WithImageBuffer(buf))
func WithImageBuffer(b *PixelBuffer) Option {
	return func(r *TileRenderer) error {
		r.SetImageBuffer(b)
		return nil
	}
}
