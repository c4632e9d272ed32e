// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

// Destination is the set of buffers EndTile reads pixels into.
// It is one of NoDestination, TileDestination, ImageDestination or
// BothDestinations.
//
// The tile buffer receives the inner region of every tile, overwriting the
// previous tile. The image buffer receives each tile at its position in the
// assembled image.
type Destination interface {
	isDestination()
}

// NoDestination discards read-back; tiles are only rendered.
type NoDestination struct{}

// TileDestination reads each tile into a tile-sized buffer.
type TileDestination struct {
	Tile *PixelBuffer
}

// ImageDestination assembles all tiles into an image-sized buffer.
type ImageDestination struct {
	Image *PixelBuffer
}

// BothDestinations fills the tile buffer and the image buffer.
type BothDestinations struct {
	Tile  *PixelBuffer
	Image *PixelBuffer
}

func (NoDestination) isDestination()    {}
func (TileDestination) isDestination()  {}
func (ImageDestination) isDestination() {}
func (BothDestinations) isDestination() {}

// newDestination selects the variant for the configured buffers.
func newDestination(tile, image *PixelBuffer) Destination {
	switch {
	case tile != nil && image != nil:
		return BothDestinations{Tile: tile, Image: image}
	case tile != nil:
		return TileDestination{Tile: tile}
	case image != nil:
		return ImageDestination{Image: image}
	default:
		return NoDestination{}
	}
}
