// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import "errors"

// Configuration errors. They are returned at the point of misconfiguration
// and leave the renderer unchanged.
var (
	// ErrInvalidTileSize is returned when the tile border is negative or a
	// tile dimension does not exceed twice the border.
	ErrInvalidTileSize = errors.New("tiler: invalid tile size")

	// ErrInvalidImageSize is returned when an image dimension is not positive.
	ErrInvalidImageSize = errors.New("tiler: invalid image size")

	// ErrImageSizeNotSet is returned by BeginTile before SetImageSize.
	ErrImageSizeNotSet = errors.New("tiler: image size has not been set")

	// ErrUnsupportedFormat is returned for pixel formats without a known
	// bytes-per-pixel size.
	ErrUnsupportedFormat = errors.New("tiler: unsupported pixel format")
)

// ErrInvalidContext is returned when a graphics context cannot be used by the
// renderer: it is nil, or its maximum viewport is smaller than a tile.
var ErrInvalidContext = errors.New("tiler: invalid graphics context")

// Usage errors. These indicate a programming error in the caller.
var (
	// ErrNoActiveTile is returned by EndTile without a preceding BeginTile.
	ErrNoActiveTile = errors.New("tiler: BeginTile has not been called")

	// ErrTileActive is returned by BeginTile when the previous tile was not
	// closed with EndTile, and by setters that would change the geometry of
	// an active tile.
	ErrTileActive = errors.New("tiler: tile is active")

	// ErrPassInProgress is returned when the row order is changed while a
	// pass is running.
	ErrPassInProgress = errors.New("tiler: pass in progress")

	// ErrInvalidParam is returned by Param for unknown parameter names.
	ErrInvalidParam = errors.New("tiler: invalid parameter")

	// ErrInvalidRowOrder is returned for row orders other than BottomToTop
	// and TopToBottom.
	ErrInvalidRowOrder = errors.New("tiler: invalid row order")
)

// ErrBufferTooSmall is returned by EndTile when a destination buffer cannot
// hold the pixels of the current tile. It is detected before any pixel is
// read into the buffer.
var ErrBufferTooSmall = errors.New("tiler: destination buffer too small")
