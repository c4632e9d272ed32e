// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package grid computes the tile layout used by the tile renderer.
//
// A Grid divides an image into rows and columns of tiles. Every tile is
// rendered with a border of extra pixels on each side; only the inner
// (non-border) region of a tile contributes to the final image. Inner regions
// of adjacent tiles abut without gaps or overlap, and the last row and column
// are clipped to whatever remains of the image.
//
// Row 0 is the bottom of the image, following the graphics API convention
// where the framebuffer origin is the lower-left corner.
package grid

import (
	"errors"
	"fmt"
)

// Errors returned by Validate and New.
var (
	// ErrNegativeBorder is returned when the tile border is negative.
	ErrNegativeBorder = errors.New("grid: tile border must be >= 0")

	// ErrTileTooSmall is returned when a tile dimension does not exceed
	// twice the border.
	ErrTileTooSmall = errors.New("grid: tile size must exceed 2*border")

	// ErrEmptyImage is returned when the image has no pixels.
	ErrEmptyImage = errors.New("grid: image size must be > 0")
)

// Order selects how a linear tile index maps to a row.
type Order int

const (
	// BottomToTop visits row 0 (the bottom of the image) first.
	BottomToTop Order = iota

	// TopToBottom visits the top row first.
	TopToBottom
)

// Grid is an immutable tile layout for one image size and tile geometry.
type Grid struct {
	imageWidth  int
	imageHeight int
	tileWidth   int
	tileHeight  int
	border      int

	// innerWidth and innerHeight are the tile size without border.
	innerWidth  int
	innerHeight int

	columns int
	rows    int
}

// Validate checks a tile geometry without computing a grid.
func Validate(tileWidth, tileHeight, border int) error {
	if border < 0 {
		return fmt.Errorf("%w: border=%d", ErrNegativeBorder, border)
	}
	if 2*border >= tileWidth || 2*border >= tileHeight {
		return fmt.Errorf("%w: tile=%dx%d, border=%d", ErrTileTooSmall, tileWidth, tileHeight, border)
	}
	return nil
}

// New computes the grid covering an imageWidth x imageHeight image with
// tiles of the given size and border.
//
// The column count is ceil(imageWidth / (tileWidth - 2*border)) and the row
// count is ceil(imageHeight / (tileHeight - 2*border)).
func New(imageWidth, imageHeight, tileWidth, tileHeight, border int) (Grid, error) {
	if err := Validate(tileWidth, tileHeight, border); err != nil {
		return Grid{}, err
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return Grid{}, fmt.Errorf("%w: width=%d, height=%d", ErrEmptyImage, imageWidth, imageHeight)
	}

	innerW := tileWidth - 2*border
	innerH := tileHeight - 2*border

	return Grid{
		imageWidth:  imageWidth,
		imageHeight: imageHeight,
		tileWidth:   tileWidth,
		tileHeight:  tileHeight,
		border:      border,
		innerWidth:  innerW,
		innerHeight: innerH,
		columns:     (imageWidth + innerW - 1) / innerW,
		rows:        (imageHeight + innerH - 1) / innerH,
	}, nil
}

// Columns returns the number of tile columns.
func (g Grid) Columns() int { return g.columns }

// Rows returns the number of tile rows.
func (g Grid) Rows() int { return g.rows }

// Count returns the number of tiles in one pass.
func (g Grid) Count() int { return g.rows * g.columns }

// Border returns the tile border in pixels.
func (g Grid) Border() int { return g.border }

// InnerSize returns the nominal tile size without border.
func (g Grid) InnerSize() (width, height int) {
	return g.innerWidth, g.innerHeight
}

// ImageSize returns the image size the grid was computed for.
func (g Grid) ImageSize() (width, height int) {
	return g.imageWidth, g.imageHeight
}

// Cell maps a linear tile index to its row and column.
// Returns ok=false if index is outside [0, Count()).
func (g Grid) Cell(index int, order Order) (row, column int, ok bool) {
	if index < 0 || index >= g.Count() {
		return 0, 0, false
	}
	column = index % g.columns
	if order == TopToBottom {
		row = g.rows - 1 - index/g.columns
	} else {
		row = index / g.columns
	}
	return row, column, true
}

// Extent returns the size of the tile at (row, column) including its
// border. Interior tiles have the nominal tile size; tiles in the last row or
// column are clipped to the remainder of the image.
func (g Grid) Extent(row, column int) (width, height int) {
	width = g.tileWidth
	if column == g.columns-1 {
		width = g.imageWidth - (g.columns-1)*g.innerWidth + 2*g.border
	}
	height = g.tileHeight
	if row == g.rows-1 {
		height = g.imageHeight - (g.rows-1)*g.innerHeight + 2*g.border
	}
	return width, height
}

// Origin returns the image position of the inner region of the tile at
// (row, column).
func (g Grid) Origin(row, column int) (x, y int) {
	return column * g.innerWidth, row * g.innerHeight
}

// Inner returns the size of the inner region of the tile at (row, column),
// i.e. the pixels this tile contributes to the image.
func (g Grid) Inner(row, column int) (width, height int) {
	w, h := g.Extent(row, column)
	return w - 2*g.border, h - 2*g.border
}
