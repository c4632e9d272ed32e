// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import "github.com/gogpu/tiler/internal/grid"

// RowOrder is the order in which tile rows are traversed.
type RowOrder int

const (
	// BottomToTop renders row 0, the bottom of the image, first.
	// This is the default and matches the framebuffer convention.
	BottomToTop RowOrder = iota

	// TopToBottom renders the top row first.
	TopToBottom
)

// String returns the row order name.
func (o RowOrder) String() string {
	switch o {
	case BottomToTop:
		return "BottomToTop"
	case TopToBottom:
		return "TopToBottom"
	default:
		return "RowOrder(invalid)"
	}
}

// valid reports whether o is a known row order.
func (o RowOrder) valid() bool {
	return o == BottomToTop || o == TopToBottom
}

func (o RowOrder) gridOrder() grid.Order {
	if o == TopToBottom {
		return grid.TopToBottom
	}
	return grid.BottomToTop
}
