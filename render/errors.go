// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrOutOfBounds is returned by ReadPixels for rectangles outside the
	// framebuffer.
	ErrOutOfBounds = errors.New("render: read rectangle outside framebuffer")

	// ErrShortBuffer is returned by ReadPixels when dst cannot hold the
	// rectangle under the current pack state.
	ErrShortBuffer = errors.New("render: destination too small")
)
