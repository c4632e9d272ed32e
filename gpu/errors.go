// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import "errors"

var (
	// ErrNoHAL is returned by New when the device provider does not expose
	// wgpu HAL device and queue.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL types")

	// ErrInvalidSize is returned by New for a non-positive framebuffer size.
	ErrInvalidSize = errors.New("gpu: invalid framebuffer size")

	// ErrOutOfBounds is returned by ReadPixels for rectangles that leave the
	// framebuffer.
	ErrOutOfBounds = errors.New("gpu: rectangle outside framebuffer")

	// ErrShortBuffer is returned by ReadPixels when dst cannot hold the
	// requested rectangle.
	ErrShortBuffer = errors.New("gpu: destination buffer too small")

	// ErrReleased is returned when a destroyed context is used.
	ErrReleased = errors.New("gpu: context released")
)
