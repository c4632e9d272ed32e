// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tiler renders images larger than the graphics viewport by
// splitting them into tiles.
//
// # Overview
//
// A graphics context can only render into a viewport of bounded size. The
// TileRenderer decomposes a large image into a grid of tiles, lets the caller
// render each tile with a shifted projection, reads every tile back and
// assembles the pixels into one contiguous buffer.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/tiler"
//	    "github.com/gogpu/tiler/render"
//	)
//
//	gc := render.NewSoftwareContext(512, 512)
//	buf := tiler.NewPixelBuffer(tiler.RGBA8, 4000, 3000)
//	r, err := tiler.New(
//	    tiler.WithImageSize(4000, 3000),
//	    tiler.WithTileSize(512, 512, 8),
//	    tiler.WithImageBuffer(buf),
//	)
//	if err != nil {
//	    return err
//	}
//	err = r.Render(gc, func(t tiler.TileInfo) error {
//	    gc.SetTransform(t.Projection())
//	    return drawScene(gc)
//	})
//	img, err := tiler.ImageFromBuffer(buf, 4000, 3000)
//
// # Borders
//
// Every tile may carry a border of rendered pixels that is discarded at
// read-back. Wide lines and large points drawn near a tile edge are clipped
// by the viewport; with a border at least half the line width the visible
// part of the tile is complete and no seams appear.
//
// # Coordinate System
//
// The renderer follows the graphics API convention:
//   - Origin (0,0) at the lower-left corner of the image
//   - Row 0 is the bottom row of tiles
//   - Assembled buffers store the bottom image row first
//
// # Graphics Contexts
//
// The renderer drives any GraphicsContext. Two implementations ship with the
// module: render.SoftwareContext, a CPU framebuffer, and gpu.Context, an
// offscreen texture rendered through gogpu/wgpu.
package tiler

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
