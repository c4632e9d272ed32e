// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render provides a CPU graphics context for the tile renderer.
//
// SoftwareContext implements tiler.GraphicsContext on top of a PixmapTarget
// framebuffer. It keeps the conventions of a graphics API: a bottom-left
// origin, a viewport, pixel pack state and read-back that writes the lowest
// row first. Drawing is anti-aliased through golang.org/x/image/vector.
//
// # Drawing
//
//   - FillPath: nonzero fill of a seehuhn.de/go/geom/path.Path
//   - StrokePath: outline with butt, round or square caps and miter, round
//     or bevel joins
//   - DrawString: ASCII text in the basicfont 7x13 face
//
// Scene records these operations once so they can be replayed for every
// tile of a pass.
//
// # Usage
//
//	gc := render.NewSoftwareContext(512, 512)
//	scene := render.NewScene()
//	scene.SetFillColor(color.RGBA{0, 0, 255, 255})
//	scene.Circle(2000, 1500, 1000)
//	scene.Fill()
//
//	r, _ := tiler.New(tiler.WithImageSize(4000, 3000), tiler.WithTileSize(512, 512, 4))
//	r.Render(gc, func(t tiler.TileInfo) error {
//	    gc.Clear(color.White)
//	    gc.SetTransform(t.Projection())
//	    scene.Draw(gc)
//	    return nil
//	})
package render
