// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/tiler"
	"github.com/gogpu/tiler/render"
)

// ExampleTileRenderer_Render renders a 100x60 image through a 40x40
// framebuffer with a 2 pixel border.
func ExampleTileRenderer_Render() {
	buf := tiler.NewPixelBuffer(tiler.RGBA8, 100, 60)
	r, err := tiler.New(
		tiler.WithImageSize(100, 60),
		tiler.WithTileSize(40, 40, 2),
		tiler.WithImageBuffer(buf),
	)
	if err != nil {
		panic(err)
	}

	gc := render.NewSoftwareContext(40, 40)
	err = r.Render(gc, func(t tiler.TileInfo) error {
		fmt.Printf("tile %d: %dx%d at %d,%d\n", t.Index, t.Width, t.Height, t.X, t.Y)
		gc.SetTransform(t.Projection())
		gc.Clear(color.White)
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("bytes:", buf.Limit())
	// Output:
	// tile 0: 40x40 at 0,0
	// tile 1: 40x40 at 36,0
	// tile 2: 32x40 at 72,0
	// tile 3: 40x28 at 0,36
	// tile 4: 40x28 at 36,36
	// tile 5: 32x28 at 72,36
	// bytes: 24000
}

// ExampleTileRenderer_BeginTile drives a pass by hand.
func ExampleTileRenderer_BeginTile() {
	r, err := tiler.New(tiler.WithImageSize(64, 64), tiler.WithTileSize(32, 32, 0))
	if err != nil {
		panic(err)
	}
	gc := render.NewSoftwareContext(32, 32)

	tiles := 0
	for {
		if err := r.BeginTile(gc); err != nil {
			panic(err)
		}
		// Draw the tile here using r.Projection().
		if err := r.EndTile(gc); err != nil {
			panic(err)
		}
		tiles++
		if r.EOT() {
			break
		}
	}
	fmt.Println("tiles:", tiles)
	// Output:
	// tiles: 4
}
