// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command tilerdemo renders an image larger than the framebuffer by drawing
// it tile by tile with the tiler package and writes the result as PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"seehuhn.de/go/pdf/graphics"

	"github.com/gogpu/tiler"
	"github.com/gogpu/tiler/render"
)

func main() {
	var (
		width   = flag.Int("width", 1600, "image width")
		height  = flag.Int("height", 1200, "image height")
		tile    = flag.Int("tile", tiler.DefaultTileWidth, "tile width and height")
		border  = flag.Int("border", 2, "tile border")
		order   = flag.String("order", "bottom", "row order: bottom or top")
		output  = flag.String("output", "tiled.png", "output file")
		verbose = flag.Bool("v", false, "log tile progress")
	)
	flag.Parse()

	if *verbose {
		tiler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	rowOrder, err := parseRowOrder(*order)
	if err != nil {
		log.Fatal(err)
	}

	attr, err := tiler.NewPixelAttributes(gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		log.Fatal(err)
	}
	buf := tiler.NewPixelBuffer(attr, *width, *height)

	r, err := tiler.New(
		tiler.WithImageSize(*width, *height),
		tiler.WithTileSize(*tile, *tile, *border),
		tiler.WithRowOrder(rowOrder),
		tiler.WithImageBuffer(buf),
	)
	if err != nil {
		log.Fatalf("Failed to configure tiles: %v", err)
	}

	scene := buildScene(float64(*width), float64(*height))
	gc := render.NewSoftwareContext(*tile, *tile)

	tiles := 0
	err = r.Render(gc, func(t tiler.TileInfo) error {
		gc.SetTransform(t.Projection())
		scene.Draw(gc)
		tiles++
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	img, err := tiler.ImageFromBuffer(buf, *width, *height)
	if err != nil {
		log.Fatalf("Failed to convert: %v", err)
	}
	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Rendered %s (%dx%d) from %d tiles of %dx%d, %d bytes read back\n",
		*output, *width, *height, tiles, *tile, *tile, buf.Limit())
}

func parseRowOrder(s string) (tiler.RowOrder, error) {
	switch s {
	case "bottom":
		return tiler.BottomToTop, nil
	case "top":
		return tiler.TopToBottom, nil
	default:
		return 0, fmt.Errorf("unknown row order %q", s)
	}
}

// buildScene records the demo content in canvas coordinates, origin at the
// bottom-left corner of the image.
func buildScene(w, h float64) *render.Scene {
	s := render.NewScene()
	s.Clear(color.White)

	drawBackground(s, w, h)
	drawCircles(s, w, h)
	drawDiagonal(s, w, h)
	drawStar(s, w/2, h/2, math.Min(w, h)/5)
	drawLabels(s, w, h)
	return s
}

func drawBackground(s *render.Scene, w, h float64) {
	steps := 40
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		s.SetFillColor(color.RGBA{
			R: uint8(25 + t*100),
			G: uint8(50 + t*75),
			B: uint8(100 + t*50),
			A: 255,
		})
		s.Rectangle(0, h*t, w, h/float64(steps)+1)
		s.Fill()
	}
}

func drawCircles(s *render.Scene, w, h float64) {
	r := math.Min(w, h) / 8
	cx, cy := w/4, h*3/4
	s.SetFillColor(color.NRGBA{R: 255, G: 76, B: 76, A: 204})
	s.Circle(cx, cy, r)
	s.Fill()
	s.SetFillColor(color.NRGBA{R: 76, G: 255, B: 76, A: 204})
	s.Circle(cx+r*0.8, cy, r)
	s.Fill()
	s.SetFillColor(color.NRGBA{R: 76, G: 76, B: 255, A: 204})
	s.Circle(cx+r*0.4, cy-r*0.7, r)
	s.Fill()
}

// drawDiagonal strokes a wide curve across the whole image so that it
// crosses many tile seams.
func drawDiagonal(s *render.Scene, w, h float64) {
	s.SetStrokeColor(color.RGBA{R: 255, G: 128, A: 255})
	s.SetStroke(render.Stroke{Width: 24, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound})
	s.MoveTo(w*0.05, h*0.1)
	s.CubicTo(w*0.3, h*0.9, w*0.6, h*0.1, w*0.95, h*0.9)
	s.Stroke()

	s.SetStrokeColor(color.White)
	s.SetStroke(render.Stroke{Width: 6, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter})
	s.Rectangle(w*0.02, h*0.02, w*0.96, h*0.96)
	s.Stroke()
}

func drawStar(s *render.Scene, cx, cy, outer float64) {
	inner := outer / 2
	points := 5
	s.SetFillColor(color.RGBA{R: 255, G: 215, A: 255})
	for i := 0; i < points*2; i++ {
		angle := float64(i)*math.Pi/float64(points) + math.Pi/2
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x, y := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
	s.Fill()
}

func drawLabels(s *render.Scene, w, h float64) {
	s.SetFillColor(color.Black)
	s.Text(20, 20, fmt.Sprintf("%.0fx%.0f tiled render", w, h))
	s.Text(math.Round(w/2-40), math.Round(h-30), "top of image")
}
