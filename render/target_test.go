// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 100, 100},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)

			if target.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", target.Width(), tt.width)
			}
			if target.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", target.Height(), tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.Stride() != tt.width*4 {
				t.Errorf("Stride() = %d, want %d", target.Stride(), tt.width*4)
			}
		})
	}
}

func TestPixmapTarget_BottomUpAddressing(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	target := NewPixmapTargetFromImage(img)

	red := color.RGBA{255, 0, 0, 255}
	target.SetPixel(1, 0, red)

	// Framebuffer row 0 is the last image row.
	if got := img.RGBAAt(1, 2); got != red {
		t.Errorf("image pixel (1,2) = %v, want red", got)
	}
	if got := target.GetPixel(1, 0); got != red {
		t.Errorf("GetPixel(1, 0) = %v, want red", got)
	}
	row := target.Row(1, 0, 2)
	if len(row) != 8 || row[0] != 255 {
		t.Errorf("Row(1, 0, 2) = %v, want red pixel first", row)
	}
}

func TestPixmapTarget_Clear(t *testing.T) {
	target := NewPixmapTarget(3, 3)
	target.Clear(color.RGBA{10, 20, 30, 255})
	for y := range 3 {
		for x := range 3 {
			if got := target.GetPixel(x, y); got != (color.RGBA{10, 20, 30, 255}) {
				t.Fatalf("GetPixel(%d, %d) = %v after Clear", x, y, got)
			}
		}
	}
}

func TestPixmapTarget_ImageRect(t *testing.T) {
	target := NewPixmapTarget(10, 8)
	got := target.imageRect(2, 1, 4, 3)
	want := image.Rect(2, 4, 6, 7)
	if got != want {
		t.Errorf("imageRect(2, 1, 4, 3) = %v, want %v", got, want)
	}
}
