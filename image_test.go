// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestImageFromBuffer_RGBA(t *testing.T) {
	// Two rows, bottom row first: red then blue.
	buf := WrapPixelBuffer(RGBA8, []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	})
	img, err := ImageFromBuffer(buf, 2, 2)
	if err != nil {
		t.Fatalf("ImageFromBuffer() = %v", err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("ImageFromBuffer() = %T, want *image.RGBA", img)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top row = %v, want blue", got)
	}
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom row = %v, want red", got)
	}
}

func TestImageFromBuffer_BGRA(t *testing.T) {
	buf := WrapPixelBuffer(BGRA8, []byte{10, 20, 30, 40})
	img, err := ImageFromBuffer(buf, 1, 1)
	if err != nil {
		t.Fatalf("ImageFromBuffer() = %v", err)
	}
	if got := img.(*image.RGBA).RGBAAt(0, 0); got != (color.RGBA{30, 20, 10, 40}) {
		t.Errorf("pixel = %v, want {30 20 10 40}", got)
	}
	// The buffer is not modified.
	if buf.Data()[0] != 10 {
		t.Errorf("buffer modified: %v", buf.Data())
	}
}

func TestImageFromBuffer_Gray(t *testing.T) {
	buf := WrapPixelBuffer(R8, []byte{1, 2, 3, 4, 5, 6})
	img, err := ImageFromBuffer(buf, 3, 2)
	if err != nil {
		t.Fatalf("ImageFromBuffer() = %v", err)
	}
	gray := img.(*image.Gray)
	if got := gray.GrayAt(0, 0).Y; got != 4 {
		t.Errorf("top-left = %d, want 4", got)
	}
	if got := gray.GrayAt(2, 1).Y; got != 3 {
		t.Errorf("bottom-right = %d, want 3", got)
	}
}

func TestImageFromBuffer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		buf     *PixelBuffer
		w, h    int
		wantErr error
	}{
		{"nil", nil, 1, 1, ErrBufferTooSmall},
		{"short", NewPixelBuffer(RGBA8, 2, 2), 3, 2, ErrBufferTooSmall},
		{"empty size", NewPixelBuffer(RGBA8, 2, 2), 0, 2, ErrInvalidImageSize},
		{"format", WrapPixelBuffer(PixelAttributes{BytesPerPixel: 2}, make([]byte, 8)), 2, 2, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImageFromBuffer(tt.buf, tt.w, tt.h); !errors.Is(err, tt.wantErr) {
				t.Errorf("ImageFromBuffer() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImageFromBuffer_ManyRows(t *testing.T) {
	const w, h = 3, 500
	data := make([]byte, w*h)
	for y := range h {
		for x := range w {
			data[y*w+x] = byte(y)
		}
	}
	img, err := ImageFromBuffer(WrapPixelBuffer(R8, data), w, h)
	if err != nil {
		t.Fatalf("ImageFromBuffer() = %v", err)
	}
	gray := img.(*image.Gray)
	for y := range h {
		if got, want := gray.GrayAt(w-1, y).Y, byte(h-1-y); got != want {
			t.Fatalf("row %d = %d, want %d", y, got, want)
		}
	}
}

func TestImageFromBuffer_SharedPool(t *testing.T) {
	data := make([]byte, 4*200)
	for range 3 {
		if _, err := ImageFromBuffer(WrapPixelBuffer(R8, data), 4, 200); err != nil {
			t.Fatalf("ImageFromBuffer() = %v", err)
		}
	}
	pool := rowPool()
	if pool != rowPool() {
		t.Error("rowPool() returned a new pool")
	}
	if !pool.IsRunning() {
		t.Error("shared pool closed after conversion")
	}
}
