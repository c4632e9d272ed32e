// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"errors"
	"testing"
)

// TestNewWithOptions tests that every option is applied.
func TestNewWithOptions(t *testing.T) {
	r := mustNew(t,
		WithImageSize(300, 200),
		WithTileSize(64, 32, 4),
		WithRowOrder(TopToBottom),
		WithTileOffset(7, 9),
	)

	tests := []struct {
		p    ParamName
		want int
	}{
		{ParamImageWidth, 300},
		{ParamImageHeight, 200},
		{ParamTileWidth, 64},
		{ParamTileHeight, 32},
		{ParamTileBorder, 4},
		{ParamRowOrder, int(TopToBottom)},
	}
	for _, tt := range tests {
		if got := param(t, r, tt.p); got != tt.want {
			t.Errorf("Param(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

// TestNewOptionOrder tests that options apply in order and the first
// failure aborts New.
func TestNewOptionOrder(t *testing.T) {
	r := mustNew(t, WithTileSize(64, 64, 0), WithTileSize(32, 16, 1))
	if got := param(t, r, ParamTileWidth); got != 32 {
		t.Errorf("TileWidth = %d, want 32 (last option wins)", got)
	}

	applied := false
	record := func(*TileRenderer) error {
		applied = true
		return nil
	}
	r2, err := New(WithImageSize(0, 10), record)
	if !errors.Is(err, ErrInvalidImageSize) {
		t.Errorf("New() error = %v, want ErrInvalidImageSize", err)
	}
	if r2 != nil {
		t.Error("New() returned a renderer on error")
	}
	if applied {
		t.Error("option after the failing one was applied")
	}
}

// TestNewDestinationOptions tests the destination chosen for buffer options.
func TestNewDestinationOptions(t *testing.T) {
	tileBuf := NewPixelBuffer(RGBA8, 10, 10)
	imageBuf := NewPixelBuffer(RGBA8, 100, 100)

	tests := []struct {
		name string
		opts []Option
		want Destination
	}{
		{"none", nil, NoDestination{}},
		{"tile", []Option{WithTileBuffer(tileBuf)}, TileDestination{Tile: tileBuf}},
		{"image", []Option{WithImageBuffer(imageBuf)}, ImageDestination{Image: imageBuf}},
		{"both", []Option{WithImageBuffer(imageBuf), WithTileBuffer(tileBuf)}, BothDestinations{Tile: tileBuf, Image: imageBuf}},
		{"cleared", []Option{WithTileBuffer(tileBuf), WithTileBuffer(nil)}, NoDestination{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, tt.opts...)
			if got := r.Destination(); got != tt.want {
				t.Errorf("Destination() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
