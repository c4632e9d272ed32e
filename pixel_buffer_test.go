// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixelAttributes(t *testing.T) {
	tests := []struct {
		format  gputypes.TextureFormat
		wantBpp int
		wantErr bool
	}{
		{gputypes.TextureFormatRGBA8Unorm, 4, false},
		{gputypes.TextureFormatBGRA8Unorm, 4, false},
		{gputypes.TextureFormatR8Unorm, 1, false},
		{gputypes.TextureFormatDepth24PlusStencil8, 0, true},
		{gputypes.TextureFormatUndefined, 0, true},
	}
	for _, tt := range tests {
		attr, err := NewPixelAttributes(tt.format)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("NewPixelAttributes(%v) = %v, want ErrUnsupportedFormat", tt.format, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewPixelAttributes(%v) = %v", tt.format, err)
			continue
		}
		if attr.BytesPerPixel != tt.wantBpp {
			t.Errorf("NewPixelAttributes(%v).BytesPerPixel = %d, want %d", tt.format, attr.BytesPerPixel, tt.wantBpp)
		}
	}
}

func TestPixelBuffer_Cursor(t *testing.T) {
	b := NewPixelBuffer(RGBA8, 4, 2)
	if b.Cap() != 32 || b.Limit() != 32 || b.Position() != 0 {
		t.Fatalf("new buffer cap/lim/pos = %d/%d/%d, want 32/32/0", b.Cap(), b.Limit(), b.Position())
	}

	b.SetPosition(12)
	b.Flip()
	if b.Position() != 0 || b.Limit() != 12 {
		t.Errorf("after Flip pos/lim = %d/%d, want 0/12", b.Position(), b.Limit())
	}
	if len(b.Bytes()) != 12 {
		t.Errorf("len(Bytes()) = %d, want 12", len(b.Bytes()))
	}

	b.Clear()
	if b.Position() != 0 || b.Limit() != 32 {
		t.Errorf("after Clear pos/lim = %d/%d, want 0/32", b.Position(), b.Limit())
	}
}

func TestPixelBuffer_SetPositionOutOfRange(t *testing.T) {
	b := WrapPixelBuffer(R8, make([]byte, 8))
	b.SetPosition(4)
	b.Flip()

	defer func() {
		if recover() == nil {
			t.Error("SetPosition beyond limit did not panic")
		}
	}()
	b.SetPosition(5)
}

func TestPixelBuffer_RequiresNewBuffer(t *testing.T) {
	b := WrapPixelBuffer(RGBA8, make([]byte, 100))
	tests := []struct {
		required int
		want     bool
	}{
		{0, false},
		{99, false},
		{100, false},
		{101, true},
	}
	for _, tt := range tests {
		if got := b.RequiresNewBuffer(tt.required); got != tt.want {
			t.Errorf("RequiresNewBuffer(%d) = %v, want %v", tt.required, got, tt.want)
		}
	}
}

func TestPixelBuffer_String(t *testing.T) {
	s := NewPixelBuffer(R8, 3, 3).String()
	if !strings.Contains(s, "cap 9") {
		t.Errorf("String() = %q, missing capacity", s)
	}
}

// =============================================================================
// PixelStore
// =============================================================================

func TestPixelStore_RowStride(t *testing.T) {
	tests := []struct {
		ps         PixelStore
		width, bpp int
		want       int
	}{
		{PixelStore{PackAlignment: 1}, 3, 1, 3},
		{PixelStore{PackAlignment: 4}, 3, 1, 4},
		{PixelStore{PackAlignment: 8}, 3, 4, 16},
		{PixelStore{PackAlignment: 4}, 5, 4, 20},
		{PixelStore{PackAlignment: 1, PackRowLength: 100}, 10, 4, 400},
		{PixelStore{PackAlignment: 4, PackRowLength: 7}, 2, 1, 8},
		{PixelStore{}, 6, 1, 6},
	}
	for _, tt := range tests {
		if got := tt.ps.RowStride(tt.width, tt.bpp); got != tt.want {
			t.Errorf("%+v.RowStride(%d, %d) = %d, want %d", tt.ps, tt.width, tt.bpp, got, tt.want)
		}
	}
}

func TestPixelStore_ReadSize(t *testing.T) {
	tests := []struct {
		ps                 PixelStore
		width, height, bpp int
		want               int
	}{
		{PixelStore{PackAlignment: 1}, 10, 10, 4, 400},
		{PixelStore{PackAlignment: 4}, 3, 2, 1, 4 + 3},
		{PixelStore{PackAlignment: 1, PackRowLength: 100}, 50, 50, 4, (49*100 + 50) * 4},
		{PixelStore{PackAlignment: 1}, 0, 10, 4, 0},
	}
	for _, tt := range tests {
		if got := tt.ps.ReadSize(tt.width, tt.height, tt.bpp); got != tt.want {
			t.Errorf("%+v.ReadSize(%d, %d, %d) = %d, want %d", tt.ps, tt.width, tt.height, tt.bpp, got, tt.want)
		}
	}
}

func TestPixelStoreScope(t *testing.T) {
	gc := newFakeContext(8, 8)
	gc.store = PixelStore{PackAlignment: 2, PackRowLength: 9}

	scope := acquirePixelStore(gc)
	if gc.store != (PixelStore{PackAlignment: 1}) {
		t.Errorf("store after acquire = %+v, want byte packing", gc.store)
	}
	scope.setRowLength(40)
	if gc.store != (PixelStore{PackAlignment: 1, PackRowLength: 40}) {
		t.Errorf("store after setRowLength = %+v", gc.store)
	}
	scope.release()
	if gc.store != (PixelStore{PackAlignment: 2, PackRowLength: 9}) {
		t.Errorf("store after release = %+v, want saved state", gc.store)
	}
}
