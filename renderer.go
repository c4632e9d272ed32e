// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"fmt"

	"github.com/gogpu/tiler/internal/grid"
	"seehuhn.de/go/geom/matrix"
)

// Default tile geometry.
const (
	DefaultTileWidth  = 256
	DefaultTileHeight = 256
	DefaultTileBorder = 0
)

// State is the position of a TileRenderer in its pass state machine.
//
//	Unconfigured --BeginTile--> TileActive --EndTile--> Ready --BeginTile--> TileActive
//	                                          \--EndTile (last tile)--> Exhausted
//
// SetTileSize and SetImageSize return a renderer to Unconfigured. Errors
// during EndTile abort the pass and also return to Unconfigured.
type State int

const (
	// StateUnconfigured means the grid must be recomputed by the next BeginTile.
	StateUnconfigured State = iota

	// StateReady means a pass is running and the next tile may begin.
	StateReady

	// StateTileActive means BeginTile was called and EndTile is pending.
	StateTileActive

	// StateExhausted means the last tile of the pass has ended.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "Unconfigured"
	case StateReady:
		return "Ready"
	case StateTileActive:
		return "TileActive"
	case StateExhausted:
		return "Exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TileRenderer renders an image larger than any single viewport by splitting
// it into tiles. The caller renders every tile between BeginTile and EndTile;
// EndTile reads the tile back and copies its inner (non-border) region into
// the destination buffers.
//
// A typical pass:
//
//	r, _ := tiler.New(tiler.WithImageSize(8000, 6000), tiler.WithTileSize(512, 512, 4))
//	r.SetImageBuffer(tiler.NewPixelBuffer(tiler.RGBA8, 8000, 6000))
//	for {
//	    if err := r.BeginTile(gc); err != nil { ... }
//	    drawScene(gc, r.Projection())
//	    if err := r.EndTile(gc); err != nil { ... }
//	    if r.EOT() { break }
//	}
//
// The assembled image is stored bottom row first; see ImageFromBuffer.
//
// TileRenderer is NOT safe for concurrent use. BeginTile and EndTile must be
// called from the goroutine that owns the graphics context.
type TileRenderer struct {
	imageWidth  int
	imageHeight int

	tileWidth  int
	tileHeight int
	border     int

	order   RowOrder
	offsetX int
	offsetY int

	tileBuffer  *PixelBuffer
	imageBuffer *PixelBuffer
	dest        Destination

	grid  grid.Grid
	state State

	// Cursor. index is -1 when no pass is running.
	index        int
	row          int
	column       int
	tileX        int
	tileY        int
	extentWidth  int
	extentHeight int
}

// New creates a TileRenderer with the default 256x256 tiles, no border and
// bottom-to-top row order, then applies opts in order.
func New(opts ...Option) (*TileRenderer, error) {
	r := &TileRenderer{
		tileWidth:  DefaultTileWidth,
		tileHeight: DefaultTileHeight,
		border:     DefaultTileBorder,
		order:      BottomToTop,
		dest:       NoDestination{},
		index:      -1,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetTileSize sets the tile size including border. The effective size of a
// tile is (width - 2*border) x (height - 2*border). The border is rendered
// but discarded at read-back, hiding seams from wide lines and points.
//
// Width and height must not exceed the viewport of the graphics context.
// Returns ErrInvalidTileSize if border < 0 or 2*border >= width or height.
// Between tiles a running pass is abandoned and the next BeginTile starts a
// new one. While a tile is active the change is refused with ErrTileActive
// instead of dropping to StateUnconfigured: the renderer stays in
// StateTileActive and the active tile can still be ended. Call Reset first
// to discard it.
func (r *TileRenderer) SetTileSize(width, height, border int) error {
	if r.state == StateTileActive {
		return fmt.Errorf("%w: cannot change tile size", ErrTileActive)
	}
	if err := grid.Validate(width, height, border); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTileSize, err)
	}
	r.tileWidth = width
	r.tileHeight = height
	r.border = border
	r.invalidate("tile size changed")
	return nil
}

// SetImageSize sets the size of the final image in pixels.
// Returns ErrInvalidImageSize for non-positive sizes. Like SetTileSize it
// abandons a pass between tiles and returns ErrTileActive, leaving the
// renderer in StateTileActive, between BeginTile and EndTile.
func (r *TileRenderer) SetImageSize(width, height int) error {
	if r.state == StateTileActive {
		return fmt.Errorf("%w: cannot change image size", ErrTileActive)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidImageSize, width, height)
	}
	r.imageWidth = width
	r.imageHeight = height
	r.invalidate("image size changed")
	return nil
}

// SetTileOffset sets an offset added to the tile position reported by
// Param(ParamCurrentTileX/Y), Tile and Projection. Use it to composite the
// image into a larger canvas. It takes effect at the next BeginTile.
func (r *TileRenderer) SetTileOffset(x, y int) {
	r.offsetX = x
	r.offsetY = y
}

// SetRowOrder sets the row traversal order. The default is BottomToTop.
// Returns ErrInvalidRowOrder for unknown values and ErrPassInProgress while
// a pass is running.
func (r *TileRenderer) SetRowOrder(order RowOrder) error {
	if !order.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRowOrder, int(order))
	}
	if r.state == StateReady || r.state == StateTileActive {
		return fmt.Errorf("%w: cannot change row order", ErrPassInProgress)
	}
	r.order = order
	return nil
}

// SetTileBuffer sets the buffer receiving each tile's inner region.
// Pass nil to stop tile read-back.
func (r *TileRenderer) SetTileBuffer(b *PixelBuffer) {
	r.tileBuffer = b
	r.dest = newDestination(r.tileBuffer, r.imageBuffer)
}

// SetImageBuffer sets the buffer receiving the assembled image.
// Pass nil to stop image read-back.
func (r *TileRenderer) SetImageBuffer(b *PixelBuffer) {
	r.imageBuffer = b
	r.dest = newDestination(r.tileBuffer, r.imageBuffer)
}

// Destination returns the configured read-back destinations.
func (r *TileRenderer) Destination() Destination {
	return r.dest
}

// State returns the current state of the pass state machine.
func (r *TileRenderer) State() State {
	return r.state
}

// EOT reports whether no pass is running: all tiles of the last pass have
// been rendered, or no pass was started since the last configuration change.
func (r *TileRenderer) EOT() bool {
	return r.state == StateUnconfigured || r.state == StateExhausted
}

// Reset abandons a running pass. The next BeginTile starts from tile 0.
// The pixel store of the graphics context is not touched: EndTile always
// restores it before returning.
func (r *TileRenderer) Reset() {
	r.invalidate("reset")
}

// rows returns the number of tile rows, or 0 before the grid is known.
func (r *TileRenderer) rows() int { return r.grid.Rows() }

// columns returns the number of tile columns, or 0 before the grid is known.
func (r *TileRenderer) columns() int { return r.grid.Columns() }

// invalidate moves the renderer to StateUnconfigured and recomputes the grid
// eagerly when the image size is known, so Param(ParamRows) and
// Param(ParamColumns) reflect the new geometry immediately.
func (r *TileRenderer) invalidate(reason string) {
	if r.state == StateReady {
		Logger().Warn("tiler: pass abandoned", "reason", reason, "tile", r.index)
	}
	r.state = StateUnconfigured
	r.resetCursor(-1)
	if r.imageWidth > 0 && r.imageHeight > 0 {
		if g, err := grid.New(r.imageWidth, r.imageHeight, r.tileWidth, r.tileHeight, r.border); err == nil {
			r.grid = g
		}
	}
}

// abort ends a pass after a failed EndTile.
func (r *TileRenderer) abort(err error) {
	Logger().Warn("tiler: pass aborted", "tile", r.index, "err", err)
	r.state = StateUnconfigured
	r.resetCursor(-1)
}

func (r *TileRenderer) resetCursor(index int) {
	r.index = index
	r.row = 0
	r.column = 0
	r.tileX = 0
	r.tileY = 0
	r.extentWidth = 0
	r.extentHeight = 0
}

// setup computes the grid and positions the cursor at the first tile.
func (r *TileRenderer) setup() error {
	g, err := grid.New(r.imageWidth, r.imageHeight, r.tileWidth, r.tileHeight, r.border)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTileSize, err)
	}
	r.grid = g
	r.resetCursor(0)
	r.state = StateReady
	Logger().Info("tiler: pass started",
		"image", fmt.Sprintf("%dx%d", r.imageWidth, r.imageHeight),
		"columns", g.Columns(),
		"rows", g.Rows(),
		"order", r.order.String())
	return nil
}

// validateContext checks that gc can render tiles of the configured size.
func (r *TileRenderer) validateContext(gc GraphicsContext) error {
	if gc == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidContext)
	}
	if l, ok := gc.(viewportLimiter); ok {
		maxW, maxH := l.MaxViewportSize()
		if r.tileWidth > maxW || r.tileHeight > maxH {
			return fmt.Errorf("%w: tile %dx%d exceeds viewport limit %dx%d",
				ErrInvalidContext, r.tileWidth, r.tileHeight, maxW, maxH)
		}
	}
	return nil
}

// BeginTile starts rendering the next tile. It sets the viewport of gc to
// the tile extent (border included) and updates the cursor; the caller then
// renders the scene using Projection or the values of Tile.
//
// The first BeginTile of a pass computes the grid. Returns
// ErrImageSizeNotSet before SetImageSize, ErrInvalidContext for unusable
// contexts and ErrTileActive if the previous tile was not ended.
func (r *TileRenderer) BeginTile(gc GraphicsContext) error {
	if r.imageWidth <= 0 || r.imageHeight <= 0 {
		return ErrImageSizeNotSet
	}
	if err := r.validateContext(gc); err != nil {
		return err
	}
	if r.state == StateTileActive {
		return fmt.Errorf("%w: tile %d has not been ended", ErrTileActive, r.index)
	}
	if r.state == StateUnconfigured || r.state == StateExhausted {
		if err := r.setup(); err != nil {
			return err
		}
	}

	row, column, ok := r.grid.Cell(r.index, r.order.gridOrder())
	if !ok {
		return fmt.Errorf("tiler: tile index %d outside %dx%d grid", r.index, r.columns(), r.rows())
	}
	w, h := r.grid.Extent(row, column)
	x, y := r.grid.Origin(row, column)

	r.row = row
	r.column = column
	r.tileX = x + r.offsetX
	r.tileY = y + r.offsetY
	r.extentWidth = w
	r.extentHeight = h

	gc.Viewport(0, 0, w, h)
	r.state = StateTileActive

	Logger().Debug("tiler: tile",
		"index", r.index,
		"column", column,
		"row", row,
		"x", r.tileX,
		"y", r.tileY,
		"width", w,
		"height", h)
	return nil
}

// EndTile finishes the active tile. It flushes gc, reads the tile's inner
// region into the configured destinations and advances the cursor. After the
// last tile EOT reports true.
//
// The pixel store of gc is saved before read-back and restored before
// EndTile returns, on success and on error.
//
// Returns ErrNoActiveTile without a preceding BeginTile and
// ErrBufferTooSmall if a destination cannot hold the tile; capacity is
// checked for all destinations before any pixel is read. Any error after
// the tile became active abandons the pass. Pixels of tiles completed
// earlier in the pass remain in the image buffer.
func (r *TileRenderer) EndTile(gc GraphicsContext) (err error) {
	if r.state != StateTileActive {
		return ErrNoActiveTile
	}
	if err := r.validateContext(gc); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			r.abort(err)
		}
	}()

	if err := gc.Flush(); err != nil {
		return fmt.Errorf("tiler: flush before read-back: %w", err)
	}

	scope := acquirePixelStore(gc)
	defer scope.release()

	if err := r.checkCapacity(); err != nil {
		return err
	}

	switch d := r.dest.(type) {
	case TileDestination:
		err = r.readTile(gc, d.Tile)
	case ImageDestination:
		err = r.readImage(gc, scope, d.Image)
	case BothDestinations:
		if err = r.readTile(gc, d.Tile); err == nil {
			err = r.readImage(gc, scope, d.Image)
		}
	}
	if err != nil {
		return err
	}

	r.index++
	if r.index >= r.grid.Count() {
		r.index = -1
		r.state = StateExhausted
		Logger().Info("tiler: pass finished", "tiles", r.grid.Count())
	} else {
		r.state = StateReady
	}
	return nil
}

// tileReadSize returns the bytes read into the tile buffer.
func (r *TileRenderer) tileReadSize(attr PixelAttributes) int {
	w, h := r.grid.InnerSize()
	return w * h * attr.BytesPerPixel
}

// imageReadRange returns the byte range [offset, end) of the image buffer
// written for the active tile.
func (r *TileRenderer) imageReadRange(attr PixelAttributes) (offset, end int) {
	innerW, innerH := r.grid.InnerSize()
	skipPixels := r.column * innerW
	skipRows := r.row * innerH
	offset = (skipPixels + skipRows*r.imageWidth) * attr.BytesPerPixel

	ps := PixelStore{PackAlignment: 1, PackRowLength: r.imageWidth}
	w := r.extentWidth - 2*r.border
	h := r.extentHeight - 2*r.border
	return offset, offset + ps.ReadSize(w, h, attr.BytesPerPixel)
}

// checkCapacity verifies every destination before any read-back.
func (r *TileRenderer) checkCapacity() error {
	var tile, image *PixelBuffer
	switch d := r.dest.(type) {
	case TileDestination:
		tile = d.Tile
	case ImageDestination:
		image = d.Image
	case BothDestinations:
		tile, image = d.Tile, d.Image
	}
	if tile != nil {
		need := r.tileReadSize(tile.Attributes())
		if tile.RequiresNewBuffer(need) {
			return fmt.Errorf("%w: tile buffer requires %d bytes, only had %v", ErrBufferTooSmall, need, tile)
		}
	}
	if image != nil {
		_, end := r.imageReadRange(image.Attributes())
		if image.RequiresNewBuffer(end) {
			return fmt.Errorf("%w: image buffer requires %d bytes, only had %v", ErrBufferTooSmall, end, image)
		}
	}
	return nil
}

// readTile reads the nominal inner region of the tile into buf.
func (r *TileRenderer) readTile(gc GraphicsContext, buf *PixelBuffer) error {
	attr := buf.Attributes()
	w, h := r.grid.InnerSize()
	size := r.tileReadSize(attr)

	buf.Clear()
	if err := gc.ReadPixels(r.border, r.border, w, h, attr, buf.Data()[:size]); err != nil {
		return fmt.Errorf("tiler: read tile %d: %w", r.index, err)
	}
	if err := gc.Flush(); err != nil {
		return fmt.Errorf("tiler: flush after tile read-back: %w", err)
	}
	buf.SetPosition(size)
	buf.Flip()
	return nil
}

// readImage reads the clipped inner region of the tile into its place in
// the image buffer. The pack row length is the image width, so each tile
// row lands on its image row.
func (r *TileRenderer) readImage(gc GraphicsContext, scope pixelStoreScope, buf *PixelBuffer) error {
	attr := buf.Attributes()
	offset, end := r.imageReadRange(attr)
	w := r.extentWidth - 2*r.border
	h := r.extentHeight - 2*r.border

	scope.setRowLength(r.imageWidth)

	buf.Clear()
	buf.SetPosition(offset)
	if err := gc.ReadPixels(r.border, r.border, w, h, attr, buf.Data()[offset:end]); err != nil {
		return fmt.Errorf("tiler: read tile %d into image: %w", r.index, err)
	}
	if err := gc.Flush(); err != nil {
		return fmt.Errorf("tiler: flush after image read-back: %w", err)
	}
	buf.SetPosition(end)
	buf.Flip()

	Logger().Debug("tiler: image read-back",
		"index", r.index,
		"offset", offset,
		"bytes", end-offset)
	return nil
}

// TileInfo describes the active tile.
type TileInfo struct {
	// Index is the linear tile index within the pass.
	Index int

	// Row and Column locate the tile in the grid; row 0 is the bottom.
	Row    int
	Column int

	// X and Y are the image position of the tile's inner region plus the
	// tile offset.
	X int
	Y int

	// Width and Height are the viewport size of the tile, border included.
	Width  int
	Height int

	// Border is the tile border in pixels.
	Border int

	// ImageWidth and ImageHeight are the size of the final image.
	ImageWidth  int
	ImageHeight int
}

// Tile returns the cursor of the active tile. Outside BeginTile/EndTile the
// fields describe the last tile begun.
func (r *TileRenderer) Tile() TileInfo {
	return TileInfo{
		Index:       r.index,
		Row:         r.row,
		Column:      r.column,
		X:           r.tileX,
		Y:           r.tileY,
		Width:       r.extentWidth,
		Height:      r.extentHeight,
		Border:      r.border,
		ImageWidth:  r.imageWidth,
		ImageHeight: r.imageHeight,
	}
}

// Projection returns the transform from canvas coordinates to the viewport
// of the active tile. Canvas coordinates are image pixel coordinates with
// the origin at the lower-left corner, shifted by the tile offset.
// Returns the identity matrix when no tile is active.
func (r *TileRenderer) Projection() matrix.Matrix {
	if r.state != StateTileActive {
		return matrix.Identity
	}
	return r.Tile().Projection()
}

// Projection returns the transform from canvas coordinates to the viewport
// of the tile.
func (t TileInfo) Projection() matrix.Matrix {
	return matrix.Identity.Translate(float64(t.Border-t.X), float64(t.Border-t.Y))
}

// Render runs a complete pass. For every tile it calls BeginTile, draw and
// EndTile. An error from draw abandons the pass and is returned with the
// tile index.
//
// Returns ErrPassInProgress if a pass started with BeginTile is running.
func (r *TileRenderer) Render(gc GraphicsContext, draw func(TileInfo) error) error {
	if r.state == StateReady || r.state == StateTileActive {
		return fmt.Errorf("%w: Render requires an idle renderer", ErrPassInProgress)
	}
	for {
		if err := r.BeginTile(gc); err != nil {
			return err
		}
		t := r.Tile()
		if err := draw(t); err != nil {
			r.abort(err)
			return fmt.Errorf("tiler: draw tile %d: %w", t.Index, err)
		}
		if err := r.EndTile(gc); err != nil {
			return err
		}
		if r.EOT() {
			return nil
		}
	}
}

// String describes the cursor and configuration.
func (r *TileRenderer) String() string {
	return fmt.Sprintf("TileRenderer[%s # %d: [%d][%d] / %dx%d, order %v, offset %d/%d, tile %dx%d brd %d, pos %d/%d size %dx%d, image %dx%d]",
		r.state, r.index, r.column, r.row, r.columns(), r.rows(),
		r.order, r.offsetX, r.offsetY, r.tileWidth, r.tileHeight, r.border,
		r.tileX, r.tileY, r.extentWidth, r.extentHeight,
		r.imageWidth, r.imageHeight)
}
