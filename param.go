// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import "fmt"

// ParamName identifies a value readable with TileRenderer.Param.
type ParamName int

// Parameters readable with TileRenderer.Param.
const (
	ParamTileWidth ParamName = iota + 1
	ParamTileHeight
	ParamTileBorder
	ParamImageWidth
	ParamImageHeight
	ParamRows
	ParamColumns
	ParamCurrentRow
	ParamCurrentColumn
	ParamCurrentTileX
	ParamCurrentTileY
	ParamCurrentTileWidth
	ParamCurrentTileHeight
	ParamRowOrder
)

var paramNames = map[ParamName]string{
	ParamTileWidth:         "TileWidth",
	ParamTileHeight:        "TileHeight",
	ParamTileBorder:        "TileBorder",
	ParamImageWidth:        "ImageWidth",
	ParamImageHeight:       "ImageHeight",
	ParamRows:              "Rows",
	ParamColumns:           "Columns",
	ParamCurrentRow:        "CurrentRow",
	ParamCurrentColumn:     "CurrentColumn",
	ParamCurrentTileX:      "CurrentTileX",
	ParamCurrentTileY:      "CurrentTileY",
	ParamCurrentTileWidth:  "CurrentTileWidth",
	ParamCurrentTileHeight: "CurrentTileHeight",
	ParamRowOrder:          "RowOrder",
}

func (p ParamName) String() string {
	if s, ok := paramNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ParamName(%d)", int(p))
}

// Param returns the current value of p. It never changes renderer state.
// Returns ErrInvalidParam for unknown names.
func (r *TileRenderer) Param(p ParamName) (int, error) {
	switch p {
	case ParamTileWidth:
		return r.tileWidth, nil
	case ParamTileHeight:
		return r.tileHeight, nil
	case ParamTileBorder:
		return r.border, nil
	case ParamImageWidth:
		return r.imageWidth, nil
	case ParamImageHeight:
		return r.imageHeight, nil
	case ParamRows:
		return r.rows(), nil
	case ParamColumns:
		return r.columns(), nil
	case ParamCurrentRow:
		return r.row, nil
	case ParamCurrentColumn:
		return r.column, nil
	case ParamCurrentTileX:
		return r.tileX, nil
	case ParamCurrentTileY:
		return r.tileY, nil
	case ParamCurrentTileWidth:
		return r.extentWidth, nil
	case ParamCurrentTileHeight:
		return r.extentHeight, nil
	case ParamRowOrder:
		return int(r.order), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidParam, p)
	}
}
