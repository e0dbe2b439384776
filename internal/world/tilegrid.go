// Package world owns the authoritative Maze Defence simulation state: the
// tile grid, perimeter wall, bug population, occupancy grid, navigation
// field, and tower registry. Apply is the single entry point that mutates
// state in response to a simcore.Command and reports what happened as
// simcore.Events.
package world

import "github.com/toejough/maze-defence/internal/simcore"

// bottomBorderCellLayers is always zero: the target opening breaches the
// bottom edge of the grid, so that edge carries no wall thickness.
const bottomBorderCellLayers uint32 = 0

// DefaultWallThickness is the border thickness used when a caller does not
// configure one explicitly.
const DefaultWallThickness uint32 = 1

// TileGrid describes the discrete tile layout of the world: how many tiles
// wide and tall it is, the tile's presentation size, how many navigation
// cells are carved per tile edge, and how many cell layers the perimeter
// wall occupies on the left, right, and top edges.
type TileGrid struct {
	columns       simcore.TileCoord
	rows          simcore.TileCoord
	tileLength    float32
	cellsPerTile  uint32
	wallThickness uint32
}

// NewTileGrid constructs a tile grid description. cellsPerTile and
// wallThickness are each clamped to at least one, mirroring the non-zero
// invariant the grid was distilled from.
func NewTileGrid(columns, rows simcore.TileCoord, tileLength float32, cellsPerTile, wallThickness uint32) TileGrid {
	if cellsPerTile == 0 {
		cellsPerTile = 1
	}
	if wallThickness == 0 {
		wallThickness = DefaultWallThickness
	}
	return TileGrid{
		columns:       columns,
		rows:          rows,
		tileLength:    tileLength,
		cellsPerTile:  cellsPerTile,
		wallThickness: wallThickness,
	}
}

// Columns reports the number of tile columns.
func (g TileGrid) Columns() simcore.TileCoord { return g.columns }

// Rows reports the number of tile rows.
func (g TileGrid) Rows() simcore.TileCoord { return g.rows }

// TileLength reports the side length of a tile in presentation units.
func (g TileGrid) TileLength() float32 { return g.tileLength }

// CellsPerTile reports how many navigation cells span one tile edge.
func (g TileGrid) CellsPerTile() uint32 { return g.cellsPerTile }

// WallThickness reports how many cell layers the perimeter wall occupies
// on the left, right, and top edges of the grid.
func (g TileGrid) WallThickness() uint32 { return g.wallThickness }

// Width reports the grid's total width in presentation units.
func (g TileGrid) Width() float32 { return float32(g.columns) * g.tileLength }

// Height reports the grid's total height in presentation units.
func (g TileGrid) Height() float32 { return float32(g.rows) * g.tileLength }

func (g TileGrid) interiorCellColumns() uint32 {
	return saturatingMul(uint32(g.columns), g.cellsPerTile)
}

func (g TileGrid) interiorCellRows() uint32 {
	return saturatingMul(uint32(g.rows), g.cellsPerTile)
}

func (g TileGrid) interiorOriginColumn() uint32 { return g.wallThickness }

func (g TileGrid) interiorOriginRow() uint32 { return g.wallThickness }

// TotalCellColumns reports the full cell width of the grid, including the
// side border layers. Zero when the interior is empty.
func (g TileGrid) TotalCellColumns() uint32 {
	interior := g.interiorCellColumns()
	if interior == 0 {
		return 0
	}
	return saturatingAdd(interior, saturatingMul(g.wallThickness, 2))
}

// TotalCellRows reports the full cell height of the grid, including the
// top and bottom border layers. Zero when the interior is empty.
func (g TileGrid) TotalCellRows() uint32 {
	interior := g.interiorCellRows()
	if interior == 0 {
		return 0
	}
	return saturatingAdd(interior, g.wallThickness+bottomBorderCellLayers)
}

// exitRow is the hidden row just past the grid's interior where the
// perimeter wall's target opening sits.
func (g TileGrid) exitRow() uint32 {
	return saturatingAdd(g.interiorOriginRow(), g.interiorCellRows())
}

// exitColumnRange reports the half-open [start, end) column span of the
// target opening, centred on the grid's middle tile column.
func (g TileGrid) exitColumnRange() (start, end uint32, ok bool) {
	tileColumns := uint32(g.columns)
	if tileColumns == 0 || uint32(g.rows) == 0 {
		return 0, 0, false
	}

	var centerTile uint32
	if tileColumns%2 == 0 {
		centerTile = (tileColumns - 1) / 2
	} else {
		centerTile = tileColumns / 2
	}

	cellsPerTile := g.cellsPerTile
	start = saturatingAdd(g.interiorOriginColumn(), saturatingMul(centerTile, cellsPerTile))
	end = saturatingAdd(start, cellsPerTile)
	return start, end, true
}

func saturatingAdd(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

func saturatingMul(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/a != b {
		return ^uint32(0)
	}
	return product
}
