package world

import "github.com/toejough/maze-defence/internal/simcore"

// TargetCell is a single discrete cell that composes the opening carved
// into the perimeter wall.
type TargetCell struct {
	cell simcore.CellCoord
}

// NewTargetCell constructs a target cell at the given column and row.
func NewTargetCell(column, row uint32) TargetCell {
	return TargetCell{cell: simcore.NewCellCoord(column, row)}
}

// Column reports the target cell's column.
func (t TargetCell) Column() uint32 { return t.cell.Column }

// Row reports the target cell's row.
func (t TargetCell) Row() uint32 { return t.cell.Row }

// AsCell returns the target cell as a plain CellCoord.
func (t TargetCell) AsCell() simcore.CellCoord { return t.cell }

// Target is the opening carved into the perimeter wall that connects the
// maze interior to the outside world.
type Target struct {
	cells []TargetCell
}

func targetAlignedWithGrid(grid TileGrid) Target {
	return Target{cells: targetCells(grid)}
}

// Cells returns the cells that compose the target opening.
func (t Target) Cells() []TargetCell { return t.cells }

// Wall describes the perimeter wall surrounding the tile grid.
type Wall struct {
	target Target
}

// NewWall constructs a wall aligned with the provided grid dimensions.
func NewWall(grid TileGrid) Wall {
	return Wall{target: targetAlignedWithGrid(grid)}
}

// TargetOpening returns the opening carved into the wall.
func (w Wall) TargetOpening() Target { return w.target }

func targetCells(grid TileGrid) []TargetCell {
	if grid.interiorCellColumns() == 0 || grid.interiorCellRows() == 0 {
		return nil
	}

	start, end, ok := grid.exitColumnRange()
	if !ok || start >= end {
		return nil
	}

	exitRow := grid.exitRow()
	cells := make([]TargetCell, 0, end-start)
	for column := start; column < end; column++ {
		cells = append(cells, NewTargetCell(column, exitRow))
	}
	return cells
}

func targetCellsFromWall(wall Wall) []simcore.CellCoord {
	opening := wall.TargetOpening().Cells()
	cells := make([]simcore.CellCoord, 0, len(opening))
	for _, c := range opening {
		cells = append(cells, c.AsCell())
	}
	return cells
}
