package world

import "github.com/toejough/maze-defence/internal/simcore"

// occupancyGrid is a dense, row-major grid tracking which bug (if any)
// occupies each cell. A nil slot is free.
type occupancyGrid struct {
	columns uint32
	rows    uint32
	cells   []*simcore.BugId
}

func newOccupancyGrid(columns, rows uint32) *occupancyGrid {
	capacity := uint64(columns) * uint64(rows)
	return &occupancyGrid{columns: columns, rows: rows, cells: make([]*simcore.BugId, capacity)}
}

func (g *occupancyGrid) fillWith(bugs []*bug) {
	for i := range g.cells {
		g.cells[i] = nil
	}
	for _, b := range bugs {
		if idx, ok := g.index(b.cell); ok {
			id := b.id
			g.cells[idx] = &id
		}
	}
}

func (g *occupancyGrid) canEnter(cell simcore.CellCoord) bool {
	idx, ok := g.index(cell)
	if !ok {
		return true
	}
	return g.cells[idx] == nil
}

func (g *occupancyGrid) occupy(id simcore.BugId, cell simcore.CellCoord) {
	if idx, ok := g.index(cell); ok {
		v := id
		g.cells[idx] = &v
	}
}

func (g *occupancyGrid) vacate(cell simcore.CellCoord) {
	if idx, ok := g.index(cell); ok {
		g.cells[idx] = nil
	}
}

func (g *occupancyGrid) index(cell simcore.CellCoord) (int, bool) {
	if cell.Column >= g.columns || cell.Row >= g.rows {
		return 0, false
	}
	return int(cell.Row)*int(g.columns) + int(cell.Column), true
}

func (g *occupancyGrid) dimensions() (uint32, uint32) { return g.columns, g.rows }

func (g *occupancyGrid) view() simcore.OccupancyView {
	return simcore.NewOccupancyView(g.cells, g.columns, g.rows)
}
