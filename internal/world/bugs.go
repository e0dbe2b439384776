package world

import (
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
)

const (
	bugGenerationSeed uint64 = 0x42f0_e1eb_d4a5_3c21
	bugCount                 = 20
)

// bugColors cycles across newly generated bugs so the initial population
// reads as visually distinct without needing per-bug configuration.
var bugColors = [4]simcore.BugColor{
	simcore.NewBugColor(0x2f, 0x95, 0x32),
	simcore.NewBugColor(0xc8, 0x2a, 0x36),
	simcore.NewBugColor(0xff, 0xc1, 0x07),
	simcore.NewBugColor(0x58, 0x47, 0xff),
}

// bug is the authoritative mutable record the world keeps for a single
// bug: its identity, current cell, appearance, health, and the time it has
// accumulated toward its next step.
type bug struct {
	id          simcore.BugId
	cell        simcore.CellCoord
	color       simcore.BugColor
	health      simcore.Health
	accumulator time.Duration
}

func (b *bug) readyForStep(stepQuantum time.Duration) bool {
	return b.accumulator >= stepQuantum
}

type bugSeed struct {
	id    simcore.BugId
	cell  simcore.CellCoord
	color simcore.BugColor
}

// nextRandom advances a 64-bit LCG state. The multiplier and increment
// match the world's historical bug-shuffle stream; the spawning system
// runs an independent stream with the same constants but its own state.
func nextRandom(state uint64) uint64 {
	return state*6364136223846793005 + 1
}

// generateBugs deterministically seeds the initial bug population by
// Fisher-Yates shuffling every interior cell and taking the first
// bugCount entries, assigning colors round-robin.
func generateBugs(grid TileGrid) []bugSeed {
	columnCount := grid.interiorCellColumns()
	rowCount := grid.interiorCellRows()
	if columnCount == 0 || rowCount == 0 {
		return nil
	}

	availableCells := uint64(columnCount) * uint64(rowCount)
	targetCount := uint64(bugCount)
	if availableCells < targetCount {
		targetCount = availableCells
	}

	cells := make([]simcore.CellCoord, 0, availableCells)
	columnOffset := grid.interiorOriginColumn()
	rowOffset := grid.interiorOriginRow()
	for row := uint32(0); row < rowCount; row++ {
		for column := uint32(0); column < columnCount; column++ {
			cells = append(cells, simcore.NewCellCoord(columnOffset+column, rowOffset+row))
		}
	}

	rngState := bugGenerationSeed
	for index := len(cells) - 1; index >= 1; index-- {
		rngState = nextRandom(rngState)
		swapIndex := int(rngState % uint64(index+1))
		cells[index], cells[swapIndex] = cells[swapIndex], cells[index]
	}

	bugs := make([]bugSeed, 0, targetCount)
	for index := uint64(0); index < targetCount; index++ {
		color := bugColors[int(index)%len(bugColors)]
		bugs = append(bugs, bugSeed{id: simcore.BugId(index), cell: cells[index], color: color})
	}
	return bugs
}

// advanceCell computes the cell a bug ends up in after stepping in
// direction, honouring grid bounds and the special south-into-the-target
// edge that lets a bug leave through the exit row.
func advanceCell(from simcore.CellCoord, direction simcore.Direction, columns, rows uint32, targetColumns []uint32) (simcore.CellCoord, bool) {
	switch direction {
	case simcore.DirectionNorth:
		if from.Row == 0 {
			return simcore.CellCoord{}, false
		}
		return simcore.NewCellCoord(from.Column, from.Row-1), true
	case simcore.DirectionEast:
		next := from.Column + 1
		if next < columns {
			return simcore.NewCellCoord(next, from.Row), true
		}
		return simcore.CellCoord{}, false
	case simcore.DirectionSouth:
		next := from.Row + 1
		if next < rows {
			return simcore.NewCellCoord(from.Column, next), true
		}
		if next == rows {
			for _, column := range targetColumns {
				if column == from.Column {
					return simcore.NewCellCoord(from.Column, rows), true
				}
			}
		}
		return simcore.CellCoord{}, false
	case simcore.DirectionWest:
		if from.Column == 0 {
			return simcore.CellCoord{}, false
		}
		return simcore.NewCellCoord(from.Column-1, from.Row), true
	default:
		return simcore.CellCoord{}, false
	}
}
