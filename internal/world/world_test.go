package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestApplyConfiguresTileGrid(t *testing.T) {
	w := New()
	var events []simcore.Event

	Apply(w, simcore.ConfigureTileGrid(12, 8, 3, 1), &events)

	grid := Grid(w)
	assert.Equal(t, simcore.TileCoord(12), grid.Columns())
	assert.Equal(t, simcore.TileCoord(8), grid.Rows())
	assert.Equal(t, uint32(3), grid.CellsPerTile())
	assert.Len(t, events, 1)
	assert.Equal(t, simcore.EventMazeLayoutChanged, events[0].Kind)
}

func TestBugsAreGeneratedWithinConfiguredGrid(t *testing.T) {
	w := New()
	var events []simcore.Event
	Apply(w, simcore.ConfigureTileGrid(8, 6, 2, 1), &events)

	grid := Grid(w)
	leftBorder := grid.WallThickness()
	topBorder := grid.WallThickness()
	playableColumns := 8*uint32(2) + leftBorder
	playableRows := 6*uint32(2) + topBorder
	_ = grid

	for _, snap := range BugSnapshots(w).Snapshots() {
		assert.GreaterOrEqual(t, snap.Cell.Column, leftBorder)
		assert.Less(t, snap.Cell.Column, playableColumns)
		assert.GreaterOrEqual(t, snap.Cell.Row, topBorder)
		assert.Less(t, snap.Cell.Row, playableRows)
	}
}

func TestBugGenerationLimitsToAvailableCells(t *testing.T) {
	w := New()
	var events []simcore.Event
	Apply(w, simcore.ConfigureTileGrid(1, 1, 4, 1), &events)

	grid := Grid(w)
	interiorColumns := uint32(1) * grid.CellsPerTile()
	interiorRows := uint32(1) * grid.CellsPerTile()
	available := uint64(interiorColumns) * uint64(interiorRows)
	maxBugs := int(available)
	if available == 0 {
		maxBugs = 0
	}
	expected := bugCount
	if maxBugs < expected {
		expected = maxBugs
	}
	assert.Len(t, BugSnapshots(w).Snapshots(), expected)
}

func TestBugGenerationIsDeterministicForSameGrid(t *testing.T) {
	first := New()
	second := New()
	var firstEvents, secondEvents []simcore.Event

	Apply(first, simcore.ConfigureTileGrid(12, 9, 2, 1), &firstEvents)
	Apply(second, simcore.ConfigureTileGrid(12, 9, 2, 1), &secondEvents)

	assert.Equal(t, BugSnapshots(first).Snapshots(), BugSnapshots(second).Snapshots())
}

func TestTargetAlignsWithCenterForOddColumns(t *testing.T) {
	w := New()
	var events []simcore.Event
	Apply(w, simcore.ConfigureTileGrid(9, 7, 3, 1), &events)

	grid := Grid(w)
	cells := TargetOpening(w).Cells()
	assert.Len(t, cells, int(grid.CellsPerTile()))

	centerTile := uint32(9) / 2
	startColumn := grid.WallThickness() + centerTile*grid.CellsPerTile()
	exitRow := grid.WallThickness() + uint32(7)*grid.CellsPerTile()

	for offset, cell := range cells {
		assert.Equal(t, startColumn+uint32(offset), cell.Column())
		assert.Equal(t, exitRow, cell.Row())
	}
}

func TestGoalForReturnsNearestTargetCell(t *testing.T) {
	w := New()
	var events []simcore.Event
	Apply(w, simcore.ConfigureTileGrid(5, 4, 2, 1), &events)

	goal, ok := GoalFor(w, simcore.NewCellCoord(0, 0))
	assert.True(t, ok)
	assert.Equal(t, simcore.NewCellCoord(5, 9), goal.Cell)
}

func TestConfigureBugStepAdjustsQuantum(t *testing.T) {
	w := New()
	var events []simcore.Event

	Apply(w, simcore.ConfigureBugStep(125*time.Millisecond), &events)
	assert.Empty(t, events)

	Apply(w, simcore.TickBy(125*time.Millisecond), &events)
	found := false
	for _, e := range events {
		if e.Kind == simcore.EventTimeAdvanced {
			found = true
		}
	}
	assert.True(t, found)

	ready := false
	for _, snap := range BugSnapshots(w).Snapshots() {
		if snap.ReadyForStep {
			ready = true
		}
	}
	assert.True(t, ready)
}

func TestPlaceTowerRejectedOutsideBuilderMode(t *testing.T) {
	w := New()
	var events []simcore.Event

	Apply(w, simcore.PlaceTower(simcore.TowerBasic, simcore.NewCellCoord(2, 2)), &events)

	assert.Len(t, events, 1)
	assert.Equal(t, simcore.EventTowerPlacementRejected, events[0].Kind)
	assert.Equal(t, simcore.PlacementInvalidMode, events[0].PlacementErr)
}

func TestPlaceAndRemoveTowerInBuilderMode(t *testing.T) {
	w := New()
	var events []simcore.Event

	Apply(w, simcore.ConfigureTileGrid(20, 20, 1, 1), &events)
	Apply(w, simcore.SetPlayMode(simcore.PlayModeBuilder), &events)

	grid := Grid(w)
	cellsPerTile := grid.CellsPerTile()
	occupancy := Occupancy(w)
	columns, rows := occupancy.Dimensions()

	var origin simcore.CellCoord
	found := false
	for row := uint32(0); row+1 < rows && !found; row += cellsPerTile {
		for column := uint32(0); column+1 < columns; column += cellsPerTile {
			free := true
			for dr := uint32(0); dr < 2 && free; dr++ {
				for dc := uint32(0); dc < 2; dc++ {
					if !occupancy.IsFree(simcore.NewCellCoord(column+dc, row+dr)) {
						free = false
						break
					}
				}
			}
			if free {
				origin = simcore.NewCellCoord(column, row)
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected to find a free 2x2 region in a 20x20 grid with 20 bugs")

	events = nil
	Apply(w, simcore.PlaceTower(simcore.TowerBasic, origin), &events)
	assert.Equal(t, simcore.EventTowerPlaced, events[0].Kind)
	tower := events[0].Tower

	events = nil
	Apply(w, simcore.RemoveTower(tower), &events)
	assert.Equal(t, simcore.EventTowerRemoved, events[0].Kind)
}
