package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestDirectionBetweenNeighbors(t *testing.T) {
	origin := simcore.NewCellCoord(3, 3)

	dir, ok := directionBetween(origin, simcore.NewCellCoord(3, 2))
	assert.True(t, ok)
	assert.Equal(t, simcore.DirectionNorth, dir)

	dir, ok = directionBetween(origin, simcore.NewCellCoord(4, 3))
	assert.True(t, ok)
	assert.Equal(t, simcore.DirectionEast, dir)

	dir, ok = directionBetween(origin, simcore.NewCellCoord(3, 4))
	assert.True(t, ok)
	assert.Equal(t, simcore.DirectionSouth, dir)

	dir, ok = directionBetween(origin, simcore.NewCellCoord(2, 3))
	assert.True(t, ok)
	assert.Equal(t, simcore.DirectionWest, dir)

	_, ok = directionBetween(origin, origin)
	assert.False(t, ok)
}

func TestHeuristicMatchesManhattanDistance(t *testing.T) {
	from := simcore.NewCellCoord(0, 0)
	goal := simcore.NewCellCoord(3, 4)
	assert.Equal(t, uint32(7), manhattan(from, goal))
}

func TestProvidedTargetsAreCached(t *testing.T) {
	var s System

	assert.Equal(t, 0, s.prepareWorkspace(0, 0, nil))
	assert.Empty(t, s.targets)
	assert.Equal(t, 0, s.activeNodes)

	targets := []simcore.CellCoord{simcore.NewCellCoord(1, 4)}
	assert.Equal(t, 15, s.prepareWorkspace(3, 4, targets))
	assert.Equal(t, targets, s.targets)

	alternate := []simcore.CellCoord{simcore.NewCellCoord(2, 2), simcore.NewCellCoord(2, 3)}
	assert.Equal(t, 16, s.prepareWorkspace(4, 3, alternate))
	assert.Equal(t, alternate, s.targets)
}

func TestHandleEmitsStepForReadyBugTowardGoal(t *testing.T) {
	var s System

	bugs := simcore.NewBugView([]simcore.BugSnapshot{
		{ID: 1, Cell: simcore.NewCellCoord(2, 2), ReadyForStep: true},
	})
	occupancy := simcore.NewOccupancyView(make([]*simcore.BugId, 5*5), 5, 5)
	targets := []simcore.CellCoord{simcore.NewCellCoord(2, 4)}
	events := []simcore.Event{simcore.TimeAdvanced(0)}

	var out []simcore.Command
	s.Handle(events, bugs, occupancy, targets, &out)

	assert.Len(t, out, 1)
	assert.Equal(t, simcore.CommandStepBug, out[0].Kind)
	assert.Equal(t, simcore.BugId(1), out[0].Bug)
	assert.Equal(t, simcore.DirectionSouth, out[0].Direction)
}
