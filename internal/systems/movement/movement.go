// Package movement plans per-tick bug paths toward their selected exit and
// emits the StepBug commands that carry bugs across the maze one cell at a
// time. It runs an A* search per bug, ready each tick a TimeAdvanced event
// was observed, reusing a workspace of scratch buffers across calls the way
// the world's own occupancy grid reuses its backing slice.
package movement

import (
	"container/heap"

	"github.com/toejough/maze-defence/internal/simcore"
)

// System is a pure reactor over world events and views: it never mutates
// world state directly, only proposes commands for the driver to apply.
type System struct {
	frontier          nodeHeap
	cameFrom          []simcore.CellCoord
	hasCameFrom       []bool
	gScore            []uint32
	targets           []simcore.CellCoord
	preparedColumns   uint32
	preparedRows      uint32
	haveDimensions    bool
	activeNodes       int
}

// Handle consumes events and immutable views to append StepBug commands to
// out for every bug that has accumulated enough time and has a viable next
// hop toward its goal.
func (s *System) Handle(events []simcore.Event, bugs simcore.BugView, occupancy simcore.OccupancyView, targets []simcore.CellCoord, out *[]simcore.Command) {
	columns, rows := occupancy.Dimensions()
	nodeCount := s.prepareWorkspace(columns, rows, targets)
	if nodeCount == 0 {
		return
	}

	advanced := false
	for _, e := range events {
		if e.Kind == simcore.EventTimeAdvanced {
			advanced = true
			break
		}
	}
	if !advanced {
		return
	}

	s.emitStepCommands(bugs, occupancy, columns, rows, out)
}

func (s *System) emitStepCommands(bugs simcore.BugView, occupancy simcore.OccupancyView, columns, rows uint32, out *[]simcore.Command) {
	for _, bug := range bugs.Snapshots() {
		if !bug.ReadyForStep {
			continue
		}

		goal, ok := simcore.SelectGoal(bug.Cell, s.targets)
		if !ok || bug.Cell == goal.Cell {
			continue
		}

		nextCell, ok := s.planNextHop(bug.Cell, goal, columns, rows)
		if !ok {
			continue
		}

		if !cellAvailableFor(nextCell, bug.ID, occupancy) {
			continue
		}

		if direction, ok := directionBetween(bug.Cell, nextCell); ok {
			*out = append(*out, simcore.StepBug(bug.ID, direction))
		}
	}
}

func (s *System) rowsWithExit(rows uint32) uint32 {
	maxTargetRow := rows
	found := false
	for _, t := range s.targets {
		if !found || t.Row > maxTargetRow {
			maxTargetRow = t.Row
			found = true
		}
	}
	if !found {
		maxTargetRow = rows
	}
	return maxTargetRow + 1
}

func (s *System) planNextHop(start simcore.CellCoord, goal simcore.Goal, columns, rows uint32) (simcore.CellCoord, bool) {
	rowsWithExit := s.rowsWithExit(rows)
	startIndex, ok := cellIndex(columns, rowsWithExit, start)
	if !ok {
		return simcore.CellCoord{}, false
	}

	s.resetWorkspace()
	s.gScore[startIndex] = 0
	heap.Push(&s.frontier, node{cell: start, gCost: 0, fCost: manhattan(start, goal.Cell)})

	for s.frontier.Len() > 0 {
		current := heap.Pop(&s.frontier).(node)
		if current.cell == goal.Cell {
			return s.reconstructFirstHop(start, goal.Cell, columns, rowsWithExit)
		}

		for _, neighbor := range enumerateNeighbors(current.cell, columns, rows, goal.Cell) {
			neighborIndex, ok := cellIndex(columns, rowsWithExit, neighbor)
			if !ok {
				continue
			}

			tentative := current.gCost + 1
			if tentative >= s.gScore[neighborIndex] {
				continue
			}

			s.cameFrom[neighborIndex] = current.cell
			s.hasCameFrom[neighborIndex] = true
			s.gScore[neighborIndex] = tentative
			heap.Push(&s.frontier, node{cell: neighbor, gCost: tentative, fCost: tentative + manhattan(neighbor, goal.Cell)})
		}
	}

	return simcore.CellCoord{}, false
}

func (s *System) reconstructFirstHop(start, goal simcore.CellCoord, columns, rows uint32) (simcore.CellCoord, bool) {
	current := goal
	for {
		idx, ok := cellIndex(columns, rows, current)
		if !ok || !s.hasCameFrom[idx] {
			return simcore.CellCoord{}, false
		}
		previous := s.cameFrom[idx]
		if previous == start {
			return current, true
		}
		current = previous
	}
}

func (s *System) prepareWorkspace(columns, rows uint32, targets []simcore.CellCoord) int {
	if len(targets) == 0 {
		s.targets = s.targets[:0]
		s.preparedColumns, s.preparedRows, s.haveDimensions = columns, rows, true
		s.activeNodes = 0
		return 0
	}

	if !s.haveDimensions || s.preparedColumns != columns || s.preparedRows != rows || !sameTargets(s.targets, targets) {
		s.targets = append(s.targets[:0], targets...)
		s.preparedColumns, s.preparedRows, s.haveDimensions = columns, rows, true
	}

	rowsWithExit := s.rowsWithExit(rows)
	nodeCount := int(uint64(columns) * uint64(rowsWithExit))
	if nodeCount > len(s.gScore) {
		grown := make([]uint32, nodeCount)
		copy(grown, s.gScore)
		for i := len(s.gScore); i < nodeCount; i++ {
			grown[i] = ^uint32(0)
		}
		s.gScore = grown

		cameFrom := make([]simcore.CellCoord, nodeCount)
		copy(cameFrom, s.cameFrom)
		s.cameFrom = cameFrom

		hasCameFrom := make([]bool, nodeCount)
		copy(hasCameFrom, s.hasCameFrom)
		s.hasCameFrom = hasCameFrom
	}
	s.activeNodes = nodeCount
	return nodeCount
}

func (s *System) resetWorkspace() {
	s.frontier = s.frontier[:0]
	for i := 0; i < s.activeNodes && i < len(s.gScore); i++ {
		s.gScore[i] = ^uint32(0)
		s.hasCameFrom[i] = false
	}
}

func sameTargets(a, b []simcore.CellCoord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cellAvailableFor(cell simcore.CellCoord, bugID simcore.BugId, occupancy simcore.OccupancyView) bool {
	occupant, ok := occupancy.Occupant(cell)
	if !ok {
		return true
	}
	return occupant == bugID
}

func directionBetween(from, to simcore.CellCoord) (simcore.Direction, bool) {
	columnDiff := absDiff(from.Column, to.Column)
	rowDiff := absDiff(from.Row, to.Row)
	if columnDiff+rowDiff != 1 {
		return 0, false
	}

	if columnDiff == 1 {
		if to.Column > from.Column {
			return simcore.DirectionEast, true
		}
		return simcore.DirectionWest, true
	}
	if to.Row > from.Row {
		return simcore.DirectionSouth, true
	}
	return simcore.DirectionNorth, true
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func manhattan(cell, goal simcore.CellCoord) uint32 {
	return cell.ManhattanDistance(goal)
}

func cellIndex(columns, rows uint32, cell simcore.CellCoord) (int, bool) {
	if cell.Column >= columns || cell.Row >= rows {
		return 0, false
	}
	return int(cell.Row)*int(columns) + int(cell.Column), true
}

// enumerateNeighbors lists the in-search neighbours of cell in North, West,
// East, South order, plus a synthetic edge into the hidden exit row when
// cell sits directly above the goal column just past the grid's last row.
func enumerateNeighbors(cell simcore.CellCoord, columns, rows uint32, goal simcore.CellCoord) []simcore.CellCoord {
	var neighbors []simcore.CellCoord
	if cell.Row >= rows {
		return neighbors
	}

	if cell.Row > 0 {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column, cell.Row-1))
	}
	if cell.Column > 0 {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column-1, cell.Row))
	}
	if cell.Column+1 < columns {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column+1, cell.Row))
	}
	if cell.Row+1 < rows {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column, cell.Row+1))
	} else if cell.Row+1 == rows && goal.Row >= rows && cell.Column == goal.Column {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column, rows))
	}

	return neighbors
}
