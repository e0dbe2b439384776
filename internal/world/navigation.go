package world

import "github.com/toejough/maze-defence/internal/simcore"

const unreachable uint16 = ^uint16(0)

// navigationField is a dense grid of step distances, routed around blocked
// cells, seeded from the maze exits. It mirrors the world's occupancy dimensions and stores the
// reverse breadth-first search results that drive bug pathing. Distances
// default to unreachable for cells the search never touches, so callers
// can tell blocked cells apart from simply-distant ones.
type navigationField struct {
	width     uint32
	height    uint32
	distances []uint16
}

// rebuildWith recomputes the field from scratch via reverse BFS seeded at
// exits, treating any cell for which isBlocked returns true as a wall.
func (f *navigationField) rebuildWith(width, height uint32, exits []simcore.CellCoord, isBlocked func(simcore.CellCoord) bool) {
	cellCount := uint64(width) * uint64(height)
	if cellCount == 0 {
		f.width, f.height = width, height
		f.distances = nil
		return
	}

	if uint64(len(f.distances)) != cellCount {
		f.distances = make([]uint16, cellCount)
	}
	for i := range f.distances {
		f.distances[i] = unreachable
	}
	f.width, f.height = width, height

	queue := make([]simcore.CellCoord, 0, cellCount)

	for _, exit := range exits {
		if exit.Column >= width || exit.Row >= height {
			continue
		}
		if isBlocked(exit) {
			continue
		}
		idx, ok := f.index(exit)
		if !ok {
			continue
		}
		if f.distances[idx] == 0 {
			continue
		}
		f.distances[idx] = 0
		queue = append(queue, exit)
	}

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		currentIdx, ok := f.index(cell)
		if !ok {
			continue
		}
		currentDistance := f.distances[currentIdx]
		if currentDistance >= unreachable-1 {
			continue
		}
		nextDistance := currentDistance + 1

		for _, neighbor := range f.neighbors(cell) {
			if isBlocked(neighbor) {
				continue
			}
			neighborIdx, ok := f.index(neighbor)
			if !ok {
				continue
			}
			if f.distances[neighborIdx] <= nextDistance {
				continue
			}
			f.distances[neighborIdx] = nextDistance
			queue = append(queue, neighbor)
		}
	}
}

// neighbors enumerates the in-bounds 4-connected neighbours of cell in
// North, East, South, West order.
func (f *navigationField) neighbors(cell simcore.CellCoord) []simcore.CellCoord {
	candidates := make([]simcore.CellCoord, 0, 4)

	if cell.Row > 0 {
		candidates = append(candidates, simcore.NewCellCoord(cell.Column, cell.Row-1))
	}
	if cell.Column+1 < f.width {
		candidates = append(candidates, simcore.NewCellCoord(cell.Column+1, cell.Row))
	}
	if cell.Row+1 < f.height {
		candidates = append(candidates, simcore.NewCellCoord(cell.Column, cell.Row+1))
	}
	if cell.Column > 0 {
		candidates = append(candidates, simcore.NewCellCoord(cell.Column-1, cell.Row))
	}

	return candidates
}

func (f *navigationField) index(cell simcore.CellCoord) (int, bool) {
	if cell.Column >= f.width || cell.Row >= f.height {
		return 0, false
	}
	return int(cell.Row)*int(f.width) + int(cell.Column), true
}

// distance returns the recorded distance for cell, if it lies within the
// field's bounds.
func (f *navigationField) distance(cell simcore.CellCoord) (uint16, bool) {
	idx, ok := f.index(cell)
	if !ok {
		return 0, false
	}
	return f.distances[idx], true
}

func (f *navigationField) view() simcore.NavigationFieldView {
	return simcore.NewNavigationFieldView(f.distances, f.width, f.height)
}
