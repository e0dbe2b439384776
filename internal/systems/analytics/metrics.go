package analytics

import "github.com/toejough/maze-defence/internal/simcore"

const unreachable = ^uint16(0)

// SelectShortestNavigationPath follows the navigation field's distance
// gradient from each spawner down to zero, returning the shortest resulting
// route. The navigation field already stores monotonically decreasing
// distances seeded from the exits, so no BFS needs to run here; we just walk
// downhill. The winning path is cached in scratch so later metric passes can
// reuse it without retracing.
func SelectShortestNavigationPath(navigation simcore.NavigationFieldView, layout simcore.AnalyticsLayoutSnapshot, scratch *Scratch) ([]simcore.CellCoord, bool) {
	scratch.SetPath(scratch.Path()[:0])

	var best []simcore.CellCoord
	haveBest := false

	for _, spawner := range layout.Spawners {
		working, ok := tracePath(spawner, navigation)
		if !ok {
			continue
		}

		if !haveBest || len(working) < len(best) {
			best = working
			haveBest = true
		}
	}

	if !haveBest {
		return nil, false
	}

	scratch.SetPath(best)
	return scratch.Path(), true
}

func tracePath(start simcore.CellCoord, navigation simcore.NavigationFieldView) ([]simcore.CellCoord, bool) {
	current := start
	currentDistance, ok := navigation.Distance(current)
	if !ok || currentDistance == uint16(unreachable) {
		return nil, false
	}

	var out []simcore.CellCoord

	for {
		out = append(out, current)

		if currentDistance == 0 {
			return out, true
		}

		bestDistance := currentDistance
		nextCell, haveNext := current, false

		for _, neighbor := range neighborsOf(current, navigation.Width, navigation.Height) {
			distance, ok := navigation.Distance(neighbor)
			if !ok || distance >= bestDistance {
				continue
			}
			bestDistance = distance
			nextCell = neighbor
			haveNext = true
		}

		if !haveNext {
			return nil, false
		}

		current = nextCell
		currentDistance = bestDistance
	}
}

func neighborsOf(cell simcore.CellCoord, width, height uint32) []simcore.CellCoord {
	neighbors := make([]simcore.CellCoord, 0, 4)

	if cell.Row > 0 {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column, cell.Row-1))
	}
	if cell.Column+1 < width {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column+1, cell.Row))
	}
	if cell.Row+1 < height {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column, cell.Row+1))
	}
	if cell.Column > 0 {
		neighbors = append(neighbors, simcore.NewCellCoord(cell.Column-1, cell.Row))
	}

	return neighbors
}

// ComputeStatsReport derives the published stats report from the current
// navigation field, analytics inputs, and tower cooldown state.
func ComputeStatsReport(navigation simcore.NavigationFieldView, inputs simcore.AnalyticsInputs, cooldowns simcore.TowerCooldownView, cellsPerTile uint32, scratch *Scratch) simcore.StatsReport {
	path, _ := SelectShortestNavigationPath(navigation, inputs.Layout, scratch)

	return simcore.StatsReport{
		CoverageBps: coverageBasisPoints(navigation, inputs.Towers),
		FiringBps:   firingBasisPoints(inputs.Towers, cooldowns),
		PathLength:  uint32(len(path)),
		TowerCount:  uint32(len(inputs.Towers.Snapshots)),
		TotalDps:    totalDamagePerSecond(inputs.Towers),
	}
}

func coverageBasisPoints(navigation simcore.NavigationFieldView, towers simcore.TowerAnalyticsView) uint32 {
	totalReachable := 0
	covered := 0

	for row := uint32(0); row < navigation.Height; row++ {
		for column := uint32(0); column < navigation.Width; column++ {
			cell := simcore.NewCellCoord(column, row)
			distance, ok := navigation.Distance(cell)
			if !ok || distance == uint16(unreachable) {
				continue
			}
			totalReachable++

			if cellWithinAnyTowerRange(cell, towers) {
				covered++
			}
		}
	}

	if totalReachable == 0 {
		return 0
	}

	return uint32((uint64(covered) * 10_000) / uint64(totalReachable))
}

func cellWithinAnyTowerRange(cell simcore.CellCoord, towers simcore.TowerAnalyticsView) bool {
	for _, tower := range towers.Snapshots {
		if withinRange(cell, tower) {
			return true
		}
	}
	return false
}

func withinRange(cell simcore.CellCoord, tower simcore.TowerAnalyticsSnapshot) bool {
	centerColumn := int64(tower.Region.Origin.Column)*2 + int64(tower.Region.Size.Width)
	centerRow := int64(tower.Region.Origin.Row)*2 + int64(tower.Region.Size.Height)

	dx := int64(cell.Column)*2 + 1 - centerColumn
	dy := int64(cell.Row)*2 + 1 - centerRow
	radiusHalfCells := int64(tower.RangeCells) * 2

	return dx*dx+dy*dy <= radiusHalfCells*radiusHalfCells
}

func firingBasisPoints(towers simcore.TowerAnalyticsView, cooldowns simcore.TowerCooldownView) uint32 {
	if len(towers.Snapshots) == 0 {
		return 0
	}

	ready := 0
	for _, tower := range towers.Snapshots {
		if snapshot, ok := cooldowns.Find(tower.Tower); !ok || snapshot.ReadyIn <= 0 {
			ready++
		}
	}

	return uint32((uint64(ready) * 10_000) / uint64(len(towers.Snapshots)))
}

func totalDamagePerSecond(towers simcore.TowerAnalyticsView) uint32 {
	var total uint64
	for _, tower := range towers.Snapshots {
		total += uint64(tower.DamagePerSecond)
	}
	if total > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(total)
}
