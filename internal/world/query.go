package world

import "github.com/toejough/maze-defence/internal/simcore"

// WelcomeBanner returns the banner adapters may display to players.
func WelcomeBanner(w *World) string { return w.banner }

// Grid provides read-only access to the world's tile grid definition.
func Grid(w *World) TileGrid { return w.tileGrid }

// WallState provides read-only access to the wall guarding the maze
// perimeter.
func WallState(w *World) Wall { return w.wall }

// TargetOpening provides read-only access to the target carved into the
// perimeter wall.
func TargetOpening(w *World) Target { return w.wall.TargetOpening() }

// TargetCells enumerates the wall target cells bugs should attempt to
// reach.
func TargetCells(w *World) []simcore.CellCoord {
	return append([]simcore.CellCoord(nil), w.targets...)
}

// SpawnerCells enumerates the interior cells along the top edge of the
// grid, opposite the exit, where new bugs may be introduced.
func SpawnerCells(w *World) []simcore.CellCoord {
	return SpawnerCellsForGrid(w.tileGrid)
}

// SpawnerCellsForGrid computes the same spawner row as SpawnerCells,
// directly from a tile grid description, so callers can resolve spawner
// cells before a World exists (e.g. while assembling a driver's wave
// configuration at boot).
func SpawnerCellsForGrid(grid TileGrid) []simcore.CellCoord {
	columnCount := grid.interiorCellColumns()
	if columnCount == 0 {
		return nil
	}
	columnOffset := grid.interiorOriginColumn()
	row := grid.interiorOriginRow()

	cells := make([]simcore.CellCoord, 0, columnCount)
	for column := uint32(0); column < columnCount; column++ {
		cells = append(cells, simcore.NewCellCoord(columnOffset+column, row))
	}
	return cells
}

// GoalFor computes the canonical goal for an entity starting from origin.
func GoalFor(w *World, origin simcore.CellCoord) (simcore.Goal, bool) {
	return simcore.SelectGoal(origin, w.targets)
}

// BugSnapshots captures a read-only, id-ordered view of the bugs inhabiting
// the maze.
func BugSnapshots(w *World) simcore.BugView {
	snapshots := make([]simcore.BugSnapshot, 0, len(w.bugs))
	for _, b := range w.bugs {
		snapshots = append(snapshots, simcore.BugSnapshot{
			ID:           b.id,
			Cell:         b.cell,
			Color:        b.color,
			Health:       b.health,
			ReadyForStep: b.readyForStep(w.stepQuantum),
			Accumulated:  b.accumulator,
		})
	}
	return simcore.NewBugView(snapshots)
}

// Occupancy exposes a read-only view of the dense occupancy grid.
func Occupancy(w *World) simcore.OccupancyView {
	return w.occupancy.view()
}

// Navigation exposes a read-only view of the BFS distance field.
func Navigation(w *World) simcore.NavigationFieldView {
	return w.navField.view()
}

// Towers exposes a read-only, id-ordered view of the placed towers.
func Towers(w *World) simcore.TowerView {
	return w.towers.view()
}

// TowerCooldowns exposes a read-only, tower-id-ordered view of cooldowns.
func TowerCooldowns(w *World) simcore.TowerCooldownView {
	return w.towers.cooldownView()
}

// Projectiles exposes a read-only, id-ordered view of in-flight
// projectiles, for presentation purposes only.
func Projectiles(w *World) simcore.ProjectileView {
	return w.projectiles.view()
}

// TowerAt reports the tower whose footprint covers cell, if any.
func TowerAt(w *World, cell simcore.CellCoord) (simcore.TowerId, bool) {
	for _, id := range w.towers.order {
		if w.towers.entries[id].region.Contains(cell) {
			return id, true
		}
	}
	return 0, false
}

// AnalyticsLayout snapshots spawner and target coordinates without
// mutating the world.
func AnalyticsLayout(w *World) simcore.AnalyticsLayoutSnapshot {
	return simcore.NewAnalyticsLayoutSnapshot(SpawnerCells(w), TargetCells(w))
}

// AnalyticsTowerView captures deterministic tower metrics for analytics.
func AnalyticsTowerView(w *World) simcore.TowerAnalyticsView {
	if len(w.towers.order) == 0 {
		return simcore.TowerAnalyticsView{}
	}
	cellsPerTile := w.tileGrid.CellsPerTile()
	if cellsPerTile == 0 {
		cellsPerTile = 1
	}
	snapshots := make([]simcore.TowerAnalyticsSnapshot, 0, len(w.towers.order))
	for _, id := range w.towers.order {
		t := w.towers.entries[id]
		snapshots = append(snapshots, simcore.TowerAnalyticsSnapshot{
			Tower:           t.id,
			Kind:            t.kind,
			Region:          t.region,
			RangeCells:      t.kind.RangeInCells(cellsPerTile),
			DamagePerSecond: computeTowerDPS(t.kind),
		})
	}
	return simcore.TowerAnalyticsView{Snapshots: snapshots}
}

// AnalyticsSnapshot bundles the layout and tower snapshots analytics needs
// for a single recompute pass.
func AnalyticsSnapshot(w *World) simcore.AnalyticsInputs {
	return simcore.NewAnalyticsInputs(AnalyticsLayout(w), AnalyticsTowerView(w))
}

func computeTowerDPS(kind simcore.TowerKind) uint32 {
	damage := uint64(kind.ProjectileDamage())
	cooldownMs := uint64(kind.FireCooldown().Milliseconds())
	if cooldownMs == 0 {
		cooldownMs = 1
	}
	perSecond := damage * 1000 / cooldownMs
	if perSecond > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(perSecond)
}

// Mode reports the active play mode.
func Mode(w *World) simcore.PlayMode { return w.mode }

// TickIndex reports the number of ticks applied so far.
func TickIndex(w *World) uint64 { return w.tickIndex }

// StepQuantum reports the currently configured bug step cadence.
func StepQuantum(w *World) (quantum int64) { return int64(w.stepQuantum) }
