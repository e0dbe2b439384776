package world

import (
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
)

const (
	defaultGridColumns   simcore.TileCoord = 10
	defaultGridRows      simcore.TileCoord = 10
	defaultTileLength    float32           = 100.0
	defaultCellsPerTile  uint32            = 1
	defaultStepQuantum                     = 250 * time.Millisecond
	minStepQuantum                         = time.Microsecond
)

// World is the authoritative Maze Defence simulation state. Every mutation
// flows through Apply so the sequence of Commands a caller submits fully
// determines the resulting state and emitted Events.
type World struct {
	banner       string
	tileGrid     TileGrid
	wall         Wall
	targets      []simcore.CellCoord
	bugs         []*bug
	nextBugID    simcore.BugId
	occupancy    *occupancyGrid
	reservations reservationFrame
	navField     navigationField
	towers       *towerRegistry
	projectiles  projectileTracker
	mode         simcore.PlayMode
	tickIndex    uint64
	stepQuantum  time.Duration
}

// New creates a Maze Defence world ready for simulation, with the default
// grid dimensions and an initial bug population.
func New() *World {
	tileGrid := NewTileGrid(defaultGridColumns, defaultGridRows, defaultTileLength, defaultCellsPerTile, DefaultWallThickness)
	wall := NewWall(tileGrid)
	targets := targetCellsFromWall(wall)

	w := &World{
		banner:      simcore.WelcomeBanner,
		tileGrid:    tileGrid,
		wall:        wall,
		targets:     targets,
		occupancy:   newOccupancyGrid(tileGrid.TotalCellColumns(), tileGrid.TotalCellRows()),
		towers:      newTowerRegistry(),
		mode:        simcore.PlayModeAttack,
		stepQuantum: defaultStepQuantum,
	}
	w.resetBugs()
	w.rebuildNavigation()
	return w
}

func (w *World) resetBugs() {
	seeds := generateBugs(w.tileGrid)
	w.bugs = make([]*bug, 0, len(seeds))
	w.nextBugID = 0
	for _, seed := range seeds {
		w.bugs = append(w.bugs, &bug{id: seed.id, cell: seed.cell, color: seed.color, health: simcore.Health(1)})
		if seed.id >= w.nextBugID {
			w.nextBugID = seed.id + 1
		}
	}
	w.occupancy.fillWith(w.bugs)
	w.reservations.clear()
}

func (w *World) rebuildNavigation() {
	columns, rows := w.occupancy.dimensions()
	w.navField.rebuildWith(columns, rows, w.targets, w.towers.blocksCell)
}

func (w *World) bugIndex(id simcore.BugId) (int, bool) {
	for i, b := range w.bugs {
		if b.id == id {
			return i, true
		}
	}
	return 0, false
}

func (w *World) bugByID(id simcore.BugId) (*bug, bool) {
	idx, ok := w.bugIndex(id)
	if !ok {
		return nil, false
	}
	return w.bugs[idx], true
}

// Apply executes command against the world, mutating its state
// deterministically and appending any resulting events to out.
func Apply(w *World, command simcore.Command, out *[]simcore.Event) {
	switch command.Kind {
	case simcore.CommandConfigureTileGrid:
		applyConfigureTileGrid(w, command)
		*out = append(*out, simcore.MazeLayoutChanged())

	case simcore.CommandConfigureBugStep:
		clamped := command.StepDuration
		if clamped < minStepQuantum {
			clamped = minStepQuantum
		}
		w.stepQuantum = clamped

	case simcore.CommandTick:
		w.tickIndex++
		*out = append(*out, simcore.TimeAdvanced(command.Elapsed))
		for _, b := range w.bugs {
			b.accumulator += command.Elapsed
		}
		w.towers.tick(command.Elapsed)
		applyProjectileAdvance(w, command.Elapsed, out)

	case simcore.CommandStepBug:
		w.reservations.queue(w.tickIndex, stepRequest{bugID: command.Bug, direction: command.Direction})
		resolvePendingSteps(w, out)

	case simcore.CommandSetPlayMode:
		if w.mode != command.Mode {
			w.mode = command.Mode
			*out = append(*out, simcore.PlayModeChanged(command.Mode))
		}

	case simcore.CommandSpawnBug:
		applySpawnBug(w, command, out)

	case simcore.CommandPlaceTower:
		applyPlaceTower(w, command, out)

	case simcore.CommandRemoveTower:
		applyRemoveTower(w, command, out)

	case simcore.CommandFireProjectile:
		applyFireProjectile(w, command, out)
	}
}

func applyConfigureTileGrid(w *World, command simcore.Command) {
	w.tileGrid = NewTileGrid(
		simcore.TileCoord(command.Columns),
		simcore.TileCoord(command.Rows),
		defaultTileLength,
		command.CellsPerTile,
		command.WallThickness,
	)
	w.wall = NewWall(w.tileGrid)
	w.targets = targetCellsFromWall(w.wall)
	w.occupancy = newOccupancyGrid(w.tileGrid.TotalCellColumns(), w.tileGrid.TotalCellRows())
	w.towers = newTowerRegistry()
	w.resetBugs()
	w.rebuildNavigation()
}

func applySpawnBug(w *World, command simcore.Command, out *[]simcore.Event) {
	if !w.occupancy.canEnter(command.SpawnerCell) {
		return
	}
	id := w.nextBugID
	w.nextBugID++
	b := &bug{id: id, cell: command.SpawnerCell, color: command.Color, health: command.Health}
	w.bugs = append(w.bugs, b)
	w.occupancy.occupy(id, command.SpawnerCell)
	*out = append(*out, simcore.BugSpawned(id, command.SpawnerCell, command.Color, command.Health))
}

func applyPlaceTower(w *World, command simcore.Command, out *[]simcore.Event) {
	if w.mode != simcore.PlayModeBuilder {
		*out = append(*out, simcore.TowerPlacementRejected(simcore.PlacementInvalidMode))
		return
	}

	footprint := command.TowerKind.Footprint()
	region := simcore.NewCellRect(command.Origin, footprint)
	columns, rows := w.occupancy.dimensions()

	if region.Origin.Column+region.Size.Width > columns || region.Origin.Row+region.Size.Height > rows {
		*out = append(*out, simcore.TowerPlacementRejected(simcore.PlacementOutOfBounds))
		return
	}

	cellsPerTile := w.tileGrid.CellsPerTile()
	if command.Origin.Column%cellsPerTile != 0 || command.Origin.Row%cellsPerTile != 0 {
		*out = append(*out, simcore.TowerPlacementRejected(simcore.PlacementMisaligned))
		return
	}

	if w.towers.overlapsAny(region) {
		*out = append(*out, simcore.TowerPlacementRejected(simcore.PlacementOccupied))
		return
	}
	for row := region.Origin.Row; row < region.Origin.Row+region.Size.Height; row++ {
		for column := region.Origin.Column; column < region.Origin.Column+region.Size.Width; column++ {
			if !w.occupancy.canEnter(simcore.NewCellCoord(column, row)) {
				*out = append(*out, simcore.TowerPlacementRejected(simcore.PlacementOccupied))
				return
			}
		}
	}

	id := w.towers.insert(command.TowerKind, command.Origin)
	w.rebuildNavigation()
	*out = append(*out, simcore.TowerPlaced(id, command.TowerKind, command.Origin))
	*out = append(*out, simcore.MazeLayoutChanged())
}

func applyRemoveTower(w *World, command simcore.Command, out *[]simcore.Event) {
	if w.mode != simcore.PlayModeBuilder {
		*out = append(*out, simcore.TowerRemovalRejected(command.Tower, simcore.RemovalInvalidMode))
		return
	}
	if !w.towers.remove(command.Tower) {
		*out = append(*out, simcore.TowerRemovalRejected(command.Tower, simcore.RemovalMissingTower))
		return
	}
	w.rebuildNavigation()
	*out = append(*out, simcore.TowerRemoved(command.Tower))
	*out = append(*out, simcore.MazeLayoutChanged())
}

func applyFireProjectile(w *World, command simcore.Command, out *[]simcore.Event) {
	if w.mode != simcore.PlayModeAttack {
		*out = append(*out, simcore.ProjectileRejected(simcore.ProjectileInvalidMode))
		return
	}
	tower, ok := w.towers.get(command.Tower)
	if !ok {
		*out = append(*out, simcore.ProjectileRejected(simcore.ProjectileMissingTower))
		return
	}
	if tower.cooldownRemaining > 0 {
		*out = append(*out, simcore.ProjectileRejected(simcore.ProjectileCooldownActive))
		return
	}
	target, ok := w.bugByID(command.Target)
	if !ok {
		*out = append(*out, simcore.ProjectileRejected(simcore.ProjectileMissingTarget))
		return
	}

	towerX, towerY := halfCellCenterOfRegion(tower.region)
	targetX, targetY := halfCellCenterOfCell(target.cell)
	distance := halfCellDistance(towerX, towerY, targetX, targetY)

	w.towers.arm(command.Tower)
	id := w.projectiles.launch(command.Tower, command.Target, tower.kind.ProjectileDamage(), distance, tower.kind.SpeedHalfCellsPerMs())
	*out = append(*out, simcore.ProjectileFired(id, command.Tower, command.Target))
}

func applyProjectileAdvance(w *World, elapsed time.Duration, out *[]simcore.Event) {
	elapsedMs := uint32(elapsed.Milliseconds())
	hits, expired := w.projectiles.advance(elapsedMs, func(id simcore.BugId) bool {
		_, ok := w.bugByID(id)
		return ok
	})

	for _, p := range expired {
		*out = append(*out, simcore.ProjectileExpired(p.id))
	}

	for _, p := range hits {
		*out = append(*out, simcore.ProjectileHit(p.id, p.target))
		target, ok := w.bugByID(p.target)
		if !ok {
			continue
		}
		target.health = target.health.SaturatingSub(p.damage)
		*out = append(*out, simcore.BugDamaged(p.target, p.damage, target.health))
		if target.health.IsZero() {
			w.removeBug(p.target)
			*out = append(*out, simcore.BugDied(p.target))
		}
	}
}

func (w *World) removeBug(id simcore.BugId) {
	idx, ok := w.bugIndex(id)
	if !ok {
		return
	}
	w.occupancy.vacate(w.bugs[idx].cell)
	w.bugs = append(w.bugs[:idx], w.bugs[idx+1:]...)
}

func resolvePendingSteps(w *World, out *[]simcore.Event) {
	requests := w.reservations.drainSorted()
	if len(requests) == 0 {
		return
	}

	columns, rows := w.occupancy.dimensions()
	targetColumns := make([]uint32, 0, len(w.targets))
	for _, t := range w.targets {
		targetColumns = append(targetColumns, t.Column)
	}

	var exited []simcore.BugId
	for _, request := range requests {
		b, ok := w.bugByID(request.bugID)
		if !ok {
			continue
		}
		if b.accumulator < w.stepQuantum {
			continue
		}

		from := b.cell
		next, ok := advanceCell(from, request.direction, columns, rows, targetColumns)
		if !ok {
			continue
		}
		if !w.occupancy.canEnter(next) {
			continue
		}

		reachedTarget := false
		for _, t := range w.targets {
			if t == next {
				reachedTarget = true
				break
			}
		}

		w.occupancy.vacate(from)
		w.occupancy.occupy(b.id, next)
		b.cell = next
		b.accumulator -= w.stepQuantum

		*out = append(*out, simcore.BugAdvanced(b.id, from, next, request.direction))

		if reachedTarget {
			w.occupancy.vacate(next)
			exited = append(exited, b.id)
		}
	}

	for _, id := range exited {
		if idx, ok := w.bugIndex(id); ok {
			from := w.bugs[idx].cell
			w.bugs = append(w.bugs[:idx], w.bugs[idx+1:]...)
			*out = append(*out, simcore.BugExited(id, from))
		}
	}
}

func halfCellCenterOfRegion(region simcore.CellRect) (x, y int64) {
	return int64(region.Origin.Column)*2 + int64(region.Size.Width), int64(region.Origin.Row)*2 + int64(region.Size.Height)
}

func halfCellCenterOfCell(cell simcore.CellCoord) (x, y int64) {
	return int64(cell.Column)*2 + 1, int64(cell.Row)*2 + 1
}

// halfCellDistance computes the integer (floor) straight-line distance, in
// half-cell units, between two half-cell points via a Newton's-method
// integer square root. Avoiding floating point here keeps projectile
// travel time reproducible bit-for-bit across platforms.
func halfCellDistance(ax, ay, bx, by int64) uint32 {
	dx := ax - bx
	dy := ay - by
	distSq := dx*dx + dy*dy
	if distSq <= 0 {
		return 0
	}
	return uint32(isqrt(distSq))
}

func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
