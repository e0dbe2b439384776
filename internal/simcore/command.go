package simcore

import "time"

// CommandKind discriminates the variants of Command. Go has no native sum
// type, so Command is modeled as a tagged struct: Kind selects which of the
// payload fields are meaningful, mirroring the enum the rest of the engine
// was distilled from.
type CommandKind int

const (
	// CommandConfigureTileGrid (re)configures the tile grid dimensions and
	// presentation scale. Fields: Columns, Rows, CellsPerTile, WallThickness.
	CommandConfigureTileGrid CommandKind = iota
	// CommandConfigureBugStep sets the fixed duration between bug hops.
	// Fields: StepDuration.
	CommandConfigureBugStep
	// CommandTick advances simulated time by Elapsed.
	CommandTick
	// CommandStepBug requests that a specific bug attempt to advance one
	// cell in the given direction, as already resolved by the movement
	// system. Fields: Bug, Direction.
	CommandStepBug
	// CommandSetPlayMode switches between attack and builder mode. Fields:
	// Mode.
	CommandSetPlayMode
	// CommandSpawnBug introduces a new bug at a spawner cell. Fields:
	// SpawnerCell, Color, Health.
	CommandSpawnBug
	// CommandPlaceTower requests a tower be constructed. Fields: Kind,
	// Origin.
	CommandPlaceTower
	// CommandRemoveTower requests a tower be torn down. Fields: Tower.
	CommandRemoveTower
	// CommandFireProjectile requests a tower fire at a specific bug. Fields:
	// Tower, Target.
	CommandFireProjectile
	// CommandGenerateAttackPlan requests a deterministic spawn schedule be
	// produced for a wave. Fields: SeedContext.
	CommandGenerateAttackPlan
	// CommandRequestAnalyticsRefresh requests analytics recompute its
	// published report from the current layout, even without a layout
	// change having been observed.
	CommandRequestAnalyticsRefresh
)

// Command is the tagged union of every instruction a caller may submit to
// the world in a single tick. Only the fields relevant to Kind are
// populated; the rest hold their zero value.
type Command struct {
	Kind CommandKind

	// CommandConfigureTileGrid
	Columns       uint32
	Rows          uint32
	CellsPerTile  uint32
	WallThickness uint32

	// CommandConfigureBugStep
	StepDuration time.Duration

	// CommandTick
	Elapsed time.Duration

	// CommandStepBug
	Bug BugId

	// CommandStepBug
	Direction Direction

	// CommandSetPlayMode
	Mode PlayMode

	// CommandSpawnBug
	SpawnerCell CellCoord
	Color       BugColor
	Health      Health

	// CommandPlaceTower
	TowerKind TowerKind
	Origin    CellCoord

	// CommandRemoveTower, CommandFireProjectile
	Tower TowerId

	// CommandFireProjectile
	Target BugId

	// CommandGenerateAttackPlan
	SeedContext WaveSeedContext
}

// ConfigureTileGrid builds a tile grid configuration command.
func ConfigureTileGrid(columns, rows, cellsPerTile, wallThickness uint32) Command {
	return Command{
		Kind:          CommandConfigureTileGrid,
		Columns:       columns,
		Rows:          rows,
		CellsPerTile:  cellsPerTile,
		WallThickness: wallThickness,
	}
}

// ConfigureBugStep builds a bug step cadence configuration command.
func ConfigureBugStep(step time.Duration) Command {
	return Command{Kind: CommandConfigureBugStep, StepDuration: step}
}

// TickBy builds a time-advance command.
func TickBy(elapsed time.Duration) Command {
	return Command{Kind: CommandTick, Elapsed: elapsed}
}

// StepBug builds a per-bug step request command.
func StepBug(bug BugId, direction Direction) Command {
	return Command{Kind: CommandStepBug, Bug: bug, Direction: direction}
}

// SetPlayMode builds a play mode transition command.
func SetPlayMode(mode PlayMode) Command {
	return Command{Kind: CommandSetPlayMode, Mode: mode}
}

// SpawnBug builds a bug-spawn command.
func SpawnBug(spawner CellCoord, color BugColor, health Health) Command {
	return Command{Kind: CommandSpawnBug, SpawnerCell: spawner, Color: color, Health: health}
}

// PlaceTower builds a tower placement request command.
func PlaceTower(kind TowerKind, origin CellCoord) Command {
	return Command{Kind: CommandPlaceTower, TowerKind: kind, Origin: origin}
}

// RemoveTower builds a tower removal request command.
func RemoveTower(tower TowerId) Command {
	return Command{Kind: CommandRemoveTower, Tower: tower}
}

// FireProjectile builds a projectile fire request command.
func FireProjectile(tower TowerId, target BugId) Command {
	return Command{Kind: CommandFireProjectile, Tower: tower, Target: target}
}

// GenerateAttackPlan builds a wave generation request command.
func GenerateAttackPlan(ctx WaveSeedContext) Command {
	return Command{Kind: CommandGenerateAttackPlan, SeedContext: ctx}
}

// RequestAnalyticsRefresh builds an analytics refresh request command.
func RequestAnalyticsRefresh() Command {
	return Command{Kind: CommandRequestAnalyticsRefresh}
}
