package driver

import (
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/systems/analytics"
	"github.com/toejough/maze-defence/internal/systems/builder"
	"github.com/toejough/maze-defence/internal/systems/combat"
	"github.com/toejough/maze-defence/internal/systems/movement"
	"github.com/toejough/maze-defence/internal/systems/spawning"
	"github.com/toejough/maze-defence/internal/systems/targeting"
	"github.com/toejough/maze-defence/internal/systems/wavegen"
	"github.com/toejough/maze-defence/internal/world"
)

// Config bundles the parameters a Driver needs beyond the teacher's default
// world configuration: the periodic spawn cadence, the wave/pressure table
// driving attack plans, and the global seed every deterministic stream
// ultimately branches from.
type Config struct {
	Spawning       spawning.Config
	Species        simcore.SpeciesTableView
	Patches        simcore.SpawnPatchTableView
	Pressure       simcore.PressureConfig
	GlobalSeed     uint64
	WaveDifficulty simcore.WaveDifficulty
}

// Driver owns the world and every system that reacts to it, running them in
// a fixed order each tick so the resulting sequence of events is fully
// determined by the commands and input supplied.
type Driver struct {
	world *world.World

	movement  movement.System
	spawning  *spawning.System
	targeting targeting.System
	combat    combat.System
	builder   builder.System
	wavegen   wavegen.System
	analytics analytics.System

	species  simcore.SpeciesTableView
	patches  simcore.SpawnPatchTableView
	pressure simcore.PressureConfig
	seed     uint64
	diff     simcore.WaveDifficulty

	wave        simcore.WaveId
	activePlan  simcore.AttackPlan
	havePlan    bool
	planElapsed time.Duration
	burstCursor []uint32

	targetScratch   []simcore.TowerTarget
	commandScratch  []simcore.Command
	eventScratch    []simcore.Event
	pendingEvents   []simcore.Event
	pendingCommands []simcore.Command
}

// New constructs a Driver over a freshly initialized world.
func New(config Config) *Driver {
	return &Driver{
		world:    world.New(),
		spawning: spawning.New(config.Spawning),
		species:  config.Species,
		patches:  config.Patches,
		pressure: config.Pressure,
		seed:     config.GlobalSeed,
		diff:     config.WaveDifficulty,
	}
}

// Input bundles the per-frame, adapter-derived signals the driver threads
// through to the builder system.
type Input struct {
	Preview *builder.PlacementPreview
	Builder builder.Input
}

// Step advances the simulation by elapsed, applying input and running every
// system once in a fixed order, and returns the events produced.
func (d *Driver) Step(elapsed time.Duration, input Input) []simcore.Event {
	d.eventScratch = append(d.eventScratch[:0], d.pendingEvents...)
	d.pendingEvents = d.pendingEvents[:0]

	world.Apply(d.world, simcore.TickBy(elapsed), &d.eventScratch)
	d.advanceActivePlan(elapsed)

	d.commandScratch = append(d.commandScratch[:0], d.pendingCommands...)
	d.pendingCommands = d.pendingCommands[:0]

	d.movement.Handle(d.eventScratch, world.BugSnapshots(d.world), world.Occupancy(d.world), world.TargetCells(d.world), &d.commandScratch)
	d.spawning.Handle(d.eventScratch, world.Mode(d.world), world.SpawnerCells(d.world), &d.commandScratch)

	cellsPerTile := world.Grid(d.world).CellsPerTile()
	d.targeting.Handle(world.Mode(d.world), world.Towers(d.world), world.BugSnapshots(d.world), cellsPerTile, &d.targetScratch)
	d.combat.Handle(world.Mode(d.world), world.TowerCooldowns(d.world), d.targetScratch, &d.commandScratch)

	towerAt := func(cell simcore.CellCoord) (simcore.TowerId, bool) { return world.TowerAt(d.world, cell) }
	d.builder.Handle(d.eventScratch, input.Preview, input.Builder, towerAt, &d.commandScratch)

	for _, command := range d.commandScratch {
		world.Apply(d.world, command, &d.eventScratch)
	}

	d.analytics.Handle(d.eventScratch, d.commandScratch, func(scratch *analytics.Scratch) (simcore.StatsReport, bool) {
		report := analytics.ComputeStatsReport(world.Navigation(d.world), world.AnalyticsSnapshot(d.world), world.TowerCooldowns(d.world), cellsPerTile, scratch)
		return report, true
	}, &d.eventScratch)

	return append([]simcore.Event(nil), d.eventScratch...)
}

// Configure applies a boot-time configuration command (tile grid layout,
// bug step cadence) directly to the world. It is meant to be called before
// the first Step, while no system has observable state yet to desync.
func (d *Driver) Configure(command simcore.Command) []simcore.Event {
	var events []simcore.Event
	world.Apply(d.world, command, &events)
	return events
}

// Targets returns the tower targets selected during the most recent Step.
func (d *Driver) Targets() []simcore.TowerTarget {
	return append([]simcore.TowerTarget(nil), d.targetScratch...)
}

// RequestAnalyticsRefresh forces an analytics recompute on the next tick
// even without an observed layout change.
func (d *Driver) RequestAnalyticsRefresh() {
	d.pendingCommands = append(d.pendingCommands, simcore.RequestAnalyticsRefresh())
}

// SetPlayMode transitions the world between attack and builder mode. The
// resulting event is queued for the next Step so every system observes the
// transition exactly once, in order with everything else that tick.
func (d *Driver) SetPlayMode(mode simcore.PlayMode) {
	var events []simcore.Event
	world.Apply(d.world, simcore.SetPlayMode(mode), &events)
	d.pendingEvents = append(d.pendingEvents, events...)
}

// StartNextWave advances the wave counter and generates a fresh attack plan
// from the configured species/pressure tables, replacing any wave still in
// progress.
func (d *Driver) StartNextWave() simcore.AttackPlan {
	d.wave++
	context := simcore.WaveSeedContext{GlobalSeed: d.seed, Wave: d.wave, Difficulty: d.diff}
	command := simcore.GenerateAttackPlan(context)

	var events []simcore.Event
	d.wavegen.Handle([]simcore.Command{command}, d.species, d.patches, d.pressure, context, &events)

	for _, e := range events {
		if e.Kind == simcore.EventAttackPlanReady {
			d.activePlan = e.Plan
			d.havePlan = true
			d.planElapsed = 0
			d.burstCursor = make([]uint32, len(e.Plan.Bursts))
			return e.Plan
		}
	}
	return simcore.AttackPlan{Wave: d.wave}
}

// advanceActivePlan walks the active attack plan's burst schedule forward
// by elapsed, emitting a SpawnBug command directly into the world for every
// spawn whose scheduled time has arrived. Spawns within a burst are spaced
// by the species' sampled cadence; spawner cells are drawn round-robin from
// the species' patch.
func (d *Driver) advanceActivePlan(elapsed time.Duration) {
	if !d.havePlan {
		return
	}
	d.planElapsed += elapsed
	elapsedMs := uint32(d.planElapsed.Milliseconds())

	allDone := true
	for burstIndex, burst := range d.activePlan.Bursts {
		spawners := d.patchSpawners(burst.Patch)
		if len(spawners) == 0 {
			continue
		}

		for i, startMs := range burst.StartsMs {
			count := burst.CountEach[i]
			for spawnInBurst := uint32(0); spawnInBurst < count; spawnInBurst++ {
				spawnAt := startMs + spawnInBurst*burst.CadenceMs
				globalIndex := d.burstSpawnOrdinal(burstIndex, i, spawnInBurst, burst)
				if globalIndex < d.burstCursor[burstIndex] {
					continue
				}
				if uint32(elapsedMs) < spawnAt {
					allDone = false
					continue
				}

				spawner := spawners[int(globalIndex)%len(spawners)]
				color, health := d.speciesAppearance(burst.Species)
				var events []simcore.Event
				world.Apply(d.world, simcore.SpawnBug(spawner, color, health), &events)
				d.eventScratch = append(d.eventScratch, events...)
				d.burstCursor[burstIndex] = globalIndex + 1
			}
		}
	}

	if allDone {
		d.havePlan = false
	}
}

func (d *Driver) burstSpawnOrdinal(burstIndex, startIndex int, spawnInBurst uint32, burst simcore.BurstPlan) uint32 {
	var ordinal uint32
	for i := 0; i < startIndex; i++ {
		ordinal += burst.CountEach[i]
	}
	return ordinal + spawnInBurst
}

func (d *Driver) patchSpawners(patch simcore.SpawnPatchId) []simcore.CellCoord {
	for _, descriptor := range d.patches.Patches {
		if descriptor.ID == patch {
			return descriptor.Spawners
		}
	}
	return nil
}

func (d *Driver) speciesAppearance(species simcore.SpeciesId) (simcore.BugColor, simcore.Health) {
	for _, definition := range d.species.Species {
		if definition.ID == species {
			return definition.Color, definition.Health
		}
	}
	return simcore.BugColor{}, simcore.Health(1)
}
