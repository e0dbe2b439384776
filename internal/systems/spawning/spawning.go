// Package spawning deterministically introduces new bugs at configured
// spawner cells while the simulation is in attack mode, on a fixed cadence
// driven by its own independent LCG stream.
package spawning

import (
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
)

const (
	rngMultiplier uint64 = 6364136223846793005
	rngIncrement  uint64 = 1
)

// spawnColors cycles across spawns the same way the world's initial
// population does, so spawned bugs read consistently with generated ones.
var spawnColors = [4]simcore.BugColor{
	simcore.NewBugColor(0x2f, 0x95, 0x32),
	simcore.NewBugColor(0xc8, 0x2a, 0x36),
	simcore.NewBugColor(0xff, 0xc1, 0x07),
	simcore.NewBugColor(0x58, 0x47, 0xff),
}

// Config parameterizes a Spawning system instance.
type Config struct {
	SpawnInterval time.Duration
	RNGSeed       uint64
	// Health is the health newly spawned bugs are assigned. The Rust
	// system this was distilled from predates per-species health and
	// spawned every bug with an implicit default; here that default is
	// this system's configured value.
	Health simcore.Health
}

// System deterministically emits spawn commands while in attack mode.
type System struct {
	config      Config
	accumulator time.Duration
	rngState    uint64
	colorIndex  int
}

// New constructs a spawning system from config.
func New(config Config) *System {
	return &System{config: config, rngState: config.RNGSeed}
}

// Handle consumes events and immutable views to append SpawnBug commands
// to out.
func (s *System) Handle(events []simcore.Event, mode simcore.PlayMode, spawners []simcore.CellCoord, out *[]simcore.Command) {
	if mode != simcore.PlayModeAttack {
		s.accumulator = 0
		return
	}

	if s.config.SpawnInterval == 0 || len(spawners) == 0 {
		return
	}

	var accumulated time.Duration
	for _, e := range events {
		if e.Kind == simcore.EventTimeAdvanced {
			accumulated += e.Elapsed
		}
	}
	if accumulated == 0 {
		return
	}

	s.accumulator += accumulated
	attempts := s.resolveSpawnAttempts()

	for i := 0; i < attempts; i++ {
		spawner := s.selectSpawner(spawners)
		color := s.nextColor()
		*out = append(*out, simcore.SpawnBug(spawner, color, s.config.Health))
	}
}

func (s *System) resolveSpawnAttempts() int {
	if s.config.SpawnInterval == 0 {
		return 0
	}
	attempts := 0
	for s.accumulator >= s.config.SpawnInterval {
		s.accumulator -= s.config.SpawnInterval
		attempts++
	}
	return attempts
}

func (s *System) selectSpawner(spawners []simcore.CellCoord) simcore.CellCoord {
	value := s.advanceRNG()
	index := int(value % uint64(len(spawners)))
	return spawners[index]
}

func (s *System) advanceRNG() uint64 {
	s.rngState = s.rngState*rngMultiplier + rngIncrement
	return s.rngState
}

func (s *System) nextColor() simcore.BugColor {
	color := spawnColors[s.colorIndex%len(spawnColors)]
	s.colorIndex = (s.colorIndex + 1) % len(spawnColors)
	return color
}
