// Package waveconfig loads the species, spawn-patch, and pressure tables
// that drive wave generation from a TOML file, the way dm-vev-adamant's
// server package loads its whitelist from TOML.
package waveconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/pelletier/go-toml"

	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/world"
)

// Table bundles the species, patch, and pressure configuration a driver
// needs to generate attack plans.
type Table struct {
	Species  []simcore.SpeciesDefinition
	Patches  []simcore.SpawnPatchDescriptor
	Pressure simcore.PressureConfig
}

type tableFile struct {
	Pressure pressureFile  `toml:"pressure"`
	Patches  []patchFile   `toml:"patches"`
	Species  []speciesFile `toml:"species"`
}

type pressureFile struct {
	MeanMicros   int64 `toml:"mean_micros"`
	StdDevMicros int64 `toml:"stddev_micros"`
}

type patchFile struct {
	ID       uint32       `toml:"id"`
	Spawners [][2]uint32  `toml:"spawners"`
}

type speciesFile struct {
	ID              uint32 `toml:"id"`
	Patch           uint32 `toml:"patch"`
	Weight          uint32 `toml:"weight"`
	Dirichlet       uint32 `toml:"dirichlet"`
	MinBurstSpawn   uint32 `toml:"min_burst_spawn"`
	MaxPopulation   uint32 `toml:"max_population"`
	Health          uint32 `toml:"health"`
	ColorRed        uint8  `toml:"color_red"`
	ColorGreen      uint8  `toml:"color_green"`
	ColorBlue       uint8  `toml:"color_blue"`
	NominalBurst    uint32 `toml:"nominal_burst_size"`
	BurstCountMax   uint32 `toml:"burst_count_max"`
	CadenceMinMs    uint32 `toml:"cadence_min_ms"`
	CadenceMaxMs    uint32 `toml:"cadence_max_ms"`
	BurstGapMinMs   uint32 `toml:"burst_gap_min_ms"`
	BurstGapMaxMs   uint32 `toml:"burst_gap_max_ms"`
}

// Default is the built-in species/patch/pressure table used when no
// --species-config file is supplied, keeping the binary runnable without
// external files.
func Default() Table {
	return Table{
		Pressure: simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: 2_500_000, StdDevMicros: 600_000}},
		Patches: []simcore.SpawnPatchDescriptor{
			{ID: simcore.SpawnPatchId(0), Spawners: nil},
		},
		Species: []simcore.SpeciesDefinition{
			{
				ID:            simcore.SpeciesId(0),
				Patch:         simcore.SpawnPatchId(0),
				Weight:        simcore.PressureWeight(1000),
				Dirichlet:     simcore.DirichletWeight(3),
				MinBurstSpawn: 1,
				MaxPopulation: 200,
				Health:        simcore.Health(3),
				Color:         simcore.NewBugColor(0xd0, 0x30, 0x30),
				Scheduling: simcore.BurstSchedulingConfig{
					NominalBurstSize: 4,
					BurstCountMax:    6,
					Cadence:          simcore.CadenceRange{MinMs: 250, MaxMs: 600},
					Gap:              simcore.BurstGapRange{MinMs: 800, MaxMs: 2000},
				},
			},
		},
	}
}

// Load reads a species/patch/pressure table from the TOML file at path. An
// empty path returns the built-in Default table without touching disk.
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, fmt.Errorf("species config %q does not exist: %w", path, err)
		}
		return Table{}, fmt.Errorf("read species config: %w", err)
	}

	var file tableFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return Table{}, fmt.Errorf("decode species config: %w", err)
	}

	return fromFile(file)
}

func fromFile(file tableFile) (Table, error) {
	if len(file.Species) == 0 {
		return Table{}, errors.New("species config must define at least one [[species]] entry")
	}

	patchIDs := make(map[uint32]struct{}, len(file.Patches))
	patches := make([]simcore.SpawnPatchDescriptor, 0, len(file.Patches))
	for _, p := range file.Patches {
		spawners := make([]simcore.CellCoord, 0, len(p.Spawners))
		for _, s := range p.Spawners {
			spawners = append(spawners, simcore.NewCellCoord(s[0], s[1]))
		}
		patches = append(patches, simcore.SpawnPatchDescriptor{ID: simcore.SpawnPatchId(p.ID), Spawners: spawners})
		patchIDs[p.ID] = struct{}{}
	}
	sort.Slice(patches, func(i, j int) bool { return patches[i].ID < patches[j].ID })

	species := make([]simcore.SpeciesDefinition, 0, len(file.Species))
	for _, s := range file.Species {
		if _, ok := patchIDs[s.Patch]; !ok {
			return Table{}, fmt.Errorf("species %d references undefined patch %d", s.ID, s.Patch)
		}
		species = append(species, simcore.SpeciesDefinition{
			ID:            simcore.SpeciesId(s.ID),
			Patch:         simcore.SpawnPatchId(s.Patch),
			Weight:        simcore.PressureWeight(s.Weight),
			Dirichlet:     simcore.DirichletWeight(s.Dirichlet),
			MinBurstSpawn: s.MinBurstSpawn,
			MaxPopulation: s.MaxPopulation,
			Health:        simcore.Health(s.Health),
			Color:         simcore.NewBugColor(s.ColorRed, s.ColorGreen, s.ColorBlue),
			Scheduling: simcore.BurstSchedulingConfig{
				NominalBurstSize: s.NominalBurst,
				BurstCountMax:    s.BurstCountMax,
				Cadence:          simcore.CadenceRange{MinMs: s.CadenceMinMs, MaxMs: s.CadenceMaxMs},
				Gap:              simcore.BurstGapRange{MinMs: s.BurstGapMinMs, MaxMs: s.BurstGapMaxMs},
			},
		})
	}

	return Table{
		Species:  species,
		Patches:  patches,
		Pressure: simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: file.Pressure.MeanMicros, StdDevMicros: file.Pressure.StdDevMicros}},
	}, nil
}

// WithResolvedSpawners fills in any patch left without explicit spawner
// cells (the common case for the built-in Default table, which cannot know
// the grid's dimensions ahead of time) with the full spawner row computed
// from grid.
func (t Table) WithResolvedSpawners(grid world.TileGrid) Table {
	fallback := world.SpawnerCellsForGrid(grid)
	resolved := make([]simcore.SpawnPatchDescriptor, len(t.Patches))
	for i, p := range t.Patches {
		if len(p.Spawners) == 0 {
			p.Spawners = fallback
		}
		resolved[i] = p
	}
	t.Patches = resolved
	return t
}

// Views converts the table into the read-only views the driver consumes.
func (t Table) Views(version simcore.SpeciesTableVersion) (simcore.SpeciesTableView, simcore.SpawnPatchTableView) {
	return simcore.NewSpeciesTableView(version, t.Species, t.Pressure), simcore.NewSpawnPatchTableView(t.Patches)
}
