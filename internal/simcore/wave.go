package simcore

import "sort"

// SpeciesId identifies a bug species within the species table.
type SpeciesId uint32

// SpawnPatchId identifies a spawn patch (a group of spawner cells that share
// an allocation of an attack wave's population).
type SpawnPatchId uint32

// WaveId identifies an attack wave. Wave identifiers start at one; the zero
// value is never issued.
type WaveId uint32

// WaveDifficulty selects the pressure curve applied to a wave.
type WaveDifficulty int

const (
	// DifficultyNormal is the baseline difficulty curve.
	DifficultyNormal WaveDifficulty = iota
	// DifficultyHard adds one to the effective tier before pressure sampling.
	DifficultyHard
)

// Pressure is the resolved population budget for a wave, after the
// pressure scalar has been applied. It saturates rather than overflowing.
type Pressure uint32

// PressureWeight is the pressure cost of spawning one bug of a species, in
// units of PressureFixedPointScale: a species' allocated share of the budget
// is divided by it to give the species' spawn count.
type PressureWeight uint32

// DirichletWeight is the concentration parameter (Gamma shape) used when
// sampling a species' share of a wave's pressure budget.
type DirichletWeight uint32

// PressureFixedPointScale is the fixed-point scale applied when resolving a
// species' floating allocation into an integer spawn count.
const PressureFixedPointScale = 1 << 16

// RNG stream labels used to derive independent SplitMix64 streams from a
// wave's SHA-256 base seed. Each label is hashed alongside the base seed's
// little-endian bytes to produce that stream's seed.
const (
	RNGStreamPressure  = "pressure"
	RNGStreamDirichlet = "dirichlet"
	RNGStreamSpecies   = "species:"
)

// CadenceRange bounds the inclusive range, in milliseconds, from which a
// species' burst cadence is sampled.
type CadenceRange struct {
	MinMs uint32
	MaxMs uint32
}

// BurstGapRange bounds the inclusive range, in milliseconds, from which the
// gap between successive burst starts is sampled.
type BurstGapRange struct {
	MinMs uint32
	MaxMs uint32
}

// BurstSchedulingConfig governs how a species' resolved spawn count is
// split across bursts and scheduled over time.
type BurstSchedulingConfig struct {
	NominalBurstSize uint32
	BurstCountMax    uint32
	Cadence          CadenceRange
	Gap              BurstGapRange
}

// PressureCurve parameterizes the Normal distribution pressure is sampled
// from, prior to the difficulty scalar being applied.
type PressureCurve struct {
	MeanMicros   int64
	StdDevMicros int64
}

// PressureConfig holds the pressure curve. It carries no per-tier scalar
// table; wave generation scales the sample by the effective tier plus one.
type PressureConfig struct {
	Curve PressureCurve
}

// SpeciesDefinition is the static configuration for a single bug species
// as loaded from the species table.
type SpeciesDefinition struct {
	ID            SpeciesId
	Patch         SpawnPatchId
	Weight        PressureWeight
	Dirichlet     DirichletWeight
	MinBurstSpawn uint32
	MaxPopulation uint32
	Health        Health
	Color         BugColor
	Scheduling    BurstSchedulingConfig
}

// SpawnPatchDescriptor names a group of spawner cells eligible to receive a
// species' allocation.
type SpawnPatchDescriptor struct {
	ID       SpawnPatchId
	Spawners []CellCoord
}

// SpeciesTableVersion identifies a loaded species/patch table revision, so
// systems can detect a hot-reloaded configuration.
type SpeciesTableVersion uint32

// SpeciesTableView is a read-only, id-ordered view over the configured
// species.
type SpeciesTableView struct {
	Version  SpeciesTableVersion
	Species  []SpeciesDefinition
	Pressure PressureConfig
}

// NewSpeciesTableView builds a species table view sorted by species id.
func NewSpeciesTableView(version SpeciesTableVersion, species []SpeciesDefinition, pressure PressureConfig) SpeciesTableView {
	cp := append([]SpeciesDefinition(nil), species...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return SpeciesTableView{Version: version, Species: cp, Pressure: pressure}
}

// SpawnPatchTableView is a read-only, id-ordered view over the configured
// spawn patches.
type SpawnPatchTableView struct {
	Patches []SpawnPatchDescriptor
}

// NewSpawnPatchTableView builds a spawn patch table view sorted by patch id.
func NewSpawnPatchTableView(patches []SpawnPatchDescriptor) SpawnPatchTableView {
	cp := append([]SpawnPatchDescriptor(nil), patches...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return SpawnPatchTableView{Patches: cp}
}

// ValidPatches returns the set of patch ids known to the table.
func (v SpawnPatchTableView) ValidPatches() map[SpawnPatchId]struct{} {
	set := make(map[SpawnPatchId]struct{}, len(v.Patches))
	for _, p := range v.Patches {
		set[p.ID] = struct{}{}
	}
	return set
}

// WaveSeedContext carries the inputs that deterministically derive a wave's
// base seed: the world's global seed, the wave being generated, and its
// resolved difficulty.
type WaveSeedContext struct {
	GlobalSeed uint64
	Wave       WaveId
	Difficulty WaveDifficulty
}

// EffectiveTier returns the tier used for pressure-scalar lookup: the wave
// number, incremented by one under Hard difficulty.
func (c WaveSeedContext) EffectiveTier() uint32 {
	tier := uint32(c.Wave)
	if c.Difficulty == DifficultyHard {
		tier++
	}
	return tier
}

// BurstPlan is a single species' scheduled spawn bursts within a wave.
// CadenceMs is the delay between individual spawns within a burst, sampled
// once per species and shared across all of that species' bursts.
type BurstPlan struct {
	Species   SpeciesId
	Patch     SpawnPatchId
	CadenceMs uint32
	StartsMs  []uint32
	CountEach []uint32
}

// AttackPlan is the fully resolved, deterministic schedule of spawns for a
// single wave.
type AttackPlan struct {
	Wave    WaveId
	Budget  Pressure
	Bursts  []BurstPlan
}

// TotalSpawnCount sums the spawn counts scheduled across every burst.
func (p AttackPlan) TotalSpawnCount() uint64 {
	var total uint64
	for _, burst := range p.Bursts {
		for _, count := range burst.CountEach {
			total += uint64(count)
		}
	}
	return total
}
