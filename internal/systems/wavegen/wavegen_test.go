package wavegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func makeSpecies(id, patch, weight, dirichlet, maxPopulation uint32, cadence, gap [2]uint32) simcore.SpeciesDefinition {
	return simcore.SpeciesDefinition{
		ID:            simcore.SpeciesId(id),
		Patch:         simcore.SpawnPatchId(patch),
		Weight:        simcore.PressureWeight(weight),
		Dirichlet:     simcore.DirichletWeight(dirichlet),
		MinBurstSpawn: 0,
		MaxPopulation: maxPopulation,
		Health:        simcore.Health(3),
		Scheduling: simcore.BurstSchedulingConfig{
			NominalBurstSize: 10,
			BurstCountMax:    8,
			Cadence:          simcore.CadenceRange{MinMs: cadence[0], MaxMs: cadence[1]},
			Gap:              simcore.BurstGapRange{MinMs: gap[0], MaxMs: gap[1]},
		},
	}
}

func patchDescriptors() []simcore.SpawnPatchDescriptor {
	return []simcore.SpawnPatchDescriptor{
		{ID: simcore.SpawnPatchId(0), Spawners: []simcore.CellCoord{simcore.NewCellCoord(0, 0)}},
	}
}

func defaultPressureConfig() simcore.PressureConfig {
	return simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: 1200, StdDevMicros: 250}}
}

func samplePlan(t *testing.T, difficulty simcore.WaveDifficulty) simcore.AttackPlan {
	t.Helper()

	species := []simcore.SpeciesDefinition{
		makeSpecies(0, 0, 900, 3, 200, [2]uint32{250, 350}, [2]uint32{2000, 4000}),
		makeSpecies(1, 0, 1500, 2, 120, [2]uint32{300, 400}, [2]uint32{2500, 5000}),
	}
	table := simcore.NewSpeciesTableView(1, species, defaultPressureConfig())
	patches := simcore.NewSpawnPatchTableView(patchDescriptors())
	context := simcore.WaveSeedContext{GlobalSeed: 7654321, Wave: 12, Difficulty: difficulty}
	command := simcore.GenerateAttackPlan(context)

	var system System
	var events []simcore.Event
	system.Handle([]simcore.Command{command}, table, patches, table.Pressure, context, &events)

	if !assert.Len(t, events, 1) {
		t.FailNow()
	}
	assert.Equal(t, simcore.EventAttackPlanReady, events[0].Kind)
	return events[0].Plan
}

func TestDeterministicGenerationReplays(t *testing.T) {
	planA := samplePlan(t, simcore.DifficultyNormal)
	planB := samplePlan(t, simcore.DifficultyNormal)
	assert.Equal(t, planA, planB)
}

func TestBudgetRespectsPressure(t *testing.T) {
	plan := samplePlan(t, simcore.DifficultyNormal)
	weights := map[simcore.SpeciesId]uint64{0: 900, 1: 1500}

	var totalCost uint64
	for _, burst := range plan.Bursts {
		weight := weights[burst.Species]
		for _, count := range burst.CountEach {
			totalCost += uint64(count) * weight
		}
	}

	scaledPressure := uint64(plan.Budget) * uint64(simcore.PressureFixedPointScale)
	assert.LessOrEqual(t, totalCost, scaledPressure)
}

func TestBurstsCoverSpeciesTotals(t *testing.T) {
	plan := samplePlan(t, simcore.DifficultyNormal)

	counts := make(map[simcore.SpeciesId]uint32)
	for _, burst := range plan.Bursts {
		for _, count := range burst.CountEach {
			counts[burst.Species] += count
		}
	}

	for species, count := range counts {
		assert.Greaterf(t, count, uint32(0), "species %v should have positive count", species)
	}
}

func TestHardDifficultyAdjustsPressure(t *testing.T) {
	normal := samplePlan(t, simcore.DifficultyNormal)
	hard := samplePlan(t, simcore.DifficultyHard)
	assert.GreaterOrEqual(t, uint32(hard.Budget), uint32(normal.Budget))
}

func TestZeroPressureEmitsEmptyPlan(t *testing.T) {
	species := []simcore.SpeciesDefinition{
		makeSpecies(0, 0, 1000, 2, 200, [2]uint32{300, 300}, [2]uint32{2000, 2000}),
	}
	config := simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: 0, StdDevMicros: 0}}
	table := simcore.NewSpeciesTableView(1, species, config)
	patches := simcore.NewSpawnPatchTableView(patchDescriptors())
	context := simcore.WaveSeedContext{GlobalSeed: 1, Wave: 0, Difficulty: simcore.DifficultyNormal}
	command := simcore.GenerateAttackPlan(context)

	var system System
	var events []simcore.Event
	system.Handle([]simcore.Command{command}, table, patches, config, context, &events)

	if !assert.Len(t, events, 1) {
		t.FailNow()
	}
	plan := events[0].Plan
	assert.Empty(t, plan.Bursts)
	assert.Equal(t, simcore.Pressure(0), plan.Budget)
}

func TestUnknownSpeciesTableEmitsEmptyPlan(t *testing.T) {
	table := simcore.NewSpeciesTableView(1, nil, defaultPressureConfig())
	patches := simcore.NewSpawnPatchTableView(patchDescriptors())
	context := simcore.WaveSeedContext{GlobalSeed: 1, Wave: 3, Difficulty: simcore.DifficultyNormal}
	command := simcore.GenerateAttackPlan(context)

	var system System
	var events []simcore.Event
	system.Handle([]simcore.Command{command}, table, patches, table.Pressure, context, &events)

	if !assert.Len(t, events, 1) {
		t.FailNow()
	}
	assert.Equal(t, simcore.WaveId(3), events[0].Plan.Wave)
	assert.Empty(t, events[0].Plan.Bursts)
}
