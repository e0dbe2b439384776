package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/systems/builder"
	"github.com/toejough/maze-defence/internal/systems/spawning"
)

func testConfig() Config {
	species := []simcore.SpeciesDefinition{
		{
			ID:            simcore.SpeciesId(0),
			Patch:         simcore.SpawnPatchId(0),
			Weight:        simcore.PressureWeight(1000),
			Dirichlet:     simcore.DirichletWeight(2),
			MinBurstSpawn: 0,
			MaxPopulation: 50,
			Health:        simcore.Health(2),
			Color:         simcore.NewBugColor(0x10, 0x20, 0x30),
			Scheduling: simcore.BurstSchedulingConfig{
				NominalBurstSize: 5,
				BurstCountMax:    4,
				Cadence:          simcore.CadenceRange{MinMs: 100, MaxMs: 100},
				Gap:              simcore.BurstGapRange{MinMs: 50, MaxMs: 50},
			},
		},
	}
	patches := []simcore.SpawnPatchDescriptor{
		{ID: simcore.SpawnPatchId(0), Spawners: []simcore.CellCoord{simcore.NewCellCoord(1, 1)}},
	}
	return Config{
		Spawning: spawning.Config{SpawnInterval: 0},
		Species:  simcore.NewSpeciesTableView(1, species, simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: 2000, StdDevMicros: 0}}),
		Patches:  simcore.NewSpawnPatchTableView(patches),
		Pressure: simcore.PressureConfig{Curve: simcore.PressureCurve{MeanMicros: 2000, StdDevMicros: 0}},
		GlobalSeed: 99,
	}
}

func TestStepAdvancesTickIndex(t *testing.T) {
	d := New(testConfig())
	before := d.TickIndex()

	events := d.Step(16*time.Millisecond, Input{})

	assert.Equal(t, before+1, d.TickIndex())
	assert.NotEmpty(t, events)
}

func TestStartNextWaveSchedulesSpawns(t *testing.T) {
	d := New(testConfig())
	plan := d.StartNextWave()

	assert.NotEmpty(t, plan.Bursts, "expected pressure to budget at least one burst")

	spawned := 0
	for i := 0; i < 200; i++ {
		for _, event := range d.Step(50*time.Millisecond, Input{}) {
			if event.Kind == simcore.EventBugSpawned {
				spawned++
			}
		}
	}

	assert.Greater(t, spawned, 0, "wave bursts should have spawned bugs over time")
}

func TestPlaceTowerInBuilderModeUpdatesAnalytics(t *testing.T) {
	d := New(testConfig())
	d.Step(time.Millisecond, Input{})

	d.SetPlayMode(simcore.PlayModeBuilder)

	origin, ok := findFreeFootprint(d.Occupancy(), simcore.CellRectSize{Width: 2, Height: 2})
	if !assert.True(t, ok, "expected at least one free 2x2 region on the default grid") {
		t.FailNow()
	}

	preview := &builder.PlacementPreview{
		Kind:      simcore.TowerBasic,
		Origin:    origin,
		Placeable: true,
	}
	input := Input{Preview: preview, Builder: builder.Input{ConfirmAction: true}}

	var sawLayoutChange bool
	for i := 0; i < 5; i++ {
		produced := d.Step(10*time.Millisecond, input)
		for _, e := range produced {
			if e.Kind == simcore.EventMazeLayoutChanged {
				sawLayoutChange = true
			}
		}
		input.Builder.ConfirmAction = false
	}

	assert.True(t, sawLayoutChange, "placing a tower should report a layout change")

	_, haveReport := d.LastStatsReport()
	assert.True(t, haveReport, "analytics should have produced a report after the layout changed and a tick elapsed")
}

// findFreeFootprint scans the occupancy grid in row-major order for the
// first origin whose size-cell footprint is entirely unoccupied.
func findFreeFootprint(occupancy simcore.OccupancyView, size simcore.CellRectSize) (simcore.CellCoord, bool) {
	columns, rows := occupancy.Dimensions()
	for row := uint32(0); row+size.Height <= rows; row++ {
		for column := uint32(0); column+size.Width <= columns; column++ {
			free := true
			for r := row; r < row+size.Height && free; r++ {
				for c := column; c < column+size.Width; c++ {
					if !occupancy.IsFree(simcore.NewCellCoord(c, r)) {
						free = false
						break
					}
				}
			}
			if free {
				return simcore.NewCellCoord(column, row), true
			}
		}
	}
	return simcore.CellCoord{}, false
}
