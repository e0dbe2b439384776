package waveconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/world"
)

func TestDefaultTableHasOneSpeciesAndPatch(t *testing.T) {
	table := Default()

	require.Len(t, table.Species, 1)
	require.Len(t, table.Patches, 1)
	assert.Equal(t, simcore.SpawnPatchId(0), table.Species[0].Patch)
	assert.Empty(t, table.Patches[0].Spawners)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), table)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "species.toml")
	writeFile(t, path, `
[pressure]
mean_micros = 2000000
stddev_micros = 500000

[[patches]]
id = 0
spawners = [[3, 1], [4, 1]]

[[species]]
id = 0
patch = 0
weight = 1000
dirichlet = 3
min_burst_spawn = 1
max_population = 150
health = 5
color_red = 200
color_green = 40
color_blue = 40
nominal_burst_size = 3
burst_count_max = 5
cadence_min_ms = 200
cadence_max_ms = 500
burst_gap_min_ms = 700
burst_gap_max_ms = 1800
`)

	table, err := Load(path)
	require.NoError(t, err)

	require.Len(t, table.Species, 1)
	require.Len(t, table.Patches, 1)
	assert.Equal(t, simcore.Health(5), table.Species[0].Health)
	assert.Equal(t, int64(2000000), table.Pressure.Curve.MeanMicros)
	assert.Len(t, table.Patches[0].Spawners, 2)
}

func TestLoadRejectsSpeciesWithUndefinedPatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "species.toml")
	writeFile(t, path, `
[[species]]
id = 0
patch = 9
weight = 1000
dirichlet = 3
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsEmptySpeciesList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.toml")
	writeFile(t, path, "")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWithResolvedSpawnersFillsEmptyPatches(t *testing.T) {
	grid := world.NewTileGrid(10, 8, 100.0, 2, world.DefaultWallThickness)

	table := Default().WithResolvedSpawners(grid)

	require.Len(t, table.Patches, 1)
	assert.NotEmpty(t, table.Patches[0].Spawners)
	assert.Equal(t, world.SpawnerCellsForGrid(grid), table.Patches[0].Spawners)
}

func TestWithResolvedSpawnersLeavesExplicitSpawnersAlone(t *testing.T) {
	grid := world.NewTileGrid(10, 8, 100.0, 2, world.DefaultWallThickness)
	explicit := []simcore.CellCoord{simcore.NewCellCoord(1, 1)}
	table := Table{
		Species: []simcore.SpeciesDefinition{{ID: 0, Patch: 0}},
		Patches: []simcore.SpawnPatchDescriptor{{ID: 0, Spawners: explicit}},
	}

	resolved := table.WithResolvedSpawners(grid)

	assert.Equal(t, explicit, resolved.Patches[0].Spawners)
}

func TestViewsSortsBySpeciesAndPatchID(t *testing.T) {
	table := Table{
		Species: []simcore.SpeciesDefinition{
			{ID: 2, Patch: 0},
			{ID: 0, Patch: 1},
		},
		Patches: []simcore.SpawnPatchDescriptor{
			{ID: 1},
			{ID: 0},
		},
	}

	species, patches := table.Views(3)

	require.Len(t, species.Species, 2)
	assert.Equal(t, simcore.SpeciesId(0), species.Species[0].ID)
	assert.Equal(t, simcore.SpeciesId(2), species.Species[1].ID)
	assert.Equal(t, simcore.SpeciesTableVersion(3), species.Version)

	require.Len(t, patches.Patches, 2)
	assert.Equal(t, simcore.SpawnPatchId(0), patches.Patches[0].ID)
	assert.Equal(t, simcore.SpawnPatchId(1), patches.Patches[1].ID)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
