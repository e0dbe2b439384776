package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestChoosesShortestPathAcrossSpawners(t *testing.T) {
	navigation := simcore.NewNavigationFieldView([]uint16{4, 3, 2, 3, 2, 1, 2, 1, 0}, 3, 3)
	layout := simcore.NewAnalyticsLayoutSnapshot(
		[]simcore.CellCoord{simcore.NewCellCoord(0, 0), simcore.NewCellCoord(0, 1)},
		[]simcore.CellCoord{simcore.NewCellCoord(2, 2)},
	)

	var scratch Scratch
	selected, ok := SelectShortestNavigationPath(navigation, layout, &scratch)
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, []simcore.CellCoord{
		simcore.NewCellCoord(0, 1),
		simcore.NewCellCoord(1, 1),
		simcore.NewCellCoord(2, 1),
		simcore.NewCellCoord(2, 2),
	}, selected)
}

func TestIgnoresUnreachableSpawners(t *testing.T) {
	unreachableMark := ^uint16(0)
	navigation := simcore.NewNavigationFieldView([]uint16{
		unreachableMark, unreachableMark, 2,
		unreachableMark, 2, 1,
		2, 1, 0,
	}, 3, 3)
	layout := simcore.NewAnalyticsLayoutSnapshot(
		[]simcore.CellCoord{simcore.NewCellCoord(0, 0), simcore.NewCellCoord(1, 2)},
		[]simcore.CellCoord{simcore.NewCellCoord(2, 2)},
	)

	var scratch Scratch
	selected, ok := SelectShortestNavigationPath(navigation, layout, &scratch)
	if !assert.True(t, ok) {
		t.FailNow()
	}

	assert.Equal(t, []simcore.CellCoord{simcore.NewCellCoord(1, 2), simcore.NewCellCoord(2, 2)}, selected)
}

func TestReturnsNoneWhenNoPathExists(t *testing.T) {
	unreachableMark := ^uint16(0)
	navigation := simcore.NewNavigationFieldView([]uint16{unreachableMark, unreachableMark, unreachableMark, unreachableMark}, 2, 2)
	layout := simcore.NewAnalyticsLayoutSnapshot([]simcore.CellCoord{simcore.NewCellCoord(0, 0)}, []simcore.CellCoord{simcore.NewCellCoord(1, 1)})

	var scratch Scratch
	_, ok := SelectShortestNavigationPath(navigation, layout, &scratch)
	assert.False(t, ok)
}

func TestComputeStatsReportCountsTowersAndDps(t *testing.T) {
	navigation := simcore.NewNavigationFieldView([]uint16{1, 0}, 2, 1)
	layout := simcore.NewAnalyticsLayoutSnapshot([]simcore.CellCoord{simcore.NewCellCoord(0, 0)}, []simcore.CellCoord{simcore.NewCellCoord(1, 0)})
	towers := simcore.TowerAnalyticsView{Snapshots: []simcore.TowerAnalyticsSnapshot{
		{
			Tower:           1,
			Kind:            simcore.TowerBasic,
			Region:          simcore.NewCellRect(simcore.NewCellCoord(0, 0), simcore.CellRectSize{Width: 2, Height: 2}),
			RangeCells:      4,
			DamagePerSecond: 10,
		},
	}}
	inputs := simcore.NewAnalyticsInputs(layout, towers)
	cooldowns := simcore.NewTowerCooldownView(nil)

	var scratch Scratch
	report := ComputeStatsReport(navigation, inputs, cooldowns, 2, &scratch)

	assert.Equal(t, uint32(1), report.TowerCount)
	assert.Equal(t, uint32(10), report.TotalDps)
	assert.Equal(t, uint32(2), report.PathLength)
	assert.Equal(t, uint32(10_000), report.FiringBps)
}
