package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func sampleReport(seed uint32) simcore.StatsReport {
	return simcore.StatsReport{
		CoverageBps: seed,
		FiringBps:   seed + 1,
		PathLength:  seed + 2,
		TowerCount:  seed + 3,
		TotalDps:    seed + 4,
	}
}

func TestLayoutChangeRequiresTickBeforeRecompute(t *testing.T) {
	var system System
	var emitted []simcore.Event
	recomputeCalls := 0

	system.Handle([]simcore.Event{{Kind: simcore.EventMazeLayoutChanged}}, nil, func(*Scratch) (simcore.StatsReport, bool) {
		recomputeCalls++
		return sampleReport(10), true
	}, &emitted)

	assert.Equal(t, 0, recomputeCalls, "recompute must wait for a tick")
	assert.Empty(t, emitted)
	_, ok := system.LastReport()
	assert.False(t, ok)

	system.Handle([]simcore.Event{simcore.TimeAdvanced(16 * time.Millisecond)}, nil, func(*Scratch) (simcore.StatsReport, bool) {
		recomputeCalls++
		return sampleReport(20), true
	}, &emitted)

	assert.Equal(t, 1, recomputeCalls, "exactly one recompute after tick")
	if assert.Len(t, emitted, 1) {
		assert.Equal(t, simcore.EventAnalyticsUpdated, emitted[0].Kind)
		assert.Equal(t, sampleReport(20), emitted[0].Report)
	}
	report, ok := system.LastReport()
	assert.True(t, ok)
	assert.Equal(t, sampleReport(20), report)
}

func TestManualRefreshCoalescesDuplicates(t *testing.T) {
	var system System
	var emitted []simcore.Event
	recomputeCalls := 0

	commands := []simcore.Command{
		simcore.RequestAnalyticsRefresh(),
		simcore.RequestAnalyticsRefresh(),
	}
	system.Handle([]simcore.Event{simcore.TimeAdvanced(16 * time.Millisecond)}, commands, func(*Scratch) (simcore.StatsReport, bool) {
		recomputeCalls++
		return sampleReport(40), true
	}, &emitted)

	assert.Equal(t, 1, recomputeCalls, "manual refresh should trigger once")
	assert.Len(t, emitted, 1)
	report, ok := system.LastReport()
	assert.True(t, ok)
	assert.Equal(t, sampleReport(40), report)
}

func TestLayoutAndManualRequestsCoalescePerTick(t *testing.T) {
	var system System
	var emitted []simcore.Event
	recomputeCalls := 0

	events := []simcore.Event{
		{Kind: simcore.EventMazeLayoutChanged},
		{Kind: simcore.EventMazeLayoutChanged},
		simcore.TimeAdvanced(8 * time.Millisecond),
	}
	commands := []simcore.Command{simcore.RequestAnalyticsRefresh()}

	system.Handle(events, commands, func(*Scratch) (simcore.StatsReport, bool) {
		recomputeCalls++
		return sampleReport(60), true
	}, &emitted)

	assert.Equal(t, 1, recomputeCalls, "multiple triggers must coalesce per tick")
	assert.Len(t, emitted, 1)
	report, _ := system.LastReport()
	assert.Equal(t, sampleReport(60), report)

	emitted = nil
	system.Handle([]simcore.Event{simcore.TimeAdvanced(8 * time.Millisecond)}, nil, func(*Scratch) (simcore.StatsReport, bool) {
		recomputeCalls++
		return sampleReport(80), true
	}, &emitted)

	assert.Equal(t, 1, recomputeCalls, "no recompute when queue is empty")
	assert.Empty(t, emitted)
	report, _ = system.LastReport()
	assert.Equal(t, sampleReport(60), report)
}

func TestScratchBuffersReuse(t *testing.T) {
	var scratch Scratch
	scratch.SetPath(append(scratch.Path(), simcore.NewCellCoord(0, 0)))
	scratch.SetFrontier(append(scratch.Frontier(), simcore.NewCellCoord(1, 1)))

	assert.Equal(t, []simcore.CellCoord{simcore.NewCellCoord(0, 0)}, scratch.Path())
	assert.Equal(t, []simcore.CellCoord{simcore.NewCellCoord(1, 1)}, scratch.Frontier())
}
