// Package analytics schedules and publishes deterministic recomputation of
// maze-wide statistics: coverage, tower uptime, path length, and total
// firepower.
package analytics

import "github.com/toejough/maze-defence/internal/simcore"

type recomputeRequest int

const (
	requestLayoutChanged recomputeRequest = iota
	requestManualRefresh
)

// Scratch bundles the reusable buffers metric computation writes into so
// repeated recomputes avoid allocating a fresh path on every tick.
type Scratch struct {
	path     []simcore.CellCoord
	frontier []simcore.CellCoord
}

// Path returns the reusable path buffer.
func (s *Scratch) Path() []simcore.CellCoord {
	return s.path
}

// SetPath replaces the path buffer's contents.
func (s *Scratch) SetPath(path []simcore.CellCoord) {
	s.path = path
}

// Frontier returns the reusable traversal working buffer.
func (s *Scratch) Frontier() []simcore.CellCoord {
	return s.frontier
}

// SetFrontier replaces the working buffer's contents.
func (s *Scratch) SetFrontier(frontier []simcore.CellCoord) {
	s.frontier = frontier
}

// Recompute produces a fresh stats report from the scratch buffers, or
// reports no report is available (for example, when no path is reachable).
type Recompute func(*Scratch) (simcore.StatsReport, bool)

// System queues recompute requests from observed events and commands, then
// invokes the supplied Recompute at most once per tick.
type System struct {
	lastReport     simcore.StatsReport
	haveReport     bool
	pendingRequest recomputeRequest
	hasPending     bool
	scratch        Scratch
}

// LastReport returns the most recently published report, if any.
func (s *System) LastReport() (simcore.StatsReport, bool) {
	return s.lastReport, s.haveReport
}

// Handle enqueues recompute requests from layout-change events and manual
// refresh commands, then recomputes at most once if a tick was observed and
// a request is pending.
func (s *System) Handle(events []simcore.Event, commands []simcore.Command, recompute Recompute, out *[]simcore.Event) {
	tickObserved := false

	for _, e := range events {
		switch e.Kind {
		case simcore.EventMazeLayoutChanged:
			s.enqueue(requestLayoutChanged)
		case simcore.EventTimeAdvanced:
			tickObserved = true
		}
	}

	for _, c := range commands {
		if c.Kind == simcore.CommandRequestAnalyticsRefresh {
			s.enqueue(requestManualRefresh)
		}
	}

	if !tickObserved || !s.hasPending {
		return
	}

	s.hasPending = false

	report, ok := recompute(&s.scratch)
	if !ok {
		return
	}

	s.lastReport = report
	s.haveReport = true
	*out = append(*out, simcore.AnalyticsUpdated(report))
}

func (s *System) enqueue(request recomputeRequest) {
	switch request {
	case requestLayoutChanged:
		s.pendingRequest = requestLayoutChanged
		s.hasPending = true
	case requestManualRefresh:
		if !s.hasPending {
			s.pendingRequest = requestManualRefresh
			s.hasPending = true
		}
	}
}
