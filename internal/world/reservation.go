package world

import (
	"sort"

	"github.com/toejough/maze-defence/internal/simcore"
)

// stepRequest is a single bug's request to advance one cell in a given
// direction, queued for arbitration when the StepBug command is applied.
type stepRequest struct {
	bugID     simcore.BugId
	direction simcore.Direction
}

// reservationFrame buffers step requests submitted during a single tick.
// Requests queued under a stale tick index are discarded, and the frame is
// always drained in ascending bug-id order so first-writer-wins semantics
// are deterministic regardless of submission order.
type reservationFrame struct {
	tickIndex uint64
	requests  []stepRequest
}

func (f *reservationFrame) clear() {
	f.tickIndex = 0
	f.requests = f.requests[:0]
}

func (f *reservationFrame) queue(tickIndex uint64, request stepRequest) {
	if f.tickIndex != tickIndex {
		f.tickIndex = tickIndex
		f.requests = f.requests[:0]
	}
	f.requests = append(f.requests, request)
}

// drainSorted returns the queued requests ordered by ascending bug id and
// empties the frame.
func (f *reservationFrame) drainSorted() []stepRequest {
	sort.Slice(f.requests, func(i, j int) bool { return f.requests[i].bugID < f.requests[j].bugID })
	drained := f.requests
	f.requests = nil
	return drained
}
