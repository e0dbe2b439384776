package world

import (
	"sort"
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
)

// towerState is the authoritative record the world keeps for a single
// constructed tower.
type towerState struct {
	id      simcore.TowerId
	kind    simcore.TowerKind
	region  simcore.CellRect
	cooldownRemaining time.Duration
}

// towerRegistry stores towers in id order and manages identifier
// allocation. Identifiers are monotonically increasing and never reused,
// mirroring the bug id discipline.
type towerRegistry struct {
	entries      map[simcore.TowerId]*towerState
	order        []simcore.TowerId
	nextTowerID  simcore.TowerId
}

func newTowerRegistry() *towerRegistry {
	return &towerRegistry{entries: make(map[simcore.TowerId]*towerState)}
}

func footprintFor(kind simcore.TowerKind) simcore.CellRectSize {
	return kind.Footprint()
}

func (r *towerRegistry) insert(kind simcore.TowerKind, origin simcore.CellCoord) simcore.TowerId {
	id := r.nextTowerID
	r.nextTowerID++
	region := simcore.NewCellRect(origin, footprintFor(kind))
	r.entries[id] = &towerState{id: id, kind: kind, region: region}
	r.order = append(r.order, id)
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return id
}

func (r *towerRegistry) remove(id simcore.TowerId) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *towerRegistry) get(id simcore.TowerId) (*towerState, bool) {
	t, ok := r.entries[id]
	return t, ok
}

// overlapsAny reports whether region overlaps any currently placed tower.
func (r *towerRegistry) overlapsAny(region simcore.CellRect) bool {
	for _, id := range r.order {
		if r.entries[id].region.Overlaps(region) {
			return true
		}
	}
	return false
}

// blocksCell reports whether any tower's footprint covers cell, used to
// mark the navigation field.
func (r *towerRegistry) blocksCell(cell simcore.CellCoord) bool {
	for _, id := range r.order {
		if r.entries[id].region.Contains(cell) {
			return true
		}
	}
	return false
}

func (r *towerRegistry) tick(elapsed time.Duration) {
	for _, id := range r.order {
		t := r.entries[id]
		if t.cooldownRemaining > 0 {
			t.cooldownRemaining -= elapsed
			if t.cooldownRemaining < 0 {
				t.cooldownRemaining = 0
			}
		}
	}
}

func (r *towerRegistry) arm(id simcore.TowerId) {
	if t, ok := r.entries[id]; ok {
		t.cooldownRemaining = t.kind.FireCooldown()
	}
}

func (r *towerRegistry) view() simcore.TowerView {
	snapshots := make([]simcore.TowerSnapshot, 0, len(r.order))
	for _, id := range r.order {
		t := r.entries[id]
		snapshots = append(snapshots, simcore.TowerSnapshot{ID: t.id, Kind: t.kind, Region: t.region})
	}
	return simcore.NewTowerView(snapshots)
}

func (r *towerRegistry) cooldownView() simcore.TowerCooldownView {
	snapshots := make([]simcore.TowerCooldownSnapshot, 0, len(r.order))
	for _, id := range r.order {
		t := r.entries[id]
		snapshots = append(snapshots, simcore.TowerCooldownSnapshot{Tower: t.id, Kind: t.kind, ReadyIn: t.cooldownRemaining})
	}
	return simcore.NewTowerCooldownView(snapshots)
}
