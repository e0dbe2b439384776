package simcore

import (
	"math"
	"sort"
	"time"
)

// TowerKind enumerates the types of towers that can be constructed.
type TowerKind int

const (
	// TowerBasic is the default attack tower.
	TowerBasic TowerKind = iota
)

// RangeInTiles returns the tower's targeting range measured in tiles.
func (k TowerKind) RangeInTiles() float32 {
	switch k {
	case TowerBasic:
		return 4.0
	default:
		return 0
	}
}

// RangeInCells converts the tower's targeting range into whole cell units,
// guaranteeing floor(RangeInTiles() * cellsPerTile). A cellsPerTile of zero
// yields a zero radius rather than a negative or undefined one.
func (k TowerKind) RangeInCells(cellsPerTile uint32) uint32 {
	if cellsPerTile == 0 {
		return 0
	}
	scaled := float64(k.RangeInTiles()) * float64(cellsPerTile)
	return uint32(math.Floor(scaled))
}

// FireCooldown is the duration between successive shots for this tower kind.
func (k TowerKind) FireCooldown() time.Duration {
	switch k {
	case TowerBasic:
		return 1000 * time.Millisecond
	default:
		return 0
	}
}

// SpeedHalfCellsPerMs is the projectile speed expressed in half-cell units
// advanced per millisecond.
func (k TowerKind) SpeedHalfCellsPerMs() uint32 {
	switch k {
	case TowerBasic:
		return 12
	default:
		return 0
	}
}

// ProjectileDamage is the damage dealt by a projectile fired by this kind.
func (k TowerKind) ProjectileDamage() Damage {
	switch k {
	case TowerBasic:
		return Damage(1)
	default:
		return 0
	}
}

// Footprint reports the footprint size associated with a tower kind.
func (k TowerKind) Footprint() CellRectSize {
	switch k {
	case TowerBasic:
		return CellRectSize{Width: 2, Height: 2}
	default:
		return CellRectSize{}
	}
}

// PlacementError enumerates the reasons a tower placement request may be
// rejected by the world.
type PlacementError int

const (
	// PlacementInvalidMode indicates the simulation is not in builder mode.
	PlacementInvalidMode PlacementError = iota
	// PlacementOutOfBounds indicates the region extends beyond the grid.
	PlacementOutOfBounds
	// PlacementMisaligned indicates the origin is not tile-aligned.
	PlacementMisaligned
	// PlacementOccupied indicates the footprint overlaps an occupied cell.
	PlacementOccupied
)

// RemovalError enumerates the reasons a tower removal request may be
// rejected by the world.
type RemovalError int

const (
	// RemovalInvalidMode indicates the simulation is not in builder mode.
	RemovalInvalidMode RemovalError = iota
	// RemovalMissingTower indicates no tower with the given id exists.
	RemovalMissingTower
)

// ProjectileRejection enumerates the reasons a fire request may be rejected.
type ProjectileRejection int

const (
	// ProjectileInvalidMode indicates towers cannot fire in builder mode.
	ProjectileInvalidMode ProjectileRejection = iota
	// ProjectileCooldownActive indicates the tower's cooldown has not elapsed.
	ProjectileCooldownActive
	// ProjectileMissingTower indicates the tower does not exist.
	ProjectileMissingTower
	// ProjectileMissingTarget indicates the target bug does not exist.
	ProjectileMissingTarget
)

// TowerSnapshot is an immutable representation of a single tower's state.
type TowerSnapshot struct {
	ID     TowerId
	Kind   TowerKind
	Region CellRect
}

// TowerView is a read-only, id-ordered snapshot of the towers placed in the
// maze.
type TowerView struct {
	snapshots []TowerSnapshot
}

// NewTowerView builds a tower view from the provided snapshots, sorted by id.
func NewTowerView(snapshots []TowerSnapshot) TowerView {
	cp := append([]TowerSnapshot(nil), snapshots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return TowerView{snapshots: cp}
}

// Snapshots returns the ordered tower snapshots.
func (v TowerView) Snapshots() []TowerSnapshot {
	return v.snapshots
}

// TowerCooldownSnapshot reports how long until a tower may fire again.
type TowerCooldownSnapshot struct {
	Tower   TowerId
	Kind    TowerKind
	ReadyIn time.Duration
}

// TowerCooldownView is a read-only, tower-id-ordered view of cooldowns,
// ordered so combat can binary-search it.
type TowerCooldownView struct {
	snapshots []TowerCooldownSnapshot
}

// NewTowerCooldownView builds a cooldown view sorted by tower id.
func NewTowerCooldownView(snapshots []TowerCooldownSnapshot) TowerCooldownView {
	cp := append([]TowerCooldownSnapshot(nil), snapshots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Tower < cp[j].Tower })
	return TowerCooldownView{snapshots: cp}
}

// Snapshots returns the ordered cooldown snapshots.
func (v TowerCooldownView) Snapshots() []TowerCooldownSnapshot {
	return v.snapshots
}

// Find looks up the cooldown snapshot for tower via binary search.
func (v TowerCooldownView) Find(tower TowerId) (TowerCooldownSnapshot, bool) {
	snaps := v.snapshots
	i := sort.Search(len(snaps), func(i int) bool { return snaps[i].Tower >= tower })
	if i < len(snaps) && snaps[i].Tower == tower {
		return snaps[i], true
	}
	return TowerCooldownSnapshot{}, false
}

// TowerTarget records the canonical target bug selected for a tower.
type TowerTarget struct {
	Tower           TowerId
	Bug             BugId
	TowerCenterCell CellPoint
	BugCenterCell   CellPoint
}
