package simcore

import (
	"sort"
	"time"
)

// BugSnapshot is an immutable representation of a single bug's state used
// for queries.
type BugSnapshot struct {
	ID            BugId
	Cell          CellCoord
	Color         BugColor
	Health        Health
	ReadyForStep  bool
	Accumulated   time.Duration
}

// BugView is a read-only, id-ordered snapshot of the bugs inhabiting the
// maze.
type BugView struct {
	snapshots []BugSnapshot
}

// NewBugView builds a bug view from the provided snapshots, sorted by id.
func NewBugView(snapshots []BugSnapshot) BugView {
	cp := append([]BugSnapshot(nil), snapshots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return BugView{snapshots: cp}
}

// Snapshots returns the ordered bug snapshots.
func (v BugView) Snapshots() []BugSnapshot {
	return v.snapshots
}

// OccupancyView is a read-only view into the dense occupancy grid.
type OccupancyView struct {
	Cells   []*BugId
	Columns uint32
	Rows    uint32
}

// NewOccupancyView captures a view backed by the provided cell slice. Cells
// holds nil for empty slots.
func NewOccupancyView(cells []*BugId, columns, rows uint32) OccupancyView {
	return OccupancyView{Cells: cells, Columns: columns, Rows: rows}
}

func (v OccupancyView) index(cell CellCoord) (int, bool) {
	if cell.Column >= v.Columns || cell.Row >= v.Rows {
		return 0, false
	}
	return int(cell.Row)*int(v.Columns) + int(cell.Column), true
}

// Occupant returns the bug occupying cell, if any.
func (v OccupancyView) Occupant(cell CellCoord) (BugId, bool) {
	idx, ok := v.index(cell)
	if !ok {
		return 0, false
	}
	if v.Cells[idx] == nil {
		return 0, false
	}
	return *v.Cells[idx], true
}

// IsFree reports whether the cell is free for traversal. Out-of-bounds
// cells are treated as free.
func (v OccupancyView) IsFree(cell CellCoord) bool {
	idx, ok := v.index(cell)
	if !ok {
		return true
	}
	return v.Cells[idx] == nil
}

// Dimensions reports the occupancy grid's width and height in cells.
func (v OccupancyView) Dimensions() (uint32, uint32) {
	return v.Columns, v.Rows
}

// NavigationFieldView is a read-only view into the BFS distance field.
type NavigationFieldView struct {
	Distances []uint16
	Width     uint32
	Height    uint32
}

// NewNavigationFieldView wraps an owned distance buffer.
func NewNavigationFieldView(distances []uint16, width, height uint32) NavigationFieldView {
	return NavigationFieldView{Distances: distances, Width: width, Height: height}
}

// Distance returns the recorded distance for cell, if it lies in the field.
func (v NavigationFieldView) Distance(cell CellCoord) (uint16, bool) {
	if cell.Column >= v.Width || cell.Row >= v.Height {
		return 0, false
	}
	idx := int(cell.Row)*int(v.Width) + int(cell.Column)
	if idx < 0 || idx >= len(v.Distances) {
		return 0, false
	}
	return v.Distances[idx], true
}

// ProjectileSnapshot is an immutable representation of a single in-flight
// projectile, for presentation purposes only: no gameplay decision reads
// this view.
type ProjectileSnapshot struct {
	ID     ProjectileId
	Tower  TowerId
	Target BugId
}

// ProjectileView is a read-only, id-ordered snapshot of in-flight
// projectiles.
type ProjectileView struct {
	snapshots []ProjectileSnapshot
}

// NewProjectileView builds a projectile view from the provided snapshots,
// sorted by id.
func NewProjectileView(snapshots []ProjectileSnapshot) ProjectileView {
	cp := append([]ProjectileSnapshot(nil), snapshots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })
	return ProjectileView{snapshots: cp}
}

// Snapshots returns the ordered projectile snapshots.
func (v ProjectileView) Snapshots() []ProjectileSnapshot {
	return v.snapshots
}

// AnalyticsLayoutSnapshot captures spawner and target coordinates for a
// single analytics recompute pass.
type AnalyticsLayoutSnapshot struct {
	Spawners []CellCoord
	Targets  []CellCoord
}

// NewAnalyticsLayoutSnapshot constructs a layout snapshot.
func NewAnalyticsLayoutSnapshot(spawners, targets []CellCoord) AnalyticsLayoutSnapshot {
	return AnalyticsLayoutSnapshot{Spawners: spawners, Targets: targets}
}

// TowerAnalyticsSnapshot captures deterministic tower metrics for analytics.
type TowerAnalyticsSnapshot struct {
	Tower           TowerId
	Kind            TowerKind
	Region          CellRect
	RangeCells      uint32
	DamagePerSecond uint32
}

// TowerAnalyticsView is a read-only snapshot of tower metrics.
type TowerAnalyticsView struct {
	Snapshots []TowerAnalyticsSnapshot
}

// AnalyticsInputs bundles the immutable inputs required for a recompute.
type AnalyticsInputs struct {
	Layout AnalyticsLayoutSnapshot
	Towers TowerAnalyticsView
}

// NewAnalyticsInputs constructs an analytics inputs bundle.
func NewAnalyticsInputs(layout AnalyticsLayoutSnapshot, towers TowerAnalyticsView) AnalyticsInputs {
	return AnalyticsInputs{Layout: layout, Towers: towers}
}

// StatsReport is the published result of an analytics recompute.
type StatsReport struct {
	// CoverageBps is the fraction of reachable interior cells within tower
	// range, expressed in basis points (hundredths of a percent).
	CoverageBps uint32
	// FiringBps is the fraction of towers currently off cooldown, in bps.
	FiringBps uint32
	// PathLength is the length in cells of the shortest spawner-to-exit path.
	PathLength uint32
	// TowerCount is the number of towers currently placed.
	TowerCount uint32
	// TotalDps is the sum of damage-per-second across all placed towers.
	TotalDps uint32
}
