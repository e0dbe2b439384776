// Package targeting deterministically selects, for every placed tower, the
// nearest in-range bug using integer half-cell distance arithmetic so the
// result never depends on floating-point rounding.
package targeting

import "github.com/toejough/maze-defence/internal/simcore"

type halfCellPoint struct {
	column int64
	row    int64
}

func (p halfCellPoint) toCellPoint() simcore.CellPoint {
	return simcore.NewCellPoint(float32(p.column)/2.0, float32(p.row)/2.0)
}

type towerWorkspace struct {
	id     simcore.TowerId
	kind   simcore.TowerKind
	center halfCellPoint
}

type bugCandidate struct {
	id     simcore.BugId
	column uint32
	row    uint32
	center halfCellPoint
}

type bestCandidate struct {
	distanceSq int64
	bug        simcore.BugId
	bugColumn  uint32
	bugRow     uint32
	bugCenter  halfCellPoint
}

// precedes implements the tie-break ordering: nearest first, then lowest
// bug id, then lowest column, then lowest row.
func (c bestCandidate) precedes(other bestCandidate) bool {
	if c.distanceSq != other.distanceSq {
		return c.distanceSq < other.distanceSq
	}
	if c.bug != other.bug {
		return c.bug < other.bug
	}
	if c.bugColumn != other.bugColumn {
		return c.bugColumn < other.bugColumn
	}
	return c.bugRow < other.bugRow
}

// System reuses scratch buffers across calls to avoid repeated allocation
// in the hot per-tick targeting pass.
type System struct {
	towerWorkspace []towerWorkspace
	bugWorkspace   []bugCandidate
}

// Handle computes a deterministic target for each tower in range of at
// least one bug, clearing out before populating it with the latest
// assignments.
func (s *System) Handle(mode simcore.PlayMode, towers simcore.TowerView, bugs simcore.BugView, cellsPerTile uint32, out *[]simcore.TowerTarget) {
	*out = (*out)[:0]

	if mode != simcore.PlayModeAttack {
		return
	}

	towerSnapshots := towers.Snapshots()
	bugSnapshots := bugs.Snapshots()
	if len(towerSnapshots) == 0 || len(bugSnapshots) == 0 {
		return
	}

	s.prepareTowerWorkspace(towerSnapshots)
	if len(s.towerWorkspace) == 0 {
		return
	}

	s.prepareBugWorkspace(bugSnapshots)
	if len(s.bugWorkspace) == 0 {
		return
	}

	for _, tower := range s.towerWorkspace {
		radiusCells := int64(tower.kind.RangeInCells(cellsPerTile))
		radiusHalf := radiusCells * 2
		maxDistance := radiusHalf * radiusHalf

		var best bestCandidate
		haveBest := false

		for _, candidate := range s.bugWorkspace {
			dx := candidate.center.column - tower.center.column
			dy := candidate.center.row - tower.center.row
			distanceSq := dx*dx + dy*dy

			if distanceSq > maxDistance {
				continue
			}

			current := bestCandidate{
				distanceSq: distanceSq,
				bug:        candidate.id,
				bugColumn:  candidate.column,
				bugRow:     candidate.row,
				bugCenter:  candidate.center,
			}

			if !haveBest || current.precedes(best) {
				best = current
				haveBest = true
			}
		}

		if haveBest {
			*out = append(*out, simcore.TowerTarget{
				Tower:           tower.id,
				Bug:             best.bug,
				TowerCenterCell: tower.center.toCellPoint(),
				BugCenterCell:   best.bugCenter.toCellPoint(),
			})
		}
	}
}

func (s *System) prepareTowerWorkspace(snapshots []simcore.TowerSnapshot) {
	s.towerWorkspace = s.towerWorkspace[:0]
	for _, snap := range snapshots {
		size := snap.Region.Size
		if size.Width == 0 || size.Height == 0 {
			continue
		}
		origin := snap.Region.Origin
		center := halfCellPoint{
			column: int64(origin.Column)*2 + int64(size.Width),
			row:    int64(origin.Row)*2 + int64(size.Height),
		}
		s.towerWorkspace = append(s.towerWorkspace, towerWorkspace{id: snap.ID, kind: snap.Kind, center: center})
	}
}

func (s *System) prepareBugWorkspace(snapshots []simcore.BugSnapshot) {
	s.bugWorkspace = s.bugWorkspace[:0]
	for _, snap := range snapshots {
		center := halfCellPoint{
			column: int64(snap.Cell.Column)*2 + 1,
			row:    int64(snap.Cell.Row)*2 + 1,
		}
		s.bugWorkspace = append(s.bugWorkspace, bugCandidate{id: snap.ID, column: snap.Cell.Column, row: snap.Cell.Row, center: center})
	}
}
