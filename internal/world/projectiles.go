package world

import "github.com/toejough/maze-defence/internal/simcore"

// projectile is a single in-flight shot travelling toward the bug it
// locked onto at fire time. Distance remaining is tracked in half-cell
// units so no floating-point arithmetic enters the deterministic core.
type projectile struct {
	id               simcore.ProjectileId
	tower            simcore.TowerId
	target           simcore.BugId
	damage           simcore.Damage
	halfCellsPerMs    uint32
	remainingHalfCells uint32
}

type projectileTracker struct {
	entries       []*projectile
	nextProjectileID simcore.ProjectileId
}

func (t *projectileTracker) launch(tower simcore.TowerId, target simcore.BugId, damage simcore.Damage, halfCellDistance, speedHalfCellsPerMs uint32) simcore.ProjectileId {
	id := t.nextProjectileID
	t.nextProjectileID++
	t.entries = append(t.entries, &projectile{
		id:                 id,
		tower:              tower,
		target:             target,
		damage:             damage,
		halfCellsPerMs:     speedHalfCellsPerMs,
		remainingHalfCells: halfCellDistance,
	})
	return id
}

// advance moves every in-flight projectile forward by elapsedMs worth of
// travel, returning the projectiles that connected or expired this tick. Expired
// projectiles are ones whose target the caller reports as gone.
func (t *projectileTracker) advance(elapsedMs uint32, targetStillPresent func(simcore.BugId) bool) (hits []*projectile, expired []*projectile) {
	remaining := t.entries[:0]
	for _, p := range t.entries {
		if !targetStillPresent(p.target) {
			expired = append(expired, p)
			continue
		}
		travel := p.halfCellsPerMs * elapsedMs
		if travel >= p.remainingHalfCells {
			hits = append(hits, p)
			continue
		}
		p.remainingHalfCells -= travel
		remaining = append(remaining, p)
	}
	t.entries = remaining
	return hits, expired
}

func (t *projectileTracker) view() simcore.ProjectileView {
	snapshots := make([]simcore.ProjectileSnapshot, 0, len(t.entries))
	for _, p := range t.entries {
		snapshots = append(snapshots, simcore.ProjectileSnapshot{ID: p.id, Tower: p.tower, Target: p.target})
	}
	return simcore.NewProjectileView(snapshots)
}
