package simcore

import "time"

// EventKind discriminates the variants of Event. As with Command, Event is
// a tagged struct rather than an interface hierarchy: systems switch on
// Kind and read only the fields that variant populates.
type EventKind int

const (
	// EventTimeAdvanced reports that simulated time moved forward by
	// Elapsed. Every system that accumulates time waits for this event
	// before acting.
	EventTimeAdvanced EventKind = iota
	// EventBugAdvanced reports a bug moved from one cell to an adjacent one.
	EventBugAdvanced
	// EventBugExited reports a bug reached the goal and left the maze.
	EventBugExited
	// EventPlayModeChanged reports the active play mode changed.
	EventPlayModeChanged
	// EventBugSpawned reports a new bug entered the maze.
	EventBugSpawned
	// EventTowerPlaced reports a tower was successfully constructed.
	EventTowerPlaced
	// EventTowerRemoved reports a tower was successfully torn down.
	EventTowerRemoved
	// EventTowerPlacementRejected reports a placement request failed.
	EventTowerPlacementRejected
	// EventTowerRemovalRejected reports a removal request failed.
	EventTowerRemovalRejected
	// EventProjectileFired reports a tower launched a projectile.
	EventProjectileFired
	// EventProjectileHit reports a projectile reached its target.
	EventProjectileHit
	// EventProjectileExpired reports a projectile's target left the maze
	// before it connected.
	EventProjectileExpired
	// EventProjectileRejected reports a fire request failed.
	EventProjectileRejected
	// EventBugDamaged reports a bug's health was reduced.
	EventBugDamaged
	// EventBugDied reports a bug's health reached zero.
	EventBugDied
	// EventMazeLayoutChanged reports the tile grid, wall, or target set
	// changed in a way that invalidates cached navigation/analytics state.
	EventMazeLayoutChanged
	// EventAttackPlanReady reports a wave's deterministic spawn schedule
	// was produced.
	EventAttackPlanReady
	// EventAnalyticsUpdated reports a new stats report was published.
	EventAnalyticsUpdated
)

// Event is the tagged union of every notification the world or a system may
// emit during a tick. Only the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// EventTimeAdvanced
	Elapsed time.Duration

	// EventBugAdvanced, EventBugExited, EventBugDamaged, EventBugDied,
	// EventBugSpawned (Bug is the newly assigned id)
	Bug BugId

	// EventBugAdvanced
	From      CellCoord
	To        CellCoord
	Direction Direction

	// EventPlayModeChanged
	Mode PlayMode

	// EventBugSpawned
	SpawnerCell CellCoord
	Color       BugColor
	Health      Health

	// EventTowerPlaced, EventTowerRemoved, EventProjectileFired
	Tower TowerId

	// EventTowerPlaced
	TowerKind TowerKind
	Origin    CellCoord

	// EventTowerPlacementRejected
	PlacementErr PlacementError

	// EventTowerRemovalRejected
	RemovalErr RemovalError

	// EventProjectileFired, EventProjectileHit, EventProjectileExpired
	Projectile ProjectileId

	// EventProjectileFired, EventProjectileHit
	Target BugId

	// EventProjectileRejected
	ProjectileErr ProjectileRejection

	// EventBugDamaged
	Damage        Damage
	RemainingHP   Health

	// EventAttackPlanReady
	Plan AttackPlan

	// EventAnalyticsUpdated
	Report StatsReport
}

// TimeAdvanced builds a time-advance event.
func TimeAdvanced(elapsed time.Duration) Event {
	return Event{Kind: EventTimeAdvanced, Elapsed: elapsed}
}

// BugAdvanced builds a bug-movement event.
func BugAdvanced(bug BugId, from, to CellCoord, dir Direction) Event {
	return Event{Kind: EventBugAdvanced, Bug: bug, From: from, To: to, Direction: dir}
}

// BugExited builds a bug-exit event.
func BugExited(bug BugId, from CellCoord) Event {
	return Event{Kind: EventBugExited, Bug: bug, From: from}
}

// PlayModeChanged builds a play-mode transition event.
func PlayModeChanged(mode PlayMode) Event {
	return Event{Kind: EventPlayModeChanged, Mode: mode}
}

// BugSpawned builds a bug-spawn event.
func BugSpawned(bug BugId, spawner CellCoord, color BugColor, health Health) Event {
	return Event{Kind: EventBugSpawned, Bug: bug, SpawnerCell: spawner, Color: color, Health: health}
}

// TowerPlaced builds a tower-placement event.
func TowerPlaced(tower TowerId, kind TowerKind, origin CellCoord) Event {
	return Event{Kind: EventTowerPlaced, Tower: tower, TowerKind: kind, Origin: origin}
}

// TowerRemoved builds a tower-removal event.
func TowerRemoved(tower TowerId) Event {
	return Event{Kind: EventTowerRemoved, Tower: tower}
}

// TowerPlacementRejected builds a rejected-placement event.
func TowerPlacementRejected(err PlacementError) Event {
	return Event{Kind: EventTowerPlacementRejected, PlacementErr: err}
}

// TowerRemovalRejected builds a rejected-removal event.
func TowerRemovalRejected(tower TowerId, err RemovalError) Event {
	return Event{Kind: EventTowerRemovalRejected, Tower: tower, RemovalErr: err}
}

// ProjectileFired builds a projectile-launch event.
func ProjectileFired(projectile ProjectileId, tower TowerId, target BugId) Event {
	return Event{Kind: EventProjectileFired, Projectile: projectile, Tower: tower, Target: target}
}

// ProjectileHit builds a projectile-connected event.
func ProjectileHit(projectile ProjectileId, target BugId) Event {
	return Event{Kind: EventProjectileHit, Projectile: projectile, Target: target}
}

// ProjectileExpired builds a projectile-lost-target event.
func ProjectileExpired(projectile ProjectileId) Event {
	return Event{Kind: EventProjectileExpired, Projectile: projectile}
}

// ProjectileRejected builds a rejected-fire event.
func ProjectileRejected(err ProjectileRejection) Event {
	return Event{Kind: EventProjectileRejected, ProjectileErr: err}
}

// BugDamaged builds a bug-damage event.
func BugDamaged(bug BugId, damage Damage, remaining Health) Event {
	return Event{Kind: EventBugDamaged, Bug: bug, Damage: damage, RemainingHP: remaining}
}

// BugDied builds a bug-death event.
func BugDied(bug BugId) Event {
	return Event{Kind: EventBugDied, Bug: bug}
}

// MazeLayoutChanged builds a layout-invalidation event.
func MazeLayoutChanged() Event {
	return Event{Kind: EventMazeLayoutChanged}
}

// AttackPlanReady builds a plan-published event.
func AttackPlanReady(plan AttackPlan) Event {
	return Event{Kind: EventAttackPlanReady, Plan: plan}
}

// AnalyticsUpdated builds a report-published event.
func AnalyticsUpdated(report StatsReport) Event {
	return Event{Kind: EventAnalyticsUpdated, Report: report}
}
