// Package driver wires the simulation core and its systems into a single
// fixed-timestep loop: it applies player and adapter input as commands,
// advances the world, and runs movement, spawning, targeting, combat,
// builder, and analytics in sequence each tick. Wave generation runs only
// when a wave is started.
package driver

import (
	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/world"
)

// WelcomeBanner returns the banner adapters may display to players.
func (d *Driver) WelcomeBanner() string { return world.WelcomeBanner(d.world) }

// Grid exposes the tile grid configuration required for rendering.
func (d *Driver) Grid() world.TileGrid { return world.Grid(d.world) }

// Bugs exposes the bugs currently inhabiting the maze for presentation.
func (d *Driver) Bugs() simcore.BugView { return world.BugSnapshots(d.world) }

// Wall exposes the perimeter wall guarding the maze.
func (d *Driver) Wall() world.Wall { return world.WallState(d.world) }

// TargetOpening exposes the hole carved into the wall for presentation.
func (d *Driver) TargetOpening() world.Target { return world.TargetOpening(d.world) }

// Towers exposes a read-only, id-ordered view of the placed towers.
func (d *Driver) Towers() simcore.TowerView { return world.Towers(d.world) }
func (d *Driver) Projectiles() simcore.ProjectileView { return world.Projectiles(d.world) }
func (d *Driver) SpawnerCells() []simcore.CellCoord { return world.SpawnerCells(d.world) }
func (d *Driver) TargetCells() []simcore.CellCoord { return world.TargetCells(d.world) }
func (d *Driver) CurrentWave() simcore.WaveId { return d.wave }

// TowerCooldowns exposes a read-only, tower-id-ordered view of cooldowns.
func (d *Driver) TowerCooldowns() simcore.TowerCooldownView { return world.TowerCooldowns(d.world) }

// Occupancy exposes a read-only view of the dense occupancy grid.
func (d *Driver) Occupancy() simcore.OccupancyView { return world.Occupancy(d.world) }

// Navigation exposes a read-only view of the BFS distance field.
func (d *Driver) Navigation() simcore.NavigationFieldView { return world.Navigation(d.world) }

// Mode reports the active play mode.
func (d *Driver) Mode() simcore.PlayMode { return world.Mode(d.world) }

// TickIndex reports the number of ticks applied so far.
func (d *Driver) TickIndex() uint64 { return world.TickIndex(d.world) }

// LastStatsReport returns the most recently published analytics report, if
// any has been computed yet.
func (d *Driver) LastStatsReport() (simcore.StatsReport, bool) { return d.analytics.LastReport() }
