// Package rendering defines the boundary between the simulation driver and
// a presentation layer: a read-only Scene a renderer populates each frame,
// and a FrameInput struct carrying cursor and button state back into the
// driver. No concrete renderer lives here; adapters compose over these
// types the way the teacher's prototype wires ebiten directly into main.
package rendering

import (
	"time"

	"github.com/toejough/maze-defence/internal/simcore"
	"github.com/toejough/maze-defence/internal/world"
)

// Color is the RGBA color a renderer uses to present a single element of
// the scene.
type Color struct {
	Red, Green, Blue, Alpha float32
}

// NewColor constructs an opaque color from byte RGB channels, the way bug
// and tile colors arrive from the simulation.
func NewColor(red, green, blue uint8) Color {
	return Color{
		Red:   float32(red) / 255,
		Green: float32(green) / 255,
		Blue:  float32(blue) / 255,
		Alpha: 1,
	}
}

// BugGlyph is a single bug's presentation state for one frame.
type BugGlyph struct {
	ID     simcore.BugId
	Cell   simcore.CellCoord
	Color  Color
	Health simcore.Health
}

// TowerGlyph is a single tower's presentation state for one frame.
type TowerGlyph struct {
	ID     simcore.TowerId
	Kind   simcore.TowerKind
	Region simcore.CellRect
}

// ProjectileGlyph is a single in-flight projectile's presentation state.
type ProjectileGlyph struct {
	ID     simcore.ProjectileId
	Tower  simcore.TowerId
	Target simcore.BugId
}

// TowerPreview describes the tower a builder-mode cursor would place if
// confirmed this frame.
type TowerPreview struct {
	Kind      simcore.TowerKind
	Region    simcore.CellRect
	Placeable bool
}

// ControlPanel summarizes the state a renderer shows alongside the maze:
// the active play mode, current wave, and the most recent analytics
// report, if one has been computed.
type ControlPanel struct {
	Mode       simcore.PlayMode
	Wave       simcore.WaveId
	HasReport  bool
	Report     simcore.StatsReport
}

// Scene is the read-only snapshot a rendering backend consumes once per
// frame. Every field is already resolved to presentation-friendly values;
// a renderer should never need to query the driver directly to draw a
// frame.
type Scene struct {
	Grid         world.TileGrid
	Targets      []simcore.CellCoord
	Spawners     []simcore.CellCoord
	Bugs         []BugGlyph
	Towers       []TowerGlyph
	Projectiles  []ProjectileGlyph
	Preview      *TowerPreview
	Targeting    []simcore.TowerTarget
	Panel        ControlPanel
}

// FrameInput is the per-frame input snapshot a renderer hands back to the
// driver: a toggle between attack and builder mode, a request to start the
// next wave, the cursor in both world and tile space, and the confirm/
// remove actions associated with builder-mode clicks.
type FrameInput struct {
	ModeToggle      bool
	StartWave       bool
	CursorWorldX    float32
	CursorWorldY    float32
	CursorTileSpace simcore.CellCoord
	HasCursor       bool
	ConfirmAction   bool
	RemoveAction    bool
	Elapsed         time.Duration
}
