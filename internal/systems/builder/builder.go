// Package builder translates a placement preview and adapter-derived input
// into tower placement and removal commands while the simulation is in
// builder mode.
package builder

import "github.com/toejough/maze-defence/internal/simcore"

// PlacementPreview is a declarative description of a potential tower
// construction, typically computed by the adapter from the cursor cell.
type PlacementPreview struct {
	Kind      simcore.TowerKind
	Origin    simcore.CellCoord
	Region    simcore.CellRect
	Placeable bool
}

// Input is the per-frame input snapshot distilled from adapter-provided
// frame data.
type Input struct {
	ConfirmAction bool
	RemoveAction  bool
	CursorCell    simcore.CellCoord
	HasCursor     bool
}

// TowerAt mirrors the world's tower-lookup-by-cell query so System can
// identify the hovered tower without depending on the world package.
type TowerAt func(simcore.CellCoord) (simcore.TowerId, bool)

// System translates preview and input into placement commands, tracking
// the active play mode from observed events.
type System struct {
	mode simcore.PlayMode
}

// Handle consumes events and input to append PlaceTower/RemoveTower
// commands to out. Silent outside builder mode.
func (s *System) Handle(events []simcore.Event, preview *PlacementPreview, input Input, towerAt TowerAt, out *[]simcore.Command) {
	for _, e := range events {
		if e.Kind == simcore.EventPlayModeChanged {
			s.mode = e.Mode
		}
	}

	if s.mode != simcore.PlayModeBuilder {
		return
	}

	if input.ConfirmAction && preview != nil && preview.Placeable {
		*out = append(*out, simcore.PlaceTower(preview.Kind, preview.Origin))
	}

	if input.RemoveAction && input.HasCursor {
		if tower, ok := towerAt(input.CursorCell); ok {
			*out = append(*out, simcore.RemoveTower(tower))
		}
	}
}
