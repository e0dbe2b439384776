package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestHandleIgnoresInputOutsideBuilderMode(t *testing.T) {
	var s System
	preview := &PlacementPreview{Kind: simcore.TowerBasic, Origin: simcore.NewCellCoord(1, 1), Placeable: true}
	input := Input{ConfirmAction: true}

	var out []simcore.Command
	s.Handle(nil, preview, input, func(simcore.CellCoord) (simcore.TowerId, bool) { return 0, false }, &out)

	assert.Empty(t, out)
}

func TestHandleEmitsPlaceTowerOnConfirm(t *testing.T) {
	var s System
	events := []simcore.Event{simcore.PlayModeChanged(simcore.PlayModeBuilder)}
	preview := &PlacementPreview{Kind: simcore.TowerBasic, Origin: simcore.NewCellCoord(2, 3), Placeable: true}
	input := Input{ConfirmAction: true}

	var out []simcore.Command
	s.Handle(events, preview, input, func(simcore.CellCoord) (simcore.TowerId, bool) { return 0, false }, &out)

	assert.Len(t, out, 1)
	assert.Equal(t, simcore.CommandPlaceTower, out[0].Kind)
	assert.Equal(t, simcore.NewCellCoord(2, 3), out[0].Origin)
}

func TestHandleEmitsRemoveTowerOnHoveredCell(t *testing.T) {
	s := System{mode: simcore.PlayModeBuilder}
	input := Input{RemoveAction: true, HasCursor: true, CursorCell: simcore.NewCellCoord(4, 4)}

	var out []simcore.Command
	s.Handle(nil, nil, input, func(cell simcore.CellCoord) (simcore.TowerId, bool) {
		if cell == simcore.NewCellCoord(4, 4) {
			return 9, true
		}
		return 0, false
	}, &out)

	assert.Len(t, out, 1)
	assert.Equal(t, simcore.CommandRemoveTower, out[0].Kind)
	assert.Equal(t, simcore.TowerId(9), out[0].Tower)
}
