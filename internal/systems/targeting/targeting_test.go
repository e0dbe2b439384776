package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func towerSnapshot(id uint32, origin, size [2]uint32) simcore.TowerSnapshot {
	return simcore.TowerSnapshot{
		ID:   simcore.TowerId(id),
		Kind: simcore.TowerBasic,
		Region: simcore.NewCellRect(
			simcore.NewCellCoord(origin[0], origin[1]),
			simcore.CellRectSize{Width: size[0], Height: size[1]},
		),
	}
}

func bugSnapshot(id uint32, cell [2]uint32) simcore.BugSnapshot {
	return simcore.BugSnapshot{
		ID:           simcore.BugId(id),
		Cell:         simcore.NewCellCoord(cell[0], cell[1]),
		Color:        simcore.NewBugColor(255, 0, 0),
		Health:       simcore.Health(3),
		ReadyForStep: true,
	}
}

func TestTargetsBugWithinRange(t *testing.T) {
	var s System
	towers := simcore.NewTowerView([]simcore.TowerSnapshot{towerSnapshot(1, [2]uint32{4, 4}, [2]uint32{2, 2})})
	bugs := simcore.NewBugView([]simcore.BugSnapshot{bugSnapshot(2, [2]uint32{7, 5})})

	var out []simcore.TowerTarget
	s.Handle(simcore.PlayModeAttack, towers, bugs, 2, &out)

	assert.Len(t, out, 1)
	assert.Equal(t, simcore.TowerId(1), out[0].Tower)
	assert.Equal(t, simcore.BugId(2), out[0].Bug)
}

func TestHandleSilentOutsideAttackMode(t *testing.T) {
	var s System
	towers := simcore.NewTowerView([]simcore.TowerSnapshot{towerSnapshot(1, [2]uint32{4, 4}, [2]uint32{2, 2})})
	bugs := simcore.NewBugView([]simcore.BugSnapshot{bugSnapshot(2, [2]uint32{4, 4})})

	var out []simcore.TowerTarget
	s.Handle(simcore.PlayModeBuilder, towers, bugs, 2, &out)

	assert.Empty(t, out)
}

func TestHandleIgnoresBugsOutOfRange(t *testing.T) {
	var s System
	towers := simcore.NewTowerView([]simcore.TowerSnapshot{towerSnapshot(1, [2]uint32{0, 0}, [2]uint32{2, 2})})
	bugs := simcore.NewBugView([]simcore.BugSnapshot{bugSnapshot(2, [2]uint32{50, 50})})

	var out []simcore.TowerTarget
	s.Handle(simcore.PlayModeAttack, towers, bugs, 1, &out)

	assert.Empty(t, out)
}
