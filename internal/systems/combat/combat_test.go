package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestBuilderModeIsSilent(t *testing.T) {
	var s System
	cooldowns := simcore.NewTowerCooldownView([]simcore.TowerCooldownSnapshot{
		{Tower: 1, Kind: simcore.TowerBasic, ReadyIn: 0},
	})
	targets := []simcore.TowerTarget{{Tower: 1, Bug: 7}}

	var out []simcore.Command
	s.Handle(simcore.PlayModeBuilder, cooldowns, targets, &out)

	assert.Empty(t, out)
}

func TestHandleFiresWhenCooldownElapsed(t *testing.T) {
	var s System
	cooldowns := simcore.NewTowerCooldownView([]simcore.TowerCooldownSnapshot{
		{Tower: 1, Kind: simcore.TowerBasic, ReadyIn: 0},
		{Tower: 2, Kind: simcore.TowerBasic, ReadyIn: 500 * time.Millisecond},
	})
	targets := []simcore.TowerTarget{{Tower: 1, Bug: 7}, {Tower: 2, Bug: 8}}

	var out []simcore.Command
	s.Handle(simcore.PlayModeAttack, cooldowns, targets, &out)

	assert.Len(t, out, 1)
	assert.Equal(t, simcore.TowerId(1), out[0].Tower)
	assert.Equal(t, simcore.BugId(7), out[0].Target)
}
