package spawning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toejough/maze-defence/internal/simcore"
)

func TestResolvesSpawnAttemptsWithoutInterval(t *testing.T) {
	s := New(Config{SpawnInterval: 0, RNGSeed: 1})
	s.accumulator = 10 * time.Second
	assert.Equal(t, 0, s.resolveSpawnAttempts())
}

func TestHandleResetsAccumulatorOutsideAttackMode(t *testing.T) {
	s := New(Config{SpawnInterval: time.Second, RNGSeed: 1})
	s.accumulator = 5 * time.Second

	var out []simcore.Command
	s.Handle(nil, simcore.PlayModeBuilder, []simcore.CellCoord{simcore.NewCellCoord(0, 0)}, &out)

	assert.Equal(t, time.Duration(0), s.accumulator)
	assert.Empty(t, out)
}

func TestHandleEmitsSpawnPerElapsedInterval(t *testing.T) {
	s := New(Config{SpawnInterval: time.Second, RNGSeed: 7, Health: simcore.Health(3)})
	spawners := []simcore.CellCoord{simcore.NewCellCoord(1, 1), simcore.NewCellCoord(2, 2)}
	events := []simcore.Event{simcore.TimeAdvanced(2500 * time.Millisecond)}

	var out []simcore.Command
	s.Handle(events, simcore.PlayModeAttack, spawners, &out)

	assert.Len(t, out, 2)
	for _, cmd := range out {
		assert.Equal(t, simcore.CommandSpawnBug, cmd.Kind)
		assert.Equal(t, simcore.Health(3), cmd.Health)
	}
}
