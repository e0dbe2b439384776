// Package combat turns targeting assignments into fire commands for every
// tower whose cooldown has fully elapsed.
package combat

import "github.com/toejough/maze-defence/internal/simcore"

// System queues firing commands for ready towers.
type System struct {
	scratch []simcore.Command
}

// Handle emits FireProjectile commands for towers ready to fire, silent
// outside attack mode or when there is nothing to do.
func (s *System) Handle(mode simcore.PlayMode, cooldowns simcore.TowerCooldownView, targets []simcore.TowerTarget, out *[]simcore.Command) {
	if mode != simcore.PlayModeAttack {
		return
	}
	if len(targets) == 0 {
		return
	}

	snapshots := cooldowns.Snapshots()
	if len(snapshots) == 0 {
		return
	}

	s.scratch = s.scratch[:0]
	for _, target := range targets {
		snapshot, ok := cooldowns.Find(target.Tower)
		if !ok {
			continue
		}
		if snapshot.ReadyIn == 0 {
			s.scratch = append(s.scratch, simcore.FireProjectile(target.Tower, target.Bug))
		}
	}

	if len(s.scratch) == 0 {
		return
	}
	*out = append(*out, s.scratch...)
}
