package system

import (
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/game"
	"go.uber.org/zap"
)

// LevelSystem applies the transition queued during collision delivery and
// takes the HUD snapshot for the frame. It runs even while the clock is
// stopped so game over and win stay visible.
type LevelSystem struct {
	lifecycle *game.Lifecycle
	world     game.World
	log       *zap.Logger

	stats component.Stats
	hud   game.HUD
	err   error
}

func NewLevelSystem(lifecycle *game.Lifecycle, world game.World, log *zap.Logger) *LevelSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LevelSystem{lifecycle: lifecycle, world: world, log: log, stats: component.DefaultStats()}
	if st, ok := world.PlayerStats(); ok {
		s.stats = st
	}
	s.hud = game.Snapshot(lifecycle.State(), s.stats, lifecycle.Current())
	return s
}

func (s *LevelSystem) Update(w *ecs.World) {
	s.lifecycle.Clock().Tick()

	if err := s.lifecycle.Apply(s.world); err != nil {
		s.err = err
		s.log.Error("level transition failed", zap.Error(err))
	}
	if w != nil {
		for _, evt := range w.Events().DrainType(ecs.EventLevelChanged) {
			if name, ok := evt.Data.(string); ok {
				s.log.Debug("level changed", zap.String("level", name))
			}
		}
	}

	// After a win the player is gone; the HUD keeps the last stats it saw.
	if st, ok := s.world.PlayerStats(); ok {
		s.stats = st
	}
	s.hud = game.Snapshot(s.lifecycle.State(), s.stats, s.lifecycle.Current())
}

func (s *LevelSystem) HUD() game.HUD { return s.hud }

// Err returns the last failed transition, if any.
func (s *LevelSystem) Err() error { return s.err }
