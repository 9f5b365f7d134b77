package main

import (
	"fmt"

	"github.com/milk9111/cityrun/config"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
	"github.com/milk9111/cityrun/ecs/system"
	"github.com/milk9111/cityrun/game"
	"go.uber.org/zap"
)

// session is one run from the first level to a win or game over. The
// runner throws it away and builds a new one to restart.
type session struct {
	world     *ecs.World
	stage     *entity.Stage
	lifecycle *game.Lifecycle
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	levels    *system.LevelSystem
}

func newSession(cfg *config.Config, log *zap.Logger, start game.LevelID, cues system.CuePlayer) (*session, error) {
	w := ecs.NewWorld()
	stage := entity.NewStage(w, log.Named("stage"))
	clock := &game.Clock{}
	lifecycle := game.NewLifecycle(game.NewState(), clock, log.Named("lifecycle"))
	if err := lifecycle.Start(stage, start); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	physics := system.NewPhysicsSystem(cfg.Physics, log.Named("physics"))
	levels := system.NewLevelSystem(lifecycle, stage, log.Named("level"))

	scheduler := ecs.NewScheduler()
	scheduler.Add(ecs.PhaseInput, system.NewInputSystem(log.Named("input")))
	scheduler.Add(ecs.PhasePhysics, physics)
	scheduler.Add(ecs.PhaseBehavior, system.NewPatrolSystem())
	scheduler.Add(ecs.PhaseBehavior, system.NewOscillateSystem())
	scheduler.Add(ecs.PhaseBehavior, system.NewChaseSystem())
	scheduler.Add(ecs.PhaseBehavior, system.NewPursueSystem())
	scheduler.Add(ecs.PhaseBehavior, system.NewPlatformSystem())
	scheduler.Add(ecs.PhaseCollision, system.NewCollisionSystem(lifecycle, log.Named("collision")))
	scheduler.Add(ecs.PhaseLifecycle, levels)
	scheduler.Add(ecs.PhaseCleanup, system.NewTTLSystem())
	scheduler.Add(ecs.PhaseAudio, system.NewAudioSystem(cues, log.Named("audio")))

	// A stopped clock freezes the simulation; transitions and sound still run.
	scheduler.SetGate(func(p ecs.Phase) bool {
		switch p {
		case ecs.PhaseLifecycle, ecs.PhaseAudio:
			return true
		default:
			return clock.Running()
		}
	})

	return &session{
		world:     w,
		stage:     stage,
		lifecycle: lifecycle,
		scheduler: scheduler,
		physics:   physics,
		levels:    levels,
	}, nil
}

// Step advances the simulation one fixed tick.
func (s *session) Step() {
	s.scheduler.Update(s.world)
	s.world.FlushEvents()
}

func (s *session) HUD() game.HUD { return s.levels.HUD() }

// Err is the failed level transition that ended the session, if any.
func (s *session) Err() error { return s.levels.Err() }

// Push queues an intent on the live player. A dead or absent player drops it.
func (s *session) Push(in component.Intent) bool {
	player, ok := entity.FindPlayer(s.world)
	if !ok {
		return false
	}
	q, ok := ecs.Get(s.world, player, component.IntentsComponent.Kind())
	if !ok {
		return false
	}
	q.Push(in)
	return true
}
