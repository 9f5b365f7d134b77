package system

import (
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
	"go.uber.org/zap"
)

// InputSystem drains queued intents and turns them into the player's walk
// speed, jump impulse, facing and bullets. Raw keys are mapped to intents by
// the runner.
type InputSystem struct {
	log *zap.Logger
}

func NewInputSystem(log *zap.Logger) *InputSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &InputSystem{log: log}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.IntentsComponent.Kind(), func(e ecs.Entity, p *component.Player, intents *component.Intents) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			intents.Pending = intents.Pending[:0]
			return
		}
		facing, _ := ecs.Get(w, e, component.FacingComponent.Kind())
		stats, _ := ecs.Get(w, e, component.StatsComponent.Kind())

		for _, in := range intents.Pending {
			switch in := in.(type) {
			case component.StartMove:
				p.Walk = float64(in.Dir) * p.MoveSpeed
				if facing != nil {
					facing.Left = in.Dir == component.DirLeft
				}
			case component.StopMove:
				p.Walk = 0
			case component.Jump:
				s.jump(w, e, p, vel)
			case component.Shoot:
				if stats == nil || !stats.HasWeapon {
					continue
				}
				s.shoot(w, e, p, facing)
			}
		}
		intents.Pending = intents.Pending[:0]

		vel.X = p.Walk
		switch {
		case stats != nil && stats.HasWeapon:
			p.Pose = component.PoseGun
		case p.Walk != 0:
			p.Pose = component.PoseRun
		default:
			p.Pose = component.PoseIdle
		}
	})
}

// jump only leaves the ground; the grace frames forgive a late press.
func (s *InputSystem) jump(w *ecs.World, e ecs.Entity, p *component.Player, vel *component.Velocity) {
	pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
	if !ok || (!pc.Grounded && pc.GroundGrace <= 0) {
		return
	}
	vel.Y = p.JumpSpeed
	pc.Grounded = false
	pc.GroundGrace = 0
}

func (s *InputSystem) shoot(w *ecs.World, e ecs.Entity, p *component.Player, facing *component.Facing) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	dir := 1.0
	if facing != nil && facing.Left {
		dir = -1
	}
	if _, err := entity.NewBullet(w, tr.X+dir*p.BulletOffset, tr.Y, dir*p.BulletSpeed, p.BulletTTL); err != nil {
		s.log.Warn("spawn bullet", zap.Error(err))
	}
}
