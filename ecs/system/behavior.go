package system

import (
	"math"

	"github.com/milk9111/cityrun/common"
	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/ecs/entity"
)

// Behaviours run after the physics step. Speeds are per step.

// PatrolSystem walks enemies between two X bounds. The bounds are strict:
// sitting exactly on one does not turn the enemy around. Facing only
// changes at a bound, so a patroller starts out facing right whatever its
// initial direction.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem { return &PatrolSystem{} }

func (s *PatrolSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Patrol, t *component.Transform) {
		t.X += p.Speed
		f, _ := ecs.Get(w, e, component.FacingComponent.Kind())
		if t.X > p.Right {
			p.Speed = -math.Abs(p.Speed)
			if f != nil {
				f.Left = true
			}
		}
		if t.X < p.Left {
			p.Speed = math.Abs(p.Speed)
			if f != nil {
				f.Left = false
			}
		}
	})
}

// OscillateSystem bobs collectibles and keys along Y. Collectibles turn on
// touching a bound, keys only once past it.
type OscillateSystem struct{}

func NewOscillateSystem() *OscillateSystem { return &OscillateSystem{} }

func (s *OscillateSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.OscillateComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, o *component.Oscillate, t *component.Transform) {
		t.Y += o.Speed
		if o.Strict {
			if t.Y > o.Upper {
				o.Speed = -math.Abs(o.Speed)
			} else if t.Y < o.Lower {
				o.Speed = math.Abs(o.Speed)
			}
			return
		}
		if t.Y >= o.Upper {
			o.Speed = -math.Abs(o.Speed)
		} else if t.Y <= o.Lower {
			o.Speed = math.Abs(o.Speed)
		}
	})
}

// ChaseSystem runs ground enemies at the player using only the sign of the
// X delta.
type ChaseSystem struct{}

func NewChaseSystem() *ChaseSystem { return &ChaseSystem{} }

func (s *ChaseSystem) Update(w *ecs.World) {
	target, ok := playerPosition(w)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.ChaseComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, c *component.Chase, t *component.Transform, v *component.Velocity) {
		dx := target.X - t.X
		v.X = common.Sign(dx) * c.Speed
		v.Y = 0
		// Level with the player counts as facing left.
		if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			f.Left = dx <= 0
		}
	})
}

// PursueSystem flies enemies straight at the player.
type PursueSystem struct{}

func NewPursueSystem() *PursueSystem { return &PursueSystem{} }

func (s *PursueSystem) Update(w *ecs.World) {
	target, ok := playerPosition(w)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.PursueComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, p *component.Pursue, t *component.Transform, v *component.Velocity) {
		angle := math.Atan2(target.Y-t.Y, target.X-t.X)
		v.X = p.Speed * math.Cos(angle)
		v.Y = p.Speed * math.Sin(angle)
		if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			f.Left = v.X < 0
		}
	})
}

// PlatformSystem moves kinematic platforms back and forth between bounds
// relative to where each was spawned. It predicts the next position and
// turns before reaching a bound, then drives the body through its velocity
// so riders are carried along.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem { return &PlatformSystem{} }

func (s *PlatformSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlatformPathComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.PlatformPath, t *component.Transform) {
		pos := &t.X
		if p.Axis == component.AxisY {
			pos = &t.Y
		}
		next := *pos + p.Speed
		if next >= p.Max || next <= p.Min {
			p.Speed = -p.Speed
		}

		v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			v = &component.Velocity{}
			_ = ecs.Add(w, e, component.VelocityComponent.Kind(), v)
		}
		v.X, v.Y = 0, 0
		if p.Axis == component.AxisY {
			v.Y = common.PerSecond(p.Speed)
		} else {
			v.X = common.PerSecond(p.Speed)
		}
	})
}

func playerPosition(w *ecs.World) (component.Transform, bool) {
	e, ok := entity.FindPlayer(w)
	if !ok {
		return component.Transform{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return component.Transform{}, false
	}
	return *t, true
}
