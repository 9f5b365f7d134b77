package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"kind":             addKind,
	"transform":        addTransform,
	"velocity":         addVelocity,
	"player":           addPlayer,
	"stats":            addStats,
	"player_collision": addPlayerCollision,
	"intents":          addIntents,
	"facing":           addFacing,
	"enemy":            addEnemy,
	"pickup":           addPickup,
	"doorway":          addDoorway,
	"bullet":           addBullet,
	"patrol":           addPatrol,
	"oscillate":        addOscillate,
	"chase":            addChase,
	"pursue":           addPursue,
	"platform_path":    addPlatformPath,
	"ttl":              addTTL,
	"audio":            addAudio,
	"physics_body":     addPhysicsBody,
	"gravity_scale":    addGravityScale,
	"render":           addRender,
}

// Anything not listed here is built afterwards in name order.
var componentBuildOrder = []string{
	"kind",
	"transform",
	"velocity",
	"player",
	"stats",
	"player_collision",
	"intents",
	"facing",
	"enemy",
	"pickup",
	"doorway",
	"bullet",
	"patrol",
	"oscillate",
	"chase",
	"pursue",
	"platform_path",
	"ttl",
	"audio",
	"physics_body",
	"gravity_scale",
	"render",
}

// BuildEntity creates an entity from a prefab. overrides are merged over the
// prefab's component specs field by field and may be nil. A prefab with a
// spawn cue queues an EventSpawned.
func BuildEntity(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := prefabs.MergeComponents(spec.Components, overrides)

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			builder, ok := componentRegistry[name]
			if !ok {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
			}
			if err := builder(w, e, remaining[name], ctx); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
			}
		}
	}

	if cue, ok := ecs.Get(w, e, component.AudioCueComponent.Kind()); ok && cue.Spawn != "" {
		w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Data: ecs.SpawnedEvent{Entity: e, Cue: cue.Spawn}})
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// KindOf reports an entity's kind, or KindNone if it has none.
func KindOf(w *ecs.World, e ecs.Entity) component.Kind {
	k, ok := ecs.Get(w, e, component.EntityKindComponent.Kind())
	if !ok {
		return component.KindNone
	}
	return k.Kind
}

type kindSpec = prefabs.KindComponentSpec

func addKind(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[kindSpec](raw)
	if err != nil {
		return fmt.Errorf("decode kind spec: %w", err)
	}
	kind, err := component.ParseKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.EntityKindComponent.Kind(), &component.EntityKind{Kind: kind})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed <= 0 || spec.JumpSpeed <= 0 {
		return fmt.Errorf("player needs positive move_speed and jump_speed")
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		JumpSpeed:    spec.JumpSpeed,
		BulletSpeed:  spec.BulletSpeed,
		BulletOffset: spec.BulletOffset,
		BulletTTL:    spec.BulletTTL,
	})
}

type statsSpec = prefabs.StatsComponentSpec

func addStats(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[statsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode stats spec: %w", err)
	}
	st := component.Stats{Health: spec.Health, Armor: spec.Armor, HasWeapon: spec.HasWeapon}
	if st.Health <= 0 || st.Health > component.MaxHealth {
		st.Health = component.MaxHealth
	}
	if st.Armor < 0 || st.Armor > component.MaxArmor {
		st.Armor = 0
	}
	return ecs.Add(w, e, component.StatsComponent.Kind(), &st)
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

func addIntents(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.IntentsComponent.Kind(), &component.Intents{})
}

type facingSpec = prefabs.FacingComponentSpec

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[facingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	return ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Left: spec.Left})
}

type enemySpec = prefabs.EnemyComponentSpec

func addEnemy(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[enemySpec](raw)
	if err != nil {
		return fmt.Errorf("decode enemy spec: %w", err)
	}
	if spec.Health <= 0 {
		return fmt.Errorf("enemy health must be positive, got %d", spec.Health)
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Health: spec.Health})
}

type pickupSpec = prefabs.PickupComponentSpec

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pickupSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Amount: spec.Amount})
}

type doorwaySpec = prefabs.DoorwayComponentSpec

func addDoorway(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[doorwaySpec](raw)
	if err != nil {
		return fmt.Errorf("decode doorway spec: %w", err)
	}
	return ecs.Add(w, e, component.DoorwayComponent.Kind(), &component.Doorway{Terminal: spec.Terminal})
}

type bulletSpec = prefabs.BulletComponentSpec

func addBullet(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bulletSpec](raw)
	if err != nil {
		return fmt.Errorf("decode bullet spec: %w", err)
	}
	if spec.Damage <= 0 {
		spec.Damage = 1
	}
	return ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{Damage: spec.Damage})
}

type patrolSpec = prefabs.PatrolComponentSpec

func addPatrol(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[patrolSpec](raw)
	if err != nil {
		return fmt.Errorf("decode patrol spec: %w", err)
	}
	if spec.Left > spec.Right {
		return fmt.Errorf("patrol left %v is right of %v", spec.Left, spec.Right)
	}
	return ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
		Speed: spec.Speed,
		Left:  spec.Left,
		Right: spec.Right,
	})
}

type oscillateSpec = prefabs.OscillateComponentSpec

func addOscillate(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[oscillateSpec](raw)
	if err != nil {
		return fmt.Errorf("decode oscillate spec: %w", err)
	}
	if spec.Lower > spec.Upper {
		return fmt.Errorf("oscillate lower %v is above upper %v", spec.Lower, spec.Upper)
	}
	return ecs.Add(w, e, component.OscillateComponent.Kind(), &component.Oscillate{
		Speed:  spec.Speed,
		Upper:  spec.Upper,
		Lower:  spec.Lower,
		Strict: spec.Strict,
	})
}

type speedSpec = prefabs.SpeedComponentSpec

func addChase(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[speedSpec](raw)
	if err != nil {
		return fmt.Errorf("decode chase spec: %w", err)
	}
	return ecs.Add(w, e, component.ChaseComponent.Kind(), &component.Chase{Speed: spec.Speed})
}

func addPursue(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[speedSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pursue spec: %w", err)
	}
	return ecs.Add(w, e, component.PursueComponent.Kind(), &component.Pursue{Speed: spec.Speed})
}

type platformPathSpec = prefabs.PlatformPathComponentSpec

func addPlatformPath(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[platformPathSpec](raw)
	if err != nil {
		return fmt.Errorf("decode platform_path spec: %w", err)
	}
	var axis component.Axis
	switch spec.Axis {
	case "", "x":
		axis = component.AxisX
	case "y":
		axis = component.AxisY
	default:
		return fmt.Errorf("platform_path axis %q", spec.Axis)
	}
	if spec.Back > spec.Forward {
		return fmt.Errorf("platform_path back %v is past forward %v", spec.Back, spec.Forward)
	}
	path := &component.PlatformPath{
		Axis:    axis,
		Speed:   spec.Speed,
		Forward: spec.Forward,
		Back:    spec.Back,
	}
	// transform is built first, so the spawn position is already known.
	var x, y float64
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	path.Anchor(x, y)
	return ecs.Add(w, e, component.PlatformPathComponent.Kind(), path)
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if spec.Spawn == "" && spec.Destroy == "" {
		return nil
	}
	return ecs.Add(w, e, component.AudioCueComponent.Kind(), &component.AudioCue{
		Spawn:   spec.Spawn,
		Destroy: spec.Destroy,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	if spec.Static && spec.Kinematic {
		return fmt.Errorf("physics body cannot be both static and kinematic")
	}
	if !spec.Static && !spec.Kinematic && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Kinematic:     spec.Kinematic,
		Sensor:        spec.Sensor,
		FixedRotation: spec.FixedRotation,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type renderSpec = prefabs.RenderComponentSpec

func addRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render spec: %w", err)
	}
	var c color.Color = color.White
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}
	return ecs.Add(w, e, component.RenderComponent.Kind(), &component.Render{
		Color: c,
		Layer: spec.Layer,
		Label: spec.Label,
	})
}
