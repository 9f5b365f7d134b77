package entity

import (
	"fmt"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/prefabs"
)

// Spawn builds the prefab named after kind at (x, y).
func Spawn(w *ecs.World, kind component.Kind, x, y float64, overrides map[string]any) (ecs.Entity, error) {
	return SpawnPrefab(w, kind.String()+".yaml", x, y, overrides)
}

// SpawnPrefab builds prefab with its transform placed at (x, y), so
// components that depend on the spawn position see it while being built.
func SpawnPrefab(w *ecs.World, prefab string, x, y float64, overrides map[string]any) (ecs.Entity, error) {
	placed := prefabs.MergeComponents(overrides, map[string]any{
		"transform": map[string]any{"x": x, "y": y},
	})
	e, err := BuildEntity(w, prefab, placed)
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", prefab, err)
	}
	return e, nil
}

// NewGroundEnemy walks between left and right.
func NewGroundEnemy(w *ecs.World, x, y, speed, left, right float64) (ecs.Entity, error) {
	return Spawn(w, component.KindGroundEnemy, x, y, map[string]any{
		"patrol": map[string]any{"speed": speed, "left": left, "right": right},
	})
}

// NewChasingEnemy is a ground enemy that follows the player instead of
// patrolling.
func NewChasingEnemy(w *ecs.World, x, y, speed float64) (ecs.Entity, error) {
	return Spawn(w, component.KindGroundEnemy, x, y, map[string]any{
		"chase": map[string]any{"speed": speed},
	})
}

func NewFlyingEnemy(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return Spawn(w, component.KindFlyingEnemy, x, y, nil)
}

// NewPickup builds an armor, potion, gun or key.
func NewPickup(w *ecs.World, kind component.Kind, x, y float64) (ecs.Entity, error) {
	switch kind {
	case component.KindArmor, component.KindPotion, component.KindGun, component.KindKey:
	default:
		return 0, fmt.Errorf("pickup: %s is not collectible", kind)
	}
	return Spawn(w, kind, x, y, nil)
}

func NewDoorway(w *ecs.World, kind component.Kind, x, y float64) (ecs.Entity, error) {
	if !kind.IsDoorway() {
		return 0, fmt.Errorf("doorway: %s is not a doorway", kind)
	}
	return Spawn(w, kind, x, y, nil)
}

// NewGeometry builds ground, a wall or a platform. Zero sizes keep the
// prefab's own.
func NewGeometry(w *ecs.World, kind component.Kind, x, y, width, height float64) (ecs.Entity, error) {
	if !kind.IsGeometry() {
		return 0, fmt.Errorf("geometry: %s is not geometry", kind)
	}
	body := map[string]any{}
	if width > 0 {
		body["width"] = width
	}
	if height > 0 {
		body["height"] = height
	}
	return Spawn(w, kind, x, y, map[string]any{"physics_body": body})
}
