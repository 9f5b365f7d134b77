package entity

import (
	"fmt"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
)

const playerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, playerPrefab, nil)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, playerPrefab, nil)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// FindPlayer returns the live player, if the current level has one.
func FindPlayer(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerComponent.Kind())
}

// NewBullet fires from the player's muzzle. Speed is signed: negative flies
// left. Bullets belong to the level they were fired in.
func NewBullet(w *ecs.World, x, y, speed float64, ttl int) (ecs.Entity, error) {
	overrides := map[string]any{
		"velocity": map[string]any{"x": speed, "y": 0.0},
	}
	if ttl > 0 {
		overrides["ttl"] = map[string]any{"frames": ttl}
	}
	e, err := BuildEntity(w, "bullet.yaml", overrides)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("bullet: set transform: %w", err)
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Scope: component.ScopeLevel}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("bullet: set owner: %w", err)
	}
	return e, nil
}
