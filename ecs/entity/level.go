package entity

import (
	"fmt"

	"github.com/milk9111/cityrun/ecs"
	"github.com/milk9111/cityrun/ecs/component"
	"github.com/milk9111/cityrun/game"
	"github.com/milk9111/cityrun/levels"
	"go.uber.org/zap"
)

// Stage builds and tears down levels inside one ECS world. It is the
// game.World the lifecycle drives.
type Stage struct {
	world *ecs.World
	log   *zap.Logger
}

var _ game.World = (*Stage)(nil)

func NewStage(w *ecs.World, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{world: w, log: log}
}

func (s *Stage) World() *ecs.World { return s.world }

// BuildLevel builds the shared base, a fresh player at the level's spawn
// point and the level's population. On failure everything it built is
// removed again.
func (s *Stage) BuildLevel(id game.LevelID) (game.Population, error) {
	if !id.Playable() {
		return nil, fmt.Errorf("build level: %s is not playable", id)
	}
	base, err := levels.LoadBase()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(id.String())
	if err != nil {
		return nil, err
	}

	var built []ecs.Entity
	fail := func(err error) (game.Population, error) {
		for _, e := range built {
			ecs.DestroyEntity(s.world, e)
		}
		return nil, fmt.Errorf("build level %s: %w", id, err)
	}

	baseEntities, err := BuildBase(s.world, base)
	built = append(built, baseEntities...)
	if err != nil {
		return fail(err)
	}

	player, err := NewPlayerAt(s.world, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return fail(err)
	}
	built = append(built, player)
	if err := setOwner(s.world, player, component.ScopeBase, ""); err != nil {
		return fail(err)
	}

	levelEntities, pop, err := BuildLevel(s.world, lvl)
	built = append(built, levelEntities...)
	if err != nil {
		return fail(err)
	}

	s.world.Events().Push(ecs.Event{Type: ecs.EventLevelChanged, Data: lvl.Name})
	s.log.Debug("level built",
		zap.String("level", lvl.Name),
		zap.Int("entities", len(built)),
		zap.Object("population", pop),
	)
	return pop, nil
}

// BuildBase builds the ground and boundary walls every level shares.
func BuildBase(w *ecs.World, def *levels.Level) ([]ecs.Entity, error) {
	return buildPlacements(w, def, component.ScopeBase)
}

// BuildLevel builds a level's own geometry and population and counts the
// enemies in it.
func BuildLevel(w *ecs.World, def *levels.Level) ([]ecs.Entity, game.Population, error) {
	built, err := buildPlacements(w, def, component.ScopeLevel)
	if err != nil {
		return built, nil, err
	}
	pop := game.Population{}
	for _, e := range built {
		if kind := KindOf(w, e); kind.IsEnemy() {
			pop[kind]++
		}
	}
	return built, pop, nil
}

func buildPlacements(w *ecs.World, def *levels.Level, scope component.Scope) ([]ecs.Entity, error) {
	built := make([]ecs.Entity, 0, len(def.Entities))
	for i, p := range def.Entities {
		e, err := SpawnPrefab(w, p.Prefab, p.X, p.Y, p.Components)
		if err != nil {
			return built, fmt.Errorf("%s entity %d: %w", def.Name, i, err)
		}
		built = append(built, e)
		if err := setOwner(w, e, scope, def.Name); err != nil {
			return built, err
		}
	}
	return built, nil
}

func setOwner(w *ecs.World, e ecs.Entity, scope component.Scope, level string) error {
	return ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Scope: scope, Level: level})
}

// DestroyLevelObjects silently removes everything the current level owns,
// bullets in flight included.
func (s *Stage) DestroyLevelObjects() {
	s.log.Debug("destroy level objects", zap.Int("count", s.destroyScope(component.ScopeLevel)))
}

// DestroyBaseObjects silently removes the player, ground and walls.
func (s *Stage) DestroyBaseObjects() {
	s.log.Debug("destroy base objects", zap.Int("count", s.destroyScope(component.ScopeBase)))
}

func (s *Stage) destroyScope(scope component.Scope) int {
	n := 0
	ecs.ForEach(s.world, component.OwnerComponent.Kind(), func(e ecs.Entity, owner *component.Owner) {
		if owner.Scope != scope {
			return
		}
		if ecs.DestroyEntity(s.world, e) {
			n++
		}
	})
	return n
}

func (s *Stage) PlayerStats() (component.Stats, bool) {
	st, ok := s.playerStats()
	if !ok {
		return component.Stats{}, false
	}
	return *st, true
}

func (s *Stage) SetPlayerVitals(health, armor int) {
	st, ok := s.playerStats()
	if !ok {
		return
	}
	st.Health = health
	st.Armor = armor
}

// SetPlayerWeapon restores the equipped state and the matching pose.
func (s *Stage) SetPlayerWeapon(equipped bool) {
	st, ok := s.playerStats()
	if !ok {
		return
	}
	st.HasWeapon = equipped
	if e, ok := FindPlayer(s.world); ok {
		if p, ok := ecs.Get(s.world, e, component.PlayerComponent.Kind()); ok && equipped {
			p.Pose = component.PoseGun
		}
	}
}

func (s *Stage) playerStats() (*component.Stats, bool) {
	e, ok := FindPlayer(s.world)
	if !ok {
		return nil, false
	}
	return ecs.Get(s.world, e, component.StatsComponent.Kind())
}
